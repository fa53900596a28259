package core

import (
	"github.com/plantops/capaimpact/schema"
)

// ValidateAction checks an action snapshot for conditions that make any
// computation on it meaningless. Returns a descriptive *schema.InputError;
// values are never silently coerced.
func ValidateAction(a *schema.ActionRecord) error {
	if a.ID == "" {
		return schema.NewInputError("(unknown)", "id", "action identifier is required")
	}
	if a.ImplementedAt != nil && a.ClosedAt != nil && a.ClosedAt.Before(*a.ImplementedAt) {
		return schema.NewInputError(a.ID, "closed_at",
			"closed date %s precedes implemented date %s",
			schema.FormatDate(*a.ClosedAt), schema.FormatDate(*a.ImplementedAt))
	}
	if a.InternalHours < 0 {
		return schema.NewInputError(a.ID, "internal_hours", "cannot be negative (received %.2f)", a.InternalHours)
	}
	if a.ExternalCost < 0 {
		return schema.NewInputError(a.ID, "external_cost", "cannot be negative (received %.2f)", a.ExternalCost)
	}
	if a.MaterialCost < 0 {
		return schema.NewInputError(a.ID, "material_cost", "cannot be negative (received %.2f)", a.MaterialCost)
	}
	for i := range a.Subtasks {
		s := &a.Subtasks[i]
		if s.ID == "" {
			return schema.NewInputError(a.ID, "subtasks", "subtask %d has no identifier", i)
		}
	}
	return nil
}

// ValidateProductionDay checks a single production day record.
func ValidateProductionDay(p *schema.ProductionDayRecord) error {
	id := schema.FormatDate(p.Date) + "/" + p.Line + "/" + p.Project
	if p.ProducedQty < 0 {
		return schema.NewInputError(id, "produced_qty", "cannot be negative (received %.2f)", p.ProducedQty)
	}
	if p.ScrapQty < 0 {
		return schema.NewInputError(id, "scrap_qty", "cannot be negative (received %.2f)", p.ScrapQty)
	}
	if p.ScrapCost < 0 {
		return schema.NewInputError(id, "scrap_cost", "cannot be negative (received %.2f)", p.ScrapCost)
	}
	if p.DowntimeMinutes < 0 {
		return schema.NewInputError(id, "downtime_minutes", "cannot be negative (received %.2f)", p.DowntimeMinutes)
	}
	if p.OEE != nil && (*p.OEE < 0 || *p.OEE > 1) {
		return schema.NewInputError(id, "oee", "must be a fraction in [0,1] (received %.3f)", *p.OEE)
	}
	return nil
}
