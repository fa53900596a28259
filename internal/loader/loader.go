// Package loader reads action and production snapshots from CSV exports.
//
// Column order does not matter; files are read through their header row.
// Actions files require "id" and "status". Production files require "date",
// "line" and "project". Everything else is optional and defaults to empty
// or zero.
package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/plantops/capaimpact/internal/contract"
	"github.com/plantops/capaimpact/schema"
)

// CSVSource loads record snapshots from CSV files. A subtasks or production
// path may be empty, in which case that part of the snapshot is empty.
type CSVSource struct {
	actionsPath    string
	subtasksPath   string
	productionPath string
}

var _ contract.SnapshotSource = &CSVSource{} // Compile-time check

// NewCSVSource creates a snapshot source backed by CSV files.
func NewCSVSource(actionsPath, subtasksPath, productionPath string) *CSVSource {
	return &CSVSource{
		actionsPath:    actionsPath,
		subtasksPath:   subtasksPath,
		productionPath: productionPath,
	}
}

// Actions returns all action records with their subtasks attached.
func (s *CSVSource) Actions() ([]schema.ActionRecord, error) {
	tbl, err := readTable(s.actionsPath, []string{"id", "status"})
	if err != nil {
		return nil, err
	}

	actions := make([]schema.ActionRecord, 0, len(tbl.rows))
	index := make(map[string]int, len(tbl.rows))

	for i, row := range tbl.rows {
		line := i + 2 // 1-based, after the header

		id := tbl.get(row, "id")
		if id == "" {
			return nil, fmt.Errorf("%s:%d: action id is required", tbl.path, line)
		}
		if _, ok := index[id]; ok {
			return nil, fmt.Errorf("%s:%d: duplicate action id %q", tbl.path, line, id)
		}

		action := schema.ActionRecord{
			ID:         id,
			Title:      tbl.get(row, "title"),
			Line:       tbl.get(row, "line"),
			Project:    tbl.get(row, "project"),
			Owner:      tbl.get(row, "owner"),
			ChampionID: tbl.get(row, "champion_id"),
			Status:     schema.ActionStatus(strings.ToLower(tbl.get(row, "status"))),
		}

		if action.ImplementedAt, err = parseOptionalDate(tbl, row, "implemented_at", line); err != nil {
			return nil, err
		}
		if action.DueDate, err = parseOptionalDate(tbl, row, "due_date", line); err != nil {
			return nil, err
		}
		if action.ClosedAt, err = parseOptionalDate(tbl, row, "closed_at", line); err != nil {
			return nil, err
		}
		if action.InternalHours, err = parseFloat(tbl, row, "internal_hours", line); err != nil {
			return nil, err
		}
		if action.ExternalCost, err = parseFloat(tbl, row, "external_cost", line); err != nil {
			return nil, err
		}
		if action.MaterialCost, err = parseFloat(tbl, row, "material_cost", line); err != nil {
			return nil, err
		}

		index[id] = len(actions)
		actions = append(actions, action)
	}

	if err := s.attachSubtasks(actions, index); err != nil {
		return nil, err
	}

	return actions, nil
}

// attachSubtasks loads the subtasks file and distributes rows to their
// parent actions, preserving file order.
func (s *CSVSource) attachSubtasks(actions []schema.ActionRecord, index map[string]int) error {
	if s.subtasksPath == "" {
		return nil
	}

	tbl, err := readTable(s.subtasksPath, []string{"action_id", "id"})
	if err != nil {
		return err
	}

	for i, row := range tbl.rows {
		line := i + 2

		actionID := tbl.get(row, "action_id")
		pos, ok := index[actionID]
		if !ok {
			return fmt.Errorf("%s:%d: subtask references unknown action %q", tbl.path, line, actionID)
		}

		subtask := schema.SubtaskRecord{
			ID:     tbl.get(row, "id"),
			Status: schema.ActionStatus(strings.ToLower(tbl.get(row, "status"))),
		}
		if subtask.DueDate, err = parseOptionalDate(tbl, row, "due_date", line); err != nil {
			return err
		}
		if subtask.ClosedAt, err = parseOptionalDate(tbl, row, "closed_at", line); err != nil {
			return err
		}

		actions[pos].Subtasks = append(actions[pos].Subtasks, subtask)
	}

	return nil
}

// ProductionDays returns the production series for all lines/projects.
func (s *CSVSource) ProductionDays() ([]schema.ProductionDayRecord, error) {
	if s.productionPath == "" {
		return nil, nil
	}

	tbl, err := readTable(s.productionPath, []string{"date", "line", "project"})
	if err != nil {
		return nil, err
	}

	records := make([]schema.ProductionDayRecord, 0, len(tbl.rows))
	for i, row := range tbl.rows {
		line := i + 2

		date, err := schema.ParseDate(tbl.get(row, "date"))
		if err != nil {
			return nil, fmt.Errorf("%s:%d: invalid date %q: %w", tbl.path, line, tbl.get(row, "date"), err)
		}

		record := schema.ProductionDayRecord{
			Date:    date,
			Line:    tbl.get(row, "line"),
			Project: tbl.get(row, "project"),
		}
		if record.ProducedQty, err = parseFloat(tbl, row, "produced_qty", line); err != nil {
			return nil, err
		}
		if record.ScrapQty, err = parseFloat(tbl, row, "scrap_qty", line); err != nil {
			return nil, err
		}
		if record.ScrapCost, err = parseFloat(tbl, row, "scrap_cost", line); err != nil {
			return nil, err
		}
		if record.DowntimeMinutes, err = parseFloat(tbl, row, "downtime_minutes", line); err != nil {
			return nil, err
		}
		if raw := tbl.get(row, "oee"); raw != "" {
			oee, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: invalid oee %q: %w", tbl.path, line, raw, err)
			}
			record.OEE = &oee
		}

		records = append(records, record)
	}

	return records, nil
}

// table is a parsed CSV file with header-based column access.
type table struct {
	path string
	cols map[string]int
	rows [][]string
}

// get returns the trimmed cell value for a column, or "" if the column is
// absent from the file.
func (t *table) get(row []string, col string) string {
	idx, ok := t.cols[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// readTable parses a CSV file and verifies the required columns exist.
func readTable(path string, required []string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // rows may omit trailing columns
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: missing header row", path)
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%s: missing required column %q", path, name)
		}
	}

	return &table{path: path, cols: cols, rows: records[1:]}, nil
}

// parseOptionalDate parses a date cell, returning nil for empty cells.
func parseOptionalDate(t *table, row []string, col string, line int) (*time.Time, error) {
	raw := t.get(row, col)
	if raw == "" {
		return nil, nil
	}
	parsed, err := schema.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("%s:%d: invalid %s %q: %w", t.path, line, col, raw, err)
	}
	return &parsed, nil
}

// parseFloat parses a numeric cell, returning 0 for empty cells.
func parseFloat(t *table, row []string, col string, line int) (float64, error) {
	raw := t.get(row, col)
	if raw == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s:%d: invalid %s %q: %w", t.path, line, col, raw, err)
	}
	return parsed, nil
}
