package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/plantops/capaimpact/core"
	"github.com/plantops/capaimpact/internal/contract"
	"github.com/plantops/capaimpact/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	source  contract.SnapshotSource
}

func (h *toolHandler) handleGetActionMetrics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := *h.baseCfg
	if s := request.GetString("as_of", ""); s != "" {
		asOf, err := schema.ParseDate(s)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid as_of date: %v", err)), nil
		}
		cfg.AsOf = asOf
	}

	actions, err := h.source.Actions()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading actions failed: %v", err)), nil
	}

	rows := make([]schema.ActionMetrics, 0, len(actions))
	for i := range actions {
		m, err := core.ComputeActionMetrics(&actions[i], cfg.AsOf)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("metrics failed for %s: %v", actions[i].ID, err)), nil
		}
		rows = append(rows, m)
	}

	output := struct {
		Actions []schema.ActionMetrics `json:"actions"`
		KPI     schema.ActionsKPI      `json:"kpi"`
	}{
		Actions: rows,
		KPI:     core.BuildActionsKPI(actions, cfg.AsOf),
	}

	jsonData, _ := json.MarshalIndent(output, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetActionImpacts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := *h.baseCfg
	if wd := request.GetInt("window_days", 0); wd > 0 {
		cfg.Engine.WindowDays = wd
		if err := cfg.Engine.Validate(); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid window_days: %v", err)), nil
		}
	}
	limit := request.GetInt("limit", cfg.ResultLimit)

	actions, series, err := loadSnapshot(h.source)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results, skipped := core.ComputeImpacts(actions, series, cfg.Engine)
	results = core.RankImpacts(results, limit)

	output := struct {
		Results []schema.ImpactResult  `json:"results"`
		Skipped []schema.SkippedAction `json:"skipped,omitempty"`
	}{Results: results, Skipped: skipped}

	jsonData, _ := json.MarshalIndent(output, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetChampionRanking(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := *h.baseCfg
	limit := request.GetInt("limit", cfg.ResultLimit)

	actions, series, err := loadSnapshot(h.source)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	impacts, skipped := core.ComputeImpacts(actions, series, cfg.Engine)
	entries, _ := core.BuildChampionRankings(actions, impacts, skipped, cfg.AsOf, cfg.Engine)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	jsonData, _ := json.MarshalIndent(entries, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// loadSnapshot loads both record sets from the snapshot source.
func loadSnapshot(source contract.SnapshotSource) ([]schema.ActionRecord, []schema.ProductionDayRecord, error) {
	actions, err := source.Actions()
	if err != nil {
		return nil, nil, fmt.Errorf("loading actions failed: %w", err)
	}
	series, err := source.ProductionDays()
	if err != nil {
		return nil, nil, fmt.Errorf("loading production days failed: %w", err)
	}
	return actions, series, nil
}
