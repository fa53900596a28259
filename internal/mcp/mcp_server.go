// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/plantops/capaimpact/internal/contract"
)

// NewMCPServer initializes and configures the capaimpact MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, source contract.SnapshotSource) *server.MCPServer {
	s := server.NewMCPServer(
		"CAPA Impact Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		source:  source,
	}

	// --- 1. Tool: get_action_metrics ---
	s.AddTool(mcp.NewTool("get_action_metrics",
		mcp.WithDescription("Compute time KPIs (days late, time to close, on-time rate) for all corrective actions."),
		mcp.WithString("as_of", mcp.Description("Evaluation date in YYYY-MM-DD form. Open actions accrue lateness up to this date (defaults to the configured as-of date).")),
	), h.handleGetActionMetrics)

	// --- 2. Tool: get_action_impacts ---
	s.AddTool(mcp.NewTool("get_action_impacts",
		mcp.WithDescription("Compute monetary savings, ROI, payback and confidence for implemented corrective actions."),
		mcp.WithNumber("window_days", mcp.Description("Baseline window length in days on each side of the implementation date.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleGetActionImpacts)

	// --- 3. Tool: get_champion_ranking ---
	s.AddTool(mcp.NewTool("get_champion_ranking",
		mcp.WithDescription("Rank champions by confidence-weighted savings. Read-only: does not append to the score log."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of champions returned.")),
	), h.handleGetChampionRanking)

	return s
}

// StartMCPServer starts the capaimpact MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, source contract.SnapshotSource) error {
	s := NewMCPServer(baseCfg, source)
	return server.ServeStdio(s)
}
