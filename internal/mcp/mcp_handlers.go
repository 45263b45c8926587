package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rebuylabs/rebuy/core"
	"github.com/rebuylabs/rebuy/internal/contract"
	"github.com/rebuylabs/rebuy/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// applyEngineOverrides copies the shared engine parameters from a tool
// request onto a cloned config.
func applyEngineOverrides(cfg *contract.Config, request mcp.CallToolRequest) error {
	if p := request.GetString("data_path", ""); p != "" {
		cfg.DataPath = p
	}
	if m := request.GetString("bench_mode", ""); m != "" {
		cfg.BenchmarkMode = schema.BenchmarkMode(m)
	}
	if q := request.GetFloat("quantile", 0); q != 0 {
		cfg.Quantile = q
	}
	if d := request.GetFloat("manual_days", 0); d != 0 {
		cfg.ManualDays = d
	}
	if s := request.GetInt("due_soon", -1); s >= 0 {
		cfg.SoonDays = s
	}
	if err := contract.RevalidateBenchmark(cfg); err != nil {
		return err
	}
	if a := request.GetString("asof", ""); a != "" {
		return contract.RevalidateAsOf(cfg, a)
	}
	return nil
}

func (h *toolHandler) handleGetStatus(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.ProductID = request.GetString("product_id", "")
	if cfg.ProductID == "" {
		return mcp.NewToolResultError("product_id is required"), nil
	}
	if err := applyEngineOverrides(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid status parameters: %v", err)), nil
	}
	if f := request.GetString("filter", ""); f != "" {
		switch schema.Status(f) {
		case schema.OverdueStatus:
			cfg.StatusFilter = []schema.Status{schema.OverdueStatus}
		case schema.DueSoonStatus:
			cfg.StatusFilter = []schema.Status{schema.DueSoonStatus}
		case schema.OKStatus:
			cfg.StatusFilter = []schema.Status{schema.OKStatus}
		default: // actionable
			cfg.StatusFilter = []schema.Status{schema.DueSoonStatus, schema.OverdueStatus}
		}
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	records, bench, asof, err := core.GetStatusResults(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("status computation failed: %v", err)), nil
	}
	if cfg.ResultLimit > 0 && len(records) > cfg.ResultLimit {
		records = records[:cfg.ResultLimit]
	}

	payload := map[string]any{
		"asof":      asof.Format(schema.DateFormat),
		"benchmark": bench,
		"records":   records,
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCompareProducts(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyEngineOverrides(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid comparison parameters: %v", err)), nil
	}

	rows, asof, err := core.GetComparisonResults(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}

	payload := map[string]any{
		"asof":     asof.Format(schema.DateFormat),
		"products": rows,
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetBenchmarks(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyEngineOverrides(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid benchmark parameters: %v", err)), nil
	}

	benches, err := core.GetBenchmarkResults(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("benchmark resolution failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(benches, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
