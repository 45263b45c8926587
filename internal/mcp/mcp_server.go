// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rebuylabs/rebuy/internal/contract"
)

// NewMCPServer initializes and configures the Rebuy MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Rebuy Retention Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: get_status ---
	s.AddTool(mcp.NewTool("get_status",
		mcp.WithDescription("Compute repurchase status records for one product: who is ok, due soon, or overdue."),
		mcp.WithString("product_id", mcp.Description("Product to analyze."), mcp.Required()),
		mcp.WithString("data_path", mcp.Description("Path to the transactions file (csv or parquet). Defaults to the configured dataset.")),
		mcp.WithString("asof", mcp.Description("Reference date: 'dataset', 'today', or a date like 2024-06-30.")),
		mcp.WithString("bench_mode", mcp.Description("Benchmark mode (quantile, manual)."), mcp.Enum("quantile", "manual")),
		mcp.WithNumber("quantile", mcp.Description("Quantile for the interval benchmark, in (0,1). Defaults to 0.5.")),
		mcp.WithNumber("manual_days", mcp.Description("Fixed benchmark interval in days (manual mode).")),
		mcp.WithNumber("due_soon", mcp.Description("Due-soon window in days.")),
		mcp.WithString("filter", mcp.Description("Keep only some statuses (overdue, due_soon, actionable, ok)."), mcp.Enum("overdue", "due_soon", "actionable", "ok")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleGetStatus)

	// --- 2. Tool: compare_products ---
	s.AddTool(mcp.NewTool("compare_products",
		mcp.WithDescription("Compare retention metrics across all products: repeat rate, urgency rate, median retention days."),
		mcp.WithString("data_path", mcp.Description("Path to the transactions file (csv or parquet).")),
		mcp.WithString("asof", mcp.Description("Reference date: 'dataset', 'today', or a date like 2024-06-30.")),
		mcp.WithString("bench_mode", mcp.Description("Benchmark mode (quantile, manual)."), mcp.Enum("quantile", "manual")),
		mcp.WithNumber("quantile", mcp.Description("Quantile for the interval benchmark, in (0,1).")),
		mcp.WithNumber("manual_days", mcp.Description("Fixed benchmark interval in days (manual mode).")),
		mcp.WithNumber("due_soon", mcp.Description("Due-soon window in days.")),
	), h.handleCompareProducts)

	// --- 3. Tool: get_benchmarks ---
	s.AddTool(mcp.NewTool("get_benchmarks",
		mcp.WithDescription("Resolve the per-product repurchase interval benchmarks without computing statuses."),
		mcp.WithString("data_path", mcp.Description("Path to the transactions file (csv or parquet).")),
		mcp.WithString("bench_mode", mcp.Description("Benchmark mode (quantile, manual)."), mcp.Enum("quantile", "manual")),
		mcp.WithNumber("quantile", mcp.Description("Quantile for the interval benchmark, in (0,1).")),
		mcp.WithNumber("manual_days", mcp.Description("Fixed benchmark interval in days (manual mode).")),
	), h.handleGetBenchmarks)

	return s
}

// StartMCPServer starts the Rebuy MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
