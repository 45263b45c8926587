package mcp_test

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rebuylabs/rebuy/internal/contract"
	mcp_internal "github.com/rebuylabs/rebuy/internal/mcp"
	"github.com/rebuylabs/rebuy/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{
		DataPath:      "transactions.csv",
		BenchmarkMode: schema.QuantileMode,
		Quantile:      0.5,
		SoonDays:      7,
	}

	s := mcp_internal.NewMCPServer(baseCfg)

	ctx := context.Background()

	t.Run("get_status missing product_id", func(t *testing.T) {
		tool := s.GetTool("get_status")
		require.NotNil(t, tool, "Tool get_status should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_status",
				Arguments: map[string]any{
					"product_id": "", // Missing required
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "product_id is required")
	})

	t.Run("get_status invalid quantile", func(t *testing.T) {
		tool := s.GetTool("get_status")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_status",
				Arguments: map[string]any{
					"product_id": "p1",
					"quantile":   1.5, // Out of range
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid status parameters")
	})

	t.Run("compare_products invalid asof", func(t *testing.T) {
		tool := s.GetTool("compare_products")
		require.NotNil(t, tool, "Tool compare_products should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "compare_products",
				Arguments: map[string]any{
					"asof": "not-a-date", // Invalid
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid comparison parameters")
	})

	t.Run("get_benchmarks invalid manual_days", func(t *testing.T) {
		tool := s.GetTool("get_benchmarks")
		require.NotNil(t, tool, "Tool get_benchmarks should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_benchmarks",
				Arguments: map[string]any{
					"bench_mode":  "manual",
					"manual_days": -3.0, // Invalid
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid benchmark parameters")
	})
}
