package mcp

import (
	"context"
	"encoding/json"

	"github.com/allmba/ideas-portal/internal/config"
	"github.com/allmba/ideas-portal/internal/feed"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// errorResult creates an MCP error result.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// textResult creates a plain text MCP result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func handleGetVersion() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		out, err := json.Marshal(map[string]string{
			"version":    config.GetVersion(),
			"build":      config.GetBuild(),
			"git_commit": config.GetGitCommit(),
		})
		if err != nil {
			return errorResult("failed to marshal version info"), nil
		}
		return textResult(string(out)), nil
	}
}

func handleListDates(svc *feed.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dates, err := svc.Dates(ctx)
		if err != nil {
			return errorResult("failed to fetch idea dates: " + err.Error()), nil
		}
		out, err := json.Marshal(dates)
		if err != nil {
			return errorResult("failed to marshal dates"), nil
		}
		return textResult(string(out)), nil
	}
}

func handleListTypes(svc *feed.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		types, err := svc.Types(ctx)
		if err != nil {
			return errorResult("failed to fetch idea types: " + err.Error()), nil
		}
		out, err := json.Marshal(types)
		if err != nil {
			return errorResult("failed to marshal types"), nil
		}
		return textResult(string(out)), nil
	}
}

func handleGetIdeas(svc *feed.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date := request.GetString("date", "")
		typeFilter := request.GetString("type", "")

		coll, stale, err := svc.Collection(ctx, date)
		if err != nil {
			return errorResult("failed to fetch investment ideas: " + err.Error()), nil
		}

		return textResult(formatIdeas(coll, typeFilter, stale)), nil
	}
}
