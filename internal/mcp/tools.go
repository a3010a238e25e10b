package mcp

import (
	"github.com/allmba/ideas-portal/internal/feed"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers the idea feed tools on the MCP server and
// returns how many were added.
func RegisterTools(s *server.MCPServer, svc *feed.Service) int {
	s.AddTool(versionTool(), handleGetVersion())
	s.AddTool(listDatesTool(), handleListDates(svc))
	s.AddTool(listTypesTool(), handleListTypes(svc))
	s.AddTool(getIdeasTool(), handleGetIdeas(svc))
	return 4
}

func versionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the ideas portal version. Use this to verify connectivity."),
	)
}

func listDatesTool() mcp.Tool {
	return mcp.NewTool("list_idea_dates",
		mcp.WithDescription("List the dates with published investment ideas, most recent first."),
	)
}

func listTypesTool() mcp.Tool {
	return mcp.NewTool("list_idea_types",
		mcp.WithDescription("List the distinct investment idea types available for filtering."),
	)
}

func getIdeasTool() mcp.Tool {
	return mcp.NewTool("get_investment_ideas",
		mcp.WithDescription("Get the investment ideas for a date, grouped by market, with formatted metrics and data provenance."),
		mcp.WithString("date", mcp.Description("Idea date in YYYY-MM-DD form. Uses the latest published date if not specified.")),
		mcp.WithString("type", mcp.Description("Filter to one idea type (e.g. 'Stock', 'ETF'). All types if not specified.")),
	)
}
