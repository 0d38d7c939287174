package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const dateHelp = `Day as YYYY-MM-DD, or "today", "yesterday", "tomorrow". Defaults to today.`

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListDaysTool(srv, svc)
	registerGetDayTool(srv, svc)
	registerAddTodoTool(srv, svc)
	registerToggleTodoTool(srv, svc)
	registerAddExpenseTool(srv, svc)
	registerSetInsightTool(srv, svc)
	registerSearchDaysTool(srv, svc)
	registerAlmanacTool(srv, svc)
}

func registerListDaysTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_days",
		mcp.WithDescription("List recorded days with todo, expense and media counts."),
		mcp.WithString("since",
			mcp.Description("Optional first day (YYYY-MM-DD)."),
		),
		mcp.WithString("until",
			mcp.Description("Optional last day (YYYY-MM-DD)."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		since := strings.TrimSpace(request.GetString("since", ""))
		until := strings.TrimSpace(request.GetString("until", ""))
		days, err := svc.ListDays(ctx, since, until)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"days":  days,
			"count": len(days),
		})
	})
}

func registerGetDayTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_day",
		mcp.WithDescription("Fetch everything recorded on a day."),
		mcp.WithString("date", mcp.Description(dateHelp)),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.Day(ctx, request.GetString("date", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerAddTodoTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_todo",
		mcp.WithDescription("Append an open todo to a day."),
		mcp.WithString("date", mcp.Description(dateHelp)),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("What needs doing."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.AddTodo(ctx, request.GetString("date", ""), text)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerToggleTodoTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_todo",
		mcp.WithDescription("Mark a todo done, or open again if it was done."),
		mcp.WithString("date", mcp.Description(dateHelp)),
		mcp.WithNumber("position",
			mcp.Required(),
			mcp.Description("1-based position of the todo in the day's list."),
			mcp.Min(1),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pos, err := request.RequireInt("position")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.ToggleTodo(ctx, request.GetString("date", ""), pos)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerAddExpenseTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_expense",
		mcp.WithDescription("Record a spending line on a day."),
		mcp.WithString("date", mcp.Description(dateHelp)),
		mcp.WithString("item",
			mcp.Required(),
			mcp.Description("What the money was spent on."),
		),
		mcp.WithString("amount",
			mcp.Required(),
			mcp.Description("Non-negative decimal amount, for example 12.50."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Date   string `json:"date"`
			Item   string `json:"item"`
			Amount string `json:"amount"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.AddExpense(ctx, args.Date, args.Item, args.Amount)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSetInsightTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_insight",
		mcp.WithDescription("Replace the day's insight note. HTML markup is kept as is."),
		mcp.WithString("date", mcp.Description(dateHelp)),
		mcp.WithString("insight",
			mcp.Required(),
			mcp.Description("New note text or HTML."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		markup, err := request.RequireString("insight")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.SetInsight(ctx, request.GetString("date", ""), markup)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSearchDaysTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"search_days",
		mcp.WithDescription("Search todos, expenses, insights and summaries by substring."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Case-insensitive search text."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of days to return (default 20)."),
			mcp.Min(1),
			mcp.Max(100),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		limit := request.GetInt("limit", 20)

		results, err := svc.SearchDays(ctx, query, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"query":   query,
			"limit":   limit,
			"results": results,
			"count":   len(results),
		})
	})
}

func registerAlmanacTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_almanac",
		mcp.WithDescription("Traditional almanac for a day: day name, zodiac year, favorable and unfavorable activities."),
		mcp.WithString("date", mcp.Description(dateHelp)),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		info, err := svc.Almanac(request.GetString("date", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(info)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
