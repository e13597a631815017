package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"agentdesk/app/service/agents"
	"agentdesk/app/service/viz"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) handleAskAgent(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	msg, err := s.conversationSvc.Ask(query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ask failed: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("[%s agent] %s", msg.AgentType, msg.Content)), nil
}

func (s *Server) handleGenerateDataset(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agent := agents.Type(request.GetString("agent", string(s.conversationSvc.CurrentAgent())))
	if !s.registry.Valid(agent) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown agent %q", agent)), nil
	}

	var topics []string
	if topic := request.GetString("topic", ""); topic != "" {
		topics = []string{topic}
	}

	dataset := s.generator.Generate(agent, topics)
	s.vizSvc.SetDataset(dataset)

	pretty, err := dataset.PrettyJSON()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}

	return mcp.NewToolResultText(pretty), nil
}

func (s *Server) handleListWidgets(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := s.widgetSvc.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}

	if len(list) == 0 {
		return mcp.NewToolResultText("No widgets saved yet."), nil
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}

	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleSaveWidget(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: title"), nil
	}

	chartType := viz.ChartType(request.GetString("chart_type", string(viz.ChartLine)))

	widget, err := s.widgetSvc.Save(ctx, title, s.vizSvc.Dataset(), chartType)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("save failed: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Saved widget %s (%q)", widget.ID, widget.Title)), nil
}

func (s *Server) handleDeleteWidget(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	if err := s.widgetSvc.Delete(ctx, id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("delete failed: %v", err)), nil
	}

	return mcp.NewToolResultText("ok"), nil
}
