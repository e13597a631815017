package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"agentdesk/app/config"
	"agentdesk/app/service/agents"
	"agentdesk/app/service/conversation"
	"agentdesk/app/service/sampledata"
	"agentdesk/app/service/viz"
	"agentdesk/app/service/widgets"

	"github.com/mark3labs/mcp-go/server"
	"github.com/samber/do"
)

const version = "1.0.0"

// Server exposes the assistant as MCP tools over SSE, so other agents can
// drive the same engine the chat surface uses.
type Server struct {
	cfg *config.Config

	registry        *agents.Registry
	conversationSvc *conversation.Service
	generator       *sampledata.Generator
	vizSvc          *viz.Service
	widgetSvc       *widgets.Service

	mcp *server.MCPServer
}

func New(di *do.Injector) (*Server, error) {
	s := &Server{
		cfg:             do.MustInvoke[*config.Config](di),
		registry:        do.MustInvoke[*agents.Registry](di),
		conversationSvc: do.MustInvoke[*conversation.Service](di),
		generator:       do.MustInvoke[*sampledata.Generator](di),
		vizSvc:          do.MustInvoke[*viz.Service](di),
		widgetSvc:       do.MustInvoke[*widgets.Service](di),
	}

	s.mcp = server.NewMCPServer(
		"agentdesk",
		version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s, nil
}

func (s *Server) registerTools() {
	s.mcp.AddTool(askAgentTool, s.handleAskAgent)
	s.mcp.AddTool(generateDatasetTool, s.handleGenerateDataset)
	s.mcp.AddTool(listWidgetsTool, s.handleListWidgets)
	s.mcp.AddTool(saveWidgetTool, s.handleSaveWidget)
	s.mcp.AddTool(deleteWidgetTool, s.handleDeleteWidget)
}

func (s *Server) Run(ctx context.Context) error {
	sse := server.NewSSEServer(s.mcp)

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := sse.Shutdown(shutdownCtx); err != nil {
			slog.Warn("MCP server shutdown error", "error", err)
		}
	}()

	slog.Info("MCP server listening", "addr", s.cfg.MCP.Listen)

	if err := sse.Start(s.cfg.MCP.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}
