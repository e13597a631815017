package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"agentdesk/app/config"
	"agentdesk/app/service/agents"
	"agentdesk/app/service/conversation"
	"agentdesk/app/service/shortcuts"
	"agentdesk/app/service/viz"
	"agentdesk/app/service/widgets"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
)

// Server exposes the assistant engine over HTTP for the chat surface.
type Server struct {
	cfg      *config.Config
	app      *fiber.App
	validate *validator.Validate

	registry        *agents.Registry
	conversationSvc *conversation.Service
	vizSvc          *viz.Service
	widgetSvc       *widgets.Service
	shortcutSvc     *shortcuts.Service
}

func New(di *do.Injector) (*Server, error) {
	s := &Server{
		cfg:             do.MustInvoke[*config.Config](di),
		validate:        validator.New(validator.WithRequiredStructEnabled()),
		registry:        do.MustInvoke[*agents.Registry](di),
		conversationSvc: do.MustInvoke[*conversation.Service](di),
		vizSvc:          do.MustInvoke[*viz.Service](di),
		widgetSvc:       do.MustInvoke[*widgets.Service](di),
		shortcutSvc:     do.MustInvoke[*shortcuts.Service](di),
	}

	app := fiber.New(fiber.Config{
		AppName:               "agentdesk",
		DisableStartupMessage: true,
	})

	api := app.Group("/api")

	api.Get("/agents", s.handleListAgents)

	api.Get("/chat", s.handleGetChat)
	api.Post("/chat", s.handleSubmitChat)
	api.Post("/chat/agent", s.handleSwitchAgent)

	api.Get("/visualization", s.handleGetVisualization)
	api.Post("/visualization/toggle", s.handleToggleVisualization)
	api.Put("/visualization/chart", s.handleSetChartType)
	api.Get("/visualization/export", s.handleExportVisualization)

	api.Get("/widgets", s.handleListWidgets)
	api.Post("/widgets", s.handleSaveWidget)
	api.Delete("/widgets/:id", s.handleDeleteWidget)
	api.Get("/widgets/:id/export", s.handleExportWidget)

	api.Get("/shortcuts", s.handleListShortcuts)
	api.Post("/shortcuts/:id/activate", s.handleActivateShortcut)

	s.app = app

	return s, nil
}

func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()

		if err := s.app.ShutdownWithTimeout(5 * time.Second); err != nil {
			slog.Warn("API server shutdown error", "error", err)
		}
	}()

	slog.Info("API server listening", "addr", s.cfg.Server.Listen)

	if err := s.app.Listen(s.cfg.Server.Listen); err != nil {
		return fmt.Errorf("api server: %w", err)
	}

	return nil
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
