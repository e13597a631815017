package api

import (
	"errors"
	"fmt"

	"agentdesk/app/service/agents"
	"agentdesk/app/service/conversation"
	"agentdesk/app/service/sampledata"
	"agentdesk/app/service/shortcuts"
	"agentdesk/app/service/viz"
	"agentdesk/app/service/widgets"

	"github.com/gofiber/fiber/v2"
)

type agentInfo struct {
	Type        agents.Type `json:"type"`
	DisplayName string      `json:"displayName"`
	Description string      `json:"description"`
	Current     bool        `json:"current"`
}

func (s *Server) handleListAgents(c *fiber.Ctx) error {
	current := s.conversationSvc.CurrentAgent()

	result := make([]agentInfo, 0, 3)
	for _, p := range s.registry.All() {
		result = append(result, agentInfo{
			Type:        p.Type,
			DisplayName: p.DisplayName,
			Description: p.Description,
			Current:     p.Type == current,
		})
	}

	return c.JSON(result)
}

func (s *Server) handleGetChat(c *fiber.Ctx) error {
	messages := s.conversationSvc.Messages()
	if messages == nil {
		messages = []*conversation.Message{}
	}

	return c.JSON(fiber.Map{
		"messages":      messages,
		"currentAgent":  s.conversationSvc.CurrentAgent(),
		"awaitingReply": s.conversationSvc.Awaiting(),
		"context":       s.conversationSvc.Context(),
	})
}

type submitChatRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleSubmitChat(c *fiber.Ctx) error {
	var req submitChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	msg, err := s.conversationSvc.Submit(req.Text)
	switch {
	case errors.Is(err, conversation.ErrEmptyQuery):
		// empty input is ignored, not an error
		return c.SendStatus(fiber.StatusNoContent)
	case errors.Is(err, conversation.ErrBusy):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "the agent is still composing a reply"})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusAccepted).JSON(msg)
}

type switchAgentRequest struct {
	Agent string `json:"agent" validate:"required"`
}

func (s *Server) handleSwitchAgent(c *fiber.Ctx) error {
	var req switchAgentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := s.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	msg, err := s.conversationSvc.SwitchAgent(agents.Type(req.Agent))
	if err != nil {
		if errors.Is(err, conversation.ErrUnknownAgent) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"currentAgent": s.conversationSvc.CurrentAgent(),
		"message":      msg,
	})
}

func (s *Server) handleGetVisualization(c *fiber.Ctx) error {
	snap := s.vizSvc.Snapshot()

	resp := fiber.Map{
		"dataset":   snap.Dataset,
		"chartType": snap.ChartType,
		"visible":   snap.Visible,
		"metrics":   viz.Metrics(snap.Dataset),
	}

	if snap.ChartType == viz.ChartPie {
		resp["slices"] = viz.PieSlices(snap.Dataset)
	} else {
		resp["series"] = viz.AxisSeries(snap.Dataset)
	}

	return c.JSON(resp)
}

func (s *Server) handleToggleVisualization(c *fiber.Ctx) error {
	visible, err := s.vizSvc.Toggle()
	if err != nil {
		if errors.Is(err, viz.ErrNoDataset) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"warning": "no data available to visualize yet"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"visible": visible})
}

type setChartTypeRequest struct {
	ChartType string `json:"chartType" validate:"required"`
}

func (s *Server) handleSetChartType(c *fiber.Ctx) error {
	var req setChartTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := s.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	chartType, err := viz.ParseChartType(req.ChartType)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	if err := s.vizSvc.SetChartType(chartType); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"chartType": chartType})
}

func (s *Server) handleExportVisualization(c *fiber.Ctx) error {
	dataset := s.vizSvc.Dataset()
	if dataset == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no dataset to export"})
	}

	return sendDataset(c, dataset, dataset.Title)
}

func (s *Server) handleListWidgets(c *fiber.Ctx) error {
	list, err := s.widgetSvc.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if list == nil {
		list = []*widgets.SavedWidget{}
	}

	return c.JSON(list)
}

type saveWidgetRequest struct {
	Title     string              `json:"title" validate:"required"`
	ChartType string              `json:"chartType" validate:"required,oneof=line bar pie"`
	Data      *sampledata.Dataset `json:"data"`
}

func (s *Server) handleSaveWidget(c *fiber.Ctx) error {
	var req saveWidgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := s.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	// Absent payload data falls back to the currently visualized dataset.
	dataset := req.Data
	if dataset == nil {
		dataset = s.vizSvc.Dataset()
	}

	widget, err := s.widgetSvc.Save(c.Context(), req.Title, dataset, viz.ChartType(req.ChartType))
	if err != nil {
		if errors.Is(err, widgets.ErrEmptyTitle) || errors.Is(err, widgets.ErrNoData) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(widget)
}

func (s *Server) handleDeleteWidget(c *fiber.Ctx) error {
	if c.Query("confirm") != "true" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "deletion requires confirm=true"})
	}

	if err := s.widgetSvc.Delete(c.Context(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleExportWidget(c *fiber.Ctx) error {
	widget, err := s.widgetSvc.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, widgets.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "widget not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return sendDataset(c, widget.Data, widget.Title)
}

func (s *Server) handleListShortcuts(c *fiber.Ctx) error {
	list, err := s.shortcutSvc.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if list == nil {
		list = []*shortcuts.Shortcut{}
	}

	return c.JSON(list)
}

func (s *Server) handleActivateShortcut(c *fiber.Ctx) error {
	err := s.shortcutSvc.Activate(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, shortcuts.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "shortcut not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func sendDataset(c *fiber.Ctx, dataset *sampledata.Dataset, title string) error {
	pretty, err := dataset.PrettyJSON()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	filename := sampledata.Slug(title) + ".json"
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)

	return c.SendString(pretty)
}
