package engine

import (
	"context"
	"log/slog"
	"time"

	"agentdesk/app/config"
	"agentdesk/app/service/conversation"
	"agentdesk/app/service/queue"

	"github.com/samber/do"
)

// Service drives pending chat turns: it consumes the submission queue,
// waits out the simulated typing delay and runs the turn pipeline.
type Service struct {
	cfg             *config.Config
	conversationSvc *conversation.Service
	queueSvc        *queue.Service
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		cfg:             do.MustInvoke[*config.Config](di),
		conversationSvc: do.MustInvoke[*conversation.Service](di),
		queueSvc:        do.MustInvoke[*queue.Service](di),
	}, nil
}

func (s *Service) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case query, ok := <-s.queueSvc.Channel():
			if !ok {
				return nil
			}

			s.runTurn(ctx, query)
		}
	}
}

func (s *Service) runTurn(ctx context.Context, query string) {
	defer s.queueSvc.Release()

	if delay := s.cfg.Chat.TypingDelay(); delay > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}

	start := time.Now()

	if _, err := s.conversationSvc.RunTurn(query); err != nil {
		slog.Warn("RunTurn error", "error", err)
		return
	}

	slog.Info("Processed turn",
		"query", query,
		"duration", time.Since(start))
}
