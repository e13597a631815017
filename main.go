package main

import (
	"agentdesk/app/api"
	"agentdesk/app/config"
	appmcp "agentdesk/app/mcp"
	"agentdesk/app/service/agents"
	"agentdesk/app/service/conversation"
	"agentdesk/app/service/engine"
	"agentdesk/app/service/events"
	"agentdesk/app/service/queue"
	"agentdesk/app/service/sampledata"
	"agentdesk/app/service/shortcuts"
	"agentdesk/app/service/viz"
	"agentdesk/app/service/widgets"
	"agentdesk/app/storage/kvstore"
	"agentdesk/app/util/mylog"
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, kvstore.New)
	do.Provide(di, events.New)
	do.Provide(di, agents.New)
	do.Provide(di, sampledata.New)
	do.Provide(di, queue.New)
	do.Provide(di, viz.New)
	do.Provide(di, conversation.New)
	do.Provide(di, widgets.New)
	do.Provide(di, shortcuts.New)
	do.Provide(di, engine.New)
	do.Provide(di, api.New)
	do.Provide(di, appmcp.New)

	// instantiated eagerly so it subscribes before the first turn
	do.MustInvoke[*shortcuts.Service](di)

	slog.Info("Service started")

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	group, groupCtx := errgroup.WithContext(appCtx)

	group.Go(func() error {
		return do.MustInvoke[*engine.Service](di).Run(groupCtx)
	})

	group.Go(func() error {
		return do.MustInvoke[*api.Server](di).Run(groupCtx)
	})

	if cfg.MCP.Listen != "" {
		group.Go(func() error {
			return do.MustInvoke[*appmcp.Server](di).Run(groupCtx)
		})
	}

	if err := group.Wait(); err != nil {
		log.Fatalf("service failed: %v", err)
	}
}
