package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/purpleworks/workshop/internal/config"
	"github.com/purpleworks/workshop/internal/dialog"
	"github.com/purpleworks/workshop/internal/health"
	"github.com/purpleworks/workshop/internal/middleware"
	"github.com/purpleworks/workshop/internal/navigation"
	"github.com/purpleworks/workshop/internal/scoreboard"
	"github.com/purpleworks/workshop/internal/team/repository"
	teamRouter "github.com/purpleworks/workshop/internal/team/router"
	"github.com/purpleworks/workshop/internal/team/service"
	"github.com/purpleworks/workshop/internal/teamimport"
	"github.com/purpleworks/workshop/internal/webhost"
	"github.com/purpleworks/workshop/pkg/timeprovider"
	"github.com/purpleworks/workshop/web"
)

// deps are the long-lived components the router is assembled from.
type deps struct {
	repo      repository.Repository
	feed      *scoreboard.Feed
	notifier  service.Notifier
	clipboard webhost.Clipboard
	checks    map[string]health.Check
	clock     timeprovider.TimeProvider
}

func newClipboard(source string) webhost.Clipboard {
	if source == config.ClipboardSystem {
		return webhost.SystemClipboard{}
	}
	return webhost.NewMemoryClipboard("")
}

// newRouter wires every module onto one gin engine.
func newRouter(cfg config.WebConfig, d deps, logger *zap.SugaredLogger) (*gin.Engine, error) {
	if d.clock == nil {
		d.clock = timeprovider.New()
	}
	if d.notifier == nil {
		d.notifier = d.feed
	}

	svc := service.New(d.repo, d.notifier, d.clock, logger)

	broker := dialog.NewBroker(cfg.DialogWaitTimeout, d.clock, logger)
	registry := webhost.NewRegistry(webhost.RegistryConfig{
		Bundle:        webhost.NewBundle(web.Pages()),
		Presenter:     broker,
		Clipboard:     d.clipboard,
		AutoPasteHook: cfg.AutoPasteHook,
		MaxHosts:      cfg.MaxHosts,
	}, logger)
	pages := webhost.NewHandler(registry, logger)
	board := scoreboard.NewHandler(scoreboard.NewBoard(svc), d.feed, d.clock, logger)
	importer := teamimport.New(svc, logger)
	nav := navigation.NewHandler(navigation.Config{
		BridgeChannel: cfg.BridgeChannel,
		AutoPaste:     cfg.AutoPaste,
	}, registry, pages, board, importer, logger)

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	r := gin.New()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger, "/health"))
	r.SetHTMLTemplate(tmpl)

	health.RegisterRoutes(r, health.New(d.checks, logger))
	teamRouter.RegisterRoutes(r, svc, logger)
	teamimport.RegisterRoutes(r, importer)
	scoreboard.RegisterRoutes(r, board)
	dialog.RegisterRoutes(r, dialog.NewHTTPHandler(broker, logger))
	webhost.RegisterRoutes(r, pages)
	navigation.RegisterRoutes(r, nav)

	return r, nil
}
