package navigation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/purpleworks/workshop/internal/scoreboard"
	"github.com/purpleworks/workshop/internal/teamimport"
	"github.com/purpleworks/workshop/internal/webhost"
)

// Templates rendered by the shell.
const (
	ShellTemplate       = "shell.tmpl"
	PlaceholderTemplate = "placeholder.tmpl"
)

// Config tunes the hosted destinations.
type Config struct {
	// BridgeChannel is the channel the random team page posts groups on.
	BridgeChannel string
	// AutoPaste delivers clipboard text to the random team page after it loads.
	AutoPaste bool
}

// SelectionCookie remembers each client's selected destination.
const SelectionCookie = "destination"

const selectionMaxAge = 30 * 24 * 60 * 60

// SelectRequest changes the selection.
type SelectRequest struct {
	Destination Destination `json:"destination" binding:"required"`
}

// Handler serves the shell and its destinations. Every client keeps its own selection.
type Handler struct {
	cfg      Config
	registry *webhost.Registry
	pages    *webhost.Handler
	board    *scoreboard.Handler
	importer *teamimport.Importer
	logger   *zap.SugaredLogger
}

// NewHandler creates the navigation endpoints.
func NewHandler(
	cfg Config,
	registry *webhost.Registry,
	pages *webhost.Handler,
	board *scoreboard.Handler,
	importer *teamimport.Importer,
	logger *zap.SugaredLogger,
) *Handler {
	if cfg.BridgeChannel == "" {
		cfg.BridgeChannel = teamimport.DefaultChannel
	}
	return &Handler{
		cfg:      cfg,
		registry: registry,
		pages:    pages,
		board:    board,
		importer: importer,
		logger:   logger,
	}
}

// shellFor restores the client's selection from its cookie.
func (h *Handler) shellFor(c *gin.Context) *Shell {
	shell := NewShell()
	if d, err := c.Cookie(SelectionCookie); err == nil && d != "" {
		if err := shell.Select(Destination(d)); err != nil {
			h.logger.Debugw("ignoring stale destination cookie", "destination", d)
		}
	}
	return shell
}

func (h *Handler) remember(c *gin.Context, d Destination) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SelectionCookie, string(d), selectionMaxAge, "/", "", false, true)
}

// Index handles GET / request. An optional ?selected= query changes the selection first.
func (h *Handler) Index(c *gin.Context) {
	shell := h.shellFor(c)
	if d := c.Query("selected"); d != "" {
		if err := shell.Select(Destination(d)); err != nil {
			h.logger.Debugw("ignoring unknown destination", "destination", d)
		} else {
			h.remember(c, shell.Selected())
		}
	}

	c.HTML(http.StatusOK, ShellTemplate, shell.State())
}

// State handles GET /nav request.
func (h *Handler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.shellFor(c).State())
}

// Select handles PUT /nav/selection request.
func (h *Handler) Select(c *gin.Context) {
	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "destination is required", http.StatusBadRequest)
		return
	}

	shell := h.shellFor(c)
	if err := shell.Select(req.Destination); err != nil {
		if errors.Is(err, ErrUnknownDestination) {
			errorResponse(c, "INVALID_REQUEST", "unknown destination", http.StatusBadRequest)
			return
		}
		h.logger.Errorw("error selecting destination", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	h.remember(c, shell.Selected())
	c.JSON(http.StatusOK, shell.State())
}

// Destination handles GET /app/:destination request.
func (h *Handler) Destination(c *gin.Context) {
	switch Destination(c.Param("destination")) {
	case RandomTeam:
		h.pages.ServePage(c, h.registry.Open(webhost.Options{
			Resource:  "randomTeam",
			Ext:       "html",
			Channel:   h.cfg.BridgeChannel,
			OnMessage: h.importer.OnMessage,
			AutoPaste: h.cfg.AutoPaste,
		}))
	case ScoreboardWeb:
		h.pages.ServePage(c, h.registry.Open(webhost.Options{
			Resource: "scoreboard",
			Ext:      "html",
		}))
	case Scoreboard:
		h.board.View(c)
	case Etc:
		c.HTML(http.StatusOK, PlaceholderTemplate, gin.H{
			"Title":   "More",
			"Message": "Reserved for future features.",
		})
	default:
		errorResponse(c, "NOT_FOUND", "unknown destination", http.StatusNotFound)
	}
}

// RegisterRoutes registers navigation routes.
func RegisterRoutes(r gin.IRouter, h *Handler) {
	r.GET("/", h.Index)
	r.GET("/nav", h.State)
	r.PUT("/nav/selection", h.Select)
	r.GET("/app/:destination", h.Destination)
}

func errorResponse(c *gin.Context, code, message string, status int) {
	c.JSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}
