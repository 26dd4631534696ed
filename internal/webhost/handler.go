package webhost

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/purpleworks/workshop/internal/dialog"
)

// ClipboardRequest replaces the clipboard text.
type ClipboardRequest struct {
	Text string `json:"text"`
}

// Handler serves hosted pages and the page side of the host contract.
type Handler struct {
	registry *Registry
	logger   *zap.SugaredLogger
}

// NewHandler creates the web host endpoints.
func NewHandler(registry *Registry, logger *zap.SugaredLogger) *Handler {
	return &Handler{registry: registry, logger: logger}
}

// ServePage renders the host's page. A missing resource renders the fallback page.
func (h *Handler) ServePage(c *gin.Context, host *Host) {
	page, _ := h.registry.Render(host)
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// Page handles GET /pages/:file request with a plain host.
func (h *Handler) Page(c *gin.Context) {
	name, ext := SplitResource(c.Param("file"))
	h.ServePage(c, h.registry.Open(Options{Resource: name, Ext: ext}))
}

// Dialog handles POST /hosts/:id/dialogs request. It blocks until the dialog is answered;
// when the wait ends without an answer the page still receives the neutral value.
func (h *Handler) Dialog(c *gin.Context) {
	host, ok := h.host(c)
	if !ok {
		return
	}

	var req dialog.PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	// The answer may take longer than the server write timeout.
	if err := http.NewResponseController(c.Writer).SetWriteDeadline(time.Time{}); err != nil {
		h.logger.Debugw("write deadline not cleared for dialog", "error", err)
	}

	result, err := dialog.Dispatch(c.Request.Context(), host.Dialogs(), req)
	if errors.Is(err, dialog.ErrInvalidKind) {
		errorResponse(c, "INVALID_REQUEST", "kind must be alert, confirm or prompt", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.Warnw("page dialog resolved without answer", "host_id", host.ID(), "kind", req.Kind, "error", err)
	}

	c.JSON(http.StatusOK, result)
}

// Loaded handles POST /hosts/:id/loaded request.
// Responds with the auto-paste script once per host, 204 otherwise.
func (h *Handler) Loaded(c *gin.Context) {
	host, ok := h.host(c)
	if !ok {
		return
	}

	script, ok := host.DidFinishLoad()
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.Data(http.StatusOK, "text/javascript; charset=utf-8", []byte(script))
}

// Message handles POST /hosts/:id/messages/:channel request.
func (h *Handler) Message(c *gin.Context) {
	host, ok := h.host(c)
	if !ok {
		return
	}

	var payload interface{}
	if err := json.NewDecoder(c.Request.Body).Decode(&payload); err != nil {
		errorResponse(c, "INVALID_REQUEST", "message must be a JSON value", http.StatusBadRequest)
		return
	}

	if !host.Deliver(c.Request.Context(), c.Param("channel"), payload) {
		errorResponse(c, "NOT_FOUND", "channel not registered", http.StatusNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

// CloseHost handles DELETE /hosts/:id request.
func (h *Handler) CloseHost(c *gin.Context) {
	if !h.registry.Close(c.Param("id")) {
		errorResponse(c, "NOT_FOUND", "host not found", http.StatusNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetClipboard handles PUT /clipboard request.
func (h *Handler) SetClipboard(c *gin.Context) {
	var req ClipboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.registry.Clipboard().WriteText(req.Text); err != nil {
		h.logger.Errorw("error writing clipboard", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "clipboard unavailable", http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) host(c *gin.Context) (*Host, bool) {
	host, ok := h.registry.Get(c.Param("id"))
	if !ok {
		errorResponse(c, "NOT_FOUND", "host not found", http.StatusNotFound)
		return nil, false
	}
	return host, true
}

// RegisterRoutes registers web host routes.
func RegisterRoutes(r gin.IRouter, h *Handler) {
	r.GET("/pages/:file", h.Page)
	r.PUT("/clipboard", h.SetClipboard)

	hosts := r.Group("/hosts/:id")
	hosts.DELETE("", h.CloseHost)
	hosts.POST("/dialogs", h.Dialog)
	hosts.POST("/loaded", h.Loaded)
	hosts.POST("/messages/:channel", h.Message)
}

func errorResponse(c *gin.Context, code, message string, status int) {
	c.JSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}
