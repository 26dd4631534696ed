package dialog

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HTTPHandler serves the operator side of the broker.
type HTTPHandler struct {
	broker *Broker
	logger *zap.SugaredLogger
}

// NewHTTPHandler creates the operator endpoints.
func NewHTTPHandler(broker *Broker, logger *zap.SugaredLogger) *HTTPHandler {
	return &HTTPHandler{broker: broker, logger: logger}
}

// ListPending handles GET /dialogs request.
func (h *HTTPHandler) ListPending(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"dialogs": h.broker.Pending()})
}

// Events handles GET /dialogs/events request.
// Streams the pending list as a "dialogs" event now and after every change.
func (h *HTTPHandler) Events(c *gin.Context) {
	ctx := c.Request.Context()
	changes, stop := h.broker.Watch()
	defer stop()

	// Streams outlive the server write timeout.
	if err := http.NewResponseController(c.Writer).SetWriteDeadline(time.Time{}); err != nil {
		h.logger.Debugw("write deadline not cleared for stream", "error", err)
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	for {
		c.SSEvent("dialogs", h.broker.Pending())
		c.Writer.Flush()

		select {
		case <-ctx.Done():
			return
		case <-changes:
		}
	}
}

// Answer handles POST /dialogs/:id/answer request.
func (h *HTTPHandler) Answer(c *gin.Context) {
	var resp Response
	if err := c.ShouldBindJSON(&resp); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	err := h.broker.Answer(c.Param("id"), resp)
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, ErrDialogNotFound):
		errorResponse(c, "NOT_FOUND", "dialog not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidAction):
		errorResponse(c, "INVALID_REQUEST", "action is not offered by this dialog", http.StatusBadRequest)
	default:
		h.logger.Errorw("error answering dialog", "dialog_id", c.Param("id"), "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}

// RegisterRoutes registers the operator dialog routes.
func RegisterRoutes(r gin.IRouter, h *HTTPHandler) {
	r.GET("/dialogs", h.ListPending)
	r.GET("/dialogs/events", h.Events)
	r.POST("/dialogs/:id/answer", h.Answer)
}

func errorResponse(c *gin.Context, code, message string, status int) {
	c.JSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}
