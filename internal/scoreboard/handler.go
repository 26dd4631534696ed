package scoreboard

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/purpleworks/workshop/pkg/timeprovider"
)

// ViewTemplate is the html template rendering the native board.
const ViewTemplate = "scoreboard.tmpl"

// Handler serves board snapshots, the native view, live updates and exports.
type Handler struct {
	board  *Board
	feed   Subscriber
	clock  timeprovider.TimeProvider
	logger *zap.SugaredLogger
}

// NewHandler creates a scoreboard handler.
func NewHandler(board *Board, feed Subscriber, clock timeprovider.TimeProvider, logger *zap.SugaredLogger) *Handler {
	if clock == nil {
		clock = timeprovider.New()
	}
	return &Handler{board: board, feed: feed, clock: clock, logger: logger}
}

// Snapshot handles GET /scoreboard request.
func (h *Handler) Snapshot(c *gin.Context) {
	snap, err := h.board.Snapshot(c.Request.Context())
	if err != nil {
		h.internalError(c, "error reading scoreboard", err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// View handles GET /scoreboard/view request.
func (h *Handler) View(c *gin.Context) {
	snap, err := h.board.Snapshot(c.Request.Context())
	if err != nil {
		h.internalError(c, "error reading scoreboard", err)
		return
	}

	c.HTML(http.StatusOK, ViewTemplate, gin.H{
		"Title":    "Scoreboard",
		"Snapshot": snap,
	})
}

// Events handles GET /scoreboard/events request.
// Streams one "snapshot" event immediately and one after every store change.
func (h *Handler) Events(c *gin.Context) {
	ctx := c.Request.Context()
	changes, unsubscribe := h.feed.Subscribe()
	defer unsubscribe()

	// Streams outlive the server write timeout.
	if err := http.NewResponseController(c.Writer).SetWriteDeadline(time.Time{}); err != nil {
		h.logger.Debugw("write deadline not cleared for stream", "error", err)
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	send := func() bool {
		snap, err := h.board.Snapshot(ctx)
		if err != nil {
			h.logger.Errorw("error reading scoreboard for stream", "error", err)
			return false
		}
		c.SSEvent("snapshot", snap)
		c.Writer.Flush()
		return true
	}

	if !send() {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok || !send() {
				return
			}
		}
	}
}

// Export handles GET /scoreboard/export request.
func (h *Handler) Export(c *gin.Context) {
	snap, err := h.board.Snapshot(c.Request.Context())
	if err != nil {
		h.internalError(c, "error reading scoreboard", err)
		return
	}

	now := h.clock.Now()
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, snap, now); err != nil {
		h.internalError(c, "error exporting scoreboard", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ExportFilename(now)))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *Handler) internalError(c *gin.Context, msg string, err error) {
	h.logger.Errorw(msg, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{"code": "INTERNAL_ERROR", "message": "internal server error"},
	})
}
