// Package handler provides HTTP handlers for team endpoints.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/purpleworks/workshop/internal/color"
	"github.com/purpleworks/workshop/internal/editor"
	teamModel "github.com/purpleworks/workshop/internal/team/model"
	"github.com/purpleworks/workshop/internal/team/service"
)

// Handler handles HTTP requests for team endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new team handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// ListTeams handles GET /teams request.
func (h *Handler) ListTeams(c *gin.Context) {
	teams, err := h.service.ListTeams(c.Request.Context())
	if err != nil {
		h.fail(c, "error listing teams", err)
		return
	}

	c.JSON(http.StatusOK, teamModel.NewTeamsResponse(teams))
}

// AddEditor handles GET /teams/editor request.
// Returns a fresh add-mode form with a random palette color.
func (h *Handler) AddEditor(c *gin.Context) {
	c.JSON(http.StatusOK, editor.NewAdd(nil).State())
}

// EditEditor handles GET /teams/:id/editor and POST /teams/:id/edit requests.
// Returns the edit-mode form pre-filled from the team.
func (h *Handler) EditEditor(c *gin.Context) {
	team, err := h.service.GetTeam(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "error opening team editor", err)
		return
	}

	c.JSON(http.StatusOK, editor.NewEdit(team).State())
}

// AddTeam handles POST /teams request.
func (h *Handler) AddTeam(c *gin.Context) {
	var req teamModel.SubmitTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	e := editor.NewAdd(nil)
	if err := e.Apply(&req); err != nil {
		h.fail(c, "error applying team form", err)
		return
	}

	var created *teamModel.Team
	err := e.Submit(func(name string, col color.Color) error {
		var err error
		created, err = h.service.AddTeam(c.Request.Context(), name, col)
		return err
	})
	if err != nil {
		h.fail(c, "error adding team", err)
		return
	}

	c.JSON(http.StatusCreated, map[string]interface{}{
		"team": teamModel.NewTeamResponse(created),
	})
}

// EditTeam handles PATCH /teams/:id request.
// An empty name keeps the current name.
func (h *Handler) EditTeam(c *gin.Context) {
	var req teamModel.SubmitTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	ctx := c.Request.Context()
	current, err := h.service.GetTeam(ctx, c.Param("id"))
	if err != nil {
		h.fail(c, "error loading team", err)
		return
	}

	e := editor.NewEdit(current)
	if err := e.Apply(&req); err != nil {
		h.fail(c, "error applying team form", err)
		return
	}

	var updated *teamModel.Team
	err = e.Submit(func(name string, col color.Color) error {
		var err error
		updated, err = h.service.EditTeam(ctx, current.ID, name, col)
		return err
	})
	if err != nil {
		h.fail(c, "error editing team", err)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"team": teamModel.NewTeamResponse(updated),
	})
}

// Increment handles POST /teams/:id/increment request.
func (h *Handler) Increment(c *gin.Context) {
	h.scoreAction(c, "increment", h.service.Increment)
}

// Decrement handles POST /teams/:id/decrement request.
func (h *Handler) Decrement(c *gin.Context) {
	h.scoreAction(c, "decrement", h.service.Decrement)
}

// ResetScore handles POST /teams/:id/reset request.
func (h *Handler) ResetScore(c *gin.Context) {
	h.scoreAction(c, "reset", h.service.ResetScore)
}

func (h *Handler) scoreAction(
	c *gin.Context,
	action string,
	apply func(ctx context.Context, id string) (*teamModel.Team, error),
) {
	team, err := apply(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "error applying "+action, err)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"team": teamModel.NewTeamResponse(team),
	})
}

// ResetAll handles POST /teams/reset request.
func (h *Handler) ResetAll(c *gin.Context) {
	if err := h.service.ResetAll(c.Request.Context()); err != nil {
		h.fail(c, "error resetting scores", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteTeam handles DELETE /teams/:id request.
func (h *Handler) DeleteTeam(c *gin.Context) {
	if err := h.service.DeleteTeam(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "error deleting team", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteTeams handles POST /teams/delete request.
func (h *Handler) DeleteTeams(c *gin.Context) {
	var req teamModel.DeleteTeamsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "ids list is required", http.StatusBadRequest)
		return
	}

	deleted, err := h.service.DeleteTeams(c.Request.Context(), req.IDs)
	if err != nil {
		h.fail(c, "error deleting teams", err)
		return
	}

	c.JSON(http.StatusOK, teamModel.DeleteTeamsResponse{Deleted: deleted})
}

// fail maps service errors onto HTTP error responses.
func (h *Handler) fail(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, teamModel.ErrTeamNotFound):
		notFoundResponse(c, "team not found")
	case errors.Is(err, teamModel.ErrInvalidTeamID):
		errorResponse(c, "INVALID_REQUEST", "team id is required", http.StatusBadRequest)
	case errors.Is(err, teamModel.ErrInvalidColor):
		errorResponse(c, "INVALID_REQUEST", "color must be a hex value or a palette index", http.StatusBadRequest)
	case errors.Is(err, editor.ErrSubmitBlocked):
		errorResponse(c, "NAME_REQUIRED", teamModel.ErrNameRequired.Error(), http.StatusBadRequest)
	default:
		h.logger.Errorw(msg, "team_id", c.Param("id"), "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
