// Package teamimport replaces the team store with the groups posted by the random team page.
package teamimport

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	teamModel "github.com/purpleworks/workshop/internal/team/model"
)

// DefaultChannel is the bridge channel the random team page posts groups on.
const DefaultChannel = "teamSync"

// groupsField holds the ordered groups in an import payload.
const groupsField = "teams"

// Store replaces every team with one team per group.
type Store interface {
	ImportTeams(ctx context.Context, groups [][]string) ([]teamModel.Team, error)
}

// Decode extracts the groups from an untyped page payload of shape
// {"teams": [["name", ...], ...]}. Any other shape is rejected.
func Decode(payload interface{}) ([][]string, bool) {
	obj, ok := payload.(map[string]interface{})
	if !ok {
		return nil, false
	}
	raw, ok := obj[groupsField].([]interface{})
	if !ok {
		return nil, false
	}

	groups := make([][]string, 0, len(raw))
	for _, g := range raw {
		members, ok := g.([]interface{})
		if !ok {
			return nil, false
		}
		group := make([]string, 0, len(members))
		for _, m := range members {
			name, ok := m.(string)
			if !ok {
				return nil, false
			}
			group = append(group, name)
		}
		groups = append(groups, group)
	}
	return groups, true
}

// Importer applies import payloads to the store.
type Importer struct {
	store  Store
	logger *zap.SugaredLogger
}

// New creates an importer.
func New(store Store, logger *zap.SugaredLogger) *Importer {
	return &Importer{store: store, logger: logger}
}

// Handle imports a page payload. Malformed payloads are dropped without touching the store.
// It reports whether the store was replaced.
func (i *Importer) Handle(ctx context.Context, payload interface{}) bool {
	groups, ok := Decode(payload)
	if !ok {
		i.logger.Debugw("import payload dropped", "payload", payload)
		return false
	}

	if _, err := i.store.ImportTeams(ctx, groups); err != nil {
		i.logger.Errorw("error importing teams", "groups", len(groups), "error", err)
		return false
	}
	return true
}

// OnMessage adapts Handle to a bridge message handler.
func (i *Importer) OnMessage(ctx context.Context, payload interface{}) {
	i.Handle(ctx, payload)
}

// HTTPHandler handles POST /teams/import request. The payload is the same one the page
// posts on the bridge; the response is 204 whether or not it was applied.
func (i *Importer) HTTPHandler(c *gin.Context) {
	var payload interface{}
	if err := json.NewDecoder(c.Request.Body).Decode(&payload); err != nil {
		i.logger.Debugw("import body is not JSON", "error", err)
		c.Status(http.StatusNoContent)
		return
	}

	i.Handle(c.Request.Context(), payload)
	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers the direct import route.
func RegisterRoutes(r gin.IRouter, i *Importer) {
	r.POST("/teams/import", i.HTTPHandler)
}
