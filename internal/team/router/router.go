// Package router provides team module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/purpleworks/workshop/internal/team/handler"
	"github.com/purpleworks/workshop/internal/team/service"
)

// RegisterRoutes registers team module routes.
func RegisterRoutes(r gin.IRouter, svc service.Service, logger *zap.SugaredLogger) {
	h := handler.New(svc, logger)

	teams := r.Group("/teams")
	teams.GET("", h.ListTeams)
	teams.POST("", h.AddTeam)
	teams.GET("/editor", h.AddEditor)
	teams.POST("/reset", h.ResetAll)
	teams.POST("/delete", h.DeleteTeams)

	teams.PATCH("/:id", h.EditTeam)
	teams.DELETE("/:id", h.DeleteTeam)
	teams.GET("/:id/editor", h.EditEditor)
	teams.POST("/:id/edit", h.EditEditor)
	teams.POST("/:id/increment", h.Increment)
	teams.POST("/:id/decrement", h.Decrement)
	teams.POST("/:id/reset", h.ResetScore)
}
