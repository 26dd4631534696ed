package scoreboard

import "github.com/gin-gonic/gin"

// RegisterRoutes registers scoreboard routes.
func RegisterRoutes(r gin.IRouter, h *Handler) {
	g := r.Group("/scoreboard")
	g.GET("", h.Snapshot)
	g.GET("/view", h.View)
	g.GET("/events", h.Events)
	g.GET("/export", h.Export)
}
