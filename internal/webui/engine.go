package webui

import (
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewEngine builds the console's gin engine. The console is plain
// server-rendered HTML, so it keeps a lighter middleware chain than the API.
func NewEngine(l *zap.Logger, h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(ginzap.Ginzap(l, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(l, true))

	r.GET("/", h.Index)
	r.POST("/refresh", h.Refresh)
	r.POST("/users/new", h.OpenCreate)
	r.POST("/users/:id/edit", h.OpenEdit)
	r.POST("/users/cancel", h.CloseModal)
	r.POST("/users/submit", h.Submit)
	r.POST("/users/:id/delete", h.OpenDelete)
	r.POST("/users/delete/cancel", h.CancelDelete)
	r.POST("/users/delete/confirm", h.ConfirmDelete)
	r.POST("/flash/dismiss", h.DismissFlash)

	return r
}
