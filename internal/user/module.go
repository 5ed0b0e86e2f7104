package user

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Module mounts the /user routes on the API engine.
type Module struct{ h *Handler }

func NewModule(store Store, log *zap.Logger) *Module {
	return &Module{h: NewHandler(store, log)}
}

func (m *Module) MountAPI(root *gin.RouterGroup) {
	g := root.Group("/user")
	g.GET("", m.h.List)
	g.GET("/:id", m.h.Get)
	g.POST("", m.h.Create)
	g.PUT("/:id", m.h.Update)
	g.DELETE("/:id", m.h.Delete)
}
