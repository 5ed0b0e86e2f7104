package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	mdw "user-console/internal/transport/http/middleware"
	"user-console/internal/user"
)

// NewAPIEngine wires the REST surface: hardening middleware, open CORS,
// health/metrics, and every registered feature module at the root.
func NewAPIEngine(l *zap.Logger, db *gorm.DB) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.Recovery(l),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(), // allow any origin
	)

	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "Testing Servers") })
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	Register(user.NewModule(user.NewGormStore(db), l))
	MountAllAPI(r.Group(""))

	return r
}
