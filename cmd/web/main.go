package main

import (
	"os"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"user-console/internal/core/config"
	"user-console/internal/core/logger"
	"user-console/internal/core/server"
	"user-console/internal/webui"
	"user-console/internal/webui/apiclient"
	"user-console/internal/webui/session"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	base := cfg.Web.APIBaseURL
	if v := os.Getenv("APP_WEB_API_BASE_URL"); v != "" {
		base = v
	}
	if base == "" {
		log.Fatal("web.api_base_url is required")
	}

	ttl := time.Duration(cfg.Web.SessionTTLMin) * time.Minute
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	var sessions session.Store
	if cfg.Redis.Addr != "" {
		sessions = session.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, ttl)
		log.Info("session store: redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		sessions = session.NewMemory(ttl)
		log.Info("session store: memory")
	}

	h, err := webui.NewHandler(apiclient.New(base), sessions, log)
	if err != nil {
		log.Fatal("build handler", zap.Error(err))
	}
	r := webui.NewEngine(log, h)

	addr := server.Addr(cfg.Web.HTTP.Host, cfg.Web.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.Web.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.Web.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.Web.HTTP.IdleTimeoutSec)*time.Second,
	)

	log.Info("web console starting", zap.String("addr", addr), zap.String("api", base))
	server.Run(srv, log)
}
