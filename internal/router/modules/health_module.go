package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-member-account/internal/interface/http"
	"github.com/oksasatya/go-member-account/internal/interface/middleware"
)

type HealthModule struct {
	Handler *handlers.HealthHandler
	Redis   *redis.Client
}

func NewHealthModule(h *handlers.HealthHandler, rdb *redis.Client) *HealthModule {
	return &HealthModule{Handler: h, Redis: rdb}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.Handler.Health)

	// expvar counters (member_outcomes), rate-limited per IP
	rl := middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
