package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-member-account/internal/interface/http"
	"github.com/oksasatya/go-member-account/internal/interface/middleware"
)

// AccountModule exposes POST /api/members/password. The old password is the
// only credential, so the route is limited both per IP and per IP+path.
type AccountModule struct {
	Handler *handlers.MemberHandler
	Redis   *redis.Client
	Limit   int
	Allow   middleware.AllowFunc
}

func NewAccountModule(h *handlers.MemberHandler, rdb *redis.Client, limit int, allow middleware.AllowFunc) *AccountModule {
	return &AccountModule{Handler: h, Redis: rdb, Limit: limit, Allow: allow}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	members := rg.Group("/members")
	members.Use(
		middleware.RateLimit(m.Redis, m.Limit*4, time.Minute, middleware.KeyByIP(), m.Allow),
		middleware.RateLimit(m.Redis, m.Limit, time.Minute, middleware.KeyByIPAndPath(), m.Allow),
	)
	{
		members.POST("/password", m.Handler.ChangePassword)
	}
}
