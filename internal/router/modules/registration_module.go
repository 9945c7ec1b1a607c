package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-member-account/internal/interface/http"
	"github.com/oksasatya/go-member-account/internal/interface/middleware"
)

// RegistrationModule wires the three-step sign-up flow:
// GET  /api/register/step1  terms page
// POST /api/register/step2  accept or decline the terms
// GET  /api/register/step2  redirect back to step1
// POST /api/register/step3  submit the form (rate limited per IP)
type RegistrationModule struct {
	Handler *handlers.MemberHandler
	Redis   *redis.Client
	Limit   int
	Allow   middleware.AllowFunc
}

func NewRegistrationModule(h *handlers.MemberHandler, rdb *redis.Client, limit int, allow middleware.AllowFunc) *RegistrationModule {
	return &RegistrationModule{Handler: h, Redis: rdb, Limit: limit, Allow: allow}
}

func (m *RegistrationModule) Register(rg *gin.RouterGroup) {
	submitLimiter := middleware.RateLimit(m.Redis, m.Limit, time.Minute, middleware.KeyByIPAndPath(), m.Allow)

	reg := rg.Group("/register")
	{
		reg.GET("/step1", m.Handler.Terms)
		reg.POST("/step2", m.Handler.AcceptTerms)
		reg.GET("/step2", m.Handler.FormWithoutTerms)
		reg.POST("/step3", submitLimiter, m.Handler.Submit)
	}
}
