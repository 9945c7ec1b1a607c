package router

import (
	"github.com/oksasatya/go-member-account/internal/container"
	handlers "github.com/oksasatya/go-member-account/internal/interface/http"
	"github.com/oksasatya/go-member-account/internal/interface/middleware"
	"github.com/oksasatya/go-member-account/internal/router/modules"
)

// InitModules builds the handlers from c and registers every module with the
// registry. Call it once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	members := handlers.NewMemberHandler(c.Registration, c.PasswordChange, c.Logger)
	health := handlers.NewHealthHandler(c.Health)

	var allow middleware.AllowFunc
	if c.Config.RateLimitTrustPrivate {
		allow = middleware.AllowPrivateIP()
	}

	r.Add(modules.NewRegistrationModule(members, c.Redis, c.Config.RegisterRateLimit, allow))
	r.Add(modules.NewAccountModule(members, c.Redis, c.Config.PasswordChangeRateLimit, allow))
	r.Add(modules.NewHealthModule(health, c.Redis))
}
