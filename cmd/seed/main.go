package main

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-member-account/config"
	"github.com/oksasatya/go-member-account/internal/application"
	"github.com/oksasatya/go-member-account/internal/container"
	pginfra "github.com/oksasatya/go-member-account/internal/infrastructure/postgres"
	"github.com/oksasatya/go-member-account/pkg/helpers"
)

// Seeds one demo member through the registration service, so the seeded row
// goes through the same validation and encoding as a real sign-up.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{MaxConns: 2})
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	c := container.New(cfg, logger, pool, nil, nil)

	email := getenvDefault("SEED_EMAIL", "demo@example.com")
	password := getenvDefault("SEED_PASSWORD", "password123")
	name := getenvDefault("SEED_NAME", "Demo Member")

	req, err := application.NewRegistrationRequest(email, password, password, name)
	if err != nil {
		logger.Fatalf("invalid seed member: %v", err)
	}
	err = c.Registration.Register(ctx, req)
	switch {
	case err == nil:
		logger.WithField("email", email).Info("seeded member")
	case errors.Is(err, application.ErrDuplicateMember):
		logger.WithField("email", email).Info("seed member already present")
	default:
		logger.Fatalf("failed to seed member: %v", err)
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
