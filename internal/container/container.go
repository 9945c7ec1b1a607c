package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-member-account/config"
	"github.com/oksasatya/go-member-account/internal/application"
	"github.com/oksasatya/go-member-account/internal/domain/repository"
	pginfra "github.com/oksasatya/go-member-account/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-member-account/internal/interface/http"
	"github.com/oksasatya/go-member-account/pkg/helpers"
)

// Container holds the constructed components shared by the router modules.
// It is built once in main and passed down explicitly.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	Redis  *redis.Client
	Health handlers.Pinger

	Members repository.MemberRepository
	Tx      repository.Transactor

	Registration   *application.RegistrationService
	PasswordChange *application.PasswordChangeService
}

// Deps are the externally owned resources a Container is built from.
// Publisher may be nil when member events are disabled.
type Deps struct {
	Members   repository.MemberRepository
	Tx        repository.Transactor
	Encoder   application.CredentialEncoder
	Publisher application.Publisher
	Redis     *redis.Client
	Health    handlers.Pinger
}

// New wires the Postgres-backed member store and the services on top of it.
func New(cfg *config.Config, logger *logrus.Logger, pool *pgxpool.Pool, rdb *redis.Client, pub *helpers.RabbitPublisher) *Container {
	d := Deps{
		Members: pginfra.NewMemberRepository(pool),
		Tx:      pginfra.NewTransactor(pool),
		Encoder: helpers.NewBcryptEncoder(cfg.BcryptCost),
		Redis:   rdb,
		Health:  pool,
	}
	// a nil *RabbitPublisher must not end up in a non-nil interface
	if pub != nil {
		d.Publisher = pub
	}
	return Build(cfg, logger, d)
}

// Build wires the services from already constructed dependencies.
func Build(cfg *config.Config, logger *logrus.Logger, d Deps) *Container {
	return &Container{
		Config:         cfg,
		Logger:         logger,
		Redis:          d.Redis,
		Health:         d.Health,
		Members:        d.Members,
		Tx:             d.Tx,
		Registration:   application.NewRegistrationService(d.Members, d.Tx, d.Encoder, d.Publisher, logger, cfg.OpTimeout),
		PasswordChange: application.NewPasswordChangeService(d.Members, d.Tx, d.Encoder, d.Publisher, logger, cfg.OpTimeout),
	}
}
