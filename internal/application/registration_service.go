package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-member-account/internal/domain/entity"
	repo "github.com/oksasatya/go-member-account/internal/domain/repository"
)

// RegistrationService creates members. It holds no per-call state and is
// safe for concurrent use.
type RegistrationService struct {
	Repo      repo.MemberRepository
	Tx        repo.Transactor
	Encoder   CredentialEncoder
	Publisher Publisher
	Logger    *logrus.Logger
	Timeout   time.Duration
	Now       func() time.Time
}

func NewRegistrationService(r repo.MemberRepository, tx repo.Transactor, enc CredentialEncoder, pub Publisher, logger *logrus.Logger, timeout time.Duration) *RegistrationService {
	return &RegistrationService{
		Repo:      r,
		Tx:        tx,
		Encoder:   enc,
		Publisher: pub,
		Logger:    logger,
		Timeout:   timeout,
		Now:       time.Now,
	}
}

// Register validates req, checks that the email is free and inserts the
// member in one transaction. It returns nil, a *ValidationError,
// ErrDuplicateMember or a *PersistenceError.
func (s *RegistrationService) Register(ctx context.Context, req RegistrationRequest) (err error) {
	defer func() { record("register", err) }()

	req = req.normalize()
	if err := req.Validate(); err != nil {
		return err
	}

	encoded, err := s.Encoder.Encode(req.Password)
	if err != nil {
		return &ValidationError{Fields: map[string]string{"password": "cannot be encoded: " + err.Error()}}
	}
	member := &entity.Member{
		Email:        req.Email,
		Password:     encoded,
		Name:         req.Name,
		RegisteredAt: s.now(),
	}

	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()

	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.Repo.FindByEmail(ctx, member.Email)
		if err != nil {
			return &PersistenceError{Op: "find member", Err: err}
		}
		if existing != nil {
			return ErrDuplicateMember
		}
		if err := s.Repo.Insert(ctx, member); err != nil {
			// A concurrent registration committed between the check and the insert.
			if errors.Is(err, repo.ErrDuplicateKey) {
				return ErrDuplicateMember
			}
			return &PersistenceError{Op: "insert member", Err: err}
		}
		return nil
	})
	if errors.Is(err, repo.ErrDuplicateKey) {
		err = ErrDuplicateMember
	}
	if err = classify("register", err); err != nil {
		logFailure(s.Logger, "registration rejected", member.Email, err)
		return err
	}

	if s.Logger != nil {
		s.Logger.WithField("email", member.Email).Info("member registered")
	}
	publish(ctx, s.Publisher, s.Logger, newMemberEvent(EventMemberRegistered, member.Email, member.Name, member.RegisteredAt))
	return nil
}

func (s *RegistrationService) now() time.Time {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	// Postgres keeps microseconds; truncate so a read-back compares equal.
	return now().UTC().Truncate(time.Microsecond)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func logFailure(logger *logrus.Logger, msg, email string, err error) {
	if logger == nil {
		return
	}
	entry := logger.WithError(err).WithField("email", email)
	if errors.Is(err, ErrPersistence) {
		entry.Error(msg)
		return
	}
	entry.Info(msg)
}

// publish is best effort: the member change is already committed, so a
// delivery failure is logged and swallowed.
func publish(ctx context.Context, pub Publisher, logger *logrus.Logger, ev MemberEvent) {
	if pub == nil {
		return
	}
	if err := pub.PublishJSON(context.WithoutCancel(ctx), ev); err != nil && logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{"email": ev.Email, "type": ev.Type}).Warn("publish member event failed")
	}
}
