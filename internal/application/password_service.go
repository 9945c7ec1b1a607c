package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/go-member-account/internal/domain/repository"
)

// PasswordChangeService re-authenticates a member with the current
// credential and replaces it atomically.
type PasswordChangeService struct {
	Repo      repo.MemberRepository
	Tx        repo.Transactor
	Encoder   CredentialEncoder
	Publisher Publisher
	Logger    *logrus.Logger
	Timeout   time.Duration
}

func NewPasswordChangeService(r repo.MemberRepository, tx repo.Transactor, enc CredentialEncoder, pub Publisher, logger *logrus.Logger, timeout time.Duration) *PasswordChangeService {
	return &PasswordChangeService{
		Repo:      r,
		Tx:        tx,
		Encoder:   enc,
		Publisher: pub,
		Logger:    logger,
		Timeout:   timeout,
	}
}

// ChangePassword returns nil, a *ValidationError, ErrMemberNotFound,
// ErrWrongPassword or a *PersistenceError. A failed verification never
// reaches the update.
func (s *PasswordChangeService) ChangePassword(ctx context.Context, req PasswordChangeRequest) (err error) {
	defer func() { record("change_password", err) }()

	req = req.normalize()
	if err := req.Validate(); err != nil {
		return err
	}

	encoded, err := s.Encoder.Encode(req.NewPassword)
	if err != nil {
		return &ValidationError{Fields: map[string]string{"new_password": "cannot be encoded: " + err.Error()}}
	}

	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()

	var name string
	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		m, err := s.Repo.FindByEmail(ctx, req.Email)
		if err != nil {
			return &PersistenceError{Op: "find member", Err: err}
		}
		if m == nil {
			return ErrMemberNotFound
		}
		if !s.Encoder.Verify(m.Password, req.OldPassword) {
			return ErrWrongPassword
		}
		if err := s.Repo.UpdatePassword(ctx, req.Email, encoded); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrMemberNotFound
			}
			return &PersistenceError{Op: "update password", Err: err}
		}
		name = m.Name
		return nil
	})
	if err = classify("change password", err); err != nil {
		logFailure(s.Logger, "password change rejected", req.Email, err)
		return err
	}

	if s.Logger != nil {
		s.Logger.WithField("email", req.Email).Info("password changed")
	}
	publish(ctx, s.Publisher, s.Logger, newMemberEvent(EventMemberPasswordChanged, req.Email, name, time.Now().UTC()))
	return nil
}
