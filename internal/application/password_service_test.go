package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-member-account/internal/application"
	"github.com/oksasatya/go-member-account/internal/domain/entity"
	"github.com/oksasatya/go-member-account/internal/infrastructure/memory"
	"github.com/oksasatya/go-member-account/pkg/helpers"
)

type PasswordChangeSuite struct {
	suite.Suite
	ctx     context.Context
	store   *memory.Store
	pub     *recordingPublisher
	logs    *logtest.Hook
	encoder *helpers.BcryptEncoder
	svc     *application.PasswordChangeService
}

func TestPasswordChangeSuite(t *testing.T) {
	suite.Run(t, new(PasswordChangeSuite))
}

func (s *PasswordChangeSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.New()
	s.pub = &recordingPublisher{}
	var logger *logrus.Logger
	logger, s.logs = logtest.NewNullLogger()
	s.encoder = helpers.NewBcryptEncoder(bcrypt.MinCost)
	s.svc = application.NewPasswordChangeService(s.store, s.store, s.encoder, s.pub, logger, time.Second)

	encoded, err := s.encoder.Encode("old")
	s.Require().NoError(err)
	s.Require().NoError(s.store.Insert(s.ctx, &entity.Member{
		Email:        "a@x.io",
		Password:     encoded,
		Name:         "Ann",
		RegisteredAt: time.Now().UTC(),
	}))
}

func (s *PasswordChangeSuite) change(email, oldPwd, newPwd string) error {
	return s.svc.ChangePassword(s.ctx, application.PasswordChangeRequest{Email: email, OldPassword: oldPwd, NewPassword: newPwd})
}

func (s *PasswordChangeSuite) stored() *entity.Member {
	m, err := s.store.FindByEmail(s.ctx, "a@x.io")
	s.Require().NoError(err)
	s.Require().NotNil(m)
	return m
}

func (s *PasswordChangeSuite) TestChangeReplacesCredential() {
	s.Require().NoError(s.change("a@x.io", "old", "new"))

	m := s.stored()
	s.True(s.encoder.Verify(m.Password, "new"))
	s.False(s.encoder.Verify(m.Password, "old"))
	s.Equal("Ann", m.Name)

	events := s.pub.Events()
	s.Require().Len(events, 1)
	s.Equal(application.EventMemberPasswordChanged, events[0].Type)
	s.Equal("Ann", events[0].Name)
}

func (s *PasswordChangeSuite) TestChangeTwice() {
	s.Require().NoError(s.change("a@x.io", "old", "new"))
	s.ErrorIs(s.change("a@x.io", "old", "newer"), application.ErrWrongPassword)
	s.Require().NoError(s.change("a@x.io", "new", "newer"))
	s.True(s.encoder.Verify(s.stored().Password, "newer"))
}

func (s *PasswordChangeSuite) TestWrongPasswordLeavesCredential() {
	before := s.stored().Password

	err := s.change("a@x.io", "guess", "new")
	s.ErrorIs(err, application.ErrWrongPassword)
	s.False(application.IsRetryable(err))
	s.Equal(before, s.stored().Password)
	s.Empty(s.pub.Events())
}

func (s *PasswordChangeSuite) TestUnknownMember() {
	err := s.change("nobody@x.io", "old", "new")
	s.ErrorIs(err, application.ErrMemberNotFound)
	s.Equal(1, s.store.Count())
}

func (s *PasswordChangeSuite) TestValidation() {
	cases := map[string][3]string{
		"missing email":        {"", "old", "new"},
		"malformed email":      {"nope", "old", "new"},
		"missing old password": {"a@x.io", "", "new"},
		"missing new password": {"a@x.io", "old", ""},
	}
	for name, in := range cases {
		s.Run(name, func() {
			s.ErrorIs(s.change(in[0], in[1], in[2]), application.ErrValidation)
		})
	}
	s.True(s.encoder.Verify(s.stored().Password, "old"))
}

func (s *PasswordChangeSuite) TestFailedUpdateRollsBack() {
	s.svc.Repo = &faultyRepo{Store: s.store, updateErr: errConnReset}

	err := s.change("a@x.io", "old", "new")
	s.ErrorIs(err, application.ErrPersistence)
	s.True(application.IsRetryable(err))
	s.True(s.encoder.Verify(s.stored().Password, "old"))
	s.Empty(s.pub.Events())

	entry := s.logs.LastEntry()
	s.Require().NotNil(entry)
	s.Equal(logrus.ErrorLevel, entry.Level)
}

func (s *PasswordChangeSuite) TestLookupFailure() {
	s.svc.Repo = &faultyRepo{Store: s.store, findErr: errConnReset}
	s.ErrorIs(s.change("a@x.io", "old", "new"), application.ErrPersistence)
}

func (s *PasswordChangeSuite) TestTimeout() {
	s.svc.Repo = &faultyRepo{Store: s.store, block: true}
	s.svc.Timeout = 20 * time.Millisecond

	err := s.change("a@x.io", "old", "new")
	s.ErrorIs(err, application.ErrPersistence)
	s.ErrorIs(err, context.DeadlineExceeded)
}
