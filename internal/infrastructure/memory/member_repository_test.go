package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/oksasatya/go-member-account/internal/domain/entity"
	"github.com/oksasatya/go-member-account/internal/domain/repository"
)

type StoreSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.store = New()
	s.ctx = context.Background()
}

func member(email string) *entity.Member {
	return &entity.Member{Email: email, Password: "enc", Name: "Ann", RegisteredAt: time.Now().UTC()}
}

func (s *StoreSuite) TestInsertAndFind() {
	s.Require().NoError(s.store.Insert(s.ctx, member("a@x.io")))

	m, err := s.store.FindByEmail(s.ctx, "a@x.io")
	s.Require().NoError(err)
	s.Require().NotNil(m)
	s.Equal("Ann", m.Name)
}

func (s *StoreSuite) TestFindMissingReturnsNil() {
	m, err := s.store.FindByEmail(s.ctx, "nobody@x.io")
	s.NoError(err)
	s.Nil(m)
}

func (s *StoreSuite) TestEmailIsCaseSensitive() {
	s.Require().NoError(s.store.Insert(s.ctx, member("a@x.io")))
	s.NoError(s.store.Insert(s.ctx, member("A@x.io")))
	s.Equal(2, s.store.Count())
}

func (s *StoreSuite) TestInsertDuplicate() {
	s.Require().NoError(s.store.Insert(s.ctx, member("a@x.io")))
	s.ErrorIs(s.store.Insert(s.ctx, member("a@x.io")), repository.ErrDuplicateKey)
}

func (s *StoreSuite) TestUpdatePasswordMissing() {
	s.ErrorIs(s.store.UpdatePassword(s.ctx, "nobody@x.io", "x"), repository.ErrNotFound)
}

func (s *StoreSuite) TestCommit() {
	err := s.store.WithinTx(s.ctx, func(ctx context.Context) error {
		if err := s.store.Insert(ctx, member("a@x.io")); err != nil {
			return err
		}
		// visible inside the transaction only
		m, err := s.store.FindByEmail(ctx, "a@x.io")
		s.Require().NoError(err)
		s.Require().NotNil(m)

		outside, err := s.store.FindByEmail(s.ctx, "a@x.io")
		s.Require().NoError(err)
		s.Nil(outside)
		return nil
	})
	s.Require().NoError(err)
	s.Equal(1, s.store.Count())
}

func (s *StoreSuite) TestRollbackOnError() {
	s.Require().NoError(s.store.Insert(s.ctx, member("a@x.io")))
	boom := errors.New("boom")

	err := s.store.WithinTx(s.ctx, func(ctx context.Context) error {
		s.Require().NoError(s.store.Insert(ctx, member("b@x.io")))
		s.Require().NoError(s.store.UpdatePassword(ctx, "a@x.io", "changed"))
		return boom
	})
	s.ErrorIs(err, boom)
	s.Equal(1, s.store.Count())

	m, _ := s.store.FindByEmail(s.ctx, "a@x.io")
	s.Equal("enc", m.Password)

	// the reservation is released
	s.NoError(s.store.Insert(s.ctx, member("b@x.io")))
}

func (s *StoreSuite) TestRollbackOnPanic() {
	s.Panics(func() {
		_ = s.store.WithinTx(s.ctx, func(ctx context.Context) error {
			_ = s.store.Insert(ctx, member("a@x.io"))
			panic("boom")
		})
	})
	s.Equal(0, s.store.Count())
	s.NoError(s.store.Insert(s.ctx, member("a@x.io")))
}

func (s *StoreSuite) TestInFlightInsertBlocksOthers() {
	err := s.store.WithinTx(s.ctx, func(ctx context.Context) error {
		s.Require().NoError(s.store.Insert(ctx, member("a@x.io")))
		s.ErrorIs(s.store.Insert(s.ctx, member("a@x.io")), repository.ErrDuplicateKey)
		return nil
	})
	s.NoError(err)
}

func (s *StoreSuite) TestNestedTxJoinsOuter() {
	boom := errors.New("boom")
	err := s.store.WithinTx(s.ctx, func(ctx context.Context) error {
		s.Require().NoError(s.store.WithinTx(ctx, func(ctx context.Context) error {
			return s.store.Insert(ctx, member("a@x.io"))
		}))
		return boom
	})
	s.ErrorIs(err, boom)
	s.Equal(0, s.store.Count())
}

func (s *StoreSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	s.ErrorIs(s.store.WithinTx(ctx, func(context.Context) error { return nil }), context.Canceled)
	_, err := s.store.FindByEmail(ctx, "a@x.io")
	s.ErrorIs(err, context.Canceled)
}
