package application_test

import (
	"context"
	"errors"
	"sync"

	"github.com/oksasatya/go-member-account/internal/application"
	"github.com/oksasatya/go-member-account/internal/domain/entity"
	"github.com/oksasatya/go-member-account/internal/infrastructure/memory"
)

var errConnReset = errors.New("connection reset by peer")

type recordingPublisher struct {
	mu     sync.Mutex
	events []application.MemberEvent
	err    error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ev, ok := body.(application.MemberEvent); ok {
		p.events = append(p.events, ev)
	}
	return p.err
}

func (p *recordingPublisher) Events() []application.MemberEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]application.MemberEvent(nil), p.events...)
}

// faultyRepo delegates to a memory store and injects failures per method.
type faultyRepo struct {
	*memory.Store
	findErr   error
	insertErr error
	updateErr error
	block     bool // wait for ctx cancellation in FindByEmail
}

func (r *faultyRepo) FindByEmail(ctx context.Context, email string) (*entity.Member, error) {
	if r.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.Store.FindByEmail(ctx, email)
}

func (r *faultyRepo) Insert(ctx context.Context, m *entity.Member) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	return r.Store.Insert(ctx, m)
}

func (r *faultyRepo) UpdatePassword(ctx context.Context, email, newPassword string) error {
	if err := r.Store.UpdatePassword(ctx, email, newPassword); err != nil {
		return err
	}
	// the write is buffered in the transaction, so failing now must roll it back
	return r.updateErr
}

// failingEncoder rejects every password.
type failingEncoder struct{}

func (failingEncoder) Encode(string) (string, error) { return "", errors.New("encoder unavailable") }
func (failingEncoder) Verify(string, string) bool    { return false }
