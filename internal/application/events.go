package application

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventMemberRegistered      = "member.registered"
	EventMemberPasswordChanged = "member.password_changed"
)

// MemberEvent is published after a transaction commits. It never carries
// credentials.
type MemberEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher delivers member events to downstream consumers such as the
// email worker.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

func newMemberEvent(typ, email, name string, at time.Time) MemberEvent {
	return MemberEvent{
		ID:         uuid.NewString(),
		Type:       typ,
		Email:      email,
		Name:       name,
		OccurredAt: at,
	}
}
