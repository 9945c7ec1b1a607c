package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-member-account/internal/domain/entity"
)

var (
	// ErrDuplicateKey is returned by Insert when the storage-level unique
	// constraint on email rejects the row.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrNotFound is returned by UpdatePassword when no row matches.
	ErrNotFound = errors.New("not found")
)

// MemberRepository defines the persistence operations for members.
// Every method joins the transaction carried by ctx, if any, and never
// commits or rolls back on its own.
type MemberRepository interface {
	// FindByEmail returns (nil, nil) when no member has the given email.
	FindByEmail(ctx context.Context, email string) (*entity.Member, error)
	Insert(ctx context.Context, m *entity.Member) error
	UpdatePassword(ctx context.Context, email, newPassword string) error
}

// Transactor runs fn inside a single transaction. The transaction is
// committed when fn returns nil and rolled back on any error or panic.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
