package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-member-account/internal/domain/entity"
	"github.com/oksasatya/go-member-account/internal/domain/repository"
)

// SQLSTATE unique_violation
const uniqueViolation = "23505"

type MemberRepository struct {
	pool *pgxpool.Pool
}

func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (*entity.Member, error) {
	m := &entity.Member{}

	row := conn(ctx, r.pool).QueryRow(ctx, `
		SELECT email, password, name, registered_at
		FROM members
		WHERE email = $1
	`, email)

	if err := row.Scan(&m.Email, &m.Password, &m.Name, &m.RegisteredAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return m, nil
}

func (r *MemberRepository) Insert(ctx context.Context, m *entity.Member) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO members (email, password, name, registered_at)
		VALUES ($1, $2, $3, $4)
	`, m.Email, m.Password, m.Name, m.RegisteredAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (r *MemberRepository) UpdatePassword(ctx context.Context, email, newPassword string) error {
	res, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE members
		SET password = $1
		WHERE email = $2
	`, newPassword, email)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ repository.MemberRepository = (*MemberRepository)(nil)
