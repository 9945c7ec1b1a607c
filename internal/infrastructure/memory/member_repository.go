package memory

import (
	"context"
	"sync"

	"github.com/oksasatya/go-member-account/internal/domain/entity"
	"github.com/oksasatya/go-member-account/internal/domain/repository"
)

type txKey struct{}

// tx buffers writes until commit. Inserted emails are reserved in the store
// as soon as Insert runs, the way a unique index holds the key for an
// in-flight transaction.
type tx struct {
	inserts map[string]entity.Member
	updates map[string]string
}

// Store is an in-memory MemberRepository and Transactor with the same
// uniqueness and rollback guarantees as the Postgres implementation.
type Store struct {
	mu       sync.Mutex
	members  map[string]entity.Member
	reserved map[string]*tx
}

func New() *Store {
	return &Store{
		members:  make(map[string]entity.Member),
		reserved: make(map[string]*tx),
	}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(*tx); ok {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	t := &tx{inserts: make(map[string]entity.Member), updates: make(map[string]string)}
	defer func() {
		if p := recover(); p != nil {
			s.rollback(t)
			panic(p)
		}
		if err != nil {
			s.rollback(t)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, t)); err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}
	s.commit(t)
	return nil
}

func (s *Store) commit(t *tx) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for email, m := range t.inserts {
		s.members[email] = m
		delete(s.reserved, email)
	}
	for email, pwd := range t.updates {
		if m, ok := s.members[email]; ok {
			m.Password = pwd
			s.members[email] = m
		}
	}
}

func (s *Store) rollback(t *tx) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for email := range t.inserts {
		if s.reserved[email] == t {
			delete(s.reserved, email)
		}
	}
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*entity.Member, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, _ := ctx.Value(txKey{}).(*tx)

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		m  entity.Member
		ok bool
	)
	if t != nil {
		m, ok = t.inserts[email]
	}
	if !ok {
		m, ok = s.members[email]
	}
	if !ok {
		return nil, nil
	}
	if t != nil {
		if pwd, updated := t.updates[email]; updated {
			m.Password = pwd
		}
	}
	return &m, nil
}

func (s *Store) Insert(ctx context.Context, m *entity.Member) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t, _ := ctx.Value(txKey{}).(*tx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[m.Email]; ok {
		return repository.ErrDuplicateKey
	}
	if _, ok := s.reserved[m.Email]; ok {
		return repository.ErrDuplicateKey
	}
	if t == nil {
		s.members[m.Email] = *m
		return nil
	}
	t.inserts[m.Email] = *m
	s.reserved[m.Email] = t
	return nil
}

func (s *Store) UpdatePassword(ctx context.Context, email, newPassword string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t, _ := ctx.Value(txKey{}).(*tx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if t != nil {
		if m, ok := t.inserts[email]; ok {
			m.Password = newPassword
			t.inserts[email] = m
			return nil
		}
	}
	m, ok := s.members[email]
	if !ok {
		return repository.ErrNotFound
	}
	if t == nil {
		m.Password = newPassword
		s.members[email] = m
		return nil
	}
	t.updates[email] = newPassword
	return nil
}

// Count returns the number of committed members.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.members)
}

var (
	_ repository.MemberRepository = (*Store)(nil)
	_ repository.Transactor       = (*Store)(nil)
)
