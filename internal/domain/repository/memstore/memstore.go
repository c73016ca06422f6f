// Package memstore is an in-memory repository.Store used by the service and
// handler tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/oksasatya/go-user-auth-api/internal/domain/entity"
	"github.com/oksasatya/go-user-auth-api/internal/domain/repository"
)

type data struct {
	users  map[int64]entity.User
	codes  map[int64]entity.EmailCode
	nextID int64
}

func (d *data) clone() *data {
	c := &data{
		users:  make(map[int64]entity.User, len(d.users)),
		codes:  make(map[int64]entity.EmailCode, len(d.codes)),
		nextID: d.nextID,
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.codes {
		c.codes[k] = v
	}
	return c
}

type state struct {
	txMu sync.Mutex
	mu   sync.Mutex
	d    *data
	fail map[string]error
	now  func() time.Time
}

// Store keeps users and codes in maps. Transactions are serialized and
// restore a snapshot when they fail.
type Store struct {
	s *state
}

func New() *Store {
	return &Store{s: &state{
		d:    &data{users: map[int64]entity.User{}, codes: map[int64]entity.EmailCode{}},
		fail: map[string]error{},
		now:  time.Now,
	}}
}

// SetClock replaces the time source used for created_at and updated_at.
func (m *Store) SetClock(now func() time.Time) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.now = now
}

// Fail makes every later call of op ("Users.UpdatePassword", "Codes.Create", ...)
// return err. A nil err clears it.
func (m *Store) Fail(op string, err error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if err == nil {
		delete(m.s.fail, op)
		return
	}
	m.s.fail[op] = err
}

// CodeCount returns the number of stored codes for userID.
func (m *Store) CodeCount(userID int64) int {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	n := 0
	for _, c := range m.s.d.codes {
		if c.UserID == userID {
			n++
		}
	}
	return n
}

func (m *Store) Users() repository.UserRepository       { return users{m.s} }
func (m *Store) Codes() repository.EmailCodeRepository { return codes{m.s} }

func (m *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	m.s.mu.Lock()
	snap := m.s.d.clone()
	m.s.mu.Unlock()

	restore := func() {
		m.s.mu.Lock()
		m.s.d = snap
		m.s.mu.Unlock()
	}
	defer func() {
		if p := recover(); p != nil {
			restore()
			panic(p)
		}
	}()
	if err := fn(ctx, &txStore{s: m.s}); err != nil {
		restore()
		return err
	}
	return nil
}

// txStore is the view passed into WithinTx; nested calls join the outer unit.
type txStore struct {
	s *state
}

func (t *txStore) Users() repository.UserRepository       { return users{t.s} }
func (t *txStore) Codes() repository.EmailCodeRepository { return codes{t.s} }
func (t *txStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	return fn(ctx, t)
}

type users struct{ s *state }

func (r users) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail["Users.Create"]; err != nil {
		return err
	}
	for _, existing := range r.s.d.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.s.d.nextID++
	now := r.s.now().Add(time.Duration(r.s.d.nextID))
	u.ID = r.s.d.nextID
	u.IsVerified = false
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.d.users[u.ID] = *u
	return nil
}

func (r users) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail["Users.GetByID"]; err != nil {
		return nil, err
	}
	u, ok := r.s.d.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r users) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail["Users.GetByEmail"]; err != nil {
		return nil, err
	}
	for _, u := range r.s.d.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r users) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail["Users.List"]; err != nil {
		return nil, err
	}
	out := make([]*entity.User, 0, len(r.s.d.users))
	for _, u := range r.s.d.users {
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r users) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail["Users.Update"]; err != nil {
		return err
	}
	cur, ok := r.s.d.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.FirstName, cur.LastName, cur.Country, cur.Image = u.FirstName, u.LastName, u.Country, u.Image
	cur.UpdatedAt = r.s.now()
	u.UpdatedAt = cur.UpdatedAt
	r.s.d.users[u.ID] = cur
	return nil
}

func (r users) UpdatePassword(_ context.Context, id int64, digest string) error {
	return r.mutate("Users.UpdatePassword", id, func(u *entity.User) { u.Password = digest })
}

func (r users) SetVerified(_ context.Context, id int64) error {
	return r.mutate("Users.SetVerified", id, func(u *entity.User) { u.IsVerified = true })
}

func (r users) mutate(op string, id int64, fn func(u *entity.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail[op]; err != nil {
		return err
	}
	u, ok := r.s.d.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(&u)
	u.UpdatedAt = r.s.now()
	r.s.d.users[id] = u
	return nil
}

func (r users) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail["Users.Delete"]; err != nil {
		return err
	}
	if _, ok := r.s.d.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.d.users, id)
	for cid, c := range r.s.d.codes {
		if c.UserID == id {
			delete(r.s.d.codes, cid)
		}
	}
	return nil
}

type codes struct{ s *state }

func (r codes) Create(_ context.Context, c *entity.EmailCode) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail["Codes.Create"]; err != nil {
		return err
	}
	if _, ok := r.s.d.users[c.UserID]; !ok {
		return repository.ErrNotFound
	}
	r.s.d.nextID++
	now := r.s.now()
	c.ID = r.s.d.nextID
	c.CreatedAt, c.UpdatedAt = now, now
	r.s.d.codes[c.ID] = *c
	return nil
}

func (r codes) GetByCode(_ context.Context, code string, purpose entity.CodePurpose, notBefore time.Time) (*entity.EmailCode, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail["Codes.GetByCode"]; err != nil {
		return nil, err
	}
	for _, c := range r.s.d.codes {
		if c.Code != code || c.Purpose != purpose {
			continue
		}
		if !notBefore.IsZero() && c.CreatedAt.Before(notBefore) {
			continue
		}
		return &c, nil
	}
	return nil, repository.ErrNotFound
}

func (r codes) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail["Codes.Delete"]; err != nil {
		return err
	}
	if _, ok := r.s.d.codes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.d.codes, id)
	return nil
}
