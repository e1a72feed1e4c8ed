// Package memstore is an in-memory stand-in for the PostgreSQL repository,
// used by service and handler tests. It returns the repository package's
// sentinel errors so callers map them exactly as in production.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hagiodex/hagiodex/internal/model"
	"github.com/hagiodex/hagiodex/internal/repository"
)

// Store holds accounts, creatures and saints behind one mutex.
type Store struct {
	mu sync.Mutex

	nextAccountID  int64
	nextCreatureID int64
	nextSaintID    int64

	accounts  map[int64]*model.Account
	creatures map[int64]*model.Creature
	saints    map[int64]*model.Saint

	// Err, when set, is returned by every call.
	Err error
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		accounts:  make(map[int64]*model.Account),
		creatures: make(map[int64]*model.Creature),
		saints:    make(map[int64]*model.Saint),
	}
}

// Ping always succeeds unless Err is set.
func (s *Store) Ping(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Err
}

// ============================================================================
// Accounts
// ============================================================================

// AccountCount returns the number of stored accounts.
func (s *Store) AccountCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}

// CreateAccount inserts a copy of account and assigns its ID.
func (s *Store) CreateAccount(_ context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	if err := s.accountConflict(0, account.Username, account.Email); err != nil {
		return err
	}

	s.nextAccountID++
	now := time.Now().UTC()
	account.ID = s.nextAccountID
	account.CreatedAt = now
	account.UpdatedAt = now

	stored := *account
	s.accounts[stored.ID] = &stored
	return nil
}

// GetAccountByID returns a copy of the account with id.
func (s *Store) GetAccountByID(_ context.Context, id int64) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	a, ok := s.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	out := *a
	return &out, nil
}

// GetAccountByUsername returns a copy of the account with an exactly
// matching username.
func (s *Store) GetAccountByUsername(_ context.Context, username string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	for _, a := range s.accounts {
		if a.Username == username {
			out := *a
			return &out, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

// GetAccountByEmail returns a copy of the account with an exactly matching
// email.
func (s *Store) GetAccountByEmail(_ context.Context, email string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	for _, a := range s.accounts {
		if a.Email == email {
			out := *a
			return &out, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

// UpdateAccount applies the supplied fields of patch.
func (s *Store) UpdateAccount(_ context.Context, id int64, patch model.AccountPatch) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	a, ok := s.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	username, email := a.Username, a.Email
	if patch.Username != nil {
		username = *patch.Username
	}
	if patch.Email != nil {
		email = *patch.Email
	}
	if err := s.accountConflict(id, username, email); err != nil {
		return nil, err
	}

	a.Username = username
	a.Email = email
	if patch.PasswordHash != nil {
		a.PasswordHash = *patch.PasswordHash
	}
	if !patch.IsEmpty() {
		a.UpdatedAt = time.Now().UTC()
	}

	out := *a
	return &out, nil
}

// DeleteAccount removes the account and returns it.
func (s *Store) DeleteAccount(_ context.Context, id int64) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	a, ok := s.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	delete(s.accounts, id)
	return a, nil
}

// accountConflict mirrors the UNIQUE constraints on username and email.
func (s *Store) accountConflict(selfID int64, username, email string) error {
	for _, other := range s.accounts {
		if other.ID == selfID {
			continue
		}
		if other.Username == username {
			return repository.ErrUsernameExists
		}
		if other.Email == email {
			return repository.ErrEmailExists
		}
	}
	return nil
}

// ============================================================================
// Creatures
// ============================================================================

// ListCreatures returns copies of every creature ordered by id.
func (s *Store) ListCreatures(context.Context) ([]*model.Creature, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	out := make([]*model.Creature, 0, len(s.creatures))
	for _, c := range s.creatures {
		out = append(out, copyCreature(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetCreatureByID returns a copy of the creature with id.
func (s *Store) GetCreatureByID(_ context.Context, id int64) (*model.Creature, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	c, ok := s.creatures[id]
	if !ok {
		return nil, repository.ErrCreatureNotFound
	}
	return copyCreature(c), nil
}

// GetCreatureByName matches names case-insensitively.
func (s *Store) GetCreatureByName(_ context.Context, name string) (*model.Creature, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	for _, c := range s.creatures {
		if strings.EqualFold(c.Name, name) {
			return copyCreature(c), nil
		}
	}
	return nil, repository.ErrCreatureNotFound
}

// CreateCreature inserts a copy of c and assigns its ID.
func (s *Store) CreateCreature(_ context.Context, c *model.Creature) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	for _, other := range s.creatures {
		if strings.EqualFold(other.Name, c.Name) {
			return repository.ErrCreatureNameExists
		}
	}

	s.nextCreatureID++
	c.ID = s.nextCreatureID
	if c.Types == nil {
		c.Types = []string{}
	}
	s.creatures[c.ID] = copyCreature(c)
	return nil
}

func copyCreature(c *model.Creature) *model.Creature {
	out := *c
	out.Types = append([]string{}, c.Types...)
	return &out
}

// ============================================================================
// Saints
// ============================================================================

// ListSaints returns copies of every saint ordered by name, then id.
func (s *Store) ListSaints(context.Context) ([]*model.Saint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	out := make([]*model.Saint, 0, len(s.saints))
	for _, saint := range s.saints {
		cp := *saint
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// GetSaintByID returns a copy of the saint with id.
func (s *Store) GetSaintByID(_ context.Context, id int64) (*model.Saint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	saint, ok := s.saints[id]
	if !ok {
		return nil, repository.ErrSaintNotFound
	}
	cp := *saint
	return &cp, nil
}

// GetSaintByName matches names case-insensitively; the lowest id wins.
func (s *Store) GetSaintByName(_ context.Context, name string) (*model.Saint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	var found *model.Saint
	for _, saint := range s.saints {
		if strings.EqualFold(saint.Name, name) && (found == nil || saint.ID < found.ID) {
			found = saint
		}
	}
	if found == nil {
		return nil, repository.ErrSaintNotFound
	}
	cp := *found
	return &cp, nil
}

// CreateSaint inserts a copy of saint and assigns its ID.
func (s *Store) CreateSaint(_ context.Context, saint *model.Saint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	s.nextSaintID++
	saint.ID = s.nextSaintID
	cp := *saint
	s.saints[cp.ID] = &cp
	return nil
}

// UpdateSaint applies the supplied fields of patch.
func (s *Store) UpdateSaint(_ context.Context, id int64, patch model.SaintPatch) (*model.Saint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	saint, ok := s.saints[id]
	if !ok {
		return nil, repository.ErrSaintNotFound
	}
	patch.Apply(saint)
	cp := *saint
	return &cp, nil
}

// DeleteSaint removes the saint with id.
func (s *Store) DeleteSaint(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	if _, ok := s.saints[id]; !ok {
		return repository.ErrSaintNotFound
	}
	delete(s.saints, id)
	return nil
}
