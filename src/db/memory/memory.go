// Package memory is a process-local store with the same semantics as the
// Postgres schema: unique client emails, a client foreign key on transactions
// and cascading client deletes. Units of work are serialised by one RWMutex
// and a failed read-write unit restores the prior state.
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"dimdim-server/src/models"
)

var ErrReadOnly = errors.New("write attempted in a read-only transaction")

type unit struct {
	readOnly bool
}

type unitKey struct{}

type Store struct {
	mu           sync.RWMutex
	clients      map[int64]models.Client
	transactions map[int64]models.Transaction
	nextClientID int64
	nextTxnID    int64
	now          func() time.Time
}

func New() *Store {
	return &Store{
		clients:      make(map[int64]models.Client),
		transactions: make(map[int64]models.Transaction),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Clients() *ClientStore { return &ClientStore{s: s} }

func (s *Store) Transactions() *TransactionStore { return &TransactionStore{s: s} }

// Ping satisfies the health check contract of the Postgres pool.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(unitKey{}) != nil {
		return fn(ctx)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(context.WithValue(ctx, unitKey{}, &unit{readOnly: true}))
}

func (s *Store) ReadWrite(ctx context.Context, fn func(ctx context.Context) error) error {
	if u, ok := ctx.Value(unitKey{}).(*unit); ok {
		if u.readOnly {
			return ErrReadOnly
		}
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	committed := false
	defer func() {
		if !committed {
			s.restore(snap)
		}
	}()

	if err := fn(context.WithValue(ctx, unitKey{}, &unit{})); err != nil {
		return err
	}
	committed = true
	return nil
}

type snapshot struct {
	clients      map[int64]models.Client
	transactions map[int64]models.Transaction
	nextClientID int64
	nextTxnID    int64
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		clients:      make(map[int64]models.Client, len(s.clients)),
		transactions: make(map[int64]models.Transaction, len(s.transactions)),
		nextClientID: s.nextClientID,
		nextTxnID:    s.nextTxnID,
	}
	for id, c := range s.clients {
		snap.clients[id] = c
	}
	for id, t := range s.transactions {
		snap.transactions[id] = t
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.clients = snap.clients
	s.transactions = snap.transactions
	s.nextClientID = snap.nextClientID
	s.nextTxnID = snap.nextTxnID
}

// read runs fn under the read lock unless ctx already belongs to a unit of work.
func (s *Store) read(ctx context.Context, fn func()) {
	if ctx.Value(unitKey{}) != nil {
		fn()
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn()
}

func (s *Store) write(ctx context.Context, fn func() error) error {
	if u, ok := ctx.Value(unitKey{}).(*unit); ok {
		if u.readOnly {
			return ErrReadOnly
		}
		return fn()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

func (s *Store) sortedClients(keep func(models.Client) bool) []models.Client {
	out := []models.Client{}
	for _, c := range s.clients {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) sortedTransactions(keep func(models.Transaction) bool, byDate bool) []models.Transaction {
	out := []models.Transaction{}
	for _, t := range s.transactions {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if byDate && !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) emailTaken(email string, exceptID int64) bool {
	for _, c := range s.clients {
		if c.Email == email && c.ID != exceptID {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func inRange(d, start, end models.Date) bool {
	return !d.Before(start) && !d.After(end)
}
