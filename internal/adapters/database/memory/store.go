// Package memory provides in-process implementations of the repository ports.
//
// Ledger units of work lock clients with per-key locks and undo their writes
// from snapshots on rollback. Reads outside a unit of work are not isolated
// from writes of units still in flight.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/client_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/client_ledger/internal/core/ports/repositories"
)

// Store keeps clients, the catalog and transactions in maps guarded by one RWMutex.
type Store struct {
	mu           sync.RWMutex
	clients      map[string]domain.Client
	particulars  map[string]domain.Particular
	transactions map[string]domain.Transaction
	lastJO       int64

	clientLocks *keyedLock
	joLock      chan struct{}
	lockTimeout time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithLockTimeout bounds how long a unit of work waits for a lock.
// Zero waits until the context is done.
func WithLockTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.lockTimeout = d
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		clients:      make(map[string]domain.Client),
		particulars:  make(map[string]domain.Particular),
		transactions: make(map[string]domain.Transaction),
		clientLocks:  newKeyedLock(),
		joLock:       make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewRepositoryProvider exposes s through every repository port.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ClientRepo:      s,
		ParticularRepo:  s,
		TransactionRepo: s,
		Ledger:          s,
	}
}

var (
	_ portsrepo.ClientRepositoryFacade      = (*Store)(nil)
	_ portsrepo.ParticularRepositoryFacade  = (*Store)(nil)
	_ portsrepo.TransactionRepositoryFacade = (*Store)(nil)
	_ portsrepo.LedgerUnitOfWork            = (*Store)(nil)
)

func cloneTransaction(t domain.Transaction) domain.Transaction {
	items := make([]domain.LineItem, len(t.LineItems))
	copy(items, t.LineItems)
	t.LineItems = items
	return t
}

// clientTransactionsLocked returns the client's transactions newest first.
// s.mu must be held.
func (s *Store) clientTransactionsLocked(clientID string) []domain.Transaction {
	out := make([]domain.Transaction, 0)
	for _, t := range s.transactions {
		if t.ClientID == clientID {
			out = append(out, cloneTransaction(t))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].JONumber > out[j].JONumber
	})
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// keyedLock is a set of context-aware mutexes created on demand per key.
type keyedLock struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	ch   chan struct{}
	refs int
}

func newKeyedLock() *keyedLock {
	return &keyedLock{locks: make(map[string]*keyedEntry)}
}

func (k *keyedLock) Lock(ctx context.Context, key string) error {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &keyedEntry{ch: make(chan struct{}, 1)}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		k.release(key, e)
		return ctx.Err()
	}
}

func (k *keyedLock) Unlock(key string) {
	k.mu.Lock()
	e, ok := k.locks[key]
	k.mu.Unlock()
	if !ok {
		return
	}
	<-e.ch
	k.release(key, e)
}

func (k *keyedLock) release(key string, e *keyedEntry) {
	k.mu.Lock()
	defer k.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
}
