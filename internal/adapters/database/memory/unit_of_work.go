package memory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/client_ledger/internal/apperrors"
	"github.com/SscSPs/client_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/client_ledger/internal/core/ports/repositories"
)

var errClientNotLocked = errors.New("client is not locked in this unit of work")

// RunInTx runs fn as one unit of work. Writes are applied to the store as they
// happen and undone from snapshots if fn fails or panics.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) (err error) {
	tx := &memTx{store: s, locked: make(map[string]*clientSnapshot)}
	defer func() {
		if p := recover(); p != nil {
			tx.rollback()
			panic(p)
		}
		if err != nil {
			tx.rollback()
			return
		}
		tx.release()
	}()
	return fn(ctx, tx)
}

type clientSnapshot struct {
	client       domain.Client
	transactions []domain.Transaction
}

type memTx struct {
	store  *Store
	locked map[string]*clientSnapshot

	joHeld     bool
	joSnapshot int64
}

var _ portsrepo.LedgerTx = (*memTx)(nil)

func (t *memTx) lockContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if t.store.lockTimeout > 0 {
		return context.WithTimeout(ctx, t.store.lockTimeout)
	}
	return ctx, func() {}
}

func lockError(what string, err error) error {
	return apperrors.NewConflictError(fmt.Sprintf("could not lock %s", what), err)
}

func (t *memTx) FindClientByIDForUpdate(ctx context.Context, clientID string) (*domain.Client, error) {
	s := t.store
	if _, ok := t.locked[clientID]; !ok {
		lockCtx, cancel := t.lockContext(ctx)
		err := s.clientLocks.Lock(lockCtx, clientID)
		cancel()
		if err != nil {
			return nil, lockError("client "+clientID, err)
		}

		s.mu.RLock()
		c, ok := s.clients[clientID]
		var txns []domain.Transaction
		if ok {
			txns = s.clientTransactionsLocked(clientID)
		}
		s.mu.RUnlock()

		if !ok {
			s.clientLocks.Unlock(clientID)
			return nil, apperrors.ErrNotFound
		}
		t.locked[clientID] = &clientSnapshot{client: c, transactions: txns}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[clientID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (t *memTx) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return t.store.FindTransactionByID(ctx, transactionID)
}

func (t *memTx) ListTransactionsByClient(ctx context.Context, clientID string) ([]domain.Transaction, error) {
	return t.store.ListTransactionsByClient(ctx, clientID)
}

// AllocateJobOrderNumber holds the counter lock until the unit of work ends, so
// a rolled back allocation is handed out again rather than skipped.
func (t *memTx) AllocateJobOrderNumber(ctx context.Context) (int64, error) {
	s := t.store
	if !t.joHeld {
		lockCtx, cancel := t.lockContext(ctx)
		defer cancel()
		select {
		case s.joLock <- struct{}{}:
		case <-lockCtx.Done():
			return 0, lockError("job order counter", lockCtx.Err())
		}
		t.joHeld = true
		s.mu.RLock()
		t.joSnapshot = s.lastJO
		s.mu.RUnlock()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastJO++
	return s.lastJO, nil
}

func (t *memTx) requireLocked(clientID string) error {
	if _, ok := t.locked[clientID]; !ok {
		return fmt.Errorf("%w: %s", errClientNotLocked, clientID)
	}
	return nil
}

func (t *memTx) SaveTransaction(_ context.Context, txn domain.Transaction) error {
	if err := t.requireLocked(txn.ClientID); err != nil {
		return err
	}
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[txn.ClientID]; !ok {
		return fmt.Errorf("%w: client %s", apperrors.ErrValidation, txn.ClientID)
	}
	if _, ok := s.transactions[txn.TransactionID]; ok {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, txn.TransactionID)
	}
	for _, existing := range s.transactions {
		if existing.JONumber == txn.JONumber {
			return fmt.Errorf("%w: job order number %d", apperrors.ErrDuplicate, txn.JONumber)
		}
	}
	if err := s.checkParticularsLocked(txn.LineItems); err != nil {
		return err
	}
	s.transactions[txn.TransactionID] = cloneTransaction(txn)
	return nil
}

func (t *memTx) UpdateTransactionHeader(_ context.Context, txn domain.Transaction) error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.transactions[txn.TransactionID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if err := t.requireLocked(current.ClientID); err != nil {
		return err
	}
	current.Date = txn.Date
	current.Remarks = txn.Remarks
	current.Touch(txn.LastUpdatedBy, txn.LastUpdatedAt)
	s.transactions[txn.TransactionID] = current
	return nil
}

func (t *memTx) ReplaceLineItems(_ context.Context, transactionID string, items []domain.LineItem) error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.transactions[transactionID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if err := t.requireLocked(current.ClientID); err != nil {
		return err
	}
	if err := s.checkParticularsLocked(items); err != nil {
		return err
	}
	current.LineItems = items
	s.transactions[transactionID] = cloneTransaction(current)
	return nil
}

func (t *memTx) DeleteTransaction(_ context.Context, transactionID string) error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.transactions[transactionID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if err := t.requireLocked(current.ClientID); err != nil {
		return err
	}
	delete(s.transactions, transactionID)
	return nil
}

func (t *memTx) UpdateClientLedgerState(_ context.Context, clientID string, state domain.LedgerState, actor string, now time.Time) error {
	if err := t.requireLocked(clientID); err != nil {
		return err
	}
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[clientID]
	if !ok {
		return apperrors.ErrNotFound
	}
	c.ApplyLedgerState(state)
	c.Touch(actor, now)
	s.clients[clientID] = c
	return nil
}

func (t *memTx) DeleteClient(_ context.Context, clientID string) error {
	if err := t.requireLocked(clientID); err != nil {
		return err
	}
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[clientID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.clients, clientID)
	for id, txn := range s.transactions {
		if txn.ClientID == clientID {
			delete(s.transactions, id)
		}
	}
	return nil
}

// rollback restores every locked client and its transactions, then the
// job-order counter, and releases the locks.
func (t *memTx) rollback() {
	s := t.store
	s.mu.Lock()
	for clientID, snap := range t.locked {
		for id, txn := range s.transactions {
			if txn.ClientID == clientID {
				delete(s.transactions, id)
			}
		}
		for _, txn := range snap.transactions {
			s.transactions[txn.TransactionID] = cloneTransaction(txn)
		}
		s.clients[clientID] = snap.client
	}
	if t.joHeld {
		s.lastJO = t.joSnapshot
	}
	// A catalog entry may have been deleted while this unit of work ran.
	s.detachParticularsLocked()
	s.mu.Unlock()

	t.release()
}

func (t *memTx) release() {
	for clientID := range t.locked {
		t.store.clientLocks.Unlock(clientID)
	}
	t.locked = nil
	if t.joHeld {
		<-t.store.joLock
		t.joHeld = false
	}
}
