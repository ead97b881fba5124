package memory

import (
	"context"

	"github.com/SscSPs/client_ledger/internal/apperrors"
	"github.com/SscSPs/client_ledger/internal/core/domain"
)

func (s *Store) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.transactions[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	t = cloneTransaction(t)
	return &t, nil
}

func (s *Store) ListTransactionsByClient(_ context.Context, clientID string) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clientTransactionsLocked(clientID), nil
}

func (s *Store) PeekNextJobOrderNumber(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastJO + 1, nil
}
