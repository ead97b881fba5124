package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/SscSPs/client_ledger/internal/apperrors"
	"github.com/SscSPs/client_ledger/internal/core/domain"
)

func (s *Store) SaveParticular(_ context.Context, particular domain.Particular) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.particulars[particular.ParticularID]; ok {
		return apperrors.ErrDuplicate
	}
	for _, p := range s.particulars {
		if p.Type == particular.Type && strings.EqualFold(p.Name, particular.Name) {
			return apperrors.ErrDuplicate
		}
	}
	s.particulars[particular.ParticularID] = particular
	return nil
}

func (s *Store) FindParticularByID(_ context.Context, particularID string) (*domain.Particular, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.particulars[particularID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (s *Store) FindParticularsByIDs(_ context.Context, particularIDs []string) (map[string]domain.Particular, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.Particular, len(particularIDs))
	for _, id := range particularIDs {
		if p, ok := s.particulars[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (s *Store) ListParticulars(_ context.Context, particularType *domain.ParticularType) ([]domain.Particular, error) {
	s.mu.RLock()
	out := make([]domain.Particular, 0, len(s.particulars))
	for _, p := range s.particulars {
		if particularType != nil && p.Type != *particularType {
			continue
		}
		out = append(out, p)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type > out[j].Type // Service before Payment
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// DeleteParticular detaches recorded line items from the entry, like ON DELETE SET NULL.
func (s *Store) DeleteParticular(_ context.Context, particularID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.particulars[particularID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.particulars, particularID)
	s.detachParticularsLocked()
	return nil
}

// detachParticularsLocked clears line-item references to entries no longer in
// the catalog. s.mu must be held for writing.
func (s *Store) detachParticularsLocked() {
	for id, t := range s.transactions {
		changed := false
		for i, li := range t.LineItems {
			if li.ParticularID == nil {
				continue
			}
			if _, ok := s.particulars[*li.ParticularID]; !ok {
				if !changed {
					t = cloneTransaction(t)
					changed = true
				}
				t.LineItems[i].ParticularID = nil
			}
		}
		if changed {
			s.transactions[id] = t
		}
	}
}

// checkParticularsLocked rejects line items referencing entries missing from
// the catalog, as the line-item foreign key does. s.mu must be held.
func (s *Store) checkParticularsLocked(items []domain.LineItem) error {
	for _, li := range items {
		if li.ParticularID == nil {
			continue
		}
		if _, ok := s.particulars[*li.ParticularID]; !ok {
			return fmt.Errorf("%w: particular %s is not in the catalog", apperrors.ErrValidation, *li.ParticularID)
		}
	}
	return nil
}
