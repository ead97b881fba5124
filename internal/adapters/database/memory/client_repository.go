package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/SscSPs/client_ledger/internal/apperrors"
	"github.com/SscSPs/client_ledger/internal/core/domain"
)

func (s *Store) SaveClient(_ context.Context, client domain.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[client.ClientID]; ok {
		return apperrors.ErrDuplicate
	}
	s.clients[client.ClientID] = client
	return nil
}

func (s *Store) FindClientByID(_ context.Context, clientID string) (*domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[clientID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (s *Store) ListClients(_ context.Context, filter domain.ClientFilter) ([]domain.Client, error) {
	s.mu.RLock()
	out := make([]domain.Client, 0, len(s.clients))
	for _, c := range s.clients {
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		if filter.Search != "" &&
			!containsFold(c.FirstName, filter.Search) &&
			!containsFold(c.LastName, filter.Search) &&
			!containsFold(c.Address, filter.Search) {
			continue
		}
		out = append(out, c)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		li, lj := strings.ToLower(out[i].LastName), strings.ToLower(out[j].LastName)
		if li != lj {
			return li < lj
		}
		fi, fj := strings.ToLower(out[i].FirstName), strings.ToLower(out[j].FirstName)
		if fi != fj {
			return fi < fj
		}
		return out[i].ClientID < out[j].ClientID
	})

	if filter.Offset >= len(out) {
		return []domain.Client{}, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *Store) FindClientsByName(_ context.Context, firstName, lastName string) ([]domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Client, 0)
	for _, c := range s.clients {
		if strings.EqualFold(c.FirstName, firstName) && strings.EqualFold(c.LastName, lastName) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClientID < out[j].ClientID })
	return out, nil
}

// UpdateClientProfile writes profile fields only; balance fields are left as stored.
func (s *Store) UpdateClientProfile(_ context.Context, client domain.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clients[client.ClientID]
	if !ok {
		return apperrors.ErrNotFound
	}
	c.FirstName = client.FirstName
	c.LastName = client.LastName
	c.Title = client.Title
	c.Address = client.Address
	c.Touch(client.LastUpdatedBy, client.LastUpdatedAt)
	s.clients[client.ClientID] = c
	return nil
}
