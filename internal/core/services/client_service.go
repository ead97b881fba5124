package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/client_ledger/internal/apperrors"
	"github.com/SscSPs/client_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/client_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/client_ledger/internal/core/ports/services"
	"github.com/SscSPs/client_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type clientService struct {
	BaseService
	clientRepo portsrepo.ClientRepositoryFacade
	txnReader  portsrepo.TransactionReader
	ledger     portsrepo.LedgerUnitOfWork
}

// ClientServiceOption is a functional option for configuring the client service
type ClientServiceOption func(*clientService)

// WithClientTransactionReader sets the reader used to build ledger views.
func WithClientTransactionReader(reader portsrepo.TransactionReader) ClientServiceOption {
	return func(s *clientService) {
		s.txnReader = reader
	}
}

// WithClientLedger sets the unit of work used for cascading deletes.
func WithClientLedger(ledger portsrepo.LedgerUnitOfWork) ClientServiceOption {
	return func(s *clientService) {
		s.ledger = ledger
	}
}

// NewClientService creates the client directory service.
func NewClientService(repo portsrepo.ClientRepositoryFacade, options ...ClientServiceOption) portssvc.ClientSvcFacade {
	svc := &clientService{
		BaseService: newBaseService(),
		clientRepo:  repo,
	}
	for _, opt := range options {
		opt(svc)
	}
	return svc
}

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, actor string) (*domain.Client, error) {
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	address := strings.TrimSpace(req.Address)
	if firstName == "" || lastName == "" || address == "" {
		return nil, apperrors.NewValidationError("first name, last name and address are required")
	}

	client := domain.Client{
		ClientID:     uuid.NewString(),
		FirstName:    firstName,
		LastName:     lastName,
		Title:        normalizeTitle(req.Title),
		Address:      address,
		TotalBalance: decimal.Zero,
		Status:       domain.StatusNew,
		AuditFields:  domain.NewAuditFields(actor, s.now()),
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		s.LogError(ctx, err, "Failed to save client", slog.String("client_id", client.ClientID))
		return nil, apperrors.NewAppError(500, "failed to create client", err)
	}

	s.LogInfo(ctx, "Client created", slog.String("client_id", client.ClientID))
	return &client, nil
}

func (s *clientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("client %s not found", clientID))
		}
		s.LogError(ctx, err, "Failed to find client", slog.String("client_id", clientID))
		return nil, apperrors.NewAppError(500, "failed to get client", err)
	}
	return client, nil
}

func (s *clientService) ListClients(ctx context.Context, params dto.ListClientsParams) ([]domain.Client, error) {
	filter := domain.ClientFilter{
		Search: strings.TrimSpace(params.Search),
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	if params.Status != "" {
		status := domain.ClientStatus(params.Status)
		if !status.IsValid() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown client status %q", params.Status))
		}
		filter.Status = &status
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	clients, err := s.clientRepo.ListClients(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list clients")
		return nil, apperrors.NewAppError(500, "failed to list clients", err)
	}
	if clients == nil {
		return []domain.Client{}, nil
	}
	return clients, nil
}

// CheckClientName never blocks creation; callers use the result as a warning.
func (s *clientService) CheckClientName(ctx context.Context, req dto.CheckClientNameRequest) ([]domain.Client, error) {
	clients, err := s.clientRepo.FindClientsByName(ctx, strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName))
	if err != nil {
		s.LogError(ctx, err, "Failed to check client name")
		return nil, apperrors.NewAppError(500, "failed to check client name", err)
	}

	matches := make([]domain.Client, 0, len(clients))
	for _, c := range clients {
		if req.ExcludeClientID != nil && c.ClientID == *req.ExcludeClientID {
			continue
		}
		matches = append(matches, c)
	}
	return matches, nil
}

func (s *clientService) GetClientLedger(ctx context.Context, clientID string) (*domain.ClientLedger, error) {
	if s.txnReader == nil {
		return nil, apperrors.NewAppError(500, "client service has no transaction reader", nil)
	}
	client, err := s.GetClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.txnReader.ListTransactionsByClient(ctx, clientID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list client transactions", slog.String("client_id", clientID))
		return nil, apperrors.NewAppError(500, "failed to load client ledger", err)
	}
	if transactions == nil {
		transactions = []domain.Transaction{}
	}

	return &domain.ClientLedger{
		Client:       *client,
		Transactions: transactions,
		State:        domain.Recompute(transactions),
	}, nil
}

func (s *clientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, actor string) (*domain.Client, error) {
	client, err := s.GetClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		client.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		client.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Address != nil {
		client.Address = strings.TrimSpace(*req.Address)
	}
	if req.Title != nil {
		client.Title = normalizeTitle(req.Title)
	}
	if client.FirstName == "" || client.LastName == "" || client.Address == "" {
		return nil, apperrors.NewValidationError("first name, last name and address cannot be empty")
	}
	client.Touch(actor, s.now())

	if err := s.clientRepo.UpdateClientProfile(ctx, *client); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("client %s not found", clientID))
		}
		s.LogError(ctx, err, "Failed to update client", slog.String("client_id", clientID))
		return nil, apperrors.NewAppError(500, "failed to update client", err)
	}

	s.LogInfo(ctx, "Client updated", slog.String("client_id", clientID))
	return client, nil
}

// DeleteClient locks the client so no ledger mutation interleaves with the cascade.
func (s *clientService) DeleteClient(ctx context.Context, clientID string) error {
	if s.ledger == nil {
		return apperrors.NewAppError(500, "client service has no ledger unit of work", nil)
	}
	err := s.ledger.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		if _, err := tx.FindClientByIDForUpdate(ctx, clientID); err != nil {
			return err
		}
		return tx.DeleteClient(ctx, clientID)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError(fmt.Sprintf("client %s not found", clientID))
		}
		s.LogError(ctx, err, "Failed to delete client", slog.String("client_id", clientID))
		return apperrors.NewAppError(500, "failed to delete client", err)
	}

	s.LogInfo(ctx, "Client deleted", slog.String("client_id", clientID))
	return nil
}

func normalizeTitle(title *string) *string {
	if title == nil {
		return nil
	}
	t := strings.TrimSpace(*title)
	if t == "" {
		return nil
	}
	return &t
}
