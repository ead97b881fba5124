package handlers_test

import (
	"context"

	"github.com/SscSPs/client_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/client_ledger/internal/core/ports/services"
	"github.com/SscSPs/client_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock ClientService ---
type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) ListClients(ctx context.Context, params dto.ListClientsParams) ([]domain.Client, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientService) CheckClientName(ctx context.Context, req dto.CheckClientNameRequest) ([]domain.Client, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientService) GetClientLedger(ctx context.Context, clientID string) (*domain.ClientLedger, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientLedger), args.Error(1)
}

func (m *MockClientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, actor string) (*domain.Client, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, actor string) (*domain.Client, error) {
	args := m.Called(ctx, clientID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) DeleteClient(ctx context.Context, clientID string) error {
	return m.Called(ctx, clientID).Error(0)
}

// --- Mock ParticularService ---
type MockParticularService struct {
	mock.Mock
}

func (m *MockParticularService) GetParticularByID(ctx context.Context, particularID string) (*domain.Particular, error) {
	args := m.Called(ctx, particularID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Particular), args.Error(1)
}

func (m *MockParticularService) ListParticulars(ctx context.Context, params dto.ListParticularsParams) ([]domain.Particular, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Particular), args.Error(1)
}

func (m *MockParticularService) CreateParticular(ctx context.Context, req dto.CreateParticularRequest, actor string) (*domain.Particular, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Particular), args.Error(1)
}

func (m *MockParticularService) DeleteParticular(ctx context.Context, particularID string) error {
	return m.Called(ctx, particularID).Error(0)
}

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListClientTransactions(ctx context.Context, clientID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) NextJobOrderNumber(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, actor string) (*domain.MutationResult, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MutationResult), args.Error(1)
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, actor string) (*domain.MutationResult, error) {
	args := m.Called(ctx, transactionID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MutationResult), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, transactionID string, actor string) (*domain.MutationResult, error) {
	args := m.Called(ctx, transactionID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MutationResult), args.Error(1)
}

// Ensure mocks implement the interfaces
var (
	_ portssvc.ClientSvcFacade      = (*MockClientService)(nil)
	_ portssvc.ParticularSvcFacade  = (*MockParticularService)(nil)
	_ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)
)
