package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/client_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/client_ledger/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// MockClientRepository is a mock type for the ClientRepositoryFacade interface
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListClients(ctx context.Context, filter domain.ClientFilter) ([]domain.Client, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) FindClientsByName(ctx context.Context, firstName, lastName string) ([]domain.Client, error) {
	args := m.Called(ctx, firstName, lastName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	return m.Called(ctx, client).Error(0)
}

func (m *MockClientRepository) UpdateClientProfile(ctx context.Context, client domain.Client) error {
	return m.Called(ctx, client).Error(0)
}

// MockParticularRepository is a mock type for the ParticularRepositoryFacade interface
type MockParticularRepository struct {
	mock.Mock
}

func (m *MockParticularRepository) FindParticularByID(ctx context.Context, particularID string) (*domain.Particular, error) {
	args := m.Called(ctx, particularID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Particular), args.Error(1)
}

func (m *MockParticularRepository) FindParticularsByIDs(ctx context.Context, particularIDs []string) (map[string]domain.Particular, error) {
	args := m.Called(ctx, particularIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Particular), args.Error(1)
}

func (m *MockParticularRepository) ListParticulars(ctx context.Context, particularType *domain.ParticularType) ([]domain.Particular, error) {
	args := m.Called(ctx, particularType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Particular), args.Error(1)
}

func (m *MockParticularRepository) SaveParticular(ctx context.Context, particular domain.Particular) error {
	return m.Called(ctx, particular).Error(0)
}

func (m *MockParticularRepository) DeleteParticular(ctx context.Context, particularID string) error {
	return m.Called(ctx, particularID).Error(0)
}

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByClient(ctx context.Context, clientID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) PeekNextJobOrderNumber(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockLedger runs fn against Tx after recording the call.
type MockLedger struct {
	mock.Mock
	Tx *MockLedgerTx
}

func (m *MockLedger) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	if err := m.Called(ctx).Error(0); err != nil {
		return err
	}
	return fn(ctx, m.Tx)
}

// MockLedgerTx is a mock type for the LedgerTx interface
type MockLedgerTx struct {
	mock.Mock
}

func (m *MockLedgerTx) FindClientByIDForUpdate(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockLedgerTx) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerTx) ListTransactionsByClient(ctx context.Context, clientID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockLedgerTx) AllocateJobOrderNumber(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerTx) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockLedgerTx) UpdateTransactionHeader(ctx context.Context, txn domain.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockLedgerTx) ReplaceLineItems(ctx context.Context, transactionID string, items []domain.LineItem) error {
	return m.Called(ctx, transactionID, items).Error(0)
}

func (m *MockLedgerTx) DeleteTransaction(ctx context.Context, transactionID string) error {
	return m.Called(ctx, transactionID).Error(0)
}

func (m *MockLedgerTx) UpdateClientLedgerState(ctx context.Context, clientID string, state domain.LedgerState, actor string, now time.Time) error {
	return m.Called(ctx, clientID, state, actor, now).Error(0)
}

func (m *MockLedgerTx) DeleteClient(ctx context.Context, clientID string) error {
	return m.Called(ctx, clientID).Error(0)
}
