package services_test

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/client_ledger/internal/adapters/database/memory"
	"github.com/SscSPs/client_ledger/internal/apperrors"
	"github.com/SscSPs/client_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/client_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/client_ledger/internal/core/ports/services"
	"github.com/SscSPs/client_ledger/internal/core/services"
	"github.com/SscSPs/client_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errInjected = errors.New("injected failure")

// failingLedger wraps a unit of work and fails one write after it has been applied.
type failingLedger struct {
	inner  portsrepo.LedgerUnitOfWork
	failOn string
}

func (l *failingLedger) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	return l.inner.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		return fn(ctx, &failingTx{LedgerTx: tx, failOn: l.failOn})
	})
}

type failingTx struct {
	portsrepo.LedgerTx
	failOn string
}

func (t *failingTx) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	if err := t.LedgerTx.SaveTransaction(ctx, txn); err != nil {
		return err
	}
	if t.failOn == "save" {
		return errInjected
	}
	return nil
}

func (t *failingTx) ReplaceLineItems(ctx context.Context, transactionID string, items []domain.LineItem) error {
	if err := t.LedgerTx.ReplaceLineItems(ctx, transactionID, items); err != nil {
		return err
	}
	if t.failOn == "replace" {
		return errInjected
	}
	return nil
}

type ledgerFixture struct {
	store        *memory.Store
	repos        portsrepo.RepositoryProvider
	clients      portssvc.ClientSvcFacade
	transactions portssvc.TransactionSvcFacade
	printingID   string
	paymentID    string
}

func clock() time.Time { return fixedNow }

func newLedgerFixture(t *testing.T, wrap func(portsrepo.LedgerUnitOfWork) portsrepo.LedgerUnitOfWork) *ledgerFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore(memory.WithLockTimeout(5 * time.Second))
	repos := memory.NewRepositoryProvider(store)
	ledger := repos.Ledger
	if wrap != nil {
		ledger = wrap(ledger)
	}

	f := &ledgerFixture{
		store:        store,
		repos:        repos,
		clients:      services.NewClientService(repos.ClientRepo, services.WithClientTransactionReader(repos.TransactionRepo), services.WithClientLedger(ledger)),
		transactions: services.NewTransactionService(repos.TransactionRepo, repos.ParticularRepo, ledger, services.WithTransactionClock(clock)),
	}

	particulars := services.NewParticularService(repos.ParticularRepo)
	printing, err := particulars.CreateParticular(ctx, dto.CreateParticularRequest{Name: "Printing", Type: domain.Service}, "test")
	require.NoError(t, err)
	pay, err := particulars.CreateParticular(ctx, dto.CreateParticularRequest{Name: "Payment", Type: domain.Payment}, "test")
	require.NoError(t, err)
	f.printingID = printing.ParticularID
	f.paymentID = pay.ParticularID
	return f
}

func (f *ledgerFixture) newClient(t *testing.T, first string) string {
	t.Helper()
	c, err := f.clients.CreateClient(context.Background(), dto.CreateClientRequest{FirstName: first, LastName: "Tester", Address: "1 Main St"}, "test")
	require.NoError(t, err)
	return c.ClientID
}

func (f *ledgerFixture) service(clientID string, units int64, price string) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		ClientID:  clientID,
		Date:      "2024-06-15",
		LineItems: []dto.LineItemRequest{{ParticularID: f.printingID, Units: &units, UnitPrice: dec(price)}},
	}
}

func (f *ledgerFixture) payment(clientID string, amount string) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		ClientID:  clientID,
		Date:      "2024-06-15",
		LineItems: []dto.LineItemRequest{{ParticularID: f.paymentID, UnitPrice: dec(amount)}},
	}
}

func (f *ledgerFixture) client(t *testing.T, clientID string) *domain.Client {
	t.Helper()
	c, err := f.clients.GetClientByID(context.Background(), clientID)
	require.NoError(t, err)
	return c
}

// assertConsistent checks the stored balance and status against a fresh recomputation.
func (f *ledgerFixture) assertConsistent(t *testing.T, clientID string) {
	t.Helper()
	txns, err := f.repos.TransactionRepo.ListTransactionsByClient(context.Background(), clientID)
	require.NoError(t, err)
	want := domain.Recompute(txns)
	got := f.client(t, clientID)
	assert.True(t, want.NetBalance.Equal(got.TotalBalance), "balance %s, recomputed %s", got.TotalBalance, want.NetBalance)
	assert.Equal(t, want.Status, got.Status)
	assert.False(t, got.TotalBalance.IsNegative())
}

func TestLedger_ServicePaymentLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t, nil)
	clientID := f.newClient(t, "Ana")

	assert.Equal(t, domain.StatusNew, f.client(t, clientID).Status)

	res, err := f.transactions.CreateTransaction(ctx, f.service(clientID, 2, "100"), "test")
	require.NoError(t, err)
	assert.True(t, res.Client.TotalBalance.Equal(dec("200")))
	assert.Equal(t, domain.StatusUnpaid, res.Client.Status)
	assert.Equal(t, int64(1), res.Transaction.JONumber)

	res, err = f.transactions.CreateTransaction(ctx, f.payment(clientID, "150"), "test")
	require.NoError(t, err)
	assert.True(t, res.Client.TotalBalance.Equal(dec("50")))
	assert.Equal(t, domain.StatusUnpaid, res.Client.Status)

	last, err := f.transactions.CreateTransaction(ctx, f.payment(clientID, "50"), "test")
	require.NoError(t, err)
	assert.True(t, last.Client.TotalBalance.IsZero())
	assert.Equal(t, domain.StatusPaid, last.Client.Status)

	_, err = f.transactions.CreateTransaction(ctx, f.payment(clientID, "1"), "test")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusCode(err))
	assert.Contains(t, err.Error(), "no outstanding balance")

	res, err = f.transactions.DeleteTransaction(ctx, last.Transaction.TransactionID, "test")
	require.NoError(t, err)
	assert.True(t, res.Client.TotalBalance.Equal(dec("50")))
	assert.Equal(t, domain.StatusUnpaid, res.Client.Status)

	f.assertConsistent(t, clientID)
}

func TestLedger_OverpaymentRejected(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t, nil)
	clientID := f.newClient(t, "Ben")

	_, err := f.transactions.CreateTransaction(ctx, f.service(clientID, 1, "75.5"), "test")
	require.NoError(t, err)

	_, err = f.transactions.CreateTransaction(ctx, f.payment(clientID, "80"), "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Payment amount cannot exceed the current outstanding balance of 75.50")

	txns, err := f.transactions.ListClientTransactions(ctx, clientID)
	require.NoError(t, err)
	assert.Len(t, txns, 1)
}

func TestLedger_ConcurrentCreatesGetDistinctSequentialNumbers(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t, nil)

	const clientsN, perClient = 4, 6
	clientIDs := make([]string, clientsN)
	for i := range clientIDs {
		clientIDs[i] = f.newClient(t, string(rune('A'+i)))
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers []int64
		errs    []error
	)
	for _, id := range clientIDs {
		for j := 0; j < perClient; j++ {
			wg.Add(1)
			go func(clientID string) {
				defer wg.Done()
				res, err := f.transactions.CreateTransaction(ctx, f.service(clientID, 1, "10"), "test")
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					errs = append(errs, err)
					return
				}
				numbers = append(numbers, res.Transaction.JONumber)
			}(id)
		}
	}
	wg.Wait()

	require.Empty(t, errs)
	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })
	for i, n := range numbers {
		assert.Equal(t, int64(i+1), n)
	}

	for _, id := range clientIDs {
		c := f.client(t, id)
		assert.True(t, c.TotalBalance.Equal(decimal.NewFromInt(10*perClient)), "client %s balance %s", id, c.TotalBalance)
		f.assertConsistent(t, id)
	}

	next, err := f.transactions.NextJobOrderNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(clientsN*perClient+1), next)
}

func TestLedger_FailedCreateLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t, func(inner portsrepo.LedgerUnitOfWork) portsrepo.LedgerUnitOfWork {
		return &failingLedger{inner: inner, failOn: "save"}
	})
	clientID := f.newClient(t, "Cy")

	before, err := f.transactions.NextJobOrderNumber(ctx)
	require.NoError(t, err)

	_, err = f.transactions.CreateTransaction(ctx, f.service(clientID, 3, "20"), "test")
	require.Error(t, err)
	assert.ErrorIs(t, err, errInjected)
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusCode(err))

	txns, err := f.transactions.ListClientTransactions(ctx, clientID)
	require.NoError(t, err)
	assert.Empty(t, txns)

	c := f.client(t, clientID)
	assert.True(t, c.TotalBalance.IsZero())
	assert.Equal(t, domain.StatusNew, c.Status)

	after, err := f.transactions.NextJobOrderNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestLedger_FailedUpdateRestoresLineItems(t *testing.T) {
	ctx := context.Background()
	good := newLedgerFixture(t, nil)

	clientID := good.newClient(t, "Dee")
	created, err := good.transactions.CreateTransaction(ctx, good.service(clientID, 2, "40"), "test")
	require.NoError(t, err)

	failing := services.NewTransactionService(
		good.repos.TransactionRepo,
		good.repos.ParticularRepo,
		&failingLedger{inner: good.repos.Ledger, failOn: "replace"},
		services.WithTransactionClock(clock),
	)
	units := int64(5)
	_, err = failing.UpdateTransaction(ctx, created.Transaction.TransactionID, dto.UpdateTransactionRequest{
		Date:      "2024-06-14",
		LineItems: []dto.LineItemRequest{{ParticularID: good.printingID, Units: &units, UnitPrice: dec("40")}},
	}, "test")
	require.ErrorIs(t, err, errInjected)

	txn, err := good.transactions.GetTransactionByID(ctx, created.Transaction.TransactionID)
	require.NoError(t, err)
	require.Len(t, txn.LineItems, 1)
	assert.Equal(t, int64(2), *txn.LineItems[0].Units)
	assert.True(t, txn.Date.Equal(mustDate("2024-06-15")))
	assert.True(t, good.client(t, clientID).TotalBalance.Equal(dec("80")))
}

func TestLedger_UpdateKeepsNumberAndRecomputes(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t, nil)
	clientID := f.newClient(t, "Eve")

	first, err := f.transactions.CreateTransaction(ctx, f.service(clientID, 1, "100"), "test")
	require.NoError(t, err)
	pay, err := f.transactions.CreateTransaction(ctx, f.payment(clientID, "60"), "test")
	require.NoError(t, err)

	// The guard measures against the balance without the payment being replaced.
	res, err := f.transactions.UpdateTransaction(ctx, pay.Transaction.TransactionID, dto.UpdateTransactionRequest{
		Date:      "2024-06-15",
		LineItems: []dto.LineItemRequest{{ParticularID: f.paymentID, UnitPrice: dec("100")}},
	}, "test")
	require.NoError(t, err)
	assert.Equal(t, pay.Transaction.JONumber, res.Transaction.JONumber)
	assert.Equal(t, domain.StatusPaid, res.Client.Status)

	res, err = f.transactions.UpdateTransaction(ctx, first.Transaction.TransactionID, dto.UpdateTransactionRequest{
		Date:      "2024-06-10",
		LineItems: []dto.LineItemRequest{{ParticularID: f.printingID, Units: int64Ptr(3), UnitPrice: dec("100")}},
	}, "test")
	require.NoError(t, err)
	assert.True(t, res.Client.TotalBalance.Equal(dec("200")))
	f.assertConsistent(t, clientID)
}

func TestLedger_RandomOperationsKeepBalanceConsistent(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t, nil)
	clientID := f.newClient(t, "Rand")
	rng := rand.New(rand.NewSource(42))

	var ids []string
	for i := 0; i < 200; i++ {
		switch op := rng.Intn(4); {
		case op <= 1 || len(ids) == 0:
			res, err := f.transactions.CreateTransaction(ctx, f.service(clientID, int64(rng.Intn(5)+1), decimal.NewFromInt(int64(rng.Intn(500))).Div(decimal.NewFromInt(100)).String()), "test")
			require.NoError(t, err)
			ids = append(ids, res.Transaction.TransactionID)
		case op == 2:
			balance := f.client(t, clientID).TotalBalance
			amount := decimal.NewFromInt(int64(rng.Intn(1000) + 1)).Div(decimal.NewFromInt(100))
			res, err := f.transactions.CreateTransaction(ctx, f.payment(clientID, amount.String()), "test")
			if !balance.IsPositive() || amount.GreaterThan(balance) {
				require.ErrorIs(t, err, apperrors.ErrValidation)
				break
			}
			require.NoError(t, err)
			ids = append(ids, res.Transaction.TransactionID)
		default:
			k := rng.Intn(len(ids))
			_, err := f.transactions.DeleteTransaction(ctx, ids[k], "test")
			require.NoError(t, err)
			ids = append(ids[:k], ids[k+1:]...)
		}
		f.assertConsistent(t, clientID)
	}
}

func TestLedger_AmountsOutsideStorageRangeRejected(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t, nil)
	clientID := f.newClient(t, "Cents")

	_, err := f.transactions.CreateTransaction(ctx, f.service(clientID, 1, "0.01"), "test")
	require.NoError(t, err)

	_, err = f.transactions.CreateTransaction(ctx, f.payment(clientID, "0.005"), "test")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.transactions.CreateTransaction(ctx, f.service(clientID, 1, "123456789012.3456"), "test")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	c := f.client(t, clientID)
	assert.True(t, c.TotalBalance.Equal(dec("0.01")), "balance %s", c.TotalBalance)
	assert.Equal(t, domain.StatusUnpaid, c.Status)
	f.assertConsistent(t, clientID)
}

// hookLedger runs before ahead of every unit of work.
type hookLedger struct {
	inner  portsrepo.LedgerUnitOfWork
	before func(ctx context.Context)
}

func (l *hookLedger) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	l.before(ctx)
	return l.inner.RunInTx(ctx, fn)
}

func TestLedger_CatalogEntryDeletedDuringCreateIsServerError(t *testing.T) {
	ctx := context.Background()
	var f *ledgerFixture
	f = newLedgerFixture(t, func(inner portsrepo.LedgerUnitOfWork) portsrepo.LedgerUnitOfWork {
		return &hookLedger{inner: inner, before: func(ctx context.Context) {
			require.NoError(t, f.repos.ParticularRepo.DeleteParticular(ctx, f.printingID))
		}}
	})
	clientID := f.newClient(t, "Dangling")

	_, err := f.transactions.CreateTransaction(ctx, f.service(clientID, 2, "10"), "test")
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusCode(err))

	txns, err := f.repos.TransactionRepo.ListTransactionsByClient(ctx, clientID)
	require.NoError(t, err)
	assert.Empty(t, txns)
	c := f.client(t, clientID)
	assert.True(t, c.TotalBalance.IsZero())
	assert.Equal(t, domain.StatusNew, c.Status)
}
