package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/client_ledger/internal/apperrors"
	"github.com/SscSPs/client_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/client_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/client_ledger/internal/core/ports/services"
	"github.com/SscSPs/client_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxRemarksLength = 500

type transactionService struct {
	BaseService
	txnRepo        portsrepo.TransactionRepositoryFacade
	particularRepo portsrepo.ParticularReader
	ledger         portsrepo.LedgerUnitOfWork
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithTransactionClock overrides the clock used for audit fields and the future-date check.
func WithTransactionClock(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.Now = now
	}
}

// NewTransactionService creates the service that runs every ledger mutation.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	particularRepo portsrepo.ParticularReader,
	ledger portsrepo.LedgerUnitOfWork,
	options ...TransactionServiceOption,
) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		BaseService:    newBaseService(),
		txnRepo:        txnRepo,
		particularRepo: particularRepo,
		ledger:         ledger,
	}
	for _, opt := range options {
		opt(svc)
	}
	return svc
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, transactionNotFound(transactionID)
		}
		s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		return nil, apperrors.NewAppError(500, "failed to get transaction", err)
	}
	return txn, nil
}

func (s *transactionService) ListClientTransactions(ctx context.Context, clientID string) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.ListTransactionsByClient(ctx, clientID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("client_id", clientID))
		return nil, apperrors.NewAppError(500, "failed to list transactions", err)
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

// NextJobOrderNumber is advisory; a concurrent create may take the number first.
func (s *transactionService) NextJobOrderNumber(ctx context.Context) (int64, error) {
	next, err := s.txnRepo.PeekNextJobOrderNumber(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to preview next job order number")
		return 0, apperrors.NewAppError(500, "failed to get next job order number", err)
	}
	return next, nil
}

// CreateTransaction locks the client, applies the payment guard, allocates a
// job-order number, persists the transaction and recomputes the client.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, actor string) (*domain.MutationResult, error) {
	now := s.now()
	date, remarks, err := s.validateHeader(req.Date, req.Remarks, now)
	if err != nil {
		return nil, err
	}

	transactionID := uuid.NewString()
	items, err := s.buildLineItems(ctx, transactionID, req.LineItems)
	if err != nil {
		return nil, err
	}

	var result domain.MutationResult
	err = s.ledger.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		client, err := lockClient(ctx, tx, req.ClientID)
		if err != nil {
			return err
		}

		txn := domain.Transaction{
			TransactionID: transactionID,
			ClientID:      client.ClientID,
			Date:          date,
			Remarks:       remarks,
			LineItems:     items,
			AuditFields:   domain.NewAuditFields(actor, now),
		}

		if txn.IsPaymentOnly() {
			if err := checkPaymentGuard(client.TotalBalance, txn.PaymentTotal()); err != nil {
				return err
			}
		}

		txn.JONumber, err = tx.AllocateJobOrderNumber(ctx)
		if err != nil {
			return fmt.Errorf("failed to allocate job order number: %w", err)
		}

		if err := tx.SaveTransaction(ctx, txn); err != nil {
			return fmt.Errorf("failed to save transaction: %w", err)
		}

		updated, err := recomputeClient(ctx, tx, *client, actor, now)
		if err != nil {
			return err
		}

		result = domain.MutationResult{Transaction: txn, Client: updated}
		return nil
	})
	if err != nil {
		return nil, s.mutationError(ctx, err, "failed to create transaction", slog.String("client_id", req.ClientID))
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("client_id", result.Client.ClientID),
		slog.String("transaction_id", result.Transaction.TransactionID),
		slog.Int64("jo_number", result.Transaction.JONumber),
		slog.String("total_balance", result.Client.TotalBalance.String()),
		slog.String("status", string(result.Client.Status)),
	)
	return &result, nil
}

// UpdateTransaction replaces the date, remarks and every line item of a
// transaction. The job-order number and owning client never change.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, actor string) (*domain.MutationResult, error) {
	now := s.now()
	date, remarks, err := s.validateHeader(req.Date, req.Remarks, now)
	if err != nil {
		return nil, err
	}

	existing, err := s.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	items, err := s.buildLineItems(ctx, transactionID, req.LineItems)
	if err != nil {
		return nil, err
	}

	var result domain.MutationResult
	err = s.ledger.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		client, err := lockClient(ctx, tx, existing.ClientID)
		if err != nil {
			return err
		}

		// Re-read under the client lock; a concurrent delete may have won.
		current, err := tx.FindTransactionByID(ctx, transactionID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return transactionNotFound(transactionID)
			}
			return fmt.Errorf("failed to reload transaction: %w", err)
		}

		current.Date = date
		current.Remarks = remarks
		current.LineItems = items
		current.Touch(actor, now)

		if current.IsPaymentOnly() {
			others, err := tx.ListTransactionsByClient(ctx, client.ClientID)
			if err != nil {
				return fmt.Errorf("failed to load client transactions: %w", err)
			}
			balance := domain.Recompute(excludeTransaction(others, transactionID)).NetBalance
			if err := checkPaymentGuard(balance, current.PaymentTotal()); err != nil {
				return err
			}
		}

		if err := tx.UpdateTransactionHeader(ctx, *current); err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}
		if err := tx.ReplaceLineItems(ctx, transactionID, items); err != nil {
			return fmt.Errorf("failed to replace line items: %w", err)
		}

		updated, err := recomputeClient(ctx, tx, *client, actor, now)
		if err != nil {
			return err
		}

		result = domain.MutationResult{Transaction: *current, Client: updated}
		return nil
	})
	if err != nil {
		return nil, s.mutationError(ctx, err, "failed to update transaction", slog.String("transaction_id", transactionID))
	}

	s.LogInfo(ctx, "Transaction updated",
		slog.String("client_id", result.Client.ClientID),
		slog.String("transaction_id", transactionID),
		slog.Int64("jo_number", result.Transaction.JONumber),
		slog.String("total_balance", result.Client.TotalBalance.String()),
		slog.String("status", string(result.Client.Status)),
	)
	return &result, nil
}

// DeleteTransaction removes a transaction and recomputes the owning client
// over what remains.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string, actor string) (*domain.MutationResult, error) {
	now := s.now()
	existing, err := s.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	var result domain.MutationResult
	err = s.ledger.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		client, err := lockClient(ctx, tx, existing.ClientID)
		if err != nil {
			return err
		}

		if err := tx.DeleteTransaction(ctx, transactionID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return transactionNotFound(transactionID)
			}
			return fmt.Errorf("failed to delete transaction: %w", err)
		}

		updated, err := recomputeClient(ctx, tx, *client, actor, now)
		if err != nil {
			return err
		}

		result = domain.MutationResult{Transaction: *existing, Client: updated}
		return nil
	})
	if err != nil {
		return nil, s.mutationError(ctx, err, "failed to delete transaction", slog.String("transaction_id", transactionID))
	}

	s.LogInfo(ctx, "Transaction deleted",
		slog.String("client_id", result.Client.ClientID),
		slog.String("transaction_id", transactionID),
		slog.Int64("jo_number", existing.JONumber),
		slog.String("total_balance", result.Client.TotalBalance.String()),
		slog.String("status", string(result.Client.Status)),
	)
	return &result, nil
}

// validateHeader parses the date and normalizes remarks.
func (s *transactionService) validateHeader(rawDate string, rawRemarks *string, now time.Time) (time.Time, *string, error) {
	date, err := domain.ParseDate(strings.TrimSpace(rawDate))
	if err != nil {
		return time.Time{}, nil, apperrors.NewValidationError(fmt.Sprintf("date %q must be formatted as YYYY-MM-DD", rawDate))
	}
	if date.After(domain.DateOnly(now)) {
		return time.Time{}, nil, apperrors.NewValidationError("transaction date cannot be in the future")
	}

	var remarks *string
	if rawRemarks != nil {
		r := strings.TrimSpace(*rawRemarks)
		if len([]rune(r)) > maxRemarksLength {
			return time.Time{}, nil, apperrors.NewValidationError(fmt.Sprintf("remarks cannot exceed %d characters", maxRemarksLength))
		}
		if r != "" {
			remarks = &r
		}
	}
	return date, remarks, nil
}

// buildLineItems resolves every referenced particular and validates each item
// against the particular's kind. The name and kind are snapshotted onto the item.
// The catalog is read outside the unit of work; it is reference data.
func (s *transactionService) buildLineItems(ctx context.Context, transactionID string, reqs []dto.LineItemRequest) ([]domain.LineItem, error) {
	if len(reqs) == 0 {
		return nil, apperrors.NewValidationError("at least one line item is required")
	}

	ids := make([]string, 0, len(reqs))
	seen := make(map[string]struct{}, len(reqs))
	for _, r := range reqs {
		if _, ok := seen[r.ParticularID]; ok {
			continue
		}
		seen[r.ParticularID] = struct{}{}
		ids = append(ids, r.ParticularID)
	}

	particulars, err := s.particularRepo.FindParticularsByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load particulars")
		return nil, apperrors.NewAppError(500, "failed to load particulars", err)
	}

	items := make([]domain.LineItem, 0, len(reqs))
	for i, r := range reqs {
		p, ok := particulars[r.ParticularID]
		if !ok {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("particular %s not found", r.ParticularID))
		}
		if err := validateLineItem(i+1, p, r); err != nil {
			return nil, err
		}

		particularID := p.ParticularID
		item := domain.LineItem{
			LineItemID:     uuid.NewString(),
			TransactionID:  transactionID,
			ParticularID:   &particularID,
			ParticularName: p.Name,
			Kind:           p.Type,
			Position:       i,
			UnitPrice:      r.UnitPrice,
		}
		if p.Type == domain.Service {
			units := *r.Units
			item.Units = &units
		}
		items = append(items, item)
	}
	return items, nil
}

func validateLineItem(n int, p domain.Particular, r dto.LineItemRequest) error {
	switch p.Type {
	case domain.Service:
		if r.Units == nil || *r.Units <= 0 {
			return apperrors.NewValidationError(fmt.Sprintf("line item %d: units must be greater than zero for %q", n, p.Name))
		}
		if *r.Units > domain.MaxUnits {
			return apperrors.NewValidationError(fmt.Sprintf("line item %d: units cannot exceed %d", n, domain.MaxUnits))
		}
		if r.UnitPrice.IsNegative() {
			return apperrors.NewValidationError(fmt.Sprintf("line item %d: unit price cannot be negative", n))
		}
	case domain.Payment:
		if r.Units != nil {
			return apperrors.NewValidationError(fmt.Sprintf("line item %d: payments do not take units", n))
		}
		if !r.UnitPrice.IsPositive() {
			return apperrors.NewValidationError(fmt.Sprintf("line item %d: payment amount must be greater than zero", n))
		}
	default:
		return apperrors.NewValidationError(fmt.Sprintf("line item %d: particular %q has unknown type %q", n, p.Name, p.Type))
	}
	return validateAmount(fmt.Sprintf("line item %d: amount", n), r.UnitPrice)
}

// validateAmount rejects values the ledger cannot store to the cent.
func validateAmount(what string, d decimal.Decimal) error {
	if !domain.HasMoneyScale(d) {
		return apperrors.NewValidationError(fmt.Sprintf("%s cannot have more than %d decimal places", what, domain.MoneyScale))
	}
	if d.GreaterThanOrEqual(domain.MaxUnitPrice) {
		return apperrors.NewValidationError(fmt.Sprintf("%s must be less than %s", what, domain.MaxUnitPrice.String()))
	}
	return nil
}

// checkPaymentGuard rejects a payment-only transaction against a settled
// balance or one that would overpay it.
func checkPaymentGuard(balance, payment decimal.Decimal) error {
	if !balance.IsPositive() {
		return apperrors.NewValidationError("Cannot record a payment: the client has no outstanding balance")
	}
	if payment.GreaterThan(balance) {
		return apperrors.NewValidationError(fmt.Sprintf("Payment amount cannot exceed the current outstanding balance of %s", balance.StringFixed(2)))
	}
	return nil
}

func lockClient(ctx context.Context, tx portsrepo.LedgerTx, clientID string) (*domain.Client, error) {
	client, err := tx.FindClientByIDForUpdate(ctx, clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("client %s not found", clientID))
		}
		return nil, fmt.Errorf("failed to lock client: %w", err)
	}
	return client, nil
}

// recomputeClient re-reads every transaction of the locked client, derives
// its ledger state and writes it back.
func recomputeClient(ctx context.Context, tx portsrepo.LedgerTx, client domain.Client, actor string, now time.Time) (domain.Client, error) {
	txns, err := tx.ListTransactionsByClient(ctx, client.ClientID)
	if err != nil {
		return domain.Client{}, fmt.Errorf("failed to load client transactions: %w", err)
	}

	state := domain.Recompute(txns)
	if state.NetBalance.GreaterThanOrEqual(domain.MaxBalance) {
		return domain.Client{}, apperrors.NewValidationError(fmt.Sprintf("outstanding balance cannot reach %s", domain.MaxBalance.String()))
	}
	if err := tx.UpdateClientLedgerState(ctx, client.ClientID, state, actor, now); err != nil {
		return domain.Client{}, fmt.Errorf("failed to update client balance: %w", err)
	}

	client.ApplyLedgerState(state)
	client.Touch(actor, now)
	return client, nil
}

func excludeTransaction(txns []domain.Transaction, transactionID string) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.TransactionID != transactionID {
			out = append(out, t)
		}
	}
	return out
}

func transactionNotFound(transactionID string) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", transactionID))
}

// mutationError passes through the client errors the workflow raised itself.
// Anything else, including constraint violations reported by storage, is a
// rolled-back persistence failure.
func (s *transactionService) mutationError(ctx context.Context, err error, msg string, attrs ...any) error {
	if appErr, ok := err.(*apperrors.AppError); ok && appErr.Code >= 400 && appErr.Code < 500 {
		s.LogWarn(ctx, msg, append(attrs, slog.String("reason", err.Error()))...)
		return err
	}
	s.LogError(ctx, err, msg, attrs...)
	return apperrors.NewAppError(500, msg, err)
}
