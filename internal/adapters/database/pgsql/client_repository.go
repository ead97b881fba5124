package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/client_ledger/internal/apperrors"
	"github.com/SscSPs/client_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/client_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/client_ledger/internal/models"
	"github.com/SscSPs/client_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const clientColumns = `client_id, first_name, last_name, title, address, total_balance,
	last_transaction_date, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxClientRepository struct {
	BaseRepository
}

func newPgxClientRepository(pool *pgxpool.Pool) *PgxClientRepository {
	return &PgxClientRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxClientRepository implements portsrepo.ClientRepositoryFacade
var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ClientID, m.FirstName, m.LastName, m.Title, m.Address, m.TotalBalance,
		m.LastTransactionDate, m.Status, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError("failed to save client "+m.ClientID, err)
	}
	return nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	return findClient(ctx, r.Pool, clientID, false)
}

// findClient loads one client, taking a row lock when forUpdate is set.
func findClient(ctx context.Context, q querier, clientID string, forUpdate bool) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rows, err := q.Query(ctx, query, clientID)
	if err != nil {
		return nil, mapPgError("failed to query client "+clientID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Client])
	if err != nil {
		return nil, notFoundOr("failed to find client "+clientID, err)
	}
	c := mapping.ToDomainClient(m)
	return &c, nil
}

func (r *PgxClientRepository) ListClients(ctx context.Context, filter domain.ClientFilter) ([]domain.Client, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d OR address ILIKE $%d)", n, n, n))
	}

	query := `SELECT ` + clientColumns + ` FROM clients`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY LOWER(last_name), LOWER(first_name), client_id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError("failed to list clients", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Client])
	if err != nil {
		return nil, mapPgError("failed to scan clients", err)
	}
	return mapping.ToDomainClients(ms), nil
}

func (r *PgxClientRepository) FindClientsByName(ctx context.Context, firstName, lastName string) ([]domain.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE LOWER(first_name) = LOWER($1) AND LOWER(last_name) = LOWER($2)
		ORDER BY client_id;
	`
	rows, err := r.Pool.Query(ctx, query, firstName, lastName)
	if err != nil {
		return nil, mapPgError("failed to query clients by name", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Client])
	if err != nil {
		return nil, mapPgError("failed to scan clients", err)
	}
	return mapping.ToDomainClients(ms), nil
}

// UpdateClientProfile never touches the balance columns.
func (r *PgxClientRepository) UpdateClientProfile(ctx context.Context, client domain.Client) error {
	query := `
		UPDATE clients
		SET first_name = $2, last_name = $3, title = $4, address = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE client_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		client.ClientID, client.FirstName, client.LastName, client.Title, client.Address,
		client.LastUpdatedAt, client.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError("failed to update client "+client.ClientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
