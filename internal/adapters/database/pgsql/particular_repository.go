package pgsql

import (
	"context"

	"github.com/SscSPs/client_ledger/internal/apperrors"
	"github.com/SscSPs/client_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/client_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/client_ledger/internal/models"
	"github.com/SscSPs/client_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const particularColumns = `particular_id, name, particular_type, unit_price,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxParticularRepository struct {
	BaseRepository
}

func newPgxParticularRepository(pool *pgxpool.Pool) *PgxParticularRepository {
	return &PgxParticularRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ParticularRepositoryFacade = (*PgxParticularRepository)(nil)

// SaveParticular relies on the (particular_type, LOWER(name)) unique index for duplicates.
func (r *PgxParticularRepository) SaveParticular(ctx context.Context, particular domain.Particular) error {
	m := mapping.ToModelParticular(particular)
	query := `
		INSERT INTO particulars (` + particularColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ParticularID, m.Name, m.ParticularType, m.UnitPrice,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError("failed to save particular "+m.ParticularID, err)
	}
	return nil
}

func (r *PgxParticularRepository) FindParticularByID(ctx context.Context, particularID string) (*domain.Particular, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+particularColumns+` FROM particulars WHERE particular_id = $1`, particularID)
	if err != nil {
		return nil, mapPgError("failed to query particular "+particularID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Particular])
	if err != nil {
		return nil, notFoundOr("failed to find particular "+particularID, err)
	}
	p := mapping.ToDomainParticular(m)
	return &p, nil
}

func (r *PgxParticularRepository) FindParticularsByIDs(ctx context.Context, particularIDs []string) (map[string]domain.Particular, error) {
	if len(particularIDs) == 0 {
		return map[string]domain.Particular{}, nil
	}
	rows, err := r.Pool.Query(ctx, `SELECT `+particularColumns+` FROM particulars WHERE particular_id = ANY($1)`, particularIDs)
	if err != nil {
		return nil, mapPgError("failed to query particulars by IDs", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Particular])
	if err != nil {
		return nil, mapPgError("failed to scan particulars", err)
	}
	out := make(map[string]domain.Particular, len(ms))
	for _, m := range ms {
		out[m.ParticularID] = mapping.ToDomainParticular(m)
	}
	return out, nil
}

func (r *PgxParticularRepository) ListParticulars(ctx context.Context, particularType *domain.ParticularType) ([]domain.Particular, error) {
	var typeArg *string
	if particularType != nil {
		t := string(*particularType)
		typeArg = &t
	}
	query := `
		SELECT ` + particularColumns + `
		FROM particulars
		WHERE $1::text IS NULL OR particular_type = $1
		ORDER BY particular_type DESC, LOWER(name);
	`
	rows, err := r.Pool.Query(ctx, query, typeArg)
	if err != nil {
		return nil, mapPgError("failed to list particulars", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Particular])
	if err != nil {
		return nil, mapPgError("failed to scan particulars", err)
	}
	out := make([]domain.Particular, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainParticular(m)
	}
	return out, nil
}

// DeleteParticular leaves line items in place; the foreign key sets their particular_id to NULL.
func (r *PgxParticularRepository) DeleteParticular(ctx context.Context, particularID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM particulars WHERE particular_id = $1`, particularID)
	if err != nil {
		return mapPgError("failed to delete particular "+particularID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
