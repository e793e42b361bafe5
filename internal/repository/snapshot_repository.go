package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"fiscalizacao/internal/model"
)

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS classification_snapshots (
	run_id          UUID NOT NULL,
	data_referencia DATE NOT NULL,
	categoria       TEXT NOT NULL,
	produto         TEXT NOT NULL,
	empresa         TEXT NOT NULL,
	situacao        TEXT NOT NULL,
	registro        TEXT NOT NULL,
	vencimento      DATE NOT NULL,
	dias_restantes  INTEGER NOT NULL,
	classificacao   TEXT NOT NULL
)`

var snapshotColumns = []string{
	"run_id", "data_referencia", "categoria", "produto", "empresa",
	"situacao", "registro", "vencimento", "dias_restantes", "classificacao",
}

// SnapshotRow is one classified product of a daily run.
type SnapshotRow struct {
	Record         model.ProductRecord
	DaysToExpire   int
	Classification model.Classification
}

// pgxDB is the subset of *pgxpool.Pool the repository needs.
type pgxDB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error)
}

type SnapshotRepository struct {
	DB pgxDB
}

func (r *SnapshotRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.DB.Exec(ctx, snapshotSchema); err != nil {
		return fmt.Errorf("criar classification_snapshots: %w", err)
	}
	return nil
}

// Save bulk-loads a run with COPY and returns the number of rows written.
func (r *SnapshotRepository) Save(ctx context.Context, runID uuid.UUID, day time.Time, rows []SnapshotRow) (int64, error) {
	n, err := r.DB.CopyFrom(ctx,
		pgx.Identifier{"classification_snapshots"},
		snapshotColumns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			return snapshotValues(runID, day, rows[i]), nil
		}),
	)
	if err != nil {
		return n, fmt.Errorf("copy snapshot %s: %w", runID, err)
	}
	return n, nil
}

func snapshotValues(runID uuid.UUID, day time.Time, row SnapshotRow) []any {
	rec := row.Record
	return []any{
		runID,
		day,
		rec.Category,
		rec.ProductName,
		rec.CompanyName,
		rec.Status,
		rec.RegistrationNumber,
		rec.ExpirationDate,
		row.DaysToExpire,
		string(row.Classification),
	}
}
