package feedback

import (
	"context"
	"database/sql"
	"fmt"
)

const feedbackSchema = `
CREATE TABLE IF NOT EXISTS feedback_reports (
	id          UUID PRIMARY KEY,
	created_at  TIMESTAMPTZ NOT NULL,
	produto     TEXT NOT NULL,
	empresa     TEXT NOT NULL,
	erro        TEXT NOT NULL
)`

// PostgresStore keeps reports in the feedback_reports table.
type PostgresStore struct {
	DB *sql.DB
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, feedbackSchema); err != nil {
		return fmt.Errorf("criar feedback_reports: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, r Report) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO feedback_reports (id, created_at, produto, empresa, erro)
		VALUES ($1, $2, $3, $4, $5)
	`, r.ID.String(), r.Timestamp, r.Product, r.Company, r.Description)
	if err != nil {
		return fmt.Errorf("inserir feedback %s: %w", r.ID, err)
	}
	return nil
}
