// Package feedback records error reports submitted by fiscais after a consulta.
package feedback

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyDescription is returned when the report text is blank.
var ErrEmptyDescription = errors.New("descreva o erro encontrado")

// TimestampLayout is how reports are dated in the log.
const TimestampLayout = "2006-01-02 15:04"

type Report struct {
	ID          uuid.UUID
	Timestamp   time.Time
	Product     string
	Company     string
	Description string
}

// NewReport validates and stamps a report.
func NewReport(product, company, description string, now time.Time) (Report, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Report{}, ErrEmptyDescription
	}
	return Report{
		ID:          uuid.New(),
		Timestamp:   now,
		Product:     product,
		Company:     company,
		Description: description,
	}, nil
}

// Store is an append-only destination for reports.
type Store interface {
	Append(ctx context.Context, r Report) error
}
