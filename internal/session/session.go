// Package session remembers the last consulta of each browser so the error-report form
// only opens after a product was actually looked up.
package session

import (
	"context"
	"errors"
	"time"
)

const TTL = 30 * time.Minute

// ErrFormClosed means there is no consulta to attach a report to.
var ErrFormClosed = errors.New("nenhuma consulta aberta para reportar")

// State is what the dashboard keeps per session.
type State struct {
	Category  string    `json:"categoria"`
	Product   string    `json:"produto"`
	Company   string    `json:"empresa"`
	FormOpen  bool      `json:"mostrar_formulario"`
	UpdatedAt time.Time `json:"atualizado_em"`
}

type Store interface {
	// Get returns the zero State when the session is unknown or expired.
	Get(ctx context.Context, id string) (State, error)
	Set(ctx context.Context, id string, st State) error
}

// OpenForm records a successful consulta.
func OpenForm(ctx context.Context, s Store, id, category, product, company string, now time.Time) error {
	return s.Set(ctx, id, State{
		Category:  category,
		Product:   product,
		Company:   company,
		FormOpen:  true,
		UpdatedAt: now,
	})
}

// CloseForm consumes the open form and returns the consulta it belonged to.
func CloseForm(ctx context.Context, s Store, id string, now time.Time) (State, error) {
	st, err := s.Get(ctx, id)
	if err != nil {
		return State{}, err
	}
	if !st.FormOpen {
		return State{}, ErrFormClosed
	}
	closed := st
	closed.FormOpen = false
	closed.UpdatedAt = now
	if err := s.Set(ctx, id, closed); err != nil {
		return State{}, err
	}
	return st, nil
}
