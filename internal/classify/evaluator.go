package classify

import (
	"errors"
	"fmt"
	"time"

	"fiscalizacao/internal/artifacts"
	"fiscalizacao/internal/model"
)

// ErrNotFound is returned when no record matches a (categoria, produto, empresa) triple.
var ErrNotFound = errors.New("produto não encontrado")

// Evaluator answers consultas against a loaded Bundle.
type Evaluator struct {
	bundle *artifacts.Bundle
	now    func() time.Time
	loc    *time.Location
}

type Option func(*Evaluator)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) { e.now = now }
}

// WithLocation sets the zone whose calendar decides "today".
func WithLocation(loc *time.Location) Option {
	return func(e *Evaluator) {
		if loc != nil {
			e.loc = loc
		}
	}
}

func NewEvaluator(bundle *artifacts.Bundle, opts ...Option) *Evaluator {
	e := &Evaluator{bundle: bundle, now: time.Now, loc: time.Local}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Today is the current calendar date in the evaluator's zone.
func (e *Evaluator) Today() time.Time {
	return civilDate(e.now().In(e.loc))
}

// Evaluate classifies the first record matching the triple. The result is computed on every
// call because the answer moves with the calendar.
func (e *Evaluator) Evaluate(category, product, company string) (model.ClassificationResult, error) {
	rec, ok := e.find(category, product, company)
	if !ok {
		return model.ClassificationResult{}, fmt.Errorf("%w: %s / %s / %s", ErrNotFound, category, product, company)
	}
	return model.ClassificationResult{
		Classification:     Classify(rec.Status, rec.ExpirationDate, e.Today()),
		ExpirationDate:     rec.ExpirationDate,
		CompanyName:        rec.CompanyName,
		RegistrationNumber: rec.RegistrationNumber,
	}, nil
}

// find returns the first match. The base may hold repeated triples; only the first one counts.
func (e *Evaluator) find(category, product, company string) (model.ProductRecord, bool) {
	var (
		found model.ProductRecord
		ok    bool
	)
	e.bundle.Each(func(r model.ProductRecord) bool {
		if r.Matches(category, product, company) {
			found, ok = r, true
			return false
		}
		return true
	})
	return found, ok
}

// Categories lists the categories known to the category encoder.
func (e *Evaluator) Categories() []string {
	return e.bundle.Categorias().Classes()
}

// Products lists the distinct products of a category in file order.
func (e *Evaluator) Products(category string) []string {
	return e.distinct(func(r model.ProductRecord) (string, bool) {
		return r.ProductName, r.Category == category
	})
}

// Companies lists the distinct companies registering a product within a category, in file order.
func (e *Evaluator) Companies(category, product string) []string {
	return e.distinct(func(r model.ProductRecord) (string, bool) {
		return r.CompanyName, r.Category == category && r.ProductName == product
	})
}

func (e *Evaluator) distinct(pick func(model.ProductRecord) (string, bool)) []string {
	seen := make(map[string]struct{})
	out := []string{}
	e.bundle.Each(func(r model.ProductRecord) bool {
		v, ok := pick(r)
		if !ok {
			return true
		}
		if _, dup := seen[v]; !dup {
			seen[v] = struct{}{}
			out = append(out, v)
		}
		return true
	})
	return out
}
