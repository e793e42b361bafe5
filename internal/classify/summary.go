package classify

import (
	"time"

	"fiscalizacao/internal/model"
)

// ClassCount is one card of the "Sobre a Base" panel.
type ClassCount struct {
	Classification model.Classification
	Count          int
	Percent        float64
}

// Summary is the distribution of classifications over the whole base on Date.
type Summary struct {
	Date   time.Time
	Total  int
	Counts []ClassCount
}

// Summarize classifies every record for today. Labels with no records are still listed so
// the dashboard always shows the same cards.
func (e *Evaluator) Summarize() Summary {
	var classes []model.Classification
	day := e.ClassifyAll(func(_ model.ProductRecord, c model.Classification) {
		classes = append(classes, c)
	})
	return Tally(day, classes)
}

// Tally builds the summary of classifications already computed for day.
func Tally(day time.Time, classes []model.Classification) Summary {
	counts := make(map[model.Classification]int, len(model.Classifications))
	for _, c := range classes {
		counts[c]++
	}

	s := Summary{Date: day, Total: len(classes)}
	for _, c := range model.Classifications {
		cc := ClassCount{Classification: c, Count: counts[c]}
		if s.Total > 0 {
			cc.Percent = 100 * float64(cc.Count) / float64(s.Total)
		}
		s.Counts = append(s.Counts, cc)
	}
	return s
}

// ClassifyAll runs fn for every record with its classification on today. Used by batch jobs.
func (e *Evaluator) ClassifyAll(fn func(model.ProductRecord, model.Classification)) time.Time {
	today := e.Today()
	e.bundle.Each(func(r model.ProductRecord) bool {
		fn(r, Classify(r.Status, r.ExpirationDate, today))
		return true
	})
	return today
}
