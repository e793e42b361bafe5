// Package classify applies the registration status rule to the loaded product base.
package classify

import (
	"time"

	"fiscalizacao/internal/model"
)

// ExpiryWarningDays is the inclusive window in which an active registration is
// PERTO DO VENCIMENTO (RDC 157/2002).
const ExpiryWarningDays = 180

// DaysUntil returns the whole calendar days from today to expiration. Negative once expired.
func DaysUntil(expiration, today time.Time) int {
	const secondsPerDay = 24 * 60 * 60
	return int((civilDate(expiration).Unix() - civilDate(today).Unix()) / secondsPerDay)
}

// Classify decides the status of one registration. INATIVO wins over any date.
func Classify(status string, expiration, today time.Time) model.Classification {
	switch status {
	case model.StatusInativo:
		return model.ClassInativo
	case model.StatusAtivo:
		days := DaysUntil(expiration, today)
		switch {
		case days < 0:
			return model.ClassVencido
		case days <= ExpiryWarningDays:
			return model.ClassPertoVencer
		default:
			return model.ClassAtivo
		}
	default:
		return model.ClassIndefinido
	}
}

// civilDate drops the clock and zone of t, keeping the date as written.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
