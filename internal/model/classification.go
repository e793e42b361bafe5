package model

import "time"

type Classification string

const (
	ClassAtivo       Classification = "ATIVO"
	ClassVencido     Classification = "VENCIDO"
	ClassPertoVencer Classification = "PERTO DO VENCIMENTO"
	ClassInativo     Classification = "INATIVO"
	ClassIndefinido  Classification = "INDEFINIDO"
)

// Classifications lists every label in the order the dashboard shows them.
var Classifications = []Classification{
	ClassAtivo,
	ClassPertoVencer,
	ClassVencido,
	ClassInativo,
	ClassIndefinido,
}

func (c Classification) String() string { return string(c) }

// ClassificationResult is what a consulta returns. It is never stored.
type ClassificationResult struct {
	Classification     Classification
	ExpirationDate     time.Time
	CompanyName        string
	RegistrationNumber string
}

// Validade formats the expiration date the way the base displays it.
func (r ClassificationResult) Validade() string {
	return r.ExpirationDate.Format(DateLayout)
}

// DateLayout is the canonical calendar date format.
const DateLayout = "2006-01-02"
