package classify

import "fiscalizacao/internal/model"

// Severity maps to the alert style the dashboard uses.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

type Advice struct {
	Severity Severity
	Message  string
}

var advice = map[model.Classification]Advice{
	model.ClassPertoVencer: {SeverityWarning, "Atenção: produto perto do vencimento. Ação recomendada em 180 dias conforme RDC 157/2002."},
	model.ClassAtivo:       {SeveritySuccess, "Classificação confirmada conforme legislação ANVISA."},
	model.ClassVencido:     {SeverityError, "Produto vencido: retirada imediata do mercado exigida pela legislação."},
	model.ClassInativo:     {SeverityInfo, "Registro inativo: verificar motivo da inativação no sistema ANVISA."},
}

// AdviceFor returns the guidance shown next to a result. INDEFINIDO has none.
func AdviceFor(c model.Classification) (Advice, bool) {
	a, ok := advice[c]
	return a, ok
}
