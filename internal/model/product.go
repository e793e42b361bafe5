package model

import "time"

// Situação do registro como vem na base da ANVISA.
const (
	StatusAtivo   = "ATIVO"
	StatusInativo = "INATIVO"
)

// ProductRecord é uma linha de produtos_classificados.csv já validada.
type ProductRecord struct {
	Category           string // DS_CATEGORIA_PRODUTO
	ProductName        string // NO_PRODUTO
	CompanyName        string // NO_RAZAO_SOCIAL_EMPRESA
	Status             string // ST_SITUACAO_REGISTRO
	RegistrationNumber string // NU_REGISTRO_PRODUTO
	ExpirationDate     time.Time
}

// Matches reports whether the record belongs to the (categoria, produto, empresa) triple.
func (p ProductRecord) Matches(category, product, company string) bool {
	return p.Category == category && p.ProductName == product && p.CompanyName == company
}
