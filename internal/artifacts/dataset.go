package artifacts

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"

	"fiscalizacao/internal/model"
)

// Colunas obrigatórias de produtos_classificados.csv.
const (
	ColCategoria = "DS_CATEGORIA_PRODUTO"
	ColProduto   = "NO_PRODUTO"
	ColEmpresa   = "NO_RAZAO_SOCIAL_EMPRESA"
	ColSituacao  = "ST_SITUACAO_REGISTRO"
	ColRegistro  = "NU_REGISTRO_PRODUTO"
	ColValidade  = "DT_VENCIMENTO_REGISTRO"
)

var requiredColumns = []string{ColCategoria, ColProduto, ColEmpresa, ColSituacao, ColRegistro, ColValidade}

var dateLayouts = []string{
	model.DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
}

// DatasetOptions controls how the CSV is decoded.
type DatasetOptions struct {
	Separator rune
	Encoding  string // "utf-8" or "latin1"
}

func (o DatasetOptions) withDefaults() DatasetOptions {
	if o.Separator == 0 {
		o.Separator = ','
	}
	if o.Encoding == "" {
		o.Encoding = "utf-8"
	}
	return o
}

func loadDataset(path string, opts DatasetOptions) ([]model.ProductRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, malformed(path, err)
	}
	defer f.Close()

	records, err := readDataset(f, opts)
	if err != nil {
		return nil, malformed(path, err)
	}
	return records, nil
}

func readDataset(src io.Reader, opts DatasetOptions) ([]model.ProductRecord, error) {
	opts = opts.withDefaults()

	switch strings.ToLower(opts.Encoding) {
	case "utf-8", "utf8":
	case "latin1", "latin-1", "iso-8859-1":
		src = charmap.ISO8859_1.NewDecoder().Reader(src)
	default:
		return nil, fmt.Errorf("encoding não suportado: %s", opts.Encoding)
	}

	r := csv.NewReader(src)
	r.Comma = opts.Separator

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("csv sem cabeçalho")
	}
	if err != nil {
		return nil, err
	}
	cols, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var records []model.ProductRecord
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := r.FieldPos(0)

		raw := row[cols[ColValidade]]
		exp, err := parseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("linha %d, coluna %s: data inválida %q", line, ColValidade, raw)
		}
		records = append(records, model.ProductRecord{
			Category:           strings.TrimSpace(row[cols[ColCategoria]]),
			ProductName:        strings.TrimSpace(row[cols[ColProduto]]),
			CompanyName:        strings.TrimSpace(row[cols[ColEmpresa]]),
			Status:             strings.TrimSpace(row[cols[ColSituacao]]),
			RegistrationNumber: strings.TrimSpace(row[cols[ColRegistro]]),
			ExpirationDate:     exp,
		})
	}
	return records, nil
}

func indexColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		h = strings.TrimSpace(h)
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}

	var missing []string
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("colunas ausentes: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

// parseDate returns the calendar date of s at midnight UTC.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("data vazia")
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("formato de data desconhecido: %q", s)
}
