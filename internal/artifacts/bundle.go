// Package artifacts loads the label encoders, the model and the product base from disk
// into an immutable Bundle.
package artifacts

import (
	"errors"
	"io/fs"
	"os"
	"slices"

	"fiscalizacao/internal/model"
)

// Paths lists every file the dashboard needs before it can answer a consulta.
type Paths struct {
	LeCategoria string
	LeEmpresa   string
	LeProduto   string
	LeTarget    string
	Model       string
	Dataset     string
}

func (p Paths) all() []string {
	return []string{p.LeCategoria, p.LeEmpresa, p.LeProduto, p.LeTarget, p.Model, p.Dataset}
}

// Bundle is the loaded state. It is never modified after Load returns and is safe to share
// between goroutines.
type Bundle struct {
	leCategoria *LabelEncoder
	leEmpresa   *LabelEncoder
	leProduto   *LabelEncoder
	leTarget    *LabelEncoder
	model       []byte
	records     []model.ProductRecord
}

// Load checks that every path exists, then parses each artifact. Missing files are reported
// together in a *MissingArtifactsError before any parsing happens. Files that exist but cannot
// be read or parsed are *MalformedArtifactError values joined into one error.
func Load(paths Paths, opts DatasetOptions) (*Bundle, error) {
	var missing []string
	for _, p := range paths.all() {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingArtifactsError{Paths: missing}
	}

	var (
		b    Bundle
		errs []error
		err  error
	)
	encoders := []struct {
		path string
		dst  **LabelEncoder
	}{
		{paths.LeCategoria, &b.leCategoria},
		{paths.LeEmpresa, &b.leEmpresa},
		{paths.LeProduto, &b.leProduto},
		{paths.LeTarget, &b.leTarget},
	}
	for _, e := range encoders {
		if *e.dst, err = loadLabelEncoder(e.path); err != nil {
			errs = append(errs, err)
		}
	}
	if b.model, err = loadModel(paths.Model); err != nil {
		errs = append(errs, err)
	}
	if b.records, err = loadDataset(paths.Dataset, opts); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &b, nil
}

// NewBundle assembles a Bundle from already-parsed parts.
func NewBundle(categoria, empresa, produto, target *LabelEncoder, records []model.ProductRecord) *Bundle {
	return &Bundle{
		leCategoria: categoria,
		leEmpresa:   empresa,
		leProduto:   produto,
		leTarget:    target,
		records:     slices.Clone(records),
	}
}

func (b *Bundle) Categorias() *LabelEncoder { return b.leCategoria }
func (b *Bundle) Empresas() *LabelEncoder   { return b.leEmpresa }
func (b *Bundle) Produtos() *LabelEncoder   { return b.leProduto }
func (b *Bundle) Target() *LabelEncoder     { return b.leTarget }

// Model returns a copy of the decompressed model payload. Nothing evaluates it.
func (b *Bundle) Model() []byte { return slices.Clone(b.model) }

// Len returns the number of product records.
func (b *Bundle) Len() int { return len(b.records) }

// Each calls fn for every record in file order until fn returns false.
func (b *Bundle) Each(fn func(model.ProductRecord) bool) {
	for _, r := range b.records {
		if !fn(r) {
			return
		}
	}
}
