package artifacts

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"

	"fiscalizacao/internal/model"
)

const sampleCSV = `DS_CATEGORIA_PRODUTO,NO_PRODUTO,NO_RAZAO_SOCIAL_EMPRESA,ST_SITUACAO_REGISTRO,NU_REGISTRO_PRODUTO,DT_VENCIMENTO_REGISTRO
SANEANTES,ALCOOL 70,LIMPA TUDO LTDA,ATIVO,325010001,2031-05-01
SANEANTES,ALCOOL 70,HIGIENE SA,INATIVO,325010002,2019-02-10
COSMETICOS,SHAMPOO NEUTRO,BELEZA LTDA, ATIVO ,255550003,15/08/2025
`

func writeXZ(t *testing.T, path string, payload []byte) {
	t.Helper()
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func writeArtifacts(t *testing.T) Paths {
	t.Helper()
	dir := t.TempDir()
	p := Paths{
		LeCategoria: filepath.Join(dir, "le_categoria.json"),
		LeEmpresa:   filepath.Join(dir, "le_empresa.json"),
		LeProduto:   filepath.Join(dir, "le_produto.json"),
		LeTarget:    filepath.Join(dir, "le_target.json"),
		Model:       filepath.Join(dir, "modelo_final.bin.xz"),
		Dataset:     filepath.Join(dir, "produtos_classificados.csv"),
	}
	require.NoError(t, os.WriteFile(p.LeCategoria, []byte(`["COSMETICOS","SANEANTES"]`), 0o644))
	require.NoError(t, os.WriteFile(p.LeEmpresa, []byte(`{"classes_":["BELEZA LTDA","HIGIENE SA","LIMPA TUDO LTDA"]}`), 0o644))
	require.NoError(t, os.WriteFile(p.LeProduto, []byte(`["ALCOOL 70","SHAMPOO NEUTRO"]`), 0o644))
	require.NoError(t, os.WriteFile(p.LeTarget, []byte(`{"classes_":["ATIVO","INATIVO","PERTO DO VENCIMENTO","VENCIDO"]}`), 0o644))
	writeXZ(t, p.Model, []byte("random-forest"))
	require.NoError(t, os.WriteFile(p.Dataset, []byte(sampleCSV), 0o644))
	return p
}

func TestLoad_AllArtifacts(t *testing.T) {
	p := writeArtifacts(t)

	b, err := Load(p, DatasetOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"COSMETICOS", "SANEANTES"}, b.Categorias().Classes())
	assert.Equal(t, 3, b.Empresas().Len())
	assert.Equal(t, 4, b.Target().Len())
	assert.Equal(t, []byte("random-forest"), b.Model())
	assert.Equal(t, 3, b.Len())

	var statuses []string
	b.Each(func(r model.ProductRecord) bool {
		statuses = append(statuses, r.Status)
		return true
	})
	assert.Equal(t, []string{"ATIVO", "INATIVO", "ATIVO"}, statuses)
}

func TestLoad_ReportsEveryMissingPath(t *testing.T) {
	p := writeArtifacts(t)
	require.NoError(t, os.Remove(p.LeTarget))
	require.NoError(t, os.Remove(p.Dataset))
	// A broken encoder must not be parsed while other files are missing.
	require.NoError(t, os.WriteFile(p.LeProduto, []byte("not json"), 0o644))

	_, err := Load(p, DatasetOptions{})

	var missing *MissingArtifactsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{p.LeTarget, p.Dataset}, missing.Paths)
	assert.Contains(t, err.Error(), "arquivos faltando")

	var bad *MalformedArtifactError
	assert.False(t, errors.As(err, &bad))
}

func TestLoad_UnreadablePathIsNotMissing(t *testing.T) {
	p := writeArtifacts(t)
	// ENOTDIR: the path cannot be stat'ed but it is not absent either.
	p.Dataset = filepath.Join(p.LeCategoria, "produtos_classificados.csv")

	_, err := Load(p, DatasetOptions{})
	require.Error(t, err)

	var missing *MissingArtifactsError
	assert.False(t, errors.As(err, &missing))
	var bad *MalformedArtifactError
	require.ErrorAs(t, err, &bad)
	assert.Equal(t, p.Dataset, bad.Path)
}

func TestLoad_MalformedArtifacts(t *testing.T) {
	p := writeArtifacts(t)
	require.NoError(t, os.WriteFile(p.LeEmpresa, []byte(`{"outra":"coisa"}`), 0o644))
	require.NoError(t, os.WriteFile(p.Model, []byte("isto não é xz"), 0o644))

	_, err := Load(p, DatasetOptions{})
	require.Error(t, err)

	assert.Contains(t, err.Error(), p.LeEmpresa)
	assert.Contains(t, err.Error(), p.Model)
	var bad *MalformedArtifactError
	require.ErrorAs(t, err, &bad)
	assert.Equal(t, p.LeEmpresa, bad.Path)
}

func TestLoad_EncoderClassesMatchTrimmedRecords(t *testing.T) {
	p := writeArtifacts(t)
	require.NoError(t, os.WriteFile(p.LeCategoria, []byte(`["SANEANTES ", " COSMETICOS", "SANEANTES"]`), 0o644))
	csv := strings.Replace(sampleCSV, "SANEANTES,ALCOOL 70,LIMPA", "SANEANTES ,ALCOOL 70,LIMPA", 1)
	require.NoError(t, os.WriteFile(p.Dataset, []byte(csv), 0o644))

	b, err := Load(p, DatasetOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"SANEANTES", "COSMETICOS"}, b.Categorias().Classes())
	b.Each(func(r model.ProductRecord) bool {
		_, ok := b.Categorias().Transform(r.Category)
		assert.True(t, ok, r.Category)
		return true
	})
	i, ok := b.Categorias().Transform("SANEANTES ")
	assert.True(t, ok)
	assert.Equal(t, 0, i)
}

func TestParseLabelEncoder(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{name: "raw list", input: `["B","A"]`, want: []string{"B", "A"}},
		{name: "encoder object", input: ` {"classes_": ["A","B"]}`, want: []string{"A", "B"}},
		{name: "duplicates dropped", input: `["A","B","A"]`, want: []string{"A", "B"}},
		{name: "padded labels trimmed", input: `["A ","B"," A"]`, want: []string{"A", "B"}},
		{name: "empty list", input: `[]`, wantErr: true},
		{name: "object without classes", input: `{"x":1}`, wantErr: true},
		{name: "numbers", input: `[1,2]`, wantErr: true},
		{name: "empty file", input: "  ", wantErr: true},
		{name: "garbage", input: "not json", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := parseLabelEncoder([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, enc.Classes())
		})
	}
}

func TestLabelEncoder_Transform(t *testing.T) {
	enc, err := NewLabelEncoder([]string{"ATIVO", "INATIVO"})
	require.NoError(t, err)

	i, ok := enc.Transform("INATIVO")
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	_, ok = enc.Transform("SUSPENSO")
	assert.False(t, ok)

	l, ok := enc.InverseTransform(0)
	assert.True(t, ok)
	assert.Equal(t, "ATIVO", l)
	_, ok = enc.InverseTransform(2)
	assert.False(t, ok)

	classes := enc.Classes()
	classes[0] = "mutado"
	assert.Equal(t, "ATIVO", enc.Classes()[0])
}

func TestReadDataset(t *testing.T) {
	records, err := readDataset(strings.NewReader(sampleCSV), DatasetOptions{})
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "SHAMPOO NEUTRO", records[2].ProductName)
	assert.Equal(t, "ATIVO", records[2].Status)
	assert.Equal(t, time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC), records[2].ExpirationDate)
	assert.Equal(t, "325010001", records[0].RegistrationNumber)
}

func TestReadDataset_SemicolonLatin1(t *testing.T) {
	data := []byte("DT_VENCIMENTO_REGISTRO;NU_REGISTRO_PRODUTO;ST_SITUACAO_REGISTRO;NO_RAZAO_SOCIAL_EMPRESA;NO_PRODUTO;DS_CATEGORIA_PRODUTO\n")
	data = append(data, []byte("2026-01-01 00:00:00;1;ATIVO;EMPRESA;LUVA;PRODUTOS PARA SA")...)
	data = append(data, 0xDA) // Ú in ISO-8859-1
	data = append(data, []byte("DE\n")...)

	records, err := readDataset(bytes.NewReader(data), DatasetOptions{Separator: ';', Encoding: "latin1"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "PRODUTOS PARA SAÚDE", records[0].Category)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), records[0].ExpirationDate)
}

func TestReadDataset_UTF8BOM(t *testing.T) {
	input := "\ufeff" + sampleCSV

	records, err := readDataset(strings.NewReader(input), DatasetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "SANEANTES", records[0].Category)
}

func TestReadDataset_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		opts    DatasetOptions
		wantErr string
	}{
		{name: "empty", input: "", wantErr: "cabeçalho"},
		{
			name:    "missing columns",
			input:   "DS_CATEGORIA_PRODUTO,NO_PRODUTO\nA,B\n",
			wantErr: "NO_RAZAO_SOCIAL_EMPRESA",
		},
		{
			name:    "bad date",
			input:   strings.Join(requiredColumns, ",") + "\nA,B,C,ATIVO,1,amanhã\n",
			wantErr: "linha 2",
		},
		{
			name:    "short row",
			input:   strings.Join(requiredColumns, ",") + "\nA,B,C\n",
			wantErr: "wrong number of fields",
		},
		{
			name:    "unknown encoding",
			input:   strings.Join(requiredColumns, ","),
			opts:    DatasetOptions{Encoding: "utf-16"},
			wantErr: "encoding",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readDataset(strings.NewReader(tt.input), tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2024-01-01", "2024-01-01 13:45:00", "2024-01-01T23:59:59-03:00", "01/01/2024", " 2024-01-01 "} {
		got, err := parseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := parseDate("")
	assert.Error(t, err)
}
