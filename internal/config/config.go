package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"fiscalizacao/internal/artifacts"
)

type Config struct {
	LeCategoriaPath  string
	LeEmpresaPath    string
	LeProdutoPath    string
	LeTargetPath     string
	ModelPath        string
	DatasetPath      string
	DatasetSeparator string
	DatasetEncoding  string

	HTTPPort     string
	MetricsPort  string
	RedisURL     string
	DatabaseURL  string
	FeedbackPath string
	Timezone     string
	LogLevel     string
}

func Load() *Config {
	// Carrega .env da raiz do projeto
	_ = godotenv.Load("../../.env")
	// Se não encontrar, tenta no diretório atual
	_ = godotenv.Load()

	dataDir := getEnv("DATA_DIR", "data")
	return &Config{
		LeCategoriaPath:  getEnv("LE_CATEGORIA_PATH", filepath.Join(dataDir, "le_categoria.json")),
		LeEmpresaPath:    getEnv("LE_EMPRESA_PATH", filepath.Join(dataDir, "le_empresa.json")),
		LeProdutoPath:    getEnv("LE_PRODUTO_PATH", filepath.Join(dataDir, "le_produto.json")),
		LeTargetPath:     getEnv("LE_TARGET_PATH", filepath.Join(dataDir, "le_target.json")),
		ModelPath:        getEnv("MODEL_PATH", filepath.Join(dataDir, "modelo_final.bin.xz")),
		DatasetPath:      getEnv("DATASET_PATH", filepath.Join(dataDir, "produtos_classificados.csv")),
		DatasetSeparator: getEnv("DATASET_SEPARATOR", ","),
		DatasetEncoding:  getEnv("DATASET_ENCODING", "utf-8"), // Pode ser "utf-8" ou "latin1"

		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		MetricsPort:  getEnv("METRICS_PORT", "9090"),
		RedisURL:     os.Getenv("REDIS_URL"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		FeedbackPath: getEnv("FEEDBACK_PATH", "feedbacks.csv"),
		Timezone:     getEnv("TIMEZONE", "America/Sao_Paulo"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// Separator returns the dataset column separator as a rune. "tab" and "\t" mean a tab.
func (c *Config) Separator() rune {
	switch c.DatasetSeparator {
	case "tab", `\t`:
		return '\t'
	case "":
		return ','
	}
	return []rune(c.DatasetSeparator)[0]
}

func (c *Config) ArtifactPaths() artifacts.Paths {
	return artifacts.Paths{
		LeCategoria: c.LeCategoriaPath,
		LeEmpresa:   c.LeEmpresaPath,
		LeProduto:   c.LeProdutoPath,
		LeTarget:    c.LeTargetPath,
		Model:       c.ModelPath,
		Dataset:     c.DatasetPath,
	}
}

func (c *Config) DatasetOptions() artifacts.DatasetOptions {
	return artifacts.DatasetOptions{Separator: c.Separator(), Encoding: c.DatasetEncoding}
}

// Location resolves Timezone. On failure it still returns time.Local alongside the error.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local, err
	}
	return loc, nil
}
