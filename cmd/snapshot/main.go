package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/google/uuid"

	"fiscalizacao/internal/artifacts"
	"fiscalizacao/internal/classify"
	"fiscalizacao/internal/config"
	"fiscalizacao/internal/db"
	"fiscalizacao/internal/logger"
	"fiscalizacao/internal/model"
	"fiscalizacao/internal/repository"
)

var errDatabaseURL = errors.New("DATABASE_URL não configurada; use -dry-run para apenas classificar")

// go run cmd/snapshot/main.go            -> grava a classificação do dia no Postgres
// go run cmd/snapshot/main.go -dry-run   -> só imprime o resumo
func main() {
	dryRun := flag.Bool("dry-run", false, "Classifica a base e mostra o resumo sem gravar")
	flag.Parse()

	cfg := config.Load()
	lg, err := logger.New(logger.Config{Level: cfg.LogLevel})
	if err != nil {
		log.Fatalf("Erro ao criar logger: %v", err)
	}
	defer lg.Sync()

	if err := run(context.Background(), cfg, lg, *dryRun); err != nil {
		lg.Error("Snapshot falhou", logger.Err(err))
		lg.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, lg logger.Logger, dryRun bool) error {
	bundle, err := artifacts.Load(cfg.ArtifactPaths(), cfg.DatasetOptions())
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		lg.Warn("Fuso horário inválido, usando horário local", logger.String("timezone", cfg.Timezone), logger.Err(err))
	}
	evaluator := classify.NewEvaluator(bundle, classify.WithLocation(loc))

	rows := make([]repository.SnapshotRow, 0, bundle.Len())
	classes := make([]model.Classification, 0, bundle.Len())
	day := evaluator.ClassifyAll(func(r model.ProductRecord, c model.Classification) {
		rows = append(rows, repository.SnapshotRow{Record: r, Classification: c})
		classes = append(classes, c)
	})
	for i := range rows {
		rows[i].DaysToExpire = classify.DaysUntil(rows[i].Record.ExpirationDate, day)
	}

	summary := classify.Tally(day, classes)
	lg.Info("Base classificada", logger.String("data", day.Format(model.DateLayout)), logger.Int("total", summary.Total))
	for _, c := range summary.Counts {
		lg.Info("Resumo", logger.String("classificacao", c.Classification.String()), logger.Int("quantidade", c.Count))
	}
	if dryRun {
		return nil
	}
	if cfg.DatabaseURL == "" {
		return errDatabaseURL
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := &repository.SnapshotRepository{DB: pool}
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}

	runID := uuid.New()
	n, err := repo.Save(ctx, runID, day, rows)
	if err != nil {
		return err
	}
	lg.Info("Snapshot gravado",
		logger.String("run_id", runID.String()),
		logger.String("data_referencia", day.Format(model.DateLayout)),
		logger.Int("linhas", int(n)),
	)
	return nil
}
