package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"fiscalizacao/internal/artifacts"
	"fiscalizacao/internal/classify"
	"fiscalizacao/internal/config"
	"fiscalizacao/internal/db"
	"fiscalizacao/internal/feedback"
	"fiscalizacao/internal/logger"
	"fiscalizacao/internal/observability"
	"fiscalizacao/internal/session"
	"fiscalizacao/internal/web"
)

func main() {
	cfg := config.Load()

	lg, err := logger.New(logger.Config{Level: cfg.LogLevel})
	if err != nil {
		log.Fatalf("Erro ao criar logger: %v", err)
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	observability.Start(cfg.MetricsPort, lg)

	// Carrega encoders, modelo e base uma única vez; o resultado é compartilhado só para leitura.
	var evaluator *classify.Evaluator
	bundle, loadErr := artifacts.Load(cfg.ArtifactPaths(), cfg.DatasetOptions())
	if loadErr != nil {
		observability.BaseCarregada.Set(0)
		lg.Error("Falha crítica no carregamento de dados; consultas desabilitadas", logger.Err(loadErr))
	} else {
		observability.BaseCarregada.Set(1)
		observability.RegistrosCarregados.Set(float64(bundle.Len()))
		loc, err := cfg.Location()
		if err != nil {
			lg.Warn("Fuso horário inválido, usando horário local", logger.String("timezone", cfg.Timezone), logger.Err(err))
		}
		evaluator = classify.NewEvaluator(bundle, classify.WithLocation(loc))
		lg.Info("Base carregada", logger.Int("registros", bundle.Len()), logger.Int("categorias", bundle.Categorias().Len()))
	}

	var sessions session.Store = session.NewMemoryStore()
	if cfg.RedisURL != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr: cfg.RedisURL,
		})
		defer redisClient.Close()
		sessions = &session.RedisStore{Client: redisClient}
	}

	var fb feedback.Store = feedback.NewCSVStore(cfg.FeedbackPath)
	if cfg.DatabaseURL != "" {
		dbConn, err := db.New(cfg.DatabaseURL)
		if err != nil {
			lg.Error("Erro ao conectar no Postgres", logger.Err(err))
			return
		}
		defer dbConn.Close()
		pg := &feedback.PostgresStore{DB: dbConn}
		if err := pg.EnsureSchema(ctx); err != nil {
			lg.Error("Erro ao preparar tabela de feedback", logger.Err(err))
			return
		}
		fb = pg
	}

	srv, err := web.NewServer(web.Deps{
		Evaluator: evaluator,
		LoadErr:   loadErr,
		Sessions:  sessions,
		Feedback:  fb,
		Logger:    lg,
	})
	if err != nil {
		lg.Error("Erro ao montar servidor", logger.Err(err))
		return
	}

	httpSrv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpSrv.Shutdown(shutdownCtx)
	}()

	lg.Info("Dashboard de fiscalização rodando", logger.String("porta", cfg.HTTPPort))
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lg.Error("Servidor encerrado com erro", logger.Err(err))
	}
}
