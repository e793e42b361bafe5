package observability

import (
	"errors"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fiscalizacao/internal/logger"
)

var (
	ConsultasTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consultas_total",
			Help: "Total de consultas respondidas, por classificação",
		},
		[]string{"classificacao"},
	)
	ConsultasNaoEncontradas = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "consultas_nao_encontradas_total",
			Help: "Consultas cuja combinação categoria/produto/empresa não existe na base",
		},
	)
	FeedbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "feedbacks_total",
			Help: "Relatórios de erro recebidos",
		},
	)
	BaseCarregada = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "base_carregada",
			Help: "1 quando todos os artefatos foram carregados, 0 caso contrário",
		},
	)
	RegistrosCarregados = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "registros_carregados",
			Help: "Quantidade de produtos na base em memória",
		},
	)
)

var registerOnce sync.Once

// Register adds the collectors to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ConsultasTotal, ConsultasNaoEncontradas, FeedbacksTotal, BaseCarregada, RegistrosCarregados)
	})
}

// Start serves /metrics on its own port in the background. A listen failure is logged; the
// dashboard keeps running without metrics.
func Start(port string, lg logger.Logger) *http.Server {
	Register()
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: ":" + port, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("Servidor de métricas parou", logger.String("port", port), logger.Err(err))
		}
	}()
	return srv
}
