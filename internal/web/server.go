// Package web serves the fiscalização dashboard and its JSON API.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/google/uuid"

	"fiscalizacao/internal/classify"
	"fiscalizacao/internal/feedback"
	"fiscalizacao/internal/logger"
	"fiscalizacao/internal/session"
)

//go:embed templates/index.html
var templatesFS embed.FS

const sessionCookie = "sessao"

// Deps are the collaborators of the dashboard. Evaluator is nil when the artifacts failed to
// load; LoadErr then explains why and every lookup answers 503.
type Deps struct {
	Evaluator *classify.Evaluator
	LoadErr   error
	Sessions  session.Store
	Feedback  feedback.Store
	Logger    logger.Logger
	Now       func() time.Time
}

type Server struct {
	eval     *classify.Evaluator
	loadErr  error
	sessions session.Store
	feedback feedback.Store
	log      logger.Logger
	now      func() time.Time
	page     *template.Template
	about    template.HTML
}

func NewServer(d Deps) (*Server, error) {
	page, err := template.ParseFS(templatesFS, "templates/index.html")
	if err != nil {
		return nil, err
	}
	about, err := renderAbout()
	if err != nil {
		return nil, err
	}

	s := &Server{
		eval:     d.Evaluator,
		loadErr:  d.LoadErr,
		sessions: d.Sessions,
		feedback: d.Feedback,
		log:      d.Logger,
		now:      d.Now,
		page:     page,
		about:    about,
	}
	if s.sessions == nil {
		s.sessions = session.NewMemoryStore()
	}
	if s.log == nil {
		s.log = logger.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

// Routes returns the dashboard handler.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /consulta", s.handleConsulta)
	mux.HandleFunc("POST /feedback", s.handleFeedback)

	mux.HandleFunc("GET /api/categorias", s.handleCategorias)
	mux.HandleFunc("GET /api/produtos", s.handleProdutos)
	mux.HandleFunc("GET /api/empresas", s.handleEmpresas)
	mux.HandleFunc("GET /api/consulta", s.handleAPIConsulta)
	mux.HandleFunc("GET /api/resumo", s.handleResumo)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	return s.logRequests(mux)
}

func (s *Server) ready() bool {
	return s.eval != nil && s.loadErr == nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("requisição",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Duration("duracao", time.Since(start)),
		)
	})
}

// sessionID returns the browser's session id, issuing a cookie on first visit.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(session.TTL.Seconds()),
	})
	return id
}
