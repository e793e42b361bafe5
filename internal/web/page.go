package web

import (
	"errors"
	"html/template"
	"net/http"
	"slices"

	"fiscalizacao/internal/classify"
	"fiscalizacao/internal/feedback"
	"fiscalizacao/internal/logger"
	"fiscalizacao/internal/model"
	"fiscalizacao/internal/observability"
	"fiscalizacao/internal/session"
)

type pageData struct {
	LoadError string
	Summary   classify.Summary
	About     template.HTML

	Categories []string
	Products   []string
	Companies  []string
	Category   string
	Product    string
	Company    string

	Result   *model.ClassificationResult
	Advice   *classify.Advice
	NotFound bool
	FormOpen bool
	Flash    *classify.Advice
}

// selection fills the cascading lists. An empty or unknown choice falls back to the first
// option, matching a select box with no choice made.
func (s *Server) selection(category, product, company string) pageData {
	d := pageData{Categories: s.eval.Categories()}
	d.Category = pick(d.Categories, category)
	d.Products = s.eval.Products(d.Category)
	d.Product = pick(d.Products, product)
	d.Companies = s.eval.Companies(d.Category, d.Product)
	d.Company = pick(d.Companies, company)
	return d
}

func pick(options []string, choice string) string {
	if slices.Contains(options, choice) {
		return choice
	}
	if len(options) > 0 {
		return options[0]
	}
	return ""
}

func (s *Server) render(w http.ResponseWriter, status int, d pageData) {
	if s.ready() {
		d.Summary = s.eval.Summarize()
	}
	d.About = s.about

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.page.ExecuteTemplate(w, "index.html", d); err != nil {
		s.log.Error("falha ao renderizar página", logger.Err(err))
	}
}

func (s *Server) renderUnavailable(w http.ResponseWriter) {
	s.render(w, http.StatusServiceUnavailable, pageData{LoadError: s.loadErrText()})
}

func (s *Server) loadErrText() string {
	if s.loadErr != nil {
		return s.loadErr.Error()
	}
	return "dados não carregados"
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if !s.ready() {
		s.renderUnavailable(w)
		return
	}
	q := r.URL.Query()
	d := s.selection(q.Get("categoria"), q.Get("produto"), q.Get("empresa"))

	st, err := s.sessions.Get(r.Context(), sessionID(w, r))
	if err != nil {
		s.log.Warn("sessão indisponível", logger.Err(err))
	}
	d.FormOpen = st.FormOpen
	s.render(w, http.StatusOK, d)
}

func (s *Server) handleConsulta(w http.ResponseWriter, r *http.Request) {
	if !s.ready() {
		s.renderUnavailable(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "formulário inválido", http.StatusBadRequest)
		return
	}
	category, product, company := r.PostForm.Get("categoria"), r.PostForm.Get("produto"), r.PostForm.Get("empresa")
	sid := sessionID(w, r)

	d := s.selection(category, product, company)
	// The echoed selection is the one submitted, even if it is not in the lists.
	d.Category, d.Product, d.Company = category, product, company

	res, err := s.eval.Evaluate(category, product, company)
	if errors.Is(err, classify.ErrNotFound) {
		observability.ConsultasNaoEncontradas.Inc()
		s.log.Info("consulta sem resultado",
			logger.String("categoria", category),
			logger.String("produto", product),
			logger.String("empresa", company),
		)
		d.NotFound = true
		s.render(w, http.StatusNotFound, d)
		return
	}
	if err != nil {
		s.log.Error("falha na consulta", logger.Err(err))
		http.Error(w, "erro ao consultar produto", http.StatusInternalServerError)
		return
	}

	observability.ConsultasTotal.WithLabelValues(res.Classification.String()).Inc()
	s.log.Info("consulta",
		logger.String("produto", product),
		logger.String("empresa", company),
		logger.String("classificacao", res.Classification.String()),
	)

	if err := session.OpenForm(r.Context(), s.sessions, sid, category, product, company, s.now()); err != nil {
		s.log.Warn("não foi possível abrir formulário de feedback", logger.Err(err))
	} else {
		d.FormOpen = true
	}
	d.Result = &res
	if a, ok := classify.AdviceFor(res.Classification); ok {
		d.Advice = &a
	}
	s.render(w, http.StatusOK, d)
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	if !s.ready() {
		s.renderUnavailable(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "formulário inválido", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	sid := sessionID(w, r)

	st, err := s.sessions.Get(ctx, sid)
	if err != nil {
		s.log.Error("sessão indisponível", logger.Err(err))
		http.Error(w, "sessão indisponível", http.StatusInternalServerError)
		return
	}
	if !st.FormOpen {
		d := s.selection("", "", "")
		d.Flash = &classify.Advice{Severity: classify.SeverityWarning, Message: "Faça uma consulta antes de reportar um erro."}
		s.render(w, http.StatusConflict, d)
		return
	}

	d := s.selection(st.Category, st.Product, st.Company)
	report, err := feedback.NewReport(st.Product, st.Company, r.PostForm.Get("erro"), s.now())
	if err != nil {
		d.FormOpen = true
		d.Flash = &classify.Advice{Severity: classify.SeverityWarning, Message: "Por favor, descreva o erro encontrado."}
		s.render(w, http.StatusUnprocessableEntity, d)
		return
	}

	if err := s.feedback.Append(ctx, report); err != nil {
		s.log.Error("falha ao gravar feedback", logger.Err(err))
		http.Error(w, "não foi possível registrar o relatório", http.StatusInternalServerError)
		return
	}
	if _, err := session.CloseForm(ctx, s.sessions, sid, s.now()); err != nil {
		s.log.Warn("não foi possível fechar formulário", logger.Err(err))
	}
	observability.FeedbacksTotal.Inc()
	s.log.Info("feedback recebido", logger.String("id", report.ID.String()), logger.String("produto", report.Product))

	d.Flash = &classify.Advice{Severity: classify.SeveritySuccess, Message: "Relatório enviado à equipe ANVISA!"}
	s.render(w, http.StatusOK, d)
}
