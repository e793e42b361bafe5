package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"fiscalizacao/internal/classify"
	"fiscalizacao/internal/model"
	"fiscalizacao/internal/observability"
)

type consultaResponse struct {
	Classificacao string `json:"classificacao"`
	Validade      string `json:"validade"`
	Empresa       string `json:"empresa"`
	Registro      string `json:"registro"`
	Mensagem      string `json:"mensagem,omitempty"`
}

type resumoItem struct {
	Classificacao string  `json:"classificacao"`
	Quantidade    int     `json:"quantidade"`
	Percentual    float64 `json:"percentual"`
}

type resumoResponse struct {
	Data   string       `json:"data"`
	Total  int          `json:"total"`
	Classe []resumoItem `json:"classes"`
}

type errorResponse struct {
	Erro string `json:"erro"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// apiReady answers 503 while the artifacts are unavailable.
func (s *Server) apiReady(w http.ResponseWriter) bool {
	if s.ready() {
		return true
	}
	writeJSON(w, http.StatusServiceUnavailable, errorResponse{Erro: s.loadErrText()})
	return false
}

func (s *Server) handleCategorias(w http.ResponseWriter, r *http.Request) {
	if !s.apiReady(w) {
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"categorias": s.eval.Categories()})
}

func (s *Server) handleProdutos(w http.ResponseWriter, r *http.Request) {
	if !s.apiReady(w) {
		return
	}
	cat := r.URL.Query().Get("categoria")
	writeJSON(w, http.StatusOK, map[string][]string{"produtos": s.eval.Products(cat)})
}

func (s *Server) handleEmpresas(w http.ResponseWriter, r *http.Request) {
	if !s.apiReady(w) {
		return
	}
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, map[string][]string{"empresas": s.eval.Companies(q.Get("categoria"), q.Get("produto"))})
}

func (s *Server) handleAPIConsulta(w http.ResponseWriter, r *http.Request) {
	if !s.apiReady(w) {
		return
	}
	q := r.URL.Query()
	category, product, company := q.Get("categoria"), q.Get("produto"), q.Get("empresa")
	if category == "" || product == "" || company == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Erro: "informe categoria, produto e empresa"})
		return
	}

	res, err := s.eval.Evaluate(category, product, company)
	if errors.Is(err, classify.ErrNotFound) {
		observability.ConsultasNaoEncontradas.Inc()
		writeJSON(w, http.StatusNotFound, errorResponse{Erro: classify.ErrNotFound.Error()})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Erro: err.Error()})
		return
	}
	observability.ConsultasTotal.WithLabelValues(res.Classification.String()).Inc()

	out := consultaResponse{
		Classificacao: res.Classification.String(),
		Validade:      res.Validade(),
		Empresa:       res.CompanyName,
		Registro:      res.RegistrationNumber,
	}
	if a, ok := classify.AdviceFor(res.Classification); ok {
		out.Mensagem = a.Message
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleResumo(w http.ResponseWriter, r *http.Request) {
	if !s.apiReady(w) {
		return
	}
	sum := s.eval.Summarize()
	out := resumoResponse{Data: sum.Date.Format(model.DateLayout), Total: sum.Total}
	for _, c := range sum.Counts {
		out.Classe = append(out.Classe, resumoItem{
			Classificacao: c.Classification.String(),
			Quantidade:    c.Count,
			Percentual:    c.Percent,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.ready() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "indisponivel", "erro": s.loadErrText()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
