// Package chi provides the HTTP API: one recommendation endpoint plus
// health and metrics.
package chi

import (
	"context"
	"encoding/base64"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/resumerank/internal/domain"
	"github.com/kailas-cloud/resumerank/internal/logger"
	"github.com/kailas-cloud/resumerank/internal/usecase/recommend"
)

// Recommender is the use case contract consumed by the HTTP layer.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (domain.Recommendation, error)
}

// Server exposes the recommendation pipeline over HTTP.
type Server struct {
	recommender Recommender
	logger      *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(recommender Recommender, logger *zap.Logger) *Server {
	return &Server{recommender: recommender, logger: logger}
}

// Routes mounts the API on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/v1/recommend", s.Recommend)
}

// recommendRequest is the POST /v1/recommend body.
type recommendRequest struct {
	JobDescription string            `json:"job_description"`
	TopK           int               `json:"top_k"`
	Documents      []documentPayload `json:"documents"`
}

// documentPayload is one submitted document. Plain text goes in "content";
// PDF/DOCX bytes go base64-encoded in "data".
type documentPayload struct {
	SourceID string `json:"source_id"`
	Format   string `json:"format"` // pdf, docx, text
	Content  string `json:"content,omitempty"`
	Data     string `json:"data,omitempty"`
}

type recommendResponse struct {
	Results  []resultRow `json:"results"`
	Warnings []string    `json:"warnings"`
}

type resultRow struct {
	Rank     int     `json:"rank"`
	SourceID string  `json:"source_id"`
	Name     string  `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Score    float64 `json:"score"`
	Summary  string  `json:"summary"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Recommend handles POST /v1/recommend.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Debug("malformed request body", zap.Error(err))
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.JobDescription) == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "job_description is required")
		return
	}
	if len(req.Documents) == 0 {
		writeError(w, http.StatusBadRequest, "validation_failed", "at least one document is required")
		return
	}
	if req.TopK < 0 || req.TopK > recommend.MaxTopK {
		writeError(w, http.StatusBadRequest, "validation_failed",
			fmt.Sprintf("top_k must be between 1 and %d", recommend.MaxTopK))
		return
	}

	docs, err := documentsFromPayload(req.Documents)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	rec, err := s.recommender.Recommend(r.Context(), recommend.Request{
		Job:       domain.JobDescription{Text: req.JobDescription},
		Documents: docs,
		TopK:      req.TopK,
	})
	if err != nil {
		s.handleDomainError(r.Context(), w, err)
		return
	}

	resp := toResponse(rec)

	if wantsCSV(r) {
		writeCSV(w, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func documentsFromPayload(payloads []documentPayload) ([]domain.Document, error) {
	docs := make([]domain.Document, len(payloads))
	for i, p := range payloads {
		sourceID := p.SourceID
		if sourceID == "" {
			// Raw text gets text_N, file uploads get file_N.
			if domain.Format(p.Format) == domain.FormatText {
				sourceID = fmt.Sprintf("text_%d", i+1)
			} else {
				sourceID = fmt.Sprintf("file_%d", i+1)
			}
		}

		var payload []byte
		switch domain.Format(p.Format) {
		case domain.FormatText:
			payload = []byte(p.Content)
		case domain.FormatPDF, domain.FormatDOCX:
			if p.Data == "" {
				return nil, fmt.Errorf("document %s: %s payload must be base64 in \"data\"", sourceID, p.Format)
			}
			decoded, err := base64.StdEncoding.DecodeString(p.Data)
			if err != nil {
				return nil, fmt.Errorf("document %s: invalid base64 data", sourceID)
			}
			payload = decoded
		default:
			return nil, fmt.Errorf("document %s: unknown format %q", sourceID, p.Format)
		}

		docs[i] = domain.Document{
			SourceID: sourceID,
			Format:   domain.Format(p.Format),
			Payload:  payload,
		}
	}
	return docs, nil
}

func toResponse(rec domain.Recommendation) recommendResponse {
	rows := make([]resultRow, len(rec.Candidates))
	for i, sc := range rec.Candidates {
		rows[i] = resultRow{
			Rank:     sc.Rank,
			SourceID: sc.Candidate.SourceID,
			Name:     sc.Candidate.Name,
			Email:    optional(sc.Candidate.Email),
			Phone:    optional(sc.Candidate.Phone),
			Score:    sc.Score,
			Summary:  sc.Summary,
		}
	}
	warnings := rec.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return recommendResponse{Results: rows, Warnings: warnings}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *Server) handleDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNoValidCandidates):
		writeError(w, http.StatusUnprocessableEntity, "no_valid_candidates", err.Error())
	case errors.Is(err, domain.ErrEmbeddingProvider), errors.Is(err, domain.ErrEmptyInput):
		writeError(w, http.StatusBadGateway, "embedding_provider_error", err.Error())
	default:
		logger.FromContext(ctx).Error("recommendation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func wantsCSV(r *http.Request) bool {
	if r.URL.Query().Get("format") == "csv" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/csv")
}

// writeCSV serializes the result table. Pure presentation: same rows and
// ordering as the JSON response, warnings omitted.
func writeCSV(w http.ResponseWriter, resp recommendResponse) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="recommendations.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"rank", "source_id", "name", "email", "phone", "score", "summary"})
	for _, row := range resp.Results {
		_ = cw.Write([]string{
			strconv.Itoa(row.Rank),
			row.SourceID,
			row.Name,
			deref(row.Email),
			deref(row.Phone),
			strconv.FormatFloat(row.Score, 'f', 4, 64),
			row.Summary,
		})
	}
	cw.Flush()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
