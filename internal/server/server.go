// Package server exposes the analysis engine over HTTP. It owns input
// validation and status-code mapping; all scoring semantics live behind
// the analyzer port.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"MisinfoScanner/internal/domain"
	"MisinfoScanner/internal/ports"
	"MisinfoScanner/internal/sanitize"
	"MisinfoScanner/internal/usecase"
)

const excerptLength = 200

// Deps wires the transport to the core components.
type Deps struct {
	Analyzer      ports.Analyzer
	History       ports.AnalysisRepository
	Logger        *slog.Logger
	MaxTextLength int
	Version       string
}

// Server handles the analysis API endpoints.
type Server struct {
	analyzer      ports.Analyzer
	history       ports.AnalysisRepository
	logger        *slog.Logger
	maxTextLength int
	version       string
}

// New constructs the HTTP surface.
func New(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	maxLen := deps.MaxTextLength
	if maxLen <= 0 {
		maxLen = sanitize.MaxTextLength
	}
	return &Server{
		analyzer:      deps.Analyzer,
		history:       deps.History,
		logger:        logger,
		maxTextLength: maxLen,
		version:       deps.Version,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze", requireMethod(http.MethodPost, s.handleAnalyze))
	mux.HandleFunc("/api/health", requireMethod(http.MethodGet, s.handleHealth))
	mux.HandleFunc("/api/docs", requireMethod(http.MethodGet, s.handleDocs))
	if s.history != nil {
		mux.HandleFunc("/api/history", requireMethod(http.MethodGet, s.handleHistory))
	}
	return mux
}

// requireMethod rejects requests whose method does not match, mirroring
// the method-qualified mux patterns available in newer Go releases.
func requireMethod(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

type analyzeRequest struct {
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid input", "request body must be a JSON object")
		return
	}

	text, err := sanitize.Text(req.Text, s.maxTextLength)
	switch {
	case errors.Is(err, sanitize.ErrTextTooLong):
		s.writeError(w, http.StatusRequestEntityTooLarge, "Payload too large",
			"Text must be under "+strconv.Itoa(s.maxTextLength)+" characters")
		return
	case err != nil:
		s.writeError(w, http.StatusBadRequest, "Invalid input",
			"Text content must be a non-empty string")
		return
	}

	meta := domain.Metadata{URL: stringField(req.Metadata, "url")}

	result, err := s.analyzer.Analyze(r.Context(), text, meta)
	if errors.Is(err, usecase.ErrAnalysisTimeout) {
		s.logger.Warn("analysis timed out", "textLength", len(text))
		s.writeJSON(w, http.StatusGatewayTimeout, map[string]any{
			"error":            "Analysis failed",
			"details":          err.Error(),
			"fallbackAnalysis": result,
		})
		return
	}
	if err != nil {
		s.logger.Error("analysis failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	s.recordHistory(r, text, result)

	w.Header().Set("Cache-Control", "public, max-age=300")
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   s.version,
	})
}

func (s *Server) handleDocs(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"endpoints": map[string]any{
			"/api/analyze": map[string]any{
				"method":      http.MethodPost,
				"description": "Analyze text for misinformation indicators",
				"parameters": map[string]string{
					"text":     "String (required)",
					"metadata": "Object (optional, may carry a url field)",
				},
			},
			"/api/health": map[string]any{
				"method":      http.MethodGet,
				"description": "Service liveness probe",
			},
		},
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			s.writeError(w, http.StatusBadRequest, "Invalid input", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	records, err := s.history.RecentAnalyses(r.Context(), limit)
	if err != nil {
		s.logger.Error("history lookup failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	type entry struct {
		ID          int64          `json:"id"`
		TextExcerpt string         `json:"textExcerpt"`
		Score       int            `json:"score"`
		Verdict     domain.Verdict `json:"verdict"`
		CreatedAt   time.Time      `json:"createdAt"`
	}

	entries := make([]entry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, entry{
			ID:          rec.ID,
			TextExcerpt: rec.TextExcerpt,
			Score:       rec.Score,
			Verdict:     rec.Verdict,
			CreatedAt:   rec.CreatedAt,
		})
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"history": entries})
}

// recordHistory persists the snapshot best-effort; storage trouble never
// affects the response.
func (s *Server) recordHistory(r *http.Request, text string, result domain.AnalysisResult) {
	if s.history == nil {
		return
	}

	excerpt := text
	if runes := []rune(excerpt); len(runes) > excerptLength {
		excerpt = string(runes[:excerptLength])
	}

	err := s.history.SaveAnalysis(r.Context(), domain.AnalysisRecord{
		TextExcerpt: excerpt,
		Score:       result.Score,
		Verdict:     result.Verdict,
	})
	if err != nil {
		s.logger.Warn("cannot record analysis history", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message, details string) {
	body := map[string]any{"error": message}
	if details != "" {
		body["details"] = details
	}
	s.writeJSON(w, status, body)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("cannot encode response", "error", err)
	}
}

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
