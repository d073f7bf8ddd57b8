package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/MOYARU/storyscan/internal/batch"
	"github.com/MOYARU/storyscan/internal/checks"
	"github.com/MOYARU/storyscan/internal/feed"
	"github.com/MOYARU/storyscan/internal/report"
	"github.com/MOYARU/storyscan/internal/story"
)

const maxBodyBytes = 10 << 20 // 10 MiB

type Analyzer interface {
	Analyze(st story.Story) (report.StoryAnalysis, error)
}

type BatchRunner interface {
	RunWithMetadata(ctx context.Context, tenantName string, meta batch.Metadata, stories []story.Story) (report.Report, error)
}

type Handlers struct {
	analyzer  Analyzer
	runner    BatchRunner
	checks    []checks.Check
	sanitizer *report.Sanitizer
	log       logrus.FieldLogger
}

// NewHandlers wires the API to an analyzer and batch runner. sanitizer may
// be nil to return issue texts unredacted.
func NewHandlers(analyzer Analyzer, runner BatchRunner, list []checks.Check, sanitizer *report.Sanitizer, log logrus.FieldLogger) *Handlers {
	return &Handlers{
		analyzer:  analyzer,
		runner:    runner,
		checks:    list,
		sanitizer: sanitizer,
		log:       log,
	}
}

type HealthResponse struct {
	Status string `json:"status"`
}

type CheckInfo struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Scope    checks.Scope    `json:"scope"`
	Severity report.Severity `json:"severity,omitempty"`
	Category report.Category `json:"category,omitempty"`
	Location string          `json:"location,omitempty"`
	Penalty  float64         `json:"penalty,omitempty"`
}

type ValidationErrorResponse struct {
	Error   string `json:"error"`
	StoryID string `json:"story_id"`
	Field   string `json:"field"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (h *Handlers) ListChecks(w http.ResponseWriter, r *http.Request) {
	out := make([]CheckInfo, 0, len(h.checks))
	for _, c := range h.checks {
		out = append(out, CheckInfo{
			ID:       c.ID,
			Title:    c.Title,
			Scope:    c.Scope,
			Severity: c.Severity,
			Category: c.Category,
			Location: c.Location,
			Penalty:  c.Penalty,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

// AnalyzeFeed runs a whole feed document through the batch runner.
func (h *Handlers) AnalyzeFeed(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "unable to read request body")
		return
	}

	f, err := feed.Parse(payload, feed.FormatJSON)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rep, err := h.runner.RunWithMetadata(r.Context(), f.TenantName, batch.Metadata{
		TenantID:     f.TenantID,
		LastSyncedAt: f.LastSyncedAt,
	}, f.Stories)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	if h.sanitizer != nil {
		for i, res := range rep.Results {
			if res.Analysis != nil {
				a := h.sanitizer.Analysis(*res.Analysis)
				rep.Results[i].Analysis = &a
			}
		}
	}
	respondJSON(w, http.StatusOK, rep)
}

// AnalyzeStory analyzes a single story document.
func (h *Handlers) AnalyzeStory(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "unable to read request body")
		return
	}
	if !json.Valid(payload) {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	st := feed.ParseStory(payload)
	analysis, err := h.analyzer.Analyze(st)
	if err != nil {
		var ve *story.ValidationError
		if errors.As(err, &ve) {
			h.log.WithFields(logrus.Fields{"story_id": ve.StoryID, "field": ve.Field}).Info("story rejected")
			respondJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
				Error:   ve.Error(),
				StoryID: ve.StoryID,
				Field:   ve.Field,
			})
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if h.sanitizer != nil {
		analysis = h.sanitizer.Analysis(analysis)
	}
	respondJSON(w, http.StatusOK, analysis)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
