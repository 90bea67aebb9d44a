// Package handler exposes the solve engine and its auxiliary reports over
// HTTP, mirroring the request/response shapes of spec.md §6.
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/paiban/logbook/internal/metrics"
	"github.com/paiban/logbook/internal/repository"
	"github.com/paiban/logbook/pkg/errors"
	"github.com/paiban/logbook/pkg/logger"
	"github.com/paiban/logbook/pkg/model"
	"github.com/paiban/logbook/pkg/scheduler/engine"
	"github.com/paiban/logbook/pkg/workload"
)

// SolveHandler runs one solve per request and optionally records it to the
// solve-run audit log.
type SolveHandler struct {
	runs repository.SolveRunRepository
}

// NewSolveHandler builds a SolveHandler. runs may be nil, in which case
// solves are served without audit persistence.
func NewSolveHandler(runs repository.SolveRunRepository) *SolveHandler {
	return &SolveHandler{runs: runs}
}

// Solve handles POST /api/v1/schedule/solve: decode spec.md §6's input
// document, run the CP-SAT solve, and write back the output document.
func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "method not allowed"))
		return
	}

	var in model.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "malformed input document"))
		return
	}

	runID := r.Header.Get("X-Request-ID")
	if runID == "" {
		runID = uuid.New().String()
	}

	started := time.Now()
	out := engine.Solve(runID, &in)
	duration := time.Since(started)

	metrics.RecordSolveRun(string(out.Metadata.Status), duration)
	if out.Metadata.ObjectiveScore != nil {
		metrics.SetObjectiveScore(in.Date, float64(*out.Metadata.ObjectiveScore))
	}

	if h.runs != nil {
		if err := h.runs.Record(r.Context(), runID, &in, out); err != nil {
			logger.WithError(err).Str("run_id", runID).Msg("failed to persist solve-run audit entry")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(out)
}

// WorkloadHandler reports the Gini-based hours spread of a previously
// computed solve's assignments; it never feeds into a solve itself.
type WorkloadHandler struct{}

// NewWorkloadHandler builds a WorkloadHandler.
func NewWorkloadHandler() *WorkloadHandler {
	return &WorkloadHandler{}
}

type workloadRequest struct {
	Date        string             `json:"date"`
	Crew        []model.Crew       `json:"crew"`
	Assignments []model.Assignment `json:"assignments"`
	SlotMinutes int                `json:"slotMinutes"`
}

// Report handles POST /api/v1/workload: crew + a solved assignment list in,
// a workload.Report out.
func (h *WorkloadHandler) Report(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "method not allowed"))
		return
	}

	var req workloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "malformed workload request"))
		return
	}
	if req.SlotMinutes <= 0 {
		respondError(w, errors.InvalidInput("slotMinutes", "must be positive"))
		return
	}

	report := workload.Analyze(req.Crew, req.Assignments, req.SlotMinutes)
	metrics.SetWorkloadGini(req.Date, report.HoursGini)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(report)
}

func respondError(w http.ResponseWriter, err *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.HTTPStatus)
	json.NewEncoder(w).Encode(err)
}
