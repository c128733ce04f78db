package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/logging"
	"github.com/agbru/seqcalc/internal/orchestration"
	"github.com/agbru/seqcalc/internal/program"
	"github.com/agbru/seqcalc/internal/sequence"
	"github.com/agbru/seqcalc/internal/sysmon"
)

// CalculationResponse is the body of /fib and /fac.
type CalculationResponse struct {
	Kind       string  `json:"kind"`
	N          uint64  `json:"n"`
	Algorithm  string  `json:"algorithm"`
	Result     string  `json:"result"`
	Digits     int     `json:"digits"`
	Bits       int     `json:"bits"`
	DurationMs float64 `json:"duration_ms"`
}

// StepResponse is one visited index of /program.
type StepResponse struct {
	Index  int    `json:"index"`
	Action string `json:"action"`
	Value  string `json:"value,omitempty"`
}

// ProgramResponse is the body of /program.
type ProgramResponse struct {
	Lines []string       `json:"lines"`
	Steps []StepResponse `json:"steps"`
}

// HealthResponse is the body of /health.
type HealthResponse struct {
	Status  string       `json:"status"`
	Version string       `json:"version"`
	Uptime  string       `json:"uptime"`
	System  sysmon.Stats `json:"system"`
}

// ErrorResponse is the body of every error.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg, RequestID: RequestIDFromContext(r.Context())})
}

// requireGET answers 405 for anything but GET.
func (s *Server) requireGET(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	s.logger.Debug("method not allowed", logging.String("method", r.Method), logging.String("path", r.URL.Path))
	w.Header().Set("Allow", http.MethodGet)
	s.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, http.StatusNotFound, "not found")
}

// parseIndex reads the n query parameter and applies the kind's limit.
func (s *Server) parseIndex(r *http.Request, kind sequence.Kind) (uint64, error) {
	raw := r.URL.Query().Get("n")
	if raw == "" {
		return 0, apperrors.ValidationError{Field: "n", Message: "is required"}
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperrors.ValidationError{Field: "n", Message: fmt.Sprintf("must be a non-negative integer, got %q", raw)}
	}
	limit := s.security.MaxNValue
	if kind == sequence.KindFactorial {
		limit = s.security.MaxFactorialN
	}
	if limit > 0 && n > limit {
		return 0, apperrors.ValidationError{Field: "n", Message: fmt.Sprintf("must be at most %d", limit)}
	}
	return n, nil
}

// selectCalculator resolves the algo query parameter for kind.
func (s *Server) selectCalculator(r *http.Request, kind sequence.Kind) (string, sequence.Calculator, error) {
	name := r.URL.Query().Get("algo")
	if name == "" {
		name = sequence.DefaultAlgorithm(kind)
	}
	calc, err := s.factory.Get(name)
	if err != nil {
		return "", nil, apperrors.ValidationError{Field: "algo", Message: err.Error()}
	}
	if calc.Kind() != kind {
		return "", nil, apperrors.ValidationError{Field: "algo", Message: fmt.Sprintf("%s does not compute %s", name, kind)}
	}
	return name, calc, nil
}

// handleCalculate serves /fib and /fac.
func (s *Server) handleCalculate(kind sequence.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.requireGET(w, r) {
			return
		}
		n, err := s.parseIndex(r, kind)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		name, calc, err := s.selectCalculator(r, kind)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
		defer cancel()
		res := orchestration.ExecuteCalculations(ctx, []sequence.Calculator{calc}, n, nil, io.Discard)[0]
		s.metrics.RecordCalculation(kind.String(), res.Err)

		if res.Err != nil {
			s.logger.Error("calculation failed", res.Err,
				logging.String("algorithm", name), logging.Uint64("n", n),
				logging.String("request_id", RequestIDFromContext(r.Context())))
			s.writeError(w, r, calculationStatus(res.Err), res.Err.Error())
			return
		}

		digits := res.Result.String()
		writeJSON(w, http.StatusOK, CalculationResponse{
			Kind:       kind.String(),
			N:          n,
			Algorithm:  name,
			Result:     digits,
			Digits:     len(digits),
			Bits:       res.Result.BitLen(),
			DurationMs: float64(res.Duration) / float64(time.Millisecond),
		})
	}
}

// calculationStatus maps a calculation error to an HTTP status.
func calculationStatus(err error) int {
	var validationErr apperrors.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// parseIntParam reads an optional integer query parameter.
func parseIntParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.ValidationError{Field: name, Message: fmt.Sprintf("must be an integer, got %q", raw)}
	}
	return v, nil
}

// handleProgram runs the demonstration loop and returns its output.
func (s *Server) handleProgram(w http.ResponseWriter, r *http.Request) {
	if !s.requireGET(w, r) {
		return
	}
	plan := s.plan
	var err error
	if plan.Limit, err = parseIntParam(r, "limit", plan.Limit); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if plan.BreakAt, err = parseIntParam(r, "break_at", plan.BreakAt); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if maxLimit := s.security.MaxProgramLimit; maxLimit > 0 && plan.Limit > maxLimit {
		s.writeError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid limit: must be at most %d", maxLimit))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()
	res, err := program.Run(ctx, plan, nil, nil)
	if err != nil {
		s.writeError(w, r, calculationStatus(err), err.Error())
		return
	}

	resp := ProgramResponse{Lines: res.Lines, Steps: make([]StepResponse, 0, len(res.Steps))}
	for _, step := range res.Steps {
		sr := StepResponse{Index: step.Index, Action: step.Action.String()}
		if step.Value != nil {
			sr.Value = step.Value.String()
		}
		resp.Steps = append(resp.Steps, sr)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.requireGET(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: s.version,
		Uptime:  time.Since(s.startTime).Round(time.Second).String(),
		System:  sysmon.SampleContext(r.Context()),
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if !s.requireGET(w, r) {
		return
	}
	s.metrics.WritePrometheus(w, r)
}
