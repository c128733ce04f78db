package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/agbru/seqcalc/internal/logging"
	"github.com/agbru/seqcalc/internal/sequence"
)

func newTestServer(opts ...Option) *Server {
	opts = append([]Option{WithLogger(logging.NewLogger(io.Discard, "server")), WithVersion("test")}, opts...)
	return NewServer("127.0.0.1:0", sequence.NewDefaultFactory(), opts...)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, http.NoBody))
	return rec
}

func TestHandleCalculate(t *testing.T) {
	t.Parallel()
	h := newTestServer().Handler()

	tests := []struct {
		target    string
		status    int
		result    string
		algorithm string
	}{
		{"/fib?n=0", http.StatusOK, "0", "fib-iter"},
		{"/fib?n=10", http.StatusOK, "55", "fib-iter"},
		{"/fib?n=10&algo=fib-double", http.StatusOK, "55", "fib-double"},
		{"/fac?n=1", http.StatusOK, "1", "fac-iter"},
		{"/fac?n=5", http.StatusOK, "120", "fac-iter"},
		{"/fac?n=25&algo=fac-split", http.StatusOK, "15511210043330985984000000", "fac-split"},
		{"/fac?n=5&algo=fac-rec", http.StatusOK, "120", "fac-rec"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			t.Parallel()
			rec := get(t, h, tt.target)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			var resp CalculationResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Result != tt.result || resp.Algorithm != tt.algorithm {
				t.Errorf("got result %q with %q, want %q with %q", resp.Result, resp.Algorithm, tt.result, tt.algorithm)
			}
			if resp.Digits != len(tt.result) {
				t.Errorf("digits = %d, want %d", resp.Digits, len(tt.result))
			}
		})
	}
}

func TestHandleCalculate_BadRequests(t *testing.T) {
	t.Parallel()
	sec := DefaultSecurityConfig()
	sec.MaxNValue = 1000
	sec.MaxFactorialN = 100
	h := newTestServer(WithSecurityConfig(sec)).Handler()

	tests := []struct {
		target string
		substr string
	}{
		{"/fib", "is required"},
		{"/fib?n=-1", "non-negative integer"},
		{"/fib?n=abc", "non-negative integer"},
		{"/fib?n=1001", "at most 1000"},
		{"/fac?n=101", "at most 100"},
		{"/fib?n=5&algo=nope", "algo"},
		{"/fib?n=5&algo=fac-iter", "does not compute fib"},
		{"/fac?n=5&algo=fib-double", "does not compute fac"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			t.Parallel()
			rec := get(t, h, tt.target)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			var resp ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !strings.Contains(resp.Error, tt.substr) {
				t.Errorf("error = %q, want it to contain %q", resp.Error, tt.substr)
			}
			if resp.RequestID == "" {
				t.Error("error responses should carry the request id")
			}
		})
	}
}

func TestHandleCalculate_Timeout(t *testing.T) {
	t.Parallel()
	h := newTestServer(WithRequestTimeout(time.Nanosecond)).Handler()
	rec := get(t, h, "/fac?n=100000")
	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusGatewayTimeout)
	}
}

func TestHandleProgram(t *testing.T) {
	t.Parallel()
	h := newTestServer().Handler()

	rec := get(t, h, "/program")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp ProgramResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	want := []string{"1", "2", "5", "13", "34", "89", "233", "610", "Done"}
	if diff := cmp.Diff(want, resp.Lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
	last := resp.Steps[len(resp.Steps)-1]
	if last.Index != 17 || last.Action != "break" {
		t.Errorf("last step = %+v, want the break at 17", last)
	}
	if resp.Steps[0].Action != "skipped" || resp.Steps[1].Value != "1" {
		t.Errorf("unexpected first steps: %+v", resp.Steps[:2])
	}
}

func TestHandleProgram_Parameters(t *testing.T) {
	t.Parallel()
	h := newTestServer().Handler()

	tests := []struct {
		target string
		status int
		lines  []string
	}{
		{"/program?limit=6", http.StatusOK, []string{"1", "2", "5", "Done"}},
		{"/program?break_at=5", http.StatusOK, []string{"1", "2", "Done"}},
		{"/program?limit=24&break_at=-1", http.StatusOK, []string{"1", "2", "5", "13", "34", "89", "233", "610", "1597", "4181", "10946", "28657", "Done"}},
		{"/program?limit=x", http.StatusBadRequest, nil},
		{"/program?limit=-3", http.StatusBadRequest, nil},
		{"/program?limit=1000000", http.StatusBadRequest, nil},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			t.Parallel()
			rec := get(t, h, tt.target)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			if tt.lines == nil {
				return
			}
			var resp ProgramResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.lines, resp.Lines); diff != "" {
				t.Errorf("lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandleHealth(t *testing.T) {
	t.Parallel()
	rec := get(t, newTestServer().Handler(), "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "healthy" || resp.Version != "test" {
		t.Errorf("unexpected health response: %+v", resp)
	}
}

func TestHandlers_MethodNotAllowed(t *testing.T) {
	t.Parallel()
	h := newTestServer().Handler()
	for _, path := range []string{"/fib?n=1", "/fac?n=1", "/program", "/health", "/metrics"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, http.NoBody))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("POST %s: status = %d, want 405", path, rec.Code)
		}
		if rec.Header().Get("Allow") != http.MethodGet {
			t.Errorf("POST %s: Allow = %q", path, rec.Header().Get("Allow"))
		}
	}
}

func TestHandler_NotFoundAndMiddleware(t *testing.T) {
	t.Parallel()
	h := newTestServer().Handler()
	rec := get(t, h, "/nope")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers should be applied to every route")
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("a request id should be generated")
	}
}

func TestHandler_MetricsAfterRequests(t *testing.T) {
	t.Parallel()
	h := newTestServer().Handler()
	get(t, h, "/fib?n=10")
	body := get(t, h, "/metrics").Body.String()
	for _, want := range []string{
		`seqcalc_requests_total{endpoint="/fib",status="200"} 1`,
		`seqcalc_calculations_total{kind="fib",outcome="success"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics should contain %q", want)
		}
	}
}
