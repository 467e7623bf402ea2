package prom

import (
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	errs "github.com/matzehuels/cratetower/pkg/errors"
	"github.com/matzehuels/cratetower/pkg/observability"
)

func exercise(m *Metrics) {
	ctx := context.Background()
	m.OnParseStart(ctx, "run", 100)
	m.OnParseComplete(ctx, "run", 3, 4, time.Millisecond, nil)
	m.OnSimulateStart(ctx, "run", "block", 4)
	m.OnSimulateComplete(ctx, "run", "block", 10, time.Millisecond, nil)
	m.OnSimulateComplete(ctx, "run", "single", 0, time.Millisecond,
		errs.New(errs.ErrCodeUnknownStack, "stack 9 is not declared"))
	m.OnCacheMiss(ctx, "result")
	m.OnCacheSet(ctx, "result", 64)
	m.OnCacheHit(ctx, "result")
	m.OnResponse(ctx, "POST", "/v1/simulate", 200, time.Millisecond)
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	exercise(m)

	path := filepath.Join(t.TempDir(), "cratetower.prom")
	if err := WriteTextfile(reg, path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)

	for _, want := range []string{
		`cratetower_runs_total{mode="block",outcome="ok"} 1`,
		`cratetower_runs_total{mode="single",outcome="error"} 1`,
		`cratetower_errors_total{code="UNKNOWN_STACK",stage="simulate"} 1`,
		`cratetower_crates_moved_total{mode="block"} 10`,
		`cratetower_instructions_parsed_total 4`,
		`cratetower_cache_events_total{event="hit",key_type="result"} 1`,
		`cratetower_http_requests_total{method="POST",route="/v1/simulate",status="200"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("textfile missing %q", want)
		}
	}
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	exercise(New(reg))

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "cratetower_runs_total") {
		t.Error("metrics body missing cratetower_runs_total")
	}
}

func TestRegister(t *testing.T) {
	defer observability.Reset()

	m := New(prometheus.NewRegistry())
	m.Register()

	if observability.Pipeline() != observability.PipelineHooks(m) {
		t.Error("Register should install pipeline hooks")
	}
	if observability.Cache() != observability.CacheHooks(m) {
		t.Error("Register should install cache hooks")
	}
}

func TestCodeOf(t *testing.T) {
	if got := codeOf(io.EOF); got != string(errs.ErrCodeInternal) {
		t.Errorf("codeOf(io.EOF) = %q", got)
	}
	if got := codeOf(errs.New(errs.ErrCodeZeroQuantity, "zero")); got != "ZERO_QUANTITY" {
		t.Errorf("codeOf = %q", got)
	}
}
