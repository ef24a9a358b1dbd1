package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"riskbook/app"
	"riskbook/domain/aggregate"
	"riskbook/domain/core"
	"riskbook/domain/policy"
	"riskbook/internal/analysis"
)

func testState() *State {
	table := aggregate.NewTable(policy.DimProvince)
	g := table.Get(aggregate.NewKey([]string{"Gauteng"}))
	g.PremiumSum, g.ClaimsSum, g.RecordCount, g.ClaimCount = 1000, 400, 50, 5
	z := table.Get(aggregate.NewKey([]string{"Limpopo"}))
	z.ClaimsSum, z.RecordCount = 100, 10 // zero premium

	return &State{
		Report: &app.EDAReport{
			SourceFile: "book.txt",
			Overall:    table.Totals(),
			Tables:     map[core.Dimension]*aggregate.Table{policy.DimProvince: table},
		},
		Sweep:    &analysis.SweepResult{},
		RunID:    core.RunID(core.NewID()),
		LoadedAt: time.Now().UTC(),
	}
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	srv := NewServer(testState(), nil)

	rec := get(t, srv, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %v", body["status"])
	}
	if body["records"] != float64(60) {
		t.Errorf("records = %v, want 60", body["records"])
	}
}

func TestSummaryEndpoint(t *testing.T) {
	srv := NewServer(testState(), nil)

	rec := get(t, srv, "/api/summary")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "book.txt") {
		t.Error("summary should name the source file")
	}
}

func TestAggregatesEndpoint(t *testing.T) {
	srv := NewServer(testState(), nil)

	rec := get(t, srv, "/api/aggregates/Province")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Dimension string      `json:"dimension"`
		Groups    []groupView `json:"groups"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if body.Dimension != "Province" || len(body.Groups) != 2 {
		t.Fatalf("body = %+v", body)
	}

	// Biggest group first; the zero-premium group serializes a null ratio
	if body.Groups[0].Labels[0] != "Gauteng" {
		t.Errorf("groups not ordered by size: %+v", body.Groups)
	}
	for _, g := range body.Groups {
		if g.Labels[0] == "Limpopo" && g.LossRatio != nil {
			t.Errorf("undefined loss ratio should be null, got %v", *g.LossRatio)
		}
	}
}

func TestAggregatesEndpoint_UnknownDimension(t *testing.T) {
	srv := NewServer(testState(), nil)

	rec := get(t, srv, "/api/aggregates/Nope")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestTestsEndpoint_NoSweep(t *testing.T) {
	state := testState()
	state.Sweep = nil
	srv := NewServer(state, nil)

	rec := get(t, srv, "/api/tests")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}
