package api

import (
	"encoding/json"
	"net/http"

	"riskbook/domain/aggregate"
	"riskbook/domain/core"

	"github.com/go-chi/chi/v5"
)

// groupView is the JSON shape of one aggregate group with derived KPIs
// materialized. Undefined ratios serialize as null.
type groupView struct {
	Labels         []string `json:"labels"`
	PremiumSum     float64  `json:"premium_sum"`
	ClaimsSum      float64  `json:"claims_sum"`
	RecordCount    int      `json:"record_count"`
	ClaimCount     int      `json:"claim_count"`
	LossRatio      *float64 `json:"loss_ratio"`
	ClaimFrequency *float64 `json:"claim_frequency"`
}

func viewOf(g *aggregate.Group) groupView {
	return groupView{
		Labels:         g.Labels,
		PremiumSum:     g.PremiumSum,
		ClaimsSum:      g.ClaimsSum,
		RecordCount:    g.RecordCount,
		ClaimCount:     g.ClaimCount,
		LossRatio:      g.LossRatio(),
		ClaimFrequency: g.ClaimFrequency(),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"run_id":    s.state.RunID.String(),
		"loaded_at": s.state.LoadedAt,
		"records":   s.state.Report.Overall.RecordCount,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"source_file": s.state.Report.SourceFile,
		"overall":     viewOf(s.state.Report.Overall),
		"warnings":    s.state.Report.Warnings,
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.state.Report.Profile)
}

func (s *Server) handleAggregates(w http.ResponseWriter, r *http.Request) {
	dim := core.Dimension(chi.URLParam(r, "dimension"))
	table, ok := s.state.Report.Tables[dim]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "unknown dimension: " + dim.String(),
		})
		return
	}

	groups := make([]groupView, 0, len(table.Groups))
	for _, key := range table.SortedKeys() {
		groups = append(groups, viewOf(table.Groups[key]))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"dimension": dim.String(),
		"groups":    groups,
	})
}

func (s *Server) handleTests(w http.ResponseWriter, r *http.Request) {
	if s.state.Sweep == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"results": []struct{}{}})
		return
	}
	writeJSON(w, http.StatusOK, s.state.Sweep)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
