package report

import (
	"strings"
	"testing"

	"riskbook/domain/aggregate"
	"riskbook/domain/core"
	"riskbook/domain/hypothesis"
	"riskbook/domain/policy"
	"riskbook/internal/analysis"
)

func sampleInput() *Input {
	table := aggregate.NewTable(policy.DimProvince)
	g := table.Get(aggregate.NewKey([]string{"Gauteng"}))
	g.PremiumSum, g.ClaimsSum, g.RecordCount, g.ClaimCount = 1000, 350, 50, 4
	z := table.Get(aggregate.NewKey([]string{"Limpopo"}))
	z.ClaimsSum, z.RecordCount = 100, 5 // no premium

	result := &hypothesis.TestResult{
		TestName: "chi_square", Dimension: policy.DimProvince,
		Metric: hypothesis.MetricFrequency, PValue: 0.001, Alpha: 0.05,
	}
	result.Conclude("claim frequency")

	return &Input{
		SourceFile: "data/book.txt",
		Overall:    table.Totals(),
		Tables:     map[core.Dimension]*aggregate.Table{policy.DimProvince: table},
		Sweep: &analysis.SweepResult{
			Results: []*hypothesis.TestResult{result},
			Skipped: []analysis.SkippedTest{{
				Dimension: policy.DimGender, Metric: hypothesis.MetricSeverity,
				Reason: "group below minimum sample count",
			}},
		},
		TopN: 10,
	}
}

func TestBuildMarkdown_Sections(t *testing.T) {
	md := NewBuilder().BuildMarkdown(sampleInput())

	for _, want := range []string{
		"# Risk and Profitability Report",
		"data/book.txt",
		"## Overall Book",
		"- Loss ratio: 0.4500",
		"## Loss Ratio by Province",
		"Gauteng",
		"## Hypothesis Tests",
		"Reject H0",
		"Skipped tests:",
		"group below minimum sample count",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report is missing %q", want)
		}
	}

	// The zero-premium segment must read as undefined, not 0 or Inf
	if !strings.Contains(md, "undefined") {
		t.Error("undefined loss ratio should be spelled out")
	}
	if strings.Contains(md, "Inf") || strings.Contains(md, "NaN") {
		t.Error("report leaked a non-finite ratio")
	}
}

func TestBuildMarkdown_UndefinedOverallRatio(t *testing.T) {
	in := &Input{
		SourceFile: "empty.txt",
		Overall:    &aggregate.Group{ClaimsSum: 100},
		Tables:     map[core.Dimension]*aggregate.Table{},
	}
	md := NewBuilder().BuildMarkdown(in)
	if !strings.Contains(md, "Loss ratio: undefined") {
		t.Error("overall ratio without premium should be undefined")
	}
}

func TestRenderHTML(t *testing.T) {
	b := NewBuilder()
	html := string(b.RenderHTML(b.BuildMarkdown(sampleInput())))

	if !strings.Contains(html, "<h1") {
		t.Error("heading did not render")
	}
	if !strings.Contains(html, "<table>") {
		t.Error("markdown tables should render as HTML tables")
	}
}
