// Package report assembles the plain-language analysis report: overall book
// summary, loss ratios by segment, data quality and test conclusions.
package report

import (
	"fmt"
	"strings"

	"riskbook/domain/aggregate"
	"riskbook/domain/core"
	"riskbook/internal/analysis"
	"riskbook/internal/profiling"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Input carries everything one analysis run produced
type Input struct {
	SourceFile string
	Overall    *aggregate.Group
	Tables     map[core.Dimension]*aggregate.Table
	Profile    *profiling.BookProfile
	Sweep      *analysis.SweepResult
	TopN       int
}

// Builder renders the analysis report as markdown
type Builder struct{}

// NewBuilder creates a report builder
func NewBuilder() *Builder {
	return &Builder{}
}

// BuildMarkdown assembles the full report
func (b *Builder) BuildMarkdown(in *Input) string {
	var sb strings.Builder

	sb.WriteString("# Risk and Profitability Report\n\n")
	fmt.Fprintf(&sb, "Source: `%s`\n\n", in.SourceFile)

	b.writeOverall(&sb, in.Overall)
	if in.Profile != nil {
		b.writeQuality(&sb, in.Profile)
	}
	for dim, table := range in.Tables {
		b.writeTable(&sb, dim, table, in.TopN)
	}
	if in.Sweep != nil {
		b.writeSweep(&sb, in.Sweep)
	}
	return sb.String()
}

// RenderHTML converts the markdown report for the dashboard
func (b *Builder) RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}

func (b *Builder) writeOverall(sb *strings.Builder, overall *aggregate.Group) {
	sb.WriteString("## Overall Book\n\n")
	fmt.Fprintf(sb, "- Records: %d\n", overall.RecordCount)
	fmt.Fprintf(sb, "- Total premium: %.2f\n", overall.PremiumSum)
	fmt.Fprintf(sb, "- Total claims: %.2f\n", overall.ClaimsSum)
	fmt.Fprintf(sb, "- Claim count: %d\n", overall.ClaimCount)
	if lr := overall.LossRatio(); lr != nil {
		fmt.Fprintf(sb, "- Loss ratio: %.4f\n", *lr)
	} else {
		sb.WriteString("- Loss ratio: undefined (no premium)\n")
	}
	sb.WriteString("\n")
}

func (b *Builder) writeQuality(sb *strings.Builder, profile *profiling.BookProfile) {
	sb.WriteString("## Data Quality\n\n")
	sb.WriteString("| Column | Missing | Missing % | Mean | Std Dev |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, col := range profile.Columns {
		mean, stddev := "", ""
		if col.Summary != nil {
			mean = fmt.Sprintf("%.2f", col.Summary.Mean)
			stddev = fmt.Sprintf("%.2f", col.Summary.StdDev)
		}
		fmt.Fprintf(sb, "| %s | %d | %.1f%% | %s | %s |\n",
			col.Column, col.MissingCount, col.MissingRate*100, mean, stddev)
	}
	sb.WriteString("\n")
}

func (b *Builder) writeTable(sb *strings.Builder, dim core.Dimension, table *aggregate.Table, topN int) {
	fmt.Fprintf(sb, "## Loss Ratio by %s\n\n", dim)
	sb.WriteString("| Group | Records | Claims | Premium Sum | Claims Sum | Loss Ratio | Claim Freq |\n")
	sb.WriteString("|---|---|---|---|---|---|---|\n")
	groups := table.TopN(topN)
	if topN <= 0 {
		groups = table.TopN(len(table.Groups))
	}
	for _, g := range groups {
		fmt.Fprintf(sb, "| %s | %d | %d | %.2f | %.2f | %s | %s |\n",
			g.Key.Label(), g.RecordCount, g.ClaimCount, g.PremiumSum, g.ClaimsSum,
			formatRatio(g.LossRatio()), formatRatio(g.ClaimFrequency()))
	}
	sb.WriteString("\n")
}

func (b *Builder) writeSweep(sb *strings.Builder, sweep *analysis.SweepResult) {
	sb.WriteString("## Hypothesis Tests\n\n")
	for _, r := range sweep.Results {
		fmt.Fprintf(sb, "- **%s / %s** (%s): %s\n", r.Dimension, r.Metric, r.TestName, r.Conclusion)
	}
	if len(sweep.Skipped) > 0 {
		sb.WriteString("\nSkipped tests:\n\n")
		for _, s := range sweep.Skipped {
			fmt.Fprintf(sb, "- %s / %s: %s\n", s.Dimension, s.Metric, s.Reason)
		}
	}
	sb.WriteString("\n")
}

func formatRatio(v *float64) string {
	if v == nil {
		return "undefined"
	}
	return fmt.Sprintf("%.4f", *v)
}
