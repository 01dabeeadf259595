// Package report renders analysis results for people: a console summary
// per hypothesis, and a markdown report with an optional HTML export.
// It consumes the engines' value objects as-is and never re-derives a
// statistic.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"mindwell/app"
	domstats "mindwell/domain/stats"
)

// Writer renders analysis runs to an output stream
type Writer struct {
	out io.Writer
}

// NewWriter creates a writer targeting out
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// WriteConsole prints the cleaning summary and the per-hypothesis test
// results in the fixed console format.
func (w *Writer) WriteConsole(run *app.AnalysisRun) {
	r := run.CleaningReport
	fmt.Fprintf(w.out, "Cleaning: %d rows -> %d rows (%d duplicates, %d label rows, %d outliers removed; %d values imputed)\n",
		r.InitialRows, r.FinalRows, r.DuplicatesRemoved, r.LabelRowsDropped, r.OutliersRemoved, r.ValuesImputed)

	for _, h := range run.Hypotheses {
		fmt.Fprintf(w.out, "\n%s\n", h.Name)
		if h.Failed() {
			fmt.Fprintf(w.out, "  skipped: %v\n", h.Err)
			continue
		}
		if h.ANOVA != nil {
			fmt.Fprintf(w.out, "ANOVA F-statistic: %g, p-value: %g\n", h.ANOVA.F, h.ANOVA.PValue)
		}
		if h.Contrast != nil {
			fmt.Fprintf(w.out, "Planned Contrast (%s):\n", h.Contrast.Label)
			fmt.Fprintf(w.out, "  t = %g, p = %g, Cohen's d = %g\n", h.Contrast.T, h.Contrast.PValue, h.Contrast.EffectSize)
		}
		for _, c := range h.Correlations {
			fmt.Fprintf(w.out, "%s correlation %s vs %s: coefficient = %g, p = %g (n=%d)\n",
				c.Method, c.ColumnX, c.ColumnY, c.Coefficient, c.PValue, c.SampleSize)
		}
	}
}

// Markdown renders the full run as a markdown document
func Markdown(run *app.AnalysisRun) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Survey Analysis Report\n\nRun `%s`\n\n", run.RunID)

	r := run.CleaningReport
	b.WriteString("## Cleaning\n\n")
	b.WriteString("| Step | Count |\n|---|---|\n")
	fmt.Fprintf(&b, "| Initial rows | %d |\n", r.InitialRows)
	fmt.Fprintf(&b, "| Duplicates removed | %d |\n", r.DuplicatesRemoved)
	fmt.Fprintf(&b, "| Label rows dropped | %d |\n", r.LabelRowsDropped)
	fmt.Fprintf(&b, "| Values imputed | %d |\n", r.ValuesImputed)
	fmt.Fprintf(&b, "| Outliers removed | %d |\n", r.OutliersRemoved)
	fmt.Fprintf(&b, "| Final shape | %d × %d |\n\n", r.FinalRows, r.FinalColumns)

	b.WriteString("## Column summaries\n\n")
	b.WriteString("| Column | Type | Count/Unique | Mean | Std | Min | Max |\n|---|---|---|---|---|---|---|\n")
	for _, s := range run.Summaries {
		if s.Numeric != nil {
			fmt.Fprintf(&b, "| %s | %s | %d | %.3f | %.3f | %.3f | %.3f |\n",
				s.Column, s.Type, s.Numeric.Count, s.Numeric.Mean, s.Numeric.StdDev, s.Numeric.Min, s.Numeric.Max)
		} else {
			fmt.Fprintf(&b, "| %s | %s | %d | — | — | — | — |\n", s.Column, s.Type, s.UniqueCount)
		}
	}
	b.WriteString("\n")

	for _, g := range run.GroupSummaries {
		fmt.Fprintf(&b, "## %s by %s\n\n", g.TargetColumn, g.GroupColumn)
		b.WriteString("| Group | Mean | Std | N |\n|---|---|---|---|\n")
		for _, label := range sortedGroupLabels(g) {
			stat := g.Groups[label]
			if stat.Computable() {
				fmt.Fprintf(&b, "| %s | %.3f | %.3f | %d |\n", label, stat.Mean, stat.StdDev, stat.Count)
			} else {
				fmt.Fprintf(&b, "| %s | n/a | n/a | 0 |\n", label)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("## Hypotheses\n")
	for _, h := range run.Hypotheses {
		fmt.Fprintf(&b, "\n### %s\n\n", h.Name)
		if h.Failed() {
			fmt.Fprintf(&b, "Skipped: %v\n", h.Err)
			continue
		}
		if h.ANOVA != nil {
			a := h.ANOVA
			fmt.Fprintf(&b, "- ANOVA: F(%d, %d) = %.4f, p = %.4g, η² = %.4f%s\n",
				a.DFBetween, a.DFWithin, a.F, a.PValue, a.EtaSquared, significanceTag(a.Significant))
		}
		if h.Contrast != nil {
			c := h.Contrast
			fmt.Fprintf(&b, "- Planned contrast (%s): t(%d) = %.4f, p = %.4g, Cohen's d = %.4f%s\n",
				c.Label, c.DF, c.T, c.PValue, c.EffectSize, significanceTag(c.Significant))
		}
		for _, c := range h.Correlations {
			fmt.Fprintf(&b, "- %s %s vs %s: %.4f (p = %.4g, n = %d)\n",
				c.Method, c.ColumnX, c.ColumnY, c.Coefficient, c.PValue, c.SampleSize)
		}
	}
	return b.String()
}

// HTML converts the markdown report to a standalone HTML fragment
func HTML(run *app.AnalysisRun) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(Markdown(run)))
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return markdown.Render(doc, renderer)
}

func sortedGroupLabels(g domstats.GroupSummary) []string {
	labels := make([]string, 0, len(g.Groups))
	for label := range g.Groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

func significanceTag(significant bool) string {
	if significant {
		return " (significant)"
	}
	return ""
}
