package digest

import (
	"fmt"
	"strings"
	"time"
)

// Format renders a digest as a compact pipe-delimited report.
func Format(r *Result) string {
	var b strings.Builder

	b.WriteString("# CORTEX DAILY DIGEST\n")
	fmt.Fprintf(&b, "# Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339))

	fmt.Fprintf(&b, "# SIMILAR_PAIRS threshold=%v count=%d\n", r.Threshold, len(r.Suggestions))
	b.WriteString("# format: doc_a | doc_b | similarity | recency | centrality | score\n")
	if len(r.Suggestions) == 0 {
		b.WriteString("(none)\n")
	}
	for _, s := range r.Suggestions {
		fmt.Fprintf(&b, "%s | %s | %.2f | %.2f | %.2f | %.2f\n",
			s.DocA, s.DocB, s.Similarity, s.Recency, s.Centrality, s.Score)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "# ORPHANS count=%d\n", len(r.Orphans))
	b.WriteString("# format: title | words | created_at | path\n")
	if len(r.Orphans) == 0 {
		b.WriteString("(none)\n")
	}
	for _, o := range r.Orphans {
		created := "unknown"
		if !o.CreatedAt.IsZero() {
			created = o.CreatedAt.Format("2006-01-02")
		}
		fmt.Fprintf(&b, "%s | %dw | %s | %s\n", o.Title, o.WordCount, created, o.Path)
	}
	b.WriteString("\n")

	return b.String()
}
