package search

import (
	"fmt"
	"strings"
	"time"
)

// Format renders search results as compact markdown with full content.
func Format(r *Results) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# SEARCH q=%q\n\n", r.Query)

	b.WriteString("## PARAMS\n")
	fmt.Fprintf(&b, "expanded: %t\n", r.Expanded)
	fmt.Fprintf(&b, "top_k: %d\n", r.TopK)
	fmt.Fprintf(&b, "generated_at: %s\n\n", r.GeneratedAt.Format(time.RFC3339))

	b.WriteString("## RESULTS\n")
	if len(r.Results) == 0 {
		b.WriteString("No results found.\n")
		return b.String()
	}
	b.WriteString("\n")

	for i, res := range r.Results {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, res.Title)
		fmt.Fprintf(&b, "relevance: %.2f\n", res.Relevance)
		fmt.Fprintf(&b, "vec_score: %.2f\n", res.VecScore)
		fmt.Fprintf(&b, "recency: %.2f\n", res.Recency)
		fmt.Fprintf(&b, "centrality: %.2f\n\n", res.Centrality)
		fmt.Fprintf(&b, "path: %s\n", res.Path)
		fmt.Fprintf(&b, "type: %s\n", res.DocType)
		fmt.Fprintf(&b, "words: %d\n", res.WordCount)
		if len(res.Tags) > 0 {
			fmt.Fprintf(&b, "tags: %s\n", strings.Join(res.Tags, ", "))
		}
		b.WriteString("\n--- CONTENT ---\n")
		b.WriteString(strings.TrimSpace(res.Content))
		b.WriteString("\n--- END ---\n\n")
	}

	return b.String()
}
