package insights

import (
	"fmt"
	"strings"
	"time"
)

// Format renders cluster insights as a compact report.
func Format(r *Result, includeSamples bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# CLUSTER_INSIGHTS clusters=%d total_docs=%d generated=%s\n\n",
		r.TotalClusters, r.TotalDocs, r.GeneratedAt.Format(time.RFC3339))

	for _, cluster := range r.Clusters {
		fmt.Fprintf(&b, "## CLUSTER id=%d size=%d\n\n", cluster.ClusterID, cluster.Size)

		b.WriteString("### STATS\n")
		fmt.Fprintf(&b, "avg_words: %d\n", cluster.Stats.AvgWords)
		fmt.Fprintf(&b, "total_words: %d\n", cluster.Stats.TotalWords)
		fmt.Fprintf(&b, "avg_centrality: %v\n", cluster.Stats.AvgCentrality)
		fmt.Fprintf(&b, "density: %v\n\n", cluster.Stats.Density)

		b.WriteString("### HUBS\n")
		for _, hub := range cluster.Hubs {
			tags := "none"
			if len(hub.Tags) > 0 {
				shown := hub.Tags
				if len(shown) > 3 {
					shown = shown[:3]
				}
				tags = strings.Join(shown, ",")
			}
			fmt.Fprintf(&b, "%s | %.3f | %dw | %s\n", hub.Title, hub.Centrality, hub.WordCount, tags)
		}
		b.WriteString("\n")

		b.WriteString("### TAGS\n")
		for _, tf := range cluster.TagFreq {
			fmt.Fprintf(&b, "%s: %d\n", tf.Tag, tf.Count)
		}
		b.WriteString("\n")

		if len(cluster.Connections) > 0 {
			b.WriteString("### CONNECTIONS\n")
			for _, conn := range cluster.Connections {
				fmt.Fprintf(&b, "cluster_%d: %d links\n", conn.ClusterID, conn.LinkCount)
			}
			b.WriteString("\n")
		}

		if includeSamples && len(cluster.Samples) > 0 {
			b.WriteString("### SAMPLES\n")
			for _, sample := range cluster.Samples {
				fmt.Fprintf(&b, "#### %s (%dw)\n%s\n\n", sample.Title, sample.WordCount, sample.Excerpt)
			}
		}
	}

	return b.String()
}

// FormatSummary renders a one-line-per-cluster overview table.
func FormatSummary(r *Result) string {
	var b strings.Builder

	b.WriteString("# CLUSTER SUMMARY\n")
	fmt.Fprintf(&b, "Total clusters: %d\n", r.TotalClusters)
	fmt.Fprintf(&b, "Total documents: %d\n", r.TotalDocs)
	fmt.Fprintf(&b, "Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339))

	b.WriteString("| ID | Size | Top Tags | Top Hub |\n")
	b.WriteString("|----|------|----------|---------|\n")
	for _, cluster := range r.Clusters {
		topTags := "none"
		if len(cluster.TagFreq) > 0 {
			var names []string
			for i, tf := range cluster.TagFreq {
				if i == 3 {
					break
				}
				names = append(names, tf.Tag)
			}
			topTags = strings.Join(names, ", ")
		}
		topHub := "none"
		if len(cluster.Hubs) > 0 {
			topHub = cluster.Hubs[0].Title
		}
		fmt.Fprintf(&b, "| %d | %d | %s | %s |\n", cluster.ClusterID, cluster.Size, topTags, topHub)
	}

	return b.String()
}
