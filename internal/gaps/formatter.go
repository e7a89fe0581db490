package gaps

import (
	"fmt"
	"strings"
	"time"
)

// Format renders gap detection results as a compact report.
func Format(r *Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# KNOWLEDGE_GAPS count=%d generated=%s\n", len(r.Gaps), r.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "# Total clusters analyzed: %d\n\n", r.ClusterCount)

	if len(r.Gaps) == 0 {
		b.WriteString("(No knowledge gaps detected above threshold)\n\n")
		return b.String()
	}

	for rank, gap := range r.Gaps {
		fmt.Fprintf(&b, "## GAP rank=%d gap_score=%.2f\n", rank+1, gap.GapScore)
		fmt.Fprintf(&b, "clusters: %d, %d\n", gap.ClusterA, gap.ClusterB)
		fmt.Fprintf(&b, "semantic_sim: %.2f\n", gap.SemanticSim)
		fmt.Fprintf(&b, "link_density: %.4f\n", gap.LinkDensity)
		fmt.Fprintf(&b, "cross_links: %d\n\n", gap.CrossLinks)

		writeClusterInfo(&b, gap.ClusterAInfo)
		writeClusterInfo(&b, gap.ClusterBInfo)

		if len(gap.SharedTags) > 0 {
			fmt.Fprintf(&b, "SHARED_TAGS: %s\n", strings.Join(gap.SharedTags, ", "))
		} else {
			b.WriteString("SHARED_TAGS: (none)\n")
		}

		if len(gap.BoundaryNodes) > 0 {
			shown := gap.BoundaryNodes
			extra := 0
			if len(shown) > 10 {
				extra = len(shown) - 10
				shown = shown[:10]
			}
			fmt.Fprintf(&b, "BOUNDARY_NODES: %s", strings.Join(shown, ", "))
			if extra > 0 {
				fmt.Fprintf(&b, " (and %d more)", extra)
			}
			b.WriteString("\n")
		} else {
			b.WriteString("BOUNDARY_NODES: (none)\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writeClusterInfo(b *strings.Builder, info ClusterInfo) {
	fmt.Fprintf(b, "### CLUSTER_%d size=%d\n", info.ClusterID, info.Size)

	if len(info.HubDocs) > 0 {
		fmt.Fprintf(b, "HUBS: %s\n", strings.Join(info.HubDocs, ", "))
	} else {
		b.WriteString("HUBS: (none)\n")
	}

	if len(info.TopTags) > 0 {
		parts := make([]string, len(info.TopTags))
		for i, tc := range info.TopTags {
			parts[i] = fmt.Sprintf("%s(%d)", tc.Tag, tc.Count)
		}
		fmt.Fprintf(b, "TAGS: %s\n", strings.Join(parts, ", "))
	} else {
		b.WriteString("TAGS: (none)\n")
	}
	b.WriteString("\n")
}
