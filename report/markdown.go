package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/memtree/memtree/model"
)

// ── Markdown output ─────────────────────────────────────────────────────────

// RenderMarkdown returns the report as a markdown document, one section and
// table per tree. Meant for pasting into tickets and chat.
func RenderMarkdown(rep *model.Report) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# memtree: %s\n\n", rep.Query))
	sb.WriteString(fmt.Sprintf("**Time:** %s  \n", rep.TakenAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("**Matches:** %d\n\n", rep.MatchCount))

	if len(rep.Trees) == 0 && len(rep.FailedRoots) == 0 {
		sb.WriteString("No process trees found.\n")
		return sb.String()
	}

	for i := range rep.Trees {
		t := &rep.Trees[i]
		root := t.Node(t.Root)
		if root == nil {
			continue
		}

		sb.WriteString(fmt.Sprintf("## Tree %d — root [%d] %s\n\n", i+1, t.Root, root.Name))
		sb.WriteString("| PID | Process | RSS | Rank | % |\n")
		sb.WriteString("|-----|---------|-----|------|---|\n")
		t.Walk(func(n *model.ProcessNode, level int, _ bool) {
			pct := ""
			if t.Stats.TotalBytes > 0 {
				pct = fmt.Sprintf("%.1f", float64(n.RSSBytes)/float64(t.Stats.TotalBytes)*100)
			}
			sb.WriteString(fmt.Sprintf("| %d | %s%s | %s | %s | %s |\n",
				n.PID, strings.Repeat("· ", level), n.Name,
				FormatMemory(n.RSSBytes), n.Rank.Emoji(), pct))
		})
		sb.WriteString("\n")

		sb.WriteString(fmt.Sprintf("**Procs:** %d · **Total:** %s · **Average:** %s",
			t.Stats.ProcessCount, FormatMemory(t.Stats.TotalBytes), FormatMemory(t.Stats.AverageBytes)))
		if len(t.Top) > 0 {
			var combined uint64
			var pct float64
			for _, tp := range t.Top {
				combined += tp.RSSBytes
				pct += tp.Percent
			}
			sb.WriteString(fmt.Sprintf(" · **Top 3:** %s (%.1f%%)", FormatMemory(combined), pct))
		}
		sb.WriteString("\n\n")
	}

	for _, pid := range rep.FailedRoots {
		sb.WriteString(fmt.Sprintf("- Could not build process tree for PID %d\n", pid))
	}

	return sb.String()
}
