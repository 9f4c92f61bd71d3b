package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/memtree/memtree/model"
)

const separatorWidth = 60

// Renderer writes the banner-and-tree text report.
type Renderer struct {
	Out       io.Writer
	Palette   *Palette
	ShowArgs  bool // 🟢 markers and captured command lines
	NameWidth int  // name column width; 0 falls back to MinNameWidth
}

func (r *Renderer) nameWidth() int {
	if r.NameWidth > 0 {
		return r.NameWidth
	}
	return MinNameWidth
}

// ── Banner lines ────────────────────────────────────────────────────────────

// Searching prints the query banner that opens every pass.
func (r *Renderer) Searching(query string) {
	fmt.Fprintf(r.Out, "%s %s\n",
		r.Palette.banner.Sprint("🔍 Searching for processes matching:"),
		r.Palette.query.Sprint(query))
}

// NoMatch prints the zero-matches line.
func (r *Renderer) NoMatch(query string) {
	fmt.Fprintln(r.Out, r.Palette.alert.Sprintf("❌ No processes found matching '%s'", query))
}

// Found prints the match-count line. Render calls it too; it stands alone
// for the matched-but-rootless path.
func (r *Renderer) Found(n int) {
	fmt.Fprintln(r.Out, r.Palette.success.Sprintf("✅ Found %d matching process(es)", n))
}

// NoRoots prints the matched-but-rootless line.
func (r *Renderer) NoRoots() {
	fmt.Fprintln(r.Out, r.Palette.alert.Sprint("❌ No root processes found"))
}

// Interrupted prints the Ctrl+C goodbye.
func (r *Renderer) Interrupted() {
	fmt.Fprintln(r.Out, r.Palette.alert.Sprint("🛑 Analysis interrupted by user"))
}

// WatchBanner prints the line that opens watch mode.
func (r *Renderer) WatchBanner(intervalSec int) {
	fmt.Fprintln(r.Out, r.Palette.header.Sprintf(
		"🕒 Starting watch mode - updating every %d seconds (Press Ctrl+C to stop)", intervalSec))
}

// WatchHeader prints the per-pass timestamp block in watch mode.
func (r *Renderer) WatchHeader(now time.Time, intervalSec int) {
	fmt.Fprintln(r.Out, r.Palette.header.Sprint("🕒 "+now.Format("2006-01-02 15:04:05")))
	fmt.Fprintln(r.Out, r.Palette.banner.Sprintf("🔄 Updating every %d seconds", intervalSec))
	fmt.Fprintln(r.Out, r.Palette.banner.Sprint(strings.Repeat("═", separatorWidth)))
}

// ── Report body ─────────────────────────────────────────────────────────────

// Render writes the full report: match counts, every tree with its summary,
// then any roots that vanished before extraction.
func (r *Renderer) Render(rep *model.Report) {
	r.Found(rep.MatchCount)

	roots := len(rep.Trees) + len(rep.FailedRoots)
	fmt.Fprintln(r.Out, r.Palette.success.Sprintf("🌳 Found %d root process tree(s)", roots))

	for i := range rep.Trees {
		if i > 0 {
			fmt.Fprintf(r.Out, "\n%s\n", r.Palette.banner.Sprint(strings.Repeat("═", separatorWidth)))
		}
		r.renderTree(&rep.Trees[i], i+1)
	}

	for _, pid := range rep.FailedRoots {
		fmt.Fprintln(r.Out, r.Palette.alert.Sprintf("❌ Could not build process tree for PID %d", pid))
	}
}

func (r *Renderer) renderTree(t *model.Tree, index int) {
	root := t.Node(t.Root)
	if root == nil {
		return
	}

	fmt.Fprintf(r.Out, "\n%s\n", r.Palette.header.Sprintf("📊 Process Tree %d (Root PID: %d)", index, t.Root))
	fmt.Fprintln(r.Out, r.Palette.banner.Sprint(strings.Repeat("-", separatorWidth)))
	fmt.Fprintf(r.Out, "%s [%d] %s\n", r.Palette.banner.Sprint("🎯 Root:"), t.Root, root.Name)
	fmt.Fprintln(r.Out, r.Palette.header.Sprint("📋 Process Tree:"))

	pidW, nameW := columnWidths(t, r.nameWidth())
	r.renderNode(t, t.Root, "", "", 0, pidW, nameW)

	r.renderSummary(t)
}

// renderNode prints one node line and recurses into its children. prefix is
// the accumulated continuation for the ancestors, branch the glyph for this
// node ("├── ", "└── ", or "" for the root).
func (r *Renderer) renderNode(t *model.Tree, pid model.PID, prefix, branch string, level, pidW, nameW int) {
	n := t.Node(pid)
	if n == nil {
		return
	}

	var line strings.Builder
	if prefix+branch != "" {
		line.WriteString(r.Palette.glyph.Sprint(prefix + branch))
	}
	if r.ShowArgs {
		line.WriteString("🟢")
	}

	pidStyle := r.Palette.pid
	if level == 0 {
		pidStyle = r.Palette.pidRoot
	}
	line.WriteString(pidStyle.Sprintf("[%*d]", pidW, n.PID))
	line.WriteByte(' ')
	line.WriteString(r.Palette.name.Sprint(displayName(n.Name, nameW)))
	line.WriteByte(' ')
	line.WriteString(r.Palette.memory(n.Rank, n.RSSBytes).Sprint(FormatMemory(n.RSSBytes)))
	line.WriteString(n.Rank.Emoji())
	if t.Stats.TotalBytes > 0 {
		pct := float64(n.RSSBytes) / float64(t.Stats.TotalBytes) * 100
		line.WriteString(fmt.Sprintf(" (%.1f%%)", pct))
	}
	if r.ShowArgs && n.Cmdline != "" {
		line.WriteString(" 🔍" + n.Cmdline)
	}
	fmt.Fprintln(r.Out, line.String())

	childPrefix := prefix
	switch branch {
	case "├── ":
		childPrefix += "│   "
	case "└── ":
		childPrefix += "    "
	}
	for i, c := range n.Children {
		childBranch := "├── "
		if i == len(n.Children)-1 {
			childBranch = "└── "
		}
		r.renderNode(t, c, childPrefix, childBranch, level+1, pidW, nameW)
	}
}

func (r *Renderer) renderSummary(t *model.Tree) {
	fmt.Fprintf(r.Out, "\n%s\n", r.Palette.header.Sprint("📈 Summary:"))
	fmt.Fprintf(r.Out, "   %s %d\n", r.Palette.label.Sprint("Tree Procs:"), t.Stats.ProcessCount)
	fmt.Fprintf(r.Out, "   %s %s\n", r.Palette.label.Sprint("Total Memory:"),
		r.Palette.memory(model.RankNone, t.Stats.TotalBytes).Sprint(FormatMemory(t.Stats.TotalBytes)))
	fmt.Fprintf(r.Out, "   %s %s\n", r.Palette.label.Sprint("Average:"),
		r.Palette.memory(model.RankNone, t.Stats.AverageBytes).Sprint(FormatMemory(t.Stats.AverageBytes)))

	if len(t.Top) == 0 {
		return
	}
	var combined uint64
	var pct float64
	for _, tp := range t.Top {
		combined += tp.RSSBytes
		pct += tp.Percent
	}
	fmt.Fprintf(r.Out, "   %s %s (%.1f%%)\n", r.Palette.label.Sprint("Top 3 Combined:"),
		r.Palette.memory(model.RankNone, combined).Sprint(FormatMemory(combined)), pct)
}
