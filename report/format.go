package report

import (
	"fmt"

	"github.com/memtree/memtree/model"
)

// MinNameWidth is the default name column width. Names longer than the
// column render truncated with a "..." tail.
const MinNameWidth = 40

// FormatMemory renders a byte count the way the report shows memory: "0B"
// for zero, one-decimal MB below 1GiB, one-decimal GB from there up.
func FormatMemory(bytes uint64) string {
	if bytes == 0 {
		return "0B"
	}
	mb := float64(bytes) / (1024 * 1024)
	gb := mb / 1024
	if gb >= 1 {
		return fmt.Sprintf("%.1fGB", gb)
	}
	return fmt.Sprintf("%.1fMB", mb)
}

// columnWidths sizes the two aligned columns for one tree: the pid column
// fits the widest pid, the name column is the configured width.
func columnWidths(t *model.Tree, nameWidth int) (int, int) {
	pidWidth := 0
	t.Walk(func(n *model.ProcessNode, _ int, _ bool) {
		if w := len(fmt.Sprint(n.PID)); w > pidWidth {
			pidWidth = w
		}
	})
	return pidWidth, nameWidth
}

// displayName pads a name to the column width, or truncates it to
// width-3 bytes plus "...".
func displayName(name string, width int) string {
	if len(name) > width {
		if width > 3 {
			return name[:width-3] + "..."
		}
		return "..."
	}
	return fmt.Sprintf("%-*s", width, name)
}
