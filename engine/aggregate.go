package engine

import (
	"sort"

	"github.com/memtree/memtree/model"
)

// aggregateTree fills in the tree's stats and its top-3 nodes.
// Count, total and average are pure reductions; average is integer division
// (0 for an empty tree). Top is by node, not by value: two nodes tied on a
// value occupy two slots, unlike the rank marking.
func aggregateTree(t *model.Tree) {
	var stats model.TreeStats
	var all []*model.ProcessNode
	t.Walk(func(n *model.ProcessNode, level int, last bool) {
		stats.ProcessCount++
		stats.TotalBytes += n.RSSBytes
		all = append(all, n)
	})
	if stats.ProcessCount > 0 {
		stats.AverageBytes = stats.TotalBytes / uint64(stats.ProcessCount)
	}
	t.Stats = stats

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].RSSBytes > all[j].RSSBytes
	})
	if len(all) > 3 {
		all = all[:3]
	}
	t.Top = t.Top[:0]
	for _, n := range all {
		pct := 0.0
		if stats.TotalBytes > 0 {
			pct = float64(n.RSSBytes) / float64(stats.TotalBytes) * 100
		}
		t.Top = append(t.Top, model.TopProcess{
			PID:      n.PID,
			Name:     n.Name,
			RSSBytes: n.RSSBytes,
			Percent:  pct,
		})
	}
}
