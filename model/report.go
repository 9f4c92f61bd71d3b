package model

import "time"

// Tree is one extracted process subtree, anchored at a matched root.
type Tree struct {
	Root  PID                  `json:"root"`
	Nodes map[PID]*ProcessNode `json:"nodes"`
	Stats TreeStats            `json:"stats"`
	Top   []TopProcess         `json:"top,omitempty"` // up to 3 largest nodes, RSS descending
}

// Node returns the tree's node for pid, or nil.
func (t *Tree) Node(pid PID) *ProcessNode {
	return t.Nodes[pid]
}

// Walk visits the tree depth-first from the root, children in stored order.
// level is the depth (root = 0); last reports whether the node is its
// parent's final child.
func (t *Tree) Walk(fn func(n *ProcessNode, level int, last bool)) {
	var walk func(pid PID, level int, last bool)
	walk = func(pid PID, level int, last bool) {
		n := t.Nodes[pid]
		if n == nil {
			return
		}
		fn(n, level, last)
		for i, c := range n.Children {
			walk(c, level+1, i == len(n.Children)-1)
		}
	}
	walk(t.Root, 0, false)
}

// TreeStats are the pure reductions over one tree.
type TreeStats struct {
	ProcessCount int    `json:"process_count"`
	TotalBytes   uint64 `json:"total_bytes"`
	AverageBytes uint64 `json:"average_bytes"` // integer division, 0 for an empty tree
}

// TopProcess is one of a tree's largest nodes with its share of the tree total.
type TopProcess struct {
	PID      PID     `json:"pid"`
	Name     string  `json:"name"`
	RSSBytes uint64  `json:"rss_bytes"`
	Percent  float64 `json:"percent"` // of the tree's TotalBytes; 0 when total is 0
}

// Report is the result of one analysis pass.
type Report struct {
	Query       string    `json:"query"`
	TakenAt     time.Time `json:"taken_at"`
	MatchCount  int       `json:"match_count"`
	Trees       []Tree    `json:"trees"`
	FailedRoots []PID     `json:"failed_roots,omitempty"` // roots gone by extraction time
}
