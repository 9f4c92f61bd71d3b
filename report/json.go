package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/memtree/memtree/model"
)

// ── JSON output ─────────────────────────────────────────────────────────────

type jsonReport struct {
	Query       string     `json:"query"`
	Timestamp   string     `json:"timestamp"`
	MatchCount  int        `json:"match_count"`
	Trees       []jsonTree `json:"trees"`
	FailedRoots []int32    `json:"failed_roots,omitempty"`
}

type jsonTree struct {
	RootPID int32      `json:"root_pid"`
	Nodes   []jsonNode `json:"nodes"` // depth-first, children in snapshot order
	Stats   jsonStats  `json:"stats"`
	Top     []jsonTop  `json:"top,omitempty"`
}

type jsonNode struct {
	PID      int32  `json:"pid"`
	Name     string `json:"name"`
	Depth    int    `json:"depth"`
	RSSBytes uint64 `json:"rss_bytes"`
	RSS      string `json:"rss"`
	Rank     string `json:"rank,omitempty"`
	Cmdline  string `json:"cmdline,omitempty"`
}

type jsonStats struct {
	ProcessCount int    `json:"process_count"`
	TotalBytes   uint64 `json:"total_bytes"`
	Total        string `json:"total"`
	AverageBytes uint64 `json:"average_bytes"`
	Average      string `json:"average"`
}

type jsonTop struct {
	PID      int32   `json:"pid"`
	Name     string  `json:"name"`
	RSSBytes uint64  `json:"rss_bytes"`
	Percent  float64 `json:"percent"`
}

// RenderJSON writes the report as indented JSON, nodes flattened in tree
// order with their depth.
func RenderJSON(out io.Writer, rep *model.Report) error {
	jr := jsonReport{
		Query:      rep.Query,
		Timestamp:  rep.TakenAt.Format(time.RFC3339),
		MatchCount: rep.MatchCount,
		Trees:      []jsonTree{},
	}
	for _, pid := range rep.FailedRoots {
		jr.FailedRoots = append(jr.FailedRoots, int32(pid))
	}

	for i := range rep.Trees {
		t := &rep.Trees[i]
		jt := jsonTree{
			RootPID: int32(t.Root),
			Stats: jsonStats{
				ProcessCount: t.Stats.ProcessCount,
				TotalBytes:   t.Stats.TotalBytes,
				Total:        FormatMemory(t.Stats.TotalBytes),
				AverageBytes: t.Stats.AverageBytes,
				Average:      FormatMemory(t.Stats.AverageBytes),
			},
		}
		t.Walk(func(n *model.ProcessNode, level int, _ bool) {
			jn := jsonNode{
				PID:      int32(n.PID),
				Name:     n.Name,
				Depth:    level,
				RSSBytes: n.RSSBytes,
				RSS:      FormatMemory(n.RSSBytes),
				Cmdline:  n.Cmdline,
			}
			if n.Rank != model.RankNone {
				jn.Rank = n.Rank.String()
			}
			jt.Nodes = append(jt.Nodes, jn)
		})
		for _, tp := range t.Top {
			jt.Top = append(jt.Top, jsonTop{
				PID:      int32(tp.PID),
				Name:     tp.Name,
				RSSBytes: tp.RSSBytes,
				Percent:  tp.Percent,
			})
		}
		jr.Trees = append(jr.Trees, jt)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(jr)
}
