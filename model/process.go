package model

// PID identifies a process within one snapshot.
type PID int32

// ProcessRecord is one process as captured by a snapshot provider.
// Records are immutable once the snapshot is built.
type ProcessRecord struct {
	PID       PID    `json:"pid"`
	Name      string `json:"name"`            // executable name; may be OS-truncated (15 chars on some platforms)
	ParentPID PID    `json:"parent_pid"`      // valid only when HasParent
	HasParent bool   `json:"has_parent"`      // false: no known parent (top of the OS tree)
	RSSBytes  uint64 `json:"rss_bytes"`       // resident set size at capture time
	Cmdline   string `json:"cmdline,omitempty"` // full command line, only when argument capture is on
}

// MemoryRank marks a node's position among the distinct RSS values of its tree.
type MemoryRank int

const (
	RankNone   MemoryRank = 0
	RankFirst  MemoryRank = 1
	RankSecond MemoryRank = 2
	RankThird  MemoryRank = 3
)

func (r MemoryRank) String() string {
	switch r {
	case RankFirst:
		return "first"
	case RankSecond:
		return "second"
	case RankThird:
		return "third"
	}
	return "none"
}

// Emoji returns the trophy for a rank, or "" for unranked nodes.
func (r MemoryRank) Emoji() string {
	switch r {
	case RankFirst:
		return "🥇"
	case RankSecond:
		return "🥈"
	case RankThird:
		return "🥉"
	}
	return ""
}

// ProcessNode is a ProcessRecord placed in an extracted tree. Nodes are
// rebuilt from scratch on every analysis pass; nothing survives between passes.
type ProcessNode struct {
	ProcessRecord
	Children []PID      `json:"children,omitempty"` // snapshot iteration order
	Rank     MemoryRank `json:"rank"`
}
