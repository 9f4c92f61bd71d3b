package engine

import (
	"testing"

	"github.com/memtree/memtree/model"
)

// flatTree builds a root with len(rss)-1 direct children, assigning rss[0] to
// the root and the rest in order.
func flatTree(rss ...uint64) *model.Tree {
	t := &model.Tree{
		Root:  1,
		Nodes: make(map[model.PID]*model.ProcessNode),
	}
	root := &model.ProcessNode{ProcessRecord: model.ProcessRecord{PID: 1, Name: "root", RSSBytes: rss[0]}}
	t.Nodes[1] = root
	for i, v := range rss[1:] {
		pid := model.PID(i + 2)
		root.Children = append(root.Children, pid)
		t.Nodes[pid] = &model.ProcessNode{
			ProcessRecord: model.ProcessRecord{PID: pid, Name: "child", ParentPID: 1, HasParent: true, RSSBytes: v},
		}
	}
	return t
}

func ranksByPID(t *model.Tree) map[model.PID]model.MemoryRank {
	out := make(map[model.PID]model.MemoryRank, len(t.Nodes))
	for pid, n := range t.Nodes {
		out[pid] = n.Rank
	}
	return out
}

func TestTreeMaxima(t *testing.T) {
	tests := []struct {
		name string
		rss  []uint64
		m1   uint64
		m2   uint64
		m3   uint64
	}{
		{"distinct values", []uint64{10, 7, 3}, 10, 7, 3},
		{"tie at the top", []uint64{10, 10, 7, 3}, 10, 7, 3},
		{"single node", []uint64{5}, 5, 0, 0},
		{"two distinct", []uint64{9, 4}, 9, 4, 0},
		{"all equal", []uint64{6, 6, 6}, 6, 0, 0},
		{"all zero", []uint64{0, 0}, 0, 0, 0},
		{"zero among values", []uint64{12, 0, 0}, 12, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m1, m2, m3 := treeMaxima(flatTree(tt.rss...))
			if m1 != tt.m1 || m2 != tt.m2 || m3 != tt.m3 {
				t.Errorf("treeMaxima() = (%d, %d, %d), want (%d, %d, %d)",
					m1, m2, m3, tt.m1, tt.m2, tt.m3)
			}
		})
	}
}

func TestRankTreeBroadcastsTies(t *testing.T) {
	// {10, 10, 7, 3}: both holders of 10 are first; 7 second; 3 third.
	tree := flatTree(10, 10, 7, 3)
	rankTree(tree)

	got := ranksByPID(tree)
	want := map[model.PID]model.MemoryRank{
		1: model.RankFirst,
		2: model.RankFirst,
		3: model.RankSecond,
		4: model.RankThird,
	}
	for pid, w := range want {
		if got[pid] != w {
			t.Errorf("rank[%d] = %v, want %v", pid, got[pid], w)
		}
	}
}

func TestRankTreeSingleNode(t *testing.T) {
	tree := flatTree(5)
	rankTree(tree)
	if got := tree.Node(1).Rank; got != model.RankFirst {
		t.Errorf("single node rank = %v, want first", got)
	}
}

func TestRankTreeZeroGuard(t *testing.T) {
	// Second/third must never be the zero value: {12, 0, 0} marks only 12.
	tree := flatTree(12, 0, 0)
	rankTree(tree)

	if got := tree.Node(1).Rank; got != model.RankFirst {
		t.Errorf("rank[1] = %v, want first", got)
	}
	for _, pid := range []model.PID{2, 3} {
		if got := tree.Node(pid).Rank; got != model.RankNone {
			t.Errorf("rank[%d] = %v, want none (zero never ranks second/third)", pid, got)
		}
	}
}

func TestRankTreeMoreThanThreeDistinct(t *testing.T) {
	tree := flatTree(100, 80, 60, 40, 20)
	rankTree(tree)

	got := ranksByPID(tree)
	want := map[model.PID]model.MemoryRank{
		1: model.RankFirst,
		2: model.RankSecond,
		3: model.RankThird,
		4: model.RankNone,
		5: model.RankNone,
	}
	for pid, w := range want {
		if got[pid] != w {
			t.Errorf("rank[%d] = %v, want %v", pid, got[pid], w)
		}
	}
}
