package engine

import (
	"testing"
	"time"

	"github.com/memtree/memtree/model"
)

// proc builds a record; ppid 0 means "no known parent".
func proc(pid, ppid model.PID, name string, rss uint64) model.ProcessRecord {
	return model.ProcessRecord{
		PID:       pid,
		Name:      name,
		ParentPID: ppid,
		HasParent: ppid > 0,
		RSSBytes:  rss,
	}
}

func makeSnap(recs ...model.ProcessRecord) *model.Snapshot {
	s := model.NewSnapshot(time.Unix(1700000000, 0))
	for _, r := range recs {
		s.Add(r)
	}
	return s
}

func TestBuildAdjacency(t *testing.T) {
	s := makeSnap(
		proc(100, 0, "svc", 0),
		proc(101, 100, "svc-worker", 0),
		proc(102, 100, "svc-worker", 0),
		proc(103, 999, "orphan", 0), // parent not in snapshot
		proc(104, 101, "svc-helper", 0),
	)

	adj := buildAdjacency(s)

	if got, want := len(adj[100]), 2; got != want {
		t.Fatalf("len(adj[100]) = %d, want %d", got, want)
	}
	if adj[100][0] != 101 || adj[100][1] != 102 {
		t.Errorf("adj[100] = %v, want [101 102] in snapshot order", adj[100])
	}
	if got := adj[101]; len(got) != 1 || got[0] != 104 {
		t.Errorf("adj[101] = %v, want [104]", got)
	}
	if _, ok := adj[999]; ok {
		t.Errorf("adjacency registered a child under a pid absent from the snapshot")
	}

	// The defining property: c is a child of p iff c.ParentPID == p.PID and
	// both are present.
	for parent, kids := range adj {
		if _, ok := s.Procs[parent]; !ok {
			t.Errorf("parent %d not in snapshot", parent)
		}
		for _, c := range kids {
			rec, ok := s.Procs[c]
			if !ok {
				t.Errorf("child %d not in snapshot", c)
				continue
			}
			if rec.ParentPID != parent {
				t.Errorf("child %d registered under %d, ParentPID is %d", c, parent, rec.ParentPID)
			}
		}
	}
}

func TestFindRoots(t *testing.T) {
	tests := []struct {
		name    string
		recs    []model.ProcessRecord
		matched []model.PID
		want    []model.PID
	}{
		{
			"no parent makes a root",
			[]model.ProcessRecord{proc(10, 0, "app", 0)},
			[]model.PID{10},
			[]model.PID{10},
		},
		{
			"parent outside the matching set makes a root",
			[]model.ProcessRecord{
				proc(5, 0, "shell", 0),
				proc(10, 5, "app", 0),
				proc(11, 10, "app", 0),
			},
			[]model.PID{10, 11},
			[]model.PID{10},
		},
		{
			"parent is the supervisor even when matched",
			[]model.ProcessRecord{
				proc(1, 0, "app", 0),
				proc(10, 1, "app", 0),
			},
			[]model.PID{1, 10},
			[]model.PID{1, 10},
		},
		{
			"parent absent from the snapshot",
			[]model.ProcessRecord{proc(10, 999, "app", 0)},
			[]model.PID{10},
			[]model.PID{10},
		},
		{
			"chain of matches has one root",
			[]model.ProcessRecord{
				proc(10, 5, "app", 0),
				proc(11, 10, "app-child", 0),
				proc(12, 11, "app-grand", 0),
			},
			[]model.PID{10, 11, 12},
			[]model.PID{10},
		},
		{
			"two independent trees",
			[]model.ProcessRecord{
				proc(10, 5, "app", 0),
				proc(11, 10, "app", 0),
				proc(20, 6, "app", 0),
			},
			[]model.PID{10, 11, 20},
			[]model.PID{10, 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := makeSnap(tt.recs...)
			got := findRoots(s, tt.matched)
			if len(got) != len(tt.want) {
				t.Fatalf("findRoots() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("findRoots() = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestExtractTreeIncludesAllDescendants(t *testing.T) {
	// Only pid 10 matches a hypothetical query, but the whole subtree under
	// it belongs to the tree, matching or not.
	s := makeSnap(
		proc(10, 1, "app", 100),
		proc(11, 10, "zygote", 50), // would not match "app"
		proc(12, 11, "renderer", 25),
		proc(13, 10, "app-net", 10),
		proc(99, 1, "unrelated", 7),
	)

	tree := extractTree(s, buildAdjacency(s), 10)
	if tree == nil {
		t.Fatal("extractTree returned nil for a present root")
	}
	for _, pid := range []model.PID{10, 11, 12, 13} {
		if tree.Node(pid) == nil {
			t.Errorf("pid %d missing from the extracted tree", pid)
		}
	}
	if tree.Node(99) != nil {
		t.Errorf("pid 99 is outside the subtree but was extracted")
	}
	if got := tree.Node(10).Children; len(got) != 2 || got[0] != 11 || got[1] != 13 {
		t.Errorf("root children = %v, want [11 13]", got)
	}
}

func TestExtractTreeMissingRoot(t *testing.T) {
	s := makeSnap(
		proc(10, 1, "app", 100),
		proc(11, 10, "app", 50),
	)
	adj := buildAdjacency(s)

	if tree := extractTree(s, adj, 404); tree != nil {
		t.Errorf("extractTree for an absent root = %+v, want nil", tree)
	}
	// Sibling roots still extract.
	if tree := extractTree(s, adj, 10); tree == nil {
		t.Errorf("extractTree for a present root = nil after a missing sibling")
	}
}

func TestExtractTreeSurvivesCorruptedCycle(t *testing.T) {
	// Hand-built cycle: 20 and 21 claim each other as parent. Impossible in a
	// real process table; extraction must still terminate.
	s := makeSnap(
		proc(20, 21, "a", 1),
		proc(21, 20, "b", 2),
	)

	tree := extractTree(s, buildAdjacency(s), 20)
	if tree == nil {
		t.Fatal("extractTree returned nil")
	}
	if tree.Node(20) == nil || tree.Node(21) == nil {
		t.Errorf("cycle members missing: got %d nodes, want 2", len(tree.Nodes))
	}
}

func TestRootPartitionOfMatches(t *testing.T) {
	// Every match is reachable from exactly one root's tree.
	s := makeSnap(
		proc(10, 5, "app", 1),
		proc(11, 10, "app", 2),
		proc(12, 11, "app", 3),
		proc(20, 6, "app", 4),
		proc(21, 20, "app", 5),
	)
	matched := selectMatches(s, "app")
	roots := findRoots(s, matched)
	adj := buildAdjacency(s)

	seen := make(map[model.PID]int)
	for _, r := range roots {
		tree := extractTree(s, adj, r)
		if tree == nil {
			t.Fatalf("extractTree(%d) = nil", r)
		}
		for pid := range tree.Nodes {
			seen[pid]++
		}
	}
	for _, m := range matched {
		if seen[m] != 1 {
			t.Errorf("match %d appears in %d trees, want exactly 1", m, seen[m])
		}
	}
}
