package engine

import "github.com/memtree/memtree/model"

// supervisorPID is the well-known top-level supervisor (init/launchd).
// A match parented directly to it anchors its own tree.
const supervisorPID model.PID = 1

// buildAdjacency maps every parent pid in the snapshot to its children, in
// snapshot iteration order. Children are registered only when the parent pid
// is itself present in the snapshot.
func buildAdjacency(snap *model.Snapshot) map[model.PID][]model.PID {
	children := make(map[model.PID][]model.PID)
	for _, pid := range snap.Order {
		rec := snap.Procs[pid]
		if !rec.HasParent {
			continue
		}
		if _, ok := snap.Procs[rec.ParentPID]; !ok {
			continue
		}
		children[rec.ParentPID] = append(children[rec.ParentPID], pid)
	}
	return children
}

// selectMatches returns the pids whose name matches the query, in snapshot
// iteration order.
func selectMatches(snap *model.Snapshot, query string) []model.PID {
	var matched []model.PID
	for _, pid := range snap.Order {
		if Matches(snap.Procs[pid].Name, query) {
			matched = append(matched, pid)
		}
	}
	return matched
}

// findRoots classifies each match as root or non-root, in match order.
// A match is a root when its parent cannot anchor it: no known parent, parent
// outside the matching set, parent is the supervisor, or parent missing from
// the snapshot (exited between reads). Computed once over the full matching
// set so a match is never counted as a root twice.
func findRoots(snap *model.Snapshot, matched []model.PID) []model.PID {
	inMatch := make(map[model.PID]bool, len(matched))
	for _, pid := range matched {
		inMatch[pid] = true
	}

	var roots []model.PID
	for _, pid := range matched {
		rec, ok := snap.Procs[pid]
		if !ok {
			continue
		}
		if !rec.HasParent {
			roots = append(roots, pid)
			continue
		}
		if !inMatch[rec.ParentPID] || rec.ParentPID == supervisorPID {
			roots = append(roots, pid)
			continue
		}
		if _, present := snap.Procs[rec.ParentPID]; !present {
			roots = append(roots, pid)
		}
	}
	return roots
}

// extractTree builds the full subtree under root: every descendant reachable
// through the adjacency is included whether or not it matches the query.
// Matching selects roots, not tree membership. Returns nil when the root pid
// is no longer in the snapshot.
func extractTree(snap *model.Snapshot, children map[model.PID][]model.PID, root model.PID) *model.Tree {
	if _, ok := snap.Procs[root]; !ok {
		return nil
	}

	t := &model.Tree{
		Root:  root,
		Nodes: make(map[model.PID]*model.ProcessNode),
	}

	// The OS parent/child relation is acyclic; the visited set only guards
	// against a corrupted snapshot.
	visited := make(map[model.PID]bool)
	var visit func(pid model.PID)
	visit = func(pid model.PID) {
		if visited[pid] {
			return
		}
		visited[pid] = true
		rec, ok := snap.Procs[pid]
		if !ok {
			return
		}
		n := &model.ProcessNode{ProcessRecord: rec}
		for _, c := range children[pid] {
			if visited[c] {
				continue
			}
			n.Children = append(n.Children, c)
		}
		t.Nodes[pid] = n
		for _, c := range n.Children {
			visit(c)
		}
	}
	visit(root)
	return t
}
