package engine

import (
	"errors"
	"fmt"

	"github.com/Moonlight-Companies/gologger/logger"

	"github.com/memtree/memtree/model"
)

// Logical analysis outcomes. Both map to a not-found exit in the CLI, as
// opposed to a hard provider failure.
var (
	ErrNoMatch = errors.New("no matching processes")
	ErrNoRoot  = errors.New("no root processes")
)

// Analyzer runs one analysis pass over a snapshot. The zero value is ready to
// use; Log enables diagnostics when set.
type Analyzer struct {
	Log *logger.Logger
}

// Analyze selects matches, discovers roots, extracts each root's full
// subtree, ranks nodes by the tree's top-3 distinct RSS values and fills in
// aggregates. The result is deterministic for a fixed (snapshot, query) pair.
//
// Returns ErrNoMatch (nil report) when nothing matched, ErrNoRoot (report
// with the match count) when matches had no roots. A root that vanished
// between discovery and extraction lands in FailedRoots without failing the
// pass; callers decide what an empty tree set means for them.
func (a *Analyzer) Analyze(snap *model.Snapshot, query string) (*model.Report, error) {
	matched := selectMatches(snap, query)
	if a.Log != nil {
		a.Log.Debugln("query", query, "matched", len(matched), "of", snap.Len(), "processes")
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("%q: %w", query, ErrNoMatch)
	}

	rep := &model.Report{
		Query:      query,
		TakenAt:    snap.TakenAt,
		MatchCount: len(matched),
	}

	roots := findRoots(snap, matched)
	if a.Log != nil {
		a.Log.Debugln("roots:", roots)
	}
	if len(roots) == 0 {
		return rep, fmt.Errorf("%q: %w", query, ErrNoRoot)
	}

	children := buildAdjacency(snap)
	for _, root := range roots {
		t := extractTree(snap, children, root)
		if t == nil {
			if a.Log != nil {
				a.Log.Infoln("root vanished before extraction:", root)
			}
			rep.FailedRoots = append(rep.FailedRoots, root)
			continue
		}
		rankTree(t)
		aggregateTree(t)
		if a.Log != nil {
			m1, m2, m3 := treeMaxima(t)
			a.Log.Debugln("tree", root, "nodes", t.Stats.ProcessCount, "maxima", m1, m2, m3)
		}
		rep.Trees = append(rep.Trees, *t)
	}

	return rep, nil
}
