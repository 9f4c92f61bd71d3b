//go:build linux

package collector

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/memtree/memtree/model"
	"github.com/memtree/memtree/util"
)

// ProcProvider reads the process table straight from /proc. Root is the
// mount point, overridable so tests can point it at a fixture tree.
type ProcProvider struct {
	Root string
}

// NewProcProvider returns the native /proc provider.
func NewProcProvider() (Provider, error) {
	return &ProcProvider{Root: "/proc"}, nil
}

func (p *ProcProvider) Name() string { return "proc" }

func (p *ProcProvider) Snapshot(ctx context.Context, opts Options) (*model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root := p.Root
	if root == "" {
		root = "/proc"
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrSnapshotUnavailable, root, err)
	}

	// ReadDir sorts lexically; collect pids and sort numerically so children
	// come out in pid order.
	var pids []int
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if pid := util.ParseInt(e.Name()); pid > 0 {
			pids = append(pids, pid)
		}
	}
	sort.Ints(pids)

	snap := model.NewSnapshot(time.Now())
	for _, pid := range pids {
		rec, err := readProcEntry(filepath.Join(root, fmt.Sprint(pid)), model.PID(pid), opts.WithArgs)
		if err != nil {
			continue // exited between ReadDir and the read
		}
		snap.Add(rec)
	}
	if snap.Len() == 0 {
		return nil, fmt.Errorf("%w: no readable process entries under %s", ErrSnapshotUnavailable, root)
	}
	return snap, nil
}

// readProcEntry assembles one record from a /proc/<pid> directory: name from
// comm (stat's parenthesized field as fallback), ppid from stat, RSS from
// status VmRSS. Kernel threads have no VmRSS and keep zero RSS.
func readProcEntry(dir string, pid model.PID, withArgs bool) (model.ProcessRecord, error) {
	rec := model.ProcessRecord{PID: pid}

	stat, err := util.ReadFileString(filepath.Join(dir, "stat"))
	if err != nil {
		return rec, err
	}
	name, ppid, err := parseStat(stat)
	if err != nil {
		return rec, err
	}
	rec.Name = name
	if ppid > 0 {
		rec.ParentPID = model.PID(ppid)
		rec.HasParent = true
	}

	// comm carries the same name without stat's escaping quirks; prefer it.
	if comm, err := util.ReadFileString(filepath.Join(dir, "comm")); err == nil {
		if c := strings.TrimSpace(comm); c != "" {
			rec.Name = c
		}
	}

	if kv, err := util.ParseKeyValueFile(filepath.Join(dir, "status")); err == nil {
		rec.RSSBytes = util.ParseUint64(kv["VmRSS"]) * 1024
	}

	if withArgs {
		if raw, err := os.ReadFile(filepath.Join(dir, "cmdline")); err == nil && len(raw) > 0 {
			rec.Cmdline = strings.TrimSpace(strings.ReplaceAll(string(raw), "\x00", " "))
		}
	}

	return rec, nil
}

// parseStat extracts comm and ppid from /proc/<pid>/stat. comm may contain
// spaces and parentheses, so it is bounded by the first '(' and the LAST ')'.
func parseStat(content string) (name string, ppid int, err error) {
	openIdx := strings.IndexByte(content, '(')
	closeIdx := strings.LastIndexByte(content, ')')
	if openIdx < 0 || closeIdx < 0 || closeIdx <= openIdx {
		return "", 0, fmt.Errorf("malformed stat line")
	}
	name = content[openIdx+1 : closeIdx]

	rest := strings.Fields(content[closeIdx+1:])
	if len(rest) < 2 {
		return "", 0, fmt.Errorf("stat line too short")
	}
	// rest[0] is the state; rest[1] the ppid.
	return name, util.ParseInt(rest[1]), nil
}
