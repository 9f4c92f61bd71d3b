package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/memtree/memtree/model"
)

// GopsutilProvider captures the process table through the gopsutil process
// API. Works on every platform gopsutil supports; the default provider.
type GopsutilProvider struct{}

func (g *GopsutilProvider) Name() string { return "gopsutil" }

func (g *GopsutilProvider) Snapshot(ctx context.Context, opts Options) (*model.Snapshot, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list processes: %v", ErrSnapshotUnavailable, err)
	}

	snap := model.NewSnapshot(time.Now())
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue // exited or not ours to read
		}

		rec := model.ProcessRecord{
			PID:  model.PID(p.Pid),
			Name: name,
		}

		if ppid, err := p.PpidWithContext(ctx); err == nil && ppid > 0 {
			rec.ParentPID = model.PID(ppid)
			rec.HasParent = true
		}

		// Kernel threads and protected processes report no memory info;
		// they stay in the snapshot with zero RSS.
		if mi, err := p.MemoryInfoWithContext(ctx); err == nil && mi != nil {
			rec.RSSBytes = mi.RSS
		}

		if opts.WithArgs {
			if cmdline, err := p.CmdlineWithContext(ctx); err == nil {
				rec.Cmdline = cmdline
			}
		}

		snap.Add(rec)
	}

	if snap.Len() == 0 {
		return nil, fmt.Errorf("%w: process list came back empty", ErrSnapshotUnavailable)
	}
	return snap, nil
}
