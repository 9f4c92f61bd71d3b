package collector

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/memtree/memtree/model"
)

// commandRunner abstracts command execution so tests can feed canned output.
type commandRunner interface {
	run(ctx context.Context, name string, args ...string) (string, error)
}

type execRunner struct{}

func (execRunner) run(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	return string(out), err
}

// PSProvider shells out to ps. It exists for systems where the native
// process API misbehaves, and as the reference for what a string-parsed
// snapshot must look like. Behind the same Provider contract as the others.
type PSProvider struct {
	runner commandRunner
}

func NewPSProvider() *PSProvider {
	return &PSProvider{runner: execRunner{}}
}

func (p *PSProvider) Name() string { return "ps" }

func (p *PSProvider) Snapshot(ctx context.Context, opts Options) (*model.Snapshot, error) {
	// comm is last: it is the only column that can contain spaces. The "="
	// forms suppress the header. -c on darwin reports the short executable
	// name instead of the full path.
	args := []string{"-axo", "pid=,ppid=,rss=,comm="}
	if runtime.GOOS == "darwin" {
		args = append([]string{"-c"}, args...)
	}

	out, err := p.runner.run(ctx, "ps", args...)
	if err != nil {
		return nil, fmt.Errorf("%w: run ps: %v", ErrSnapshotUnavailable, err)
	}

	snap := model.NewSnapshot(time.Now())
	for _, line := range strings.Split(out, "\n") {
		rec, ok := parsePSLine(line)
		if !ok {
			continue
		}
		snap.Add(rec)
	}
	if snap.Len() == 0 {
		return nil, fmt.Errorf("%w: ps produced no parseable output", ErrSnapshotUnavailable)
	}

	if opts.WithArgs {
		p.attachArgs(ctx, snap)
	}
	return snap, nil
}

// parsePSLine parses "PID PPID RSS COMM", RSS in KiB. Lines that do not
// start with three integers are skipped.
func parsePSLine(line string) (model.ProcessRecord, bool) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return model.ProcessRecord{}, false
	}

	pid, err := strconv.ParseInt(fields[0], 10, 32)
	if err != nil || pid <= 0 {
		return model.ProcessRecord{}, false
	}
	ppid, err := strconv.ParseInt(fields[1], 10, 32)
	if err != nil {
		return model.ProcessRecord{}, false
	}
	rssKB, err := strconv.ParseUint(fields[2], 10, 64)
	if err != nil {
		return model.ProcessRecord{}, false
	}

	rec := model.ProcessRecord{
		PID:      model.PID(pid),
		Name:     strings.Join(fields[3:], " "),
		RSSBytes: rssKB * 1024,
	}
	if ppid > 0 {
		rec.ParentPID = model.PID(ppid)
		rec.HasParent = true
	}
	return rec, true
}

// attachArgs runs a second ps pass for command lines. Best effort: a failed
// pass leaves the snapshot without Cmdline rather than failing the capture.
func (p *PSProvider) attachArgs(ctx context.Context, snap *model.Snapshot) {
	out, err := p.runner.run(ctx, "ps", "-axo", "pid=,args=")
	if err != nil {
		return
	}
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		pid, err := strconv.ParseInt(fields[0], 10, 32)
		if err != nil {
			continue
		}
		rec, ok := snap.Get(model.PID(pid))
		if !ok {
			continue
		}
		rec.Cmdline = strings.Join(fields[1:], " ")
		snap.Procs[rec.PID] = rec
	}
}
