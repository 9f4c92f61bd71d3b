package collector

import (
	"context"
	"errors"
	"fmt"

	"github.com/memtree/memtree/model"
)

// ErrSnapshotUnavailable marks a capture that produced no process data at
// all. Per-process read failures (exited, permission denied) are not errors:
// those processes are simply absent from the snapshot.
var ErrSnapshotUnavailable = errors.New("process snapshot unavailable")

// Options tune one capture.
type Options struct {
	WithArgs bool // also capture full command lines
}

// Provider captures a flat, consistent view of the process table. The
// returned snapshot has a unique pid set and a stable iteration order.
type Provider interface {
	Name() string
	Snapshot(ctx context.Context, opts Options) (*model.Snapshot, error)
}

// Select maps a -source value to a provider. "auto" picks the portable
// process API.
func Select(source string) (Provider, error) {
	switch source {
	case "", "auto", "gopsutil":
		return &GopsutilProvider{}, nil
	case "ps":
		return NewPSProvider(), nil
	case "proc":
		return NewProcProvider()
	}
	return nil, fmt.Errorf("unknown snapshot source %q (want auto, gopsutil, ps or proc)", source)
}
