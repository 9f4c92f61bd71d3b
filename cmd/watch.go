package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Moonlight-Companies/gologger/logger"
	"golang.org/x/term"

	"github.com/memtree/memtree/collector"
	"github.com/memtree/memtree/engine"
	"github.com/memtree/memtree/report"
)

// runWatch re-runs the full analysis every opts.Watch seconds until the
// process receives SIGINT or SIGTERM. The first pass runs immediately; the
// screen is cleared between passes only when stdout is a terminal.
func runWatch(prov collector.Provider, opts Options, log *logger.Logger) error {
	r := newRenderer(opts)
	clear := term.IsTerminal(int(os.Stdout.Fd()))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	ticker := time.NewTicker(time.Duration(opts.Watch) * time.Second)
	defer ticker.Stop()

	r.WatchBanner(opts.Watch)

	for {
		if err := watchPass(r, prov, opts, log, clear); err != nil {
			return err
		}
		select {
		case <-sig:
			fmt.Println()
			r.Interrupted()
			return ExitCodeError{Code: 1}
		case <-ticker.C:
		}
	}
}

// watchPass runs one capture-analyze-render cycle. Passes that find no
// matches or no roots print their banner and keep the loop alive; only a
// capture failure aborts the watch.
func watchPass(r *report.Renderer, prov collector.Provider, opts Options, log *logger.Logger, clear bool) error {
	if clear {
		fmt.Print("\033[2J\033[H")
	}
	r.WatchHeader(time.Now(), opts.Watch)
	r.Searching(opts.Query)

	rep, err := analyzePass(context.Background(), prov, opts, log)
	switch {
	case errors.Is(err, engine.ErrNoMatch):
		r.NoMatch(opts.Query)
		return nil
	case errors.Is(err, engine.ErrNoRoot):
		r.Found(rep.MatchCount)
		r.NoRoots()
		return nil
	case err != nil:
		return err
	}

	r.Render(rep)
	return nil
}
