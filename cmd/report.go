package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Moonlight-Companies/gologger/logger"

	"github.com/memtree/memtree/collector"
	"github.com/memtree/memtree/engine"
	"github.com/memtree/memtree/model"
	"github.com/memtree/memtree/report"
)

// newRenderer builds the text renderer for one invocation.
func newRenderer(opts Options) *report.Renderer {
	return &report.Renderer{
		Out:       os.Stdout,
		Palette:   report.NewPalette(report.ColorEnabled(opts.NoColor)),
		ShowArgs:  opts.ShowArgs,
		NameWidth: opts.NameWidth,
	}
}

// runReport runs the default one-shot text mode.
func runReport(prov collector.Provider, opts Options, log *logger.Logger) error {
	r := newRenderer(opts)
	r.Searching(opts.Query)

	rep, err := analyzePass(context.Background(), prov, opts, log)
	switch {
	case errors.Is(err, engine.ErrNoMatch):
		r.NoMatch(opts.Query)
		return ExitCodeError{Code: 1}
	case errors.Is(err, engine.ErrNoRoot):
		r.Found(rep.MatchCount)
		r.NoRoots()
		return ExitCodeError{Code: 1}
	case err != nil:
		return err
	}

	r.Render(rep)
	if len(rep.Trees) == 0 {
		// every discovered root vanished before extraction
		return ExitCodeError{Code: 1}
	}
	return nil
}

// runJSON prints a single JSON report. Not-found still emits a valid
// document with zero trees; the exit code carries the outcome.
func runJSON(prov collector.Provider, opts Options, log *logger.Logger) error {
	rep, err := analyzePass(context.Background(), prov, opts, log)
	if notFound(err) {
		if rep == nil {
			rep = &model.Report{Query: opts.Query, TakenAt: time.Now()}
		}
		if encErr := report.RenderJSON(os.Stdout, rep); encErr != nil {
			return encErr
		}
		return ExitCodeError{Code: 1}
	}
	if err != nil {
		return err
	}

	if err := report.RenderJSON(os.Stdout, rep); err != nil {
		return err
	}
	if len(rep.Trees) == 0 {
		return ExitCodeError{Code: 1}
	}
	return nil
}

// runMarkdown prints a single Markdown report.
func runMarkdown(prov collector.Provider, opts Options, log *logger.Logger) error {
	rep, err := analyzePass(context.Background(), prov, opts, log)
	if notFound(err) {
		if rep == nil {
			rep = &model.Report{Query: opts.Query, TakenAt: time.Now()}
		}
		fmt.Print(report.RenderMarkdown(rep))
		return ExitCodeError{Code: 1}
	}
	if err != nil {
		return err
	}

	fmt.Print(report.RenderMarkdown(rep))
	if len(rep.Trees) == 0 {
		return ExitCodeError{Code: 1}
	}
	return nil
}

// notFound reports whether err is a logical no-result outcome rather than a
// capture failure.
func notFound(err error) bool {
	return errors.Is(err, engine.ErrNoMatch) || errors.Is(err, engine.ErrNoRoot)
}
