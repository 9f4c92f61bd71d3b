package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/memtree/memtree/collector"
	"github.com/memtree/memtree/config"
	"github.com/memtree/memtree/engine"
	"github.com/memtree/memtree/model"
	"github.com/memtree/memtree/ui"
)

// Version is set at build time via ldflags.
var Version = "0.3.0"

// Options holds the resolved CLI configuration for one invocation:
// defaults, overridden by the config file, overridden by flags.
type Options struct {
	Query     string
	Watch     int // seconds between watch passes; 0 = one-shot
	ShowArgs  bool
	NoColor   bool
	JSONMode  bool
	MDMode    bool
	TUIMode   bool
	Source    string
	Interval  int // tui refresh seconds
	NameWidth int
	Debug     bool
}

// ExitCodeError signals a non-zero exit code without calling os.Exit directly.
type ExitCodeError struct{ Code int }

func (e ExitCodeError) Error() string { return fmt.Sprintf("exit %d", e.Code) }

func printUsage() {
	fmt.Fprintf(os.Stderr, `memtree v%s — Process-tree memory analyzer

Usage:
  memtree [OPTIONS] <process-name>

Modes:
  (default)         One-shot tree report to stdout
  -t, -watch N      Re-run the analysis every N seconds until Ctrl+C
  -tui              Interactive live view (bubbletea, fullscreen)
  -json             Single JSON report to stdout, then exit
  -markdown         Single Markdown report to stdout, then exit
  -version          Print version and exit

Options:
  -v, -args         Capture and show full command lines
  -no-color         Disable colored output (NO_COLOR env is honored too)
  -source NAME      Snapshot source: auto, gopsutil, ps, proc (default: auto)
  -interval N       Refresh interval in seconds for -tui (default: from config)
  -debug            Diagnostic logging to stderr

Matching tolerates OS name truncation, paths, .exe/.app/.bin/.run suffixes
and spaces, so "chrome" finds "Google Chrome Helper" and vice versa.

Examples:
  memtree chrome                    All chrome trees with memory ranking
  memtree -v postgres               postgres trees with command lines
  memtree -t 5 nginx                Re-analyze nginx every 5 seconds
  memtree -json chrome | jq '.trees[0].stats'
  memtree -markdown chrome > report.md
  memtree -tui chrome               Live view
  memtree -source ps chrome         Force the ps parser
  memtree -version
`, Version)
}

// Run parses flags and starts the application.
func Run() error {
	cfg := config.Load()

	var opts Options
	var showVersion bool

	flag.IntVar(&opts.Watch, "watch", 0, "Re-run every N seconds (0 = one-shot)")
	flag.IntVar(&opts.Watch, "t", 0, "Shorthand for -watch")
	flag.BoolVar(&opts.ShowArgs, "args", cfg.ShowArgs, "Capture and show full command lines")
	flag.BoolVar(&opts.ShowArgs, "v", cfg.ShowArgs, "Shorthand for -args")
	flag.BoolVar(&opts.NoColor, "no-color", cfg.NoColor, "Disable colored output")
	flag.BoolVar(&opts.JSONMode, "json", false, "Output a single JSON report and exit")
	flag.BoolVar(&opts.MDMode, "markdown", false, "Output a single Markdown report and exit")
	flag.BoolVar(&opts.TUIMode, "tui", false, "Interactive live view")
	flag.StringVar(&opts.Source, "source", cfg.Source, "Snapshot source: auto, gopsutil, ps, proc")
	flag.IntVar(&opts.Interval, "interval", cfg.IntervalSec, "Refresh interval in seconds for -tui")
	flag.BoolVar(&opts.Debug, "debug", false, "Diagnostic logging to stderr")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")

	flag.Usage = printUsage
	flag.Parse()

	if showVersion {
		fmt.Printf("memtree v%s\n", Version)
		return nil
	}

	opts.NameWidth = cfg.NameWidth

	if flag.NArg() < 1 || flag.Arg(0) == "" {
		printUsage()
		return ExitCodeError{Code: 2}
	}
	opts.Query = flag.Arg(0)

	if err := validateModes(opts); err != nil {
		return err
	}

	provider, err := collector.Select(opts.Source)
	if err != nil {
		return err
	}

	var log *logger.Logger
	if opts.Debug {
		log = logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "memtree"))
		log.Infoln("snapshot source:", provider.Name())
	}

	switch {
	case opts.JSONMode:
		return runJSON(provider, opts, log)
	case opts.MDMode:
		return runMarkdown(provider, opts, log)
	case opts.Watch != 0:
		return runWatch(provider, opts, log)
	case opts.TUIMode:
		m := ui.NewModel(provider, opts.Query, ui.Options{
			Interval:  time.Duration(opts.Interval) * time.Second,
			ShowArgs:  opts.ShowArgs,
			NameWidth: opts.NameWidth,
			Log:       log,
		})
		p := tea.NewProgram(m, tea.WithAltScreen())
		_, err := p.Run()
		return err
	}
	return runReport(provider, opts, log)
}

// validateModes rejects contradictory flag combinations.
func validateModes(opts Options) error {
	if opts.Watch < 0 {
		return fmt.Errorf("watch interval must be greater than 0")
	}
	modes := 0
	for _, on := range []bool{opts.JSONMode, opts.MDMode, opts.Watch != 0, opts.TUIMode} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return fmt.Errorf("pick one of -watch, -json, -markdown, -tui")
	}
	if opts.Interval < 1 {
		return fmt.Errorf("interval must be at least 1 second")
	}
	return nil
}

// analyzePass takes one fresh snapshot and runs the analyzer over it.
func analyzePass(ctx context.Context, prov collector.Provider, opts Options, log *logger.Logger) (*model.Report, error) {
	start := time.Now()
	snap, err := prov.Snapshot(ctx, collector.Options{WithArgs: opts.ShowArgs})
	if err != nil {
		return nil, err
	}
	if log != nil {
		log.Debugln("snapshot:", snap.Len(), "processes via", prov.Name(), "in", time.Since(start).String())
	}

	an := engine.Analyzer{Log: log}
	return an.Analyze(snap, opts.Query)
}
