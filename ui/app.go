package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Moonlight-Companies/gologger/logger"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/memtree/memtree/collector"
	"github.com/memtree/memtree/engine"
	"github.com/memtree/memtree/model"
	"github.com/memtree/memtree/report"
)

// Options configures the live view.
type Options struct {
	Interval  time.Duration // refresh period; floored to 1s
	ShowArgs  bool
	NameWidth int
	Log       *logger.Logger
}

type tickMsg time.Time

// passMsg carries the outcome of one capture-analyze pass.
type passMsg struct {
	rep *model.Report
	err error
	dur time.Duration
}

// Model is the bubbletea model for the live view. One page: the same tree
// report the one-shot mode prints, refreshed on a timer.
type Model struct {
	prov  collector.Provider
	query string
	opts  Options

	width  int
	height int

	// Latest pass
	rep      *model.Report
	err      error
	passes   int
	lastPass time.Time
	passDur  time.Duration

	// Controls
	interval time.Duration
	paused   bool
	showArgs bool
	showHelp bool
	scroll   int
}

// NewModel creates the live-view model. Init schedules the first pass.
func NewModel(prov collector.Provider, query string, opts Options) Model {
	if opts.Interval < time.Second {
		opts.Interval = 2 * time.Second
	}
	return Model{
		prov:     prov,
		query:    query,
		opts:     opts,
		interval: opts.Interval,
		showArgs: opts.ShowArgs,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(m.interval), analyzeOnce(m.prov, m.query, m.showArgs, m.opts.Log))
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func analyzeOnce(prov collector.Provider, query string, withArgs bool, log *logger.Logger) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		snap, err := prov.Snapshot(context.Background(), collector.Options{WithArgs: withArgs})
		if err != nil {
			return passMsg{err: err, dur: time.Since(start)}
		}
		an := engine.Analyzer{Log: log}
		rep, err := an.Analyze(snap, query)
		return passMsg{rep: rep, err: err, dur: time.Since(start)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "?":
			m.showHelp = true
		case "a", " ":
			m.paused = !m.paused
			if !m.paused {
				// Resume: schedule next tick immediately
				return m, tea.Batch(tick(m.interval), analyzeOnce(m.prov, m.query, m.showArgs, m.opts.Log))
			}
		case "r":
			// Manual pass; acts as a single step while paused
			return m, analyzeOnce(m.prov, m.query, m.showArgs, m.opts.Log)
		case "v":
			m.showArgs = !m.showArgs
			return m, analyzeOnce(m.prov, m.query, m.showArgs, m.opts.Log)
		case "+", "=":
			m.interval += time.Second
		case "-", "_":
			if m.interval > time.Second {
				m.interval -= time.Second
			}
		case "j", "down":
			m.scroll++
		case "k", "up":
			if m.scroll > 0 {
				m.scroll--
			}
		case "G":
			m.scroll += 20
		case "g":
			m.scroll = 0
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tickMsg:
		if m.paused {
			return m, nil
		}
		return m, tea.Batch(tick(m.interval), analyzeOnce(m.prov, m.query, m.showArgs, m.opts.Log))
	case passMsg:
		m.rep = msg.rep
		m.err = msg.err
		m.passes++
		m.lastPass = time.Now()
		m.passDur = msg.dur
	}
	return m, nil
}

func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}
	if m.width == 0 {
		return "Loading..."
	}
	if m.rep == nil && m.err == nil {
		return "Collecting first sample..."
	}

	lines := strings.Split(m.renderBody(), "\n")
	// Clamp scroll to valid range
	scroll := m.scroll
	if scroll >= len(lines) {
		scroll = len(lines) - 1
	}
	if scroll < 0 {
		scroll = 0
	}
	lines = lines[scroll:]
	// Trim to viewport height (two header lines plus the status bar)
	maxLines := m.height - 3
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}

	return m.renderHeader() + "\n" + strings.Join(lines, "\n") + "\n" + m.renderStatusBar()
}

// renderBody produces the report text for the current pass. The report
// package does the heavy lifting with colors forced on; outcome banners for
// empty passes mirror the one-shot mode.
func (m Model) renderBody() string {
	var buf bytes.Buffer
	r := &report.Renderer{
		Out:       &buf,
		Palette:   report.NewPalette(true),
		ShowArgs:  m.showArgs,
		NameWidth: m.opts.NameWidth,
	}
	switch {
	case errors.Is(m.err, engine.ErrNoMatch):
		r.NoMatch(m.query)
	case errors.Is(m.err, engine.ErrNoRoot):
		if m.rep != nil {
			r.Found(m.rep.MatchCount)
		}
		r.NoRoots()
	case m.err != nil:
		return critStyle.Render(fmt.Sprintf("Capture failed: %v", m.err)) + "\n" +
			dimStyle.Render("Retrying on the next refresh.")
	default:
		r.Render(m.rep)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (m Model) renderHeader() string {
	parts := []string{
		titleStyle.Render("memtree"),
		valueStyle.Render(m.query),
		labelStyle.Render(fmt.Sprintf("every %ds", int(m.interval.Seconds()))),
	}
	if m.passes > 0 {
		parts = append(parts, dimStyle.Render(fmt.Sprintf("#%d %s (%s)",
			m.passes, m.lastPass.Format("15:04:05"), m.passDur.Round(time.Millisecond))))
	}
	if m.showArgs {
		parts = append(parts, okStyle.Render("args"))
	}
	if m.paused {
		parts = append(parts, warnStyle.Render("PAUSED"))
	}
	return " " + strings.Join(parts, "  ") + "\n" + dimStyle.Render(strings.Repeat("─", m.width))
}

func (m Model) renderStatusBar() string {
	return helpStyle.Render(" q quit   a pause   r refresh   v args   +/- interval   j/k scroll   ? help")
}

func (m Model) renderHelp() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("memtree — Live Process-Tree Memory View"))
	sb.WriteString("\n\n")
	sb.WriteString(headerStyle.Render("Controls"))
	sb.WriteString("\n")
	sb.WriteString("  a / space  Toggle auto-refresh (pause/resume)\n")
	sb.WriteString("  r          Run one pass now (steps while paused)\n")
	sb.WriteString("  v          Toggle command-line capture\n")
	sb.WriteString("  + / -      Lengthen / shorten the refresh interval (1s floor)\n")
	sb.WriteString("  j/k        Scroll down/up\n")
	sb.WriteString("  g/G        Top / jump down\n")
	sb.WriteString("  ?          Toggle this help\n")
	sb.WriteString("  q/Ctrl+C   Quit\n")
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Press any key to close"))
	return sb.String()
}
