package report

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/memtree/memtree/model"
)

// Palette holds every style the text report uses. A disabled palette passes
// strings through unstyled, so the renderer never branches on color mode.
type Palette struct {
	header  *color.Color // section headers
	banner  *color.Color // separators and the search banner
	success *color.Color
	alert   *color.Color // not-found and failure lines
	label   *color.Color // summary labels
	query   *color.Color // query echo in the search banner
	glyph   *color.Color // tree branch characters
	pidRoot *color.Color
	pid     *color.Color
	name    *color.Color

	rankFirst  *color.Color
	rankSecond *color.Color
	rankThird  *color.Color

	memLow      *color.Color // < 10MB
	memModerate *color.Color // < 100MB
	memHigh     *color.Color // < 500MB
	memSevere   *color.Color
}

// NewPalette builds the report styles. enabled forces colors on or off
// regardless of what the color package autodetected for stdout.
func NewPalette(enabled bool) *Palette {
	p := &Palette{
		header:  color.New(color.FgCyan, color.Bold),
		banner:  color.New(color.FgYellow, color.Bold),
		success: color.New(color.FgGreen, color.Bold),
		alert:   color.New(color.FgRed, color.Bold),
		label:   color.New(color.FgHiBlack, color.Bold),
		query:   color.New(color.FgCyan),
		glyph:   color.New(color.FgCyan),
		pidRoot: color.New(color.FgHiBlack, color.Bold),
		pid:     color.New(color.FgHiBlue, color.Bold),
		name:    color.New(color.FgBlue, color.Bold),

		rankFirst:  color.New(color.FgWhite, color.BgRed, color.Bold),
		rankSecond: color.New(color.FgWhite, color.BgMagenta, color.Bold),
		rankThird:  color.New(color.FgBlack, color.BgCyan, color.Bold),

		memLow:      color.New(color.FgGreen),
		memModerate: color.New(color.FgYellow),
		memHigh:     color.New(color.FgMagenta),
		memSevere:   color.New(color.FgRed),
	}
	for _, c := range p.all() {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *Palette) all() []*color.Color {
	return []*color.Color{
		p.header, p.banner, p.success, p.alert, p.label, p.query, p.glyph,
		p.pidRoot, p.pid, p.name,
		p.rankFirst, p.rankSecond, p.rankThird,
		p.memLow, p.memModerate, p.memHigh, p.memSevere,
	}
}

// memory picks the style for a memory figure. Rank backgrounds win over the
// magnitude scale.
func (p *Palette) memory(rank model.MemoryRank, bytes uint64) *color.Color {
	switch rank {
	case model.RankFirst:
		return p.rankFirst
	case model.RankSecond:
		return p.rankSecond
	case model.RankThird:
		return p.rankThird
	}
	switch mb := bytes / (1024 * 1024); {
	case mb < 10:
		return p.memLow
	case mb < 100:
		return p.memModerate
	case mb < 500:
		return p.memHigh
	default:
		return p.memSevere
	}
}

// ColorEnabled decides whether stdout gets colors: not when the user said
// no, not when NO_COLOR is set, not when stdout is no terminal.
func ColorEnabled(noColorFlag bool) bool {
	if noColorFlag {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
