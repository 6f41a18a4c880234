package window

import (
	"fmt"

	"github.com/dledwards/ped/internal/grid"
)

// minBannerWidth is the width below which a banner renders as blank
// spaces only (spec §4.5).
const minBannerWidth = 16

const bannerPad = 2

// Banner is a single-row status display: dirty flag, title, and cursor
// location, with a configurable color pair.
type Banner struct {
	dirty    bool
	source   string
	syntax   string
	location string
	fg, bg   uint8
}

// NewBanner returns an empty banner.
func NewBanner() *Banner {
	return &Banner{fg: 0, bg: 7}
}

// SetDirty records whether the attached buffer has unsaved changes.
func (b *Banner) SetDirty(dirty bool) { b.dirty = dirty }

// SetSource records the buffer's source identity (path, ephemeral name,
// or the empty string for Null).
func (b *Banner) SetSource(source string) { b.source = source }

// SetSyntax records the active syntax name, appended to the title.
func (b *Banner) SetSyntax(syntax string) { b.syntax = syntax }

// SetLocation records the cursor's human-readable "line:col" position.
func (b *Banner) SetLocation(location string) { b.location = location }

// SetColors sets the banner's foreground/background color pair.
func (b *Banner) SetColors(fg, bg uint8) { b.fg, b.bg = fg, bg }

func (b *Banner) title() string {
	if b.source == "" {
		return "[No Name]"
	}
	if b.syntax == "" {
		return b.source
	}
	return fmt.Sprintf("%s [%s]", b.source, b.syntax)
}

func (b *Banner) dirtyFlag() string {
	if b.dirty {
		return "*"
	}
	return " "
}

// Draw renders the banner into a row of width cells: 2 left pad + dirty
// flag + title + gap + location + 2 right pad (spec §4.5). Below
// minBannerWidth it renders blank. When the content doesn't fit, the
// location is dropped first; if the title alone still doesn't fit, it is
// right-truncated.
func (b *Banner) Draw(width int) []grid.Cell {
	cells := make([]grid.Cell, width)
	for i := range cells {
		cells[i] = grid.Cell{Rune: ' ', Fg: b.fg, Bg: b.bg}
	}
	if width < minBannerWidth {
		return cells
	}

	title := b.title()
	location := b.location
	flag := b.dirtyFlag()

	// left pad(2) + flag(1) + title + gap(1) + location + right pad(2)
	fixed := bannerPad + 1 + 1 + bannerPad
	avail := width - fixed
	if avail < 0 {
		avail = 0
	}

	if len(title)+len(location) > avail {
		location = ""
		fixed = bannerPad + 1 + bannerPad
		avail = width - fixed
		if avail < 0 {
			avail = 0
		}
		if len(title) > avail {
			title = truncate(title, avail)
		}
	}

	line := make([]rune, 0, width)
	for i := 0; i < bannerPad; i++ {
		line = append(line, ' ')
	}
	line = append(line, []rune(flag)...)
	line = append(line, []rune(title)...)
	if location != "" {
		line = append(line, ' ')
		line = append(line, []rune(location)...)
	}
	for i := 0; i < bannerPad && len(line) < width; i++ {
		line = append(line, ' ')
	}

	for i, r := range line {
		if i >= width {
			break
		}
		cells[i] = grid.Cell{Rune: r, Fg: b.fg, Bg: b.bg}
	}
	return cells
}

// truncate right-truncates s to at most n runes, appending an ellipsis
// marker when it had to cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
