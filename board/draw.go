package board

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tarski/figure"
)

const (
	panelWidth  = 38
	boardExtent = 1.0 // world units from centre to board edge
	helpLine    = "Tab select  Space grab  ←↑↓→ PgUp/PgDn move  r rotate  c paint  1-3 level  m mute  q quit"
)

var (
	styleDefault = tcell.StyleDefault
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleOK      = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleFail    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleBanner  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen).Bold(true)
	styleFrame   = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
)

// Draw renders the full frame
func (b *Board) Draw() {
	b.screen.Clear()
	w, h := b.screen.Size()
	bw := w - panelWidth
	if bw < 10 {
		bw = w
	}

	b.drawBoard(bw, h-1)
	if bw < w {
		b.drawPanel(bw+1, w-bw-1, h-1)
	}
	drawText(b.screen, 0, h-1, w, helpLine, styleDim)

	if banner := b.Banner(); banner != "" {
		x := (bw - len([]rune(banner)) - 4) / 2
		if x < 0 {
			x = 0
		}
		drawText(b.screen, x, h/2, bw, "  "+banner+"  ", styleBanner)
	}
	b.screen.Show()
}

// drawBoard projects figures top-down: x to columns, z to rows
func (b *Board) drawBoard(w, h int) {
	for y := 0; y < h; y++ {
		b.screen.SetContent(w, y, '│', nil, styleFrame)
	}
	if b.world == nil {
		drawText(b.screen, 1, 0, w-1, "no scene", styleDim)
		return
	}

	store := b.world.Store
	for i := 0; i < store.Len(); i++ {
		f := store.Get(i)
		if f == nil || !f.Present {
			continue
		}
		x, y, ok := project(f.Position.X, f.Position.Z, w, h)
		if !ok {
			continue
		}

		style := styleDefault
		if c, has := store.Color(i); has {
			style = style.Foreground(tcell.NewHexColor(int32(c)))
		}
		if i == b.selected {
			style = style.Reverse(true)
		}
		if i == b.grabbed {
			style = style.Bold(true).Underline(true)
		}
		b.screen.SetContent(x, y, glyph(f), nil, style)

		if fx, fy, ok := project(f.Position.X+f.Forward.X*0.08, f.Position.Z+f.Forward.Z*0.08, w, h); ok && (fx != x || fy != y) {
			b.screen.SetContent(fx, fy, '·', nil, styleDim)
		}
	}

	if f := store.Get(b.selected); f != nil {
		info := fmt.Sprintf("%s (%.2f, %.2f, %.2f)", f.Label(), f.Position.X, f.Position.Y, f.Position.Z)
		if b.grabbed == b.selected {
			info += " [held]"
		}
		drawText(b.screen, 1, 0, w-1, info, styleDefault)
	}
}

func (b *Board) drawPanel(x, w, h int) {
	p := b.panel.Snapshot()
	y := 0
	drawText(b.screen, x, y, w, fmt.Sprintf("%s  [%s]", p.Label, b.tier), styleDefault.Bold(true))
	y++
	drawText(b.screen, x, y, w, progressBar(p.Fraction, w-8)+fmt.Sprintf(" %3.0f%%", p.Fraction*100), styleDefault)
	y += 2

	for _, row := range b.panel.Rows() {
		if y >= h-2 {
			break
		}
		mark, style := "  ", styleDim
		if row.InLevel {
			if row.Active {
				mark, style = "✓ ", styleOK
			} else {
				mark, style = "✗ ", styleFail
			}
		}
		drawText(b.screen, x, y, w, mark+row.Name, style)
		y++
	}

	if b.message != "" {
		drawText(b.screen, x, h-1, w, b.message, styleDim)
	}
}

// project maps world x/z onto a w×h cell grid
func project(x, z float64, w, h int) (int, int, bool) {
	if w <= 1 || h <= 1 {
		return 0, 0, false
	}
	cx := int(math.Round((x + boardExtent) / (2 * boardExtent) * float64(w-1)))
	cy := int(math.Round((z + boardExtent) / (2 * boardExtent) * float64(h-1)))
	if cx < 0 || cx >= w || cy < 0 || cy >= h {
		return 0, 0, false
	}
	return cx, cy, true
}

func glyph(f *figure.Figure) rune {
	for _, r := range f.Label() {
		return r
	}
	return '?'
}

func progressBar(frac float64, width int) string {
	if width < 1 {
		return ""
	}
	filled := int(math.Round(frac * float64(width)))
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func drawText(s tcell.Screen, x, y, maxW int, text string, style tcell.Style) {
	i := 0
	for _, r := range text {
		if i >= maxW {
			return
		}
		s.SetContent(x+i, y, r, nil, style)
		i++
	}
}
