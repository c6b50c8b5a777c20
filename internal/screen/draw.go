package screen

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const (
	minWidth  = 10
	minHeight = 3
	tabWidth  = 8
)

// Rounded border runes.
const (
	runeTopLeft     = '╭'
	runeTopRight    = '╮'
	runeBottomLeft  = '╰'
	runeBottomRight = '╯'
	runeHorizontal  = '─'
	runeVertical    = '│'
)

// drawText writes s starting at (x, y), stopping at column maxX. It returns
// the column after the last cell written.
func drawText(scr tcell.Screen, x, y, maxX int, s string, style tcell.Style) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		scr.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}

// drawBox draws a rounded border around the whole w×h area with title set
// into the top edge.
func drawBox(scr tcell.Screen, w, h int, title string, border, titleStyle tcell.Style) {
	for x := 1; x < w-1; x++ {
		scr.SetContent(x, 0, runeHorizontal, nil, border)
		scr.SetContent(x, h-1, runeHorizontal, nil, border)
	}
	for y := 1; y < h-1; y++ {
		scr.SetContent(0, y, runeVertical, nil, border)
		scr.SetContent(w-1, y, runeVertical, nil, border)
	}
	scr.SetContent(0, 0, runeTopLeft, nil, border)
	scr.SetContent(w-1, 0, runeTopRight, nil, border)
	scr.SetContent(0, h-1, runeBottomLeft, nil, border)
	scr.SetContent(w-1, h-1, runeBottomRight, nil, border)

	if title != "" && w >= 6 {
		drawText(scr, 2, 0, w-2, " "+title+" ", titleStyle)
	}
}

// wrapLines splits body into display rows no wider than width. Tabs are
// expanded and other control characters dropped.
func wrapLines(body string, width int) []string {
	var rows []string
	for _, line := range strings.Split(strings.TrimSuffix(body, "\n"), "\n") {
		line = strings.TrimSuffix(line, "\r")
		var (
			row strings.Builder
			col int
		)
		flush := func() {
			rows = append(rows, row.String())
			row.Reset()
			col = 0
		}
		for _, r := range line {
			if r == '\t' {
				n := tabWidth - col%tabWidth
				for i := 0; i < n; i++ {
					if col == width {
						flush()
						break
					}
					row.WriteByte(' ')
					col++
				}
				continue
			}
			if r < ' ' || r == 0x7f {
				continue
			}
			w := runewidth.RuneWidth(r)
			if col+w > width {
				flush()
			}
			row.WriteRune(r)
			col += w
		}
		flush()
	}
	return rows
}
