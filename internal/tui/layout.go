package tui

// Minimum terminal size that still fits a border around one line of output.
const (
	minWidth  = 10
	minHeight = 3
)

// Rect represents a rectangular region of the terminal.
type Rect struct {
	X, Y, Width, Height int
}

// Layout holds the computed panel geometry for a given terminal size.
type Layout struct {
	Panel    Rect // the whole bordered panel
	Body     Rect // the region inside the border
	TooSmall bool // true when the terminal is below minWidth×minHeight
}

// Calculate computes the panel layout for a terminal of the given dimensions.
// The panel fills the terminal; the body is the panel minus a one-cell border.
func Calculate(width, height int) Layout {
	if width < minWidth || height < minHeight {
		return Layout{TooSmall: true}
	}
	panel := Rect{X: 0, Y: 0, Width: width, Height: height}
	return Layout{
		Panel: panel,
		Body:  innerRect(panel),
	}
}

func innerRect(r Rect) Rect {
	return Rect{X: r.X + 1, Y: r.Y + 1, Width: r.Width - 2, Height: r.Height - 2}
}
