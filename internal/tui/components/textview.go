// Package components provides reusable TUI components for the watch panel.
package components

import (
	"github.com/charmbracelet/bubbles/viewport"
)

// TextView shows a block of text clipped to a fixed size. Long lines wrap
// and anything past the last row is cut off; there is no scrolling.
type TextView struct {
	vp      viewport.Model
	content string
	width   int
	height  int
}

// NewTextView creates an empty TextView of the given size.
func NewTextView(w, h int) TextView {
	w, h = clampSize(w, h)
	return TextView{
		vp:     viewport.New(w, h),
		width:  w,
		height: h,
	}
}

// SetContent replaces the displayed text and shows it from the top.
func (v TextView) SetContent(s string) TextView {
	v.content = s
	v.vp.SetContent(s)
	v.vp.GotoTop()
	return v
}

// SetSize resizes the view, keeping its content.
func (v TextView) SetSize(w, h int) TextView {
	w, h = clampSize(w, h)
	v.width = w
	v.height = h
	v.vp.Width = w
	v.vp.Height = h
	v.vp.SetContent(v.content)
	v.vp.GotoTop()
	return v
}

// Size returns the view's width and height.
func (v TextView) Size() (w, h int) {
	return v.width, v.height
}

// View renders exactly Size() worth of text.
func (v TextView) View() string {
	return v.vp.View()
}

func clampSize(w, h int) (int, int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
