package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNewTextView(t *testing.T) {
	v := NewTextView(40, 10)
	if w, h := v.Size(); w != 40 || h != 10 {
		t.Errorf("Size() = %dx%d, want 40x10", w, h)
	}
	if strings.TrimSpace(v.View()) != "" {
		t.Errorf("View() = %q, want blank", v.View())
	}
}

func TestNewTextView_ClampsSize(t *testing.T) {
	v := NewTextView(0, -3)
	if w, h := v.Size(); w != 1 || h != 1 {
		t.Errorf("Size() = %dx%d, want 1x1", w, h)
	}
}

func TestTextView_SetContent(t *testing.T) {
	v := NewTextView(40, 5).SetContent("alpha\nbeta")
	view := v.View()
	for _, want := range []string{"alpha", "beta"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q: %q", want, view)
		}
	}
}

func TestTextView_ClipsToHeight(t *testing.T) {
	lines := make([]string, 20)
	for i := range lines {
		lines[i] = strings.Repeat("x", i+1)
	}
	v := NewTextView(30, 4).SetContent(strings.Join(lines, "\n"))

	view := v.View()
	if got := lipgloss.Height(view); got > 4 {
		t.Errorf("View() height = %d, want at most 4", got)
	}
	if !strings.Contains(view, "x") {
		t.Errorf("View() should show the first lines, got %q", view)
	}
	if strings.Contains(view, strings.Repeat("x", 20)) {
		t.Error("View() should not show lines past the bottom")
	}
}

func TestTextView_SetSizeKeepsContent(t *testing.T) {
	v := NewTextView(10, 2).SetContent("hello")
	v = v.SetSize(50, 8)
	if w, h := v.Size(); w != 50 || h != 8 {
		t.Errorf("Size() = %dx%d, want 50x8", w, h)
	}
	if !strings.Contains(v.View(), "hello") {
		t.Error("content lost after resize")
	}
}

func TestTextView_ShrinkClips(t *testing.T) {
	v := NewTextView(20, 6).SetContent("one\ntwo\nthree\nfour")
	v = v.SetSize(20, 2)
	view := v.View()
	if !strings.Contains(view, "two") || strings.Contains(view, "three") {
		t.Errorf("View() after shrink = %q, want only the first two lines", view)
	}
}
