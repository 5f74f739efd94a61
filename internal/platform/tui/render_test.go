package tui

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockblast/internal/core"
)

func TestPainterPlainProfile(t *testing.T) {
	scr := core.NewScreen(6, 2)
	scr.DrawTextWithColor(0, 0, "[]", core.ColorRed)
	scr.DrawTextWithColor(2, 0, "[]", core.ColorPurple)
	scr.DrawText(0, 1, "ok")

	p := NewPainter(lipgloss.NewRenderer(io.Discard))
	if got, want := p.Render(scr), scr.String(); got != want {
		t.Errorf("Render() = %q, expected %q", got, want)
	}
}

func TestPainterStyleFallback(t *testing.T) {
	p := NewPainter(nil)
	for c := core.ColorRed; c <= core.ColorLime; c++ {
		if _, ok := p.styles[c]; !ok {
			t.Errorf("no style for %v", c)
		}
	}
	if got := p.Style(core.Color(250)).Render("x"); got != "x" {
		t.Errorf("unknown color rendered %q", got)
	}
}

func TestFrameDelta(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		prev time.Time
		now  time.Time
		want time.Duration
	}{
		{"first tick", time.Time{}, t0, 0},
		{"normal", t0, t0.Add(33 * time.Millisecond), 33 * time.Millisecond},
		{"stall capped", t0, t0.Add(5 * time.Second), maxFrameDelta},
		{"backwards", t0, t0.Add(-time.Second), 0},
	}
	for _, tc := range tests {
		if got := frameDelta(tc.prev, tc.now); got != tc.want {
			t.Errorf("%s: frameDelta = %v, expected %v", tc.name, got, tc.want)
		}
	}
}
