package graphics

import (
	"bytes"
	"strings"
	"testing"

	"nemo/internal/ppu"
)

func TestTerminalRenderFrame(t *testing.T) {
	var out bytes.Buffer
	w := NewTerminalWindow(&out, 4, 3)

	frame := &ppu.FrameBuffer{}
	frame.Clear(0x0000FF)
	for x := 0; x < ppu.ScreenWidth; x++ {
		frame.DrawPixel(x, 0, 0xFF0000)
	}
	if err := w.RenderFrame(frame); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 character rows, got %d", len(lines))
	}
	if n := strings.Count(lines[0], "▀"); n != 4 {
		t.Errorf("Expected 4 cells per row, got %d", n)
	}
	if !strings.Contains(lines[0], "\033[38;2;255;0;0m\033[48;2;0;0;255m") {
		t.Error("Expected red over blue in the first row")
	}
	if strings.Contains(lines[1], "255;0;0") {
		t.Error("Expected no red in the second row")
	}
}

func TestTerminalWindowClamps(t *testing.T) {
	w := NewTerminalWindow(&bytes.Buffer{}, 1000, 1000)
	if w.cols != ppu.ScreenWidth || w.rows != ppu.ScreenHeight/2+1 {
		t.Errorf("Expected grid clamped to the frame, got %dx%d", w.cols, w.rows)
	}
	w = NewTerminalWindow(&bytes.Buffer{}, 0, 0)
	if w.cols != defaultTerminalCols || w.rows != defaultTerminalRows {
		t.Errorf("Expected defaults, got %dx%d", w.cols, w.rows)
	}
}
