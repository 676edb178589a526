package ppu

import "testing"

func TestScanFullFramePulsesOnce(t *testing.T) {
	s := NewScanPosition(NTSC)
	total := ScanlineDots * (VisibleScanlines + PostRenderScanlines + VBlankScanlines)

	pulses := 0
	for i := 0; i < total; i++ {
		s.Advance()
		if s.FrameReady() {
			pulses++
		}
	}

	if pulses != 1 {
		t.Errorf("Expected exactly one frame-ready pulse, got %d", pulses)
	}
	if !s.OddFrame() {
		t.Error("Expected frame parity flipped once")
	}
	if s.Line() != -1 || s.Dot() != 0 {
		t.Errorf("Expected line -1 dot 0, got line %d dot %d", s.Line(), s.Dot())
	}
}

func TestScanFrameReadyIsOneTick(t *testing.T) {
	s := NewScanPosition(NTSC)
	for !s.FrameReady() {
		s.Advance()
	}
	s.Advance()
	if s.FrameReady() {
		t.Error("Expected frame-ready to clear on the next advance")
	}
}

func TestScanLineWrap(t *testing.T) {
	s := NewScanPosition(NTSC)
	for i := 0; i < ScanlineDots-1; i++ {
		s.Advance()
	}
	if s.Line() != 0 || s.Dot() != 340 {
		t.Fatalf("Expected line 0 dot 340, got line %d dot %d", s.Line(), s.Dot())
	}
	s.Advance()
	if s.Line() != 1 || s.Dot() != 0 {
		t.Errorf("Expected line 1 dot 0, got line %d dot %d", s.Line(), s.Dot())
	}
}

func TestScanPhases(t *testing.T) {
	tests := []struct {
		line  int
		phase Phase
	}{
		{-1, PhasePrerender},
		{0, PhaseVisible},
		{239, PhaseVisible},
		{240, PhasePostrender},
		{241, PhaseVBlank},
		{260, PhaseVBlank},
	}

	for _, test := range tests {
		s := NewScanPosition(NTSC)
		s.line = test.line
		if got := s.Phase(); got != test.phase {
			t.Errorf("Line %d: expected %v, got %v", test.line, test.phase, got)
		}
	}
}

func TestScanCustomTiming(t *testing.T) {
	s := NewScanPosition(Timing{Dots: 4, Visible: 2, PostRender: 1, VBlank: 1})
	pulses := 0
	for i := 0; i < 4*4*3; i++ {
		s.Advance()
		if s.FrameReady() {
			pulses++
		}
	}
	// First frame starts at line 0 (4 lines), later ones at -1 (5 lines).
	if pulses != 2 {
		t.Errorf("Expected 2 pulses, got %d", pulses)
	}
}
