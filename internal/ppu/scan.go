package ppu

// NTSC raster timing
const (
	ScanlineDots        = 341
	VisibleScanlines    = 240
	PostRenderScanlines = 1
	VBlankScanlines     = 20
)

// Timing describes the raster in dots and lines.
type Timing struct {
	Dots       int
	Visible    int
	PostRender int
	VBlank     int
}

// NTSC is the standard 2C02 raster.
var NTSC = Timing{
	Dots:       ScanlineDots,
	Visible:    VisibleScanlines,
	PostRender: PostRenderScanlines,
	VBlank:     VBlankScanlines,
}

// Phase classifies a scanline.
type Phase int

const (
	PhasePrerender Phase = iota
	PhaseVisible
	PhasePostrender
	PhaseVBlank
)

func (p Phase) String() string {
	switch p {
	case PhasePrerender:
		return "prerender"
	case PhaseVisible:
		return "visible"
	case PhasePostrender:
		return "postrender"
	}
	return "vblank"
}

// ScanPosition tracks the beam. Line -1 is the prerender line.
type ScanPosition struct {
	dot  int
	line int

	odd        bool
	frameReady bool

	dots         int
	vblankStart  int // first vblank line
	lastLine     int // last vblank line
	visibleLines int
}

// NewScanPosition returns a position at line 0, dot 0.
func NewScanPosition(t Timing) ScanPosition {
	return ScanPosition{
		dots:         t.Dots,
		visibleLines: t.Visible,
		vblankStart:  t.Visible + t.PostRender,
		lastLine:     t.Visible + t.PostRender + t.VBlank - 1,
	}
}

// Dot returns the dot within the current line.
func (s *ScanPosition) Dot() int { return s.dot }

// Line returns the current line.
func (s *ScanPosition) Line() int { return s.line }

// OddFrame reports the frame parity.
func (s *ScanPosition) OddFrame() bool { return s.odd }

// FrameReady is true only for the tick that wrapped the raster.
func (s *ScanPosition) FrameReady() bool { return s.frameReady }

// Phase classifies the current line.
func (s *ScanPosition) Phase() Phase {
	switch {
	case s.line < 0:
		return PhasePrerender
	case s.line < s.visibleLines:
		return PhaseVisible
	case s.line < s.vblankStart:
		return PhasePostrender
	}
	return PhaseVBlank
}

// VBlankStart returns the first vblank line.
func (s *ScanPosition) VBlankStart() int { return s.vblankStart }

// Advance moves one dot.
func (s *ScanPosition) Advance() {
	s.frameReady = false

	s.dot++
	if s.dot < s.dots {
		return
	}
	s.dot = 0
	s.line++
	if s.line > s.lastLine {
		s.line = -1
		s.odd = !s.odd
		s.frameReady = true
	}
}
