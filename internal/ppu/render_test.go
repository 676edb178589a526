package ppu

import (
	"testing"

	"nemo/internal/memory"
)

// fillBackground points every cell of nametable 0 at tile.
func fillBackground(p *PPU, tile uint8) {
	for i := uint16(0); i < 0x3C0; i++ {
		p.names.Write(i, tile)
	}
}

func TestSprite0HitTiming(t *testing.T) {
	p, chr := newTestPPU()
	screen := &FrameBuffer{}

	// Tile 1: opaque everywhere. Tile 2: one opaque pixel at (5, 3).
	for row := 0; row < 8; row++ {
		chr.SetTileRow(0, 1, row, 0xFF, 0x00)
	}
	chr.SetTileRow(0, 2, 3, 0x04, 0x00)
	fillBackground(p, 1)

	const x0, y0 = 50, 40
	p.WriteDMA([256]uint8{y0, 2, 0x00, x0})

	// Screen column x is drawn at dot x+2.
	tickTo(p, screen, y0+3, x0+5+2)
	if p.Status()&statusSprite0 != 0 {
		t.Fatal("Expected sprite-0 hit clear before the coincident pixel is drawn")
	}
	p.Tick(screen)
	if p.Status()&statusSprite0 == 0 {
		t.Error("Expected sprite-0 hit set at the coincident pixel")
	}
}

func TestSprite0HitFlipped(t *testing.T) {
	p, chr := newTestPPU()
	screen := &FrameBuffer{}

	for row := 0; row < 8; row++ {
		chr.SetTileRow(0, 1, row, 0xFF, 0x00)
	}
	chr.SetTileRow(0, 2, 3, 0x04, 0x00)
	fillBackground(p, 1)

	const x0, y0 = 16, 16
	// Both flips move the pixel from (5, 3) to (2, 4).
	p.WriteDMA([256]uint8{y0, 2, spriteFlipH | spriteFlipV, x0})

	tickTo(p, screen, y0+4, x0+2+2)
	if p.Status()&statusSprite0 != 0 {
		t.Fatal("Expected no hit before the flipped pixel")
	}
	p.Tick(screen)
	if p.Status()&statusSprite0 == 0 {
		t.Error("Expected hit at the flipped pixel")
	}
}

func TestSprite0NeedsOpaqueBackground(t *testing.T) {
	p, chr := newTestPPU()
	screen := &FrameBuffer{}
	for row := 0; row < 8; row++ {
		chr.SetTileRow(0, 2, row, 0xFF, 0x00)
	}
	p.WriteDMA([256]uint8{10, 2, 0x00, 10})

	tickTo(p, screen, 240, 0)
	if p.Status()&statusSprite0 != 0 {
		t.Error("Expected no hit over a transparent background")
	}
}

func TestBackgroundPixelColour(t *testing.T) {
	p, chr := newTestPPU()
	screen := &FrameBuffer{}

	chr.SetTileRow(0, 1, 0, 0x80, 0x80) // pixel value 3 at (0, 0)
	p.names.Write(0x000, 1)
	p.names.Write(0x3C0, 0x02) // top-left quadrant uses palette 2
	p.palette.Write(0x0B, 0x16)

	tickTo(p, screen, 1, 0)
	if c := screen.At(0, 0); c != NESColorToRGB(0x16) {
		t.Errorf("Expected 0x%06X at (0,0), got 0x%06X", NESColorToRGB(0x16), c)
	}
	if c := screen.At(1, 0); c != NESColorToRGB(0x0F) {
		t.Errorf("Expected background colour at (1,0), got 0x%06X", c)
	}
}

func TestTilePaletteQuadrants(t *testing.T) {
	attr := uint8(0xE4) // 11 10 01 00
	tests := []struct {
		tileX, tileY int
		expected     uint8
	}{
		{0, 0, 0},
		{2, 0, 1},
		{0, 2, 2},
		{3, 3, 3},
	}
	for _, test := range tests {
		if got := tilePalette(test.tileX, test.tileY, attr); got != test.expected {
			t.Errorf("Tile (%d,%d): expected %d, got %d", test.tileX, test.tileY, test.expected, got)
		}
	}
}

func TestWrapTile(t *testing.T) {
	tile, table := wrapTile(33, 32, 0)
	if tile != 1 || table != 1 {
		t.Errorf("Expected tile 1 table 1, got %d %d", tile, table)
	}
	tile, table = wrapTile(31, 30, 1)
	if tile != 1 || table != 0 {
		t.Errorf("Expected tile 1 table 0, got %d %d", tile, table)
	}
	tile, table = wrapTile(5, 32, 1)
	if tile != 5 || table != 1 {
		t.Errorf("Expected tile 5 table 1, got %d %d", tile, table)
	}
	// Scrolled past row 29: folds once and lands in the attribute rows.
	tile, table = wrapTile(61, 30, 0)
	if tile != 31 || table != 1 {
		t.Errorf("Expected tile 31 table 1, got %d %d", tile, table)
	}
}

func TestHorizontalScrollLatchesAtDot257(t *testing.T) {
	p, _ := newTestPPU()
	screen := &FrameBuffer{}
	p.WriteRegister(0x2005, 0x08)
	p.WriteRegister(0x2000, 0x01)

	tickTo(p, screen, 0, 257)
	if p.scrollX != 0 {
		t.Fatalf("Expected scroll X unchanged before dot 257, got %d", p.scrollX)
	}
	p.Tick(screen)
	if p.scrollX != 0x08 || p.nametableX != 1 {
		t.Errorf("Expected scrollX=8 ntX=1, got %d %d", p.scrollX, p.nametableX)
	}
}

func TestScrolledBackgroundReadsNextTable(t *testing.T) {
	p, chr := newTestPPU()
	p.SetMirroring(memory.MirrorVertical)
	screen := &FrameBuffer{}

	chr.SetTileRow(0, 7, 0, 0xFF, 0x00)
	p.palette.Write(0x01, 0x2C)
	// Column 0 of logical table 1 ($2400).
	p.names.Write(0x400, 7)

	p.scrollX = 0xF8 // column 31 is first on screen, column 0 of table 1 follows
	tickTo(p, screen, 0, 8+2+1)

	if c := screen.At(8, 0); c != NESColorToRGB(0x2C) {
		t.Errorf("Expected tile from table 1 at x=8, got 0x%06X", c)
	}
	if c := screen.At(0, 0); c != NESColorToRGB(0x0F) {
		t.Errorf("Expected empty tile at x=0, got 0x%06X", c)
	}
}

func TestPostrenderCompositesSprites(t *testing.T) {
	p, chr := newTestPPU()
	screen := &FrameBuffer{}

	chr.SetTileRow(0, 3, 0, 0x80, 0x00) // single pixel at (0, 0)
	p.palette.Write(0x11, 0x30)         // sprite palette 0, colour 1
	p.palette.Write(0x15, 0x16)         // sprite palette 1, colour 1

	var page [256]uint8
	for i := range page {
		page[i] = 0xFF // park unused sprites off-screen
	}
	copy(page[0:], []uint8{100, 3, 0x00, 20})
	copy(page[4:], []uint8{100, 3, 0x01 | spriteFlipH | spriteFlipV, 40})
	p.WriteDMA(page)

	tickTo(p, screen, 240, 1)

	if c := screen.At(20, 100); c != NESColorToRGB(0x30) {
		t.Errorf("Expected sprite 0 pixel, got 0x%06X", c)
	}
	if c := screen.At(47, 107); c != NESColorToRGB(0x16) {
		t.Errorf("Expected flipped sprite 1 pixel at (47,107), got 0x%06X", c)
	}
	if c := screen.At(21, 100); c == NESColorToRGB(0x30) {
		t.Error("Expected transparent sprite pixels to be skipped")
	}
}

func TestFrameBufferClips(t *testing.T) {
	var f FrameBuffer
	f.DrawPixel(-1, 0, 0xFFFFFF)
	f.DrawPixel(256, 0, 0xFFFFFF)
	f.DrawPixel(0, 240, 0xFFFFFF)
	f.DrawPixel(255, 239, 0x123456)
	if f.At(255, 239) != 0x123456 {
		t.Error("Expected in-bounds pixel drawn")
	}
	for _, px := range f.Pixels[:ScreenWidth] {
		if px != 0 {
			t.Fatal("Expected out-of-bounds pixels dropped")
		}
	}
}
