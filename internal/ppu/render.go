package ppu

// visibleLine draws the background pixel for dot-2 and checks sprite 0.
func (p *PPU) visibleLine(screen Screen) {
	y := p.scan.Line()
	x := p.scan.Dot() - 2

	if x >= 0 && x < ScreenWidth {
		sx := x + int(p.scrollX)
		sy := y + int(p.scrollY)
		tileX, ntX := wrapTile(sx/8, 32, int(p.nametableX))
		tileY, ntY := wrapTile(sy/8, 30, int(p.nametableY))
		base := uint16((ntY<<1|ntX)<<10)

		tile := p.names.Read(base | uint16(tileY*32+tileX))
		pixel := p.patterns.Pixel(p.backgroundBank(), tile, sx%8, sy%8)
		attr := p.names.Read(base | uint16(0x3C0+tileY/4*8+tileX/4))
		screen.DrawPixel(x, y, p.palette.ColorOf(pixel, tilePalette(tileX, tileY, attr)))

		if pixel != 0 {
			p.checkSprite0(x, y)
		}
	}

	if p.scan.Dot() == 257 {
		p.scrollX = p.scrollBufX
		p.nametableX = p.control & ctrlNametableX
	}
}

// wrapTile folds a tile index past the table edge into the neighbouring table.
// It folds once only: a vertical scroll of 240 or more reaches rows 30 and 31,
// which hold the attribute bytes.
func wrapTile(tile, size, table int) (int, int) {
	if tile >= size {
		tile -= size
		table ^= 1
	}
	return tile, table
}

// tilePalette picks the 2-bit quadrant value out of an attribute byte.
func tilePalette(tileX, tileY int, attr uint8) uint8 {
	if (tileX%4)>>1 != 0 {
		attr >>= 2
	}
	if (tileY%4)>>1 != 0 {
		attr >>= 4
	}
	return attr & 3
}

func (p *PPU) checkSprite0(x, y int) {
	s := p.oam.Sprite(0)
	dx := x - int(s.X)
	dy := y - int(s.Y)
	if dx < 0 || dx >= 8 || dy < 0 || dy >= 8 {
		return
	}
	if s.Attr&spriteFlipH != 0 {
		dx = 7 - dx
	}
	if s.Attr&spriteFlipV != 0 {
		dy = 7 - dy
	}
	if p.patterns.Pixel(p.spriteBank(), s.Tile, dx, dy) != 0 {
		p.status |= statusSprite0
	}
}

func (p *PPU) prerenderLine() {
	if p.scan.Dot() == 0 {
		p.status = 0
		p.control &^= ctrlNametableX
	}
	if p.scan.Dot() >= 280 {
		p.scrollY = p.scrollBufY
		p.nametableY = (p.control & ctrlNametableY) >> 1
	}
}

// postrenderLine composites every sprite over the finished background.
func (p *PPU) postrenderLine(screen Screen) {
	if p.scan.Dot() != 0 {
		return
	}
	bank := p.spriteBank()
	for i := 0; i < 64; i++ {
		s := p.oam.Sprite(i)
		palette := s.Attr&3 + 4
		for row := 0; row < 8; row++ {
			for col := 0; col < 8; col++ {
				pixel := p.patterns.Pixel(bank, s.Tile, col, row)
				if pixel == 0 {
					continue
				}
				dx, dy := col, row
				if s.Attr&spriteFlipH != 0 {
					dx = 7 - col
				}
				if s.Attr&spriteFlipV != 0 {
					dy = 7 - row
				}
				screen.DrawPixel(int(s.X)+dx, int(s.Y)+dy, p.palette.ColorOf(pixel, palette))
			}
		}
	}
}

func (p *PPU) vblankLine() {
	if p.scan.Dot() == 0 && p.scan.Line() == p.scan.VBlankStart() {
		p.status |= statusVBlank
		if p.control&ctrlNMIEnable != 0 {
			p.nmi = true
		}
	}
}

func (p *PPU) backgroundBank() int { return int(p.control&ctrlBGBank) >> 4 }

func (p *PPU) spriteBank() int { return int(p.control&ctrlSpriteBank) >> 3 }
