package ppu

import "nemo/internal/memory"

// PatternTable reads tile bitmaps through the cartridge CHR bus.
type PatternTable struct {
	bus memory.CHRBus
}

// Connect swaps the backing CHR bus.
func (p *PatternTable) Connect(bus memory.CHRBus) { p.bus = bus }

// Read returns a CHR byte, or 0 with nothing connected.
func (p *PatternTable) Read(address uint16) uint8 {
	if p.bus == nil {
		return 0
	}
	return p.bus.ReadCHR(address & 0x1FFF)
}

// Write forwards a CHR write; ROM cartridges ignore it.
func (p *PatternTable) Write(address uint16, value uint8) {
	if p.bus != nil {
		p.bus.WriteCHR(address&0x1FFF, value)
	}
}

// Pixel returns the 2-bit value of (x, y) in tile of bank (0 or 1).
func (p *PatternTable) Pixel(bank int, tile uint8, x, y int) uint8 {
	offset := uint16(bank)*0x1000 + uint16(tile)*16 + uint16(y&7)
	lsb := p.Read(offset)
	msb := p.Read(offset + 8)
	shift := 7 - uint(x&7)
	return (lsb>>shift)&1 | ((msb>>shift)&1)<<1
}
