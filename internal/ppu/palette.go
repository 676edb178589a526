package ppu

// PaletteTable is the 32-byte palette RAM. Entries $10/$14/$18/$1C are
// the same cells as $00/$04/$08/$0C.
type PaletteTable struct {
	entries [32]uint8
}

func newPaletteTable() PaletteTable {
	var p PaletteTable
	for i := 0; i < 32; i += 4 {
		p.entries[i] = 0x0F
	}
	return p
}

func paletteIndex(index uint16) uint16 {
	index &= 0x1F
	if index&0x13 == 0x10 {
		index &= 0x0F
	}
	return index
}

// Read returns an entry; index wraps within 0..31.
func (p *PaletteTable) Read(index uint16) uint8 {
	return p.entries[paletteIndex(index)]
}

// Write stores an entry; index wraps within 0..31.
func (p *PaletteTable) Write(index uint16, value uint8) {
	p.entries[paletteIndex(index)] = value & 0x3F
}

// ColorOf resolves a 2-bit pixel in one of the eight palettes to RGB.
// Pixel 0 is always the universal background colour.
func (p *PaletteTable) ColorOf(pixel, palette uint8) uint32 {
	index := uint16(0)
	if pixel != 0 {
		index = uint16(palette)*4 + uint16(pixel&3)
	}
	return NESColorToRGB(p.Read(index))
}

// NES 2C02 Color Palette (NTSC), ARGB
var nesColorPalette = [64]uint32{
	0xFF666666, 0xFF002A88, 0xFF1412A7, 0xFF3B00A4, 0xFF5C007E, 0xFF6E0040, 0xFF6C0600, 0xFF561D00,
	0xFF333500, 0xFF0B4800, 0xFF005200, 0xFF004F08, 0xFF00404D, 0xFF000000, 0xFF000000, 0xFF000000,
	0xFFADADAD, 0xFF155FD9, 0xFF4240FF, 0xFF7527FE, 0xFFA01ACC, 0xFFB71E7B, 0xFFB53120, 0xFF994E00,
	0xFF6B6D00, 0xFF388700, 0xFF0C9300, 0xFF008F32, 0xFF007C8D, 0xFF000000, 0xFF000000, 0xFF000000,
	0xFFFFFEFF, 0xFF64B0FF, 0xFF9290FF, 0xFFC676FF, 0xFFF36AFF, 0xFFFE6ECC, 0xFFFE8170, 0xFFEA9E22,
	0xFFBCBE00, 0xFF88D800, 0xFF5CE430, 0xFF45E082, 0xFF48CDDE, 0xFF4F4F4F, 0xFF000000, 0xFF000000,
	0xFFFFFEFF, 0xFFC0DFFF, 0xFFD3D2FF, 0xFFE8C8FF, 0xFFFBC2FF, 0xFFFEC4EA, 0xFFFECCC5, 0xFFF7D8A5,
	0xFFE4E594, 0xFFCFF29B, 0xFFBEFBB3, 0xFFB8F8D8, 0xFFB8F8F8, 0xFF000000, 0xFF000000, 0xFF000000,
}

// NESColorToRGB converts a system colour index to 0x00RRGGBB.
func NESColorToRGB(colorIndex uint8) uint32 {
	return nesColorPalette[colorIndex&0x3F] & 0x00FFFFFF
}
