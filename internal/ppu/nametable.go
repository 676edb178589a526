package ppu

import "nemo/internal/memory"

// NameTable holds the background layout. Four logical 1KB tables are
// folded onto the physical banks by the mirroring mode.
type NameTable struct {
	vram      [0x1000]uint8
	mirroring memory.MirrorMode
}

// SetMirroring selects how logical tables map to banks.
func (n *NameTable) SetMirroring(m memory.MirrorMode) { n.mirroring = m }

// Mirroring returns the current mode.
func (n *NameTable) Mirroring() memory.MirrorMode { return n.mirroring }

// Read returns the byte at a logical offset in $000-$FFF.
func (n *NameTable) Read(address uint16) uint8 {
	return n.vram[n.index(address)]
}

// Write stores a byte at a logical offset in $000-$FFF.
func (n *NameTable) Write(address uint16, value uint8) {
	n.vram[n.index(address)] = value
}

func (n *NameTable) index(address uint16) uint16 {
	address &= 0x0FFF
	table := (address >> 10) & 3
	offset := address & 0x3FF

	switch n.mirroring {
	case memory.MirrorHorizontal:
		return (table>>1)*0x400 + offset
	case memory.MirrorVertical:
		return (table&1)*0x400 + offset
	case memory.MirrorSingleScreen1:
		return 0x400 + offset
	case memory.MirrorFourScreen:
		return table*0x400 + offset
	}
	return offset
}
