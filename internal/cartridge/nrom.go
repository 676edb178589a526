package cartridge

import "nemo/internal/memory"

const prgRAMSize = 0x2000

// NROM implements mapper 0.
// It has no bank switching: one or two 16KB PRG units and a single 8KB
// CHR unit (CHR RAM when the image carries none). A 16KB image is mirrored
// into $C000-$FFFF.
type NROM struct {
	prg       []uint8
	chr       []uint8
	chrRAM    bool
	sram      [prgRAMSize]uint8
	mirroring memory.MirrorMode
}

// NewNROM creates a new NROM mapper
func NewNROM(prg, chr []uint8, mirroring memory.MirrorMode) (*NROM, error) {
	if units := len(prg) / PRGUnitSize; units > 2 {
		return nil, &BankError{Kind: "PRG", Units: units, Limit: 2}
	}
	if units := len(chr) / CHRUnitSize; units > 1 {
		return nil, &BankError{Kind: "CHR", Units: units, Limit: 1}
	}

	m := &NROM{prg: prg, chr: chr, mirroring: mirroring}
	if len(chr) == 0 {
		m.chr = make([]uint8, CHRUnitSize)
		m.chrRAM = true
	}
	return m, nil
}

// ReadPRG reads from PRG ROM/RAM
func (m *NROM) ReadPRG(address uint16) uint8 {
	switch {
	case address >= 0x8000:
		if len(m.prg) == 0 {
			return 0
		}
		return m.prg[int(address-0x8000)%len(m.prg)]
	case address >= 0x6000:
		return m.sram[address-0x6000]
	}
	return 0
}

// WritePRG writes to PRG RAM; writes to the ROM area are ignored.
func (m *NROM) WritePRG(address uint16, value uint8) {
	if address >= 0x6000 && address < 0x8000 {
		m.sram[address-0x6000] = value
	}
}

// ReadCHR reads from CHR ROM/RAM
func (m *NROM) ReadCHR(address uint16) uint8 {
	return m.chr[address&0x1FFF]
}

// WriteCHR writes to CHR RAM. CHR ROM is read-only.
func (m *NROM) WriteCHR(address uint16, value uint8) {
	if m.chrRAM {
		m.chr[address&0x1FFF] = value
	}
}

// Mirroring returns the header's fixed nametable layout.
func (m *NROM) Mirroring() memory.MirrorMode { return m.mirroring }
