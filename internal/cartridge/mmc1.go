package cartridge

import (
	"github.com/golang/glog"

	"nemo/internal/memory"
)

// MMC1 bank limits, in header units.
const (
	mmc1MaxPRGUnits = 16
	mmc1MaxCHRUnits = 16
)

// MMC1 implements mapper 1.
//
// The CPU loads internal registers one bit at a time through writes to
// $8000-$FFFF. The fifth write commits the shifted value to the register
// selected by address bits 13-14: control, CHR bank 0, CHR bank 1, PRG bank.
type MMC1 struct {
	prg    []uint8
	chr    []uint8
	chrRAM bool
	sram   [prgRAMSize]uint8

	shift uint8
	count uint8

	control uint8
	chr0    uint8
	chr1    uint8
	prgBank uint8
}

// NewMMC1 creates a new MMC1 mapper in its power-on state.
func NewMMC1(prg, chr []uint8) (*MMC1, error) {
	if units := len(prg) / PRGUnitSize; units > mmc1MaxPRGUnits {
		return nil, &BankError{Kind: "PRG", Units: units, Limit: mmc1MaxPRGUnits}
	}
	if units := len(chr) / CHRUnitSize; units > mmc1MaxCHRUnits {
		return nil, &BankError{Kind: "CHR", Units: units, Limit: mmc1MaxCHRUnits}
	}

	m := &MMC1{prg: prg, chr: chr}
	if len(chr) == 0 {
		m.chr = make([]uint8, CHRUnitSize)
		m.chrRAM = true
	}
	// PRG mode 3: last bank fixed at $C000.
	m.commit(0x8000, 0x1F)
	return m, nil
}

func (m *MMC1) prgMode() uint8 { return (m.control >> 2) & 0x03 }
func (m *MMC1) chrMode() uint8 { return (m.control >> 4) & 0x01 }

// ReadPRG reads from PRG ROM/RAM
func (m *MMC1) ReadPRG(address uint16) uint8 {
	switch {
	case address >= 0x8000:
		return m.prg[m.prgOffset(address)]
	case address >= 0x6000:
		return m.sram[address-0x6000]
	}
	return 0
}

func (m *MMC1) prgOffset(address uint16) int {
	bank := int(m.prgBank & 0x0F)
	last := len(m.prg)/PRGUnitSize - 1
	offset := int(address - 0x8000)

	var base int
	switch m.prgMode() {
	case 0, 1:
		base = (bank >> 1) * 0x8000
	case 2:
		if offset < PRGUnitSize {
			base = 0
		} else {
			base = bank * PRGUnitSize
			offset -= PRGUnitSize
		}
	case 3:
		if offset < PRGUnitSize {
			base = bank * PRGUnitSize
		} else {
			base = last * PRGUnitSize
			offset -= PRGUnitSize
		}
	}
	return (base + offset) % len(m.prg)
}

// WritePRG writes PRG RAM or feeds the serial load register.
func (m *MMC1) WritePRG(address uint16, value uint8) {
	if address < 0x6000 {
		return
	}
	if address < 0x8000 {
		m.sram[address-0x6000] = value
		return
	}

	if value&0x80 != 0 {
		m.shift, m.count = 0, 0
		m.control |= 0x0C
		return
	}
	m.shift |= (value & 0x01) << m.count
	m.count++
	if m.count == 5 {
		m.commit(address, m.shift)
		m.shift, m.count = 0, 0
	}
}

func (m *MMC1) commit(address uint16, value uint8) {
	switch {
	case address < 0xA000:
		if glog.V(2) && m.control&0x03 != value&0x03 {
			glog.Infof("mmc1: mirroring %v", mmc1Mirroring(value))
		}
		m.control = value
	case address < 0xC000:
		m.chr0 = value
	case address < 0xE000:
		m.chr1 = value
	default:
		m.prgBank = value
	}
}

// ReadCHR reads from CHR ROM/RAM
func (m *MMC1) ReadCHR(address uint16) uint8 {
	return m.chr[m.chrOffset(address)]
}

// WriteCHR writes to CHR RAM. CHR ROM is read-only.
func (m *MMC1) WriteCHR(address uint16, value uint8) {
	if m.chrRAM {
		m.chr[m.chrOffset(address)] = value
	}
}

func (m *MMC1) chrOffset(address uint16) int {
	address &= 0x1FFF
	var offset int
	if m.chrMode() == 0 {
		offset = int(m.chr0>>1)*0x2000 + int(address)
	} else if address < 0x1000 {
		offset = int(m.chr0)*0x1000 + int(address)
	} else {
		offset = int(m.chr1)*0x1000 + int(address-0x1000)
	}
	return offset % len(m.chr)
}

// Mirroring returns the layout selected by the control register.
func (m *MMC1) Mirroring() memory.MirrorMode { return mmc1Mirroring(m.control) }

func mmc1Mirroring(control uint8) memory.MirrorMode {
	switch control & 0x03 {
	case 0:
		return memory.MirrorSingleScreen0
	case 1:
		return memory.MirrorSingleScreen1
	case 2:
		return memory.MirrorVertical
	}
	return memory.MirrorHorizontal
}
