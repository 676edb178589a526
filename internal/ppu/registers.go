package ppu

import "github.com/golang/glog"

// ReadRegister reads from a PPU register (CPU $2000-$2007)
func (p *PPU) ReadRegister(address uint16) uint8 {
	switch address & 7 {
	case 2: // PPUSTATUS
		value := p.status&0xE0 | p.openBus&0x1F
		p.status &^= statusVBlank
		p.scrollLatch = false
		p.addrLatch = false
		return value
	case 4: // OAMDATA
		return p.oam.Read()
	case 7: // PPUDATA
		return p.readData()
	}
	// Write-only ports
	return p.openBus
}

// WriteRegister writes to a PPU register (CPU $2000-$2007)
func (p *PPU) WriteRegister(address uint16, value uint8) {
	p.openBus = value

	switch address & 7 {
	case 0: // PPUCTRL
		p.control = value
		if p.scan.Phase() == PhaseVBlank {
			p.status |= statusVBlank
			if value&ctrlNMIEnable != 0 {
				p.nmi = true
			}
		}
	case 1: // PPUMASK
		p.mask = value
	case 2: // PPUSTATUS is read-only
	case 3: // OAMADDR
		p.oam.SetCursor(value)
	case 4: // OAMDATA
		p.oam.Write(value)
	case 5: // PPUSCROLL
		if !p.scrollLatch {
			p.scrollBufX = value
		} else {
			p.scrollBufY = value
		}
		p.scrollLatch = !p.scrollLatch
	case 6: // PPUADDR
		if !p.addrLatch {
			p.addressBuf = uint16(value) << 8
		} else {
			p.address = (p.addressBuf | uint16(value)) & 0x3FFF
		}
		p.addrLatch = !p.addrLatch
	case 7: // PPUDATA
		p.writeData(value)
	}
}

// WriteDMA loads all of OAM from a CPU page.
func (p *PPU) WriteDMA(page [256]uint8) {
	p.oam.DMAWrite(page)
}

// Mask returns PPUMASK. Rendering is not gated on it.
func (p *PPU) Mask() uint8 { return p.mask }

func (p *PPU) readData() uint8 {
	a := p.address
	p.incrementAddress()

	value := p.dataBuffer
	switch {
	case a < 0x2000:
		p.dataBuffer = p.patterns.Read(a)
	case a < 0x3000:
		p.dataBuffer = p.names.Read(a & 0x0FFF)
	case a < 0x3F00:
		p.fail(&AddressError{Address: a})
		return 0
	default:
		value = p.palette.Read(a & 0x1F)
		p.dataBuffer = value
	}
	return value
}

func (p *PPU) writeData(value uint8) {
	a := p.address
	p.incrementAddress()

	switch {
	case a < 0x2000:
		p.patterns.Write(a, value)
	case a <= 0x3000:
		p.names.Write(a&0x0FFF, value)
	case a < 0x3F00:
		glog.Warningf("ppu: ignored write $%02X to $%04X", value, a)
	default:
		p.palette.Write(a&0x1F, value)
	}
}

func (p *PPU) incrementAddress() {
	if p.control&ctrlIncrement32 != 0 {
		p.address += 32
	} else {
		p.address++
	}
	p.address &= 0x3FFF
}
