// Package memory implements the CPU address map and the contracts shared
// between the processor, the picture unit and the cartridge.
package memory

import "github.com/golang/glog"

// MirrorMode represents nametable mirroring mode
type MirrorMode uint8

const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
	MirrorSingleScreen0
	MirrorSingleScreen1
	MirrorFourScreen
)

func (m MirrorMode) String() string {
	switch m {
	case MirrorHorizontal:
		return "horizontal"
	case MirrorVertical:
		return "vertical"
	case MirrorSingleScreen0:
		return "single-screen lower"
	case MirrorSingleScreen1:
		return "single-screen upper"
	case MirrorFourScreen:
		return "four-screen"
	}
	return "unknown"
}

// CHRBus is the picture unit's view of cartridge pattern memory ($0000-$1FFF).
type CHRBus interface {
	ReadCHR(address uint16) uint8
	WriteCHR(address uint16, value uint8)
}

// Cartridge is what the console needs from a loaded game.
type Cartridge interface {
	CHRBus
	ReadPRG(address uint16) uint8
	WritePRG(address uint16, value uint8)
	Mirroring() MirrorMode
}

// PPUPort is the register window the picture unit exposes to the CPU.
type PPUPort interface {
	ReadRegister(address uint16) uint8
	WriteRegister(address uint16, value uint8)
	WriteDMA(page [256]uint8)
	TakeNMI() bool
}

// InputPort serves the controller registers at $4016/$4017.
type InputPort interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// Memory represents the CPU memory map
type Memory struct {
	// Internal RAM (2KB, mirrored to 8KB)
	ram [0x800]uint8

	ppu       PPUPort
	input     InputPort
	cartridge Cartridge

	// Called after an OAM DMA page has been copied.
	dmaCallback func(uint8)

	// Last value seen on the data bus, returned for unmapped reads.
	openBus uint8
}

// New creates a new Memory instance
func New(ppu PPUPort, cart Cartridge) *Memory {
	return &Memory{ppu: ppu, cartridge: cart}
}

// SetInputSystem sets the input system for controller access
func (m *Memory) SetInputSystem(input InputPort) {
	m.input = input
}

// SetDMACallback registers a hook run after every OAM DMA transfer.
func (m *Memory) SetDMACallback(callback func(uint8)) {
	m.dmaCallback = callback
}

// NMIPending acknowledges and reports an NMI raised by the picture unit.
func (m *Memory) NMIPending() bool {
	return m.ppu.TakeNMI()
}

// Read reads a byte from the given address
func (m *Memory) Read(address uint16) uint8 {
	var value uint8

	switch {
	case address < 0x2000:
		value = m.ram[address&0x07FF]

	case address < 0x4000:
		// PPU registers (mirrored every 8 bytes)
		value = m.ppu.ReadRegister(0x2000 + (address & 0x0007))

	case address == 0x4016 || address == 0x4017:
		if m.input != nil {
			value = m.input.Read(address)
		}

	case address < 0x6000:
		// APU, test registers and expansion area are not mapped.
		value = m.openBus

	default:
		if m.cartridge != nil {
			value = m.cartridge.ReadPRG(address)
		} else {
			value = m.openBus
		}
	}

	m.openBus = value
	return value
}

// Write writes a byte to the given address
func (m *Memory) Write(address uint16, value uint8) {
	m.openBus = value

	switch {
	case address < 0x2000:
		m.ram[address&0x07FF] = value

	case address < 0x4000:
		m.ppu.WriteRegister(0x2000+(address&0x0007), value)

	case address == 0x4014:
		m.ppu.WriteDMA(m.readPage(value))
		if m.dmaCallback != nil {
			m.dmaCallback(value)
		}

	case address == 0x4016:
		if m.input != nil {
			m.input.Write(address, value)
		}

	case address < 0x6000:
		if glog.V(3) {
			glog.Infof("memory: ignored write $%02X to $%04X", value, address)
		}

	default:
		if m.cartridge != nil {
			m.cartridge.WritePRG(address, value)
		}
	}
}

// readPage gathers the 256 bytes an OAM DMA copies from page<<8.
func (m *Memory) readPage(page uint8) [256]uint8 {
	var data [256]uint8
	base := uint16(page) << 8
	for i := range data {
		data[i] = m.Read(base + uint16(i))
	}
	return data
}
