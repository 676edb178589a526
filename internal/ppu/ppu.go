// Package ppu implements the Picture Processing Unit: raster timing, the
// background and sprite pipeline, and the CPU-visible register port.
package ppu

import (
	"errors"
	"fmt"

	"github.com/golang/glog"

	"nemo/internal/memory"
)

// ErrUnmappedAddress is recorded when the CPU reads VRAM with no backing store.
var ErrUnmappedAddress = errors.New("unmapped PPU address")

// AddressError names the offending VRAM address.
type AddressError struct {
	Address uint16
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("read of unmapped PPU address $%04X", e.Address)
}

func (e *AddressError) Unwrap() error { return ErrUnmappedAddress }

// Control and status bits
const (
	ctrlNametableX  = 0x01
	ctrlNametableY  = 0x02
	ctrlIncrement32 = 0x04
	ctrlSpriteBank  = 0x08
	ctrlBGBank      = 0x10
	ctrlNMIEnable   = 0x80

	statusSprite0 = 0x40
	statusVBlank  = 0x80
)

// PPU represents the Picture Processing Unit (2C02)
type PPU struct {
	// Register port
	control uint8
	mask    uint8
	status  uint8
	openBus uint8

	scrollX, scrollY       uint8
	scrollBufX, scrollBufY uint8
	nametableX, nametableY uint8
	scrollLatch            bool

	address    uint16
	addressBuf uint16
	addrLatch  bool
	dataBuffer uint8
	nmi        bool
	fault      error

	scan ScanPosition

	names    NameTable
	palette  PaletteTable
	oam      OAM
	patterns PatternTable

	frames uint64
}

// New creates a PPU reading tiles from chr with the given mirroring.
func New(chr memory.CHRBus, mirroring memory.MirrorMode) *PPU {
	p := &PPU{
		scan:    NewScanPosition(NTSC),
		palette: newPaletteTable(),
	}
	p.patterns.Connect(chr)
	p.names.SetMirroring(mirroring)
	return p
}

// ConnectCHR swaps the pattern table source.
func (p *PPU) ConnectCHR(chr memory.CHRBus) { p.patterns.Connect(chr) }

// SetMirroring changes nametable mirroring.
func (p *PPU) SetMirroring(m memory.MirrorMode) {
	if m != p.names.Mirroring() {
		glog.V(2).Infof("ppu: mirroring %v", m)
		p.names.SetMirroring(m)
	}
}

// Tick runs one dot of the current phase and advances the beam.
func (p *PPU) Tick(screen Screen) {
	switch p.scan.Phase() {
	case PhasePrerender:
		p.prerenderLine()
	case PhaseVisible:
		p.visibleLine(screen)
	case PhasePostrender:
		p.postrenderLine(screen)
	case PhaseVBlank:
		p.vblankLine()
	}

	p.scan.Advance()
	if p.scan.FrameReady() {
		p.frames++
	}
}

// FrameReady reports that the last Tick completed a frame.
func (p *PPU) FrameReady() bool { return p.scan.FrameReady() }

// TakeNMI returns and clears the NMI line.
func (p *PPU) TakeNMI() bool {
	pending := p.nmi
	p.nmi = false
	return pending
}

// Err returns the first fatal access fault.
func (p *PPU) Err() error { return p.fault }

// Scan returns the current beam position.
func (p *PPU) Scan() ScanPosition { return p.scan }

// Frames returns the number of completed frames.
func (p *PPU) Frames() uint64 { return p.frames }

// Status returns the raw status register.
func (p *PPU) Status() uint8 { return p.status }

// Address returns the committed VRAM address.
func (p *PPU) Address() uint16 { return p.address }

// NameTable exposes the nametable store.
func (p *PPU) NameTable() *NameTable { return &p.names }

// Palette exposes the palette store.
func (p *PPU) Palette() *PaletteTable { return &p.palette }

// OAM exposes sprite memory.
func (p *PPU) OAM() *OAM { return &p.oam }

// PatternTableImage renders one 4KB pattern bank as a 128x128 sheet of
// 16x16 tiles coloured with palette.
func (p *PPU) PatternTableImage(bank int, palette uint8) [128 * 128]uint32 {
	var out [128 * 128]uint32
	for ty := 0; ty < 16; ty++ {
		for tx := 0; tx < 16; tx++ {
			tile := uint8(ty*16 + tx)
			for row := 0; row < 8; row++ {
				for col := 0; col < 8; col++ {
					pixel := p.patterns.Pixel(bank, tile, col, row)
					out[(ty*8+row)*128+tx*8+col] = p.palette.ColorOf(pixel, palette)
				}
			}
		}
	}
	return out
}

func (p *PPU) fail(err error) {
	if p.fault == nil {
		glog.Errorf("ppu: %v", err)
		p.fault = err
	}
}
