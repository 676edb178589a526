package cartridge

import (
	"bytes"
	"fmt"

	"nemo/internal/memory"
)

// ROMBuilder assembles iNES images in memory, for tests and tooling that
// need a cartridge without a file on disk.
type ROMBuilder struct {
	header       Header
	instructions []uint8
	data         map[int]uint8
	chrData      []uint8
	nmiVector    uint16
	resetVector  uint16
	irqVector    uint16
}

// NewROMBuilder returns a builder for a 16KB/8KB NROM image that starts at $8000.
func NewROMBuilder() *ROMBuilder {
	return &ROMBuilder{
		header: Header{
			PRGUnits:  1,
			CHRUnits:  1,
			Mirroring: memory.MirrorHorizontal,
		},
		data:        make(map[int]uint8),
		nmiVector:   0x8000,
		resetVector: 0x8000,
		irqVector:   0x8000,
	}
}

// WithPRGUnits sets the PRG ROM size in 16KB units
func (b *ROMBuilder) WithPRGUnits(units int) *ROMBuilder {
	b.header.PRGUnits = units
	return b
}

// WithCHRUnits sets the CHR ROM size in 8KB units (0 = CHR RAM)
func (b *ROMBuilder) WithCHRUnits(units int) *ROMBuilder {
	b.header.CHRUnits = units
	return b
}

// WithMapper sets the mapper ID
func (b *ROMBuilder) WithMapper(id uint8) *ROMBuilder {
	b.header.Mapper = id
	return b
}

// WithMirroring sets the nametable mirroring mode
func (b *ROMBuilder) WithMirroring(mode memory.MirrorMode) *ROMBuilder {
	b.header.Mirroring = mode
	return b
}

// WithTrainer flags a (zero-filled) 512-byte trainer ahead of PRG.
func (b *ROMBuilder) WithTrainer() *ROMBuilder {
	b.header.Trainer = true
	return b
}

// WithInstructions places code at the start of PRG ($8000).
func (b *ROMBuilder) WithInstructions(code ...uint8) *ROMBuilder {
	b.instructions = append([]uint8(nil), code...)
	return b
}

// WithData sets bytes at a PRG image offset.
func (b *ROMBuilder) WithData(offset int, data ...uint8) *ROMBuilder {
	for i, v := range data {
		b.data[offset+i] = v
	}
	return b
}

// WithCHRData sets the leading bytes of CHR ROM.
func (b *ROMBuilder) WithCHRData(data []uint8) *ROMBuilder {
	b.chrData = append([]uint8(nil), data...)
	return b
}

// WithNMIVector sets the NMI vector
func (b *ROMBuilder) WithNMIVector(address uint16) *ROMBuilder {
	b.nmiVector = address
	return b
}

// WithResetVector sets the reset vector
func (b *ROMBuilder) WithResetVector(address uint16) *ROMBuilder {
	b.resetVector = address
	return b
}

// Build generates the ROM image.
func (b *ROMBuilder) Build() ([]byte, error) {
	if b.header.PRGUnits <= 0 {
		return nil, fmt.Errorf("PRG ROM size cannot be zero")
	}
	size := b.header.PRGUnits * PRGUnitSize
	if len(b.instructions) > size-6 {
		return nil, fmt.Errorf("instructions too large for PRG ROM")
	}

	prg := make([]uint8, size)
	copy(prg, b.instructions)
	for offset, v := range b.data {
		if offset >= 0 && offset < size {
			prg[offset] = v
		}
	}
	putWord(prg[size-6:], b.nmiVector)
	putWord(prg[size-4:], b.resetVector)
	putWord(prg[size-2:], b.irqVector)

	chr := make([]uint8, b.header.CHRUnits*CHRUnitSize)
	copy(chr, b.chrData)

	header := b.header.Bytes()
	var out bytes.Buffer
	out.Write(header[:])
	if b.header.Trainer {
		out.Write(make([]byte, trainerSize))
	}
	out.Write(prg)
	out.Write(chr)
	return out.Bytes(), nil
}

// BuildCartridge generates and loads the ROM as a cartridge
func (b *ROMBuilder) BuildCartridge() (*Cartridge, error) {
	rom, err := b.Build()
	if err != nil {
		return nil, err
	}
	return LoadFromReader(bytes.NewReader(rom))
}

func putWord(dst []uint8, v uint16) {
	dst[0] = uint8(v)
	dst[1] = uint8(v >> 8)
}
