package cartridge

import (
	"encoding/binary"
	"fmt"
	"io"

	"nemo/internal/memory"
)

// Unit sizes declared by the header
const (
	PRGUnitSize = 0x4000 // 16KB
	CHRUnitSize = 0x2000 // 8KB
	trainerSize = 512
)

// iNES header structure
type iNESHeader struct {
	Magic      [4]uint8
	PRGROMSize uint8 // in 16KB units
	CHRROMSize uint8 // in 8KB units
	Flags6     uint8
	Flags7     uint8
	PRGRAMSize uint8
	TVSystem1  uint8
	TVSystem2  uint8
	Padding    [5]uint8
}

// Header is the decoded 16-byte iNES header.
type Header struct {
	PRGUnits  int
	CHRUnits  int
	Mapper    uint8
	Mirroring memory.MirrorMode
	Battery   bool
	Trainer   bool
}

// ReadHeader decodes an iNES header from r.
func ReadHeader(r io.Reader) (Header, error) {
	var raw iNESHeader
	if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}
	if string(raw.Magic[:]) != "NES\x1A" {
		return Header{}, fmt.Errorf("%w: bad magic %q", ErrInvalidHeader, raw.Magic[:])
	}
	if raw.PRGROMSize == 0 {
		return Header{}, fmt.Errorf("%w: no PRG units", ErrInvalidHeader)
	}

	h := Header{
		PRGUnits: int(raw.PRGROMSize),
		CHRUnits: int(raw.CHRROMSize),
		Mapper:   raw.Flags6>>4 | raw.Flags7&0xF0,
		Battery:  raw.Flags6&0x02 != 0,
		Trainer:  raw.Flags6&0x04 != 0,
	}
	switch {
	case raw.Flags6&0x08 != 0:
		h.Mirroring = memory.MirrorFourScreen
	case raw.Flags6&0x01 != 0:
		h.Mirroring = memory.MirrorVertical
	default:
		h.Mirroring = memory.MirrorHorizontal
	}
	return h, nil
}

// Bytes encodes h back into iNES form.
func (h Header) Bytes() [16]byte {
	var b [16]byte
	copy(b[:4], "NES\x1A")
	b[4] = uint8(h.PRGUnits)
	b[5] = uint8(h.CHRUnits)

	flags6 := (h.Mapper & 0x0F) << 4
	switch h.Mirroring {
	case memory.MirrorVertical:
		flags6 |= 0x01
	case memory.MirrorFourScreen:
		flags6 |= 0x08
	}
	if h.Battery {
		flags6 |= 0x02
	}
	if h.Trainer {
		flags6 |= 0x04
	}
	b[6] = flags6
	b[7] = h.Mapper & 0xF0
	return b
}
