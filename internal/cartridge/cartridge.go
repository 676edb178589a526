// Package cartridge implements ROM loading and the cartridge mappers.
package cartridge

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"

	"nemo/internal/memory"
)

var (
	// ErrInvalidHeader means the image is not an iNES file.
	ErrInvalidHeader = errors.New("invalid iNES header")
	// ErrUnsupportedMapper means no mapper implementation exists for the image.
	ErrUnsupportedMapper = errors.New("unsupported mapper")
	// ErrTooManyBanks means the image has more banks than its mapper can address.
	ErrTooManyBanks = errors.New("too many banks for mapper")
)

// BankError reports a bank count a mapper cannot hold.
type BankError struct {
	Kind  string // "PRG" or "CHR"
	Units int
	Limit int
}

func (e *BankError) Error() string {
	return fmt.Sprintf("unsupported mapper, too many %s sections: %d (limit %d)", e.Kind, e.Units, e.Limit)
}

func (e *BankError) Unwrap() error { return ErrTooManyBanks }

// Mapper is the banking logic behind a cartridge.
type Mapper interface {
	ReadPRG(address uint16) uint8
	WritePRG(address uint16, value uint8)
	ReadCHR(address uint16) uint8
	WriteCHR(address uint16, value uint8)
	Mirroring() memory.MirrorMode
}

// Cartridge represents a loaded game
type Cartridge struct {
	Mapper
	header Header
}

// Header returns the decoded iNES header.
func (c *Cartridge) Header() Header { return c.header }

// LoadFromFile loads a cartridge from an iNES file
func LoadFromFile(filename string) (*Cartridge, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cart, err := LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return cart, nil
}

// LoadFromReader loads a cartridge from an io.Reader
func LoadFromReader(r io.Reader) (*Cartridge, error) {
	header, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}

	if header.Trainer {
		if _, err := io.CopyN(io.Discard, r, trainerSize); err != nil {
			return nil, fmt.Errorf("reading trainer: %w", err)
		}
	}

	prg := make([]uint8, header.PRGUnits*PRGUnitSize)
	if _, err := io.ReadFull(r, prg); err != nil {
		return nil, fmt.Errorf("reading PRG ROM: %w", err)
	}
	chr := make([]uint8, header.CHRUnits*CHRUnitSize)
	if _, err := io.ReadFull(r, chr); err != nil {
		return nil, fmt.Errorf("reading CHR ROM: %w", err)
	}

	mapper, err := createMapper(header, prg, chr)
	if err != nil {
		return nil, err
	}

	glog.Infof("cartridge: mapper %d, %d PRG x16KB, %d CHR x8KB, %v mirroring",
		header.Mapper, header.PRGUnits, header.CHRUnits, header.Mirroring)
	return &Cartridge{Mapper: mapper, header: header}, nil
}

// createMapper creates the appropriate mapper for the given header
func createMapper(h Header, prg, chr []uint8) (Mapper, error) {
	switch h.Mapper {
	case 0:
		return NewNROM(prg, chr, h.Mirroring)
	case 1:
		return NewMMC1(prg, chr)
	}
	return nil, fmt.Errorf("%w %d", ErrUnsupportedMapper, h.Mapper)
}
