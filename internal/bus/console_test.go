package bus

import (
	"errors"
	"testing"

	"nemo/internal/cartridge"
	"nemo/internal/cpu"
	"nemo/internal/memory"
	"nemo/internal/ppu"
)

// newTestConsole loads code at $8000 of a 16KB/8KB NROM image.
func newTestConsole(t *testing.T, code ...uint8) *Console {
	t.Helper()
	cart, err := cartridge.NewROMBuilder().WithInstructions(code...).BuildCartridge()
	if err != nil {
		t.Fatalf("Failed to build cartridge: %v", err)
	}
	return NewConsole(cart)
}

// dotsElapsed is the number of dots since power-on, valid within the first frame.
func dotsElapsed(p *ppu.PPU) int {
	s := p.Scan()
	return s.Line()*ppu.ScanlineDots + s.Dot()
}

type traceRow struct {
	pc      uint16
	a, x, y uint8
	p, s    uint8
	cycles  int
}

func TestEndToEndTrace(t *testing.T) {
	program := []uint8{
		0xA2, 0xFF,       // LDX #$FF
		0x9A,             // TXS
		0xA9, 0x10,       // LDA #$10
		0x85, 0x00,       // STA $00
		0x18,             // CLC
		0x65, 0x00,       // ADC $00
		0xAA,             // TAX
		0xCA,             // DEX
		0x9D, 0x00, 0x02, // STA $0200,X
		0xA0, 0x80,       // LDY #$80
		0x4C, 0x00, 0x80, // JMP $8000
	}
	cart, err := cartridge.NewROMBuilder().
		WithMirroring(memory.MirrorHorizontal).
		WithInstructions(program...).
		BuildCartridge()
	if err != nil {
		t.Fatalf("Failed to build cartridge: %v", err)
	}

	h := cart.Header()
	if h.PRGUnits != 1 || h.CHRUnits != 1 || h.Mapper != 0 || h.Mirroring != memory.MirrorHorizontal {
		t.Fatalf("Unexpected header %+v", h)
	}
	for i := uint16(0); i < 0x4000; i += 0x0FFF {
		if cart.ReadPRG(0x8000+i) != cart.ReadPRG(0xC000+i) {
			t.Fatalf("Expected PRG mirrored at $%04X and $%04X", 0x8000+i, 0xC000+i)
		}
	}

	c := NewConsole(cart)
	expected := []traceRow{
		{0x8002, 0x00, 0xFF, 0x00, 0xA0, 0xFD, 2},
		{0x8003, 0x00, 0xFF, 0x00, 0xA0, 0xFF, 2},
		{0x8005, 0x10, 0xFF, 0x00, 0x20, 0xFF, 2},
		{0x8007, 0x10, 0xFF, 0x00, 0x20, 0xFF, 3},
		{0x8008, 0x10, 0xFF, 0x00, 0x20, 0xFF, 2},
		{0x800A, 0x20, 0xFF, 0x00, 0x20, 0xFF, 3},
		{0x800B, 0x20, 0x20, 0x00, 0x20, 0xFF, 2},
		{0x800C, 0x20, 0x1F, 0x00, 0x20, 0xFF, 2},
		{0x800F, 0x20, 0x1F, 0x00, 0x20, 0xFF, 5},
		{0x8011, 0x20, 0x1F, 0x80, 0xA0, 0xFF, 2},
		{0x8000, 0x20, 0x1F, 0x80, 0xA0, 0xFF, 3},
		{0x8002, 0x20, 0xFF, 0x80, 0xA0, 0xFF, 2},
	}

	regs := c.CPU().Registers()
	if regs.PC.Value() != 0x8000 || regs.P.Value() != 0x20 || regs.S.Value() != 0xFD {
		t.Fatalf("Unexpected power-on state PC=%04X P=%02X S=%02X", regs.PC.Value(), regs.P.Value(), regs.S.Value())
	}

	screen := &ppu.FrameBuffer{}
	total := 0
	for i, row := range expected {
		cycles, err := c.Step(screen)
		if err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
		total += cycles
		got := traceRow{regs.PC.Value(), regs.A(), regs.X(), regs.Y(), regs.P.Value(), regs.S.Value(), cycles}
		if got != row {
			t.Errorf("Step %d: expected %+v, got %+v", i, row, got)
		}
	}

	if v := c.memory.Read(0x021F); v != 0x20 {
		t.Errorf("Expected $021F = 0x20, got 0x%02X", v)
	}
	if dotsElapsed(c.PPU()) != total*DefaultDotsPerCycle {
		t.Errorf("Expected %d dots, got %d", total*DefaultDotsPerCycle, dotsElapsed(c.PPU()))
	}
}

func TestDotsPerCycleOption(t *testing.T) {
	cart, err := cartridge.NewROMBuilder().WithInstructions(0xEA).BuildCartridge()
	if err != nil {
		t.Fatalf("Failed to build cartridge: %v", err)
	}
	c := NewConsole(cart, WithDotsPerCycle(4))
	if _, err := c.Step(&ppu.FrameBuffer{}); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if dotsElapsed(c.PPU()) != 8 {
		t.Errorf("Expected 8 dots for a 2-cycle NOP, got %d", dotsElapsed(c.PPU()))
	}
}

func TestIllegalOpcodeStopsConsole(t *testing.T) {
	c := newTestConsole(t, 0xEA, 0x02)
	screen := &ppu.FrameBuffer{}
	c.Step(screen)
	_, err := c.Step(screen)
	if !errors.Is(err, cpu.ErrIllegalOpcode) {
		t.Fatalf("Expected ErrIllegalOpcode, got %v", err)
	}
	if err := c.RunFrame(screen); !errors.Is(err, cpu.ErrIllegalOpcode) {
		t.Errorf("Expected RunFrame to keep failing, got %v", err)
	}
}

func TestUnmappedPPUReadStopsConsole(t *testing.T) {
	c := newTestConsole(t,
		0xA9, 0x30,       // LDA #$30
		0x8D, 0x06, 0x20, // STA $2006
		0xA9, 0x00,       // LDA #$00
		0x8D, 0x06, 0x20, // STA $2006
		0xAD, 0x07, 0x20, // LDA $2007
	)
	err := c.RunFrame(&ppu.FrameBuffer{})
	if !errors.Is(err, ppu.ErrUnmappedAddress) {
		t.Fatalf("Expected ErrUnmappedAddress, got %v", err)
	}
	if c.CPU().Registers().PC.Value() != 0x800D {
		t.Errorf("Expected stop after the faulting read, PC=0x%04X", c.CPU().Registers().PC.Value())
	}
}

func TestRunFrame(t *testing.T) {
	c := newTestConsole(t, 0x4C, 0x00, 0x80) // JMP $8000
	screen := &ppu.FrameBuffer{}
	for i := 1; i <= 2; i++ {
		if err := c.RunFrame(screen); err != nil {
			t.Fatalf("RunFrame %d: %v", i, err)
		}
		if c.PPU().Frames() != uint64(i) {
			t.Errorf("Expected %d frames, got %d", i, c.PPU().Frames())
		}
	}
}

func TestNMIServicedDuringFrame(t *testing.T) {
	cart, err := cartridge.NewROMBuilder().
		WithInstructions(
			0xA9, 0x80,       // LDA #$80
			0x8D, 0x00, 0x20, // STA $2000
			0x4C, 0x05, 0x80, // JMP $8005
		).
		WithData(0x1000,
			0xE6, 0x10, // INC $10
			0x40,       // RTI
		).
		WithNMIVector(0x9000).
		BuildCartridge()
	if err != nil {
		t.Fatalf("Failed to build cartridge: %v", err)
	}
	c := NewConsole(cart)
	screen := &ppu.FrameBuffer{}

	for i := 0; i < 3; i++ {
		if err := c.RunFrame(screen); err != nil {
			t.Fatalf("RunFrame: %v", err)
		}
	}
	if v := c.memory.Read(0x0010); v != 3 {
		t.Errorf("Expected one NMI per frame (3), got %d", v)
	}
	if pc := c.CPU().Registers().PC.Value(); pc < 0x8005 || pc > 0x8007 {
		t.Errorf("Expected to be back in the main loop, PC=0x%04X", pc)
	}
}

func TestDMAStall(t *testing.T) {
	c := newTestConsole(t,
		0xA9, 0x02,       // LDA #$02
		0x8D, 0x14, 0x40, // STA $4014
	)
	c.memory.Write(0x0200, 0x40)
	c.memory.Write(0x0201, 0x07)

	screen := &ppu.FrameBuffer{}
	c.Step(screen)
	cycles, err := c.Step(screen)
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if cycles != 4 {
		t.Errorf("Expected 4 cycles for STA abs, got %d", cycles)
	}

	// LDA ends on cycle 2, so the transfer starts on an even cycle.
	expected := (2 + 4 + 513) * DefaultDotsPerCycle
	if dotsElapsed(c.PPU()) != expected {
		t.Errorf("Expected %d dots including the stall, got %d", expected, dotsElapsed(c.PPU()))
	}
	if s := c.PPU().OAM().Sprite(0); s.Y != 0x40 || s.Tile != 0x07 {
		t.Errorf("Expected OAM copied from page 2, got %+v", s)
	}
}

func TestMirroringFollowsMapper(t *testing.T) {
	// Shift control value 0b00010 (vertical) into MMC1.
	cart, err := cartridge.NewROMBuilder().
		WithMapper(1).
		WithPRGUnits(2).
		WithInstructions(
			0xA9, 0x00, 0x8D, 0x00, 0x80, // LDA #0, STA $8000
			0xA9, 0x01, 0x8D, 0x00, 0x80, // LDA #1, STA $8000
			0xA9, 0x00, 0x8D, 0x00, 0x80, // LDA #0, STA $8000
			0x8D, 0x00, 0x80,             // STA $8000
			0x8D, 0x00, 0x80,             // STA $8000
		).
		BuildCartridge()
	if err != nil {
		t.Fatalf("Failed to build cartridge: %v", err)
	}
	c := NewConsole(cart)
	if m := c.PPU().NameTable().Mirroring(); m != memory.MirrorHorizontal {
		t.Fatalf("Expected horizontal at power-on, got %v", m)
	}

	screen := &ppu.FrameBuffer{}
	for i := 0; i < 8; i++ {
		if _, err := c.Step(screen); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}
	if m := c.PPU().NameTable().Mirroring(); m != memory.MirrorVertical {
		t.Errorf("Expected vertical after control write, got %v", m)
	}
}

func TestControllerThroughBus(t *testing.T) {
	c := newTestConsole(t,
		0xA9, 0x01,       // LDA #$01
		0x8D, 0x16, 0x40, // STA $4016
		0xA9, 0x00,       // LDA #$00
		0x8D, 0x16, 0x40, // STA $4016
		0xAD, 0x16, 0x40, // LDA $4016
		0xAE, 0x16, 0x40, // LDX $4016
	)
	c.SetButtons(1, 0x80) // A
	screen := &ppu.FrameBuffer{}
	for i := 0; i < 6; i++ {
		if _, err := c.Step(screen); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}
	regs := c.CPU().Registers()
	if regs.A() != 1 || regs.X() != 0 {
		t.Errorf("Expected A bit then B bit (1, 0), got %d, %d", regs.A(), regs.X())
	}
}

func TestReset(t *testing.T) {
	c := newTestConsole(t, 0xA9, 0x42, 0x4C, 0x00, 0x80)
	screen := &ppu.FrameBuffer{}
	c.Step(screen)
	c.Reset()
	regs := c.CPU().Registers()
	if regs.PC.Value() != 0x8000 || regs.A() != 0 {
		t.Errorf("Expected reset to vector with A=0, got PC=0x%04X A=0x%02X", regs.PC.Value(), regs.A())
	}
}
