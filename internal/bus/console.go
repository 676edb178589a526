// Package bus wires the NES components together and steps them in lock-step.
package bus

import (
	"fmt"

	"github.com/golang/glog"

	"nemo/internal/cpu"
	"nemo/internal/input"
	"nemo/internal/memory"
	"nemo/internal/ppu"
)

// DefaultDotsPerCycle is the NTSC CPU:PPU clock ratio.
const DefaultDotsPerCycle = 3

// OAM DMA halts the CPU for 513 cycles, 514 when it starts on an odd cycle.
const dmaStallCycles = 513

// Option configures a Console.
type Option func(*Console)

// WithDotsPerCycle sets how many PPU dots run per CPU cycle.
func WithDotsPerCycle(n int) Option {
	return func(c *Console) {
		if n > 0 {
			c.dotsPerCycle = n
		}
	}
}

// Console connects all NES components together
type Console struct {
	cpu    *cpu.CPU
	ppu    *ppu.PPU
	memory *memory.Memory
	input  *input.InputState
	cart   memory.Cartridge

	dotsPerCycle int

	// Dots owed to the PPU for a DMA stall, paid on the next Step.
	stallDots int

	frameReady bool
}

// NewConsole creates a console around a loaded cartridge.
func NewConsole(cart memory.Cartridge, opts ...Option) *Console {
	c := &Console{
		cart:         cart,
		input:        input.NewInputState(),
		dotsPerCycle: DefaultDotsPerCycle,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.ppu = ppu.New(cart, cart.Mirroring())
	c.memory = memory.New(c.ppu, cart)
	c.memory.SetInputSystem(c.input)
	c.memory.SetDMACallback(c.handleDMA)
	c.cpu = cpu.New(c.memory)
	return c
}

// handleDMA charges the CPU stall of an OAM DMA transfer as PPU dots.
func (c *Console) handleDMA(page uint8) {
	stall := dmaStallCycles
	if c.cpu.Cycles()%2 == 1 {
		stall++
	}
	c.stallDots += stall * c.dotsPerCycle
	if glog.V(3) {
		glog.Infof("bus: OAM DMA from $%02X00, %d stall cycles", page, stall)
	}
}

// Reset re-enters the program at the reset vector. RAM, video memory and
// the picture unit's state are kept, as on hardware.
func (c *Console) Reset() {
	c.cpu.Reset()
	c.input.Reset()
	c.stallDots = 0
	c.frameReady = false
}

// CPU returns the processor.
func (c *Console) CPU() *cpu.CPU { return c.cpu }

// PPU returns the picture unit.
func (c *Console) PPU() *ppu.PPU { return c.ppu }

// SetButtons sets the state byte of controller 1 or 2 (A in bit 7, Right in bit 0).
func (c *Console) SetButtons(player int, buttons uint8) {
	if ctrl := c.input.Controller(player); ctrl != nil {
		ctrl.SetButtons(buttons)
	}
}

// Step runs one CPU step and the matching number of PPU dots.
// It returns the CPU cycles the step took and the first fatal fault.
func (c *Console) Step(screen ppu.Screen) (int, error) {
	cycles, err := c.cpu.Step()
	if err != nil {
		return 0, fmt.Errorf("cpu: %w", err)
	}
	if err := c.ppu.Err(); err != nil {
		return cycles, fmt.Errorf("ppu: %w", err)
	}

	// Mappers may switch mirroring on any CPU write.
	c.ppu.SetMirroring(c.cart.Mirroring())

	dots := cycles*c.dotsPerCycle + c.stallDots
	c.stallDots = 0
	for i := 0; i < dots; i++ {
		c.ppu.Tick(screen)
		if c.ppu.FrameReady() {
			c.frameReady = true
		}
	}
	return cycles, nil
}

// RunFrame steps until the PPU completes a frame.
func (c *Console) RunFrame(screen ppu.Screen) error {
	start := c.cpu.Cycles()
	for !c.frameReady {
		if _, err := c.Step(screen); err != nil {
			return err
		}
	}
	c.frameReady = false

	if glog.V(2) {
		glog.Infof("bus: frame %d, %d CPU cycles", c.ppu.Frames(), c.cpu.Cycles()-start)
	}
	return nil
}
