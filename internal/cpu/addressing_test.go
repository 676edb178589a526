package cpu

import "testing"

func TestOperandResolve(t *testing.T) {
	tests := []struct {
		name     string
		mode     Mode
		operands []uint8
		setup    func(*CPUTestHelper)
		address  uint16
		extra    int
		pc       uint16
	}{
		{name: "immediate", mode: Immediate, operands: []uint8{0x42}, address: 0x8001, pc: 0x8002},
		{name: "zero page", mode: ZeroPage, operands: []uint8{0x42}, address: 0x0042, pc: 0x8002},
		{
			name: "zero page X wraps", mode: ZeroPageX, operands: []uint8{0xF0},
			setup:   func(h *CPUTestHelper) { h.CPU.reg.SetX(0x20) },
			address: 0x0010, pc: 0x8002,
		},
		{
			name: "zero page Y", mode: ZeroPageY, operands: []uint8{0x10},
			setup:   func(h *CPUTestHelper) { h.CPU.reg.SetY(0x05) },
			address: 0x0015, pc: 0x8002,
		},
		{name: "absolute", mode: Absolute, operands: []uint8{0x34, 0x12}, address: 0x1234, pc: 0x8003},
		{
			name: "absolute X no cross", mode: AbsoluteX, operands: []uint8{0x00, 0x12},
			setup:   func(h *CPUTestHelper) { h.CPU.reg.SetX(0x10) },
			address: 0x1210, pc: 0x8003,
		},
		{
			name: "absolute Y cross", mode: AbsoluteY, operands: []uint8{0xF0, 0x12},
			setup:   func(h *CPUTestHelper) { h.CPU.reg.SetY(0x20) },
			address: 0x1310, extra: 1, pc: 0x8003,
		},
		{
			name: "indirect reads unwrapped pointer", mode: Indirect, operands: []uint8{0xFF, 0x10},
			setup: func(h *CPUTestHelper) {
				h.Memory.SetBytes(0x10FF, 0x34)
				h.Memory.SetBytes(0x1100, 0x12)
			},
			address: 0x1234, pc: 0x8003,
		},
		{
			name: "indexed indirect wraps in page zero", mode: IndexedIndirect, operands: []uint8{0xFE},
			setup: func(h *CPUTestHelper) {
				h.CPU.reg.SetX(0x01)
				h.Memory.SetBytes(0x00FF, 0x78)
				h.Memory.SetBytes(0x0000, 0x56)
			},
			address: 0x5678, pc: 0x8002,
		},
		{
			name: "indirect indexed cross", mode: IndirectIndexed, operands: []uint8{0x20},
			setup: func(h *CPUTestHelper) {
				h.CPU.reg.SetY(0x10)
				h.Memory.SetBytes(0x0020, 0xF8, 0x30)
			},
			address: 0x3108, extra: 1, pc: 0x8002,
		},
		{name: "relative forward", mode: Relative, operands: []uint8{0x05}, address: 0x8007, pc: 0x8002},
		{name: "relative backward", mode: Relative, operands: []uint8{0xFE}, address: 0x8000, pc: 0x8002},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			h := NewCPUTestHelper()
			h.LoadProgram(append([]uint8{0xEA}, test.operands...)...)
			if test.setup != nil {
				test.setup(h)
			}
			h.CPU.reg.PC.Advance(1) // past the opcode

			o := newOperand(h.CPU, test.mode)
			address, extra := o.Resolve()
			if address != test.address {
				t.Errorf("Expected address 0x%04X, got 0x%04X", test.address, address)
			}
			if extra != test.extra {
				t.Errorf("Expected extra %d, got %d", test.extra, extra)
			}
			if pc := h.CPU.reg.PC.Value(); pc != test.pc {
				t.Errorf("Expected PC=0x%04X, got 0x%04X", test.pc, pc)
			}
		})
	}
}

func TestOperandResolvesOnce(t *testing.T) {
	h := NewCPUTestHelper()
	h.LoadProgram(0xEA, 0x34, 0x12)
	h.CPU.reg.PC.Advance(1)

	o := newOperand(h.CPU, Absolute)
	first, _ := o.Resolve()
	second, _ := o.Resolve()
	o.Store(0x99)
	v, _ := o.Load()

	if first != second || first != 0x1234 {
		t.Errorf("Expected cached address 0x1234, got 0x%04X and 0x%04X", first, second)
	}
	if pc := h.CPU.reg.PC.Value(); pc != 0x8003 {
		t.Errorf("Expected PC advanced once to 0x8003, got 0x%04X", pc)
	}
	if v != 0x99 {
		t.Errorf("Expected load after store to return 0x99, got 0x%02X", v)
	}
	if h.Memory.readCount[0x8001] != 1 {
		t.Errorf("Expected operand byte read once, got %d", h.Memory.readCount[0x8001])
	}
}

func TestAccumulatorOperand(t *testing.T) {
	h := NewCPUTestHelper()
	h.CPU.reg.SetA(0x33)

	o := newOperand(h.CPU, Accumulator)
	v, extra := o.Load()
	if v != 0x33 || extra != 0 {
		t.Errorf("Expected 0x33/0, got 0x%02X/%d", v, extra)
	}
	o.Store(0x00)
	if h.CPU.reg.A() != 0 || !h.CPU.reg.P.Test(Zero) {
		t.Errorf("Expected A=0 with Z set, got A=0x%02X P=0x%02X", h.CPU.reg.A(), h.CPU.reg.P.Value())
	}
	if pc := h.CPU.reg.PC.Value(); pc != 0x8000 {
		t.Errorf("Expected PC untouched, got 0x%04X", pc)
	}
}
