package cpu

// Mode selects how an instruction finds its operand.
type Mode uint8

// Addressing modes
const (
	Implied Mode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
	Relative
)

var modeNames = [...]string{
	Implied:         "imp",
	Accumulator:     "acc",
	Immediate:       "imm",
	ZeroPage:        "zp",
	ZeroPageX:       "zpx",
	ZeroPageY:       "zpy",
	Absolute:        "abs",
	AbsoluteX:       "abx",
	AbsoluteY:       "aby",
	Indirect:        "ind",
	IndexedIndirect: "izx",
	IndirectIndexed: "izy",
	Relative:        "rel",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "???"
}

// Operand resolves the effective address of one instruction. It is built
// after the opcode fetch and consumes operand bytes from the program
// counter the first time it is resolved; later calls reuse that result.
type Operand struct {
	cpu  *CPU
	mode Mode

	resolved bool
	address  uint16
	extra    int
}

func newOperand(cpu *CPU, mode Mode) *Operand {
	return &Operand{cpu: cpu, mode: mode}
}

// Mode returns the addressing mode being resolved.
func (o *Operand) Mode() Mode { return o.mode }

// Resolve returns the effective address and the page-cross penalty.
// Implied and Accumulator modes have no address and report zero.
func (o *Operand) Resolve() (uint16, int) {
	if o.resolved {
		return o.address, o.extra
	}
	o.resolved = true

	c := o.cpu
	pc := &c.reg.PC
	switch o.mode {
	case Implied, Accumulator:
	case Immediate:
		o.address = pc.Advance(1)
	case ZeroPage:
		o.address = uint16(c.read(pc.Advance(1)))
	case ZeroPageX:
		o.address = uint16(c.read(pc.Advance(1)) + c.reg.X())
	case ZeroPageY:
		o.address = uint16(c.read(pc.Advance(1)) + c.reg.Y())
	case Absolute:
		o.address = c.readWord(pc.Advance(2))
	case AbsoluteX:
		o.address, o.extra = index(c.readWord(pc.Advance(2)), int(c.reg.X()))
	case AbsoluteY:
		o.address, o.extra = index(c.readWord(pc.Advance(2)), int(c.reg.Y()))
	case Indirect:
		o.address = c.readWord(c.readWord(pc.Advance(2)))
	case IndexedIndirect:
		o.address = c.readZeroPageWord(c.read(pc.Advance(1)) + c.reg.X())
	case IndirectIndexed:
		o.address, o.extra = index(c.readZeroPageWord(c.read(pc.Advance(1))), int(c.reg.Y()))
	case Relative:
		offset := int8(c.read(pc.Advance(1)))
		o.address, o.extra = index(pc.Value(), int(offset))
	}
	return o.address, o.extra
}

// Load reads the operand value.
func (o *Operand) Load() (uint8, int) {
	if o.mode == Accumulator {
		return o.cpu.reg.A(), 0
	}
	address, extra := o.Resolve()
	return o.cpu.read(address), extra
}

// Store writes the operand value.
func (o *Operand) Store(v uint8) int {
	if o.mode == Accumulator {
		o.cpu.reg.SetA(v)
		return 0
	}
	address, extra := o.Resolve()
	o.cpu.write(address, v)
	return extra
}

// index offsets base and reports 1 when the high byte changes.
func index(base uint16, offset int) (uint16, int) {
	address := uint16(int(base) + offset)
	if address&0xFF00 != base&0xFF00 {
		return address, 1
	}
	return address, 0
}
