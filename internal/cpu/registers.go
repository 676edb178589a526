package cpu

// Register file constants
const (
	stackBase   = 0x0100
	unusedMask  = 0x20
	stackPower  = 0xFD
	nmiVector   = 0xFFFA
	resetVector = 0xFFFC
	irqVector   = 0xFFFE
)

// ProgramCounter is the 16-bit instruction pointer.
type ProgramCounter struct {
	value uint16
}

// Advance moves the counter by n (which may be negative) and returns the
// value it held before moving. The result wraps modulo 65536.
func (pc *ProgramCounter) Advance(n int) uint16 {
	old := pc.value
	pc.value = uint16(int(pc.value) + n)
	return old
}

// Value returns the current address.
func (pc *ProgramCounter) Value() uint16 { return pc.value }

// Assign replaces the current address.
func (pc *ProgramCounter) Assign(address uint16) { pc.value = address }

// Hi returns the high byte.
func (pc *ProgramCounter) Hi() uint8 { return uint8(pc.value >> 8) }

// Lo returns the low byte.
func (pc *ProgramCounter) Lo() uint8 { return uint8(pc.value) }

// Flag identifies one bit of the processor status.
type Flag uint8

// Status bits
const (
	Carry            Flag = 0x01
	Zero             Flag = 0x02
	InterruptDisable Flag = 0x04
	Decimal          Flag = 0x08
	Break            Flag = 0x10
	Unused           Flag = 0x20
	Overflow         Flag = 0x40
	Negative         Flag = 0x80
)

// Flags is the processor status register. Bit 5 always reads as set.
type Flags struct {
	bits uint8
}

// Test reports whether f is set.
func (p *Flags) Test(f Flag) bool { return p.bits&uint8(f) != 0 }

// Set sets or clears f.
func (p *Flags) Set(f Flag, on bool) {
	if on {
		p.bits |= uint8(f)
	} else {
		p.bits &^= uint8(f)
	}
	p.bits |= unusedMask
}

// Clear clears f.
func (p *Flags) Clear(f Flag) { p.Set(f, false) }

// Value returns the status byte.
func (p *Flags) Value() uint8 { return p.bits | unusedMask }

// Assign stores b with bit 5 forced on.
func (p *Flags) Assign(b uint8) { p.bits = b | unusedMask }

// updateZN sets Zero and Negative from a freshly written register value.
func (p *Flags) updateZN(v uint8) {
	p.Set(Zero, v == 0)
	p.Set(Negative, v&0x80 != 0)
}

// StackRegister is the 8-bit stack pointer anchored at page one.
type StackRegister struct {
	value uint8
}

// Push returns the address to write and then decrements the pointer.
func (s *StackRegister) Push() uint16 {
	address := stackBase + uint16(s.value)
	s.value--
	return address
}

// Pop increments the pointer and returns the address to read.
func (s *StackRegister) Pop() uint16 {
	s.value++
	return stackBase + uint16(s.value)
}

// Value returns the raw pointer.
func (s *StackRegister) Value() uint8 { return s.value }

// Assign replaces the raw pointer.
func (s *StackRegister) Assign(v uint8) { s.value = v }

// Registers groups the programmer-visible state. The arithmetic registers
// can only be written through the setters so Zero/Negative stay in sync.
type Registers struct {
	PC ProgramCounter
	P  Flags
	S  StackRegister

	a, x, y uint8
}

// A returns the accumulator.
func (r *Registers) A() uint8 { return r.a }

// X returns index register X.
func (r *Registers) X() uint8 { return r.x }

// Y returns index register Y.
func (r *Registers) Y() uint8 { return r.y }

// SetA writes the accumulator and updates Zero/Negative.
func (r *Registers) SetA(v uint8) {
	r.a = v
	r.P.updateZN(v)
}

// SetX writes X and updates Zero/Negative.
func (r *Registers) SetX(v uint8) {
	r.x = v
	r.P.updateZN(v)
}

// SetY writes Y and updates Zero/Negative.
func (r *Registers) SetY(v uint8) {
	r.y = v
	r.P.updateZN(v)
}

func (r *Registers) powerOn() {
	r.a, r.x, r.y = 0, 0, 0
	r.P.Assign(0)
	r.S.Assign(stackPower)
}
