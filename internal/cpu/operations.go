package cpu

// execute runs op against its operand and returns cycles beyond the base
// count that the operation itself decides (taken branches).
func (cpu *CPU) execute(op Operation, o *Operand) int {
	r := &cpu.reg
	p := &r.P

	switch op {
	// Loads and stores
	case LDA:
		v, _ := o.Load()
		r.SetA(v)
	case LDX:
		v, _ := o.Load()
		r.SetX(v)
	case LDY:
		v, _ := o.Load()
		r.SetY(v)
	case STA:
		o.Store(r.a)
	case STX:
		o.Store(r.x)
	case STY:
		o.Store(r.y)

	// Arithmetic
	case ADC:
		v, _ := o.Load()
		cpu.addWithCarry(v)
	case SBC:
		v, _ := o.Load()
		cpu.addWithCarry(^v)
	case CMP:
		v, _ := o.Load()
		cpu.compare(r.a, v)
	case CPX:
		v, _ := o.Load()
		cpu.compare(r.x, v)
	case CPY:
		v, _ := o.Load()
		cpu.compare(r.y, v)

	// Logic
	case AND:
		v, _ := o.Load()
		r.SetA(r.a & v)
	case ORA:
		v, _ := o.Load()
		r.SetA(r.a | v)
	case EOR:
		v, _ := o.Load()
		r.SetA(r.a ^ v)
	case BIT:
		v, _ := o.Load()
		p.Set(Zero, r.a&v == 0)
		p.Set(Overflow, v&0x40 != 0)
		p.Set(Negative, v&0x80 != 0)

	// Shifts and rotates
	case ASL:
		v, _ := o.Load()
		p.Set(Carry, v&0x80 != 0)
		cpu.modify(o, v<<1)
	case LSR:
		v, _ := o.Load()
		p.Set(Carry, v&0x01 != 0)
		cpu.modify(o, v>>1)
	case ROL:
		v, _ := o.Load()
		result := v << 1
		if p.Test(Carry) {
			result |= 0x01
		}
		p.Set(Carry, v&0x80 != 0)
		cpu.modify(o, result)
	case ROR:
		v, _ := o.Load()
		result := v >> 1
		if p.Test(Carry) {
			result |= 0x80
		}
		p.Set(Carry, v&0x01 != 0)
		cpu.modify(o, result)

	// Increments and decrements
	case INC:
		v, _ := o.Load()
		cpu.modify(o, v+1)
	case DEC:
		v, _ := o.Load()
		cpu.modify(o, v-1)
	case INX:
		r.SetX(r.x + 1)
	case INY:
		r.SetY(r.y + 1)
	case DEX:
		r.SetX(r.x - 1)
	case DEY:
		r.SetY(r.y - 1)

	// Transfers
	case TAX:
		r.SetX(r.a)
	case TAY:
		r.SetY(r.a)
	case TXA:
		r.SetA(r.x)
	case TYA:
		r.SetA(r.y)
	case TSX:
		r.SetX(r.S.Value())
	case TXS:
		r.S.Assign(r.x)

	// Stack
	case PHA:
		cpu.push(r.a)
	case PHP:
		cpu.push(p.Value() | uint8(Break))
	case PLA:
		r.SetA(cpu.pop())
	case PLP:
		p.Assign(cpu.pop() &^ uint8(Break))

	// Flags
	case CLC:
		p.Clear(Carry)
	case CLD:
		p.Clear(Decimal)
	case CLI:
		p.Clear(InterruptDisable)
	case CLV:
		p.Clear(Overflow)
	case SEC:
		p.Set(Carry, true)
	case SED:
		p.Set(Decimal, true)
	case SEI:
		p.Set(InterruptDisable, true)

	// Branches
	case BCC:
		return cpu.branch(o, !p.Test(Carry))
	case BCS:
		return cpu.branch(o, p.Test(Carry))
	case BNE:
		return cpu.branch(o, !p.Test(Zero))
	case BEQ:
		return cpu.branch(o, p.Test(Zero))
	case BPL:
		return cpu.branch(o, !p.Test(Negative))
	case BMI:
		return cpu.branch(o, p.Test(Negative))
	case BVC:
		return cpu.branch(o, !p.Test(Overflow))
	case BVS:
		return cpu.branch(o, p.Test(Overflow))

	// Jumps and interrupts
	case JMP:
		address, _ := o.Resolve()
		r.PC.Assign(address)
	case JSR:
		address, _ := o.Resolve()
		cpu.pushWord(r.PC.Value() - 1)
		r.PC.Assign(address)
	case RTS:
		r.PC.Assign(cpu.popWord() + 1)
	case RTI:
		p.Assign(cpu.pop() &^ uint8(Break))
		r.PC.Assign(cpu.popWord())
	case BRK:
		// The byte after BRK is padding and is skipped on return.
		r.PC.Advance(1)
		cpu.pushWord(r.PC.Value())
		cpu.push(p.Value() | uint8(Break))
		p.Set(InterruptDisable, true)
		r.PC.Assign(cpu.readWord(irqVector))

	case NOP:
	}
	return 0
}

// addWithCarry is binary ADC; SBC feeds it the complemented operand.
func (cpu *CPU) addWithCarry(v uint8) {
	a := cpu.reg.a
	sum := uint16(a) + uint16(v)
	if cpu.reg.P.Test(Carry) {
		sum++
	}
	result := uint8(sum)
	cpu.reg.P.Set(Carry, sum > 0xFF)
	cpu.reg.P.Set(Overflow, (a^result)&(v^result)&0x80 != 0)
	cpu.reg.SetA(result)
}

func (cpu *CPU) compare(reg, v uint8) {
	cpu.reg.P.Set(Carry, reg >= v)
	cpu.reg.P.updateZN(reg - v)
}

// modify writes a read-modify-write result back and updates Zero/Negative.
func (cpu *CPU) modify(o *Operand, v uint8) {
	o.Store(v)
	cpu.reg.P.updateZN(v)
}

// branch jumps when taken: one extra cycle, plus one on a page cross.
func (cpu *CPU) branch(o *Operand, taken bool) int {
	target, extra := o.Resolve()
	if !taken {
		return 0
	}
	cpu.reg.PC.Assign(target)
	return 1 + extra
}
