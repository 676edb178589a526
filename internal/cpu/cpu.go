// Package cpu implements the 6502 processor of the console: the register
// file, operand resolution, the opcode table and the step engine.
package cpu

import (
	"errors"
	"fmt"

	"github.com/golang/glog"
)

// ErrIllegalOpcode is returned when the fetched byte is not a documented
// instruction. The CPU halts and keeps returning the error.
var ErrIllegalOpcode = errors.New("illegal opcode")

// IllegalOpcodeError records where execution stopped.
type IllegalOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *IllegalOpcodeError) Error() string {
	return fmt.Sprintf("illegal opcode $%02X at $%04X", e.Opcode, e.PC)
}

func (e *IllegalOpcodeError) Unwrap() error { return ErrIllegalOpcode }

// Bus is the CPU's view of the address space.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	// NMIPending reports a raised NMI line and acknowledges it.
	NMIPending() bool
}

// CPU represents the 6502 processor used in the console
type CPU struct {
	reg    Registers
	bus    Bus
	cycles uint64
	halted error
}

// New creates a CPU attached to bus and performs the power-on sequence.
func New(bus Bus) *CPU {
	cpu := &CPU{bus: bus}
	cpu.Reset()
	return cpu
}

// Reset restores power-on register state and jumps through the reset vector.
func (cpu *CPU) Reset() {
	cpu.reg.powerOn()
	cpu.reg.PC.Assign(cpu.readWord(resetVector))
	cpu.halted = nil
}

// Registers exposes the register file.
func (cpu *CPU) Registers() *Registers { return &cpu.reg }

// Cycles returns the number of cycles executed since power-on.
func (cpu *CPU) Cycles() uint64 { return cpu.cycles }

// Halted returns the fault that stopped the CPU, if any.
func (cpu *CPU) Halted() error { return cpu.halted }

// Step services a pending NMI or executes one instruction and returns the
// cycles it took.
func (cpu *CPU) Step() (int, error) {
	if cpu.halted != nil {
		return 0, cpu.halted
	}

	if cpu.bus.NMIPending() {
		cpu.interrupt(nmiVector)
		cpu.cycles += 7
		return 7, nil
	}

	at := cpu.reg.PC.Advance(1)
	opcode := cpu.read(at)
	inst, ok := Decode(opcode)
	if !ok {
		cpu.reg.PC.Assign(at)
		cpu.halted = &IllegalOpcodeError{Opcode: opcode, PC: at}
		glog.Errorf("cpu: %v", cpu.halted)
		return 0, cpu.halted
	}

	if glog.V(4) {
		glog.Infof("%04X  %02X  %s %-3s  A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d",
			at, opcode, inst.Op, inst.Mode, cpu.reg.a, cpu.reg.x, cpu.reg.y,
			cpu.reg.P.Value(), cpu.reg.S.Value(), cpu.cycles)
	}

	operand := newOperand(cpu, inst.Mode)
	cycles := inst.Cycles + cpu.execute(inst.Op, operand)
	if inst.PageCycle {
		_, extra := operand.Resolve()
		cycles += extra
	}
	cpu.cycles += uint64(cycles)
	return cycles, nil
}

func (cpu *CPU) read(address uint16) uint8 { return cpu.bus.Read(address) }

func (cpu *CPU) write(address uint16, value uint8) { cpu.bus.Write(address, value) }

func (cpu *CPU) readWord(address uint16) uint16 {
	lo := uint16(cpu.read(address))
	hi := uint16(cpu.read(address + 1))
	return hi<<8 | lo
}

// readZeroPageWord reads a pointer whose high byte wraps within page zero.
func (cpu *CPU) readZeroPageWord(address uint8) uint16 {
	lo := uint16(cpu.read(uint16(address)))
	hi := uint16(cpu.read(uint16(address + 1)))
	return hi<<8 | lo
}

func (cpu *CPU) push(value uint8) { cpu.write(cpu.reg.S.Push(), value) }

func (cpu *CPU) pop() uint8 { return cpu.read(cpu.reg.S.Pop()) }

func (cpu *CPU) pushWord(value uint16) {
	cpu.push(uint8(value >> 8))
	cpu.push(uint8(value))
}

func (cpu *CPU) popWord() uint16 {
	lo := uint16(cpu.pop())
	hi := uint16(cpu.pop())
	return hi<<8 | lo
}

// interrupt pushes the return state with Break clear and vectors away.
func (cpu *CPU) interrupt(vector uint16) {
	cpu.pushWord(cpu.reg.PC.Value())
	cpu.push(cpu.reg.P.Value() &^ uint8(Break))
	cpu.reg.P.Set(InterruptDisable, true)
	cpu.reg.PC.Assign(cpu.readWord(vector))
}
