package cpu

// Operation is the behaviour half of an instruction.
type Operation uint8

// Documented 6502 operations
const (
	ADC Operation = iota
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA
)

var operationNames = [...]string{
	"ADC", "AND", "ASL", "BCC", "BCS", "BEQ", "BIT", "BMI", "BNE", "BPL",
	"BRK", "BVC", "BVS", "CLC", "CLD", "CLI", "CLV", "CMP", "CPX", "CPY",
	"DEC", "DEX", "DEY", "EOR", "INC", "INX", "INY", "JMP", "JSR", "LDA",
	"LDX", "LDY", "LSR", "NOP", "ORA", "PHA", "PHP", "PLA", "PLP", "ROL",
	"ROR", "RTI", "RTS", "SBC", "SEC", "SED", "SEI", "STA", "STX", "STY",
	"TAX", "TAY", "TSX", "TXA", "TXS", "TYA",
}

func (op Operation) String() string {
	if int(op) < len(operationNames) {
		return operationNames[op]
	}
	return "???"
}

// Instruction pairs an operation with its addressing mode and base timing.
// PageCycle marks instructions that pay one more cycle when indexing
// crosses a page.
type Instruction struct {
	Op        Operation
	Mode      Mode
	Cycles    int
	PageCycle bool
}

type opcodeEntry struct {
	opcode uint8
	Instruction
}

var opcodeEntries = []opcodeEntry{
	{0x69, Instruction{ADC, Immediate, 2, false}},
	{0x65, Instruction{ADC, ZeroPage, 3, false}},
	{0x75, Instruction{ADC, ZeroPageX, 4, false}},
	{0x6D, Instruction{ADC, Absolute, 4, false}},
	{0x7D, Instruction{ADC, AbsoluteX, 4, true}},
	{0x79, Instruction{ADC, AbsoluteY, 4, true}},
	{0x61, Instruction{ADC, IndexedIndirect, 6, false}},
	{0x71, Instruction{ADC, IndirectIndexed, 5, true}},

	{0x29, Instruction{AND, Immediate, 2, false}},
	{0x25, Instruction{AND, ZeroPage, 3, false}},
	{0x35, Instruction{AND, ZeroPageX, 4, false}},
	{0x2D, Instruction{AND, Absolute, 4, false}},
	{0x3D, Instruction{AND, AbsoluteX, 4, true}},
	{0x39, Instruction{AND, AbsoluteY, 4, true}},
	{0x21, Instruction{AND, IndexedIndirect, 6, false}},
	{0x31, Instruction{AND, IndirectIndexed, 5, true}},

	{0x0A, Instruction{ASL, Accumulator, 2, false}},
	{0x06, Instruction{ASL, ZeroPage, 5, false}},
	{0x16, Instruction{ASL, ZeroPageX, 6, false}},
	{0x0E, Instruction{ASL, Absolute, 6, false}},
	{0x1E, Instruction{ASL, AbsoluteX, 7, false}},

	// Branch timing is settled by the branch itself.
	{0x90, Instruction{BCC, Relative, 2, false}},
	{0xB0, Instruction{BCS, Relative, 2, false}},
	{0xF0, Instruction{BEQ, Relative, 2, false}},
	{0x30, Instruction{BMI, Relative, 2, false}},
	{0xD0, Instruction{BNE, Relative, 2, false}},
	{0x10, Instruction{BPL, Relative, 2, false}},
	{0x50, Instruction{BVC, Relative, 2, false}},
	{0x70, Instruction{BVS, Relative, 2, false}},

	{0x24, Instruction{BIT, ZeroPage, 3, false}},
	{0x2C, Instruction{BIT, Absolute, 4, false}},

	{0x00, Instruction{BRK, Implied, 7, false}},

	{0x18, Instruction{CLC, Implied, 2, false}},
	{0xD8, Instruction{CLD, Implied, 2, false}},
	{0x58, Instruction{CLI, Implied, 2, false}},
	{0xB8, Instruction{CLV, Implied, 2, false}},

	{0xC9, Instruction{CMP, Immediate, 2, false}},
	{0xC5, Instruction{CMP, ZeroPage, 3, false}},
	{0xD5, Instruction{CMP, ZeroPageX, 4, false}},
	{0xCD, Instruction{CMP, Absolute, 4, false}},
	{0xDD, Instruction{CMP, AbsoluteX, 4, true}},
	{0xD9, Instruction{CMP, AbsoluteY, 4, true}},
	{0xC1, Instruction{CMP, IndexedIndirect, 6, false}},
	{0xD1, Instruction{CMP, IndirectIndexed, 5, true}},

	{0xE0, Instruction{CPX, Immediate, 2, false}},
	{0xE4, Instruction{CPX, ZeroPage, 3, false}},
	{0xEC, Instruction{CPX, Absolute, 4, false}},

	{0xC0, Instruction{CPY, Immediate, 2, false}},
	{0xC4, Instruction{CPY, ZeroPage, 3, false}},
	{0xCC, Instruction{CPY, Absolute, 4, false}},

	{0xC6, Instruction{DEC, ZeroPage, 5, false}},
	{0xD6, Instruction{DEC, ZeroPageX, 6, false}},
	{0xCE, Instruction{DEC, Absolute, 6, false}},
	{0xDE, Instruction{DEC, AbsoluteX, 7, false}},

	{0xCA, Instruction{DEX, Implied, 2, false}},
	{0x88, Instruction{DEY, Implied, 2, false}},

	{0x49, Instruction{EOR, Immediate, 2, false}},
	{0x45, Instruction{EOR, ZeroPage, 3, false}},
	{0x55, Instruction{EOR, ZeroPageX, 4, false}},
	{0x4D, Instruction{EOR, Absolute, 4, false}},
	{0x5D, Instruction{EOR, AbsoluteX, 4, true}},
	{0x59, Instruction{EOR, AbsoluteY, 4, true}},
	{0x41, Instruction{EOR, IndexedIndirect, 6, false}},
	{0x51, Instruction{EOR, IndirectIndexed, 5, true}},

	{0xE6, Instruction{INC, ZeroPage, 5, false}},
	{0xF6, Instruction{INC, ZeroPageX, 6, false}},
	{0xEE, Instruction{INC, Absolute, 6, false}},
	{0xFE, Instruction{INC, AbsoluteX, 7, false}},

	{0xE8, Instruction{INX, Implied, 2, false}},
	{0xC8, Instruction{INY, Implied, 2, false}},

	{0x4C, Instruction{JMP, Absolute, 3, false}},
	{0x6C, Instruction{JMP, Indirect, 5, false}},
	{0x20, Instruction{JSR, Absolute, 6, false}},

	{0xA9, Instruction{LDA, Immediate, 2, false}},
	{0xA5, Instruction{LDA, ZeroPage, 3, false}},
	{0xB5, Instruction{LDA, ZeroPageX, 4, false}},
	{0xAD, Instruction{LDA, Absolute, 4, false}},
	{0xBD, Instruction{LDA, AbsoluteX, 4, true}},
	{0xB9, Instruction{LDA, AbsoluteY, 4, true}},
	{0xA1, Instruction{LDA, IndexedIndirect, 6, false}},
	{0xB1, Instruction{LDA, IndirectIndexed, 5, true}},

	{0xA2, Instruction{LDX, Immediate, 2, false}},
	{0xA6, Instruction{LDX, ZeroPage, 3, false}},
	{0xB6, Instruction{LDX, ZeroPageY, 4, false}},
	{0xAE, Instruction{LDX, Absolute, 4, false}},
	{0xBE, Instruction{LDX, AbsoluteY, 4, true}},

	{0xA0, Instruction{LDY, Immediate, 2, false}},
	{0xA4, Instruction{LDY, ZeroPage, 3, false}},
	{0xB4, Instruction{LDY, ZeroPageX, 4, false}},
	{0xAC, Instruction{LDY, Absolute, 4, false}},
	{0xBC, Instruction{LDY, AbsoluteX, 4, true}},

	{0x4A, Instruction{LSR, Accumulator, 2, false}},
	{0x46, Instruction{LSR, ZeroPage, 5, false}},
	{0x56, Instruction{LSR, ZeroPageX, 6, false}},
	{0x4E, Instruction{LSR, Absolute, 6, false}},
	{0x5E, Instruction{LSR, AbsoluteX, 7, false}},

	{0xEA, Instruction{NOP, Implied, 2, false}},

	{0x09, Instruction{ORA, Immediate, 2, false}},
	{0x05, Instruction{ORA, ZeroPage, 3, false}},
	{0x15, Instruction{ORA, ZeroPageX, 4, false}},
	{0x0D, Instruction{ORA, Absolute, 4, false}},
	{0x1D, Instruction{ORA, AbsoluteX, 4, true}},
	{0x19, Instruction{ORA, AbsoluteY, 4, true}},
	{0x01, Instruction{ORA, IndexedIndirect, 6, false}},
	{0x11, Instruction{ORA, IndirectIndexed, 5, true}},

	{0x48, Instruction{PHA, Implied, 3, false}},
	{0x08, Instruction{PHP, Implied, 3, false}},
	{0x68, Instruction{PLA, Implied, 4, false}},
	{0x28, Instruction{PLP, Implied, 4, false}},

	{0x2A, Instruction{ROL, Accumulator, 2, false}},
	{0x26, Instruction{ROL, ZeroPage, 5, false}},
	{0x36, Instruction{ROL, ZeroPageX, 6, false}},
	{0x2E, Instruction{ROL, Absolute, 6, false}},
	{0x3E, Instruction{ROL, AbsoluteX, 7, false}},

	{0x6A, Instruction{ROR, Accumulator, 2, false}},
	{0x66, Instruction{ROR, ZeroPage, 5, false}},
	{0x76, Instruction{ROR, ZeroPageX, 6, false}},
	{0x6E, Instruction{ROR, Absolute, 6, false}},
	{0x7E, Instruction{ROR, AbsoluteX, 7, false}},

	{0x40, Instruction{RTI, Implied, 6, false}},
	{0x60, Instruction{RTS, Implied, 6, false}},

	{0xE9, Instruction{SBC, Immediate, 2, false}},
	{0xE5, Instruction{SBC, ZeroPage, 3, false}},
	{0xF5, Instruction{SBC, ZeroPageX, 4, false}},
	{0xED, Instruction{SBC, Absolute, 4, false}},
	{0xFD, Instruction{SBC, AbsoluteX, 4, true}},
	{0xF9, Instruction{SBC, AbsoluteY, 4, true}},
	{0xE1, Instruction{SBC, IndexedIndirect, 6, false}},
	{0xF1, Instruction{SBC, IndirectIndexed, 5, true}},

	{0x38, Instruction{SEC, Implied, 2, false}},
	{0xF8, Instruction{SED, Implied, 2, false}},
	{0x78, Instruction{SEI, Implied, 2, false}},

	// Stores always pay the indexing cycle, so it is part of the base count.
	{0x85, Instruction{STA, ZeroPage, 3, false}},
	{0x95, Instruction{STA, ZeroPageX, 4, false}},
	{0x8D, Instruction{STA, Absolute, 4, false}},
	{0x9D, Instruction{STA, AbsoluteX, 5, false}},
	{0x99, Instruction{STA, AbsoluteY, 5, false}},
	{0x81, Instruction{STA, IndexedIndirect, 6, false}},
	{0x91, Instruction{STA, IndirectIndexed, 6, false}},

	{0x86, Instruction{STX, ZeroPage, 3, false}},
	{0x96, Instruction{STX, ZeroPageY, 4, false}},
	{0x8E, Instruction{STX, Absolute, 4, false}},

	{0x84, Instruction{STY, ZeroPage, 3, false}},
	{0x94, Instruction{STY, ZeroPageX, 4, false}},
	{0x8C, Instruction{STY, Absolute, 4, false}},

	{0xAA, Instruction{TAX, Implied, 2, false}},
	{0xA8, Instruction{TAY, Implied, 2, false}},
	{0xBA, Instruction{TSX, Implied, 2, false}},
	{0x8A, Instruction{TXA, Implied, 2, false}},
	{0x9A, Instruction{TXS, Implied, 2, false}},
	{0x98, Instruction{TYA, Implied, 2, false}},
}

var (
	decodeTable [256]Instruction
	assigned    [256]bool
)

func init() {
	for _, e := range opcodeEntries {
		decodeTable[e.opcode] = e.Instruction
		assigned[e.opcode] = true
	}
}

// Decode looks an opcode up in the instruction table. The boolean is false
// for bytes that are not documented instructions.
func Decode(opcode uint8) (Instruction, bool) {
	if !assigned[opcode] {
		return Instruction{}, false
	}
	return decodeTable[opcode], true
}
