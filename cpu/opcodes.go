package cpu

// An opEntry associates a unique opcode byte with a mnemonic, the address
// mode its operand is fetched with, and the handler that carries out the
// instruction once decode has filled in the scratch slots.
//
// Multiple opEntry records may share the same Handler, differing only in
// AddressMode; resolving the operand is decode's job, not the handler's.
type opEntry struct {
	Mnemonic string
	Mode     AddressMode
	Handler  func(*Cpu)
}

// opcodeTable is a densely-indexed, compile-time-known mapping from opcode
// byte to (mnemonic, address mode, handler). Lookup is O(1) array indexing,
// not a lazily-built hash map: of the 256 possible byte values, 151
// correspond to a documented instruction; the remaining entries keep their
// zero value (empty Mnemonic, nil Handler) and are surfaced by the executor
// as an invalid opcode.
var opcodeTable [256]opEntry

func init() {
	set := func(b byte, mnemonic string, mode AddressMode, handler func(*Cpu)) {
		opcodeTable[b] = opEntry{Mnemonic: mnemonic, Mode: mode, Handler: handler}
	}

	set(0x69, "ADC", Immediate, (*Cpu).ADC)
	set(0x65, "ADC", ZeroPage, (*Cpu).ADC)
	set(0x75, "ADC", ZeroPageX, (*Cpu).ADC)
	set(0x6D, "ADC", Absolute, (*Cpu).ADC)
	set(0x7D, "ADC", AbsoluteX, (*Cpu).ADC)
	set(0x79, "ADC", AbsoluteY, (*Cpu).ADC)
	set(0x61, "ADC", IndirectX, (*Cpu).ADC)
	set(0x71, "ADC", IndirectY, (*Cpu).ADC)

	set(0x29, "AND", Immediate, (*Cpu).AND)
	set(0x25, "AND", ZeroPage, (*Cpu).AND)
	set(0x35, "AND", ZeroPageX, (*Cpu).AND)
	set(0x2D, "AND", Absolute, (*Cpu).AND)
	set(0x3D, "AND", AbsoluteX, (*Cpu).AND)
	set(0x39, "AND", AbsoluteY, (*Cpu).AND)
	set(0x21, "AND", IndirectX, (*Cpu).AND)
	set(0x31, "AND", IndirectY, (*Cpu).AND)

	set(0x0A, "ASL", Accumulator, (*Cpu).ASL)
	set(0x06, "ASL", ZeroPage, (*Cpu).ASL)
	set(0x16, "ASL", ZeroPageX, (*Cpu).ASL)
	set(0x0E, "ASL", Absolute, (*Cpu).ASL)
	set(0x1E, "ASL", AbsoluteX, (*Cpu).ASL)

	set(0x24, "BIT", ZeroPage, (*Cpu).BIT)
	set(0x2C, "BIT", Absolute, (*Cpu).BIT)

	set(0x00, "BRK", Implied, (*Cpu).BRK)

	set(0xC9, "CMP", Immediate, (*Cpu).CMP)
	set(0xC5, "CMP", ZeroPage, (*Cpu).CMP)
	set(0xD5, "CMP", ZeroPageX, (*Cpu).CMP)
	set(0xCD, "CMP", Absolute, (*Cpu).CMP)
	set(0xDD, "CMP", AbsoluteX, (*Cpu).CMP)
	set(0xD9, "CMP", AbsoluteY, (*Cpu).CMP)
	set(0xC1, "CMP", IndirectX, (*Cpu).CMP)
	set(0xD1, "CMP", IndirectY, (*Cpu).CMP)

	set(0xE0, "CPX", Immediate, (*Cpu).CPX)
	set(0xE4, "CPX", ZeroPage, (*Cpu).CPX)
	set(0xEC, "CPX", Absolute, (*Cpu).CPX)

	set(0xC0, "CPY", Immediate, (*Cpu).CPY)
	set(0xC4, "CPY", ZeroPage, (*Cpu).CPY)
	set(0xCC, "CPY", Absolute, (*Cpu).CPY)

	set(0xC6, "DEC", ZeroPage, (*Cpu).DEC)
	set(0xD6, "DEC", ZeroPageX, (*Cpu).DEC)
	set(0xCE, "DEC", Absolute, (*Cpu).DEC)
	set(0xDE, "DEC", AbsoluteX, (*Cpu).DEC)

	set(0x49, "EOR", Immediate, (*Cpu).EOR)
	set(0x45, "EOR", ZeroPage, (*Cpu).EOR)
	set(0x55, "EOR", ZeroPageX, (*Cpu).EOR)
	set(0x4D, "EOR", Absolute, (*Cpu).EOR)
	set(0x5D, "EOR", AbsoluteX, (*Cpu).EOR)
	set(0x59, "EOR", AbsoluteY, (*Cpu).EOR)
	set(0x41, "EOR", IndirectX, (*Cpu).EOR)
	set(0x51, "EOR", IndirectY, (*Cpu).EOR)

	set(0xE6, "INC", ZeroPage, (*Cpu).INC)
	set(0xF6, "INC", ZeroPageX, (*Cpu).INC)
	set(0xEE, "INC", Absolute, (*Cpu).INC)
	set(0xFE, "INC", AbsoluteX, (*Cpu).INC)

	set(0x4C, "JMP", Absolute, (*Cpu).JMP)
	set(0x6C, "JMP", Indirect, (*Cpu).JMP)

	set(0x20, "JSR", Absolute, (*Cpu).JSR)

	set(0xA9, "LDA", Immediate, (*Cpu).LDA)
	set(0xA5, "LDA", ZeroPage, (*Cpu).LDA)
	set(0xB5, "LDA", ZeroPageX, (*Cpu).LDA)
	set(0xAD, "LDA", Absolute, (*Cpu).LDA)
	set(0xBD, "LDA", AbsoluteX, (*Cpu).LDA)
	set(0xB9, "LDA", AbsoluteY, (*Cpu).LDA)
	set(0xA1, "LDA", IndirectX, (*Cpu).LDA)
	set(0xB1, "LDA", IndirectY, (*Cpu).LDA)

	set(0xA2, "LDX", Immediate, (*Cpu).LDX)
	set(0xA6, "LDX", ZeroPage, (*Cpu).LDX)
	set(0xB6, "LDX", ZeroPageY, (*Cpu).LDX)
	set(0xAE, "LDX", Absolute, (*Cpu).LDX)
	set(0xBE, "LDX", AbsoluteY, (*Cpu).LDX)

	set(0xA0, "LDY", Immediate, (*Cpu).LDY)
	set(0xA4, "LDY", ZeroPage, (*Cpu).LDY)
	set(0xB4, "LDY", ZeroPageX, (*Cpu).LDY)
	set(0xAC, "LDY", Absolute, (*Cpu).LDY)
	set(0xBC, "LDY", AbsoluteX, (*Cpu).LDY)

	set(0x4A, "LSR", Accumulator, (*Cpu).LSR)
	set(0x46, "LSR", ZeroPage, (*Cpu).LSR)
	set(0x56, "LSR", ZeroPageX, (*Cpu).LSR)
	set(0x4E, "LSR", Absolute, (*Cpu).LSR)
	set(0x5E, "LSR", AbsoluteX, (*Cpu).LSR)

	set(0xEA, "NOP", Implied, (*Cpu).NOP)

	set(0x09, "ORA", Immediate, (*Cpu).ORA)
	set(0x05, "ORA", ZeroPage, (*Cpu).ORA)
	set(0x15, "ORA", ZeroPageX, (*Cpu).ORA)
	set(0x0D, "ORA", Absolute, (*Cpu).ORA)
	set(0x1D, "ORA", AbsoluteX, (*Cpu).ORA)
	set(0x19, "ORA", AbsoluteY, (*Cpu).ORA)
	set(0x01, "ORA", IndirectX, (*Cpu).ORA)
	set(0x11, "ORA", IndirectY, (*Cpu).ORA)

	set(0x2A, "ROL", Accumulator, (*Cpu).ROL)
	set(0x26, "ROL", ZeroPage, (*Cpu).ROL)
	set(0x36, "ROL", ZeroPageX, (*Cpu).ROL)
	set(0x2E, "ROL", Absolute, (*Cpu).ROL)
	set(0x3E, "ROL", AbsoluteX, (*Cpu).ROL)

	set(0x6A, "ROR", Accumulator, (*Cpu).ROR)
	set(0x66, "ROR", ZeroPage, (*Cpu).ROR)
	set(0x76, "ROR", ZeroPageX, (*Cpu).ROR)
	set(0x6E, "ROR", Absolute, (*Cpu).ROR)
	set(0x7E, "ROR", AbsoluteX, (*Cpu).ROR)

	set(0x40, "RTI", Implied, (*Cpu).RTI)
	set(0x60, "RTS", Implied, (*Cpu).RTS)

	set(0xE9, "SBC", Immediate, (*Cpu).SBC)
	set(0xE5, "SBC", ZeroPage, (*Cpu).SBC)
	set(0xF5, "SBC", ZeroPageX, (*Cpu).SBC)
	set(0xED, "SBC", Absolute, (*Cpu).SBC)
	set(0xFD, "SBC", AbsoluteX, (*Cpu).SBC)
	set(0xF9, "SBC", AbsoluteY, (*Cpu).SBC)
	set(0xE1, "SBC", IndirectX, (*Cpu).SBC)
	set(0xF1, "SBC", IndirectY, (*Cpu).SBC)

	set(0x85, "STA", ZeroPage, (*Cpu).STA)
	set(0x95, "STA", ZeroPageX, (*Cpu).STA)
	set(0x8D, "STA", Absolute, (*Cpu).STA)
	set(0x9D, "STA", AbsoluteX, (*Cpu).STA)
	set(0x99, "STA", AbsoluteY, (*Cpu).STA)
	set(0x81, "STA", IndirectX, (*Cpu).STA)
	set(0x91, "STA", IndirectY, (*Cpu).STA)

	set(0x86, "STX", ZeroPage, (*Cpu).STX)
	set(0x96, "STX", ZeroPageY, (*Cpu).STX)
	set(0x8E, "STX", Absolute, (*Cpu).STX)

	set(0x84, "STY", ZeroPage, (*Cpu).STY)
	set(0x94, "STY", ZeroPageX, (*Cpu).STY)
	set(0x8C, "STY", Absolute, (*Cpu).STY)

	// flag clear/set
	set(0x18, "CLC", Implied, (*Cpu).CLC)
	set(0x38, "SEC", Implied, (*Cpu).SEC)
	set(0x58, "CLI", Implied, (*Cpu).CLI)
	set(0x78, "SEI", Implied, (*Cpu).SEI)
	set(0xB8, "CLV", Implied, (*Cpu).CLV)
	set(0xD8, "CLD", Implied, (*Cpu).CLD)
	set(0xF8, "SED", Implied, (*Cpu).SED)

	// register transfers, increments, decrements
	set(0xAA, "TAX", Implied, (*Cpu).TAX)
	set(0x8A, "TXA", Implied, (*Cpu).TXA)
	set(0xCA, "DEX", Implied, (*Cpu).DEX)
	set(0xE8, "INX", Implied, (*Cpu).INX)
	set(0xA8, "TAY", Implied, (*Cpu).TAY)
	set(0x98, "TYA", Implied, (*Cpu).TYA)
	set(0x88, "DEY", Implied, (*Cpu).DEY)
	set(0xC8, "INY", Implied, (*Cpu).INY)

	// branches
	set(0x10, "BPL", Relative, (*Cpu).BPL)
	set(0x30, "BMI", Relative, (*Cpu).BMI)
	set(0x50, "BVC", Relative, (*Cpu).BVC)
	set(0x70, "BVS", Relative, (*Cpu).BVS)
	set(0x90, "BCC", Relative, (*Cpu).BCC)
	set(0xB0, "BCS", Relative, (*Cpu).BCS)
	set(0xD0, "BNE", Relative, (*Cpu).BNE)
	set(0xF0, "BEQ", Relative, (*Cpu).BEQ)

	// stack
	set(0x9A, "TXS", Implied, (*Cpu).TXS)
	set(0xBA, "TSX", Implied, (*Cpu).TSX)
	set(0x48, "PHA", Implied, (*Cpu).PHA)
	set(0x68, "PLA", Implied, (*Cpu).PLA)
	set(0x08, "PHP", Implied, (*Cpu).PHP)
	set(0x28, "PLP", Implied, (*Cpu).PLP)
}
