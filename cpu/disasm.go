package cpu

import (
	"fmt"
	"strings"

	"github.com/hejops/mos6502/mask"
)

// Disassemble renders the instruction at addr as a stable
// "$PPPP: MNE <operand-form>" line and reports how many bytes it occupies.
// It never mutates the Cpu: unlike decode, it peeks ahead via Read without
// touching PC or any scratch slot, so it is safe to call before, after, or
// instead of executing the instruction it describes.
func (c *Cpu) Disassemble(addr uint16) (line string, length int) {
	op := c.Read(addr)
	entry := opcodeTable[op]
	if entry.Handler == nil {
		return fmt.Sprintf("$%04X: ??? ($%02X)", addr, op), 1
	}

	operand, length := disasmOperand(c, addr, entry.Mode)
	if operand == "" {
		return fmt.Sprintf("$%04X: %s", addr, entry.Mnemonic), length
	}
	return fmt.Sprintf("$%04X: %s %s", addr, entry.Mnemonic, operand), length
}

// DisassembleVerbose appends the raw opcode/operand bytes to Disassemble's
// stable line, for callers that want to show the instruction's encoding.
func (c *Cpu) DisassembleVerbose(addr uint16) string {
	line, length := c.Disassemble(addr)
	raw := make([]string, length)
	for i := 0; i < length; i++ {
		raw[i] = fmt.Sprintf("%02X", c.Read(addr+uint16(i)))
	}
	return fmt.Sprintf("%s  (%s)", line, strings.Join(raw, " "))
}

// disasmOperand renders the operand form for mode, reading whatever bytes
// follow the opcode at addr, and reports the instruction's total length in
// bytes (opcode included).
func disasmOperand(c *Cpu, addr uint16, mode AddressMode) (string, int) {
	switch mode {

	case Implied:
		return "", 1

	case Accumulator:
		return "A", 1

	case Immediate:
		return fmt.Sprintf("#$%02X", c.Read(addr+1)), 2

	case Relative:
		rel := int8(c.Read(addr + 1))
		target := uint16(int32(addr) + 2 + int32(rel))
		return fmt.Sprintf("$%04X", target), 2

	case ZeroPage:
		return fmt.Sprintf("$%02X", c.Read(addr+1)), 2

	case ZeroPageX:
		return fmt.Sprintf("$%02X,X", c.Read(addr+1)), 2

	case ZeroPageY:
		return fmt.Sprintf("$%02X,Y", c.Read(addr+1)), 2

	case Absolute:
		w := mask.Word(c.Read(addr+2), c.Read(addr+1))
		return fmt.Sprintf("$%04X", w), 3

	case AbsoluteX:
		w := mask.Word(c.Read(addr+2), c.Read(addr+1))
		return fmt.Sprintf("$%04X,X", w), 3

	case AbsoluteY:
		w := mask.Word(c.Read(addr+2), c.Read(addr+1))
		return fmt.Sprintf("$%04X,Y", w), 3

	case Indirect:
		w := mask.Word(c.Read(addr+2), c.Read(addr+1))
		return fmt.Sprintf("($%04X)", w), 3

	case IndirectX:
		return fmt.Sprintf("($%02X,X)", c.Read(addr+1)), 2

	case IndirectY:
		return fmt.Sprintf("($%02X),Y", c.Read(addr+1)), 2
	}

	return "", 1
}

// StatusLine renders the same one-line register/flag snapshot as String,
// named to match the debugger's and REPL's status-panel callers.
func (c *Cpu) StatusLine() string { return c.String() }
