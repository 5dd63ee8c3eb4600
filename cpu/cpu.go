// Package cpu implements the MOS Technology 6502 microprocessor: registers,
// flags, the 64 KiB address space, the 13 addressing modes, the 256-entry
// opcode table, and the fetch/decode/execute loop that drives it all.
package cpu

import (
	"fmt"

	"github.com/hejops/mos6502/mask"
	"github.com/hejops/mos6502/mem"
)

// Status flag bit positions within the packed P register, NV-BDIZC.
const (
	flagC byte = 1 << 0 // Carry
	flagZ byte = 1 << 1 // Zero
	flagI byte = 1 << 2 // Interrupt disable
	flagD byte = 1 << 3 // Decimal mode
	flagB byte = 1 << 4 // Break (only meaningful in the pushed byte)
	flagU byte = 1 << 5 // Unused; set in every pushed copy and by PLP/RTI
	flagV byte = 1 << 6 // Overflow
	flagN byte = 1 << 7 // Negative
)

// stackBase is the fixed page the stack lives in: $0100-$01FF.
const stackBase uint16 = 0x0100

// resetStack is the stack pointer's value immediately after construction.
const resetStack byte = 0xff

// An AddressMode tells the Cpu where to find a given instruction's operand.
// There are 13 possible modes. Most instructions can index the full 64 KiB
// range of memory; the exception is ZeroPage and its variants, which are
// confined to the first page of 256 bytes.
type AddressMode int

const (
	Implied AddressMode = iota
	Accumulator
	Immediate
	Relative
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX
	IndirectY
)

// Cpu is the Machine State: the full architectural register set, the 64 KiB
// address space it operates on, and the scratch slots the resolver fills in
// for the instruction handler that follows it. One Cpu is constructed per
// emulator session and reused across load/run cycles — each load resets
// memory, registers, PC, and flags; breakpoints persist across reloads.
type Cpu struct {
	Bus *mem.Bus

	A  byte // Accumulator
	X  byte
	Y  byte
	SP byte // offset into page 1 ($0100-$01FF)
	PC uint16

	// Status is the packed processor status register, bit order NV-BDIZC.
	// PHP/PLP and BRK/RTI push and pull this byte directly.
	Status byte

	// Decoder scratch, cleared before use by decode, then consumed by the
	// instruction handler that runs immediately after it.
	fetched    byte   // fetched_byte: the resolved operand value
	absAddress uint16 // effective address for memory-touching modes
	relAddress int8   // signed PC-relative offset, branches only
	indAddress uint16 // raw pointer used by indirect modes, kept for disassembly
	mode       AddressMode

	// Origin is the address the last loaded image was placed at; the
	// driver uses it to restart a run from scratch.
	Origin uint16

	breakpoints map[uint16]struct{}
	// broken latches once any breakpoint has fired, so that successive
	// debug-mode runs keep pausing even if the PC drifts off a
	// breakpoint address mid-step.
	broken bool
	// halted is BRK's sticky signal to the executor that the run loop
	// should terminate after this instruction. Distinct from the status
	// byte's B bit, which only ever exists in the pushed copy.
	halted bool
}

// New returns a Cpu with a fresh 64 KiB bus and the reset-time register
// values (SP = $FF, all flags false, PC/A/X/Y = 0).
func New() *Cpu {
	return &Cpu{
		Bus:         &mem.Bus{},
		SP:          resetStack,
		breakpoints: make(map[uint16]struct{}),
	}
}

// Read reads one byte from addr.
func (c *Cpu) Read(addr uint16) byte {
	return c.Bus.Read(addr, true)
}

// Write writes data to addr.
func (c *Cpu) Write(addr uint16, data byte) {
	c.Bus.Write(addr, data)
}

// --- flag accessors -------------------------------------------------------

func (c *Cpu) flag(m byte) bool { return c.Status&m != 0 }

func (c *Cpu) setFlag(m byte, v bool) {
	if v {
		c.Status |= m
	} else {
		c.Status &^= m
	}
}

func (c *Cpu) Negative() bool     { return c.flag(flagN) }
func (c *Cpu) Overflow() bool     { return c.flag(flagV) }
func (c *Cpu) Break() bool        { return c.flag(flagB) }
func (c *Cpu) Decimal() bool      { return c.flag(flagD) }
func (c *Cpu) InterruptDis() bool { return c.flag(flagI) }
func (c *Cpu) Zero() bool         { return c.flag(flagZ) }
func (c *Cpu) Carry() bool        { return c.flag(flagC) }

func (c *Cpu) SetNegative(v bool)     { c.setFlag(flagN, v) }
func (c *Cpu) SetOverflow(v bool)     { c.setFlag(flagV, v) }
func (c *Cpu) SetBreak(v bool)        { c.setFlag(flagB, v) }
func (c *Cpu) SetDecimal(v bool)      { c.setFlag(flagD, v) }
func (c *Cpu) SetInterruptDis(v bool) { c.setFlag(flagI, v) }
func (c *Cpu) SetZero(v bool)         { c.setFlag(flagZ, v) }
func (c *Cpu) SetCarry(v bool)        { c.setFlag(flagC, v) }

// setNZ sets N and Z from the bit-7 and zero-ness of result, the rule shared
// by every load, ALU, shift, and transfer instruction.
func (c *Cpu) setNZ(result byte) {
	c.SetZero(result == 0)
	c.SetNegative(result&0x80 != 0)
}

// --- stack --------------------------------------------------------------

// push writes value to the stack, then decrements SP, wrapping modulo 256.
func (c *Cpu) push(value byte) {
	c.Write(stackBase+uint16(c.SP), value)
	c.SP--
}

// pull increments SP, wrapping modulo 256, then reads from the stack.
func (c *Cpu) pull() byte {
	c.SP++
	return c.Read(stackBase + uint16(c.SP))
}

// pushWord pushes a 16-bit value high byte first, matching JSR/BRK/RTI
// convention.
func (c *Cpu) pushWord(value uint16) {
	c.push(mask.Hi(value))
	c.push(mask.Lo(value))
}

// pullWord pulls a 16-bit value low byte first.
func (c *Cpu) pullWord() uint16 {
	lo := c.pull()
	hi := c.pull()
	return mask.Word(hi, lo)
}

// --- reset ----------------------------------------------------------------

// Reset restores A, X, Y, SP, and the status flags to power-up values and
// clears the scratch slots and latches. PC, memory, and breakpoints are left
// untouched; LoadImage sets PC and clears memory separately.
func (c *Cpu) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = resetStack
	c.Status = 0
	c.fetched, c.absAddress, c.relAddress, c.indAddress = 0, 0, 0, 0
	c.broken = false
	c.halted = false
}

// String renders a one-line register/flag snapshot, used by the debugger
// and REPL status displays.
func (c *Cpu) String() string {
	bit := func(set bool, ch byte) byte {
		if set {
			return ch
		}
		return '-'
	}
	flags := []byte{
		bit(c.Negative(), 'N'),
		bit(c.Overflow(), 'V'),
		bit(c.Break(), 'B'),
		bit(c.Decimal(), 'D'),
		bit(c.InterruptDis(), 'I'),
		bit(c.Zero(), 'Z'),
		bit(c.Carry(), 'C'),
	}
	return fmt.Sprintf("PC:%04X A:%02X X:%02X Y:%02X SP:%02X %s",
		c.PC, c.A, c.X, c.Y, c.SP, flags)
}

// --- address-mode resolver ------------------------------------------------

// decode consumes the operand bytes for mode a, advancing PC by 0, 1, or 2
// bytes, and fills the scratch slots (fetched, absAddress, relAddress,
// indAddress) that the following instruction handler reads.
func (c *Cpu) decode(a AddressMode) {
	c.mode = a
	c.fetched, c.absAddress, c.relAddress, c.indAddress = 0, 0, 0, 0

	switch a {

	case Implied:
		return

	case Accumulator:
		c.fetched = c.A
		return

	case Immediate:
		c.absAddress = c.PC
		c.PC++
		c.fetched = c.Read(c.absAddress)
		return

	case Relative:
		rel := c.Read(c.PC)
		c.PC++
		c.relAddress = int8(rel)
		c.fetched = rel
		return

	case ZeroPage:
		c.absAddress = uint16(c.Read(c.PC))
		c.PC++

	case ZeroPageX:
		c.absAddress = uint16(c.Read(c.PC)+c.X) & 0x00ff
		c.PC++

	case ZeroPageY:
		c.absAddress = uint16(c.Read(c.PC)+c.Y) & 0x00ff
		c.PC++

	case Absolute:
		lo := c.Read(c.PC)
		c.PC++
		hi := c.Read(c.PC)
		c.PC++
		c.absAddress = mask.Word(hi, lo)

	case AbsoluteX:
		lo := c.Read(c.PC)
		c.PC++
		hi := c.Read(c.PC)
		c.PC++
		c.absAddress = mask.Word(hi, lo) + uint16(c.X)

	case AbsoluteY:
		lo := c.Read(c.PC)
		c.PC++
		hi := c.Read(c.PC)
		c.PC++
		c.absAddress = mask.Word(hi, lo) + uint16(c.Y)

	case Indirect:
		lo := c.Read(c.PC)
		c.PC++
		hi := c.Read(c.PC)
		c.PC++
		ptr := mask.Word(hi, lo)
		c.indAddress = ptr

		loByte := c.Read(ptr)
		var hiByte byte
		if lo == 0xff {
			// hardware bug: the high byte wraps within the same
			// page instead of crossing into the next one
			hiByte = c.Read(ptr & 0xff00)
		} else {
			hiByte = c.Read(ptr + 1)
		}
		c.absAddress = mask.Word(hiByte, loByte)
		c.fetched = c.Read(c.absAddress)
		return

	case IndirectX:
		ptr := c.Read(c.PC)
		c.PC++
		c.indAddress = uint16(ptr)
		zp := uint16(ptr+c.X) & 0x00ff
		lo := c.Read(zp)
		hi := c.Read((zp + 1) & 0x00ff)
		c.absAddress = mask.Word(hi, lo)

	case IndirectY:
		ptr := c.Read(c.PC)
		c.PC++
		c.indAddress = uint16(ptr)
		lo := c.Read(uint16(ptr) & 0x00ff)
		hi := c.Read(uint16(ptr+1) & 0x00ff)
		c.absAddress = mask.Word(hi, lo) + uint16(c.Y)
	}

	c.fetched = c.Read(c.absAddress)
}
