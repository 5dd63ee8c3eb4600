package cpu

import (
	"fmt"

	"github.com/hejops/mos6502/mem"
)

// InvalidOpcodeError reports a byte the opcode table has no entry for. It
// never poisons the Machine State: registers and memory remain inspectable
// after it is returned.
type InvalidOpcodeError struct {
	Opcode byte
	At     uint16
}

func (e *InvalidOpcodeError) Error() string {
	return fmt.Sprintf("invalid opcode %#02x at $%04X", e.Opcode, e.At)
}

// A StepStatus classifies the result of a single Step call.
type StepStatus int

const (
	StepContinue StepStatus = iota
	StepHalted
	StepInvalidOpcode
)

// StepOutcome reports what a single Step call did. Opcode and At are only
// meaningful when Status is StepInvalidOpcode.
type StepOutcome struct {
	Status StepStatus
	Opcode byte
	At     uint16
}

// A RunStatus classifies why Run returned.
type RunStatus int

const (
	RunHalted RunStatus = iota
	RunInvalidOpcode
	RunUserStopped
)

// RunOutcome reports why a Run call returned control to the driver. Opcode
// and At are only meaningful when Status is RunInvalidOpcode.
type RunOutcome struct {
	Status RunStatus
	Opcode byte
	At     uint16
}

// Err reconstructs the InvalidOpcodeError an outcome represents, or nil for
// any other status.
func (o RunOutcome) Err() error {
	if o.Status != RunInvalidOpcode {
		return nil
	}
	return &InvalidOpcodeError{Opcode: o.Opcode, At: o.At}
}

// A DebugDecision is the driver's answer to a breakpoint suspension.
type DebugDecision int

const (
	DebugContinue DebugDecision = iota
	DebugStep
	DebugStop
)

// Step fetches, decodes, resolves the address mode, and executes exactly
// one instruction, wrapping PC modulo 65536. It does not consult
// breakpoints — that gating belongs to Run's debug loop.
func (c *Cpu) Step() StepOutcome {
	at := c.PC
	op := c.Read(c.PC)
	c.PC++

	entry := opcodeTable[op]
	if entry.Handler == nil {
		return StepOutcome{Status: StepInvalidOpcode, Opcode: op, At: at}
	}

	c.decode(entry.Mode)
	entry.Handler(c)

	if c.halted {
		return StepOutcome{Status: StepHalted, Opcode: op, At: at}
	}
	return StepOutcome{Status: StepContinue, Opcode: op, At: at}
}

// Run executes instructions until a BRK halts the machine, an invalid
// opcode is hit, or (in debug mode) the driver chooses to stop.
//
// In debug mode, before each instruction Run checks whether the
// instruction's starting address is a breakpoint, or whether broken is
// still latched from an earlier hit (only DebugContinue and Reset clear
// the latch, so it survives a DebugStop into the next Run); if so, it suspends
// and asks onBreak for a decision. DebugContinue clears the latch and lets
// execution run free until the next breakpoint; DebugStep executes exactly
// one instruction and immediately suspends again (the latch stays set);
// DebugStop ends the run with RunUserStopped.
func (c *Cpu) Run(debug bool, onBreak func(*Cpu) DebugDecision) RunOutcome {
	for {
		if debug && onBreak != nil {
			_, atBreakpoint := c.breakpoints[c.PC]
			if atBreakpoint || c.broken {
				c.broken = true
				switch onBreak(c) {
				case DebugStop:
					return RunOutcome{Status: RunUserStopped}
				case DebugContinue:
					c.broken = false
				case DebugStep:
					// broken stays latched; one instruction runs below,
					// then this check fires again next iteration.
				}
			}
		}

		step := c.Step()
		switch step.Status {
		case StepInvalidOpcode:
			return RunOutcome{Status: RunInvalidOpcode, Opcode: step.Opcode, At: step.At}
		case StepHalted:
			return RunOutcome{Status: RunHalted}
		}
	}
}

// LoadImage clears memory and architectural state, then copies payload
// into memory starting at origin, and sets PC to origin. Breakpoints are
// left untouched across reloads.
func (c *Cpu) LoadImage(origin uint16, payload []byte) error {
	if int(origin)+len(payload) > mem.Size {
		return fmt.Errorf("image of %d bytes at origin $%04X overruns the 64 KiB address space", len(payload), origin)
	}

	c.Bus.Reset()
	c.Reset()
	for i, b := range payload {
		c.Write(origin+uint16(i), b)
	}
	c.PC = origin
	c.Origin = origin
	return nil
}

// AddBreakpoint arms a breakpoint at addr.
func (c *Cpu) AddBreakpoint(addr uint16) { c.breakpoints[addr] = struct{}{} }

// RemoveBreakpoint disarms the breakpoint at addr, if any.
func (c *Cpu) RemoveBreakpoint(addr uint16) { delete(c.breakpoints, addr) }

// ClearBreakpoints disarms every breakpoint.
func (c *Cpu) ClearBreakpoints() { c.breakpoints = make(map[uint16]struct{}) }

// Breakpoints returns the set of armed addresses in ascending order.
func (c *Cpu) Breakpoints() []uint16 {
	out := make([]uint16, 0, len(c.breakpoints))
	for addr := range c.breakpoints {
		out = append(out, addr)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// Peek reads up to length bytes starting at addr, clamped at the top of
// the address space. The caller can tell clamping occurred by comparing
// len(result) against the requested length.
func (c *Cpu) Peek(addr uint16, length int) []byte {
	end := int(addr) + length
	if end > mem.Size {
		end = mem.Size
	}
	if end <= int(addr) {
		return nil
	}
	out := make([]byte, end-int(addr))
	for i := range out {
		out[i] = c.Read(addr + uint16(i))
	}
	return out
}

// Poke writes a single byte at addr.
func (c *Cpu) Poke(addr uint16, value byte) { c.Write(addr, value) }

// Registers is a point-in-time snapshot of the architectural register set,
// safe for a driver to hold onto after control returns.
type Registers struct {
	A, X, Y, SP byte
	PC          uint16
	Status      byte
}

// Registers snapshots the current register file.
func (c *Cpu) Registers() Registers {
	return Registers{A: c.A, X: c.X, Y: c.Y, SP: c.SP, PC: c.PC, Status: c.Status}
}
