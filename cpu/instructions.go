package cpu

import "github.com/hejops/mos6502/mask"

// Instruction handlers. Each is invoked immediately after decode has filled
// in the scratch slots (fetched, absAddress, relAddress) for the operand
// addressing mode the opcode table associated with it. None of them advance
// PC further — decode already consumed the operand bytes — except for the
// branches, JMP, JSR, RTS, RTI, and BRK, whose entire purpose is to redirect
// control flow.
//
// https://www.nesdev.org/obelisk-6502-guide/reference.html

// writeBack stores a shift/rotate/inc/dec result either back into the
// accumulator (Accumulator mode) or into the resolved memory address.
func (c *Cpu) writeBack(result byte) {
	if c.mode == Accumulator {
		c.A = result
	} else {
		c.Write(c.absAddress, result)
	}
}

// branch adds the decoded relative offset to PC when cond holds. Branches
// never touch any flag themselves.
func (c *Cpu) branch(cond bool) {
	if cond {
		c.PC = uint16(int32(c.PC) + int32(c.relAddress))
	}
}

// compare is the shared CMP/CPX/CPY computation: carry is set from the
// unsigned comparison, N/Z from the wrapping (mod 256) subtraction.
func (c *Cpu) compare(reg byte) {
	operand := c.fetched
	c.SetCarry(reg >= operand)
	c.setNZ(reg - operand)
}

// ADC - Add with Carry
func (c *Cpu) ADC() {
	operand := c.fetched
	var carryIn uint16
	if c.Carry() {
		carryIn = 1
	}

	sum := uint16(c.A) + uint16(operand) + carryIn
	result := byte(sum)
	c.SetOverflow((c.A^result)&(operand^result)&0x80 != 0)

	if c.Decimal() {
		c.A = c.adcDecimal(operand, carryIn)
	} else {
		c.SetCarry(sum > 0xff)
		c.A = result
	}
	c.setNZ(c.A)
}

// adcDecimal performs packed-BCD addition, adjusting each nibble by 6 when
// it exceeds 9 and propagating the decimal carry between nibbles. Sets the
// carry flag and returns the adjusted accumulator value.
func (c *Cpu) adcDecimal(operand byte, carryIn uint16) byte {
	lo := int(c.A&0x0f) + int(operand&0x0f) + int(carryIn)
	hi := int(c.A>>4) + int(operand>>4)
	if lo > 9 {
		lo += 6
		hi++
	}
	carryOut := hi > 9
	if carryOut {
		hi += 6
	}
	c.SetCarry(carryOut)
	return byte(hi<<4) | byte(lo&0x0f)
}

// SBC - Subtract with Carry. In binary mode this is ADC against the
// bitwise complement of the operand, arithmetically identical to how real
// 6502 silicon computes it; decimal mode performs the inverse nibble
// adjustment of adcDecimal.
func (c *Cpu) SBC() {
	operand := c.fetched
	var carryIn uint16
	if c.Carry() {
		carryIn = 1
	}

	compl := ^operand
	sum := uint16(c.A) + uint16(compl) + carryIn
	result := byte(sum)
	c.SetOverflow((c.A^result)&(compl^result)&0x80 != 0)

	if c.Decimal() {
		c.A = c.sbcDecimal(operand, carryIn)
	} else {
		c.SetCarry(sum > 0xff)
		c.A = result
	}
	c.setNZ(c.A)
}

// sbcDecimal performs packed-BCD subtraction: borrow propagates between
// nibbles the same way carry does in adcDecimal, just subtracted instead
// of added.
func (c *Cpu) sbcDecimal(operand byte, carryIn uint16) byte {
	borrowIn := 1 - int(carryIn)
	lo := int(c.A&0x0f) - int(operand&0x0f) - borrowIn
	hi := int(c.A>>4) - int(operand>>4)
	if lo < 0 {
		lo -= 6
		hi--
	}
	carryOut := hi >= 0
	if !carryOut {
		hi -= 6
	}
	c.SetCarry(carryOut)
	return byte(hi<<4) | byte(lo&0x0f)
}

// AND - Logical AND
func (c *Cpu) AND() {
	c.A &= c.fetched
	c.setNZ(c.A)
}

// ASL - Arithmetic Shift Left
func (c *Cpu) ASL() {
	val := c.fetched
	c.SetCarry(val&0x80 != 0)
	result := val << 1
	c.writeBack(result)
	c.setNZ(result)
}

// BCC - Branch if Carry Clear
func (c *Cpu) BCC() { c.branch(!c.Carry()) }

// BCS - Branch if Carry Set
func (c *Cpu) BCS() { c.branch(c.Carry()) }

// BEQ - Branch if Equal
func (c *Cpu) BEQ() { c.branch(c.Zero()) }

// BIT - Bit Test. N and V come from the operand itself, not from the
// masked result; Z comes from the masked result.
func (c *Cpu) BIT() {
	val := c.fetched
	c.SetZero(c.A&val == 0)
	c.SetOverflow(val&0x40 != 0)
	c.SetNegative(val&0x80 != 0)
}

// BMI - Branch if Minus
func (c *Cpu) BMI() { c.branch(c.Negative()) }

// BNE - Branch if Not Equal
func (c *Cpu) BNE() { c.branch(!c.Zero()) }

// BPL - Branch if Positive
func (c *Cpu) BPL() { c.branch(!c.Negative()) }

// BRK - Force Interrupt. Pushes PC+2 and the status byte with B set, then
// loads PC from the IRQ/BRK vector at $FFFE/$FFFF.
func (c *Cpu) BRK() {
	c.PC++
	c.pushWord(c.PC)
	c.push(c.Status | flagB | flagU)
	c.SetInterruptDis(true)
	lo := c.Read(0xfffe)
	hi := c.Read(0xffff)
	c.PC = mask.Word(hi, lo)
	c.halted = true
}

// BVC - Branch if Overflow Clear
func (c *Cpu) BVC() { c.branch(!c.Overflow()) }

// BVS - Branch if Overflow Set
func (c *Cpu) BVS() { c.branch(c.Overflow()) }

// CLC - Clear Carry Flag
func (c *Cpu) CLC() { c.SetCarry(false) }

// CLD - Clear Decimal Mode
func (c *Cpu) CLD() { c.SetDecimal(false) }

// CLI - Clear Interrupt Disable
func (c *Cpu) CLI() { c.SetInterruptDis(false) }

// CLV - Clear Overflow Flag
func (c *Cpu) CLV() { c.SetOverflow(false) }

// CMP - Compare
func (c *Cpu) CMP() { c.compare(c.A) }

// CPX - Compare X Register
func (c *Cpu) CPX() { c.compare(c.X) }

// CPY - Compare Y Register
func (c *Cpu) CPY() { c.compare(c.Y) }

// DEC - Decrement Memory
func (c *Cpu) DEC() {
	result := c.fetched - 1 // byte wraparound: $00 - 1 = $FF
	c.Write(c.absAddress, result)
	c.setNZ(result)
}

// DEX - Decrement X Register
func (c *Cpu) DEX() {
	c.X--
	c.setNZ(c.X)
}

// DEY - Decrement Y Register
func (c *Cpu) DEY() {
	c.Y--
	c.setNZ(c.Y)
}

// EOR - Exclusive OR
func (c *Cpu) EOR() {
	c.A ^= c.fetched
	c.setNZ(c.A)
}

// INC - Increment Memory
func (c *Cpu) INC() {
	result := c.fetched + 1 // byte wraparound: $FF + 1 = $00
	c.Write(c.absAddress, result)
	c.setNZ(result)
}

// INX - Increment X Register
func (c *Cpu) INX() {
	c.X++
	c.setNZ(c.X)
}

// INY - Increment Y Register
func (c *Cpu) INY() {
	c.Y++
	c.setNZ(c.Y)
}

// JMP - Jump
func (c *Cpu) JMP() { c.PC = c.absAddress }

// JSR - Jump to Subroutine. Pushes the address of the last byte of the JSR
// instruction (PC-1, since decode already advanced PC past both operand
// bytes), high byte first.
func (c *Cpu) JSR() {
	c.pushWord(c.PC - 1)
	c.PC = c.absAddress
}

// LDA - Load Accumulator
func (c *Cpu) LDA() {
	c.A = c.fetched
	c.setNZ(c.A)
}

// LDX - Load X Register
func (c *Cpu) LDX() {
	c.X = c.fetched
	c.setNZ(c.X)
}

// LDY - Load Y Register
func (c *Cpu) LDY() {
	c.Y = c.fetched
	c.setNZ(c.Y)
}

// LSR - Logical Shift Right
func (c *Cpu) LSR() {
	val := c.fetched
	c.SetCarry(val&0x01 != 0)
	result := val >> 1
	c.writeBack(result)
	c.setNZ(result)
}

// NOP - No Operation
func (c *Cpu) NOP() {}

// ORA - Logical Inclusive OR
func (c *Cpu) ORA() {
	c.A |= c.fetched
	c.setNZ(c.A)
}

// PHA - Push Accumulator
func (c *Cpu) PHA() { c.push(c.A) }

// PHP - Push Processor Status. The pushed copy always has B and the unused
// bit set, matching how a real 6502 snapshots status onto the stack.
func (c *Cpu) PHP() { c.push(c.Status | flagB | flagU) }

// PLA - Pull Accumulator
func (c *Cpu) PLA() {
	c.A = c.pull()
	c.setNZ(c.A)
}

// PLP - Pull Processor Status. B is never latched into the live register
// (it exists only in the pushed copy); the unused bit always reads 1.
func (c *Cpu) PLP() {
	c.Status = c.pull()
	c.SetBreak(false)
	c.Status |= flagU
}

// ROL - Rotate Left
func (c *Cpu) ROL() {
	val := c.fetched
	oldCarry := c.Carry()
	c.SetCarry(val&0x80 != 0)
	result := val << 1
	if oldCarry {
		result |= 0x01
	}
	c.writeBack(result)
	c.setNZ(result)
}

// ROR - Rotate Right
func (c *Cpu) ROR() {
	val := c.fetched
	oldCarry := c.Carry()
	c.SetCarry(val&0x01 != 0)
	result := val >> 1
	if oldCarry {
		result |= 0x80
	}
	c.writeBack(result)
	c.setNZ(result)
}

// RTI - Return from Interrupt
func (c *Cpu) RTI() {
	c.Status = c.pull()
	c.SetBreak(false)
	c.Status |= flagU
	c.PC = c.pullWord()
}

// RTS - Return from Subroutine. Pulls the address pushed by JSR and adds
// one back, undoing JSR's PC-1 adjustment.
func (c *Cpu) RTS() {
	c.PC = c.pullWord() + 1
}

// SEC - Set Carry Flag
func (c *Cpu) SEC() { c.SetCarry(true) }

// SED - Set Decimal Flag
func (c *Cpu) SED() { c.SetDecimal(true) }

// SEI - Set Interrupt Disable
func (c *Cpu) SEI() { c.SetInterruptDis(true) }

// STA - Store Accumulator
func (c *Cpu) STA() { c.Write(c.absAddress, c.A) }

// STX - Store X Register
func (c *Cpu) STX() { c.Write(c.absAddress, c.X) }

// STY - Store Y Register
func (c *Cpu) STY() { c.Write(c.absAddress, c.Y) }

// TAX - Transfer Accumulator to X
func (c *Cpu) TAX() {
	c.X = c.A
	c.setNZ(c.X)
}

// TAY - Transfer Accumulator to Y
func (c *Cpu) TAY() {
	c.Y = c.A
	c.setNZ(c.Y)
}

// TSX - Transfer Stack Pointer to X
func (c *Cpu) TSX() {
	c.X = c.SP
	c.setNZ(c.X)
}

// TXA - Transfer X to Accumulator
func (c *Cpu) TXA() {
	c.A = c.X
	c.setNZ(c.A)
}

// TXS - Transfer X to Stack Pointer. Unlike TSX, this does not affect any
// flag.
func (c *Cpu) TXS() { c.SP = c.X }

// TYA - Transfer Y to Accumulator
func (c *Cpu) TYA() {
	c.A = c.Y
	c.setNZ(c.A)
}
