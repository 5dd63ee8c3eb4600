package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// S1 — load-add-store: LDA #$05; ADC #$03; STA $0200; BRK
func TestScenarioLoadAddStore(t *testing.T) {
	c := New()
	err := c.LoadImage(0x0600, []byte{0xa9, 0x05, 0x69, 0x03, 0x8d, 0x00, 0x02, 0x00})
	assert.NoError(t, err)

	outcome := c.Run(false, nil)
	assert.Equal(t, RunHalted, outcome.Status)

	assert.Equal(t, byte(0x08), c.A)
	assert.Equal(t, byte(0x08), c.Read(0x0200))
	assert.False(t, c.Carry())
	assert.False(t, c.Zero())
	assert.False(t, c.Negative())
}

// S2 — carry chain: LDA #$FF; ADC #$01; BRK
func TestScenarioCarryChain(t *testing.T) {
	c := New()
	err := c.LoadImage(0x0600, []byte{0xa9, 0xff, 0x69, 0x01, 0x00})
	assert.NoError(t, err)

	outcome := c.Run(false, nil)
	assert.Equal(t, RunHalted, outcome.Status)

	assert.Equal(t, byte(0x00), c.A)
	assert.True(t, c.Carry())
	assert.True(t, c.Zero())
	assert.False(t, c.Negative())
	assert.False(t, c.Overflow())
}

// S3 — branch forward: LDA #$00; BEQ +2; LDA #$FF; BRK
func TestScenarioBranchForward(t *testing.T) {
	c := New()
	err := c.LoadImage(0x0600, []byte{0xa9, 0x00, 0xf0, 0x02, 0xa9, 0xff, 0x00})
	assert.NoError(t, err)

	outcome := c.Run(false, nil)
	assert.Equal(t, RunHalted, outcome.Status)

	assert.Equal(t, byte(0x00), c.A)
	assert.True(t, c.Zero())
}

// S4 — JSR/RTS: JSR $0609; LDA #$AA; BRK; ...; at $0609: LDA #$55; RTS
func TestScenarioJSRRTS(t *testing.T) {
	c := New()
	err := c.LoadImage(0x0600, []byte{
		0x20, 0x09, 0x06, // JSR $0609
		0xa9, 0xaa, // LDA #$AA
		0x00,       // BRK
		0x00, 0x00, // padding
		0x00,       // padding ($0608)
		0xa9, 0x55, // LDA #$55 ($0609)
		0x60, // RTS
	})
	assert.NoError(t, err)

	startSP := c.SP
	outcome := c.Run(false, nil)
	assert.Equal(t, RunHalted, outcome.Status)

	assert.Equal(t, byte(0xaa), c.A)
	// JSR/RTS leaves SP balanced; the final BRK then pushes PC and status
	// (3 bytes)
	assert.Equal(t, startSP-3, c.SP)
}

// S5 — indirect-JMP bug: JMP ($07FF) must fetch its high byte from $0700,
// not $0800, and land on the routine placed at $0600 rather than $0700.
func TestScenarioIndirectJMPBug(t *testing.T) {
	c := New()
	err := c.LoadImage(0x0900, []byte{0x6c, 0xff, 0x07}) // JMP ($07FF)
	assert.NoError(t, err)

	c.Write(0x0600, 0xa9) // LDA #$11 -- the correct (bug-mandated) target
	c.Write(0x0601, 0x11)
	c.Write(0x0602, 0x00) // BRK

	c.Write(0x0701, 0xa9) // LDA #$22 at $0701 ($0700 holds the pointer high byte) -- must NOT be reached
	c.Write(0x0702, 0x22)
	c.Write(0x0703, 0x00)

	c.Write(0x07ff, 0x00) // pointer low byte
	c.Write(0x0700, 0x06) // pointer high byte, read from the SAME page as
	// $07FF rather than $0800 -- this is the bug under test

	outcome := c.Run(false, nil)
	assert.Equal(t, RunHalted, outcome.Status)
	assert.Equal(t, byte(0x11), c.A)
}

// S6 — BCD addition: with D set, $19 + $28 = $47 in decimal.
func TestScenarioBCD(t *testing.T) {
	c := New()
	err := c.LoadImage(0x0600, []byte{0xa9, 0x19, 0xf8, 0x69, 0x28, 0x00}) // LDA #$19; SED; ADC #$28; BRK
	assert.NoError(t, err)

	outcome := c.Run(false, nil)
	assert.Equal(t, RunHalted, outcome.Status)

	assert.Equal(t, byte(0x47), c.A)
	assert.False(t, c.Carry())
}

func TestADCSBCRoundTrip(t *testing.T) {
	c := New()
	c.A = 0x50
	c.SetCarry(false)
	c.fetched = 0x20
	c.ADC()
	assert.Equal(t, byte(0x70), c.A) // 0x50 + 0x20 + 0 (no carry-in)

	c.SetCarry(true) // no borrow
	c.fetched = 0x20
	c.SBC()
	assert.Equal(t, byte(0x50), c.A)
}

func TestStackDisciplinePushPull(t *testing.T) {
	c := New()
	startSP := c.SP
	c.push(0x42)
	assert.NotEqual(t, startSP, c.SP)
	got := c.pull()
	assert.Equal(t, byte(0x42), got)
	assert.Equal(t, startSP, c.SP)
}

func TestPHAPLARestoresAccumulator(t *testing.T) {
	c := New()
	c.A = 0x99
	startSP := c.SP
	c.PHA()
	c.A = 0
	c.PLA()
	assert.Equal(t, byte(0x99), c.A)
	assert.Equal(t, startSP, c.SP)
}

func TestPHPPLPRoundTrip(t *testing.T) {
	c := New()
	c.SetCarry(true)
	c.SetNegative(true)
	before := c.Status
	c.PHP()
	c.Status = 0
	c.PLP()
	// PLP always forces the unused bit to 1 and never latches B into the
	// live register, so the round trip is exact modulo those two bits.
	assert.Equal(t, before|flagU, c.Status)
}

func TestInvalidOpcodeReported(t *testing.T) {
	c := New()
	err := c.LoadImage(0x0600, []byte{0x02}) // $02 is unused in the 6502 opcode space
	assert.NoError(t, err)

	outcome := c.Run(false, nil)
	assert.Equal(t, RunInvalidOpcode, outcome.Status)
	assert.Equal(t, byte(0x02), outcome.Opcode)
	assert.Equal(t, uint16(0x0600), outcome.At)
	assert.Error(t, outcome.Err())
}

func TestOpcodeTableTotality(t *testing.T) {
	valid := 0
	for _, entry := range opcodeTable {
		if entry.Handler != nil {
			valid++
			assert.NotEmpty(t, entry.Mnemonic)
		}
	}
	assert.Equal(t, 151, valid)
}

func TestBreakpointSuspendsAndStep(t *testing.T) {
	c := New()
	err := c.LoadImage(0x0600, []byte{0xa9, 0x01, 0xa9, 0x02, 0xa9, 0x03, 0x00})
	assert.NoError(t, err)
	c.AddBreakpoint(0x0602)

	var decisions []DebugDecision
	calls := 0
	outcome := c.Run(true, func(*Cpu) DebugDecision {
		calls++
		if calls == 1 {
			decisions = append(decisions, DebugStep)
			return DebugStep
		}
		decisions = append(decisions, DebugContinue)
		return DebugContinue
	})

	assert.Equal(t, RunHalted, outcome.Status)
	assert.Equal(t, []DebugDecision{DebugStep, DebugContinue}, decisions)
	assert.Equal(t, byte(0x03), c.A)
}

func TestDebugStop(t *testing.T) {
	c := New()
	err := c.LoadImage(0x0600, []byte{0xa9, 0x01, 0x00})
	assert.NoError(t, err)
	c.AddBreakpoint(0x0600)

	outcome := c.Run(true, func(*Cpu) DebugDecision { return DebugStop })
	assert.Equal(t, RunUserStopped, outcome.Status)
}
