package cpu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
)

// debugModel drives the breakpoint sub-prompt TUI: a bubbletea program that
// takes over whenever Run suspends at a breakpoint, renders a page of
// memory around the current PC plus the register/flag panel, and turns a
// single keypress into the DebugDecision Run's onBreak callback expects.
type debugModel struct {
	cpu *Cpu

	offset uint16 // base address of the memory page currently displayed

	decision DebugDecision
	answered bool
}

// Init is the first function bubbletea calls. The breakpoint has already
// fired by the time the TUI starts, so there is no initial command.
func (m debugModel) Init() tea.Cmd { return nil }

// Update turns a keypress into a DebugDecision and quits the program so
// Run's onBreak callback can read it back out.
func (m debugModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "c":
			m.decision = DebugContinue
			m.answered = true
			return m, tea.Quit
		case "s", " ":
			m.decision = DebugStep
			m.answered = true
			return m, tea.Quit
		case "q", "ctrl+c":
			m.decision = DebugStop
			m.answered = true
			return m, tea.Quit
		case "j":
			m.offset += 16
		case "k":
			if m.offset >= 16 {
				m.offset -= 16
			}
		}
	}
	return m, nil
}

// renderPage renders a single 16-byte row of memory as a line, highlighting
// the current PC if it falls within the row.
func (m debugModel) renderPage(start uint16) string {
	row := m.cpu.Peek(start, 16)
	s := fmt.Sprintf("%04X | ", start)
	for i, b := range row {
		if start+uint16(i) == m.cpu.PC {
			s += fmt.Sprintf("[%02X] ", b)
		} else {
			s += fmt.Sprintf(" %02X  ", b)
		}
	}
	return s
}

func (m debugModel) pageTable() string {
	header := "addr | "
	for b := range 16 {
		header += fmt.Sprintf("  %01X  ", b)
	}
	lines := []string{header}
	for row := 0; row < 5; row++ {
		lines = append(lines, m.renderPage(m.offset+uint16(row*16)))
	}
	return strings.Join(lines, "\n")
}

func (m debugModel) status() string {
	reg := m.cpu.Registers()
	return fmt.Sprintf(`
PC: $%04X
 A: $%02X
 X: $%02X
 Y: $%02X
SP: $%02X
%s
[c]ontinue  [s]tep  [q]uit`, reg.PC, reg.A, reg.X, reg.Y, reg.SP, m.cpu.StatusLine())
}

// View renders the debugger overlay: a page of memory, the register/flag
// panel, and a spew dump of the instruction about to execute.
func (m debugModel) View() string {
	line, _ := m.cpu.Disassemble(m.cpu.PC)
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		"next: "+line,
		spew.Sdump(opcodeTable[m.cpu.Read(m.cpu.PC)]),
	)
}

// RunDebugTUI runs the Cpu in debug mode, handing control to an interactive
// bubbletea overlay every time a breakpoint or the step latch suspends
// execution. It returns the same RunOutcome Run would, as seen by a
// non-interactive driver.
func (c *Cpu) RunDebugTUI() RunOutcome {
	return c.Run(true, func(cpu *Cpu) DebugDecision {
		m := debugModel{cpu: cpu, offset: cpu.PC &^ 0x0f}
		result, err := tea.NewProgram(m).Run()
		if err != nil {
			return DebugStop
		}
		final := result.(debugModel)
		if !final.answered {
			return DebugStop
		}
		return final.decision
	})
}
