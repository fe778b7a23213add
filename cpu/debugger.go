package cpu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"i8080/bus"
)

// model is the bubbletea model backing Debug: a single-step 8080 inspector
// in the same shape as the teacher's 6502 TUI (cpu/debugger.go upstream),
// adapted to 8080 registers/flags and the trace string from spec §6.
type model struct {
	cpu     *Cpu
	b       bus.Bus
	program []byte
	offset  uint16

	prevPC uint16
}

func (m model) Init() tea.Cmd {
	for i, v := range m.program {
		m.b.Write(m.offset+uint16(i), v)
	}
	m.cpu.PC = m.offset
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case " ", "j":
			m.prevPC = m.cpu.PC
			m.cpu.Step(m.b)
		}
	}
	return m, nil
}

func (m model) renderPage(start uint16) string {
	s := fmt.Sprintf("%04X | ", start)
	for i := uint16(0); i < 16; i++ {
		addr := start + i
		v := m.b.Read(addr)
		if addr == m.cpu.PC {
			s += fmt.Sprintf("[%02X] ", v)
		} else {
			s += fmt.Sprintf(" %02X  ", v)
		}
	}
	return s
}

func (m model) pageTable() string {
	header := "page | "
	for b := 0; b < 16; b++ {
		header += fmt.Sprintf("  %01X  ", b)
	}
	pageStart := m.cpu.PC &^ 0x0F
	rows := []string{header, m.renderPage(pageStart)}
	return strings.Join(rows, "\n")
}

func (m model) status() string {
	return fmt.Sprintf("\nprev PC: %04X\n%s\n", m.prevPC, m.cpu.String())
}

func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		spew.Sdump(m.b.Read(m.cpu.PC)),
	)
}

// Debug loads program into b at offset, sets PC to offset, and starts an
// interactive TUI: space/j single-steps, q quits. It is the 8080 analogue
// of the teacher's Cpu.Debug.
func Debug(c *Cpu, b bus.Bus, program []byte, offset uint16) error {
	_, err := tea.NewProgram(model{
		cpu:     c,
		b:       b,
		program: program,
		offset:  offset,
	}).Run()
	return err
}
