// Package cpu implements the Intel 8080 8-bit microprocessor: architectural
// state plus the fetch-decode-execute loop that advances it one instruction
// at a time against an external bus.Bus.
package cpu

import (
	"fmt"

	"i8080/bus"
)

// Cycles is the abstract T-state count returned by Step. It is never
// accumulated inside the Cpu; callers that care about elapsed time sum it
// themselves.
type Cycles = uint64

// A State is one of the two run states the Cpu can be in.
type State int

const (
	Running State = iota
	Halted
)

func (s State) String() string {
	if s == Halted {
		return "Halted"
	}
	return "Running"
}

// Cpu holds the full architectural state of an 8080: the eight general
// registers, the program counter and stack pointer, the five condition
// flags, the interrupt-enable flag, and the current run state.
//
// Register pairs (BC, DE, HL, AF) are never stored directly; they are
// always composed from the byte registers and Flags, which guarantees the
// byte and pair views can never drift out of sync.
type Cpu struct {
	A, B, C, D, E, H, L byte
	Flags               Flags

	PC, SP uint16

	// IFF is the interrupt-enable flag. It starts true and is only ever
	// toggled by EI/DI; nothing in this package reads it, since no
	// interrupt source is modeled (spec §9 leaves request_interrupt as a
	// documented-but-unbuilt hook).
	IFF bool

	State State
}

// New returns a Cpu with every register zero, every flag clear, PC and SP
// at 0, interrupts enabled, and State Running.
func New() *Cpu {
	return &Cpu{
		PC:    0,
		SP:    0,
		IFF:   true,
		State: Running,
	}
}

// Reset restores the Cpu to the state New returns, in place. This is the
// "external reset" spec §4.2.6 describes as the only way out of Halted.
func (c *Cpu) Reset() {
	*c = *New()
}

// BC, DE, HL read the named register pair as a 16-bit big-endian composite
// (high byte first).
func (c *Cpu) BC() uint16 { return pair(c.B, c.C) }
func (c *Cpu) DE() uint16 { return pair(c.D, c.E) }
func (c *Cpu) HL() uint16 { return pair(c.H, c.L) }

// SetBC, SetDE, SetHL write the named register pair from a 16-bit value.
func (c *Cpu) SetBC(v uint16) { c.B, c.C = hi(v), lo(v) }
func (c *Cpu) SetDE(v uint16) { c.D, c.E = hi(v), lo(v) }
func (c *Cpu) SetHL(v uint16) { c.H, c.L = hi(v), lo(v) }

// AF packs A and Flags into a 16-bit value matching the 8080's F register
// layout (spec §3): bit7=S bit6=Z bit5=0 bit4=AC bit3=0 bit2=P bit1=1
// bit0=C.
func (c *Cpu) AF() uint16 {
	return pair(c.A, c.Flags.pack())
}

// SetAF unpacks a 16-bit value into A and Flags using the same layout as AF.
func (c *Cpu) SetAF(v uint16) {
	c.A = hi(v)
	c.Flags.unpack(lo(v))
}

func pair(h, l byte) uint16 { return uint16(h)<<8 | uint16(l) }
func hi(v uint16) byte      { return byte(v >> 8) }
func lo(v uint16) byte      { return byte(v) }

// fetchByte reads the byte at PC and advances PC by one, wrapping at
// 0xFFFF.
func (c *Cpu) fetchByte(b bus.Bus) byte {
	v := b.Read(c.PC)
	c.PC++
	return v
}

// fetchWord reads the little-endian word at PC and advances PC by two,
// wrapping at 0xFFFF.
func (c *Cpu) fetchWord(b bus.Bus) uint16 {
	v := bus.Read16(b, c.PC)
	c.PC += 2
	return v
}

// Step executes exactly one instruction, or absorbs one Halted tick, and
// returns its cycle cost. If the Cpu is Halted, Step makes no state change
// beyond returning 4 (spec §4.2.6/§8).
func (c *Cpu) Step(b bus.Bus) Cycles {
	if c.State == Halted {
		return 4
	}
	op := c.fetchByte(b)
	return c.execute(b, op)
}

// String renders the trace representation from spec §6:
//
//	PC=hhhh SP=hhhh A=hh BC=hhhh DE=hhhh HL=hhhh F=[Z:b S:b P:b AC:b C:b] (<state>)
func (c *Cpu) String() string {
	return fmt.Sprintf(
		"PC=%04X SP=%04X A=%02X BC=%04X DE=%04X HL=%04X F=[Z:%d S:%d P:%d AC:%d C:%d] (%s)",
		c.PC, c.SP, c.A, c.BC(), c.DE(), c.HL(),
		b2i(c.Flags.Z), b2i(c.Flags.S), b2i(c.Flags.P), b2i(c.Flags.AC), b2i(c.Flags.C),
		c.State,
	)
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
