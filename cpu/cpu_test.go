package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"i8080/mem"
)

func TestRegisterPairRoundTrip(t *testing.T) {
	for _, x := range []uint16{0x0000, 0x1234, 0xFFFF, 0xABCD, 0x8000} {
		c := New()
		c.SetBC(x)
		assert.Equal(t, x, c.BC(), "BC round trip for %04X", x)

		c.SetDE(x)
		assert.Equal(t, x, c.DE(), "DE round trip for %04X", x)

		c.SetHL(x)
		assert.Equal(t, x, c.HL(), "HL round trip for %04X", x)

		c.SP = x
		assert.Equal(t, x, c.SP)

		c.PC = x
		assert.Equal(t, x, c.PC)
	}
}

func TestAFPackingFixesReservedBits(t *testing.T) {
	c := New()
	// Every possible low byte, including ones with "wrong" reserved bits
	// set, must come back with bit1=1 and bits 3,5=0 forced.
	for v := 0; v <= 0xFF; v++ {
		c.SetAF(uint16(v) | 0xFF00)
		got := c.AF() & 0x00FF
		assert.NotZero(t, got&0x02, "bit1 must always be 1")
		assert.Zero(t, got&0x08, "bit3 must always be 0")
		assert.Zero(t, got&0x20, "bit5 must always be 0")
	}
}

func TestHaltedCpuAbsorbsTicks(t *testing.T) {
	r := &mem.Ram{}
	c := New()
	c.State = Halted
	before := *c

	cycles := c.Step(r)

	assert.Equal(t, Cycles(4), cycles)
	assert.Equal(t, before, *c, "Halted Step must not mutate any other field")
}

func TestRotateThroughCarryIsSelfInverse(t *testing.T) {
	for a := 0; a <= 0xFF; a++ {
		c := New()
		c.A = byte(a)
		c.Flags.C = false
		c.rla()
		c.rra()
		assert.Equal(t, byte(a), c.A, "RLA;RRA must restore A for %02X", a)
	}
}

func TestParityFlagMatchesPopcountParity(t *testing.T) {
	for v := 0; v <= 0xFF; v++ {
		c := New()
		c.A = byte(v)
		c.ORA(c.A)
		assert.Equal(t, popcountEven(byte(v)), c.Flags.P, "parity for %02X", v)
	}
}

func popcountEven(v byte) bool {
	count := 0
	for v != 0 {
		count += int(v & 1)
		v >>= 1
	}
	return count%2 == 0
}

func TestPushPopRestoresPairAndSP(t *testing.T) {
	r := &mem.Ram{}
	c := New()
	c.SP = 0x2000
	c.SetHL(0xBEEF)
	savedSP := c.SP

	c.push(r, c.HL())
	c.SetHL(0)
	c.SetHL(c.pop(r))

	assert.Equal(t, uint16(0xBEEF), c.HL())
	assert.Equal(t, savedSP, c.SP)
}

func TestTraceStringFormat(t *testing.T) {
	c := New()
	c.PC = 0x0100
	c.SP = 0x2000
	c.A = 0x41
	c.SetBC(0x1234)
	c.SetDE(0x5678)
	c.SetHL(0x9ABC)
	c.Flags = Flags{Z: true, S: false, P: true, AC: false, C: true}

	got := c.String()
	want := "PC=0100 SP=2000 A=41 BC=1234 DE=5678 HL=9ABC F=[Z:1 S:0 P:1 AC:0 C:1] (Running)"
	assert.Equal(t, want, got)
}

// --- end-to-end scenarios from spec §8 ---

func TestScenarioJmpThenHalt(t *testing.T) {
	r := &mem.Ram{}
	c := New()
	program := []byte{0xC3, 0x03, 0x00, 0x00, 0x00, 0x76}
	copy(r.Data[:], program)

	var total Cycles
	for i := 0; i < 4; i++ {
		total += c.Step(r)
	}

	assert.Equal(t, Halted, c.State)
	assert.Equal(t, uint16(0x0006), c.PC)
	assert.Equal(t, Cycles(22), total)
}

func TestScenarioLxiBC(t *testing.T) {
	r := &mem.Ram{}
	c := New()
	copy(r.Data[:], []byte{0x01, 0x34, 0x12})

	cycles := c.Step(r)

	assert.Equal(t, byte(0x12), c.B)
	assert.Equal(t, byte(0x34), c.C)
	assert.Equal(t, uint16(3), c.PC)
	assert.Equal(t, Cycles(10), cycles)
}

func TestScenarioAdiOverflowSetsFlags(t *testing.T) {
	r := &mem.Ram{}
	c := New()
	copy(r.Data[:], []byte{0x3E, 0xFF, 0xC6, 0x01})

	c.Step(r)
	c.Step(r)

	assert.Equal(t, byte(0x00), c.A)
	assert.True(t, c.Flags.Z)
	assert.True(t, c.Flags.C)
	assert.True(t, c.Flags.AC)
	assert.False(t, c.Flags.S)
	assert.True(t, c.Flags.P)
}

func TestScenarioStackPushPopThroughLxiSp(t *testing.T) {
	r := &mem.Ram{}
	c := New()
	program := []byte{
		0x31, 0x00, 0x20, // LXI SP,0x2000
		0x21, 0xCD, 0xAB, // LXI HL,0xABCD
		0xE5, // PUSH H
		0xE1, // POP H
	}
	copy(r.Data[:], program)

	for i := 0; i < 4; i++ { // LXI SP; LXI HL; PUSH H; POP H
		c.Step(r)
	}

	assert.Equal(t, uint16(0xABCD), c.HL())
	assert.Equal(t, uint16(0x2000), c.SP)
}
