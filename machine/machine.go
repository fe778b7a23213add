// Package machine wires a flat 64 KiB RAM bus to a Cpu and drives it,
// the minimal host described by spec §4.3. It is the layer a front-end
// (GUI, CLI, debugger) actually talks to: construct, load bytes, step,
// inspect.
package machine

import (
	"fmt"

	"i8080/cpu"
	"i8080/mem"
)

// Machine composes a Cpu with its own flat-RAM Bus.
type Machine struct {
	Cpu *cpu.Cpu
	Ram *mem.Ram
}

// New returns a Machine with a freshly reset Cpu over a zeroed 64 KiB Ram.
func New() *Machine {
	return &Machine{
		Cpu: cpu.New(),
		Ram: &mem.Ram{},
	}
}

// Load copies data into Ram starting at addr. addr+len(data) must not
// exceed 65536; callers that violate this get an error back rather than a
// silent truncation or out-of-bounds panic (spec §4.3/§7: out-of-range
// load is a caller error).
func (m *Machine) Load(addr uint16, data []byte) error {
	end := int(addr) + len(data)
	if end > 0x10000 {
		return fmt.Errorf("machine: load at 0x%04X, len %d exceeds 64 KiB (end 0x%X)", addr, len(data), end)
	}
	copy(m.Ram.Data[addr:end], data)
	return nil
}

// Step delegates one instruction (or one Halted tick) to the Cpu and
// returns its cycle cost.
func (m *Machine) Step() cpu.Cycles {
	return m.Cpu.Step(m.Ram)
}
