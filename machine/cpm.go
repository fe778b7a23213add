package machine

import (
	"fmt"
	"io"
	"log"

	"i8080/cpu"
)

const (
	bdosEntry  = 0x0005
	comLoadAt  = 0x0100
	bdosPrintC = 0x02 // print character in E
	bdosPrintS = 0x09 // print '$'-terminated string at DE
	dollar     = '$'
)

// CPM drives a Machine the way CP/M would drive a .COM program: HALT at
// 0x0000 stands in for the CP/M warm-boot vector, a RET is injected at the
// BDOS entry point (0x0005), and calls there are intercepted and serviced
// directly rather than executed (spec §4.3).
type CPM struct {
	Machine *Machine
	Out     io.Writer

	Instructions uint64
	Cycles       cpu.Cycles
}

// NewCPM returns a CPM driving a fresh Machine, with console output
// written to out.
func NewCPM(out io.Writer) *CPM {
	return &CPM{
		Machine: New(),
		Out:     out,
	}
}

// LoadCOM prepares the machine the way CP/M prepares a .COM binary:
// writes HALT at 0x0000 and RET at the BDOS entry, loads program at
// 0x0100, and sets PC to 0x0100.
func (r *CPM) LoadCOM(program []byte) error {
	r.Machine.Ram.Data[0x0000] = 0x76    // HALT
	r.Machine.Ram.Data[bdosEntry] = 0xC9 // RET
	if err := r.Machine.Load(comLoadAt, program); err != nil {
		return fmt.Errorf("cpm: loading program: %w", err)
	}
	r.Machine.Cpu.PC = comLoadAt
	return nil
}

// Run repeats: stop if Halted, stop if PC is the system-reset sentinel
// (0x0000), service the BDOS call if PC is the BDOS entry, then step once
// and accumulate the cycle and instruction counts. It returns once the Cpu
// halts or hits the sentinel.
func (r *CPM) Run() {
	c := r.Machine.Cpu
	for {
		if c.State == cpu.Halted {
			return
		}
		if c.PC == 0x0000 {
			return
		}
		if c.PC == bdosEntry {
			r.bdos()
		}
		r.Cycles += r.Machine.Step()
		r.Instructions++
	}
}

// bdos services one BDOS call, dispatching on register C, per spec §4.3.
// Unsupported function numbers are logged and otherwise ignored; the
// injected RET at bdosEntry (already in place from LoadCOM) returns
// control to the caller on the following Step.
func (r *CPM) bdos() {
	c := r.Machine.Cpu
	switch c.C {
	case bdosPrintC:
		fmt.Fprintf(r.Out, "%c", c.E)
	case bdosPrintS:
		addr := c.DE()
		for {
			b := r.Machine.Ram.Read(addr)
			if b == dollar {
				break
			}
			fmt.Fprintf(r.Out, "%c", b)
			addr++
		}
	default:
		log.Printf("cpm: unsupported BDOS function C=0x%02X", c.C)
	}
}
