// Command i8080dbg loads a raw binary at a fixed offset and opens the
// interactive single-step debugger (cpu.Debug).
package main

import (
	"fmt"
	"os"

	"i8080/cpu"
	"i8080/mem"
)

const loadOffset = 0x0100

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: i8080dbg program.bin")
		os.Exit(1)
	}

	program, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "reading program:", err)
		os.Exit(1)
	}

	c := cpu.New()
	ram := &mem.Ram{}
	if err := cpu.Debug(c, ram, program, loadOffset); err != nil {
		fmt.Fprintln(os.Stderr, "debugger:", err)
		os.Exit(1)
	}
}
