// Command i8080test runs one or more CP/M .COM conformance binaries
// through the i8080 interpreter and reports instruction/cycle totals
// alongside each program's own console output (spec §6).
package main

import (
	"fmt"
	"io"
	"os"

	"i8080/machine"
)

var defaultSuite = []string{
	"data/8080PRE.COM",
	"data/TST8080.COM",
	"data/CPUTEST.COM",
	"data/8080EXM.COM",
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var paths []string
	switch len(args) {
	case 0:
		paths = defaultSuite
	case 1:
		paths = args
	default:
		fmt.Fprintln(stderr, "usage: i8080test [program.com]")
		return 1
	}

	status := 0
	for _, path := range paths {
		if err := runOne(path, stdout); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", path, err)
			status = 1
		}
	}
	return status
}

func runOne(path string, out io.Writer) error {
	program, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading program: %w", err)
	}

	fmt.Fprintf(out, "=== %s ===\n", path)

	cpm := machine.NewCPM(out)
	if err := cpm.LoadCOM(program); err != nil {
		return err
	}
	cpm.Run()

	fmt.Fprintf(out, "\n%s: %d instructions, %d cycles\n", path, cpm.Instructions, cpm.Cycles)
	return nil
}
