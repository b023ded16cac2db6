package main

import (
	"errors"
	"fmt"
	"os"

	"colorvm/decoder"
	"colorvm/disassembler"
	"colorvm/vm"
)

// exitError carries a specific process exit code alongside its message,
// so FileNotFound and the decoder's version/size errors surface their
// own consistent nonzero codes (spec.md §6.2) instead of a single
// generic failure code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func run(filename string) error {
	if _, err := os.Stat(filename); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &exitError{code: 2, err: fmt.Errorf("file %s not found", filename)}
		}
		return &exitError{code: 2, err: err}
	}

	prog, err := loadProgram(filename)
	if err != nil {
		if errors.Is(err, decoder.ErrUnsupportedVersion) ||
			errors.Is(err, decoder.ErrEmptyProgram) ||
			errors.Is(err, decoder.ErrImageTooSmall) {
			return &exitError{code: 3, err: err}
		}
		return &exitError{code: 2, err: err}
	}

	if flagBytedump {
		dumpBytes(filename, prog)
		return nil
	}
	if flagDisasm {
		dumpDisasm(filename, prog)
		return nil
	}

	logger := cliLogger{silent: flagSilent, debug: flagDebug}
	io := newStdIO()
	defer io.Flush()

	m, err := vm.New(prog.CodeR, prog.CodeG, prog.CodeB, io, logger)
	if err != nil {
		return &exitError{code: 2, err: err}
	}
	m.Start()
	m.Run()

	if flagStatistics {
		io.Flush()
		printStatistics(m)
	}
	return nil
}

func dumpBytes(filename string, prog *decoder.Program) {
	fmt.Printf("Dumping %s\n", filename)
	fmt.Printf("ColorVM version: %d.%d\n", decoder.VMajor, decoder.VMinor)
	fmt.Printf("Image file version: %d.%d, Cell size: %d\n\n", prog.Major, prog.Minor, prog.CellSize)
	for i := 0; i < prog.Size; i++ {
		fmt.Println(disassembler.ByteDumpLine(i, prog.CodeR[i], prog.CodeG[i], prog.CodeB[i]))
	}
}

func dumpDisasm(filename string, prog *decoder.Program) {
	fmt.Printf("#Disassembling %s\n", filename)
	fmt.Printf("#ColorVM version: %d.%d\n", decoder.VMajor, decoder.VMinor)
	fmt.Printf("#Image file version: %d.%d, Cell size: %d\n\n", prog.Major, prog.Minor, prog.CellSize)
	for i := 0; i < prog.Size; i++ {
		fmt.Println(disassembler.Line(i, prog.CodeR[i], prog.CodeG[i], prog.CodeB[i]))
	}
}
