// Command colorvm loads a program image, then either dumps it, lists
// its disassembly, or runs it to completion.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	err := newRootCmd().Execute()
	if err == nil {
		return
	}
	// spec.md §7: FileNotFound/UnsupportedVersion/EmptyProgram/
	// ImageTooSmall are "surface" messages, but messages are still
	// suppressed under -s, exactly like every mesg() call site in the
	// original interpreter (colorvm.py lines 463, 474, 591). The exit
	// code stays nonzero either way.
	if !flagSilent {
		fmt.Fprintln(os.Stderr, err)
	}
	code := 1
	var ee *exitError
	if errors.As(err, &ee) {
		code = ee.code
	}
	os.Exit(code)
}

var (
	flagBytedump   bool
	flagDisasm     bool
	flagSilent     bool
	flagStatistics bool
	flagDebug      bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "colorvm <filename>",
		Short:         "Run, dump or disassemble a ColorVM program image",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0])
		},
	}
	cmd.Flags().BoolVarP(&flagBytedump, "bytedump", "b", false, "print raw [r, g, b] per program cell; do not execute")
	cmd.Flags().BoolVarP(&flagDisasm, "disasm", "d", false, "print the disassembly listing; do not execute")
	cmd.Flags().BoolVarP(&flagSilent, "silent", "s", false, "suppress informational messages")
	cmd.Flags().BoolVarP(&flagStatistics, "statistics", "t", false, "print per-opcode, per-channel execution counts")
	cmd.Flags().BoolVarP(&flagDebug, "debug", "g", false, "emit a per-step execution trace")
	return cmd
}
