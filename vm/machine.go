package vm

import "fmt"

// Logger receives the informational and per-step trace output the
// original interpreter prints via mesg()/debuglog(). cmd/colorvm
// implements this over -s/-g; a nil Logger disables all output.
type Logger interface {
	// Info reports a condition such as an invalid opcode or
	// termination reason. Suppressed by -s in the CLI.
	Info(format string, args ...any)
	// Debug reports a per-step trace for the given channel. Only
	// emitted by the CLI under -g.
	Debug(c Channel, format string, args ...any)
	// DebugStack reports the four-column (R, G, B, A) stack dump that
	// follows every dispatched instruction under -g.
	DebugStack(r, g, b, a []int64)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any)           {}
func (nopLogger) Debug(Channel, string, ...any) {}
func (nopLogger) DebugStack([]int64, []int64, []int64, []int64) {}

// Machine is the three-thread ColorVM: its code arrays, the threads
// reading them, the shared alpha rendezvous stack, and the FIFO of
// channels currently waiting on it.
type Machine struct {
	code    [3][]byte
	size    int
	threads [3]*Thread
	alpha   []int64
	waiting []Channel // FIFO; at most 3 entries (spec.md §9)

	io     IO
	logger Logger
}

// New builds a Machine from three equal-length code arrays. It returns
// an error if the arrays disagree in length — decoder.Decode already
// guarantees this, but the invariant is cheap to check again here since
// a Machine must never observe code[R], code[G], code[B] of different
// lengths (spec.md §3 invariants).
func New(codeR, codeG, codeB []byte, io IO, logger Logger) (*Machine, error) {
	size := len(codeR)
	if len(codeG) != size || len(codeB) != size {
		return nil, fmt.Errorf("vm: code arrays have mismatched lengths: %d/%d/%d", len(codeR), len(codeG), len(codeB))
	}
	if io == nil {
		io = DiscardIO{}
	}
	if logger == nil {
		logger = nopLogger{}
	}
	m := &Machine{
		code:   [3][]byte{R: codeR, G: codeG, B: codeB},
		size:   size,
		io:     io,
		logger: logger,
	}
	for _, c := range []Channel{R, G, B} {
		m.threads[c] = newThread(c)
	}
	return m, nil
}

// Size is the number of program cells (excluding the two header cells).
func (m *Machine) Size() int { return m.size }

// Thread returns the live state of one channel's thread.
func (m *Machine) Thread(c Channel) *Thread { return m.threads[c] }

// AlphaDepth reports how many values currently sit on the shared alpha
// stack, for debug dumps.
func (m *Machine) AlphaDepth() int { return len(m.alpha) }

// Start transitions all three threads from LOADING to RUNNING. Called
// once after the code arrays are in place and before the first Pass.
func (m *Machine) Start() {
	for _, c := range []Channel{R, G, B} {
		m.threads[c].State = Running
	}
}
