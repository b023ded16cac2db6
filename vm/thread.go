package vm

import "fmt"

// Channel identifies one of the three colour threads. Alpha is never a
// schedulable channel; it only names the shared rendezvous stack.
type Channel int

const (
	R Channel = iota
	G
	B
)

var channelNames = [...]string{R: "R", G: "G", B: "B"}

func (c Channel) String() string {
	if c < R || c > B {
		return fmt.Sprintf("channel(%d)", int(c))
	}
	return channelNames[c]
}

// State is a thread's position in its lifecycle.
type State int

const (
	Loading State = iota
	Running
	Await
	Halted
	Overrun
)

var stateNames = [...]string{
	Loading: "LOADING",
	Running: "RUNNING",
	Await:   "AWAIT",
	Halted:  "HALTED",
	Overrun: "OVERRUN",
}

func (s State) String() string {
	if s < Loading || s > Overrun {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Thread holds the per-channel execution state: its stack, instruction
// pointer, lifecycle state, and per-mnemonic execution counters.
type Thread struct {
	Channel Channel
	Stack   []int64
	IP      int
	State   State
	Stat    [NumMnemonics]uint64
}

func newThread(c Channel) *Thread {
	return &Thread{Channel: c, State: Loading}
}

// push appends a value to the top of the stack.
func (t *Thread) push(v int64) {
	t.Stack = append(t.Stack, v)
}

// pop removes and returns the top of the stack. The caller must check
// depth with len(t.Stack) first — underflow is the caller's job to
// avoid per the silent no-op policy in spec.md §4.2.
func (t *Thread) pop() int64 {
	n := len(t.Stack) - 1
	v := t.Stack[n]
	t.Stack = t.Stack[:n]
	return v
}

// depth returns the stack depth, for underflow checks.
func (t *Thread) depth() int {
	return len(t.Stack)
}
