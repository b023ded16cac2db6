package vm

import "strconv"

// Pass performs one round-robin sweep over R, G, B: each Running channel
// gets to execute its next instruction, and the channel at the head of
// the wait queue gets to resume if the alpha stack now holds a value
// for it.
func (m *Machine) Pass() {
	for _, c := range []Channel{R, G, B} {
		t := m.threads[c]
		m.traceState(t)
		switch t.State {
		case Running:
			m.runOne(t)
		case Await:
			if len(m.waiting) > 0 && m.waiting[0] == c && len(m.alpha) > 0 {
				m.resumeWaita(t)
			}
		}
	}
}

// traceState emits the per-channel, per-pass -g trace line: its state,
// ip, and the raw byte it's about to act on (if any).
func (m *Machine) traceState(t *Thread) {
	if t.State == Overrun {
		m.logger.Debug(t.Channel, "state=%s ip=%d code=N/A", t.State, t.IP)
		return
	}
	if t.IP < len(m.code[t.Channel]) {
		m.logger.Debug(t.Channel, "state=%s ip=%d code=%d", t.State, t.IP, m.code[t.Channel][t.IP])
	}
}

// runOne fetches and executes one instruction for a Running thread. nop
// and halt are handled directly, matching spec.md §4.5's description of
// the scheduler owning those two opcodes; everything else goes through
// Step. ip only advances once Step returns, and not at all if Step left
// the thread Halted — an explicit halt (division by zero, an invalid
// opcode) must not be clobbered into OVERRUN by a trailing advance.
func (m *Machine) runOne(t *Thread) {
	b := m.code[t.Channel][t.IP]
	inst := Decode(b)
	switch {
	case inst.Kind == KindOp && inst.Mnemonic == Nop:
		t.Stat[Nop]++
		m.advance(t)
		return
	case inst.Kind == KindOp && inst.Mnemonic == Halt:
		t.Stat[Halt]++
		t.State = Halted
		m.logger.Debug(t.Channel, "  halted")
		return
	default:
		m.logger.Debug(t.Channel, "  instruction: %s", instructionLabel(inst))
		m.Step(t.Channel)
		if t.State == Halted {
			m.traceStack()
			return
		}
		m.advance(t)
	}
	if t.State == Overrun {
		m.logger.Debug(t.Channel, "  overrun")
	}
	m.traceStack()
}

// instructionLabel renders the same "push N" / mnemonic text the
// disassembler produces, without importing the disassembler package
// (which itself depends on vm) — see spec.md §4.4.
func instructionLabel(inst Instruction) string {
	if inst.Kind == KindPush || inst.Kind == KindInvalid {
		return "push " + strconv.Itoa(int(inst.Byte))
	}
	return inst.Mnemonic.String()
}

// traceStack emits the four-column (R, G, B, A) stack dump after every
// dispatched instruction, mirroring the "Stack dump" table in the
// original interpreter's debug mode.
func (m *Machine) traceStack() {
	m.logger.DebugStack(m.threads[R].Stack, m.threads[G].Stack, m.threads[B].Stack, m.alpha)
}

// advance moves ip forward one cell and transitions to OVERRUN if that
// runs the thread off the end of its code array.
func (m *Machine) advance(t *Thread) {
	t.IP++
	if t.IP >= len(m.code[t.Channel]) {
		t.State = Overrun
	}
}

// resumeWaita completes a parked WAITA once it reaches the head of the
// wait queue and the alpha stack has a value for it: pop alpha, push
// onto the thread's own stack, resume RUNNING, and advance past the
// waita instruction itself.
func (m *Machine) resumeWaita(t *Thread) {
	m.logger.Debug(t.Channel, "  data found on alpha stack, resuming")
	m.waiting = m.waiting[1:]
	v := m.alpha[len(m.alpha)-1]
	m.alpha = m.alpha[:len(m.alpha)-1]
	t.push(v)
	t.Stat[Waita]++
	t.State = Running
	m.advance(t)
	m.traceStack()
}

// Run drives Pass to completion and logs why ColorVM stopped. After
// every pass it counts RUNNING (r) and AWAIT (w) threads: r==0 && w==0
// means every thread reached HALTED/OVERRUN; r==0 && w>0 means the
// survivors are stuck waiting on an alpha stack nothing will ever feed
// again.
func (m *Machine) Run() {
	for {
		m.Pass()
		r, w := m.counts()
		m.logger.Debug(R, "running=%d await=%d", r, w)
		switch {
		case r == 0 && w == 0:
			m.logger.Info("Threads halted.")
			return
		case r == 0 && w > 0:
			m.logger.Info("Thread deadlock.")
			return
		}
	}
}

func (m *Machine) counts() (running, waiting int) {
	for _, c := range []Channel{R, G, B} {
		switch m.threads[c].State {
		case Running:
			running++
		case Await:
			waiting++
		}
	}
	return running, waiting
}
