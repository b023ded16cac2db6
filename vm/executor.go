package vm

// Step executes exactly one instruction for channel c. The caller (the
// scheduler) is responsible for advancing ip and checking for overrun
// afterwards — Step adjusts ip itself only to compensate for that
// increment: a taken jmpz/jmpnz sets ip one before its target, and the
// WAITA-suspend case described in spec.md §4.5 steps ip back so it ends
// up unchanged once the scheduler's increment is applied.
//
// Step assumes state[c] == Running. nop and halt are handled directly
// by the scheduler and never reach here.
func (m *Machine) Step(c Channel) {
	t := m.threads[c]
	b := m.code[c][t.IP]
	inst := Decode(b)

	switch inst.Kind {
	case KindPush:
		t.push(int64(inst.Byte))
		t.Stat[Push]++
	case KindOp:
		m.exec(t, inst.Mnemonic)
	case KindInvalid:
		m.logger.Info("Invalid instruction %d in %q channel at %d position.\nHalting channel %q.", inst.Byte, c, t.IP, c)
		t.State = Halted
	}
}

// exec dispatches a recognised high-bit opcode. halt and nop are not
// reached through here (the scheduler intercepts them before calling
// Step), but every other mnemonic is handled.
func (m *Machine) exec(t *Thread, mn Mnemonic) {
	// waita is counted once per logical execution, on whichever step
	// actually delivers a value (here, or in resumeWaita) — not on the
	// step that merely parks the thread in AWAIT.
	if mn != Waita {
		t.Stat[mn]++
	}
	switch mn {
	case Add:
		if t.depth() >= 2 {
			x, y := t.pop(), t.pop()
			t.push(x + y)
		}
	case Sub:
		if t.depth() >= 2 {
			x, y := t.pop(), t.pop()
			t.push(x - y)
		}
	case Mul:
		if t.depth() >= 2 {
			x, y := t.pop(), t.pop()
			t.push(x * y)
		}
	case Div:
		if t.depth() >= 2 {
			x, y := t.pop(), t.pop()
			if y == 0 {
				m.logger.Info("Division by zero in channel %q at %d position.\nHalting channel %q.", t.Channel, t.IP, t.Channel)
				t.State = Halted
				return
			}
			t.push(floorDiv(x, y))
		}
	case Rem:
		if t.depth() >= 2 {
			x, y := t.pop(), t.pop()
			if y == 0 {
				m.logger.Info("Division by zero in channel %q at %d position.\nHalting channel %q.", t.Channel, t.IP, t.Channel)
				t.State = Halted
				return
			}
			t.push(floorMod(x, y))
		}
	case Pop:
		if t.depth() >= 1 {
			t.pop()
		}
	case Swap:
		if t.depth() >= 2 {
			a, b := t.pop(), t.pop()
			t.push(a)
			t.push(b)
		}
	case Dup:
		if t.depth() >= 1 {
			a := t.pop()
			t.push(a)
			t.push(a)
		}
	case Rot:
		execRot(t)
	case Not:
		if t.depth() >= 1 {
			t.push(^t.pop())
		}
	case Or:
		if t.depth() >= 2 {
			a, b := t.pop(), t.pop()
			t.push(a | b)
		}
	case And:
		if t.depth() >= 2 {
			a, b := t.pop(), t.pop()
			t.push(a & b)
		}
	case Gt:
		if t.depth() >= 2 {
			a, b := t.pop(), t.pop()
			t.push(boolInt(a > b))
		}
	case Eq:
		if t.depth() >= 2 {
			a, b := t.pop(), t.pop()
			t.push(boolInt(a == b))
		}
	case Lt:
		if t.depth() >= 2 {
			a, b := t.pop(), t.pop()
			t.push(boolInt(a < b))
		}
	case Jmpz:
		m.execJump(t, false)
	case Jmpnz:
		m.execJump(t, true)
	case Outc:
		if t.depth() >= 1 {
			n := t.pop()
			if n >= 0 && n <= 0x7F {
				m.io.WriteChar(n)
			}
		}
	case Inc:
		if v, ok := m.io.ReadChar(); ok {
			t.push(v)
		}
	case Outi:
		if t.depth() >= 1 {
			m.io.WriteInt(t.pop())
		}
	case Ini:
		if v, ok := m.io.ReadInt(); ok {
			t.push(v)
		}
	case Pusha:
		if t.depth() >= 1 {
			m.alpha = append(m.alpha, t.pop())
		}
	case Waita:
		m.execWaita(t)
	case Neg:
		if t.depth() >= 1 {
			t.push(-t.pop())
		}
	case Shl:
		if t.depth() >= 2 {
			s, v := t.pop(), t.pop()
			if n, ok := shiftCount(s); ok {
				t.push(v << n)
			} else {
				t.push(v)
			}
		}
	case Shr:
		if t.depth() >= 2 {
			s, v := t.pop(), t.pop()
			if n, ok := shiftCount(s); ok {
				t.push(v >> n)
			} else {
				t.push(v)
			}
		}
	}
}

// execJump implements jmpz (want==false) and jmpnz (want==true).
// spec.md §4.2: value=pop, addr=pop; if (value!=0)==want and addr is in
// range, land one-before-target so the scheduler's ip++ lands exactly on
// it; if out of range, land one-before-size so the next step overruns.
func (m *Machine) execJump(t *Thread, want bool) {
	if t.depth() < 2 {
		return
	}
	value, addr := t.pop(), t.pop()
	if (value != 0) != want {
		return
	}
	if addr >= 0 && int(addr) < len(m.code[t.Channel]) {
		t.IP = int(addr) - 1
	} else {
		t.IP = len(m.code[t.Channel]) - 1
	}
}

// execWaita implements spec.md §4.5's "WAITA semantics at first
// encounter": pop-and-continue if alpha already has data, otherwise
// suspend into AWAIT and join the wait queue.
func (m *Machine) execWaita(t *Thread) {
	if len(m.alpha) > 0 {
		v := m.alpha[len(m.alpha)-1]
		m.alpha = m.alpha[:len(m.alpha)-1]
		t.push(v)
		t.Stat[Waita]++
		return
	}
	t.State = Await
	m.waiting = append(m.waiting, t.Channel)
	t.IP--
}

func execRot(t *Thread) {
	if t.depth() < 1 {
		return
	}
	n := int(t.pop())
	if t.depth() < n {
		return
	}
	extract := t.pop()
	idx := t.depth() + 1 - n
	if idx < 0 {
		idx = 0
	}
	if idx > t.depth() {
		idx = t.depth()
	}
	t.Stack = append(t.Stack, 0)
	copy(t.Stack[idx+1:], t.Stack[idx:len(t.Stack)-1])
	t.Stack[idx] = extract
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	r := a % b
	if r != 0 && ((a < 0) != (b < 0)) {
		r += b
	}
	return r
}

// shiftCount validates a popped shift amount. Negative shift counts
// have no defined meaning in spec.md; we treat them as a shift of zero
// rather than panicking.
func shiftCount(s int64) (uint64, bool) {
	if s < 0 {
		return 0, false
	}
	return uint64(s), true
}
