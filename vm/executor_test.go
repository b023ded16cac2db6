package vm

import "testing"

func step1(t *testing.T, code byte, stack []int64) *Thread {
	t.Helper()
	m := newTestMachine(t, []byte{code}, []byte{OpNop}, []byte{OpNop}, nil)
	th := m.Thread(R)
	th.Stack = append([]int64(nil), stack...)
	m.Step(R)
	return th
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name  string
		code  byte
		stack []int64
		want  []int64
	}{
		// sub, div and rem take the top of the stack as the left operand
		// and the value below it as the right operand.
		{"add", OpAdd, []int64{3, 4}, []int64{7}},
		{"sub", OpSub, []int64{4, 10}, []int64{6}},
		{"mul", OpMul, []int64{3, 4}, []int64{12}},
		{"div positive", OpDiv, []int64{2, 7}, []int64{3}},
		{"div floor negative", OpDiv, []int64{2, -7}, []int64{-4}},
		{"rem floor negative", OpRem, []int64{2, -7}, []int64{1}},
		{"not", OpNot, []int64{0}, []int64{-1}},
		{"neg", OpNeg, []int64{5}, []int64{-5}},
		{"or", OpOr, []int64{0b0110, 0b0011}, []int64{0b0111}},
		{"and", OpAnd, []int64{0b0110, 0b0011}, []int64{0b0010}},
		{"gt true", OpGt, []int64{3, 5}, []int64{1}},
		{"gt false", OpGt, []int64{5, 3}, []int64{0}},
		{"eq", OpEq, []int64{7, 7}, []int64{1}},
		{"lt", OpLt, []int64{3, 5}, []int64{0}},
		{"pop", OpPop, []int64{1, 2}, []int64{1}},
		{"swap", OpSwap, []int64{1, 2}, []int64{2, 1}},
		{"dup", OpDup, []int64{5}, []int64{5, 5}},
		{"shl", OpShl, []int64{1, 3}, []int64{8}},
		{"shr", OpShr, []int64{8, 3}, []int64{1}},
		{"shr negative is arithmetic", OpShr, []int64{-8, 1}, []int64{-4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := step1(t, tt.code, tt.stack)
			if !equalStacks(th.Stack, tt.want) {
				t.Errorf("%s: stack = %v, want %v", tt.name, th.Stack, tt.want)
			}
		})
	}
}

func TestUnderflowIsSilentButCounted(t *testing.T) {
	th := step1(t, OpAdd, nil)
	if len(th.Stack) != 0 {
		t.Errorf("stack after underflowed add = %v, want empty", th.Stack)
	}
	if th.Stat[Add] != 1 {
		t.Errorf("stat[add] = %d, want 1", th.Stat[Add])
	}
}

func TestDivisionByZeroHalts(t *testing.T) {
	th := step1(t, OpDiv, []int64{0, 5}) // dividend 5 on top, divisor 0 below
	if th.State != Halted {
		t.Errorf("state after div by zero = %v, want HALTED", th.State)
	}
}

func TestRemByZeroHalts(t *testing.T) {
	th := step1(t, OpRem, []int64{0, 5}) // dividend 5 on top, divisor 0 below
	if th.State != Halted {
		t.Errorf("state after rem by zero = %v, want HALTED", th.State)
	}
}

func TestRotMovesElementBelowNewTop(t *testing.T) {
	// stack bottom->top: [10, 20, 30, 2]; rot pops n=2, extract=30,
	// reinserts it 2 below the new top -> [10, 30, 20].
	th := step1(t, OpRot, []int64{10, 20, 30, 2})
	want := []int64{10, 30, 20}
	if !equalStacks(th.Stack, want) {
		t.Errorf("rot: stack = %v, want %v", th.Stack, want)
	}
}

func TestOutcFiltersNonASCII(t *testing.T) {
	io := &fakeIO{}
	m := newTestMachine(t, []byte{OpOutc}, []byte{OpNop}, []byte{OpNop}, io)
	th := m.Thread(R)
	th.Stack = []int64{200}
	m.Step(R)
	if len(io.wchars) != 0 {
		t.Errorf("outc wrote non-ASCII value %v", io.wchars)
	}

	th.Stack = []int64{65}
	m.Step(R)
	if len(io.wchars) != 1 || io.wchars[0] != 65 {
		t.Errorf("outc wchars = %v, want [65]", io.wchars)
	}
}

func TestJmpzInRange(t *testing.T) {
	codeR := []byte{OpJmpz, 0, 0, 0, 0}
	codeG := []byte{OpNop, OpNop, OpNop, OpNop, OpNop}
	codeB := []byte{OpNop, OpNop, OpNop, OpNop, OpNop}
	m := newTestMachine(t, codeR, codeG, codeB, nil)
	th := m.Thread(R)
	th.Stack = []int64{3, 0} // addr=3, value=0
	m.Step(R)
	if th.IP != 2 {
		t.Errorf("jmpz landed at ip=%d, want 2 (so scheduler advance reaches 3)", th.IP)
	}
}

func TestJmpzOutOfRangeOverrunsNext(t *testing.T) {
	codeR := []byte{OpJmpz, 0, 0}
	m := newTestMachine(t, codeR, make([]byte, 3), make([]byte, 3), nil)
	th := m.Thread(R)
	th.Stack = []int64{99, 0} // addr=99 (out of range), value=0
	m.Step(R)
	if th.IP != 2 { // size-1
		t.Errorf("out-of-range jmpz ip = %d, want size-1=2", th.IP)
	}
}

func TestPushaWaitaImmediate(t *testing.T) {
	m := newTestMachine(t, []byte{OpPusha}, []byte{OpWaita}, []byte{OpNop}, nil)
	m.Thread(R).Stack = []int64{42}
	m.Step(R)
	if m.AlphaDepth() != 1 {
		t.Fatalf("alpha depth after pusha = %d, want 1", m.AlphaDepth())
	}
	m.Step(G)
	if got := m.Thread(G).Stack; len(got) != 1 || got[0] != 42 {
		t.Errorf("waita with data available: stack = %v, want [42]", got)
	}
	if m.Thread(G).State != Running {
		t.Errorf("waita with data available: state = %v, want RUNNING", m.Thread(G).State)
	}
	if m.Thread(G).Stat[Waita] != 1 {
		t.Errorf("waita stat = %d, want 1", m.Thread(G).Stat[Waita])
	}
}

func TestWaitaSuspendsWhenAlphaEmpty(t *testing.T) {
	m := newTestMachine(t, []byte{OpNop}, []byte{OpWaita}, []byte{OpNop}, nil)
	th := m.Thread(G)
	th.IP = 0
	m.Step(G)
	if th.State != Await {
		t.Fatalf("state = %v, want AWAIT", th.State)
	}
	if th.Stat[Waita] != 0 {
		t.Errorf("stat[waita] = %d, want 0 (counted on resume, not suspend)", th.Stat[Waita])
	}
}

func equalStacks(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
