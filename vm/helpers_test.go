package vm

// fakeIO is an in-memory vm.IO for executor/scheduler tests: reads are
// served from a queue, writes are recorded for assertions.
type fakeIO struct {
	chars  []int64
	ints   []int64
	wchars []int64
	wints  []int64
}

func (f *fakeIO) ReadChar() (int64, bool) {
	if len(f.chars) == 0 {
		return 0, false
	}
	v := f.chars[0]
	f.chars = f.chars[1:]
	return v, true
}

func (f *fakeIO) ReadInt() (int64, bool) {
	if len(f.ints) == 0 {
		return 0, false
	}
	v := f.ints[0]
	f.ints = f.ints[1:]
	return v, true
}

func (f *fakeIO) WriteChar(v int64) { f.wchars = append(f.wchars, v) }
func (f *fakeIO) WriteInt(v int64)  { f.wints = append(f.wints, v) }

func newTestMachine(t interface {
	Fatalf(string, ...any)
}, codeR, codeG, codeB []byte, io IO) *Machine {
	m, err := New(codeR, codeG, codeB, io, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.Start()
	return m
}
