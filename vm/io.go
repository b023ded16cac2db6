package vm

// IO is the character/integer input-output collaborator the executor
// blocks on for inc/ini/outc/outi. spec.md §1 treats the concrete
// terminal plumbing as an external collaborator; this interface is the
// seam cmd/colorvm implements over stdin/stdout.
type IO interface {
	// ReadChar reads one line from input and returns the first
	// character's code point. ok is false on EOF or an empty line.
	ReadChar() (value int64, ok bool)
	// ReadInt reads one line from input and parses it as an unsigned
	// decimal integer. ok is false when the line fails to parse.
	ReadInt() (value int64, ok bool)
	// WriteChar writes one ASCII character followed by a newline.
	// Non-ASCII code points are dropped, matching spec.md §4.2's outc.
	WriteChar(value int64)
	// WriteInt writes one decimal integer followed by a newline.
	WriteInt(value int64)
}

// DiscardIO is a no-op IO implementation useful for byte-dump/disasm
// modes and for tests that never exercise inc/ini/outc/outi.
type DiscardIO struct{}

func (DiscardIO) ReadChar() (int64, bool) { return 0, false }
func (DiscardIO) ReadInt() (int64, bool)  { return 0, false }
func (DiscardIO) WriteChar(int64)         {}
func (DiscardIO) WriteInt(int64)          {}
