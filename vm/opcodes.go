package vm

import "fmt"

// Mnemonic identifies a recognised ColorVM operation. The zero value is
// Push, matching the most common instruction in any program image.
type Mnemonic int

const (
	Push Mnemonic = iota
	Add
	Sub
	Mul
	Div
	Rem
	Pop
	Swap
	Dup
	Rot
	Not
	Or
	And
	Gt
	Eq
	Lt
	Nop
	Halt
	Jmpz
	Jmpnz
	Outc
	Inc
	Outi
	Ini
	Pusha
	Waita
	Neg
	Shl
	Shr

	// NumMnemonics is the number of recognised mnemonics, for sizing
	// per-thread counter arrays and iterating the full set.
	NumMnemonics
)

var mnemonicNames = [NumMnemonics]string{
	Push:   "push",
	Add:    "add",
	Sub:    "sub",
	Mul:    "mul",
	Div:    "div",
	Rem:    "rem",
	Pop:    "pop",
	Swap:   "swap",
	Dup:    "dup",
	Rot:    "rot",
	Not:    "not",
	Or:     "or",
	And:    "and",
	Gt:     "gt",
	Eq:     "eq",
	Lt:     "lt",
	Nop:    "nop",
	Halt:   "halt",
	Jmpz:   "jmpz",
	Jmpnz:  "jmpnz",
	Outc:   "outc",
	Inc:    "inc",
	Outi:   "outi",
	Ini:    "ini",
	Pusha:  "pusha",
	Waita:  "waita",
	Neg:    "neg",
	Shl:    "shl",
	Shr:    "shr",
}

// String returns the mnemonic's lowercase name.
func (m Mnemonic) String() string {
	if m < 0 || m >= NumMnemonics {
		return fmt.Sprintf("mnemonic(%d)", int(m))
	}
	return mnemonicNames[m]
}

// Opcodes for the high-bit (0x80-0xFF) operations. Bytes 0x00-0x7F are
// never opcodes: they are always literal push values.
const (
	OpAdd   byte = 0x80
	OpSub   byte = 0x84
	OpMul   byte = 0x88
	OpDiv   byte = 0x8C
	OpRem   byte = 0x90
	OpPop   byte = 0x94
	OpSwap  byte = 0x98
	OpDup   byte = 0x9C
	OpRot   byte = 0xA0
	OpNot   byte = 0xA4
	OpOr    byte = 0xA8
	OpAnd   byte = 0xAC
	OpGt    byte = 0xB0
	OpEq    byte = 0xB4
	OpLt    byte = 0xB8
	OpNop   byte = 0xBC
	OpHalt  byte = 0xC0
	OpJmpz  byte = 0xC4
	OpJmpnz byte = 0xC8
	OpOutc  byte = 0xCC
	OpInc   byte = 0xD0
	OpOuti  byte = 0xD4
	OpIni   byte = 0xD8
	OpPusha byte = 0xDC
	OpWaita byte = 0xE0
	OpNeg   byte = 0xE4
	OpShl   byte = 0xE8
	OpShr   byte = 0xEC
)

var opcodeTable = map[byte]Mnemonic{
	OpAdd:   Add,
	OpSub:   Sub,
	OpMul:   Mul,
	OpDiv:   Div,
	OpRem:   Rem,
	OpPop:   Pop,
	OpSwap:  Swap,
	OpDup:   Dup,
	OpRot:   Rot,
	OpNot:   Not,
	OpOr:    Or,
	OpAnd:   And,
	OpGt:    Gt,
	OpEq:    Eq,
	OpLt:    Lt,
	OpNop:   Nop,
	OpHalt:  Halt,
	OpJmpz:  Jmpz,
	OpJmpnz: Jmpnz,
	OpOutc:  Outc,
	OpInc:   Inc,
	OpOuti:  Outi,
	OpIni:   Ini,
	OpPusha: Pusha,
	OpWaita: Waita,
	OpNeg:   Neg,
	OpShl:   Shl,
	OpShr:   Shr,
}

// Kind classifies a decoded byte as a literal, a recognised operation, or
// invalid. The decode is total: every byte value produces exactly one Kind.
type Kind int

const (
	KindPush Kind = iota
	KindOp
	KindInvalid
)

// Instruction is the decode of a single code byte, shared by the executor
// and the disassembler so the two never disagree about what a byte means.
type Instruction struct {
	Kind     Kind
	Mnemonic Mnemonic // meaningful when Kind != KindInvalid
	Byte     byte     // the original code byte
}

// Decode maps a code byte to its instruction. Bytes 0x00-0x7F are always
// Push; the 28 assigned high-bit bytes are named operations; everything
// else is Invalid.
func Decode(b byte) Instruction {
	if b <= 0x7F {
		return Instruction{Kind: KindPush, Mnemonic: Push, Byte: b}
	}
	if m, ok := opcodeTable[b]; ok {
		return Instruction{Kind: KindOp, Mnemonic: m, Byte: b}
	}
	return Instruction{Kind: KindInvalid, Byte: b}
}
