// Package disassembler renders decoded code bytes as text, for the
// listing and byte-dump output modes. It never executes anything; it
// shares vm.Decode with the executor so the two can never disagree
// about what a byte means, except for the one documented fallback below.
package disassembler

import (
	"fmt"
	"strconv"
	"strings"

	"colorvm/vm"
)

// Disassemble renders a single code byte as its mnemonic text. Bytes
// 0x00-0x7F always render as "push <n>". Recognised high-bit bytes
// render as their mnemonic. Unassigned high-bit bytes fall back to
// "push <n>" as well — this mirrors the disassembly table lookup in the
// original interpreter, which only special-cases bytes it actually
// knows and silently treats everything else as a literal, even though
// the executor would halt the thread on the same byte. It is a
// preserved source oddity, not a bug in this renderer.
func Disassemble(b byte) string {
	inst := vm.Decode(b)
	switch inst.Kind {
	case vm.KindPush, vm.KindInvalid:
		return "push " + strconv.Itoa(int(b))
	default:
		return inst.Mnemonic.String()
	}
}

// Line renders one listing-mode row: three 9-wide columns separated by
// "; ", followed by the program index.
func Line(i int, r, g, b byte) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-9s; %-9s; %-9s #Line %d", Disassemble(r), Disassemble(g), Disassemble(b), i)
	return sb.String()
}

// ByteDumpLine renders one byte-dump-mode row.
func ByteDumpLine(i int, r, g, b byte) string {
	return fmt.Sprintf("Line %d: [%d, %d, %d]", i, r, g, b)
}
