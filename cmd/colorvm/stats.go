package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"colorvm/vm"
)

// printStatistics renders a per-opcode, per-channel execution count
// table for every mnemonic with a non-zero count on any channel,
// mnemonics sorted alphabetically. No table-drawing dependency in the
// example pack covers plain stdout tables, so this uses text/tabwriter,
// the standard library's own answer to the same problem.
func printStatistics(m *vm.Machine) {
	type row struct {
		name    string
		r, g, b uint64
	}
	var rows []row
	for mn := vm.Push; mn < vm.NumMnemonics; mn++ {
		r := m.Thread(vm.R).Stat[mn]
		g := m.Thread(vm.G).Stat[mn]
		b := m.Thread(vm.B).Stat[mn]
		if r == 0 && g == 0 && b == 0 {
			continue
		}
		rows = append(rows, row{mn.String(), r, g, b})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].name < rows[j].name })

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "Execution statistics")
	fmt.Fprintln(w, "Instruction\tr\tg\tb")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", row.name, row.r, row.g, row.b)
	}
	w.Flush()
}
