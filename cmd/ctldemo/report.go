package main

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/rfielding/ctlcheck/graph"
)

var (
	satisfyColor = color.New(color.FgGreen, color.Bold)
	failColor    = color.New(color.FgRed)
	headerColor  = color.New(color.FgCyan, color.Bold)
)

// printReport lists every state in the model, marking the ones that satisfy
// result in green and the rest in red.
func printReport(m *model, formulaName string, result graph.NodeSet) {
	headerColor.Printf("%s\n", formulaName)
	for _, name := range m.sortedNames(graph.NewNodeSet(m.K.States()...)) {
		if result.Contains(m.nodeIDs[name]) {
			satisfyColor.Printf("  [x] %s\n", name)
		} else {
			failColor.Printf("  [ ] %s\n", name)
		}
	}
	fmt.Printf("%d of %d states satisfy %q\n", len(result), len(m.K.States()), formulaName)
}
