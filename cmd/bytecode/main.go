// Command bytecode encodes, decodes and inspects values of the types declared
// in a schema file.
//
//	bytecode --schema isa.yaml encode --type Instr '{arith: [{mul: {lhs: 7, rhs: 5}}, 12]}'
//	bytecode --schema isa.yaml decode --type Instr 02 02 07 05 0c
//	bytecode --schema isa.yaml inspect
//	bytecode --schema isa.yaml explore
//
// decode exits with status 2 when the input ends early and 3 when it can
// never decode.
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}
