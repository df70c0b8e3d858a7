package forth

import "fmt"

// Logging & tracing (C9). vm.logf is a Leveledf-compatible hook: New
// installs noopLogf when no WithLogf option is given, so a VM built
// without it pays nothing for tracing. A host wires it to an
// internal/logio.Logger (as cmd/forthcore does) to get a TRACE-level line
// for every error the VM reports; nothing else is traced.
func noopLogf(string, ...interface{}) {}

// printf writes formatted text to the host output stream. Error reports
// (errors.go), `.`, `.S`, WORDS and SEE all funnel through it; EMIT
// writes its rune to the same stream directly (ops_io.go).
func (vm *VM) printf(format string, args ...interface{}) {
	if vm.out == nil {
		return
	}
	fmt.Fprintf(vm.out, format, args...)
	vm.out.Flush()
}

// trace emits a tracing line through the configured logf hook. Distinct
// from report: trace is diagnostic and never reaches the host's Forth
// output stream.
func (vm *VM) trace(format string, args ...interface{}) {
	vm.logf(format, args...)
}
