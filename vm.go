package forth

import (
	"context"

	"github.com/forthcore/forthcore/internal/fileinput"
	"github.com/forthcore/forthcore/internal/flushio"
	"github.com/forthcore/forthcore/internal/mem"
)

// Cell is the machine-word-sized unit of the data stack, the return stack,
// and compiled code. Arena offsets, execution tokens, and ordinary integer
// values all share this one type, exactly as a real Forth uses one cell
// size for everything.
type Cell = int

// NilAddr is the reserved value meaning "no address" — an empty dictionary
// chain, a return stack with nothing left to pop to, or a header reference
// that resolved to nothing.
const NilAddr Cell = -1

// Default capacities, overridable via VMOption at New.
const (
	DefaultDictCap   = 8192
	DefaultStackCap  = 1024
	DefaultRStackCap = 1024

	// NameMax is the longest name a header can record; longer WORD tokens
	// are truncated, matching the 5-bit length field of a real header.
	NameMax = 31
)

// Interpreter modes.
const (
	ModeImmediate = iota
	ModeCompile
)

// VM is one interpreter instance: dictionary arena, data and return
// stacks, machine registers, mode, and the seeded primitive table. The
// zero value is not usable; construct with New.
type VM struct {
	arena   mem.Ints
	here    int
	latest  Cell
	dictCap int

	data      []Cell
	dataCap   int
	rstack    []Cell
	rstackCap int

	ip Cell
	w  Cell

	mode int

	inComment bool

	primitives []primitive

	in  *fileinput.Input
	out flushio.WriteFlusher

	logf func(format string, args ...interface{})
}

// Run enters the outer interpreter and consumes input until EOF, a read
// error, or ctx cancellation. It returns nil only on clean EOF; any other
// termination is returned as an error. Run is safe to call once per VM;
// call New again for a fresh session.
func (vm *VM) Run(ctx context.Context) error {
	return isolate(vm.name(), func() error {
		return vm.outerLoop(ctx)
	})
}

func (vm *VM) name() string {
	return "forth"
}
