package forth

import "github.com/forthcore/forthcore/internal/runeio"

// I/O primitives: WORD KEY EMIT.

// opWORD reads the next whitespace-delimited token from input and pushes
// it as (byte cells low-index-first, length on top), truncated to
// NameMax — the protocol CREATE and FIND both consume.
func opWORD(vm *VM) {
	tok, err := vm.readToken()
	if err != nil {
		vm.report(IOError{Err: err})
		return
	}
	if len(tok) > NameMax {
		tok = tok[:NameMax]
	}
	for i := 0; i < len(tok); i++ {
		vm.push(Cell(tok[i]))
	}
	vm.push(Cell(len(tok)))
}

// opKEY reads and pushes one raw rune from input, or -1 on EOF/error.
func opKEY(vm *VM) {
	r, _, err := vm.in.ReadRune()
	if err != nil {
		vm.push(-1)
		return
	}
	vm.push(Cell(r))
}

// opEMIT pops a cell and writes it to host output as one character,
// through runeio.WriteANSIRune so C1 control runes and the rest of the
// non-ASCII range render in their classic escaped/UTF-8 forms rather
// than however fmt's "%c" would happen to encode them.
func opEMIT(vm *VM) {
	r := rune(vm.pop())
	if vm.out == nil {
		return
	}
	if _, err := runeio.WriteANSIRune(vm.out, r); err != nil {
		return
	}
	vm.out.Flush()
}
