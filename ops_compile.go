package forth

// Compiler surface (C6): CREATE , : ; ' IMMEDIATE HIDDEN [ ] LATEST_F HERE,
// plus the threaded-model accessors 2CFA/2DFA. BRANCH/0BRANCH live in
// inner.go alongside the rest of the control-flow code cells, since their
// behavior is defined by C4, not C6 — C6 only compiles them.

// opCREATE consumes a (buf, len) pair built by WORD's stack protocol —
// byte values pushed low-index-first, length on top — and hands it to
// the dictionary.
func opCREATE(vm *VM) {
	length := int(vm.pop())
	if length < 0 {
		length = 0
	}
	buf := make([]byte, length)
	for i := length - 1; i >= 0; i-- {
		buf[i] = byte(vm.pop())
	}
	if _, err := vm.create(buf); err != nil {
		vm.report(err)
	}
}

// opCOMMA pops a cell and compiles it at HERE.
func opCOMMA(vm *VM) {
	v := vm.pop()
	if err := vm.compileCell(v); err != nil {
		vm.report(err)
	}
}

// opCOLON reads the following name, creates its header, hides it for the
// duration of its own definition (so a use of the word's own name inside
// its body never resolves to the incomplete word: lookup skips it and
// finds an older word of that name, or reports it as not found),
// compiles the DOCOL sentinel as the code field, and enters compile mode.
func opCOLON(vm *VM) {
	name, err := vm.readToken()
	if err != nil {
		vm.report(IOError{Err: err})
		return
	}
	h, err := vm.create([]byte(name))
	if err != nil {
		vm.report(err)
		return
	}
	vm.toggleHidden(h)
	if err := vm.compileCell(xtDOCOL); err != nil {
		vm.report(err)
		return
	}
	vm.mode = ModeCompile
}

// opSEMI (immediate) compiles EXIT, unhides LATEST, and returns to
// immediate mode.
func opSEMI(vm *VM) {
	if err := vm.compileCell(xtEXIT); err != nil {
		vm.report(err)
		return
	}
	if vm.latest != NilAddr {
		vm.toggleHidden(vm.latest)
	}
	vm.mode = ModeImmediate
}

// opTICK pushes the inline cell following it and skips past it — the
// same mechanism as LIT, used to take the XT of a following word
// literally instead of letting the inner loop dispatch it. Meaningful
// only inside a colon body, where the compiler has placed a word's
// resolved XT directly after TICK's own cell (" ' name ").
func opTICK(vm *VM) {
	v, err := vm.loadCell(vm.ip)
	if err != nil {
		vm.report(err)
		vm.ip = NilAddr
		return
	}
	vm.push(v)
	vm.ip++
}

func opIMMEDIATE(vm *VM) {
	if vm.latest != NilAddr {
		vm.toggleImmediate(vm.latest)
	}
}

func opHIDDEN(vm *VM) {
	vm.toggleHidden(vm.pop())
}

func opLBRAC(vm *VM) { vm.mode = ModeImmediate }
func opRBRAC(vm *VM) { vm.mode = ModeCompile }

func opLATESTF(vm *VM) { vm.push(vm.latest) }
func opHERE(vm *VM)    { vm.push(Cell(vm.here)) }

func op2CFA(vm *VM) {
	vm.push(vm.codeFieldOf(vm.pop()))
}

func op2DFA(vm *VM) {
	vm.push(vm.xtForCompilation(vm.pop()))
}
