package forth

// Inner interpreter (C4): dispatches execution tokens. A primitive runs
// to completion before the loop advances; a colon word is entered by
// pushing the caller's resume point and descending into its body.

// executeWord is the Entry step: given the code-field address of some
// header, run it to completion. For a primitive this is one call; for a
// colon word this pumps innerLoop until IP returns to NilAddr. IP is
// saved and restored around the call, matching "the outer interpreter
// saves and restores its own IP around each execute_word call (the saved
// value is NIL at top level)".
func (vm *VM) executeWord(cfa Cell) {
	savedIP := vm.ip
	vm.ip = NilAddr

	codeword, err := vm.loadCell(cfa)
	if err != nil {
		vm.report(err)
		vm.ip = savedIP
		return
	}
	vm.w = cfa

	switch {
	case codeword == xtDOCOL:
		vm.ip = cfa + 1
		vm.innerLoop()
	case codeword >= 0 && int(codeword) < len(vm.primitives):
		vm.primitives[codeword].fn(vm)
	default:
		vm.report(MemoryError{Addr: int(cfa), Op: "execute"})
	}

	vm.ip = savedIP
}

// innerLoop runs a colon body until IP underflows back to NilAddr (an
// EXIT with nothing left on the return stack to resume).
func (vm *VM) innerLoop() {
	for vm.ip != NilAddr {
		w := vm.ip
		xt, err := vm.loadCell(w)
		if err != nil {
			vm.report(err)
			vm.ip = NilAddr
			return
		}
		vm.ip = w + 1
		vm.w = w
		vm.dispatch(xt)
	}
}

// dispatch executes one cell read from a colon body. If xt is itself a
// primitive index it is invoked directly. Otherwise xt is a colon word's
// CFA (the dual representation spec.md allows): the first cell there is
// read and must be DOCOL, at which point W is set to that CFA and the
// DOCOL routine runs, pushing the resume point and descending.
func (vm *VM) dispatch(xt Cell) {
	if xt >= 0 && int(xt) < len(vm.primitives) {
		vm.primitives[xt].fn(vm)
		return
	}

	cfa := xt
	codeword, err := vm.loadCell(cfa)
	if err != nil {
		vm.report(err)
		vm.ip = NilAddr
		return
	}
	if codeword == xtDOCOL {
		vm.w = cfa
		vm.primitives[xtDOCOL].fn(vm)
		return
	}
	vm.report(MemoryError{Addr: int(cfa), Op: "execute"})
	vm.ip = NilAddr
}

// opDOCOL is reached only through dispatch's nested-call path: W is the
// callee's code-field address. It saves the caller's resume point on the
// return stack and descends into the callee's body. If the return stack
// is full, rpush has already reported the overflow and forced IP to
// NilAddr; the whole call chain is then abandoned and the return stack
// emptied, so the enclosing executeWord returns.
func opDOCOL(vm *VM) {
	vm.rpush(vm.ip)
	if vm.ip == NilAddr {
		vm.rstack = vm.rstack[:0]
		return
	}
	vm.ip = vm.w + 1
}

// opEXIT pops the return stack back into IP. Underflow means there is
// nothing left to resume — the enclosing executeWord call (or the
// top-level Entry) terminates.
func opEXIT(vm *VM) {
	if v, ok := vm.rpop(); ok {
		vm.ip = v
	} else {
		vm.ip = NilAddr
	}
}

// opLIT pushes the inline Cell following it in the body and skips over it.
func opLIT(vm *VM) {
	v, err := vm.loadCell(vm.ip)
	if err != nil {
		vm.report(err)
		vm.ip = NilAddr
		return
	}
	vm.push(v)
	vm.ip++
}

// opBRANCH reads the offset Cell at IP and adds it to IP; the offset is
// relative to the address of the offset cell itself, so an unconditional
// loop-back branch's compiled offset is simply (target - offsetCellAddr).
func opBRANCH(vm *VM) {
	off, err := vm.loadCell(vm.ip)
	if err != nil {
		vm.report(err)
		vm.ip = NilAddr
		return
	}
	vm.ip = vm.ip + off
}

// opZBRANCH is opBRANCH gated on a popped flag: branches when the flag is
// zero, otherwise falls through past the offset cell.
func opZBRANCH(vm *VM) {
	flag := vm.pop()
	if flag == 0 {
		opBRANCH(vm)
	} else {
		vm.ip++
	}
}
