package forth

// Stack primitives: DROP DUP SWAP ROT OVER .S .

func opDROP(vm *VM) { vm.pop() }

func opDUP(vm *VM) {
	v, ok := vm.peek(0)
	if !ok {
		vm.report(StackError{Stack: "data", Kind: "underflow"})
		return
	}
	vm.push(v)
}

func opSWAP(vm *VM) {
	if len(vm.data) < 2 {
		vm.report(StackError{Stack: "data", Kind: "underflow"})
		return
	}
	b := vm.pop()
	a := vm.pop()
	vm.push(b)
	vm.push(a)
}

func opROT(vm *VM) {
	if len(vm.data) < 3 {
		vm.report(StackError{Stack: "data", Kind: "underflow"})
		return
	}
	c := vm.pop()
	b := vm.pop()
	a := vm.pop()
	vm.push(b)
	vm.push(c)
	vm.push(a)
}

func opOVER(vm *VM) {
	v, ok := vm.peek(1)
	if !ok {
		vm.report(StackError{Stack: "data", Kind: "underflow"})
		return
	}
	vm.push(v)
}

// opDOTS renders the data stack top-to-bottom, prefixed "STACK > ",
// matching the emforth original's do_printstack exactly (spec.md §10).
func opDOTS(vm *VM) {
	vm.printf("STACK > ")
	for i := len(vm.data) - 1; i >= 0; i-- {
		vm.printf("%d ", vm.data[i])
	}
	vm.printf("\n")
}

func opDOT(vm *VM) {
	if len(vm.data) == 0 {
		vm.report(StackError{Stack: "data", Kind: "underflow"})
		return
	}
	vm.printf("%d\n", vm.pop())
}
