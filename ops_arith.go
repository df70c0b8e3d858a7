package forth

// Arithmetic and comparison primitives: + - * / MOD 1+ 1- = < > 0=

func binaryOp(vm *VM, f func(a, b Cell) Cell) {
	if len(vm.data) < 2 {
		vm.report(StackError{Stack: "data", Kind: "underflow"})
		return
	}
	b := vm.pop()
	a := vm.pop()
	vm.push(f(a, b))
}

func opADD(vm *VM) { binaryOp(vm, func(a, b Cell) Cell { return a + b }) }
func opSUB(vm *VM) { binaryOp(vm, func(a, b Cell) Cell { return a - b }) }
func opMUL(vm *VM) { binaryOp(vm, func(a, b Cell) Cell { return a * b }) }

func opDIV(vm *VM) {
	if len(vm.data) < 2 {
		vm.report(StackError{Stack: "data", Kind: "underflow"})
		return
	}
	b := vm.pop()
	a := vm.pop()
	if b == 0 {
		vm.report(ArithError{Op: "/"})
		vm.push(0)
		return
	}
	vm.push(a / b)
}

func opMOD(vm *VM) {
	if len(vm.data) < 2 {
		vm.report(StackError{Stack: "data", Kind: "underflow"})
		return
	}
	b := vm.pop()
	a := vm.pop()
	if b == 0 {
		vm.report(ArithError{Op: "MOD"})
		vm.push(0)
		return
	}
	vm.push(a % b)
}

func opINC(vm *VM) {
	if len(vm.data) < 1 {
		vm.report(StackError{Stack: "data", Kind: "underflow"})
		return
	}
	vm.push(vm.pop() + 1)
}

func opDEC(vm *VM) {
	if len(vm.data) < 1 {
		vm.report(StackError{Stack: "data", Kind: "underflow"})
		return
	}
	vm.push(vm.pop() - 1)
}

// boolCell follows the classic Forth convention: true is all-bits-set
// (-1), false is 0.
func boolCell(b bool) Cell {
	if b {
		return -1
	}
	return 0
}

func opEQ(vm *VM) { binaryOp(vm, func(a, b Cell) Cell { return boolCell(a == b) }) }
func opLT(vm *VM) { binaryOp(vm, func(a, b Cell) Cell { return boolCell(a < b) }) }
func opGT(vm *VM) { binaryOp(vm, func(a, b Cell) Cell { return boolCell(a > b) }) }

func opZEQ(vm *VM) {
	if len(vm.data) < 1 {
		vm.report(StackError{Stack: "data", Kind: "underflow"})
		return
	}
	vm.push(boolCell(vm.pop() == 0))
}
