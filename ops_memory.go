package forth

// Memory primitives: @ ! C@ C!
//
// This arena has no sub-Cell packing (see arena.go), so C@/C! operate on
// the same per-Cell storage as @/! and simply mask to a byte range; there
// is no partial-Cell write. This is an intentional simplification over
// the byte-packed original — see DESIGN.md.

func opFETCH(vm *VM) {
	addr := int(vm.pop())
	v, err := vm.loadCell(addr)
	if err != nil {
		vm.report(err)
		vm.push(0)
		return
	}
	vm.push(v)
}

func opSTORE(vm *VM) {
	addr := int(vm.pop())
	v := vm.pop()
	if err := vm.storeCell(addr, v); err != nil {
		vm.report(err)
	}
}

func opCFETCH(vm *VM) {
	addr := int(vm.pop())
	v, err := vm.loadCell(addr)
	if err != nil {
		vm.report(err)
		vm.push(0)
		return
	}
	vm.push(v & 0xFF)
}

func opCSTORE(vm *VM) {
	addr := int(vm.pop())
	v := vm.pop()
	if err := vm.storeCell(addr, v&0xFF); err != nil {
		vm.report(err)
	}
}
