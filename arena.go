package forth

import "github.com/forthcore/forthcore/internal/mem"

// Memory arena & stacks (C1).
//
// The dictionary arena is a paged, sparse, growable store of Cells —
// generalized from internal/mem.Ints exactly as the teacher's own dictionary
// memory was (first.go kept a flat "mem []int"; we keep the same one-slot-
// per-addressable-unit model but back it with the paged allocator from
// internal/mem so a long-running session doesn't need its whole capacity
// resident). Unlike the C original's byte-packed arena, every arena slot
// holds one full Cell, including name bytes (stored one byte value per
// slot). This trades density for a uniform, alignment-free address space —
// since every offset is already "Cell aligned" by construction, align_here
// is a no-op. See DESIGN.md, "Cell-addressed arena vs byte-packed arena".
//
// The data and return stacks are left as plain growable-capacity slices,
// matching the teacher's flat stack design — they need simple bounds
// checks, not sparse paging.

func (vm *VM) initArena(dictCap, dataCap, rstackCap int) {
	vm.dictCap = dictCap
	vm.here = 0
	vm.latest = NilAddr
	vm.arena = mem.Ints{}
	vm.arena.Limit = uint(dictCap)

	vm.dataCap = dataCap
	vm.data = make([]Cell, 0, dataCap)

	vm.rstackCap = rstackCap
	vm.rstack = make([]Cell, 0, rstackCap)

	vm.ip = NilAddr
	vm.w = NilAddr
	vm.mode = ModeImmediate
}

// boundsCheck reports whether [addr, addr+size) lies entirely inside the
// arena's declared capacity.
func (vm *VM) boundsCheck(addr, size int) bool {
	return addr >= 0 && size >= 0 && addr+size <= vm.dictCap
}

// loadCell reads one arena cell. Out-of-bounds reads are a MemoryError:
// the caller decides whether that is fatal to the current operation (it
// is not, per spec: out-of-arena fetches warn and read as 0).
func (vm *VM) loadCell(addr int) (Cell, error) {
	if !vm.boundsCheck(addr, 1) {
		return 0, MemoryError{Addr: addr, Op: "load"}
	}
	v, err := vm.arena.Load(uint(addr))
	if err != nil {
		return 0, MemoryError{Addr: addr, Op: "load"}
	}
	return v, nil
}

// storeCell writes one arena cell, returning a MemoryError if addr falls
// outside the declared capacity.
func (vm *VM) storeCell(addr int, v Cell) error {
	if !vm.boundsCheck(addr, 1) {
		return MemoryError{Addr: addr, Op: "store"}
	}
	return vm.arena.Stor(uint(addr), v)
}

// alignHere advances HERE to the next aligned offset. Every arena address
// in this implementation is already Cell-aligned (one Cell per slot), so
// this is a documented no-op kept only so call sites read the same as the
// spec's pseudocode.
func (vm *VM) alignHere() {}

// compileCell writes v at HERE and advances HERE by one Cell. It reports
// (and does not advance HERE on) arena exhaustion, matching the
// "arena exhaustion during compilation" MemoryError case — locally
// recovered, not fatal.
func (vm *VM) compileCell(v Cell) error {
	if vm.here >= vm.dictCap {
		return MemoryError{Addr: vm.here, Op: "compile"}
	}
	if err := vm.storeCell(vm.here, v); err != nil {
		return err
	}
	vm.here++
	return nil
}

// push appends v to the data stack. On overflow it reports and the value
// is discarded; SP is left at capacity, never incremented past it.
func (vm *VM) push(v Cell) {
	if len(vm.data) >= vm.dataCap {
		vm.report(StackError{Stack: "data", Kind: "overflow"})
		return
	}
	vm.data = append(vm.data, v)
}

// pop removes and returns the top of the data stack. Underflow reports
// and returns 0 without driving SP below 0.
func (vm *VM) pop() Cell {
	if len(vm.data) == 0 {
		vm.report(StackError{Stack: "data", Kind: "underflow"})
		return 0
	}
	v := vm.data[len(vm.data)-1]
	vm.data = vm.data[:len(vm.data)-1]
	return v
}

// peek returns the n-th value from the top (0 = top) without popping, or
// (0, false) if the stack is too shallow.
func (vm *VM) peek(n int) (Cell, bool) {
	i := len(vm.data) - 1 - n
	if i < 0 {
		return 0, false
	}
	return vm.data[i], true
}

// rpush appends p to the return stack. Overflow aborts the current word
// by forcing IP to NilAddr, per the spec's distinct return-stack-overflow
// handling (data stack clamps and continues; the return stack cannot
// safely continue once it can't record where to resume).
func (vm *VM) rpush(p Cell) {
	if len(vm.rstack) >= vm.rstackCap {
		vm.report(StackError{Stack: "return", Kind: "overflow"})
		vm.ip = NilAddr
		return
	}
	vm.rstack = append(vm.rstack, p)
}

// rpop removes and returns the top of the return stack. ok is false on
// underflow; EXIT treats that as top-level termination (IP <- NilAddr)
// rather than trusting any particular sentinel value, since NilAddr
// itself (-1) is a value a caller could legitimately have rpushed.
func (vm *VM) rpop() (Cell, bool) {
	if len(vm.rstack) == 0 {
		return 0, false
	}
	v := vm.rstack[len(vm.rstack)-1]
	vm.rstack = vm.rstack[:len(vm.rstack)-1]
	return v, true
}
