package forth

// Dictionary (C2). A header is three fields packed contiguously at the
// front of the arena slots it owns:
//
//	h+0         link     (Cell)   offset of the previous header, or NilAddr
//	h+1         flags    (Cell)   { immediate:1, hidden:1, spare:1, length:5 }
//	h+2 .. h+2+length-1  name bytes, one byte value per Cell, not padded
//
// codeFieldOf(h) is the Cell immediately following the name: since every
// arena address here is already Cell-aligned (see arena.go), there is no
// padding step before the code field the way the byte-packed original
// needs one.

const (
	flagImmediateBit = 1 << 0
	flagHiddenBit    = 1 << 1
	flagLengthShift  = 3
	flagLengthMask   = 0x1F
)

func packFlags(length int, hidden, immediate bool) Cell {
	v := (length & flagLengthMask) << flagLengthShift
	if hidden {
		v |= flagHiddenBit
	}
	if immediate {
		v |= flagImmediateBit
	}
	return Cell(v)
}

func unpackFlags(v Cell) (length int, hidden, immediate bool) {
	length = (int(v) >> flagLengthShift) & flagLengthMask
	hidden = v&flagHiddenBit != 0
	immediate = v&flagImmediateBit != 0
	return length, hidden, immediate
}

// headerFields reads a header's link, name length, hidden and immediate
// bits. It never caches across calls: HERE growth can relocate nothing
// (the arena never moves), but typed references are still kept
// short-lived per the spec's own design note.
func (vm *VM) headerFields(h Cell) (link Cell, length int, hidden, immediate bool, err error) {
	link, err = vm.loadCell(h)
	if err != nil {
		return 0, 0, false, false, err
	}
	flags, err := vm.loadCell(h + 1)
	if err != nil {
		return 0, 0, false, false, err
	}
	length, hidden, immediate = unpackFlags(flags)
	return link, length, hidden, immediate, nil
}

// headerName reads a header's name bytes back out as a string.
func (vm *VM) headerName(h Cell) string {
	_, length, _, _, err := vm.headerFields(h)
	if err != nil {
		return ""
	}
	buf := make([]byte, length)
	for i := 0; i < length; i++ {
		v, err := vm.loadCell(h + 2 + i)
		if err != nil {
			return string(buf[:i])
		}
		buf[i] = byte(v)
	}
	return string(buf)
}

// codeFieldOf returns the address of h's code field: one Cell for a
// primitive (its own XT); DOCOL followed by a body for a colon word.
func (vm *VM) codeFieldOf(h Cell) Cell {
	_, length, _, _, err := vm.headerFields(h)
	if err != nil {
		return NilAddr
	}
	return h + 2 + length
}

// create allocates a new header for name at HERE (truncating to NameMax
// bytes, per spec's observable "truncated modulo 31" policy) and links
// it onto LATEST. The caller is responsible for compiling the code field
// that follows. Returns the new header's offset.
func (vm *VM) create(name []byte) (Cell, error) {
	if len(name) > NameMax {
		name = name[:NameMax]
	}
	vm.alignHere()
	h := Cell(vm.here)
	if err := vm.compileCell(vm.latest); err != nil {
		return NilAddr, err
	}
	if err := vm.compileCell(packFlags(len(name), false, false)); err != nil {
		return NilAddr, err
	}
	for _, b := range name {
		if err := vm.compileCell(Cell(b)); err != nil {
			return NilAddr, err
		}
	}
	vm.latest = h
	return h, nil
}

// find performs a linear scan from LATEST, skipping hidden entries, for
// an exact byte-for-byte (and so case-sensitive) name match. Returns
// NilAddr if nothing matches.
func (vm *VM) find(name []byte) Cell {
	for h := vm.latest; h != NilAddr; {
		link, length, hidden, _, err := vm.headerFields(h)
		if err != nil {
			return NilAddr
		}
		if !hidden && length == len(name) && vm.nameEquals(h, name) {
			return h
		}
		h = link
	}
	return NilAddr
}

func (vm *VM) nameEquals(h Cell, name []byte) bool {
	for i, want := range name {
		v, err := vm.loadCell(h + 2 + i)
		if err != nil || byte(v) != want {
			return false
		}
	}
	return true
}

func (vm *VM) toggleHidden(h Cell) {
	vm.toggleFlag(h, flagHiddenBit)
}

func (vm *VM) toggleImmediate(h Cell) {
	vm.toggleFlag(h, flagImmediateBit)
}

func (vm *VM) toggleFlag(h Cell, bit int) {
	flags, err := vm.loadCell(h + 1)
	if err != nil {
		return
	}
	_ = vm.storeCell(h+1, flags^Cell(bit))
}

func (vm *VM) isHidden(h Cell) bool {
	_, _, hidden, _, _ := vm.headerFields(h)
	return hidden
}

func (vm *VM) isImmediate(h Cell) bool {
	_, _, _, immediate, _ := vm.headerFields(h)
	return immediate
}

// xtForCompilation returns the value that compiling a call to h should
// produce: the dual representation of C4 — a colon word's code-field
// address (detected by its first cell holding DOCOL) so the inner loop's
// nested-call path can descend into it, or a primitive's own index
// directly, with no DOCOL sentinel involved. 2DFA exposes this as a
// primitive (ops_compile.go); the outer interpreter's compile-mode path
// (outer.go) uses it directly.
func (vm *VM) xtForCompilation(h Cell) Cell {
	cfa := vm.codeFieldOf(h)
	codeword, err := vm.loadCell(cfa)
	if err != nil {
		return NilAddr
	}
	if codeword == xtDOCOL {
		return cfa
	}
	return codeword
}
