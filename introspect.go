package forth

import (
	"strconv"
	"strings"

	"github.com/forthcore/forthcore/internal/runeio"
)

// Introspection (C7): SEE, WORDS, FIND, adapted from the teacher's
// dumper.go (formatCode/formatName/scanWords) into renderers conformant
// with spec.md §4.7's ": name [immediate] <body> ;" / ": name [primitive]"
// shapes, rather than dumper.go's raw hex/offset-oriented memory dump.

// opFIND consumes a (buf, len) pair in WORD's protocol and pushes the
// matching header, or NilAddr.
func opFIND(vm *VM) {
	length := int(vm.pop())
	if length < 0 {
		length = 0
	}
	buf := make([]byte, length)
	for i := length - 1; i >= 0; i-- {
		buf[i] = byte(vm.pop())
	}
	vm.push(vm.find(buf))
}

// opSEE reads a token, finds it, and renders it.
func opSEE(vm *VM) {
	tok, err := vm.readToken()
	if err != nil {
		vm.report(IOError{Err: err})
		return
	}
	h := vm.find([]byte(tok))
	if h == NilAddr {
		vm.report(LookupError{Token: tok})
		return
	}
	vm.printSee(h)
}

// DumpWords renders every visible word in the dictionary to the VM's
// configured output, in LATEST-to-oldest order — the embedder-facing
// equivalent of running WORDS from the command line, for hosts that want
// a post-run dictionary dump (see cmd/forthcore's -dump-words flag).
func (vm *VM) DumpWords() { opWORDS(vm) }

// opWORDS walks the dictionary chain from LATEST, rendering every
// visible (non-hidden) word by the same rules as SEE.
func opWORDS(vm *VM) {
	for h := vm.latest; h != NilAddr; {
		link, _, hidden, _, err := vm.headerFields(h)
		if err != nil {
			return
		}
		if !hidden {
			vm.printSee(h)
		}
		h = link
	}
}

// printSee renders one header. A primitive renders as a single line; a
// colon word's body is walked cell by cell, resolving each ordinary call
// cell back to a name. LIT/TICK/BRANCH/0BRANCH are different: each of
// them consumes one raw inline operand cell that is not itself a call,
// and LIT is hidden (unfindable by name) besides. Printing "LIT 42" (or
// "BRANCH 5") as plain tokens would be wrong on re-interpretation: a
// bare number in compile mode always compiles as LIT,value (outer.go's
// handleNumber), so the operand would be silently re-wrapped in an
// *extra* LIT cell — corrupting a BRANCH/0BRANCH displacement, and for
// TICK, replacing the intended inline XT with the LIT opcode itself. So
// both the opcode and its operand are emitted raw through a `[ n , n , ]`
// bracket escape: "[" drops to immediate mode, each number is pushed and
// then `,` comma-compiles it verbatim at HERE, and "]" resumes compiling
// — reproducing exactly the same two cells with no reinterpretation.
func (vm *VM) printSee(h Cell) {
	name := escapeName(vm.headerName(h))
	immediateTag := ""
	if vm.isImmediate(h) {
		immediateTag = " IMMEDIATE"
	}

	cfa := vm.codeFieldOf(h)
	codeword, err := vm.loadCell(cfa)
	if err != nil {
		return
	}

	if codeword != xtDOCOL {
		vm.printf(": %s%s [primitive]\n", name, immediateTag)
		return
	}

	vm.printf(": %s%s", name, immediateTag)
	for ip := cfa + 1; ; ip++ {
		cell, err := vm.loadCell(ip)
		if err != nil {
			break
		}
		if cell == xtEXIT {
			break
		}
		switch cell {
		case xtLIT, xtTICK, xtBRANCH, xtZBRANCH:
			ip++
			operand, _ := vm.loadCell(ip)
			vm.printf(" [ %d , %d , ]", int(cell), int(operand))
		default:
			vm.printf(" %s", escapeName(vm.nameForXT(cell)))
		}
	}
	vm.printf(" ;\n")
}

// escapeName renders a word name for human-readable SEE/WORDS output,
// replacing any C0/C1 control byte with its caret-escaped mnemonic form
// so a control character embedded in a name (however it got there) never
// reaches the terminal raw.
func escapeName(name string) string {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		if caret := runeio.CaretForm(rune(c)); caret != "" {
			b.WriteString(caret)
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// nameForXT resolves a compiled cell value back to a word name: a
// primitive index names itself directly; anything else is a colon
// word's CFA, found by scanning the dictionary for a matching
// code-field address. An XT matching nothing in the dictionary (should
// not occur for well-formed code) renders as its decimal value.
func (vm *VM) nameForXT(xt Cell) string {
	if xt >= 0 && int(xt) < len(vm.primitives) {
		return vm.primitives[xt].name
	}
	for h := vm.latest; h != NilAddr; {
		if vm.codeFieldOf(h) == xt {
			return vm.headerName(h)
		}
		link, _, _, _, err := vm.headerFields(h)
		if err != nil {
			break
		}
		h = link
	}
	return strconv.Itoa(int(xt))
}
