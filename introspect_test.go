package forth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_opFind_pushesHeaderOrNilAddr(t *testing.T) {
	vm := newTestVM(t)

	h, err := vm.create([]byte("FOO"))
	require.NoError(t, err)
	require.NoError(t, vm.compileCell(0))

	for _, c := range []byte("FOO") {
		vm.push(Cell(c))
	}
	vm.push(Cell(3))
	opFIND(vm)
	require.Equal(t, []Cell{h}, vm.data)

	vm.pop()
	for _, c := range []byte("NOPE") {
		vm.push(Cell(c))
	}
	vm.push(Cell(4))
	opFIND(vm)
	require.Equal(t, []Cell{NilAddr}, vm.data)
}

func Test_opTick_pushesInlineXTAndAdvancesIP(t *testing.T) {
	vm := newTestVM(t)
	// : GETDUP ' DUP ;  (TICK pushes DUP's own XT rather than calling it)
	cfa := defineColon(t, vm, "GETDUP", xtTICK, xtDUP, xtEXIT)

	vm.executeWord(cfa)
	require.Equal(t, []Cell{Cell(xtDUP)}, vm.data)
}

func Test_opImmediate_and_opHidden_toggleLatestAndArbitraryHeader(t *testing.T) {
	vm := newTestVM(t)
	h, err := vm.create([]byte("FOO"))
	require.NoError(t, err)
	require.NoError(t, vm.compileCell(0))

	require.False(t, vm.isImmediate(h))
	opIMMEDIATE(vm) // toggles LATEST, which is FOO
	require.True(t, vm.isImmediate(h))

	require.False(t, vm.isHidden(h))
	vm.push(h)
	opHIDDEN(vm)
	require.True(t, vm.isHidden(h))
	require.Equal(t, NilAddr, vm.find([]byte("FOO")))
}

func Test_op2CFA_and_op2DFA(t *testing.T) {
	vm := newTestVM(t)

	dupHeader := vm.find([]byte("DUP"))
	require.NotEqual(t, NilAddr, dupHeader)

	vm.push(dupHeader)
	op2CFA(vm)
	require.Equal(t, []Cell{vm.codeFieldOf(dupHeader)}, vm.data)
	vm.pop()

	vm.push(dupHeader)
	op2DFA(vm)
	require.Equal(t, []Cell{Cell(xtDUP)}, vm.data)
}

func Test_opDOTS_rendersTopToBottom(t *testing.T) {
	var out strings.Builder
	vm := newTestVM(t, WithOutput(&out))
	vm.push(1)
	vm.push(2)
	vm.push(3)
	opDOTS(vm)
	require.Equal(t, "STACK > 3 2 1 \n", out.String())
}

func Test_opEMIT_writesASCIIDirectly(t *testing.T) {
	var out strings.Builder
	vm := newTestVM(t, WithOutput(&out))
	vm.push(Cell('A'))
	opEMIT(vm)
	require.Equal(t, "A", out.String())
}

func Test_opEMIT_writesC1ControlInEscapedForm(t *testing.T) {
	var out strings.Builder
	vm := newTestVM(t, WithOutput(&out))
	vm.push(Cell(0x9b)) // CSI, a C1 control
	opEMIT(vm)
	require.Equal(t, []byte{0x1b, 0x9b ^ 0xc0}, []byte(out.String()))
}

func Test_opKEY_readsRuneAndReportsEOFAsMinusOne(t *testing.T) {
	vm := newTestVM(t, WithInput(strings.NewReader("x")))
	opKEY(vm)
	require.Equal(t, []Cell{Cell('x')}, vm.data)

	opKEY(vm)
	require.Equal(t, []Cell{Cell('x'), -1}, vm.data)
}

func Test_opSEE_primitiveRendersSingleLine(t *testing.T) {
	var out strings.Builder
	vm := newTestVM(t, WithOutput(&out))

	h := vm.find([]byte("DUP"))
	require.NotEqual(t, NilAddr, h)
	vm.printSee(h)
	require.Equal(t, ": DUP [primitive]\n", out.String())
}

func Test_opWORDS_skipsHiddenAndRendersEveryVisibleWord(t *testing.T) {
	var out strings.Builder
	vm := newTestVM(t, WithOutput(&out))

	_, err := vm.create([]byte("FOO"))
	require.NoError(t, err)
	require.NoError(t, vm.compileCell(0))

	opWORDS(vm)
	rendered := out.String()
	require.Contains(t, rendered, ": FOO [primitive]\n")
	require.NotContains(t, rendered, "LIT", "the hidden LIT primitive must never appear in a WORDS dump")
	require.NotContains(t, rendered, "DOCOL", "the hidden DOCOL primitive must never appear in a WORDS dump")
}

// runProgram drives a VM through a whole program via the outer loop,
// appending to the same VM's input queue so later assertions can feed it
// follow-up text (e.g. a SEE-rendered definition) without losing
// dictionary/stack state built up so far. It calls outerLoop directly
// rather than Run, since Run documents itself as safe to call only once
// per VM and this helper is invoked repeatedly against the same VM.
func runProgram(t *testing.T, vm *VM, src string) {
	t.Helper()
	vm.in.Queue = append(vm.in.Queue, strings.NewReader(src))
	require.NoError(t, vm.outerLoop(context.Background()))
}

// seeBody extracts the compiled-body tokens from a rendered SEE line of
// the form ": name [IMMEDIATE] tok tok ... ;\n".
func seeBody(t *testing.T, rendered string) []string {
	t.Helper()
	fields := strings.Fields(rendered)
	require.GreaterOrEqual(t, len(fields), 3)
	require.Equal(t, ":", fields[0])
	require.Equal(t, ";", fields[len(fields)-1])
	start := 2
	if fields[2] == "IMMEDIATE" {
		start = 3
	}
	return fields[start : len(fields)-1]
}

// Test_opSEE_roundTrip_literal is the regression case for the bug where
// SEE rendered a LIT operand as a bare decimal: re-interpreting "LIT 42"
// either fails outright (LIT is hidden, unfindable by name) or, for a
// visible opcode, would get the trailing number silently re-wrapped in
// its own LIT by the compiler. The bracket-escape rendering must survive
// a real round trip through a second definition.
func Test_opSEE_roundTrip_literal(t *testing.T) {
	var out strings.Builder
	vm := newTestVM(t, WithOutput(&out))

	runProgram(t, vm, ": FORTYTWO 42 ;\nSEE FORTYTWO\n")
	rendered := out.String()
	require.NotContains(t, rendered, "Word not found", "SEE output must not already be broken pre-round-trip")

	body := seeBody(t, rendered)
	mark := out.Len()
	runProgram(t, vm, ": FORTYTWO2 "+strings.Join(body, " ")+" ;\nFORTYTWO2 .\n")
	phase2 := out.String()[mark:]

	require.NotContains(t, phase2, "Word not found")
	require.Equal(t, "42\n", phase2)
}

// Test_opSEE_roundTrip_branch is the same regression for a hand-assembled
// 0BRANCH body: the offset operand must survive unchanged so the branch
// still lands on the right cell once recompiled into a new definition
// with the exact same cell layout.
func Test_opSEE_roundTrip_branch(t *testing.T) {
	var out strings.Builder
	vm := newTestVM(t, WithOutput(&out))

	h, err := vm.create([]byte("FLAGGED"))
	require.NoError(t, err)
	require.NoError(t, vm.compileCell(xtDOCOL))
	require.NoError(t, vm.compileCell(xtZBRANCH))
	offCell := vm.here
	require.NoError(t, vm.compileCell(0))
	require.NoError(t, vm.compileCell(xtLIT))
	require.NoError(t, vm.compileCell(1))
	exitAt := vm.here
	require.NoError(t, vm.compileCell(xtEXIT))
	require.NoError(t, vm.storeCell(offCell, Cell(exitAt-offCell)))

	vm.printSee(h)
	rendered := out.String()
	body := seeBody(t, rendered)

	mark := out.Len()
	runProgram(t, vm, ": FLAGGED2 "+strings.Join(body, " ")+" ;\n")
	require.NotContains(t, out.String()[mark:], "Word not found")

	cfa2 := vm.codeFieldOf(vm.find([]byte("FLAGGED2")))
	require.NotEqual(t, NilAddr, cfa2)

	vm.push(0)
	vm.executeWord(cfa2)
	require.Empty(t, vm.data, "a zero flag must still take the branch after round-tripping")

	vm.push(1)
	vm.executeWord(cfa2)
	require.Equal(t, []Cell{1}, vm.data, "a nonzero flag must still fall through to the literal after round-tripping")
}
