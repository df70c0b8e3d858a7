package forth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_parseNumber(t *testing.T) {
	cases := []struct {
		tok  string
		want Cell
		ok   bool
	}{
		{"0", 0, true},
		{"42", 42, true},
		{"-7", -7, true},
		{"0x2A", 42, true},
		{"0X2a", 42, true},
		{"-0x10", -16, true},
		{"0xg", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{"0x", 0, false},
	}
	for _, c := range cases {
		got, ok := parseNumber(c.tok)
		require.Equal(t, c.ok, ok, "token %q", c.tok)
		if c.ok {
			require.Equal(t, c.want, got, "token %q", c.tok)
		}
	}
}

func Test_parseRuneLiteral(t *testing.T) {
	cases := []struct {
		tok  string
		want Cell
		ok   bool
	}{
		{"'A'", Cell('A'), true},
		{"'A", Cell('A'), true},
		{"'", 0, false},
		{"''", 0, false},
		{"'AB'", 0, false},
	}
	for _, c := range cases {
		got, ok := parseRuneLiteral(c.tok)
		require.Equal(t, c.ok, ok, "token %q", c.tok)
		if c.ok {
			require.Equal(t, c.want, got, "token %q", c.tok)
		}
	}
}

func Test_readToken_skipsBackslashComments(t *testing.T) {
	vm := newTestVM(t, WithInput(strings.NewReader("foo \\ this is a comment\nbar")))

	tok, err := vm.readToken()
	require.NoError(t, err)
	require.Equal(t, "foo", tok)

	tok, err = vm.readToken()
	require.NoError(t, err)
	require.Equal(t, "bar", tok)
}

func Test_readToken_eofAfterLastToken(t *testing.T) {
	vm := newTestVM(t, WithInput(strings.NewReader("only")))

	tok, err := vm.readToken()
	require.NoError(t, err)
	require.Equal(t, "only", tok)

	_, err = vm.readToken()
	require.Error(t, err, "a second read past EOF must report an error")
}

func Test_interpretToken_numberPushesImmediateAndCompilesInCompileMode(t *testing.T) {
	vm := newTestVM(t)

	vm.interpretToken("5")
	require.Equal(t, []Cell{5}, vm.data)
	vm.pop()

	vm.mode = ModeCompile
	here0 := vm.here
	vm.interpretToken("7")
	require.Equal(t, here0+2, vm.here, "compiling a literal must emit LIT plus its operand")

	lit, err := vm.loadCell(here0)
	require.NoError(t, err)
	require.Equal(t, Cell(xtLIT), lit)
	operand, err := vm.loadCell(here0 + 1)
	require.NoError(t, err)
	require.Equal(t, Cell(7), operand)
}

func Test_interpretToken_unknownWordReportsLookupError(t *testing.T) {
	var out strings.Builder
	vm := newTestVM(t, WithOutput(&out))

	vm.interpretToken("NOSUCHWORD")
	require.Contains(t, out.String(), "Word not found: NOSUCHWORD")
}

func Test_interpretToken_immediateWordAlwaysExecutes(t *testing.T) {
	vm := newTestVM(t)
	vm.mode = ModeCompile

	vm.interpretToken(";") // IMMEDIATE, executes even in compile mode
	// ';' with nothing yet begun compiling a word would normally be
	// invalid Forth, but at the primitive-dispatch level it simply
	// compiles EXIT into HERE and unhides vm.latest — verify it ran
	// immediately rather than being compiled as a call.
	require.Equal(t, ModeImmediate, vm.mode, "';' must have executed, flipping MODE back to immediate")
}
