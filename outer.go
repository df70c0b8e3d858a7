package forth

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
)

// Outer interpreter (C5): tokenizer, number parser, mode dispatch,
// comment handling. Grounded on original_source/interpreter.c's
// outer_interpreter/parse_number and the teacher's scan() in
// internals.go, generalized onto internal/fileinput.Input.

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// readToken reads the next whitespace-delimited token, skipping
// backslash-to-end-of-line comments. It is shared by the outer loop and
// by the WORD/`:`/SEE primitives, all of which need "the next token"
// regardless of whether that happens inside a colon body's compile step
// or at top level.
func (vm *VM) readToken() (string, error) {
	var buf []rune
	for {
		r, _, err := vm.in.ReadRune()
		if err != nil {
			if len(buf) > 0 {
				return string(buf), nil
			}
			return "", err
		}
		if vm.inComment {
			if r == '\n' {
				vm.inComment = false
			}
			continue
		}
		if r == '\\' && len(buf) == 0 {
			vm.inComment = true
			continue
		}
		if isSpace(r) {
			if len(buf) > 0 {
				return string(buf), nil
			}
			continue
		}
		buf = append(buf, r)
	}
}

// outerLoop drives the REPL until the host's byte source signals EOF
// (returned as nil — "nothing is fatal except EOF"), a read error
// (wrapped as IOError), or ctx is done.
func (vm *VM) outerLoop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		tok, err := vm.readToken()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return IOError{Err: err}
		}
		if tok == "" {
			continue
		}
		vm.interpretToken(tok)
	}
}

func (vm *VM) interpretToken(tok string) {
	if v, ok := parseRuneLiteral(tok); ok {
		vm.handleNumber(v)
		return
	}

	if looksNumeric(tok) {
		if v, ok := parseNumber(tok); ok {
			vm.handleNumber(v)
			return
		}
		// Falls through to dictionary lookup, per spec.md §8's
		// "0xg does not parse and falls through to lookup".
	}

	h := vm.find([]byte(tok))
	if h == NilAddr {
		vm.report(LookupError{Token: tok})
		return
	}

	if vm.mode == ModeImmediate || vm.isImmediate(h) {
		vm.executeWord(vm.codeFieldOf(h))
	} else {
		vm.compileInvocation(h)
	}
}

func (vm *VM) handleNumber(n Cell) {
	if vm.mode == ModeCompile {
		vm.compileLiteral(n)
	} else {
		vm.push(n)
	}
}

func (vm *VM) compileLiteral(n Cell) {
	if err := vm.compileCell(xtLIT); err != nil {
		vm.report(err)
		return
	}
	if err := vm.compileCell(n); err != nil {
		vm.report(err)
	}
}

// compileInvocation compiles a call to h using the dual representation
// of C4 (see dictionary.go:xtForCompilation).
func (vm *VM) compileInvocation(h Cell) {
	if err := vm.compileCell(vm.xtForCompilation(h)); err != nil {
		vm.report(err)
	}
}

func looksNumeric(tok string) bool {
	if tok == "" {
		return false
	}
	c := tok[0]
	return c == '-' || (c >= '0' && c <= '9')
}

// parseNumber implements spec.md §4.5's number syntax: decimal by
// default, "0x"/"0X" selects hex, leading '-' negates. Any non-digit in
// the body rejects the whole token (original_source/vm.c:vm_token_isnum
// validates digit-by-digit before accepting, rather than leaning on a
// permissive strconv parse that would accept trailing garbage).
func parseNumber(tok string) (Cell, bool) {
	s := tok
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if s == "" {
		return 0, false
	}

	base := 10
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		base = 16
		s = s[2:]
	}
	if s == "" {
		return 0, false
	}
	for _, c := range s {
		if !isDigitInBase(c, base) {
			return 0, false
		}
	}

	v, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		v = -v
	}
	return Cell(v), true
}

func isDigitInBase(c rune, base int) bool {
	if base == 16 {
		return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	}
	return c >= '0' && c <= '9'
}

// parseRuneLiteral recognizes the supplemented 'X' character-literal
// syntax (spec.md §10), adapted from internals.go's literal/runeLiteral.
// It never collides with the TICK primitive's own name "'", since that
// is a single-rune token with nothing following.
func parseRuneLiteral(tok string) (Cell, bool) {
	if len(tok) < 2 || tok[0] != '\'' {
		return 0, false
	}
	body := tok[1:]
	if len(body) > 0 && body[len(body)-1] == '\'' {
		body = body[:len(body)-1]
	}
	r := []rune(body)
	if len(r) != 1 {
		return 0, false
	}
	return Cell(r[0]), true
}
