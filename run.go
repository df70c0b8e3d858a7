package forth

import "github.com/forthcore/forthcore/internal/panicerr"

// isolate runs f to completion, converting any unexpected panic or
// runtime.Goexit occurring deep inside a primitive into a returned error
// instead of taking down the host process. This is the only use of
// panic/recover anywhere in this package: every *expected* condition
// (stack under/overflow, bad lookups, out-of-arena access, EOF) is
// threaded through as an ordinary Go return value and locally recovered
// by the outer loop per the error taxonomy in errors.go. isolate exists
// only to make "nothing is fatal except EOF" true even in the face of a
// genuine bug in a primitive.
func isolate(name string, f func() error) error {
	return panicerr.Recover(name, f)
}
