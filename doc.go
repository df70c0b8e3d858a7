// Package forth implements the core of an embeddable Forth-83-style
// interpreter: a dictionary manager, data and return stacks, an inner
// (threaded-code) interpreter, an outer (text) interpreter, and the
// primitive word set the threaded interpreter needs to self-host further
// definitions.
//
// The dictionary lives in a single fixed-capacity arena that doubles as
// parse output, instruction store, and user heap. A running program is a
// sequence of execution tokens (XTs); control transfers between primitives
// and colon (user-defined) words uniformly, by reading the first cell of
// whatever the XT refers to and checking it against the DOCOL sentinel.
//
// This package is deliberately small: no file words, no floating point, no
// multitasking, no persistent image loading. Those are host concerns. A
// reference host lives in cmd/forthcore.
package forth
