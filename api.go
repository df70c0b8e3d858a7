package forth

import (
	"io/ioutil"

	"github.com/forthcore/forthcore/internal/fileinput"
	"github.com/forthcore/forthcore/internal/flushio"
)

// New builds a VM: allocates the arena and stacks at the configured (or
// default) capacities, wires host I/O, and seeds the primitive
// dictionary — the embedder-API "init" of spec.md §6. MODE starts
// IMMEDIATE. The only failure mode is a DICT_CAP too small to hold the
// seeded primitive table, returned as a MemoryError rather than the
// spec's "return -1", since Go has a real error type to spend.
func New(opts ...VMOption) (*VM, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	vm := &VM{}
	vm.initArena(cfg.dictCap, cfg.dataCap, cfg.rstackCap)

	vm.in = &fileinput.Input{Queue: cfg.inputs}

	var writers []flushio.WriteFlusher
	for _, w := range cfg.outputs {
		writers = append(writers, flushio.NewWriteFlusher(w))
	}
	if len(writers) == 0 {
		writers = append(writers, flushio.NewWriteFlusher(ioutil.Discard))
	}
	vm.out = flushio.WriteFlushers(writers...)

	if cfg.logf != nil {
		vm.logf = cfg.logf
	} else {
		vm.logf = noopLogf
	}

	if err := vm.seedPrimitives(); err != nil {
		return nil, err
	}
	return vm, nil
}
