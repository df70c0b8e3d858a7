// Command forthcore is a reference host for the forth package: it wires
// stdin/stdout through a VM and exits non-zero on error, the way
// gothird's own main wired FIRST/THIRD, generalized onto this package's
// option names and capacities.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/forthcore/forthcore"
	"github.com/forthcore/forthcore/internal/logio"
)

func main() {
	var (
		dictCap   uint
		dataCap   uint
		rstack    uint
		timeout   time.Duration
		trace     bool
		dumpVocab bool
	)
	flag.UintVar(&dictCap, "dict-cap", uint(forth.DefaultDictCap), "dictionary arena capacity, in cells")
	flag.UintVar(&dataCap, "stack-cap", uint(forth.DefaultStackCap), "data stack capacity, in cells")
	flag.UintVar(&rstack, "return-stack-cap", uint(forth.DefaultRStackCap), "return stack capacity, in cells")
	flag.DurationVar(&timeout, "timeout", 0, "abort the run after this long")
	flag.BoolVar(&trace, "trace", false, "log every reported error at TRACE level")
	flag.BoolVar(&dumpVocab, "dump-words", false, "print the final dictionary (WORDS) after the run")
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()

	opts := []forth.VMOption{
		forth.WithDictCap(int(dictCap)),
		forth.WithStackCap(int(dataCap)),
		forth.WithReturnStackCap(int(rstack)),
		forth.WithInput(os.Stdin),
		forth.WithOutput(os.Stdout),
	}
	if trace {
		opts = append(opts, forth.WithLogf(log.Leveledf("TRACE")))
	}

	vm, err := forth.New(opts...)
	if err != nil {
		log.Errorf("%v", err)
		return
	}

	if dumpVocab {
		defer vm.DumpWords()
	}

	ctx := context.Background()
	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log.ErrorIf(vm.Run(ctx))
}
