package forth

import "io"

// config collects everything a VMOption can set, mirroring the teacher's
// api.go/options.go functional-options shape (New(opts ...VMOption)),
// generalized to this spec's capacities and I/O surface.
type config struct {
	dictCap   int
	dataCap   int
	rstackCap int

	inputs  []io.Reader
	outputs []io.Writer

	logf func(format string, args ...interface{})
}

func defaultConfig() config {
	return config{
		dictCap:   DefaultDictCap,
		dataCap:   DefaultStackCap,
		rstackCap: DefaultRStackCap,
	}
}

// VMOption configures a VM at construction time; see New.
type VMOption interface {
	apply(*config)
}

type optionFunc func(*config)

func (f optionFunc) apply(c *config) { f(c) }

// WithInput queues r as a source of input bytes, read after any input
// queued earlier by a prior WithInput/WithInputWriter option.
func WithInput(r io.Reader) VMOption {
	return optionFunc(func(c *config) { c.inputs = append(c.inputs, r) })
}

// WithInputWriter queues an io.WriterTo as an input source, fed through
// an in-process pipe — useful for embedding a fixed bootstrap program
// ahead of interactive input, the way the teacher's thirdKernel does.
func WithInputWriter(w io.WriterTo) VMOption {
	return optionFunc(func(c *config) {
		pr, pw := io.Pipe()
		go func() {
			_, err := w.WriteTo(pw)
			pw.CloseWithError(err)
		}()
		c.inputs = append(c.inputs, pr)
	})
}

// WithOutput sends host output (., .S, EMIT, WORDS, SEE, error reports)
// to w, in addition to any writer configured by an earlier WithOutput or
// WithTee.
func WithOutput(w io.Writer) VMOption {
	return optionFunc(func(c *config) { c.outputs = append(c.outputs, w) })
}

// WithTee adds an additional fan-out destination for host output,
// alongside whatever WithOutput has already configured — for capturing a
// transcript while still writing to the primary stream.
func WithTee(w io.Writer) VMOption {
	return optionFunc(func(c *config) { c.outputs = append(c.outputs, w) })
}

// WithDictCap overrides DICT_CAP (default DefaultDictCap).
func WithDictCap(n int) VMOption {
	return optionFunc(func(c *config) { c.dictCap = n })
}

// WithStackCap overrides DSTACK_CAP (default DefaultStackCap).
func WithStackCap(n int) VMOption {
	return optionFunc(func(c *config) { c.dataCap = n })
}

// WithReturnStackCap overrides RSTACK_CAP (default DefaultRStackCap).
func WithReturnStackCap(n int) VMOption {
	return optionFunc(func(c *config) { c.rstackCap = n })
}

// WithLogf wires a Leveledf-compatible tracing hook (internal/logio.Logger
// satisfies this shape via Leveledf), called once per error the VM
// reports. Inner-loop steps are not traced.
func WithLogf(f func(format string, args ...interface{})) VMOption {
	return optionFunc(func(c *config) { c.logf = f })
}
