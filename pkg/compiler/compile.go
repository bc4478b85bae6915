package compiler

import "github.com/arkade-os/termscript/pkg/script"

// CompileOptions configures Compile. The zero value is usable: MaxPushSize
// falls back to script.DefaultMaxPushSize, and a nil Trace disables tracing.
type CompileOptions struct {
	// MaxPushSize bounds any single data push's length; 0 means
	// script.DefaultMaxPushSize. This is the one implementation-defined
	// knob the distilled spec leaves open (the codec's structural push
	// ceiling, not Bitcoin's standardness policy limit).
	MaxPushSize int

	// Trace, if non-nil, is appended one entry per pipeline stage as
	// Compile runs — a caller-owned, in-memory record for debugging a
	// failing compile, not a logging framework.
	Trace *[]string
}

// Compile is C7, the pipeline driver: it runs the instruction codec, the
// structured parser, and the four rewrite passes in sequence, producing a
// standard Bitcoin Script containing neither TERM nor CTERM. If no
// TERM/CTERM was present in the input, the tree is still parsed and
// re-serialized (cleanup and lift are no-ops on such a tree) but C6's
// trailer is skipped entirely, since Reduce reports nothing was emitted.
func Compile(raw []byte, opts CompileOptions) ([]byte, error) {
	maxPush := opts.MaxPushSize
	if maxPush == 0 {
		maxPush = script.DefaultMaxPushSize
	}

	ins, err := script.Decode(raw, maxPush)
	if err != nil {
		return nil, err
	}

	tree, err := script.Parse(ins)
	if err != nil {
		return nil, err
	}
	trace(opts, "parse")

	tree = Cleanup(tree)
	trace(opts, "cleanup")

	tree = Lift(tree)
	trace(opts, "lift")

	reduced, emitted := Reduce(tree)
	trace(opts, "reduce")

	if emitted {
		reduced = AppendTrailer(reduced)
		trace(opts, "trailer")
	}

	return script.Encode(script.Serialize(reduced), maxPush)
}

func trace(opts CompileOptions, pass string) {
	if opts.Trace != nil {
		*opts.Trace = append(*opts.Trace, pass)
	}
}

// TermOpcode returns the 1-byte canonical encoding of TERM, re-exported
// here so callers building input scripts only need to import pkg/compiler.
func TermOpcode() []byte { return script.TermOpcode() }

// CTermOpcode returns the 1-byte canonical encoding of CTERM.
func CTermOpcode() []byte { return script.CTermOpcode() }
