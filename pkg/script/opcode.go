package script

import "github.com/btcsuite/btcd/txscript"

// Opcode is a 1-byte Bitcoin Script opcode tag. It is a thin alias over
// txscript's own byte, not a reinvented enum, so every opcode constant below
// is a real btcd/txscript constant rather than a project-local guess.
type Opcode = byte

const (
	// OpTerm is the unconditional success pseudo-opcode (TERM): "halt
	// execution with success," physically encoded as OP_RETURN_199
	// (0xC7). Under legacy and segwit v0 script rules this opcode
	// behaves exactly like OP_RETURN — it aborts execution immediately
	// — which is the fail-closed behavior wanted of a leftover,
	// uncompiled TERM.
	OpTerm Opcode = txscript.OP_RETURN_199

	// OpCterm is the conditional success pseudo-opcode (CTERM): "pop one
	// element; halt with success if truthy, else no-op," physically
	// encoded as OP_RETURN_200 (0xC8). Same abort-on-legacy-interpreter
	// property as OpTerm.
	OpCterm Opcode = txscript.OP_RETURN_200
)

// TermOpcode returns the 1-byte canonical encoding of TERM.
func TermOpcode() []byte { return []byte{OpTerm} }

// CTermOpcode returns the 1-byte canonical encoding of CTERM.
func CTermOpcode() []byte { return []byte{OpCterm} }

// AppendTerm appends a TERM instruction to a ScriptBuilder, a convenience
// for callers constructing input scripts directly.
func AppendTerm(b *txscript.ScriptBuilder) *txscript.ScriptBuilder {
	return b.AddOp(OpTerm)
}

// AppendCTerm appends a CTERM instruction to a ScriptBuilder, a convenience
// for callers constructing input scripts directly.
func AppendCTerm(b *txscript.ScriptBuilder) *txscript.ScriptBuilder {
	return b.AddOp(OpCterm)
}

// numericPushOpcodes is the set of opcodes that push a statically known
// nonzero number onto the stack: OP_1NEGATE and OP_1 through OP_16. It
// deliberately excludes OP_0/OP_FALSE, which pushes the empty (falsy) byte
// string, so the cleanup pass never treats a false condition as truthy.
var numericPushOpcodes = map[Opcode]struct{}{
	txscript.OP_1NEGATE: {},
	txscript.OP_1:       {},
	txscript.OP_2:       {},
	txscript.OP_3:       {},
	txscript.OP_4:       {},
	txscript.OP_5:       {},
	txscript.OP_6:       {},
	txscript.OP_7:       {},
	txscript.OP_8:       {},
	txscript.OP_9:       {},
	txscript.OP_10:      {},
	txscript.OP_11:      {},
	txscript.OP_12:      {},
	txscript.OP_13:      {},
	txscript.OP_14:      {},
	txscript.OP_15:      {},
	txscript.OP_16:      {},
}

// IsNumericPushOpcode reports whether op is one of the 17 opcodes that push
// a statically known, always-truthy number (PUSHNUM_NEG1, PUSHNUM_1..16).
func IsNumericPushOpcode(op Opcode) bool {
	_, ok := numericPushOpcodes[op]
	return ok
}
