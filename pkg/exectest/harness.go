// Package exectest drives compiled output through a real, unmodified
// btcsuite/btcd/txscript.Engine. It exists only to back property tests and
// is never imported by pkg/compiler itself.
package exectest

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// Result is the outcome of running a compiled script against a witness
// stack.
type Result struct {
	Success bool
	Err     error
}

// Run executes scriptPubKey with witness pushed ahead of it as a push-only
// signature script: the witness elements become the initial data stack,
// then the script runs.
//
// This deliberately evaluates scriptPubKey as a plain (non-segwit,
// non-taproot) script rather than wrapping it in a witness program. Under
// BIP342 Tapscript, the byte range TERM/CTERM are assigned from
// (OP_RETURN_187..OP_RETURN_254) is aliased to the taproot OP_SUCCESS
// opcodes, which succeed immediately — the opposite of the "aborts
// execution on a real interpreter" property wanted for a leftover,
// uncompiled pseudo-opcode. Plain script evaluation has no such aliasing:
// OP_RETURN_199/OP_RETURN_200 behave there exactly as OP_RETURN does.
func Run(scriptPubKey []byte, witness [][]byte) Result {
	builder := txscript.NewScriptBuilder()
	for _, elem := range witness {
		builder.AddData(elem)
	}
	scriptSig, err := builder.Script()
	if err != nil {
		return Result{Err: err}
	}

	tx := &wire.MsgTx{
		Version: 1,
		TxIn: []*wire.TxIn{{
			PreviousOutPoint: wire.OutPoint{Hash: chainhash.Hash{}, Index: 0},
			SignatureScript:  scriptSig,
			Sequence:         wire.MaxTxInSequenceNum,
		}},
		TxOut: []*wire.TxOut{{
			Value:    0,
			PkScript: []byte{txscript.OP_TRUE},
		}},
		LockTime: 0,
	}

	fetcher := txscript.NewCannedPrevOutputFetcher(scriptPubKey, 0)
	hashCache := txscript.NewTxSigHashes(tx, fetcher)

	vm, err := txscript.NewEngine(
		scriptPubKey, tx, 0, txscript.StandardVerifyFlags,
		txscript.NewSigCache(0), hashCache, 0, fetcher,
	)
	if err != nil {
		return Result{Err: err}
	}

	if err := vm.Execute(); err != nil {
		return Result{Err: err}
	}
	return Result{Success: true}
}
