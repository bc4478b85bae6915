package compiler

import (
	"github.com/arkade-os/termscript/pkg/script"
	"github.com/btcsuite/btcd/txscript"
)

// drainThresholds is the binary-descent stack-drain schedule: at each
// threshold, if OP_DEPTH reports at least that many items still on the
// stack, drop exactly half that many pairs with OP_2DROP. Once depth is
// below every threshold, a final single OP_DROP (guarded by a plain
// OP_DEPTH check) mops up the last item if there is one.
var drainThresholds = []int{512, 256, 128, 64, 32, 16, 8, 4, 2}

// AppendTrailer is C6: it appends a prologue-free epilogue that converts a
// single success-signal value (left by a fully reduced tree: truthy if
// TERM/CTERM fired, falsy otherwise) into a standard successful script
// termination. The epilogue is itself wrapped in an IF gated by that
// signal: truthy drains whatever remains of the caller's stack (so the
// compiled script is agnostic to how many witness elements it started
// with) and finishes with OP_TRUE; falsy does nothing, leaving the
// script's own natural termination in control.
func AppendTrailer(n *script.Node) *script.Node {
	return script.SeqNode([]*script.Node{n, script.IfEndNode(drainBody())})
}

func drainBody() *script.Node {
	children := make([]*script.Node, 0, len(drainThresholds)*2+3)

	for _, th := range drainThresholds {
		// Thresholds of 16 and below are pushed with OP_1..OP_16, the
		// minimal push form for those values.
		threshold := script.NewPush(scriptNum(int64(th)))
		if th <= 16 {
			threshold = script.NewOp(txscript.OP_1 + byte(th-1))
		}
		children = append(children,
			script.LeafNode(script.Instructions{
				script.NewOp(txscript.OP_DEPTH),
				threshold,
				script.NewOp(txscript.OP_GREATERTHANOREQUAL),
			}),
			script.IfEndNode(script.LeafNode(dropPairs(th/2))),
		)
	}

	children = append(children,
		script.LeafNode(script.Instructions{script.NewOp(txscript.OP_DEPTH)}),
		script.IfEndNode(script.LeafNode(script.Instructions{script.NewOp(txscript.OP_DROP)})),
		script.LeafNode(script.Instructions{script.NewOp(txscript.OP_TRUE)}),
	)

	return script.SeqNode(children)
}

func dropPairs(n int) script.Instructions {
	out := make(script.Instructions, n)
	for i := range out {
		out[i] = script.NewOp(txscript.OP_2DROP)
	}
	return out
}

// scriptNum encodes n using Bitcoin Script's canonical minimal-length,
// little-endian, sign-magnitude number encoding: the smallest byte string
// such that the high bit of the last byte carries the sign, adding an
// extra zero (or 0x80) byte when the magnitude's own high bit would
// otherwise be mistaken for the sign bit.
func scriptNum(n int64) []byte {
	if n == 0 {
		return nil
	}

	negative := n < 0
	abs := n
	if negative {
		abs = -n
	}

	var out []byte
	for abs > 0 {
		out = append(out, byte(abs&0xff))
		abs >>= 8
	}

	if out[len(out)-1]&0x80 != 0 {
		if negative {
			out = append(out, 0x80)
		} else {
			out = append(out, 0x00)
		}
	} else if negative {
		out[len(out)-1] |= 0x80
	}

	return out
}
