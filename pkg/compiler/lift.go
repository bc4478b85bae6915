package compiler

import (
	"github.com/arkade-os/termscript/pkg/script"
	"github.com/btcsuite/btcd/txscript"
)

// Lift is C4, the term-to-conditional lifting pass: every remaining TERM is
// rewritten to the two-instruction sequence PUSH_1; CTERM, and an IfEnd (or
// NotIfEnd) whose body reduces to exactly that sequence is folded into a
// bare CTERM (or NOT; CTERM), since the enclosing IF already tested the
// value CTERM would otherwise have popped. Adjacent leaves produced by
// folding are merged back into a single leaf so later passes see the
// simplest possible tree shape.
func Lift(n *script.Node) *script.Node {
	return lift(n)
}

func lift(n *script.Node) *script.Node {
	switch n.Kind {
	case script.KindLeaf:
		return script.LeafNode(liftLeaf(n.Instrs))

	case script.KindSeq:
		lifted := make([]*script.Node, len(n.Children))
		for i, ch := range n.Children {
			lifted[i] = lift(ch)
		}
		return script.SeqNode(mergeAdjacentLeaves(lifted))

	case script.KindIfEnd:
		then := lift(n.Then)
		if isPushTrueCterm(then) {
			return script.LeafNode(script.Instructions{script.NewOp(script.OpCterm)})
		}
		return script.IfEndNode(then)

	case script.KindNotIfEnd:
		then := lift(n.Then)
		if isPushTrueCterm(then) {
			return script.LeafNode(script.Instructions{
				script.NewOp(txscript.OP_NOT),
				script.NewOp(script.OpCterm),
			})
		}
		return script.NotIfEndNode(then)

	case script.KindIfElseEnd:
		return script.IfElseEndNode(lift(n.Then), lift(n.Else))

	case script.KindNotIfElseEnd:
		return script.NotIfElseEndNode(lift(n.Then), lift(n.Else))
	}

	return n
}

func liftLeaf(ins script.Instructions) script.Instructions {
	termOp := script.NewOp(script.OpTerm)
	out := make(script.Instructions, 0, len(ins))
	for _, in := range ins {
		if in.Equal(termOp) {
			out = append(out, script.NewOp(txscript.OP_1), script.NewOp(script.OpCterm))
			continue
		}
		out = append(out, in)
	}
	return out
}

func isPushTrueCterm(n *script.Node) bool {
	return n.Kind == script.KindLeaf &&
		len(n.Instrs) == 2 &&
		n.Instrs[0].Equal(script.NewOp(txscript.OP_1)) &&
		n.Instrs[1].Equal(script.NewOp(script.OpCterm))
}

// mergeAdjacentLeaves concatenates adjacent Leaf children in place: folding
// a node into a bare Leaf can make it mergeable with its Leaf neighbor, and
// that merge must happen at every level the rewrite touches, not just at
// parse time.
func mergeAdjacentLeaves(nodes []*script.Node) []*script.Node {
	out := make([]*script.Node, 0, len(nodes))
	for _, n := range nodes {
		if len(out) > 0 && out[len(out)-1].Kind == script.KindLeaf && n.Kind == script.KindLeaf {
			prev := out[len(out)-1]
			merged := append(append(script.Instructions{}, prev.Instrs...), n.Instrs...)
			out[len(out)-1] = script.LeafNode(merged)
			continue
		}
		out = append(out, n)
	}
	return out
}
