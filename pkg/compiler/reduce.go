package compiler

import (
	"github.com/arkade-os/termscript/pkg/script"
	"github.com/btcsuite/btcd/txscript"
)

// Reduce is C5, the central pass: it eliminates CTERM from the tree,
// producing a tree that, on a normal interpreter, leaves a truthy success
// signal on the stack exactly when the original would have succeeded via a
// CTERM or TERM, and a falsy numeric zero otherwise. The returned bool is
// the "emitted" flag: whether the returned subtree, once evaluated, may
// leave an already-committed success signal on the stack that the caller
// must account for.
func Reduce(n *script.Node) (*script.Node, bool) {
	return reduce(n)
}

func reduce(n *script.Node) (*script.Node, bool) {
	switch n.Kind {
	case script.KindLeaf:
		return reduceLeaf(n.Instrs)

	case script.KindSeq:
		return reduceSeq(n.Children)

	case script.KindIfEnd:
		newThen, emit := reduce(n.Then)
		if emit {
			return script.IfElseEndNode(newThen, zeroLeaf()), true
		}
		return script.IfEndNode(newThen), false

	case script.KindNotIfEnd:
		newThen, emit := reduce(n.Then)
		if emit {
			return script.NotIfElseEndNode(newThen, zeroLeaf()), true
		}
		return script.NotIfEndNode(newThen), false

	case script.KindIfElseEnd:
		newThen, e1 := reduce(n.Then)
		newElse, e2 := reduce(n.Else)
		if e1 == e2 {
			return script.IfElseEndNode(newThen, newElse), e1
		}
		if e1 {
			newElse = appendOpcode(newElse, txscript.OP_0)
		} else {
			newThen = appendOpcode(newThen, txscript.OP_0)
		}
		return script.IfElseEndNode(newThen, newElse), true

	case script.KindNotIfElseEnd:
		newThen, e1 := reduce(n.Then)
		newElse, e2 := reduce(n.Else)
		if e1 == e2 {
			return script.NotIfElseEndNode(newThen, newElse), e1
		}
		if e1 {
			newElse = appendOpcode(newElse, txscript.OP_0)
		} else {
			newThen = appendOpcode(newThen, txscript.OP_0)
		}
		return script.NotIfElseEndNode(newThen, newElse), true
	}

	return n, false
}

// reduceLeaf finds the first CTERM in ins. If none remains after it, the
// emitted value is exactly what CTERM would have popped. Otherwise the leaf
// is split at the CTERM into a three-child sequence whose middle IfElseEnd
// consumes the value CTERM would have consumed: truthy -> push the success
// signal and skip the rest; falsy -> run the rest (with an appended falsy 0
// so a subtree with no further CTERM still reports truthfully).
func reduceLeaf(ins script.Instructions) (*script.Node, bool) {
	ctermOp := script.NewOp(script.OpCterm)

	for i, in := range ins {
		if !in.Equal(ctermOp) {
			continue
		}

		if i != len(ins)-1 {
			existing := append(script.Instructions{}, ins[:i]...)
			rest := append(script.Instructions{}, ins[i+1:]...)
			rest = append(rest, script.NewOp(txscript.OP_0))

			ifElse := script.IfElseEndNode(oneLeaf(), script.LeafNode(rest))
			reducedIfElse, emit := reduce(ifElse)

			children := []*script.Node{script.LeafNode(existing), reducedIfElse}
			if emit {
				children = append(children, script.IfEndNode(oneLeaf()))
			}
			return script.SeqNode(children), true
		}

		return script.LeafNode(append(script.Instructions{}, ins[:i]...)), true
	}

	return script.LeafNode(ins), false
}

// reduceSeq mirrors reduceLeaf's split but at the sequence level: once a
// child reports emit=true, every later (not-yet-reduced) sibling is bundled
// into a single "rest" subtree, has a trailing 0 appended, and is wrapped
// in a fresh IfElseEnd whose then-branch is the success signal — that
// wrapper is itself reduced (discovering any CTERM the untouched siblings
// still contain) before being appended.
func reduceSeq(children []*script.Node) (*script.Node, bool) {
	out := make([]*script.Node, 0, len(children))

	for i, ch := range children {
		reducedCh, emit := reduce(ch)
		out = append(out, reducedCh)
		if !emit {
			continue
		}

		if i == len(children)-1 {
			return script.SeqNode(out), true
		}

		var rest *script.Node
		if i+1 == len(children)-1 {
			rest = children[i+1].Clone()
		} else {
			rest = script.SeqNode(cloneNodes(children[i+1:]))
		}
		rest = appendOpcode(rest, txscript.OP_0)

		synthetic := script.IfElseEndNode(oneLeaf(), rest)
		reducedSynthetic, moreEmit := reduce(synthetic)
		out = append(out, reducedSynthetic)
		if moreEmit {
			out = append(out, script.IfEndNode(oneLeaf()))
		}
		return script.SeqNode(out), true
	}

	return script.SeqNode(out), false
}

// appendOpcode is the tree-shaped append helper: it recurses into the last
// element of a Seq and falls back to wrapping a bare IF/NOTIF node in a new
// Seq when it cannot append op in place.
func appendOpcode(n *script.Node, op script.Opcode) *script.Node {
	switch n.Kind {
	case script.KindLeaf:
		return script.LeafNode(append(append(script.Instructions{}, n.Instrs...), script.NewOp(op)))

	case script.KindSeq:
		children := append([]*script.Node{}, n.Children...)
		last := children[len(children)-1]
		switch last.Kind {
		case script.KindLeaf:
			children[len(children)-1] = script.LeafNode(append(append(script.Instructions{}, last.Instrs...), script.NewOp(op)))
		case script.KindSeq:
			children[len(children)-1] = appendOpcode(last, op)
		default:
			children = append(children, script.LeafNode(script.Instructions{script.NewOp(op)}))
		}
		return script.SeqNode(children)

	default:
		return script.SeqNode([]*script.Node{n, script.LeafNode(script.Instructions{script.NewOp(op)})})
	}
}

func cloneNodes(ns []*script.Node) []*script.Node {
	out := make([]*script.Node, len(ns))
	for i, n := range ns {
		out[i] = n.Clone()
	}
	return out
}

func oneLeaf() *script.Node {
	return script.LeafNode(script.Instructions{script.NewOp(txscript.OP_1)})
}

func zeroLeaf() *script.Node {
	return script.LeafNode(script.Instructions{script.NewOp(txscript.OP_0)})
}
