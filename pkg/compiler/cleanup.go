// Package compiler implements the pipeline of tree-rewrite passes (C3–C7)
// that eliminate the TERM/CTERM pseudo-opcodes from a parsed script.
package compiler

import "github.com/arkade-os/termscript/pkg/script"

// Cleanup is C3, the tail-term cleanup pass: a single top-down walk that
// deletes unreachable code after the first TERM, or after a CTERM whose
// condition is statically truthy (a non-empty data push or one of the 17
// numeric-push opcodes), folding that statically-truthy CTERM back into a
// plain TERM. Unlike the later passes, a TERM/CTERM found inside a
// conditional branch does not propagate past that branch: the branch may
// not execute, so only the dead code strictly after the terminator within
// the same branch is eliminated.
func Cleanup(n *script.Node) *script.Node {
	out, _ := cleanup(n)
	return out
}

func cleanup(n *script.Node) (*script.Node, bool) {
	switch n.Kind {
	case script.KindLeaf:
		ins, found := cleanupLeaf(n.Instrs)
		return script.LeafNode(ins), found

	case script.KindSeq:
		children := make([]*script.Node, 0, len(n.Children))
		for _, ch := range n.Children {
			newCh, found := cleanup(ch)
			children = append(children, newCh)
			if found {
				return script.SeqNode(children), true
			}
		}
		return script.SeqNode(children), false

	case script.KindIfEnd:
		newThen, _ := cleanup(n.Then)
		return script.IfEndNode(newThen), false

	case script.KindNotIfEnd:
		newThen, _ := cleanup(n.Then)
		return script.NotIfEndNode(newThen), false

	case script.KindIfElseEnd:
		newThen, _ := cleanup(n.Then)
		newElse, _ := cleanup(n.Else)
		return script.IfElseEndNode(newThen, newElse), false

	case script.KindNotIfElseEnd:
		newThen, _ := cleanup(n.Then)
		newElse, _ := cleanup(n.Else)
		return script.NotIfElseEndNode(newThen, newElse), false
	}

	return n, false
}

// cleanupLeaf scans a straight-line instruction run for the first TERM or
// statically-truthy CTERM and truncates accordingly.
func cleanupLeaf(ins script.Instructions) (script.Instructions, bool) {
	termOp := script.NewOp(script.OpTerm)
	ctermOp := script.NewOp(script.OpCterm)

	for i, in := range ins {
		if in.Equal(termOp) {
			return append(script.Instructions{}, ins[:i+1]...), true
		}

		if i == len(ins)-1 || !ins[i+1].Equal(ctermOp) {
			continue
		}

		isNumericTruthy := !in.IsPush() && script.IsNumericPushOpcode(in.Op)
		isNonEmptyPush := in.Data != nil && len(in.Data) > 0
		if isNumericTruthy || isNonEmptyPush {
			out := append(script.Instructions{}, ins[:i]...)
			out = append(out, termOp)
			return out, true
		}
	}

	return ins, false
}
