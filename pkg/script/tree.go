package script

import "github.com/btcsuite/btcd/txscript"

// Kind identifies which of the six structured-script variants a Node is.
// Go has no sum-type syntax, so this package uses a "Kind tag + per-kind
// fields" struct rather than an interface hierarchy: every pass switches
// exhaustively on Kind.
type Kind int

const (
	// KindLeaf holds a straight-line run of instructions with no nested
	// control flow.
	KindLeaf Kind = iota
	// KindSeq concatenates two or more children in order. A Seq never
	// holds fewer than two children — see SeqNode.
	KindSeq
	// KindIfEnd is OP_IF Then OP_ENDIF.
	KindIfEnd
	// KindNotIfEnd is OP_NOTIF Then OP_ENDIF.
	KindNotIfEnd
	// KindIfElseEnd is OP_IF Then OP_ELSE Else OP_ENDIF.
	KindIfElseEnd
	// KindNotIfElseEnd is OP_NOTIF Then OP_ELSE Else OP_ENDIF.
	KindNotIfElseEnd
)

// Node is one node of the block-structured tree that C2's parser produces
// and every compiler pass rewrites. Which fields are meaningful depends on
// Kind: Instrs for KindLeaf, Children for KindSeq, Then (and Else) for the
// four IF/NOTIF variants.
type Node struct {
	Kind     Kind
	Instrs   Instructions
	Children []*Node
	Then     *Node
	Else     *Node
}

// LeafNode builds a KindLeaf node holding ins verbatim.
func LeafNode(ins Instructions) *Node {
	return &Node{Kind: KindLeaf, Instrs: ins}
}

// SeqNode builds a sequence of children, collapsing to the bare child (or an
// empty leaf) when there are fewer than two — invariant I2 requires a Seq
// never carry a single child, so every call site that assembles children
// goes through this constructor rather than building KindSeq by hand.
func SeqNode(children []*Node) *Node {
	switch len(children) {
	case 0:
		return LeafNode(Instructions{})
	case 1:
		return children[0]
	default:
		return &Node{Kind: KindSeq, Children: children}
	}
}

// IfEndNode builds OP_IF then OP_ENDIF around then.
func IfEndNode(then *Node) *Node {
	return &Node{Kind: KindIfEnd, Then: then}
}

// NotIfEndNode builds OP_NOTIF then OP_ENDIF around then.
func NotIfEndNode(then *Node) *Node {
	return &Node{Kind: KindNotIfEnd, Then: then}
}

// IfElseEndNode builds OP_IF then OP_ELSE els OP_ENDIF.
func IfElseEndNode(then, els *Node) *Node {
	return &Node{Kind: KindIfElseEnd, Then: then, Else: els}
}

// NotIfElseEndNode builds OP_NOTIF then OP_ELSE els OP_ENDIF.
func NotIfElseEndNode(then, els *Node) *Node {
	return &Node{Kind: KindNotIfElseEnd, Then: then, Else: els}
}

// Clone returns a deep copy of n. Passes that must make a node appear in two
// places in the rewritten tree (rather than alias the same pointer) call
// this explicitly; ordinary pointer reassignment is used everywhere a node
// is simply being relocated, not duplicated.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Kind: n.Kind}
	switch n.Kind {
	case KindLeaf:
		c.Instrs = append(Instructions{}, n.Instrs...)
	case KindSeq:
		c.Children = make([]*Node, len(n.Children))
		for i, ch := range n.Children {
			c.Children[i] = ch.Clone()
		}
	case KindIfEnd, KindNotIfEnd:
		c.Then = n.Then.Clone()
	case KindIfElseEnd, KindNotIfElseEnd:
		c.Then = n.Then.Clone()
		c.Else = n.Else.Clone()
	}
	return c
}

// Parse builds a structured tree from a flat instruction stream by
// recursive descent over OP_IF/OP_NOTIF/OP_ELSE/OP_ENDIF. It rejects
// unbalanced control flow (an opener with no OP_ENDIF, or a stray
// OP_ELSE/OP_ENDIF with no opener) with ErrUnbalancedControl.
func Parse(ins Instructions) (*Node, error) {
	i := 0
	children, err := parseBlock(ins, &i)
	if err != nil {
		return nil, err
	}
	if i != len(ins) {
		return nil, scriptError(ErrUnbalancedControl, "unexpected OP_ELSE/OP_ENDIF with no matching opener")
	}
	return SeqNode(children), nil
}

// parseBlock parses statements from ins[*i:] until it hits an OP_ELSE,
// OP_ENDIF, or the end of input, advancing *i past everything it consumes
// except the terminating OP_ELSE/OP_ENDIF (the caller inspects and consumes
// that token itself).
func parseBlock(ins Instructions, i *int) ([]*Node, error) {
	var nodes []*Node
	var leaf Instructions

	flush := func() {
		if len(leaf) > 0 {
			nodes = append(nodes, LeafNode(append(Instructions{}, leaf...)))
			leaf = nil
		}
	}

	for *i < len(ins) {
		in := ins[*i]

		if !in.IsPush() && (in.Op == txscript.OP_ELSE || in.Op == txscript.OP_ENDIF) {
			break
		}

		if !in.IsPush() && (in.Op == txscript.OP_IF || in.Op == txscript.OP_NOTIF) {
			flush()

			isNotIf := in.Op == txscript.OP_NOTIF
			*i++

			thenChildren, err := parseBlock(ins, i)
			if err != nil {
				return nil, err
			}
			thenNode := SeqNode(thenChildren)

			if *i >= len(ins) {
				return nil, scriptError(ErrUnbalancedControl, "OP_IF/OP_NOTIF with no matching OP_ENDIF")
			}

			switch ins[*i].Op {
			case txscript.OP_ELSE:
				*i++
				elseChildren, err := parseBlock(ins, i)
				if err != nil {
					return nil, err
				}
				elseNode := SeqNode(elseChildren)

				if *i >= len(ins) || ins[*i].IsPush() || ins[*i].Op != txscript.OP_ENDIF {
					return nil, scriptError(ErrUnbalancedControl, "OP_ELSE with no matching OP_ENDIF")
				}
				*i++

				if isNotIf {
					nodes = append(nodes, NotIfElseEndNode(thenNode, elseNode))
				} else {
					nodes = append(nodes, IfElseEndNode(thenNode, elseNode))
				}

			case txscript.OP_ENDIF:
				*i++
				if isNotIf {
					nodes = append(nodes, NotIfEndNode(thenNode))
				} else {
					nodes = append(nodes, IfEndNode(thenNode))
				}

			default:
				return nil, scriptError(ErrUnbalancedControl, "OP_IF/OP_NOTIF with no matching OP_ENDIF")
			}
			continue
		}

		leaf = append(leaf, in)
		*i++
	}

	flush()
	return nodes, nil
}

// Serialize flattens a structured tree back into a linear instruction
// stream, the exact inverse of Parse.
func Serialize(n *Node) Instructions {
	var out Instructions
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		switch n.Kind {
		case KindLeaf:
			out = append(out, n.Instrs...)
		case KindSeq:
			for _, ch := range n.Children {
				walk(ch)
			}
		case KindIfEnd:
			out = append(out, NewOp(txscript.OP_IF))
			walk(n.Then)
			out = append(out, NewOp(txscript.OP_ENDIF))
		case KindNotIfEnd:
			out = append(out, NewOp(txscript.OP_NOTIF))
			walk(n.Then)
			out = append(out, NewOp(txscript.OP_ENDIF))
		case KindIfElseEnd:
			out = append(out, NewOp(txscript.OP_IF))
			walk(n.Then)
			out = append(out, NewOp(txscript.OP_ELSE))
			walk(n.Else)
			out = append(out, NewOp(txscript.OP_ENDIF))
		case KindNotIfElseEnd:
			out = append(out, NewOp(txscript.OP_NOTIF))
			walk(n.Then)
			out = append(out, NewOp(txscript.OP_ELSE))
			walk(n.Else)
			out = append(out, NewOp(txscript.OP_ENDIF))
		}
	}
	walk(n)
	return out
}
