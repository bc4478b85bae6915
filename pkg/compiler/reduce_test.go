package compiler

import (
	"reflect"
	"testing"

	"github.com/arkade-os/termscript/pkg/script"
	"github.com/btcsuite/btcd/txscript"
)

// TestReduce fixes the exact shape of the rewritten tree rather than only
// checking the weaker "no CTERM remains" property.
func TestReduce(t *testing.T) {
	raw := []byte{
		txscript.OP_NOP1,
		txscript.OP_IF,
		txscript.OP_NOP2,
		script.OpCterm,
		txscript.OP_NOP3,
		script.OpCterm,
		txscript.OP_NOP4,
		txscript.OP_ENDIF,
		txscript.OP_NOP5,
	}

	tree, err := script.Parse(mustDecode(t, raw))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got, emitted := Reduce(tree)
	if !emitted {
		t.Fatal("Reduce reported emitted=false, want true")
	}

	leaf := func(ops ...byte) *script.Node {
		ins := make(script.Instructions, len(ops))
		for i, op := range ops {
			ins[i] = script.NewOp(op)
		}
		return script.LeafNode(ins)
	}

	want := script.SeqNode([]*script.Node{
		script.LeafNode(script.Instructions{script.NewOp(txscript.OP_NOP1)}),
		script.IfElseEndNode(
			script.SeqNode([]*script.Node{
				leaf(txscript.OP_NOP2),
				script.IfElseEndNode(
					leaf(txscript.OP_1, txscript.OP_0),
					script.SeqNode([]*script.Node{
						leaf(txscript.OP_NOP3),
						script.IfElseEndNode(
							leaf(txscript.OP_1),
							leaf(txscript.OP_NOP4, txscript.OP_0, txscript.OP_0),
						),
					}),
				),
				script.IfEndNode(leaf(txscript.OP_1)),
			}),
			leaf(txscript.OP_0),
		),
		script.IfElseEndNode(
			leaf(txscript.OP_1),
			leaf(txscript.OP_NOP5, txscript.OP_0),
		),
	})

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Reduce mismatch:\ngot:  %#v\nwant: %#v", got, want)
	}
}

func TestReduceReportsNoEmitWithoutCterm(t *testing.T) {
	tree := script.LeafNode(script.Instructions{script.NewOp(txscript.OP_NOP1)})
	_, emitted := Reduce(tree)
	if emitted {
		t.Fatal("Reduce reported emitted=true for a tree with no CTERM")
	}
}
