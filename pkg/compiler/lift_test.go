package compiler

import (
	"reflect"
	"testing"

	"github.com/arkade-os/termscript/pkg/script"
	"github.com/btcsuite/btcd/txscript"
)

// TestLift checks the term-to-conditional lifting pass directly: every TERM
// becomes OP_1 CTERM, an IF whose body is exactly that pair folds into a bare
// CTERM merged into its neighbouring leaf, and a NOTIF/ELSE node is left
// unfolded. The NOTIF-only fold to NOT CTERM is not exercised here.
func TestLift(t *testing.T) {
	raw := []byte{
		txscript.OP_NOP1,
		script.OpTerm,
		txscript.OP_NOP2,
		txscript.OP_IF,
		txscript.OP_NOP3,
		txscript.OP_NOTIF,
		txscript.OP_NOP4,
		txscript.OP_ELSE,
		txscript.OP_NOP5,
		txscript.OP_IF,
		script.OpTerm,
		txscript.OP_ENDIF,
		txscript.OP_ENDIF,
		txscript.OP_ENDIF,
		txscript.OP_NOP6,
		script.OpTerm,
	}

	tree, err := script.Parse(mustDecode(t, raw))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := Lift(tree)

	want := script.SeqNode([]*script.Node{
		script.LeafNode(script.Instructions{
			script.NewOp(txscript.OP_NOP1),
			script.NewOp(txscript.OP_1),
			script.NewOp(script.OpCterm),
			script.NewOp(txscript.OP_NOP2),
		}),
		script.IfEndNode(script.SeqNode([]*script.Node{
			script.LeafNode(script.Instructions{script.NewOp(txscript.OP_NOP3)}),
			script.NotIfElseEndNode(
				script.LeafNode(script.Instructions{script.NewOp(txscript.OP_NOP4)}),
				script.LeafNode(script.Instructions{
					script.NewOp(txscript.OP_NOP5),
					script.NewOp(script.OpCterm),
				}),
			),
		})),
		script.LeafNode(script.Instructions{
			script.NewOp(txscript.OP_NOP6),
			script.NewOp(txscript.OP_1),
			script.NewOp(script.OpCterm),
		}),
	})

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Lift mismatch:\ngot:  %#v\nwant: %#v", got, want)
	}
}
