package compiler

import (
	"reflect"
	"testing"

	"github.com/arkade-os/termscript/pkg/script"
	"github.com/btcsuite/btcd/txscript"
)

// TestCleanup checks that a TERM inside a nested IF drops the dead code
// after it but not the enclosing structure, and that a trailing
// numeric-truthy-push + CTERM folds into a bare TERM which then truncates
// everything after it.
func TestCleanup(t *testing.T) {
	raw := []byte{
		txscript.OP_NOP1,
		txscript.OP_IF,
		txscript.OP_NOP2,
		script.OpTerm,
		txscript.OP_NOP3,
		txscript.OP_NOTIF,
		txscript.OP_NOP4,
		txscript.OP_ENDIF,
		txscript.OP_ENDIF,
		txscript.OP_NOP5,
		txscript.OP_12,
		script.OpCterm,
		txscript.OP_NOP6,
	}

	tree, err := script.Parse(mustDecode(t, raw))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := Cleanup(tree)

	want := script.SeqNode([]*script.Node{
		script.LeafNode(script.Instructions{script.NewOp(txscript.OP_NOP1)}),
		script.IfEndNode(script.LeafNode(script.Instructions{
			script.NewOp(txscript.OP_NOP2),
			script.NewOp(script.OpTerm),
		})),
		script.LeafNode(script.Instructions{
			script.NewOp(txscript.OP_NOP5),
			script.NewOp(script.OpTerm),
		}),
	})

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Cleanup mismatch:\ngot:  %#v\nwant: %#v", got, want)
	}
}

func mustDecode(t *testing.T, raw []byte) script.Instructions {
	t.Helper()
	ins, err := script.Decode(raw, script.DefaultMaxPushSize)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return ins
}
