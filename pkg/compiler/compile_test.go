package compiler

import (
	"bytes"
	"testing"

	"github.com/arkade-os/termscript/pkg/script"
	"github.com/btcsuite/btcd/txscript"
)

func TestCompileRemovesTermAndCterm(t *testing.T) {
	raw := []byte{
		txscript.OP_1,
		txscript.OP_IF,
		txscript.OP_DATA_2, 0x11, 0x27,
		txscript.OP_EQUAL,
		txscript.OP_IF,
		script.OpTerm,
		txscript.OP_ENDIF,
		txscript.OP_9,
		txscript.OP_ENDIF,
		txscript.OP_RETURN,
	}

	out, err := Compile(raw, CompileOptions{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	ins, err := script.Decode(out, script.DefaultMaxPushSize)
	if err != nil {
		t.Fatalf("Decode compiled output: %v", err)
	}
	for _, in := range ins {
		if in.Equal(script.NewOp(script.OpTerm)) || in.Equal(script.NewOp(script.OpCterm)) {
			t.Fatalf("compiled output still contains a pseudo-opcode: %+v", ins)
		}
	}
}

func TestCompileSkipsTrailerWithoutPseudoOpcodes(t *testing.T) {
	raw := []byte{txscript.OP_1, txscript.OP_RETURN}

	out, err := Compile(raw, CompileOptions{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !bytes.Equal(out, raw) {
		t.Fatalf("Compile of a TERM/CTERM-free script should be a no-op: got %x, want %x", out, raw)
	}
}

func TestCompileIsIdempotentOnAlreadyCompiledOutput(t *testing.T) {
	raw := []byte{
		txscript.OP_DATA_2, 0x12, 0x27,
		txscript.OP_EQUAL,
		script.OpCterm,
		txscript.OP_9,
		txscript.OP_RETURN,
	}

	first, err := Compile(raw, CompileOptions{})
	if err != nil {
		t.Fatalf("first Compile: %v", err)
	}

	second, err := Compile(first, CompileOptions{})
	if err != nil {
		t.Fatalf("second Compile: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Fatalf("Compile is not idempotent: first %x, second %x", first, second)
	}
}

func TestCompileRejectsUnbalancedControlFlow(t *testing.T) {
	_, err := Compile([]byte{txscript.OP_1, txscript.OP_IF}, CompileOptions{})
	ce, ok := err.(script.CompileError)
	if !ok || ce.Code != script.ErrUnbalancedControl {
		t.Fatalf("got %v, want ErrUnbalancedControl", err)
	}
}

func TestCompileRejectsOversizedPush(t *testing.T) {
	_, err := Compile([]byte{0x02, 0x01, 0x02}, CompileOptions{MaxPushSize: 1})
	ce, ok := err.(script.CompileError)
	if !ok || ce.Code != script.ErrPushTooLarge {
		t.Fatalf("got %v, want ErrPushTooLarge", err)
	}
}

func TestCompileTracesEveryPass(t *testing.T) {
	var trace []string
	raw := []byte{script.OpTerm}
	if _, err := Compile(raw, CompileOptions{Trace: &trace}); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	want := []string{"parse", "cleanup", "lift", "reduce", "trailer"}
	if len(trace) != len(want) {
		t.Fatalf("got trace %v, want %v", trace, want)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("got trace %v, want %v", trace, want)
		}
	}
}
