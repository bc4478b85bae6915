package script

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/txscript"
)

// DefaultMaxPushSize is the structural push-size ceiling Decode/Encode
// enforce when a caller does not supply one. It is a compiler-internal
// sanity bound, distinct from Bitcoin's 520-byte standardness policy limit.
const DefaultMaxPushSize = 65535

// Instruction is a single decoded unit of a Bitcoin Script: either a bare
// opcode with no operand, or a canonical data push.
//
// Data == nil means Op is a bare opcode (OP_IF, OP_RETURN_199, ...). Data !=
// nil means this instruction is a data push of exactly those bytes; Op is
// unused in that case — Encode re-derives the minimal push encoding purely
// from len(Data), so no code may read Op on an instruction with Data != nil.
type Instruction struct {
	Op   Opcode
	Data []byte
}

// NewOp returns a bare-opcode instruction.
func NewOp(op Opcode) Instruction {
	return Instruction{Op: op}
}

// NewPush returns a canonical data-push instruction. An empty push
// normalizes to the bare OP_0 opcode rather than a zero-length Data push, so
// that every push of "nothing" compares and serializes identically.
func NewPush(data []byte) Instruction {
	if len(data) == 0 {
		return Instruction{Op: txscript.OP_0}
	}
	return Instruction{Data: data}
}

// IsPush reports whether the instruction is a data push (including the
// empty push normalized to OP_0).
func (i Instruction) IsPush() bool {
	return i.Data != nil || i.Op == txscript.OP_0
}

// Equal reports whether two instructions encode the same opcode/push.
func (i Instruction) Equal(o Instruction) bool {
	if i.IsPush() != o.IsPush() {
		return false
	}
	if i.IsPush() {
		ib, ob := i.Data, o.Data
		if len(ib) != len(ob) {
			return false
		}
		for k := range ib {
			if ib[k] != ob[k] {
				return false
			}
		}
		return true
	}
	return i.Op == o.Op
}

// Instructions is a flat, decoded instruction stream.
type Instructions []Instruction

// Decode parses a raw script into a flat instruction stream. maxPushSize
// bounds the declared length of any single data push (via OP_DATA_n,
// OP_PUSHDATA1/2/4); a push declaring a longer length is rejected with
// ErrPushTooLarge, and a push running past the end of the script is
// rejected with ErrMalformedScript.
//
// This is a hand-rolled tokenizer rather than a wrapper around txscript's
// internal ScriptTokenizer: the tokenizer enforces Bitcoin's 520-byte
// standardness limit, a policy rule distinct from the structural ceiling
// this codec enforces, and is unexported besides.
func Decode(b []byte, maxPushSize int) (Instructions, error) {
	var out Instructions
	i := 0
	for i < len(b) {
		op := b[i]
		i++

		switch {
		case op == txscript.OP_0:
			out = append(out, Instruction{Op: txscript.OP_0})

		case op >= txscript.OP_DATA_1 && op <= txscript.OP_DATA_75:
			n := int(op)
			if i+n > len(b) {
				return nil, scriptError(ErrMalformedScript, "data push runs past end of script")
			}
			if n > maxPushSize {
				return nil, scriptError(ErrPushTooLarge, "push exceeds configured ceiling")
			}
			data := make([]byte, n)
			copy(data, b[i:i+n])
			out = append(out, Instruction{Data: data})
			i += n

		case op == txscript.OP_PUSHDATA1:
			if i+1 > len(b) {
				return nil, scriptError(ErrMalformedScript, "OP_PUSHDATA1 missing length byte")
			}
			n := int(b[i])
			i++
			if i+n > len(b) {
				return nil, scriptError(ErrMalformedScript, "OP_PUSHDATA1 data runs past end of script")
			}
			if n > maxPushSize {
				return nil, scriptError(ErrPushTooLarge, "push exceeds configured ceiling")
			}
			data := make([]byte, n)
			copy(data, b[i:i+n])
			out = append(out, Instruction{Data: data})
			i += n

		case op == txscript.OP_PUSHDATA2:
			if i+2 > len(b) {
				return nil, scriptError(ErrMalformedScript, "OP_PUSHDATA2 missing length bytes")
			}
			n := int(binary.LittleEndian.Uint16(b[i : i+2]))
			i += 2
			if i+n > len(b) {
				return nil, scriptError(ErrMalformedScript, "OP_PUSHDATA2 data runs past end of script")
			}
			if n > maxPushSize {
				return nil, scriptError(ErrPushTooLarge, "push exceeds configured ceiling")
			}
			data := make([]byte, n)
			copy(data, b[i:i+n])
			out = append(out, Instruction{Data: data})
			i += n

		case op == txscript.OP_PUSHDATA4:
			if i+4 > len(b) {
				return nil, scriptError(ErrMalformedScript, "OP_PUSHDATA4 missing length bytes")
			}
			n := int(binary.LittleEndian.Uint32(b[i : i+4]))
			i += 4
			if n < 0 || i+n > len(b) {
				return nil, scriptError(ErrMalformedScript, "OP_PUSHDATA4 data runs past end of script")
			}
			if n > maxPushSize {
				return nil, scriptError(ErrPushTooLarge, "push exceeds configured ceiling")
			}
			data := make([]byte, n)
			copy(data, b[i:i+n])
			out = append(out, Instruction{Data: data})
			i += n

		default:
			out = append(out, Instruction{Op: op})
		}
	}
	return out, nil
}

// Encode serializes an instruction stream back into a raw script, choosing
// the minimal push opcode for every data push purely from its length.
// maxPushSize bounds how large a single push's Data may be.
func Encode(ins Instructions, maxPushSize int) ([]byte, error) {
	var out []byte
	for _, in := range ins {
		if in.Data == nil {
			out = append(out, in.Op)
			continue
		}
		n := len(in.Data)
		if n > maxPushSize {
			return nil, scriptError(ErrPushTooLarge, "push exceeds configured ceiling")
		}
		switch {
		case n == 0:
			out = append(out, txscript.OP_0)
		case n <= 75:
			out = append(out, byte(n))
			out = append(out, in.Data...)
		case n <= 255:
			out = append(out, txscript.OP_PUSHDATA1, byte(n))
			out = append(out, in.Data...)
		case n <= 65535:
			var lenBuf [2]byte
			binary.LittleEndian.PutUint16(lenBuf[:], uint16(n))
			out = append(out, txscript.OP_PUSHDATA2)
			out = append(out, lenBuf[:]...)
			out = append(out, in.Data...)
		default:
			var lenBuf [4]byte
			binary.LittleEndian.PutUint32(lenBuf[:], uint32(n))
			out = append(out, txscript.OP_PUSHDATA4)
			out = append(out, lenBuf[:]...)
			out = append(out, in.Data...)
		}
	}
	return out, nil
}
