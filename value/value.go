// Package value implements the tagged Value passed through every driver
// callback and ability: a type tag, a byte size and a payload that is either
// an inline fixed buffer (default build) or an owned heap block
// (-tags nimbus_dynamic). List values own a separate chain of child Values.
//
// The zero Value is Empty (Void, size 0). Every Set* releases whatever the
// destination held before and leaves it untouched if the store fails.
// Values are not safe for concurrent use.
package value

import (
	"encoding/binary"
	"math"

	"nimbus-go/errcode"
	"nimbus-go/x/conv"
	"nimbus-go/x/fmtx"
)

// Value is a tagged container. Copying a Value struct aliases a list or heap
// payload; use SetCopy for an independent deep copy.
type Value struct {
	typ  DataType
	size int
	p    payload
	l    *list
}

// Init forces v to the Empty state without releasing anything it may hold.
// Use it on storage of unknown content; use Free on a Value you own.
func (v *Value) Init() {
	*v = Value{}
}

// Free releases the payload and, for lists, every child Value, then resets
// v to Empty. Freeing an Empty Value is a no-op.
func (v *Value) Free() {
	if v.l != nil {
		v.l.free()
	}
	v.p.release()
	v.typ = Void
	v.size = 0
	v.l = nil
}

// Type returns the current tag.
func (v *Value) Type() DataType { return v.typ }

// Size returns the number of meaningful payload bytes. Strings count their
// terminating NUL. Lists report zero; use Len.
func (v *Value) Size() int { return v.size }

// IsEmpty reports whether v is Void.
func (v *Value) IsEmpty() bool { return v.typ == Void }

// Bytes returns a read-only view of the payload. The slice is invalidated by
// the next Set* or Free on v.
func (v *Value) Bytes() []byte {
	if v.typ == Void || v.typ == List {
		return nil
	}
	return v.p.bytes(v.size)
}

// commit moves out into v after releasing v's previous contents.
func (v *Value) commit(out *Value) {
	v.Free()
	*v = *out
}

// store copies raw into a fresh payload tagged t.
func (v *Value) store(t DataType, raw []byte) error {
	var out Value
	buf, err := out.p.alloc(len(raw))
	if err != nil {
		return err
	}
	copy(buf, raw)
	out.typ = t
	out.size = len(raw)
	v.commit(&out)
	return nil
}

func (v *Value) SetVoid() { v.Free() }

func (v *Value) SetChar(c byte) error { return v.store(Char, []byte{c}) }

func (v *Value) SetBool(b bool) error {
	var raw [sizeBool]byte
	if b {
		raw[0] = 1
	}
	return v.store(Bool, raw[:])
}

func (v *Value) SetInt(i int32) error {
	var raw [sizeInt]byte
	binary.LittleEndian.PutUint32(raw[:], uint32(i))
	return v.store(Int, raw[:])
}

func (v *Value) SetUint(u uint32) error {
	var raw [sizeUint]byte
	binary.LittleEndian.PutUint32(raw[:], u)
	return v.store(UnsignedInt, raw[:])
}

func (v *Value) SetFloat(f float32) error {
	var raw [sizeFloat]byte
	binary.LittleEndian.PutUint32(raw[:], math.Float32bits(f))
	return v.store(Float, raw[:])
}

func (v *Value) SetDouble(d float64) error {
	var raw [sizeDouble]byte
	binary.LittleEndian.PutUint64(raw[:], math.Float64bits(d))
	return v.store(Double, raw[:])
}

// SetString stores s up to its first NUL and terminates it, so Size is
// len(s)+1. Fails with errcode.OutOfMemory when that exceeds the payload
// capacity.
func (v *Value) SetString(s string) error {
	if i := indexNUL(s); i >= 0 {
		s = s[:i]
	}
	var out Value
	buf, err := out.p.alloc(len(s) + 1)
	if err != nil {
		return err
	}
	copy(buf, s)
	buf[len(s)] = 0
	out.typ = String
	out.size = len(s) + 1
	v.commit(&out)
	return nil
}

// SetBinary stores a copy of b.
func (v *Value) SetBinary(b []byte) error { return v.store(Binary, b) }

func (v *Value) SetVector3Float(x Vec3F) error {
	var raw [sizeVec3F]byte
	putVec3F(raw[:], x)
	return v.store(Vector3Float, raw[:])
}

func (v *Value) SetVector3Double(x Vec3D) error {
	var raw [sizeVec3D]byte
	putVec3D(raw[:], x)
	return v.store(Vector3Double, raw[:])
}

// SetCopy deep-copies src into v. Lists are copied node by node with new
// ownership. Copying a Value onto itself is a no-op.
func (v *Value) SetCopy(src *Value) error {
	if src == nil {
		return errcode.NoInput
	}
	if src == v {
		return nil
	}
	var out Value
	if err := out.copyFrom(src); err != nil {
		out.Free()
		return err
	}
	v.commit(&out)
	return nil
}

// copyFrom fills an Empty v with a deep copy of src.
func (v *Value) copyFrom(src *Value) error {
	switch src.typ {
	case Void:
		return nil
	case List:
		v.typ = List
		v.l = &list{}
		var err error
		src.l.each(func(_ int, child *Value) bool {
			var c Value
			if err = c.copyFrom(child); err != nil {
				c.Free()
				return false
			}
			v.l.pushBack(c)
			return true
		})
		return err
	default:
		buf, err := v.p.alloc(src.size)
		if err != nil {
			return err
		}
		copy(buf, src.p.bytes(src.size))
		v.typ = src.typ
		v.size = src.size
		return nil
	}
}

// String renders v for logs, e.g. int(42) or string("on").
func (v *Value) String() string {
	switch v.typ {
	case Void:
		return "void"
	case String:
		s, _ := v.AsString()
		return fmtx.Sprintf("string(%q)", s)
	case Binary:
		return "binary(" + string(conv.AppendHex(nil, v.Bytes())) + ")"
	case Vector3Float:
		x, _ := v.AsVector3Float()
		return fmtx.Sprintf("vector3_float(%v,%v,%v)", x.X, x.Y, x.Z)
	case Vector3Double:
		x, _ := v.AsVector3Double()
		return fmtx.Sprintf("vector3_double(%v,%v,%v)", x.X, x.Y, x.Z)
	case List:
		out := "list["
		v.l.each(func(i int, child *Value) bool {
			if i > 0 {
				out += " "
			}
			out += child.String()
			return true
		})
		return out + "]"
	default:
		s, _ := v.AsString()
		return v.typ.String() + "(" + s + ")"
	}
}

func indexNUL(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			return i
		}
	}
	return -1
}

func putVec3F(b []byte, x Vec3F) {
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(x.X))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(x.Y))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(x.Z))
}

func putVec3D(b []byte, x Vec3D) {
	binary.LittleEndian.PutUint64(b[0:], math.Float64bits(x.X))
	binary.LittleEndian.PutUint64(b[8:], math.Float64bits(x.Y))
	binary.LittleEndian.PutUint64(b[16:], math.Float64bits(x.Z))
}

func vec3F(b []byte) Vec3F {
	return Vec3F{
		X: math.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
		Y: math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
		Z: math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
	}
}

func vec3D(b []byte) Vec3D {
	return Vec3D{
		X: math.Float64frombits(binary.LittleEndian.Uint64(b[0:])),
		Y: math.Float64frombits(binary.LittleEndian.Uint64(b[8:])),
		Z: math.Float64frombits(binary.LittleEndian.Uint64(b[16:])),
	}
}
