package value

import (
	"encoding/binary"
	"math"

	"nimbus-go/errcode"
	"nimbus-go/x/mathx"
	"nimbus-go/x/strconvx"
)

// SetConverted stores src converted to t in v.
//
//	numeric <-> numeric   cast; float to integer truncates toward zero and
//	                      saturates; anything nonzero is true
//	numeric <-> string    decimal text; floats with six fractional digits;
//	                      string parsing uses ParseLegacy
//	binary  <-> any       byte reinterpretation, truncated or zero padded
//	vec3f   <-> vec3d     per-component cast
//	t == src.Type()       deep copy
//
// Converting a non-void Value to Void is not a conversion.
// Every other pair fails with errcode.InvalidInput.
func (v *Value) SetConverted(t DataType, src *Value) error {
	if src == nil {
		return errcode.NoInput
	}
	if t == src.typ {
		return v.SetCopy(src)
	}
	var out Value
	var err error
	switch t {
	case Void:
		return errcode.InvalidInput
	case Char:
		var c byte
		if c, err = src.AsChar(); err == nil {
			err = out.SetChar(c)
		}
	case Bool:
		var b bool
		if b, err = src.AsBool(); err == nil {
			err = out.SetBool(b)
		}
	case Int:
		var i int32
		if i, err = src.AsInt(); err == nil {
			err = out.SetInt(i)
		}
	case UnsignedInt:
		var u uint32
		if u, err = src.AsUint(); err == nil {
			err = out.SetUint(u)
		}
	case Float:
		var f float32
		if f, err = src.AsFloat(); err == nil {
			err = out.SetFloat(f)
		}
	case Double:
		var d float64
		if d, err = src.AsDouble(); err == nil {
			err = out.SetDouble(d)
		}
	case String:
		var s string
		if s, err = src.AsString(); err == nil {
			err = out.SetString(s)
		}
	case Binary:
		if src.typ == Void || src.typ == List {
			return errcode.InvalidInput
		}
		raw := src.Bytes()
		if n := out.p.limit(); len(raw) > n {
			raw = raw[:n]
		}
		err = out.SetBinary(raw)
	case Vector3Float:
		var x Vec3F
		if x, err = src.AsVector3Float(); err == nil {
			err = out.SetVector3Float(x)
		}
	case Vector3Double:
		var x Vec3D
		if x, err = src.AsVector3Double(); err == nil {
			err = out.SetVector3Double(x)
		}
	default:
		err = errcode.InvalidInput
	}
	if err != nil {
		return err
	}
	v.commit(&out)
	return nil
}

// number returns a scalar or string value in the float64 domain. int32 and
// uint32 are exact there.
func (v *Value) number() (float64, error) {
	raw := v.Bytes()
	switch v.typ {
	case Char:
		return float64(raw[0]), nil
	case Bool:
		if raw[0] != 0 {
			return 1, nil
		}
		return 0, nil
	case Int:
		return float64(int32(binary.LittleEndian.Uint32(raw))), nil
	case UnsignedInt:
		return float64(binary.LittleEndian.Uint32(raw)), nil
	case Float:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(raw))), nil
	case Double:
		return math.Float64frombits(binary.LittleEndian.Uint64(raw)), nil
	case String:
		s, _ := v.AsString()
		return ParseLegacy(s), nil
	default:
		return 0, errcode.InvalidInput
	}
}

// padded copies a Binary payload into a zeroed buffer of width n.
func (v *Value) padded(n int) []byte {
	b := make([]byte, n)
	copy(b, v.Bytes())
	return b
}

func (v *Value) AsChar() (byte, error) {
	switch v.typ {
	case Binary:
		return v.padded(sizeChar)[0], nil
	case String:
		// A string converts to its first character.
		return v.p.bytes(v.size)[0], nil
	}
	f, err := v.number()
	if err != nil {
		return 0, err
	}
	return byte(saturate(f, 0, math.MaxUint8)), nil
}

func (v *Value) AsBool() (bool, error) {
	switch v.typ {
	case Binary:
		return v.padded(sizeBool)[0] != 0, nil
	case String:
		switch s, _ := v.AsString(); s {
		case "true", "TRUE", "True":
			return true, nil
		case "false", "FALSE", "False":
			return false, nil
		}
	}
	f, err := v.number()
	if err != nil {
		return false, err
	}
	return f != 0, nil
}

func (v *Value) AsInt() (int32, error) {
	if v.typ == Binary {
		return int32(binary.LittleEndian.Uint32(v.padded(sizeInt))), nil
	}
	f, err := v.number()
	if err != nil {
		return 0, err
	}
	return int32(saturate(f, math.MinInt32, math.MaxInt32)), nil
}

func (v *Value) AsUint() (uint32, error) {
	if v.typ == Binary {
		return binary.LittleEndian.Uint32(v.padded(sizeUint)), nil
	}
	f, err := v.number()
	if err != nil {
		return 0, err
	}
	return uint32(saturate(f, 0, math.MaxUint32)), nil
}

func (v *Value) AsFloat() (float32, error) {
	if v.typ == Binary {
		return math.Float32frombits(binary.LittleEndian.Uint32(v.padded(sizeFloat))), nil
	}
	f, err := v.number()
	if err != nil {
		return 0, err
	}
	return float32(f), nil
}

func (v *Value) AsDouble() (float64, error) {
	if v.typ == Binary {
		return math.Float64frombits(binary.LittleEndian.Uint64(v.padded(sizeDouble))), nil
	}
	return v.number()
}

// AsString returns the text form of v without the terminating NUL.
func (v *Value) AsString() (string, error) {
	raw := v.Bytes()
	switch v.typ {
	case String, Binary:
		if i := indexNULBytes(raw); i >= 0 {
			raw = raw[:i]
		}
		return string(raw), nil
	case Char:
		return string(raw[:1]), nil
	case Bool:
		if raw[0] != 0 {
			return "true", nil
		}
		return "false", nil
	case Int:
		return strconvx.FormatInt(int64(int32(binary.LittleEndian.Uint32(raw))), 10), nil
	case UnsignedInt:
		return strconvx.FormatUint(uint64(binary.LittleEndian.Uint32(raw)), 10), nil
	case Float:
		f := math.Float32frombits(binary.LittleEndian.Uint32(raw))
		return strconvx.FormatFloat(float64(f), 'f', 6, 32), nil
	case Double:
		d := math.Float64frombits(binary.LittleEndian.Uint64(raw))
		return strconvx.FormatFloat(d, 'f', 6, 64), nil
	default:
		return "", errcode.InvalidInput
	}
}

// GetString writes the text form of v and a terminating NUL into dst and
// returns the text length. It fails with errcode.OutOfMemory rather than
// truncate when dst is too small.
func (v *Value) GetString(dst []byte) (int, error) {
	s, err := v.AsString()
	if err != nil {
		return 0, err
	}
	if len(s)+1 > len(dst) {
		return 0, errcode.OutOfMemory
	}
	copy(dst, s)
	dst[len(s)] = 0
	return len(s), nil
}

// GetBinary copies the raw payload of v into dst and returns its size. It
// fails with errcode.OutOfMemory when dst is too small.
func (v *Value) GetBinary(dst []byte) (int, error) {
	if v.typ == List {
		return 0, errcode.InvalidInput
	}
	if v.size > len(dst) {
		return 0, errcode.OutOfMemory
	}
	return copy(dst, v.Bytes()), nil
}

func (v *Value) AsVector3Float() (Vec3F, error) {
	switch v.typ {
	case Vector3Float:
		return vec3F(v.Bytes()), nil
	case Vector3Double:
		d := vec3D(v.Bytes())
		return Vec3F{X: float32(d.X), Y: float32(d.Y), Z: float32(d.Z)}, nil
	case Binary:
		return vec3F(v.padded(sizeVec3F)), nil
	default:
		return Vec3F{}, errcode.InvalidInput
	}
}

func (v *Value) AsVector3Double() (Vec3D, error) {
	switch v.typ {
	case Vector3Double:
		return vec3D(v.Bytes()), nil
	case Vector3Float:
		f := vec3F(v.Bytes())
		return Vec3D{X: float64(f.X), Y: float64(f.Y), Z: float64(f.Z)}, nil
	case Binary:
		return vec3D(v.padded(sizeVec3D)), nil
	default:
		return Vec3D{}, errcode.InvalidInput
	}
}

// saturate clamps f into [lo, hi] and truncates toward zero. NaN maps to 0.
func saturate(f, lo, hi float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return math.Trunc(mathx.Clamp(f, lo, hi))
}

func indexNULBytes(b []byte) int {
	for i, c := range b {
		if c == 0 {
			return i
		}
	}
	return -1
}
