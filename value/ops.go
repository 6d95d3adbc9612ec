package value

import (
	"math"

	"nimbus-go/errcode"
)

// SetOperation applies op with operand to a numeric src and stores the
// result in v with src's type. The arithmetic runs in float64 and is then
// narrowed: integers truncate toward zero and saturate, so Int 10 + 2.5
// yields Int 12; a Bool result is true when nonzero. Division by zero fails with errcode.InvalidInput.
func (v *Value) SetOperation(op Operator, operand float32, src *Value) error {
	if src == nil {
		return errcode.NoInput
	}
	if !src.typ.arithmetic() {
		return errcode.InvalidInput
	}
	x, err := src.number()
	if err != nil {
		return err
	}
	y := float64(operand)

	var r float64
	switch op {
	case Add:
		r = x + y
	case Subtract:
		r = x - y
	case Multiply:
		r = x * y
	case Divide:
		if y == 0 {
			return errcode.InvalidInput
		}
		r = x / y
	default:
		return errcode.InvalidInput
	}

	var out Value
	switch src.typ {
	case Char:
		err = out.SetChar(byte(saturate(r, 0, math.MaxUint8)))
	case Bool:
		err = out.SetBool(r != 0)
	case Int:
		err = out.SetInt(int32(saturate(r, math.MinInt32, math.MaxInt32)))
	case UnsignedInt:
		err = out.SetUint(uint32(saturate(r, 0, math.MaxUint32)))
	case Float:
		err = out.SetFloat(float32(r))
	case Double:
		err = out.SetDouble(r)
	}
	if err != nil {
		return err
	}
	v.commit(&out)
	return nil
}

// Compare evaluates a cond b. Both values must carry the same type. Scalar
// types support every condition; strings support Equal and NotEqual only.
// Anything else fails with errcode.InvalidInput.
func Compare(a, b *Value, cond Condition) (bool, error) {
	if a == nil || b == nil {
		return false, errcode.NoInput
	}
	if a.typ != b.typ {
		return false, errcode.InvalidInput
	}
	if a.typ == String {
		sa, _ := a.AsString()
		sb, _ := b.AsString()
		switch cond {
		case Equal:
			return sa == sb, nil
		case NotEqual:
			return sa != sb, nil
		default:
			return false, errcode.InvalidInput
		}
	}
	if !a.typ.scalar() {
		return false, errcode.InvalidInput
	}
	x, _ := a.number()
	y, _ := b.number()
	switch cond {
	case LessThan:
		return x < y, nil
	case LessThanEqual:
		return x <= y, nil
	case GreaterThan:
		return x > y, nil
	case GreaterThanEqual:
		return x >= y, nil
	case Equal:
		return x == y, nil
	case NotEqual:
		return x != y, nil
	default:
		return false, errcode.InvalidInput
	}
}
