package value

// DataType tags the payload held by a Value. The numeric order carries no
// meaning beyond this file; nothing persists or transmits it.
type DataType uint8

const (
	Void DataType = iota
	Char
	Bool
	Int
	UnsignedInt
	Float
	Double
	String
	Binary
	Vector3Float
	Vector3Double
	List
)

func (t DataType) String() string {
	switch t {
	case Void:
		return "void"
	case Char:
		return "char"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case UnsignedInt:
		return "unsigned_int"
	case Float:
		return "float"
	case Double:
		return "double"
	case String:
		return "string"
	case Binary:
		return "binary"
	case Vector3Float:
		return "vector3_float"
	case Vector3Double:
		return "vector3_double"
	case List:
		return "list"
	default:
		return "unknown"
	}
}

// scalar reports whether t converts through the numeric domain.
func (t DataType) scalar() bool {
	switch t {
	case Char, Bool, Int, UnsignedInt, Float, Double:
		return true
	}
	return false
}

// arithmetic reports whether SetOperation accepts t.
func (t DataType) arithmetic() bool {
	switch t {
	case Char, Bool, Int, UnsignedInt, Float, Double:
		return true
	}
	return false
}

// Fixed payload widths in bytes (32-bit int/float, 64-bit double).
const (
	sizeChar   = 1
	sizeBool   = 1
	sizeInt    = 4
	sizeUint   = 4
	sizeFloat  = 4
	sizeDouble = 8
	sizeVec3F  = 3 * sizeFloat
	sizeVec3D  = 3 * sizeDouble
)

// Vec3F is the payload of a Vector3Float value.
type Vec3F struct{ X, Y, Z float32 }

// Vec3D is the payload of a Vector3Double value.
type Vec3D struct{ X, Y, Z float64 }

// Operator selects the arithmetic applied by SetOperation.
type Operator uint8

const (
	Add Operator = iota
	Subtract
	Multiply
	Divide
)

// Condition selects the relation tested by Compare.
type Condition uint8

const (
	LessThan Condition = iota
	LessThanEqual
	GreaterThan
	GreaterThanEqual
	Equal
	NotEqual
)

// Callback receives a Value borrowed for the duration of the call. Copy it
// with SetCopy to keep it.
type Callback func(v *Value)
