package ir

// Neutral primitive names. Targets map these to their own built-in types.
const (
	PrimitiveBool     = "bool"
	PrimitiveInt      = "int"
	PrimitiveInt8     = "int8"
	PrimitiveInt16    = "int16"
	PrimitiveInt32    = "int32"
	PrimitiveInt64    = "int64"
	PrimitiveUint     = "uint"
	PrimitiveUint8    = "uint8"
	PrimitiveUint16   = "uint16"
	PrimitiveUint32   = "uint32"
	PrimitiveUint64   = "uint64"
	PrimitiveFloat32  = "float32"
	PrimitiveFloat64  = "float64"
	PrimitiveString   = "string"
	PrimitiveBytes    = "bytes"    // []byte
	PrimitiveTime     = "time"     // time.Time
	PrimitiveDuration = "duration" // time.Duration
	PrimitiveAny      = "any"      // interface{} / any
)

// PrimitiveDescriptor represents a built-in type.
type PrimitiveDescriptor struct {
	// Name is one of the Primitive* constants.
	Name string
}

// Kind returns KindPrimitive.
func (d *PrimitiveDescriptor) Kind() DescriptorKind { return KindPrimitive }

// TypeName returns the primitive name.
func (d *PrimitiveDescriptor) TypeName() string { return d.Name }

func (*PrimitiveDescriptor) sealed() {}

// Primitive returns a PrimitiveDescriptor for the named primitive.
func Primitive(name string) *PrimitiveDescriptor {
	return &PrimitiveDescriptor{Name: name}
}

// String returns a PrimitiveDescriptor for string.
func String() *PrimitiveDescriptor { return Primitive(PrimitiveString) }

// Bool returns a PrimitiveDescriptor for bool.
func Bool() *PrimitiveDescriptor { return Primitive(PrimitiveBool) }

// Float64 returns a PrimitiveDescriptor for float64.
func Float64() *PrimitiveDescriptor { return Primitive(PrimitiveFloat64) }

// Int64 returns a PrimitiveDescriptor for int64.
func Int64() *PrimitiveDescriptor { return Primitive(PrimitiveInt64) }
