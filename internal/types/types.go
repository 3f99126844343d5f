// Package types models the slice of the Zen type system the move/borrow
// analyses consume: enough to classify a type as Copy or Move and to read
// reference mutability off a declared type. Full type checking (inference,
// unification, method resolution) lives upstream of this package.
package types

// TypeID identifies an interned type.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates the type shapes the analyses need to distinguish.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindI8
	KindI16
	KindI32
	KindI64
	KindU8
	KindU16
	KindU32
	KindU64
	KindF32
	KindF64
	KindBool
	KindChar
	KindVoid
	KindPointer
	KindFunction
	KindEnum
	KindBitInt
	KindUBitInt
	KindStruct
	KindArray
	KindAlias
	KindRef
	KindRefSlice
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindI8:
		return "i8"
	case KindI16:
		return "i16"
	case KindI32:
		return "i32"
	case KindI64:
		return "i64"
	case KindU8:
		return "u8"
	case KindU16:
		return "u16"
	case KindU32:
		return "u32"
	case KindU64:
		return "u64"
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindVoid:
		return "void"
	case KindPointer:
		return "pointer"
	case KindFunction:
		return "function"
	case KindEnum:
		return "enum"
	case KindBitInt:
		return "bitint"
	case KindUBitInt:
		return "ubitint"
	case KindStruct:
		return "struct"
	case KindArray:
		return "array"
	case KindAlias:
		return "alias"
	case KindRef:
		return "ref"
	case KindRefSlice:
		return "ref_slice"
	default:
		return "invalid"
	}
}

// primitiveKinds are always Copy regardless of anything else.
var primitiveKinds = map[Kind]bool{
	KindInt: true, KindI8: true, KindI16: true, KindI32: true, KindI64: true,
	KindU8: true, KindU16: true, KindU32: true, KindU64: true,
	KindF32: true, KindF64: true, KindBool: true, KindChar: true, KindVoid: true,
	KindPointer: true, KindFunction: true, KindEnum: true,
	KindBitInt: true, KindUBitInt: true,
}

// IsPrimitive reports whether k is one of the always-Copy primitive kinds.
func IsPrimitive(k Kind) bool {
	return primitiveKinds[k]
}

// Type is one interned type node.
type Type struct {
	Kind Kind

	// Name is populated for KindStruct.
	Name string

	// Inner is populated for KindArray, KindAlias, KindRef and KindRefSlice.
	Inner TypeID

	// Opaque is populated for KindAlias: an opaque alias is Copy regardless
	// of its underlying type.
	Opaque bool

	// Mutable is populated for KindRef and KindRefSlice.
	Mutable bool
}

// Interner deduplicates Type values and hands back small TypeIDs.
type Interner struct {
	types []Type
	index map[Type]TypeID
}

// NewInterner creates an empty Interner.
func NewInterner() *Interner {
	return &Interner{index: make(map[Type]TypeID)}
}

// Intern returns the TypeID for t, registering it if new.
func (in *Interner) Intern(t Type) TypeID {
	if id, ok := in.index[t]; ok {
		return id
	}
	in.types = append(in.types, t)
	id := TypeID(len(in.types))
	in.index[t] = id
	return id
}

// Lookup returns the Type for id.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if in == nil || id == NoTypeID || int(id) > len(in.types) {
		return Type{}, false
	}
	return in.types[id-1], true
}
