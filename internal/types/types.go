// Package types implements the static type system used by the semantic
// analysis passes: primitive types, composite types (arrays, records,
// classes, interfaces), function signatures, and the compatibility and
// coercion rules the analyzer and closure-conversion pass rely on.
package types

import (
	"fmt"

	"github.com/cwbudde/go-dws/internal/ident"
)

// Type is the common interface implemented by every type in the system.
type Type interface {
	// String returns the DWScript-facing type name, e.g. "Integer" or
	// "TPerson(TObject)".
	String() string
	// TypeKind returns a coarse, uppercase discriminator for the type,
	// e.g. "INTEGER" or "CLASS". Used for fast dispatch without a type
	// switch in hot paths.
	TypeKind() string
	// Equals reports whether two types denote the same type.
	Equals(other Type) bool
}

// IntegerType, FloatType, StringType, BooleanType, NilType, VoidType,
// VariantType and DateTimeType are the concrete primitive Type
// implementations. They carry no fields; every primitive comparison
// goes through TypeKind, not pointer identity, so additional instances
// besides the package singletons below are harmless.
type (
	IntegerType  struct{}
	FloatType    struct{}
	StringType   struct{}
	BooleanType  struct{}
	NilType      struct{}
	VoidType     struct{}
	VariantType  struct{}
	DateTimeType struct{}
)

func (*IntegerType) String() string   { return "Integer" }
func (*IntegerType) TypeKind() string { return "INTEGER" }
func (t *IntegerType) Equals(other Type) bool {
	_, ok := other.(*IntegerType)
	return ok
}

func (*FloatType) String() string   { return "Float" }
func (*FloatType) TypeKind() string { return "FLOAT" }
func (t *FloatType) Equals(other Type) bool {
	_, ok := other.(*FloatType)
	return ok
}

func (*StringType) String() string   { return "String" }
func (*StringType) TypeKind() string { return "STRING" }
func (t *StringType) Equals(other Type) bool {
	_, ok := other.(*StringType)
	return ok
}

func (*BooleanType) String() string   { return "Boolean" }
func (*BooleanType) TypeKind() string { return "BOOLEAN" }
func (t *BooleanType) Equals(other Type) bool {
	_, ok := other.(*BooleanType)
	return ok
}

func (*NilType) String() string   { return "Nil" }
func (*NilType) TypeKind() string { return "NIL" }
func (t *NilType) Equals(other Type) bool {
	_, ok := other.(*NilType)
	return ok
}

func (*VoidType) String() string   { return "Void" }
func (*VoidType) TypeKind() string { return "VOID" }
func (t *VoidType) Equals(other Type) bool {
	_, ok := other.(*VoidType)
	return ok
}

func (*VariantType) String() string   { return "Variant" }
func (*VariantType) TypeKind() string { return "VARIANT" }
func (t *VariantType) Equals(other Type) bool {
	_, ok := other.(*VariantType)
	return ok
}

func (*DateTimeType) String() string   { return "TDateTime" }
func (*DateTimeType) TypeKind() string { return "DATETIME" }
func (t *DateTimeType) Equals(other Type) bool {
	_, ok := other.(*DateTimeType)
	return ok
}

// Primitive type singletons. Code anywhere in the analyzer compares
// against these directly via Equals; construct additional instances
// only where a test needs to exercise Equals across two distinct values.
var (
	INTEGER  Type = &IntegerType{}
	FLOAT    Type = &FloatType{}
	STRING   Type = &StringType{}
	BOOLEAN  Type = &BooleanType{}
	NIL      Type = &NilType{}
	VOID     Type = &VoidType{}
	VARIANT  Type = &VariantType{}
	DATETIME Type = &DateTimeType{}
)

// TypeAlias names another type under a new identifier (DWScript's `type
// TMyInt = Integer;`). It is transparent to comparisons: an alias equals
// whatever it aliases.
type TypeAlias struct {
	AliasedType Type
	Name        string
}

func (a *TypeAlias) String() string   { return a.Name }
func (a *TypeAlias) TypeKind() string { return a.AliasedType.TypeKind() }
func (a *TypeAlias) Equals(other Type) bool {
	if o, ok := other.(*TypeAlias); ok {
		return a.AliasedType.Equals(o.AliasedType)
	}
	return a.AliasedType.Equals(other)
}

// IsIdentical reports whether a and b denote the same type once aliases
// are resolved to their underlying type.
func IsIdentical(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return GetUnderlyingType(a).Equals(GetUnderlyingType(b))
}

// TypeFromString resolves a primitive type by its DWScript spelling,
// case-insensitively. Composite types (arrays, classes, ...) are never
// reachable through this lookup; callers resolve those through the
// symbol table instead.
func TypeFromString(name string) (Type, error) {
	switch ident.Normalize(name) {
	case "integer":
		return INTEGER, nil
	case "float":
		return FLOAT, nil
	case "string":
		return STRING, nil
	case "boolean":
		return BOOLEAN, nil
	case "void":
		return VOID, nil
	case "variant":
		return VARIANT, nil
	case "tdatetime":
		return DATETIME, nil
	default:
		return nil, fmt.Errorf("unknown type: %s", name)
	}
}

// IsBasicType reports whether typ is one of the four scalar primitives
// (Integer, Float, String, Boolean) exposed directly to user code.
func IsBasicType(typ Type) bool {
	switch typ {
	case INTEGER, FLOAT, STRING, BOOLEAN:
		return true
	default:
		return false
	}
}

// IsNumericType reports whether typ participates in arithmetic.
func IsNumericType(typ Type) bool {
	return typ == INTEGER || typ == FLOAT
}

// IsOrdinalType reports whether typ has a well-defined successor/
// predecessor relation (used by Inc/Dec, for-loops, Low/High).
func IsOrdinalType(typ Type) bool {
	if typ == INTEGER || typ == BOOLEAN {
		return true
	}
	if _, ok := typ.(*EnumType); ok {
		return true
	}
	if _, ok := typ.(*SubrangeType); ok {
		return true
	}
	return false
}

// IsOrderedType reports whether typ supports relational ordering (<, >,
// <=, >=) beyond plain equality.
func IsOrderedType(typ Type) bool {
	switch typ {
	case INTEGER, FLOAT, STRING:
		return true
	default:
		if _, ok := typ.(*EnumType); ok {
			return true
		}
		return false
	}
}

// IsComparableType reports whether typ supports equality comparison.
func IsComparableType(typ Type) bool {
	switch typ {
	case INTEGER, FLOAT, STRING, BOOLEAN, NIL:
		return true
	default:
		switch typ.(type) {
		case *EnumType, *ClassType, *ClassOfType, *InterfaceType:
			return true
		}
		return false
	}
}

// IsClassType reports whether typ is a class (not a metaclass).
func IsClassType(typ Type) bool {
	_, ok := typ.(*ClassType)
	return ok
}

// IsInterfaceType reports whether typ is an interface type.
func IsInterfaceType(typ Type) bool {
	_, ok := typ.(*InterfaceType)
	return ok
}

// IsClassRelated reports whether typ is a class, metaclass, or interface —
// anything that participates in DWScript's reference-type hierarchy.
func IsClassRelated(typ Type) bool {
	switch typ.(type) {
	case *ClassType, *ClassOfType, *InterfaceType:
		return true
	default:
		return false
	}
}

// IsValidType reports whether typ is a non-nil, well-formed type.
func IsValidType(typ Type) bool {
	return typ != nil
}

// GetUnderlyingType strips type aliases and subranges down to the
// concrete type they denote; every other type is its own underlying
// type.
func GetUnderlyingType(typ Type) Type {
	switch t := typ.(type) {
	case *TypeAlias:
		return GetUnderlyingType(t.AliasedType)
	case *SubrangeType:
		return GetUnderlyingType(t.BaseType)
	default:
		return typ
	}
}

// IsCompatible reports whether a value of type from may be used directly
// where a value of type to is expected, without any coercion (an Integer
// widening to Float is the one built-in exception).
func IsCompatible(from, to Type) bool {
	if from == nil || to == nil {
		return false
	}
	if from.Equals(to) {
		return true
	}
	if from == INTEGER && to == FLOAT {
		return true
	}
	if fromArr, ok := from.(*ArrayType); ok {
		if toArr, ok := to.(*ArrayType); ok {
			return fromArr.ElementType.Equals(toArr.ElementType)
		}
	}
	if fromClass, ok := from.(*ClassType); ok {
		if toClass, ok := to.(*ClassType); ok {
			return IsSubclassOf(fromClass, toClass)
		}
		if toIface, ok := to.(*InterfaceType); ok {
			return ImplementsInterface(fromClass, toIface)
		}
	}
	return false
}

// CanCoerce reports whether a value of type from may be implicitly
// converted to type to. Today this is exactly Integer-to-Float; every
// other conversion must be explicit.
func CanCoerce(from, to Type) bool {
	if from.Equals(to) {
		return true
	}
	return from == INTEGER && to == FLOAT
}

// NeedsCoercion reports whether assigning from to to requires an actual
// conversion step (as opposed to being already identical).
func NeedsCoercion(from, to Type) bool {
	return !from.Equals(to) && CanCoerce(from, to)
}

// PromoteTypes returns the common type two operands are promoted to for
// a binary operation, or nil if no promotion rule applies.
func PromoteTypes(left, right Type) Type {
	if left.Equals(right) {
		return left
	}
	if (left == INTEGER && right == FLOAT) || (left == FLOAT && right == INTEGER) {
		return FLOAT
	}
	return nil
}

// SupportsOperation reports whether typ supports the given operator
// token (by its source spelling, e.g. "+", "div", "and").
func SupportsOperation(typ Type, operation string) bool {
	switch operation {
	case "+":
		return typ == INTEGER || typ == FLOAT || typ == STRING
	case "-", "*", "/":
		return typ == INTEGER || typ == FLOAT
	case "div", "mod":
		return typ == INTEGER
	case "and", "or", "not", "xor":
		return typ == BOOLEAN
	case "<", ">", "<=", ">=":
		return typ == INTEGER || typ == FLOAT || typ == STRING
	default:
		return false
	}
}
