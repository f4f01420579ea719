package types

import "fmt"

// ArrayType describes either a dynamic array (`array of T`) or a
// static array with fixed bounds (`array[low..high] of T`).
type ArrayType struct {
	ElementType Type
	Dynamic     bool
	LowBound    int
	HighBound   int
}

// NewDynamicArrayType builds an `array of elem` type.
func NewDynamicArrayType(elem Type) *ArrayType {
	return &ArrayType{ElementType: elem, Dynamic: true}
}

// NewStaticArrayType builds an `array[low..high] of elem` type.
func NewStaticArrayType(elem Type, low, high int) *ArrayType {
	return &ArrayType{ElementType: elem, Dynamic: false, LowBound: low, HighBound: high}
}

func (a *ArrayType) TypeKind() string { return "ARRAY" }

func (a *ArrayType) String() string {
	elem := "<unknown>"
	if a.ElementType != nil {
		elem = a.ElementType.String()
	}
	if a.Dynamic {
		return fmt.Sprintf("array of %s", elem)
	}
	return fmt.Sprintf("array[%d..%d] of %s", a.LowBound, a.HighBound, elem)
}

func (a *ArrayType) Equals(other Type) bool {
	o, ok := other.(*ArrayType)
	if !ok {
		return false
	}
	if a.Dynamic != o.Dynamic {
		return false
	}
	if a.ElementType == nil || o.ElementType == nil {
		if a.ElementType != o.ElementType {
			return false
		}
	} else if !a.ElementType.Equals(o.ElementType) {
		return false
	}
	if !a.Dynamic {
		return a.LowBound == o.LowBound && a.HighBound == o.HighBound
	}
	return true
}

// IsDynamic reports whether a is an unbounded dynamic array.
func (a *ArrayType) IsDynamic() bool { return a.Dynamic }

// IsStatic reports whether a has fixed bounds.
func (a *ArrayType) IsStatic() bool { return !a.Dynamic }

// Size returns the number of elements in a static array, or -1 for a
// dynamic array (whose length is only known at runtime).
func (a *ArrayType) Size() int {
	if a.Dynamic {
		return -1
	}
	return a.HighBound - a.LowBound + 1
}

// SubrangeType restricts an ordinal base type to the inclusive range
// [LowBound, HighBound] (e.g. `type TDigit = 0..9;`).
type SubrangeType struct {
	BaseType  Type
	Name      string
	LowBound  int
	HighBound int
}

func (s *SubrangeType) TypeKind() string { return "SUBRANGE" }

func (s *SubrangeType) String() string {
	return fmt.Sprintf("%s(%d..%d)", s.Name, s.LowBound, s.HighBound)
}

func (s *SubrangeType) Equals(other Type) bool {
	o, ok := other.(*SubrangeType)
	if !ok {
		return false
	}
	if s.BaseType == nil || o.BaseType == nil {
		if s.BaseType != o.BaseType {
			return false
		}
	} else if !s.BaseType.Equals(o.BaseType) {
		return false
	}
	return s.LowBound == o.LowBound && s.HighBound == o.HighBound
}

// Contains reports whether value falls within the subrange, inclusive.
func (s *SubrangeType) Contains(value int) bool {
	return value >= s.LowBound && value <= s.HighBound
}

// ValidateRange reports an error if value does not fall within sub's
// bounds.
func ValidateRange(value int, sub *SubrangeType) error {
	if sub.Contains(value) {
		return nil
	}
	return fmt.Errorf("value %d out of range %d..%d", value, sub.LowBound, sub.HighBound)
}

// SetStorageKind chooses the runtime representation for a set value:
// a bitmask for small enumerations, a map for large ones.
type SetStorageKind int

const (
	SetStorageBitmask SetStorageKind = iota
	SetStorageMap
)

// setStorageThreshold is the enum cardinality above which a set falls
// back to map-based storage instead of a bitmask.
const setStorageThreshold = 64

// SetType describes `set of T`, where T is an enumeration.
type SetType struct {
	ElementType *EnumType
}

// NewSetType builds a `set of enum` type.
func NewSetType(enum *EnumType) *SetType {
	return &SetType{ElementType: enum}
}

func (s *SetType) TypeKind() string { return "SET" }

func (s *SetType) String() string {
	if s.ElementType == nil {
		return "set of <unknown>"
	}
	return fmt.Sprintf("set of %s", s.ElementType.Name)
}

func (s *SetType) Equals(other Type) bool {
	o, ok := other.(*SetType)
	if !ok {
		return false
	}
	if s.ElementType == nil || o.ElementType == nil {
		return s.ElementType == o.ElementType
	}
	return s.ElementType.Name == o.ElementType.Name
}

// StorageKind reports the storage representation chosen for this set,
// based on the cardinality of its element enumeration.
func (s *SetType) StorageKind() SetStorageKind {
	if s.ElementType == nil || len(s.ElementType.OrderedNames) <= setStorageThreshold {
		return SetStorageBitmask
	}
	return SetStorageMap
}

// EnumType describes a declared enumeration, tracking both the
// name-to-ordinal mapping and declaration order (needed for Succ/Pred
// and for..in iteration).
type EnumType struct {
	Name         string
	Values       map[string]int
	OrderedNames []string
	Scoped       bool
	Flags        bool
}

// NewEnumType builds an EnumType from a pre-computed value map and
// ordering.
func NewEnumType(name string, values map[string]int, orderedNames []string) *EnumType {
	return &EnumType{Name: name, Values: values, OrderedNames: orderedNames}
}

func (e *EnumType) TypeKind() string { return "ENUM" }
func (e *EnumType) String() string   { return e.Name }

func (e *EnumType) Equals(other Type) bool {
	o, ok := other.(*EnumType)
	if !ok {
		return false
	}
	return e.Name == o.Name
}

// GetEnumValue returns the ordinal assigned to name, or 0 if name is
// not a member of this enumeration.
func (e *EnumType) GetEnumValue(name string) int {
	return e.Values[name]
}

// GetEnumName returns the member name assigned to value, or "" if no
// member has that ordinal.
func (e *EnumType) GetEnumName(value int) string {
	for name, v := range e.Values {
		if v == value {
			return name
		}
	}
	return ""
}

// MinOrdinal returns the smallest ordinal among this enumeration's
// members.
func (e *EnumType) MinOrdinal() int {
	first := true
	min := 0
	for _, v := range e.Values {
		if first || v < min {
			min = v
			first = false
		}
	}
	return min
}

// MaxOrdinal returns the largest ordinal among this enumeration's
// members.
func (e *EnumType) MaxOrdinal() int {
	first := true
	max := 0
	for _, v := range e.Values {
		if first || v > max {
			max = v
			first = false
		}
	}
	return max
}

// ClassOfType describes a metaclass (`class of TAnimal`), the type of
// a class reference value.
type ClassOfType struct {
	ClassType *ClassType
}

// NewClassOfType builds a `class of c` type.
func NewClassOfType(c *ClassType) *ClassOfType {
	return &ClassOfType{ClassType: c}
}

func (c *ClassOfType) TypeKind() string { return "CLASSOF" }

func (c *ClassOfType) String() string {
	if c.ClassType == nil {
		return "class of <unknown>"
	}
	return fmt.Sprintf("class of %s", c.ClassType.Name)
}

func (c *ClassOfType) Equals(other Type) bool {
	o, ok := other.(*ClassOfType)
	if !ok {
		return false
	}
	if c.ClassType == nil || o.ClassType == nil {
		return c.ClassType == o.ClassType
	}
	return c.ClassType.Equals(o.ClassType)
}

// IsAssignableFrom reports whether a class reference of type other may
// be assigned to a variable of this metaclass type: other must be
// c.ClassType itself or a class derived from it, given either directly
// as a *ClassType or wrapped in a *ClassOfType.
func (c *ClassOfType) IsAssignableFrom(other Type) bool {
	if c.ClassType == nil || other == nil {
		return false
	}
	switch o := other.(type) {
	case *ClassType:
		return IsSubclassOf(o, c.ClassType)
	case *ClassOfType:
		if o.ClassType == nil {
			return false
		}
		return IsSubclassOf(o.ClassType, c.ClassType)
	default:
		return false
	}
}
