package types

import (
	"fmt"

	"github.com/cwbudde/go-dws/internal/ident"
)

// MethodInfo carries one overload of a class method or constructor,
// plus the declaration metadata the analyzer needs to check overrides,
// visibility and overload resolution.
type MethodInfo struct {
	Signature            *FunctionType
	IsVirtual            bool
	IsOverride            bool
	IsAbstract            bool
	IsForwarded           bool
	IsClassMethod         bool
	HasOverloadDirective  bool
	Visibility            int
}

// ClassType describes a declared class: its field and method sets, the
// interfaces it implements, and the single-parent inheritance chain
// DWScript classes follow.
type ClassType struct {
	Name         string
	Parent       *ClassType
	Interfaces   []*InterfaceType
	IsExternal   bool
	ExternalName string
	IsForward    bool
	IsPartial    bool
	IsAbstract   bool

	Fields          map[string]Type
	FieldVisibility map[string]int
	FieldsWithInit  map[string]bool

	ClassVars          map[string]Type
	ClassVarVisibility map[string]int

	// Methods holds the resolved signature used for quick dispatch;
	// MethodOverloads holds every declared overload for a name, in
	// declaration order, with full metadata.
	Methods          map[string]*FunctionType
	MethodOverloads  map[string][]*MethodInfo
	MethodVisibility map[string]int

	VirtualMethods     map[string]bool
	OverrideMethods    map[string]bool
	AbstractMethods    map[string]bool
	ForwardedMethods   map[string]bool
	ReintroduceMethods map[string]bool
	ClassMethodFlags   map[string]bool

	Constructors         map[string]*FunctionType
	ConstructorOverloads map[string][]*MethodInfo

	Constants          map[string]interface{}
	ConstantTypes      map[string]Type
	ConstantVisibility map[string]int

	Properties map[string]*PropertyInfo

	Operators *OperatorRegistry

	// SynthID is a debug-only, collision-free identifier stamped on
	// classes synthesized by compiler passes (e.g. closure-conversion
	// environment/lambda classes), independent of Name — two
	// synthesized classes can end up with the same generated Name in
	// different units, and SynthID tells them apart in trace output.
	// Empty for ordinary, source-declared classes.
	SynthID string
}

// NewClassType creates a ClassType with every collection initialized,
// ready for a declaration pass to populate.
func NewClassType(name string, parent *ClassType) *ClassType {
	return &ClassType{
		Name:                 name,
		Parent:               parent,
		Fields:               make(map[string]Type),
		FieldVisibility:      make(map[string]int),
		FieldsWithInit:       make(map[string]bool),
		ClassVars:            make(map[string]Type),
		ClassVarVisibility:   make(map[string]int),
		Methods:              make(map[string]*FunctionType),
		MethodOverloads:      make(map[string][]*MethodInfo),
		MethodVisibility:     make(map[string]int),
		VirtualMethods:       make(map[string]bool),
		OverrideMethods:      make(map[string]bool),
		AbstractMethods:      make(map[string]bool),
		ForwardedMethods:     make(map[string]bool),
		ReintroduceMethods:   make(map[string]bool),
		ClassMethodFlags:     make(map[string]bool),
		Constructors:         make(map[string]*FunctionType),
		ConstructorOverloads: make(map[string][]*MethodInfo),
		Constants:            make(map[string]interface{}),
		ConstantTypes:        make(map[string]Type),
		ConstantVisibility:   make(map[string]int),
		Properties:           make(map[string]*PropertyInfo),
		Operators:            NewOperatorRegistry(),
	}
}

func (c *ClassType) String() string {
	if c.Parent != nil {
		return fmt.Sprintf("%s(%s)", c.Name, c.Parent.Name)
	}
	return c.Name
}

func (c *ClassType) TypeKind() string { return "CLASS" }

func (c *ClassType) Equals(other Type) bool {
	o, ok := other.(*ClassType)
	if !ok {
		return false
	}
	return c.Name == o.Name
}

// AddField declares a new instance field on c with the given type and
// visibility, returning a FieldInfo handle that callers (closure
// conversion's environment synthesis, in particular) can stash on
// their own bookkeeping to refer back to the declared field.
func (c *ClassType) AddField(name string, typ Type, visibility int) *FieldInfo {
	if c.Fields == nil {
		c.Fields = make(map[string]Type)
	}
	if c.FieldVisibility == nil {
		c.FieldVisibility = make(map[string]int)
	}
	c.Fields[name] = typ
	c.FieldVisibility[name] = visibility
	return &FieldInfo{Name: name, Type: typ, Owner: c, Visibility: visibility}
}

// HasField reports whether name names a field on c or any ancestor.
func (c *ClassType) HasField(name string) bool {
	_, ok := c.GetField(name)
	return ok
}

// GetField resolves name to a field type, walking the inheritance
// chain if the field is not declared directly on c.
func (c *ClassType) GetField(name string) (Type, bool) {
	for cur := c; cur != nil; cur = cur.Parent {
		for fieldName, fieldType := range cur.Fields {
			if ident.Equal(fieldName, name) {
				return fieldType, true
			}
		}
	}
	return nil, false
}

// HasMethod reports whether name names a method on c or any ancestor.
func (c *ClassType) HasMethod(name string) bool {
	_, ok := c.GetMethod(name)
	return ok
}

// GetMethod resolves name to its signature, walking the inheritance
// chain if the method is not declared directly on c.
func (c *ClassType) GetMethod(name string) (*FunctionType, bool) {
	for cur := c; cur != nil; cur = cur.Parent {
		for methodName, sig := range cur.Methods {
			if ident.Equal(methodName, name) {
				return sig, true
			}
		}
	}
	return nil, false
}

// AddMethodOverload registers one overload of method name, keeping the
// resolved Methods map pointed at the most recently added overload.
func (c *ClassType) AddMethodOverload(name string, info *MethodInfo) {
	key := ident.Normalize(name)
	c.MethodOverloads[key] = append(c.MethodOverloads[key], info)
	c.Methods[name] = info.Signature
}

// GetMethodOverloads returns every overload registered for name, or nil
// if name has none.
func (c *ClassType) GetMethodOverloads(name string) []*MethodInfo {
	return c.MethodOverloads[ident.Normalize(name)]
}

// AddConstructorOverload registers one overload of constructor name.
func (c *ClassType) AddConstructorOverload(name string, info *MethodInfo) {
	key := ident.Normalize(name)
	c.ConstructorOverloads[key] = append(c.ConstructorOverloads[key], info)
	c.Constructors[key] = info.Signature
}

// GetConstructorOverloads returns every overload registered for
// constructor name, or nil if name has none.
func (c *ClassType) GetConstructorOverloads(name string) []*MethodInfo {
	return c.ConstructorOverloads[ident.Normalize(name)]
}

// HasConstructor reports whether name names a constructor on c or any
// ancestor.
func (c *ClassType) HasConstructor(name string) bool {
	if c == nil {
		return false
	}
	key := ident.Normalize(name)
	for cur := c; cur != nil; cur = cur.Parent {
		if _, ok := cur.Constructors[key]; ok {
			return true
		}
	}
	return false
}

// HasProperty reports whether name names a property on c or any
// ancestor.
func (c *ClassType) HasProperty(name string) bool {
	_, ok := c.GetProperty(name)
	return ok
}

// GetProperty resolves name to a PropertyInfo, walking the inheritance
// chain if the property is not declared directly on c.
func (c *ClassType) GetProperty(name string) (*PropertyInfo, bool) {
	for cur := c; cur != nil; cur = cur.Parent {
		for propName, prop := range cur.Properties {
			if ident.Equal(propName, name) {
				return prop, true
			}
		}
	}
	return nil, false
}

// HasConstant reports whether name names a constant on c or any
// ancestor.
func (c *ClassType) HasConstant(name string) bool {
	if c == nil {
		return false
	}
	_, ok := c.GetConstant(name)
	return ok
}

// GetConstant resolves name to its value, walking the inheritance chain
// if the constant is not declared directly on c.
func (c *ClassType) GetConstant(name string) (interface{}, bool) {
	if c == nil {
		return nil, false
	}
	for cur := c; cur != nil; cur = cur.Parent {
		for constName, value := range cur.Constants {
			if ident.Equal(constName, name) {
				return value, true
			}
		}
	}
	return nil, false
}

// RegisterOperator registers a class operator overload (e.g. `operator
// +(a, b: TVector): TVector`) on this class.
func (c *ClassType) RegisterOperator(sig *OperatorSignature) error {
	if c.Operators == nil {
		c.Operators = NewOperatorRegistry()
	}
	return c.Operators.Register(sig)
}

// LookupOperator resolves an operator overload declared on c or
// inherited from a parent class.
func (c *ClassType) LookupOperator(op string, operandTypes []Type) (*OperatorSignature, bool) {
	if c == nil {
		return nil, false
	}
	for cur := c; cur != nil; cur = cur.Parent {
		if cur.Operators == nil {
			continue
		}
		if sig, ok := cur.Operators.Lookup(op, operandTypes); ok {
			return sig, true
		}
	}
	return nil, false
}

// ImplementsInterface reports whether iface (or an interface iface
// inherits from) appears in the Interfaces list declared on c or any
// ancestor. This is the declaration-driven check used once a class's
// `implements` clause has been resolved; ImplementsInterface (the
// package function) performs the structural check used before that.
func (c *ClassType) ImplementsInterface(iface *InterfaceType) bool {
	if c == nil || iface == nil {
		return false
	}
	for cur := c; cur != nil; cur = cur.Parent {
		for _, declared := range cur.Interfaces {
			if IsSubinterfaceOf(declared, iface) {
				return true
			}
		}
	}
	return false
}
