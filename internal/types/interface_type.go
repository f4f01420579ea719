package types

import "github.com/cwbudde/go-dws/internal/ident"

// InterfaceType describes a declared interface: its own method set plus
// an optional single parent interface it extends.
type InterfaceType struct {
	Name         string
	Parent       *InterfaceType
	Methods      map[string]*FunctionType
	IsExternal   bool
	ExternalName string
}

// NewInterfaceType creates an InterfaceType with an initialized, empty
// method set.
func NewInterfaceType(name string) *InterfaceType {
	return &InterfaceType{
		Name:    name,
		Methods: make(map[string]*FunctionType),
	}
}

// IINTERFACE is the root interface every declared interface ultimately
// descends from, analogous to TObject for classes.
var IINTERFACE = &InterfaceType{Name: "IInterface"}

func (i *InterfaceType) String() string   { return i.Name }
func (i *InterfaceType) TypeKind() string { return "INTERFACE" }

func (i *InterfaceType) Equals(other Type) bool {
	o, ok := other.(*InterfaceType)
	if !ok {
		return false
	}
	return ident.Equal(i.Name, o.Name)
}

// AddMethod declares a method signature directly on i, overwriting any
// previous signature registered under the same name.
func (i *InterfaceType) AddMethod(name string, sig *FunctionType) {
	if i.Methods == nil {
		i.Methods = make(map[string]*FunctionType)
	}
	i.Methods[name] = sig
}

// HasMethod reports whether name is declared directly on i (not
// inherited from Parent).
func (i *InterfaceType) HasMethod(name string) bool {
	_, ok := i.GetMethod(name)
	return ok
}

// GetMethod resolves name to its signature among i's own methods only.
func (i *InterfaceType) GetMethod(name string) (*FunctionType, bool) {
	for methodName, sig := range i.Methods {
		if ident.Equal(methodName, name) {
			return sig, true
		}
	}
	return nil, false
}

// InheritsFrom reports whether i descends from other through its
// Parent chain, excluding i itself.
func (i *InterfaceType) InheritsFrom(other *InterfaceType) bool {
	if i == nil || other == nil {
		return false
	}
	for cur := i.Parent; cur != nil; cur = cur.Parent {
		if ident.Equal(cur.Name, other.Name) {
			return true
		}
	}
	return false
}

// IsSubinterfaceOf reports whether child is, or extends, parent. A nil
// operand, or either side being nil, reports false except that an
// interface is always considered a subinterface of itself.
func IsSubinterfaceOf(child, parent *InterfaceType) bool {
	if child == nil || parent == nil {
		return false
	}
	for cur := child; cur != nil; cur = cur.Parent {
		if ident.Equal(cur.Name, parent.Name) {
			return true
		}
	}
	return false
}

// GetAllInterfaceMethods returns every method declared on iface, merged
// with every method inherited from its Parent chain.
func GetAllInterfaceMethods(iface *InterfaceType) map[string]*FunctionType {
	result := make(map[string]*FunctionType)
	if iface == nil {
		return result
	}
	chain := []*InterfaceType{}
	for cur := iface; cur != nil; cur = cur.Parent {
		chain = append(chain, cur)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for name, sig := range chain[i].Methods {
			result[name] = sig
		}
	}
	return result
}

// ImplementsInterface reports whether class structurally satisfies
// iface: every method iface requires (including inherited ones) is
// present on class (including inherited methods) with a matching
// signature. It does not consult class.Interfaces at all; see
// (*ClassType).ImplementsInterface for the declaration-driven check.
func ImplementsInterface(class *ClassType, iface *InterfaceType) bool {
	if class == nil || iface == nil {
		return false
	}
	required := GetAllInterfaceMethods(iface)
	for name, sig := range required {
		classSig, ok := class.GetMethod(name)
		if !ok {
			return false
		}
		if !classSig.Equals(sig) {
			return false
		}
	}
	return true
}

// IsSubclassOf reports whether child is, or derives from, parent. An
// interface is always considered a subclass of itself.
func IsSubclassOf(child, parent *ClassType) bool {
	if child == nil || parent == nil {
		return false
	}
	for cur := child; cur != nil; cur = cur.Parent {
		if ident.Equal(cur.Name, parent.Name) {
			return true
		}
	}
	return false
}

// IsAssignableFrom reports whether a value of type source may be
// assigned to a variable of type target: exact match, Integer
// widening to Float, class-to-superclass, class-to-implemented-
// interface, and interface-to-superinterface.
func IsAssignableFrom(target, source Type) bool {
	if target == nil || source == nil {
		return false
	}
	if target.Equals(source) {
		return true
	}
	if source == INTEGER && target == FLOAT {
		return true
	}
	if targetClass, ok := target.(*ClassType); ok {
		if sourceClass, ok := source.(*ClassType); ok {
			return IsSubclassOf(sourceClass, targetClass)
		}
		return false
	}
	if targetIface, ok := target.(*InterfaceType); ok {
		if sourceClass, ok := source.(*ClassType); ok {
			return ImplementsInterface(sourceClass, targetIface)
		}
		if sourceIface, ok := source.(*InterfaceType); ok {
			return IsSubinterfaceOf(sourceIface, targetIface)
		}
		return false
	}
	return false
}
