package types

import (
	"fmt"

	"github.com/cwbudde/go-dws/internal/ident"
)

// HelperType describes a class or record helper: a bag of methods,
// properties, class vars and class consts attached to an existing
// type without modifying its declaration.
type HelperType struct {
	Name           string
	TargetType     Type
	IsRecordHelper bool

	Methods        map[string]*FunctionType
	Properties     map[string]*PropertyInfo
	ClassVars      map[string]Type
	ClassConsts    map[string]interface{}
	BuiltinMethods map[string]string
}

// NewHelperType creates a HelperType with every collection initialized.
func NewHelperType(name string, target Type, isRecordHelper bool) *HelperType {
	return &HelperType{
		Name:           name,
		TargetType:     target,
		IsRecordHelper: isRecordHelper,
		Methods:        make(map[string]*FunctionType),
		Properties:     make(map[string]*PropertyInfo),
		ClassVars:      make(map[string]Type),
		ClassConsts:    make(map[string]interface{}),
		BuiltinMethods: make(map[string]string),
	}
}

func (h *HelperType) TypeKind() string { return "HELPER" }

func (h *HelperType) String() string {
	target := "<unknown>"
	if h.TargetType != nil {
		target = h.TargetType.String()
	}
	if h.IsRecordHelper {
		return fmt.Sprintf("record helper for %s", target)
	}
	return fmt.Sprintf("helper for %s", target)
}

func (h *HelperType) Equals(other Type) bool {
	o, ok := other.(*HelperType)
	if !ok {
		return false
	}
	if h.Name != o.Name {
		return false
	}
	if h.TargetType == nil || o.TargetType == nil {
		return h.TargetType == o.TargetType
	}
	return h.TargetType.Equals(o.TargetType)
}

// targetKey builds the lookup key used to group helpers by target type.
func targetKey(t Type) string {
	if t == nil {
		return ""
	}
	return t.TypeKind() + ":" + t.String()
}

// HelperRegistry tracks every declared helper, indexed both by name and
// by the type it extends, preserving registration order so the most
// recently declared helper takes priority on conflicting members.
type HelperRegistry struct {
	byName     map[string]*HelperType
	byTarget   map[string][]*HelperType
}

// NewHelperRegistry creates an empty HelperRegistry.
func NewHelperRegistry() *HelperRegistry {
	return &HelperRegistry{
		byName:   make(map[string]*HelperType),
		byTarget: make(map[string][]*HelperType),
	}
}

// RegisterHelper adds h to the registry, failing if h is nil or a
// helper with the same name (case-insensitively) is already registered.
func (r *HelperRegistry) RegisterHelper(h *HelperType) error {
	if h == nil {
		return fmt.Errorf("cannot register nil helper")
	}
	key := ident.Normalize(h.Name)
	if _, exists := r.byName[key]; exists {
		return fmt.Errorf("helper %q already registered", h.Name)
	}
	r.byName[key] = h
	tk := targetKey(h.TargetType)
	r.byTarget[tk] = append(r.byTarget[tk], h)
	return nil
}

// GetHelperByName resolves a helper by its declared name,
// case-insensitively.
func (r *HelperRegistry) GetHelperByName(name string) (*HelperType, bool) {
	h, ok := r.byName[ident.Normalize(name)]
	return h, ok
}

// GetHelpersForType returns every helper registered against t, in
// registration order.
func (r *HelperRegistry) GetHelpersForType(t Type) []*HelperType {
	if t == nil {
		return nil
	}
	return r.byTarget[targetKey(t)]
}

// FindMethod resolves name against the helpers registered for t,
// preferring the most recently registered helper that declares it.
func (r *HelperRegistry) FindMethod(t Type, name string) (*FunctionType, *HelperType, bool) {
	helpers := r.GetHelpersForType(t)
	for i := len(helpers) - 1; i >= 0; i-- {
		for methodName, sig := range helpers[i].Methods {
			if ident.Equal(methodName, name) {
				return sig, helpers[i], true
			}
		}
	}
	return nil, nil, false
}

// FindProperty resolves name against the helpers registered for t,
// preferring the most recently registered helper that declares it.
func (r *HelperRegistry) FindProperty(t Type, name string) (*PropertyInfo, *HelperType, bool) {
	helpers := r.GetHelpersForType(t)
	for i := len(helpers) - 1; i >= 0; i-- {
		for propName, prop := range helpers[i].Properties {
			if ident.Equal(propName, name) {
				return prop, helpers[i], true
			}
		}
	}
	return nil, nil, false
}

// FindClassVar resolves name against the helpers registered for t,
// preferring the most recently registered helper that declares it.
func (r *HelperRegistry) FindClassVar(t Type, name string) (Type, *HelperType, bool) {
	helpers := r.GetHelpersForType(t)
	for i := len(helpers) - 1; i >= 0; i-- {
		for varName, varType := range helpers[i].ClassVars {
			if ident.Equal(varName, name) {
				return varType, helpers[i], true
			}
		}
	}
	return nil, nil, false
}

// FindClassConst resolves name against the helpers registered for t,
// preferring the most recently registered helper that declares it.
func (r *HelperRegistry) FindClassConst(t Type, name string) (interface{}, *HelperType, bool) {
	helpers := r.GetHelpersForType(t)
	for i := len(helpers) - 1; i >= 0; i-- {
		for constName, value := range helpers[i].ClassConsts {
			if ident.Equal(constName, name) {
				return value, helpers[i], true
			}
		}
	}
	return nil, nil, false
}

// HelperCount returns the total number of registered helpers.
func (r *HelperRegistry) HelperCount() int {
	return len(r.byName)
}

// TypeCount returns the number of distinct target types with at least
// one registered helper.
func (r *HelperRegistry) TypeCount() int {
	return len(r.byTarget)
}

// Clear resets the registry to an empty state.
func (r *HelperRegistry) Clear() {
	r.byName = make(map[string]*HelperType)
	r.byTarget = make(map[string][]*HelperType)
}
