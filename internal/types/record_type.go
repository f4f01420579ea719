package types

import "github.com/cwbudde/go-dws/internal/ident"

// RecordPropertyInfo describes a record property backed directly by a
// field, DWScript's simplified property model for records (no custom
// getter/setter methods, only field redirection).
type RecordPropertyInfo struct {
	Name       string
	Type       Type
	ReadField  string
	WriteField string
}

// ConstantInfo carries a typed constant declared inside a record.
type ConstantInfo struct {
	Name  string
	Type  Type
	Value interface{}
}

// RecordType describes a declared record: a value type with fields,
// methods, class vars/methods and constants, but no inheritance.
type RecordType struct {
	Name string

	Fields         map[string]Type
	FieldsWithInit map[string]bool

	Methods         map[string]*FunctionType
	MethodOverloads map[string][]*MethodInfo

	ClassMethods         map[string]*FunctionType
	ClassMethodOverloads map[string][]*MethodInfo

	ClassVars map[string]Type

	Properties map[string]*RecordPropertyInfo
	Constants  map[string]*ConstantInfo
}

// NewRecordType creates a RecordType with every collection initialized
// and fields seeded from the given map.
func NewRecordType(name string, fields map[string]Type) *RecordType {
	if fields == nil {
		fields = make(map[string]Type)
	}
	return &RecordType{
		Name:                 name,
		Fields:               fields,
		FieldsWithInit:       make(map[string]bool),
		Methods:              make(map[string]*FunctionType),
		MethodOverloads:      make(map[string][]*MethodInfo),
		ClassMethods:         make(map[string]*FunctionType),
		ClassMethodOverloads: make(map[string][]*MethodInfo),
		ClassVars:            make(map[string]Type),
		Properties:           make(map[string]*RecordPropertyInfo),
		Constants:            make(map[string]*ConstantInfo),
	}
}

func (r *RecordType) String() string   { return r.Name }
func (r *RecordType) TypeKind() string { return "RECORD" }

func (r *RecordType) Equals(other Type) bool {
	o, ok := other.(*RecordType)
	if !ok {
		return false
	}
	return ident.Equal(r.Name, o.Name)
}

// HasField reports whether name names a field on r.
func (r *RecordType) HasField(name string) bool {
	_, ok := r.GetField(name)
	return ok
}

// GetField resolves name to a field type.
func (r *RecordType) GetField(name string) (Type, bool) {
	for fieldName, fieldType := range r.Fields {
		if ident.Equal(fieldName, name) {
			return fieldType, true
		}
	}
	return nil, false
}

// HasMethod reports whether name names an instance method on r.
func (r *RecordType) HasMethod(name string) bool {
	_, ok := r.GetMethod(name)
	return ok
}

// GetMethod resolves name to its signature among r's instance methods.
func (r *RecordType) GetMethod(name string) (*FunctionType, bool) {
	for methodName, sig := range r.Methods {
		if ident.Equal(methodName, name) {
			return sig, true
		}
	}
	return nil, false
}

// GetMethodOverloads returns every overload registered for instance
// method name, or nil if name has none.
func (r *RecordType) GetMethodOverloads(name string) []*MethodInfo {
	return r.MethodOverloads[ident.Normalize(name)]
}

// GetClassMethodOverloads returns every overload registered for class
// method name, or nil if name has none.
func (r *RecordType) GetClassMethodOverloads(name string) []*MethodInfo {
	return r.ClassMethodOverloads[ident.Normalize(name)]
}

// HasProperty reports whether name names a property on r.
func (r *RecordType) HasProperty(name string) bool {
	_, ok := r.GetProperty(name)
	return ok
}

// GetProperty resolves name to a RecordPropertyInfo.
func (r *RecordType) GetProperty(name string) (*RecordPropertyInfo, bool) {
	for propName, prop := range r.Properties {
		if ident.Equal(propName, name) {
			return prop, true
		}
	}
	return nil, false
}
