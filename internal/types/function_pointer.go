package types

import (
	"fmt"
	"strings"
)

func formatSignature(params []Type, returnType Type) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	joined := strings.Join(parts, ", ")
	if returnType == nil {
		return fmt.Sprintf("procedure(%s)", joined)
	}
	return fmt.Sprintf("function(%s): %s", joined, returnType.String())
}

func paramsEqual(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i, p := range a {
		if !p.Equals(b[i]) {
			return false
		}
	}
	return true
}

func returnTypesEqual(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equals(b)
}

// FunctionPointerType describes a plain function/procedure pointer
// (`function(...): T` or `procedure(...)`), as opposed to a method
// pointer bound to an object instance.
type FunctionPointerType struct {
	Parameters []Type
	ReturnType Type
}

// NewFunctionPointerType builds a function pointer type.
func NewFunctionPointerType(params []Type, returnType Type) *FunctionPointerType {
	return &FunctionPointerType{Parameters: params, ReturnType: returnType}
}

// NewProcedurePointerType builds a procedure pointer type (no return
// value).
func NewProcedurePointerType(params []Type) *FunctionPointerType {
	return &FunctionPointerType{Parameters: params, ReturnType: nil}
}

func (f *FunctionPointerType) TypeKind() string { return "FUNCTION_POINTER" }

func (f *FunctionPointerType) String() string {
	return formatSignature(f.Parameters, f.ReturnType)
}

func (f *FunctionPointerType) Equals(other Type) bool {
	o, ok := other.(*FunctionPointerType)
	if !ok {
		return false
	}
	return paramsEqual(f.Parameters, o.Parameters) && returnTypesEqual(f.ReturnType, o.ReturnType)
}

// IsProcedure reports whether f has no return type.
func (f *FunctionPointerType) IsProcedure() bool { return f.ReturnType == nil }

// IsFunction reports whether f returns a value.
func (f *FunctionPointerType) IsFunction() bool { return f.ReturnType != nil }

// IsCompatibleWith reports whether a value of type other may be stored
// in a variable of type f: only another function pointer with an
// identical signature qualifies. A method pointer, even with an
// identical signature, is not compatible here — binding an instance
// changes the calling convention.
func (f *FunctionPointerType) IsCompatibleWith(other Type) bool {
	o, ok := other.(*FunctionPointerType)
	if !ok {
		return false
	}
	return paramsEqual(f.Parameters, o.Parameters) && returnTypesEqual(f.ReturnType, o.ReturnType)
}

// MethodPointerType describes a method pointer (`function(...): T of
// object` or `procedure(...) of object`), bound to an object instance.
type MethodPointerType struct {
	Parameters []Type
	ReturnType Type
	OfObject   bool
}

// NewMethodPointerType builds a method pointer type.
func NewMethodPointerType(params []Type, returnType Type) *MethodPointerType {
	return &MethodPointerType{Parameters: params, ReturnType: returnType, OfObject: true}
}

func (m *MethodPointerType) TypeKind() string { return "METHOD_POINTER" }

func (m *MethodPointerType) String() string {
	return formatSignature(m.Parameters, m.ReturnType) + " of object"
}

func (m *MethodPointerType) Equals(other Type) bool {
	o, ok := other.(*MethodPointerType)
	if !ok {
		return false
	}
	return paramsEqual(m.Parameters, o.Parameters) && returnTypesEqual(m.ReturnType, o.ReturnType)
}

// IsProcedure reports whether m has no return type.
func (m *MethodPointerType) IsProcedure() bool { return m.ReturnType == nil }

// IsFunction reports whether m returns a value.
func (m *MethodPointerType) IsFunction() bool { return m.ReturnType != nil }

// IsCompatibleWith reports whether a value of type other may be stored
// in a variable of type m: another method pointer with an identical
// signature, or a plain function pointer with an identical signature
// (a method can always be called wherever a matching function is
// expected, but not vice versa).
func (m *MethodPointerType) IsCompatibleWith(other Type) bool {
	switch o := other.(type) {
	case *MethodPointerType:
		return paramsEqual(m.Parameters, o.Parameters) && returnTypesEqual(m.ReturnType, o.ReturnType)
	case *FunctionPointerType:
		return paramsEqual(m.Parameters, o.Parameters) && returnTypesEqual(m.ReturnType, o.ReturnType)
	default:
		return false
	}
}
