package types

import (
	"fmt"
	"strings"
)

// FunctionType describes the signature of a function, procedure, or
// method: its parameter types (plus optional per-parameter metadata)
// and its return type. A Void ReturnType marks a procedure.
type FunctionType struct {
	ReturnType   Type
	VariadicType Type
	Parameters   []Type
	ParamNames   []string
	DefaultValues []interface{}
	LazyParams   []bool
	VarParams    []bool
	ConstParams  []bool
	IsVariadic   bool
}

// NewFunctionType builds a FunctionType with no parameter metadata.
func NewFunctionType(params []Type, returnType Type) *FunctionType {
	return &FunctionType{
		Parameters:    params,
		ReturnType:    returnType,
		ParamNames:    make([]string, len(params)),
		DefaultValues: make([]interface{}, len(params)),
		LazyParams:    make([]bool, len(params)),
		VarParams:     make([]bool, len(params)),
		ConstParams:   make([]bool, len(params)),
	}
}

// NewProcedureType builds a FunctionType whose ReturnType is Void.
func NewProcedureType(params []Type) *FunctionType {
	return NewFunctionType(params, VOID)
}

// NewFunctionTypeWithMetadata builds a FunctionType carrying full
// per-parameter metadata, as produced by the class/function declaration
// analyzer from a parsed parameter list.
func NewFunctionTypeWithMetadata(
	params []Type, names []string, defaults []interface{},
	lazy, varParams, constParams []bool, returnType Type,
) *FunctionType {
	return &FunctionType{
		Parameters:    params,
		ParamNames:    names,
		DefaultValues: defaults,
		LazyParams:    lazy,
		VarParams:     varParams,
		ConstParams:   constParams,
		ReturnType:    returnType,
	}
}

// NewVariadicFunctionType builds a variadic FunctionType whose trailing
// parameter accepts a variable number of variadicType values.
func NewVariadicFunctionType(params []Type, variadicType, returnType Type) *FunctionType {
	ft := NewFunctionType(params, returnType)
	ft.IsVariadic = true
	ft.VariadicType = variadicType
	return ft
}

// NewVariadicFunctionTypeWithMetadata combines NewFunctionTypeWithMetadata
// and NewVariadicFunctionType.
func NewVariadicFunctionTypeWithMetadata(
	params []Type, names []string, defaults []interface{},
	lazy, varParams, constParams []bool, variadicType, returnType Type,
) *FunctionType {
	ft := NewFunctionTypeWithMetadata(params, names, defaults, lazy, varParams, constParams, returnType)
	ft.IsVariadic = true
	ft.VariadicType = variadicType
	return ft
}

func (ft *FunctionType) TypeKind() string { return "FUNCTION" }

func (ft *FunctionType) String() string {
	parts := make([]string, 0, len(ft.Parameters))
	n := len(ft.Parameters)
	if ft.IsVariadic {
		n--
	}
	for i := 0; i < n; i++ {
		parts = append(parts, ft.Parameters[i].String())
	}
	if ft.IsVariadic {
		elem := Type(nil)
		if arr, ok := ft.Parameters[len(ft.Parameters)-1].(*ArrayType); ok {
			elem = arr.ElementType
		} else if ft.VariadicType != nil {
			elem = ft.VariadicType
		}
		if elem != nil {
			parts = append(parts, fmt.Sprintf("...array of %s", elem.String()))
		}
	}
	ret := "Void"
	if ft.ReturnType != nil {
		ret = ft.ReturnType.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), ret)
}

func (ft *FunctionType) Equals(other Type) bool {
	o, ok := other.(*FunctionType)
	if !ok {
		return false
	}
	if ft.IsVariadic != o.IsVariadic {
		return false
	}
	if len(ft.Parameters) != len(o.Parameters) {
		return false
	}
	for i, p := range ft.Parameters {
		if !p.Equals(o.Parameters[i]) {
			return false
		}
	}
	if ft.ReturnType == nil || o.ReturnType == nil {
		if ft.ReturnType != o.ReturnType {
			return false
		}
	} else if !ft.ReturnType.Equals(o.ReturnType) {
		return false
	}
	if ft.IsVariadic {
		if ft.VariadicType == nil || o.VariadicType == nil {
			return ft.VariadicType == o.VariadicType
		}
		if !ft.VariadicType.Equals(o.VariadicType) {
			return false
		}
	}
	return true
}

// IsProcedure reports whether the function has no meaningful return
// value (ReturnType is Void or unset).
func (ft *FunctionType) IsProcedure() bool {
	return ft.ReturnType == nil || ft.ReturnType == VOID
}

// IsFunction reports whether the function returns a value.
func (ft *FunctionType) IsFunction() bool {
	return !ft.IsProcedure()
}
