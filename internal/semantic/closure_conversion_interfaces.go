package semantic

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-dws/internal/types"
	"github.com/google/uuid"
)

// fnInterfaceKey encodes a lambda signature's full identity — each
// parameter's and the return type's String() form — rather than just
// (argCount, hasReturn): two lambdas of the same arity but different
// real parameter or return types (e.g. fn(x:int)->int vs.
// fn(s:string)->string) must synthesize distinct interfaces, since
// neither could otherwise implement a Run whose signature matches the
// other's.
func fnInterfaceKey(params []types.Type, returnType types.Type) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	ret := "Void"
	if returnType != nil && returnType != types.VOID {
		ret = returnType.String()
	}
	return strings.Join(parts, ",") + "->" + ret
}

// FnInterfaceRegistry memoizes the synthesized Fn/FnVoid interface per
// distinct parameter/return signature, so two lambda literals sharing
// the same real signature share one interface symbol (spec.md §3's
// "interface synthesis is memoized" invariant, testable property 3),
// while two lambdas of the same arity but different real types each
// get their own interface and Run signature. Owned by PassContext
// exactly like FunctionPointers already is.
type FnInterfaceRegistry struct {
	byKey     map[string]*types.InterfaceType
	nameCount map[string]int
}

// NewFnInterfaceRegistry creates an empty registry.
func NewFnInterfaceRegistry() *FnInterfaceRegistry {
	return &FnInterfaceRegistry{
		byKey:     make(map[string]*types.InterfaceType),
		nameCount: make(map[string]int),
	}
}

// InterfaceFor returns the Fn/FnVoid interface matching the given
// lambda signature, synthesizing and memoizing it on first use. Each
// synthesized interface has exactly one method, Run, whose parameters
// are the lambda's own parameter types and whose return type matches
// (or is omitted, for FnVoid). The generated name is still FnN/FnVoidN
// by arity for readability, disambiguated with a numeric suffix the
// second and later time a distinct signature of that arity is seen.
func (r *FnInterfaceRegistry) InterfaceFor(params []types.Type, returnType types.Type) *types.InterfaceType {
	hasReturn := returnType != nil && returnType != types.VOID
	key := fnInterfaceKey(params, returnType)

	if existing, ok := r.byKey[key]; ok {
		return existing
	}

	base := fmt.Sprintf("FnVoid%d", len(params))
	if hasReturn {
		base = fmt.Sprintf("Fn%d", len(params))
	}
	name := base
	if n := r.nameCount[base]; n > 0 {
		name = fmt.Sprintf("%s_%d", base, n)
	}
	r.nameCount[base]++

	iface := types.NewInterfaceType(name)
	sig := types.NewFunctionType(params, returnType)
	iface.AddMethod("Run", sig)

	r.byKey[key] = iface
	return iface
}

// synthID stamps a debug-only, collision-free identifier on a
// synthesized class or interface, independent of its generated name —
// useful in --trace output when two synthesized classes land on the
// same generated name in different units. uuid.NewString is only ever
// consulted for this cosmetic purpose; nothing about correctness
// depends on it.
func synthID() string {
	return uuid.NewString()
}
