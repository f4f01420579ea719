package semantic

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cwbudde/go-dws/internal/ast"
	"github.com/cwbudde/go-dws/internal/ident"
	token "github.com/cwbudde/go-dws/internal/lexer"
	"github.com/cwbudde/go-dws/internal/types"
)

// TypeDescriptor pairs a registered type with the declaration metadata
// the compiler needs to report on it later: where it was declared and
// at what visibility.
type TypeDescriptor struct {
	Name       string
	Type       types.Type
	Position   token.Position
	Visibility int
}

// TypeRegistry is the single source of truth for every type known to
// the semantic analyzer, built-in and user-declared alike. Names are
// matched case-insensitively, following DWScript identifier rules,
// while the original spelling is preserved in each descriptor for
// diagnostics.
//
// Registration order is preserved so iteration (AllTypes, AllDescriptors)
// is deterministic; a lazily rebuilt kind index makes TypesByKind cheap
// after the first call following a mutation.
type TypeRegistry struct {
	mu          sync.RWMutex
	descriptors map[string]*TypeDescriptor // normalized name -> descriptor
	order       []string                   // normalized names, in registration order

	kindIndex    map[string][]*TypeDescriptor
	kindIndexSet bool
}

// NewTypeRegistry creates an empty TypeRegistry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		descriptors: make(map[string]*TypeDescriptor),
	}
}

// Register adds a new type under name at pos with the given
// visibility. It fails if name is empty, typ is nil, or a type with
// the same normalized name is already registered.
func (r *TypeRegistry) Register(name string, typ types.Type, pos token.Position, visibility int) error {
	if name == "" {
		return fmt.Errorf("cannot register type with empty name")
	}
	if typ == nil {
		return fmt.Errorf("cannot register nil type for '%s'", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := ident.Normalize(name)
	if _, exists := r.descriptors[key]; exists {
		return fmt.Errorf("type '%s' is already registered", name)
	}

	r.descriptors[key] = &TypeDescriptor{
		Name:       name,
		Type:       typ,
		Position:   pos,
		Visibility: visibility,
	}
	r.order = append(r.order, key)
	r.invalidateKindIndexLocked()
	return nil
}

// RegisterBuiltIn registers a compiler built-in type at the zero
// position with public visibility.
func (r *TypeRegistry) RegisterBuiltIn(name string, typ types.Type) error {
	return r.Register(name, typ, token.Position{}, int(ast.VisibilityPublic))
}

// MustRegisterBuiltIn registers a built-in type, panicking if
// registration fails (duplicate name or nil type). Intended for
// bootstrapping the registry with known-good built-ins.
func (r *TypeRegistry) MustRegisterBuiltIn(name string, typ types.Type) {
	if err := r.RegisterBuiltIn(name, typ); err != nil {
		panic(err)
	}
}

// Resolve looks up the type registered under name, case-insensitively.
func (r *TypeRegistry) Resolve(name string) (types.Type, bool) {
	desc, ok := r.ResolveDescriptor(name)
	if !ok {
		return nil, false
	}
	return desc.Type, true
}

// MustResolve resolves name, panicking if it is not registered.
func (r *TypeRegistry) MustResolve(name string) types.Type {
	typ, ok := r.Resolve(name)
	if !ok {
		panic(fmt.Sprintf("type '%s' is not registered", name))
	}
	return typ
}

// ResolveDescriptor looks up the full descriptor registered under
// name, case-insensitively.
func (r *TypeRegistry) ResolveDescriptor(name string) (*TypeDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	desc, ok := r.descriptors[ident.Normalize(name)]
	return desc, ok
}

// Has reports whether name is registered, case-insensitively.
func (r *TypeRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.descriptors[ident.Normalize(name)]
	return ok
}

// Count returns the number of registered types.
func (r *TypeRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}

// AllTypes returns every registered type, keyed by its original
// (case-preserved) name.
func (r *TypeRegistry) AllTypes() map[string]types.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]types.Type, len(r.order))
	for _, key := range r.order {
		desc := r.descriptors[key]
		result[desc.Name] = desc.Type
	}
	return result
}

// AllDescriptors returns every registered descriptor, keyed by its
// original (case-preserved) name.
func (r *TypeRegistry) AllDescriptors() map[string]*TypeDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]*TypeDescriptor, len(r.order))
	for _, key := range r.order {
		desc := r.descriptors[key]
		result[desc.Name] = desc
	}
	return result
}

// invalidateKindIndexLocked marks the kind index stale. Callers must
// hold the write lock.
func (r *TypeRegistry) invalidateKindIndexLocked() {
	r.kindIndexSet = false
	r.kindIndex = nil
}

// rebuildKindIndexLocked recomputes the kind index. Callers must hold
// the write lock.
func (r *TypeRegistry) rebuildKindIndexLocked() {
	index := make(map[string][]*TypeDescriptor)
	for _, key := range r.order {
		desc := r.descriptors[key]
		kind := desc.Type.TypeKind()
		index[kind] = append(index[kind], desc)
	}
	r.kindIndex = index
	r.kindIndexSet = true
}

// TypesByKind returns every registered descriptor whose type reports
// the given TypeKind (e.g. "CLASS", "ENUM", "INTEGER").
func (r *TypeRegistry) TypesByKind(kind string) []*TypeDescriptor {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.kindIndexSet {
		r.rebuildKindIndexLocked()
	}
	return append([]*TypeDescriptor(nil), r.kindIndex[kind]...)
}

// FindTypeByPosition returns the descriptor registered at exactly pos,
// if any.
func (r *TypeRegistry) FindTypeByPosition(pos token.Position) (*TypeDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, key := range r.order {
		desc := r.descriptors[key]
		if desc.Position.Line == pos.Line && desc.Position.Column == pos.Column {
			return desc, true
		}
	}
	return nil, false
}

// TypesInRange returns every descriptor declared on a line within
// [startLine, endLine], inclusive, ordered by line.
func (r *TypeRegistry) TypesInRange(startLine, endLine int) []*TypeDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*TypeDescriptor
	for _, key := range r.order {
		desc := r.descriptors[key]
		if desc.Position.Line >= startLine && desc.Position.Line <= endLine {
			result = append(result, desc)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Position.Line < result[j].Position.Line
	})
	return result
}

// GetTypeDependencies returns the names of types that name's
// declaration directly refers to: a record or class's field types,
// a class's parent, an array's element type, or a type alias's
// aliased type. Returns nil if name is not registered.
func (r *TypeRegistry) GetTypeDependencies(name string) []string {
	desc, ok := r.ResolveDescriptor(name)
	if !ok {
		return nil
	}

	var deps []string
	switch t := desc.Type.(type) {
	case *types.ClassType:
		if t.Parent != nil {
			deps = append(deps, t.Parent.Name)
		}
		deps = append(deps, fieldTypeNames(t.Fields)...)
	case *types.RecordType:
		deps = append(deps, fieldTypeNames(t.Fields)...)
	case *types.ArrayType:
		if t.ElementType != nil {
			deps = append(deps, typeDependencyName(t.ElementType))
		}
	case *types.TypeAlias:
		if t.AliasedType != nil {
			deps = append(deps, typeDependencyName(t.AliasedType))
		}
	}
	return deps
}

// fieldTypeNames returns the dependency names for every field type in
// fields, in deterministic (sorted by field name) order.
func fieldTypeNames(fields map[string]types.Type) []string {
	if len(fields) == 0 {
		return nil
	}
	names := make([]string, 0, len(fields))
	for field := range fields {
		names = append(names, field)
	}
	sort.Strings(names)

	deps := make([]string, 0, len(fields))
	for _, field := range names {
		deps = append(deps, typeDependencyName(fields[field]))
	}
	return deps
}

// typeDependencyName returns the name used to refer to typ as a
// dependency: a named type's own name, or its String() rendering as a
// fallback for anonymous types.
func typeDependencyName(typ types.Type) string {
	switch t := typ.(type) {
	case *types.ClassType:
		return t.Name
	case *types.InterfaceType:
		return t.Name
	case *types.RecordType:
		return t.Name
	case *types.EnumType:
		return t.Name
	case *types.TypeAlias:
		return t.Name
	default:
		return typ.String()
	}
}

// ResolveUnderlying resolves name to its final, non-alias type,
// following a chain of TypeAlias indirections if necessary.
func (r *TypeRegistry) ResolveUnderlying(name string) (types.Type, bool) {
	typ, ok := r.Resolve(name)
	if !ok {
		return nil, false
	}
	for {
		alias, ok := typ.(*types.TypeAlias)
		if !ok {
			return typ, true
		}
		typ = alias.AliasedType
	}
}

// Clear removes every registered type and resets the kind index.
func (r *TypeRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.descriptors = make(map[string]*TypeDescriptor)
	r.order = nil
	r.invalidateKindIndexLocked()
}

// Unregister removes the type registered under name, case-insensitively,
// reporting whether anything was removed.
func (r *TypeRegistry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := ident.Normalize(name)
	if _, ok := r.descriptors[key]; !ok {
		return false
	}
	delete(r.descriptors, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.invalidateKindIndexLocked()
	return true
}
