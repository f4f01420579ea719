package types

// FieldInfo identifies a single declared instance field on a class,
// independent of the class's Fields map representation. Closure
// conversion stashes one of these on each captured Definition and
// Copy once it has materialized the environment field that stores it,
// so later sweeps can emit a member access without re-resolving the
// field by name.
type FieldInfo struct {
	Name       string
	Type       Type
	Owner      *ClassType
	Visibility int
}
