package types

// PropAccessKind classifies how a property's read or write accessor is
// implemented.
type PropAccessKind int

const (
	PropAccessNone PropAccessKind = iota
	PropAccessField
	PropAccessMethod
	PropAccessExpression
)

// PropertyInfo describes a declared class property, including its
// read/write accessors and whether it is indexed or the class default.
type PropertyInfo struct {
	Name string
	Type Type

	ReadKind PropAccessKind
	ReadSpec string

	WriteKind PropAccessKind
	WriteSpec string

	IsIndexed bool
	IsDefault bool
}
