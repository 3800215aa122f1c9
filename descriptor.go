package pbquery

import "fmt"

// FieldKind discriminates whether a field holds a scalar wire value or a
// nested message.
type FieldKind uint8

const (
	// KindScalar is any field whose wire payload is not itself a
	// tag/length/value stream (varint, fixed32, fixed64, or a
	// length-prefixed scalar such as bytes or string).
	KindScalar FieldKind = iota
	// KindMessage is a field whose wire payload is a nested,
	// length-prefixed message.
	KindMessage
)

func (k FieldKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMessage:
		return "message"
	default:
		return fmt.Sprintf("FieldKind(%d)", uint8(k))
	}
}

// FieldDescriptor is a single named, numbered field of a [MessageDescriptor].
//
// Implementations are supplied by a schema adapter (see
// internal/protoschema and internal/csymtab for the two backends carried
// by this module) and are treated by the compiler and evaluator as
// read-only.
type FieldDescriptor interface {
	// Name is the field's unique name within its enclosing message.
	Name() string
	// Tag is the field's unique wire tag number.
	Tag() uint32
	// Kind reports whether the field is a scalar or a nested message.
	Kind() FieldKind
	// Nested returns the descriptor of the field's message type.
	//
	// Its result is only meaningful when Kind() == KindMessage; callers
	// must check Kind first, exactly as the compiler does at every '.'
	// transition.
	Nested() MessageDescriptor
}

// MessageDescriptor is a read-only view over a compiled message schema,
// exposing exactly the two lookups the compiler and evaluator need: field
// resolution by name, and (transitively, via [Registry]) resolution of a
// root type by its fully-qualified name.
//
// This is the "schema adapter" of the design: the core package never
// inspects how a MessageDescriptor is produced.
type MessageDescriptor interface {
	// FullName is the dotted, fully-qualified type name, e.g.
	// "library.Book".
	FullName() string
	// FieldByName looks up a field by its source-level name, returning
	// ok == false if the message has no such field.
	FieldByName(name string) (FieldDescriptor, bool)
}

// Registry resolves a dotted, fully-qualified message type name to its
// [MessageDescriptor]. It is an opaque "library handle" collaborator
// that the core is handed, never constructs itself.
type Registry interface {
	// ResolveRoot finds the descriptor for a fully-qualified type name.
	// It returns ok == false, not an error, when the type is unknown —
	// mirroring a symbol-table miss, which is a lookup failure rather
	// than an exceptional condition.
	ResolveRoot(typeName string) (desc MessageDescriptor, ok bool)
}

// ResolveRoot resolves typeName against reg, returning a *NotFoundError
// when the type cannot be found. It exists purely as a convenience
// wrapper so callers working with errors (rather than an ok-bool) have
// one to use; reg.ResolveRoot itself remains the canonical, narrow
// collaborator interface.
func ResolveRoot(reg Registry, typeName string) (MessageDescriptor, error) {
	desc, ok := reg.ResolveRoot(typeName)
	if !ok {
		return nil, &NotFoundError{TypeName: typeName}
	}
	return desc, nil
}
