// Package csymtab implements a schema-adapter backend: a root type is
// resolved by mangling its message name into a symbol
// ("<package>__<munged_message>__descriptor") and looking that symbol
// up in a table, the way a C dlopen'd descriptor table would resolve a
// generated symbol.
//
// Unlike internal/protoschema, this backend never loads anything
// dynamically: descriptors are registered by a caller that presumably
// ran the equivalent of codegen ahead of time. It exists so the
// name-munging rule is exercised through an actual lookup path, not
// just asserted against the bare munging function.
package csymtab

import "github.com/crzwdjk/pbquery"

// Field is a hand-populated field descriptor for use with [Message].
type Field struct {
	FieldName string
	FieldTag  uint32
	FieldKind pbquery.FieldKind
	Message   *Message // only read when FieldKind == pbquery.KindMessage
}

func (f *Field) Name() string             { return f.FieldName }
func (f *Field) Tag() uint32               { return f.FieldTag }
func (f *Field) Kind() pbquery.FieldKind   { return f.FieldKind }
func (f *Field) Nested() pbquery.MessageDescriptor {
	return f.Message
}

// Message is a hand-populated [pbquery.MessageDescriptor].
type Message struct {
	Name   string
	Fields []*Field
}

func (m *Message) FullName() string { return m.Name }

func (m *Message) FieldByName(name string) (pbquery.FieldDescriptor, bool) {
	for _, f := range m.Fields {
		if f.FieldName == name {
			return f, true
		}
	}
	return nil, false
}

// Table is a symbol table keyed by the mangled symbol name, the
// "library handle" collaborator that backs [pbquery.Registry].
type Table struct {
	symbols map[string]*Message
}

// NewTable returns an empty symbol table.
func NewTable() *Table {
	return &Table{symbols: make(map[string]*Message)}
}

// Register adds msg to the table under the symbol mangled from
// fullTypeName (a dotted, fully-qualified name such as "library.Book"),
// so that a later ResolveRoot("library.Book") finds it exactly the way
// a generated symbol table would.
func (t *Table) Register(fullTypeName string, msg *Message) {
	t.symbols[pbquery.MangleSymbol(fullTypeName)] = msg
}

// ResolveRoot implements [pbquery.Registry] using the §4.1 symbol
// mangling scheme.
func (t *Table) ResolveRoot(typeName string) (pbquery.MessageDescriptor, bool) {
	m, ok := t.symbols[pbquery.MangleSymbol(typeName)]
	if !ok {
		return nil, false
	}
	return m, true
}
