// Package protoschema adapts google.golang.org/protobuf's reflective
// descriptors (protoreflect.MessageDescriptor and FieldDescriptor) to
// the narrow schema-adapter contract the core pbquery package depends
// on: [pbquery.MessageDescriptor], [pbquery.FieldDescriptor], and
// [pbquery.Registry].
//
// This schema-loading collaborator is deliberately kept outside the
// core: the core package never imports protoreflect, so a caller who
// generates descriptors some other way (see internal/csymtab for a
// symbol-table alternative) is never forced to pull in the full
// protobuf reflection machinery.
package protoschema

import (
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"

	"github.com/crzwdjk/pbquery"
)

// Registry resolves root types against a set of protobuf file
// descriptors, the way any protoc-generated Go package registers itself
// with protoregistry.GlobalFiles on init.
type Registry struct {
	files *protoregistry.Files
}

// NewRegistry wraps files (typically protoregistry.GlobalFiles, or a
// *protoregistry.Files built from a FileDescriptorSet read off disk by
// the pbquery CLI) as a [pbquery.Registry].
func NewRegistry(files *protoregistry.Files) *Registry {
	return &Registry{files: files}
}

// ResolveRoot implements [pbquery.Registry].
func (r *Registry) ResolveRoot(typeName string) (pbquery.MessageDescriptor, bool) {
	d, err := r.files.FindDescriptorByName(protoreflect.FullName(typeName))
	if err != nil {
		return nil, false
	}
	md, ok := d.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, false
	}
	return Descriptor{md}, true
}

// Descriptor adapts a protoreflect.MessageDescriptor to
// [pbquery.MessageDescriptor].
type Descriptor struct {
	md protoreflect.MessageDescriptor
}

// Wrap adapts an already-resolved protoreflect.MessageDescriptor,
// useful for callers (such as tests) that have one in hand without
// going through a [Registry].
func Wrap(md protoreflect.MessageDescriptor) Descriptor { return Descriptor{md} }

// Unwrap returns the underlying protoreflect.MessageDescriptor, for
// callers (such as the pbquery CLI) that need richer introspection than
// the narrow [pbquery.MessageDescriptor] contract exposes, e.g. listing
// every field rather than looking one up by name.
func (d Descriptor) Unwrap() protoreflect.MessageDescriptor { return d.md }

func (d Descriptor) FullName() string { return string(d.md.FullName()) }

func (d Descriptor) FieldByName(name string) (pbquery.FieldDescriptor, bool) {
	fd := d.md.Fields().ByName(protoreflect.Name(name))
	if fd == nil {
		return nil, false
	}
	return Field{fd}, true
}

// Field adapts a protoreflect.FieldDescriptor to
// [pbquery.FieldDescriptor].
type Field struct {
	fd protoreflect.FieldDescriptor
}

func (f Field) Name() string { return string(f.fd.Name()) }
func (f Field) Tag() uint32  { return uint32(f.fd.Number()) }

func (f Field) Kind() pbquery.FieldKind {
	switch f.fd.Kind() {
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return pbquery.KindMessage
	default:
		return pbquery.KindScalar
	}
}

// Nested implements [pbquery.FieldDescriptor]. For a field that is not a
// message (or group) field it returns a Descriptor wrapping nil, whose
// methods panic when called.
func (f Field) Nested() pbquery.MessageDescriptor {
	return Descriptor{f.fd.Message()}
}
