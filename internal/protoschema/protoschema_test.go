package protoschema_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/crzwdjk/pbquery"
	"github.com/crzwdjk/pbquery/internal/protoschema"
)

// buildTestFiles constructs a small in-memory file descriptor set
// (package library, messages Book and Library) without depending on any
// generated _pb.go code, and registers it into a fresh
// *protoregistry.Files.
func buildTestFiles(t *testing.T) *protoregistry.Files {
	t.Helper()

	optional := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum()
	repeated := descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	typeString := descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum()
	typeInt32 := descriptorpb.FieldDescriptorProto_TYPE_INT32.Enum()
	typeMessage := descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum()

	fdProto := &descriptorpb.FileDescriptorProto{
		Name:    strPtr("library.proto"),
		Package: strPtr("library"),
		Syntax:  strPtr("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: strPtr("Book"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{Name: strPtr("title"), Number: int32Ptr(1), Label: optional, Type: typeString},
					{Name: strPtr("year"), Number: int32Ptr(2), Label: optional, Type: typeInt32},
				},
			},
			{
				Name: strPtr("Library"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{
						Name:     strPtr("books"),
						Number:   int32Ptr(1),
						Label:    repeated,
						Type:     typeMessage,
						TypeName: strPtr(".library.Book"),
					},
				},
			},
		},
	}

	fd, err := protodesc.NewFile(fdProto, nil)
	require.NoError(t, err)

	files := new(protoregistry.Files)
	require.NoError(t, files.RegisterFile(fd))
	return files
}

func strPtr(s string) *string { return &s }
func int32Ptr(n int32) *int32 { return &n }

func TestRegistry_ResolveRoot(t *testing.T) {
	reg := protoschema.NewRegistry(buildTestFiles(t))

	book, ok := reg.ResolveRoot("library.Book")
	require.True(t, ok)
	require.Equal(t, "library.Book", book.FullName())

	_, ok = reg.ResolveRoot("library.NoSuchType")
	require.False(t, ok)
}

func TestRegistry_ResolveRootRejectsNonMessage(t *testing.T) {
	reg := protoschema.NewRegistry(buildTestFiles(t))

	// "library" itself names a package, not a message.
	_, ok := reg.ResolveRoot("library")
	require.False(t, ok)
}

func TestDescriptor_FieldByName(t *testing.T) {
	reg := protoschema.NewRegistry(buildTestFiles(t))

	book, ok := reg.ResolveRoot("library.Book")
	require.True(t, ok)

	title, ok := book.FieldByName("title")
	require.True(t, ok)
	require.Equal(t, "title", title.Name())
	require.EqualValues(t, 1, title.Tag())
	require.Equal(t, pbquery.KindScalar, title.Kind())

	_, ok = book.FieldByName("nope")
	require.False(t, ok)
}

func TestDescriptor_NestedMessageField(t *testing.T) {
	reg := protoschema.NewRegistry(buildTestFiles(t))

	library, ok := reg.ResolveRoot("library.Library")
	require.True(t, ok)

	books, ok := library.FieldByName("books")
	require.True(t, ok)
	require.Equal(t, pbquery.KindMessage, books.Kind())
	require.EqualValues(t, 1, books.Tag())

	nested := books.Nested()
	require.Equal(t, "library.Book", nested.FullName())

	year, ok := nested.FieldByName("year")
	require.True(t, ok)
	require.EqualValues(t, 2, year.Tag())
	require.Equal(t, pbquery.KindScalar, year.Kind())
}

func TestCompile_AgainstProtoschemaDescriptor(t *testing.T) {
	reg := protoschema.NewRegistry(buildTestFiles(t))
	library, ok := reg.ResolveRoot("library.Library")
	require.True(t, ok)

	plan, err := pbquery.Compile(library, "books.title")
	require.NoError(t, err)
	require.Len(t, plan.Steps, 2)
}
