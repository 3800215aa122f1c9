package pbquery_test

import (
	"github.com/crzwdjk/pbquery"
	"github.com/crzwdjk/pbquery/internal/csymtab"
)

// Test schemas shared across compiler_test.go and evaluate_test.go:
//
//	Book    { string title = 1; int32 year = 2; }
//	Library { repeated Book books = 1; }
//	Msg     { repeated string tags = 1; }

func bookDescriptor() *csymtab.Message {
	return &csymtab.Message{
		Name: "library.Book",
		Fields: []*csymtab.Field{
			{FieldName: "title", FieldTag: 1, FieldKind: pbquery.KindScalar},
			{FieldName: "year", FieldTag: 2, FieldKind: pbquery.KindScalar},
		},
	}
}

func libraryDescriptor() *csymtab.Message {
	book := bookDescriptor()
	return &csymtab.Message{
		Name: "library.Library",
		Fields: []*csymtab.Field{
			{FieldName: "books", FieldTag: 1, FieldKind: pbquery.KindMessage, Message: book},
		},
	}
}

func msgWithTagsDescriptor() *csymtab.Message {
	return &csymtab.Message{
		Name: "library.Msg",
		Fields: []*csymtab.Field{
			{FieldName: "tags", FieldTag: 1, FieldKind: pbquery.KindScalar},
		},
	}
}

// numericMessageDescriptor has two scalar fields with no particular wire
// type baked into the schema (the wire type comes from the encoded
// buffer, not the descriptor); used to exercise fixed32/fixed64 numeric
// comparison in evaluate_test.go.
func numericMessageDescriptor() *csymtab.Message {
	return &csymtab.Message{
		Name: "library.Numeric",
		Fields: []*csymtab.Field{
			{FieldName: "a", FieldTag: 1, FieldKind: pbquery.KindScalar},
			{FieldName: "b", FieldTag: 2, FieldKind: pbquery.KindScalar},
		},
	}
}

func testRegistry() *csymtab.Table {
	t := csymtab.NewTable()
	t.Register("library.Book", bookDescriptor())
	t.Register("library.Library", libraryDescriptor())
	t.Register("library.Msg", msgWithTagsDescriptor())
	return t
}
