package pbquery_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crzwdjk/pbquery"
)

func TestCompile_SimpleField(t *testing.T) {
	plan, err := pbquery.Compile(bookDescriptor(), "title")
	require.NoError(t, err)
	require.Len(t, plan.Steps, 1)
	require.Equal(t, uint32(1), plan.Steps[0].Tag)
	require.Equal(t, pbquery.FilterNone, plan.Steps[0].Filter.Kind)
}

func TestCompile_NestedDescent(t *testing.T) {
	plan, err := pbquery.Compile(libraryDescriptor(), "books.title")
	require.NoError(t, err)
	require.Len(t, plan.Steps, 2)
	require.Equal(t, uint32(1), plan.Steps[0].Tag) // books
	require.Equal(t, uint32(1), plan.Steps[1].Tag) // title
}

// S3: books[title='Moby'].title
func TestCompile_EqualityFilterOnSibling(t *testing.T) {
	plan, err := pbquery.Compile(libraryDescriptor(), "books[title='Moby'].title")
	require.NoError(t, err)
	require.Len(t, plan.Steps, 2)

	f := plan.Steps[0].Filter
	require.Equal(t, pbquery.FilterEq, f.Kind)
	require.False(t, f.Invert)
	require.Equal(t, pbquery.ItemPath, f.Left.Kind)
	require.Equal(t, pbquery.ItemStr, f.Right.Kind)
	require.Equal(t, "Moby", string(f.Right.Str))

	// the nested path's own step must resolve against Book, not Library.
	require.Len(t, f.Left.Path.Steps, 1)
	require.Equal(t, uint32(1), f.Left.Path.Steps[0].Tag)
}

// S4: inequality.
func TestCompile_InequalityFilter(t *testing.T) {
	plan, err := pbquery.Compile(libraryDescriptor(), "books[title!='Moby'].title")
	require.NoError(t, err)
	require.True(t, plan.Steps[0].Filter.Invert)
}

// S5: @ self-reference against a scalar repeated field.
func TestCompile_AtSelfReference(t *testing.T) {
	plan, err := pbquery.Compile(msgWithTagsDescriptor(), "tags[@='x']")
	require.NoError(t, err)
	require.Len(t, plan.Steps, 1)

	f := plan.Steps[0].Filter
	require.Equal(t, pbquery.FilterEq, f.Kind)
	require.Equal(t, pbquery.ItemAt, f.Left.Kind)
	require.Equal(t, "x", string(f.Right.Str))
}

// S6: unknown field.
func TestCompile_UnknownField(t *testing.T) {
	_, err := pbquery.Compile(bookDescriptor(), "notafield")
	require.Error(t, err)

	var ce *pbquery.CompileError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, pbquery.UnknownField, ce.Kind)
	require.Equal(t, "notafield", ce.Field)
	require.Equal(t, "library.Book", ce.TypeName)
}

func TestCompile_DescendIntoScalarFails(t *testing.T) {
	_, err := pbquery.Compile(bookDescriptor(), "title.year")
	require.Error(t, err)

	var ce *pbquery.CompileError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, pbquery.TypeMismatch, ce.Kind)
}

func TestCompile_TrailingGarbage(t *testing.T) {
	_, err := pbquery.Compile(bookDescriptor(), "title extra")
	require.Error(t, err)

	var ce *pbquery.CompileError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, pbquery.TrailingGarbage, ce.Kind)
}

func TestCompile_ReservedOperatorsRejected(t *testing.T) {
	for _, q := range []string{
		`title[@=~'M.*']`,
		`title[@ in 'x']`,
	} {
		_, err := pbquery.Compile(bookDescriptor(), q)
		require.Error(t, err, q)
		var ce *pbquery.CompileError
		require.ErrorAs(t, err, &ce)
		require.Equal(t, pbquery.UnsupportedOperator, ce.Kind, q)
	}
}

func TestCompile_IndexFilterParsesButIsReservedAtEval(t *testing.T) {
	plan, err := pbquery.Compile(libraryDescriptor(), "books[2]")
	require.NoError(t, err)
	require.Equal(t, pbquery.FilterIdx, plan.Steps[0].Filter.Kind)
	require.EqualValues(t, 2, plan.Steps[0].Filter.Idx)
}

func TestCompile_StringEscapes(t *testing.T) {
	plan, err := pbquery.Compile(bookDescriptor(), `title[@='a\'b\"c\\d\ne']`)
	require.NoError(t, err)
	// \' -> ', \" -> ", \\ -> \, \n (not one of \ ' ") is taken as-is: "\n"
	require.Equal(t, `a'b"c\d\ne`, string(plan.Steps[0].Filter.Right.Str))
}

func TestCompile_NumericClassification(t *testing.T) {
	plan, err := pbquery.Compile(bookDescriptor(), "year[@=1851]")
	require.NoError(t, err)
	require.Equal(t, pbquery.ItemInt, plan.Steps[0].Filter.Right.Kind)
	require.EqualValues(t, 1851, plan.Steps[0].Filter.Right.Int)

	plan, err = pbquery.Compile(bookDescriptor(), "year[@=18.5]")
	require.NoError(t, err)
	require.Equal(t, pbquery.ItemFloat, plan.Steps[0].Filter.Right.Kind)
	require.InDelta(t, 18.5, plan.Steps[0].Filter.Right.Float, 0)

	plan, err = pbquery.Compile(bookDescriptor(), "year[@=-7]")
	require.NoError(t, err)
	require.Equal(t, pbquery.ItemInt, plan.Steps[0].Filter.Right.Kind)
	require.EqualValues(t, -7, plan.Steps[0].Filter.Right.Int)
}

func TestCompile_EqLeftMustBePathOrAt(t *testing.T) {
	_, err := pbquery.Compile(bookDescriptor(), "title['x'=title]")
	require.Error(t, err)
}

func TestCompile_NilRoot(t *testing.T) {
	_, err := pbquery.Compile(nil, "title")
	require.Error(t, err)
}

func TestCompile_NumNestedPlans(t *testing.T) {
	plan, err := pbquery.Compile(bookDescriptor(), "title")
	require.NoError(t, err)
	require.Equal(t, 1, plan.NumNestedPlans())

	// books[title='Moby'].title compiles two Plan nodes into the arena:
	// the outer plan itself, and the nested PATH item's plan rooted at
	// Book for "title" inside the bracket.
	plan, err = pbquery.Compile(libraryDescriptor(), "books[title='Moby'].title")
	require.NoError(t, err)
	require.Equal(t, 2, plan.NumNestedPlans())
}
