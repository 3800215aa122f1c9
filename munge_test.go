package pbquery_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crzwdjk/pbquery"
)

// Name munging round-trips exactly these cases.
func TestMangleSymbol_MessageNameOnly(t *testing.T) {
	cases := []struct {
		typeName string
		want     string
	}{
		{"PkgName", "pkg_name__descriptor"},
		{"ABc", "a_bc__descriptor"},
		{"X", "x__descriptor"},
		{"myField", "my_field__descriptor"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, pbquery.MangleSymbol(c.typeName), "typeName=%q", c.typeName)
	}
}

func TestMangleSymbol_WithPackage(t *testing.T) {
	require.Equal(t, "library__book__descriptor", pbquery.MangleSymbol("library.Book"))
	require.Equal(t, "library_sub__weather_report__descriptor", pbquery.MangleSymbol("library_sub.WeatherReport"))
}
