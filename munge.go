package pbquery

import (
	"strings"
	"unicode"
)

// MangleSymbol implements a root-type symbol naming scheme: it splits
// typeName at its last '.', munges the message-name portion, and
// composes the symbol a generated symbol table would expose for it:
// "<package>__<munged_message>__descriptor".
//
// It is used by the csymtab registry backend (internal/csymtab) to look
// up a descriptor the way a dlsym-style symbol table does. It is
// exported here, rather than buried in that backend, because the
// munging algorithm itself — not the table lookup around it — is the
// part that must round-trip exactly.
func MangleSymbol(typeName string) string {
	pkg, message := splitTypeName(typeName)
	munged := mungeMessageName(message)
	if pkg == "" {
		return munged + "__descriptor"
	}
	return pkg + "__" + munged + "__descriptor"
}

// splitTypeName splits a dotted type name at its last '.', returning the
// package portion (possibly empty) and the message-name portion.
func splitTypeName(typeName string) (pkg, message string) {
	i := strings.LastIndex(typeName, ".")
	if i < 0 {
		return "", typeName
	}
	return typeName[:i], typeName[i+1:]
}

// mungeMessageName applies the munging algorithm to a single
// message-name component: lower-case the first character, then for every
// subsequent character emit '_' followed by its lower-case form if it is
// upper-case, or the character itself otherwise.
//
// This is deliberately not delegated to a generic strcase library: the
// algorithm has exact, tested edge-case behavior (e.g. "ABc" -> "a_bc",
// not "ab_c" or "a_b_c") that general-purpose snake_case conversions do
// not all agree on for runs of consecutive upper-case letters.
func mungeMessageName(message string) string {
	if message == "" {
		return ""
	}

	var out strings.Builder
	out.Grow(len(message) + 4)

	runes := []rune(message)
	out.WriteRune(unicode.ToLower(runes[0]))
	for _, c := range runes[1:] {
		if unicode.IsUpper(c) {
			out.WriteByte('_')
			out.WriteRune(unicode.ToLower(c))
		} else {
			out.WriteRune(c)
		}
	}
	return out.String()
}
