package pbquery

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/crzwdjk/pbquery/internal/arena"
)

// Compile parses query against root, resolving every identifier to a
// field of the appropriate descriptor as it goes, and produces a
// schema-resolved [Plan]. Compilation is all-or-nothing: on any
// structural error, Compile returns a *CompileError and no Plan.
//
// Grammar:
//
//	path     := node ('.' node)*
//	node     := ident ('[' (int | expr) ']')?
//	expr     := item op item
//	op       := '=' | '!=' | '=~' | 'in'
//	item     := path | str | int | float | '@'
func Compile(root MessageDescriptor, query string) (*Plan, error) {
	if root == nil {
		return nil, &CompileError{Kind: InvalidToken, Offset: 0, Msg: "root descriptor is nil"}
	}

	p := &parser{q: query, tree: arena.New[Plan](4)}
	steps, err := p.parsePath(root)
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.q) {
		return nil, &CompileError{
			Kind:   TrailingGarbage,
			Offset: p.pos,
			Msg:    fmt.Sprintf("unexpected trailing input: %q", p.q[p.pos:]),
		}
	}

	ref := p.tree.Add(Plan{Root: root, Steps: steps})
	plan := p.tree.Get(ref)
	plan.tree = p.tree
	return plan, nil
}

// parser holds the cursor and compile-time arena shared by a single top-
// level [Compile] call, including every nested plan produced while
// parsing PATH items inside filters.
type parser struct {
	q    string
	pos  int
	tree *arena.Arena[Plan]
}

// emptyDescriptor is the filter context used for a bracketed filter on a
// scalar field: there is no nested message to look fields up in, so any
// identifier fails to resolve, but '@' (which needs no field lookup)
// still works. This realizes spec scenario S5's "scalar-repeated case".
type emptyDescriptor struct{ scalarType string }

func (d emptyDescriptor) FullName() string { return d.scalarType }
func (d emptyDescriptor) FieldByName(string) (FieldDescriptor, bool) {
	return nil, false
}

// parsePath parses a '.'-separated sequence of nodes, starting with ctx
// as the descriptor the first node's identifier is resolved against.
func (p *parser) parsePath(ctx MessageDescriptor) ([]Step, error) {
	var steps []Step
	for {
		step, kind, nested, err := p.parseNode(ctx)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)

		if p.peekByte() != '.' {
			break
		}
		if kind != KindMessage {
			return nil, &CompileError{
				Kind:   TypeMismatch,
				Offset: p.pos,
				Msg:    "cannot descend with '.' into a scalar field",
			}
		}
		p.pos++ // consume '.'
		ctx = nested
	}
	return steps, nil
}

// parseNode parses a single `ident ('[' (int | expr) ']')?` against ctx,
// resolving ident to a field of ctx and recording its tag (never its
// name) in the resulting [Step].
func (p *parser) parseNode(ctx MessageDescriptor) (step Step, kind FieldKind, nested MessageDescriptor, err error) {
	start := p.pos
	name, err := p.parseIdent()
	if err != nil {
		return Step{}, 0, nil, err
	}

	field, ok := ctx.FieldByName(name)
	if !ok {
		return Step{}, 0, nil, &CompileError{
			Kind:     UnknownField,
			Offset:   start,
			Field:    name,
			TypeName: ctx.FullName(),
			Msg:      fmt.Sprintf("unknown field %q", name),
		}
	}

	filter := Filter{Kind: FilterNone}
	if p.peekByte() == '[' {
		p.pos++ // consume '['

		var filterCtx MessageDescriptor
		if field.Kind() == KindMessage {
			filterCtx = field.Nested()
		} else {
			filterCtx = emptyDescriptor{scalarType: field.Name()}
		}

		filter, err = p.parseFilter(filterCtx)
		if err != nil {
			return Step{}, 0, nil, err
		}
		if p.peekByte() != ']' {
			return Step{}, 0, nil, &CompileError{Kind: InvalidToken, Offset: p.pos, Msg: "expected ']'"}
		}
		p.pos++ // consume ']'
	}

	if field.Kind() == KindMessage {
		nested = field.Nested()
	}
	return Step{Tag: field.Tag(), Filter: filter}, field.Kind(), nested, nil
}

// parseFilter parses the contents of a bracketed filter (everything
// between '[' and ']'), disambiguating a bare index from a comparison
// expression by whether an operator follows the first item.
func (p *parser) parseFilter(ctx MessageDescriptor) (Filter, error) {
	item1, err := p.parseItem(ctx)
	if err != nil {
		return Filter{}, err
	}
	p.skipWS()

	switch {
	case p.peekByte() == ']':
		if item1.Kind != ItemInt {
			return Filter{}, &CompileError{Kind: InvalidToken, Offset: p.pos, Msg: "expected a comparison operator"}
		}
		return Filter{Kind: FilterIdx, Idx: item1.Int}, nil

	case p.hasPrefix("=~"):
		return Filter{}, &CompileError{
			Kind:   UnsupportedOperator,
			Offset: p.pos,
			Msg:    "regex filters ('=~') are reserved and not implemented",
		}

	case p.peekByte() == '!' && p.peekByteAt(1) == '=':
		return p.finishEq(ctx, item1, true, p.pos+2)

	case p.peekByte() == '=':
		return p.finishEq(ctx, item1, false, p.pos+1)

	case p.hasWord("in"):
		return Filter{}, &CompileError{
			Kind:   UnsupportedOperator,
			Offset: p.pos,
			Msg:    "list-membership filters ('in') are reserved and not implemented",
		}

	default:
		return Filter{}, &CompileError{Kind: InvalidToken, Offset: p.pos, Msg: "expected ']', a comparison operator, or 'in'"}
	}
}

func (p *parser) finishEq(ctx MessageDescriptor, left Item, invert bool, opEnd int) (Filter, error) {
	if left.Kind != ItemPath && left.Kind != ItemAt {
		return Filter{}, &CompileError{
			Kind:   InvalidToken,
			Offset: p.pos,
			Msg:    "the left-hand side of '=' or '!=' must be a path or '@'",
		}
	}

	p.pos = opEnd
	p.skipWS()
	right, err := p.parseItem(ctx)
	if err != nil {
		return Filter{}, err
	}
	return Filter{Kind: FilterEq, Invert: invert, Left: left, Right: right}, nil
}

// parseItem parses `path | str | int | float | '@'`.
func (p *parser) parseItem(ctx MessageDescriptor) (Item, error) {
	p.skipWS()

	switch b, ok := p.peek(); {
	case !ok:
		return Item{}, &CompileError{Kind: InvalidToken, Offset: p.pos, Msg: "unexpected end of query"}

	case b == '@':
		p.pos++
		return AtItem(), nil

	case b == '"' || b == '\'':
		return p.parseString(b)

	case isIdentStart(b):
		steps, err := p.parsePath(ctx)
		if err != nil {
			return Item{}, err
		}
		ref := p.tree.Add(Plan{Root: ctx, Steps: steps})
		return PathItem(p.tree.Get(ref)), nil

	case isDigit(b) || ((b == '+' || b == '-') && isDigit(p.peekByteAt(1))):
		return p.parseNumber()

	default:
		return Item{}, &CompileError{Kind: InvalidToken, Offset: p.pos, Msg: "expected a path, string, number, or '@'"}
	}
}

// parseIdent parses `[A-Za-z_][A-Za-z0-9_]*`.
func (p *parser) parseIdent() (string, error) {
	start := p.pos
	b, ok := p.peek()
	if !ok || !isIdentStart(b) {
		return "", &CompileError{Kind: InvalidToken, Offset: p.pos, Msg: "expected an identifier"}
	}
	p.pos++
	for {
		b, ok := p.peek()
		if !ok || !isIdentCont(b) {
			break
		}
		p.pos++
	}
	return p.q[start:p.pos], nil
}

// parseString parses a quoted string literal: a backslash followed by
// '\\', '\'', or '"' yields the second character literally; any other
// character (including a backslash not followed by one of those three)
// is taken as-is.
func (p *parser) parseString(quote byte) (Item, error) {
	start := p.pos
	p.pos++ // consume opening quote

	var out strings.Builder
	for {
		b, ok := p.peek()
		if !ok {
			return Item{}, &CompileError{Kind: InvalidToken, Offset: start, Msg: "unterminated string literal"}
		}
		if b == quote {
			p.pos++
			return StrItem([]byte(out.String())), nil
		}
		if b == '\\' {
			if next, ok := p.peekAt(1); ok && (next == '\\' || next == '\'' || next == '"') {
				out.WriteByte(next)
				p.pos += 2
				continue
			}
		}
		out.WriteByte(b)
		p.pos++
	}
}

// parseNumber classifies a numeric literal: the digit sequence is
// parsed once as an integer and once as a float; if both
// interpretations consume the same number of characters (i.e. there was
// no '.'), the literal is an INT, otherwise it is a FLOAT.
func (p *parser) parseNumber() (Item, error) {
	start := p.pos
	pos := p.pos

	if b, ok := p.byteAt(pos); ok && (b == '+' || b == '-') {
		pos++
	}
	digitsStart := pos
	for {
		b, ok := p.byteAt(pos)
		if !ok || !isDigit(b) {
			break
		}
		pos++
	}
	if pos == digitsStart {
		return Item{}, &CompileError{Kind: InvalidToken, Offset: start, Msg: "expected a number"}
	}

	intEnd := pos
	floatEnd := pos
	if b, ok := p.byteAt(pos); ok && b == '.' {
		floatEnd = pos + 1
		for {
			b, ok := p.byteAt(floatEnd)
			if !ok || !isDigit(b) {
				break
			}
			floatEnd++
		}
	}

	if intEnd == floatEnd {
		text := p.q[start:intEnd]
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Item{}, &CompileError{Kind: InvalidToken, Offset: start, Msg: "malformed integer literal: " + err.Error()}
		}
		p.pos = intEnd
		return IntItem(v), nil
	}

	text := p.q[start:floatEnd]
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Item{}, &CompileError{Kind: InvalidToken, Offset: start, Msg: "malformed float literal: " + err.Error()}
	}
	p.pos = floatEnd
	return FloatItem(v), nil
}

// --- low-level cursor helpers ---

func (p *parser) peek() (byte, bool)        { return p.byteAt(p.pos) }
func (p *parser) peekAt(off int) (byte, bool) { return p.byteAt(p.pos + off) }

func (p *parser) byteAt(i int) (byte, bool) {
	if i < 0 || i >= len(p.q) {
		return 0, false
	}
	return p.q[i], true
}

// peekByte returns the byte at the cursor, or 0 (never a valid grammar
// character) at end of input, for callers that prefer a bare-byte
// comparison over a two-value form.
func (p *parser) peekByte() byte {
	b, _ := p.peek()
	return b
}

func (p *parser) peekByteAt(off int) byte {
	b, _ := p.peekAt(off)
	return b
}

func (p *parser) hasPrefix(s string) bool {
	return strings.HasPrefix(p.q[p.pos:], s)
}

// hasWord reports whether w occurs at the cursor as a standalone word,
// i.e. not immediately followed by another identifier character (so
// "in" does not match a prefix of "index").
func (p *parser) hasWord(w string) bool {
	if !p.hasPrefix(w) {
		return false
	}
	next, ok := p.byteAt(p.pos + len(w))
	return !ok || !isIdentCont(next)
}

func (p *parser) skipWS() {
	for {
		b, ok := p.peek()
		if !ok || (b != ' ' && b != '\t' && b != '\n' && b != '\r') {
			return
		}
		p.pos++
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}
