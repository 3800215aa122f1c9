package pbquery

// ItemKind discriminates the variant held by an [Item].
type ItemKind uint8

const (
	ItemInt ItemKind = iota
	ItemFloat
	ItemStr
	ItemPath
	ItemAt
)

func (k ItemKind) String() string {
	switch k {
	case ItemInt:
		return "int"
	case ItemFloat:
		return "float"
	case ItemStr:
		return "str"
	case ItemPath:
		return "path"
	case ItemAt:
		return "at"
	default:
		return "unknown"
	}
}

// Item is one operand of a [Filter] expression: an integer, float, or
// string literal, a nested query evaluated relative to the enclosing
// submessage (PATH), or the implicit "this submessage" reference (AT).
//
// Item is a tagged union realized as a Go struct; Kind selects which of
// the payload fields is meaningful, and every consumer switches
// exhaustively over Kind rather than inspecting the payload directly.
type Item struct {
	Kind ItemKind

	Int   int64
	Float float64
	Str   []byte
	Path  *Plan // only set when Kind == ItemPath
}

// IntItem builds an [Item] holding an integer literal.
func IntItem(v int64) Item { return Item{Kind: ItemInt, Int: v} }

// FloatItem builds an [Item] holding a floating-point literal.
func FloatItem(v float64) Item { return Item{Kind: ItemFloat, Float: v} }

// StrItem builds an [Item] holding a string literal.
func StrItem(v []byte) Item { return Item{Kind: ItemStr, Str: v} }

// PathItem builds an [Item] holding a nested query plan.
func PathItem(p *Plan) Item { return Item{Kind: ItemPath, Path: p} }

// AtItem returns the implicit "this submessage" [Item].
func AtItem() Item { return Item{Kind: ItemAt} }
