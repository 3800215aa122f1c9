package pbquery

import (
	"errors"
	"math"

	"github.com/crzwdjk/pbquery/internal/wire"
)

// DefaultMaxDepth is the default bound on buffer-nesting recursion
// during evaluation, guarding against stack exhaustion on adversarial
// input.
const DefaultMaxDepth = 64

// EvalOption configures a single [Plan.EvaluateAll] or
// [Plan.EvaluateFirst] call, following the functional
// UnmarshalOption/MaxDepth pattern used elsewhere in this ecosystem.
type EvalOption func(*evalConfig)

type evalConfig struct {
	maxDepth int
}

// MaxDepth overrides [DefaultMaxDepth] for one evaluation call.
func MaxDepth(n int) EvalOption {
	return func(c *evalConfig) { c.maxDepth = n }
}

func newEvalConfig(opts []EvalOption) evalConfig {
	c := evalConfig{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// walkDecision is returned by the internal match callback to say
// whether find_paths should keep walking the buffer or stop
// immediately, a cooperative cancellation signal rather than an error.
type walkDecision int

const (
	walkContinue walkDecision = iota
	walkStop
)

// EvaluateAll walks buf against p and collects every match, in
// depth-first, in-buffer encounter order.
func (p *Plan) EvaluateAll(buf []byte, opts ...EvalOption) (*Result, error) {
	cfg := newEvalConfig(opts)
	result := newResult()
	_, err := findPaths(buf, p.Steps, 0, cfg.maxDepth, func(match Slice) walkDecision {
		result.add(match)
		return walkContinue
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// EvaluateFirst walks buf against p and returns the first match,
// short-circuiting the rest of the walk:
// EvaluateFirst(buf, plan) == (EvaluateAll(buf, plan).First()).
func (p *Plan) EvaluateFirst(buf []byte, opts ...EvalOption) (Slice, bool, error) {
	cfg := newEvalConfig(opts)
	var found Slice
	var ok bool
	_, err := findPaths(buf, p.Steps, 0, cfg.maxDepth, func(match Slice) walkDecision {
		found = match
		ok = true
		return walkStop
	})
	if err != nil {
		return nil, false, err
	}
	return found, ok, nil
}

// findPaths is the core traversal of the evaluator. It walks buf left
// to right; for each record whose tag matches steps[0] and whose
// filter holds, it either invokes callback (if steps is the last step)
// or recurses into the record's length-prefixed payload with steps[1:].
//
// It returns the decision the callback last returned (so a recursive
// caller knows whether to keep iterating sibling records), and an error
// for a malformed buffer, a depth overflow, or an unsupported filter.
func findPaths(buf []byte, steps []Step, depth, maxDepth int, callback func(Slice) walkDecision) (walkDecision, error) {
	if depth > maxDepth {
		return walkContinue, &RecursionLimitError{Limit: maxDepth}
	}

	offset := 0
	for offset < len(buf) {
		recordStart := offset
		tag, n, ok := wire.ReadVarint(buf[offset:])
		if !ok {
			return walkContinue, &MalformedWireError{Offset: recordStart, Msg: "truncated or overflowing tag varint"}
		}
		offset += n

		fieldNumber, wireType := wire.SplitTag(tag)

		payload, consumed, err := readPayload(buf[offset:], wireType)
		if err != nil {
			return walkContinue, &MalformedWireError{Offset: recordStart, Msg: err.Error()}
		}
		offset += consumed

		if len(steps) == 0 || fieldNumber != steps[0].Tag {
			continue
		}

		matched, err := evalFilter(payload, steps[0].Filter, maxDepth)
		if err != nil {
			return walkContinue, err
		}
		if !matched {
			continue
		}

		if len(steps) == 1 {
			decision := callback(payload)
			if decision == walkStop {
				return walkStop, nil
			}
			continue
		}

		if wireType != wire.LengthPrefixed {
			return walkContinue, &MalformedWireError{
				Offset: recordStart,
				Msg:    "cannot descend into a non-message field (wire type is not length-prefixed)",
			}
		}

		decision, err := findPaths(payload, steps[1:], depth+1, maxDepth, callback)
		if err != nil {
			return walkContinue, err
		}
		if decision == walkStop {
			return walkStop, nil
		}
	}

	return walkContinue, nil
}

// readPayload computes a record's payload slice according to its wire
// type, and reports how many bytes (beyond the tag) the whole record
// occupies.
func readPayload(buf []byte, wireType wire.Type) (payload Slice, consumed int, err error) {
	switch wireType {
	case wire.Varint:
		_, n, ok := wire.ReadVarint(buf)
		if !ok {
			return nil, 0, errMalformed("truncated or overflowing varint payload")
		}
		return buf[:n], n, nil

	case wire.Fixed32:
		if len(buf) < 4 {
			return nil, 0, errMalformed("truncated fixed32 payload")
		}
		return buf[:4], 4, nil

	case wire.Fixed64:
		if len(buf) < 8 {
			return nil, 0, errMalformed("truncated fixed64 payload")
		}
		return buf[:8], 8, nil

	case wire.LengthPrefixed:
		length, n, ok := wire.ReadVarint(buf)
		if !ok {
			return nil, 0, errMalformed("truncated or overflowing length varint")
		}
		if length > uint64(len(buf)-n) {
			return nil, 0, errMalformed("length-prefixed payload runs past end of buffer")
		}
		end := n + int(length)
		return buf[n:end], end, nil

	default:
		return nil, 0, errMalformed("unsupported or deprecated wire type " + wireType.String())
	}
}

// errMalformed is a tiny local helper so readPayload's error strings
// stay in one place; findPaths wraps the result in a *MalformedWireError
// with the correct offset.
func errMalformed(msg string) error { return errors.New(msg) }

// evalFilter evaluates filter against payload, the raw bytes of the
// record it is attached to.
func evalFilter(payload Slice, filter Filter, maxDepth int) (bool, error) {
	switch filter.Kind {
	case FilterNone:
		return true, nil

	case FilterIdx:
		// Reserved: parsed but not evaluated. A C implementation of this
		// walk would typically abort here; this reports it structurally.
		return false, &UnsupportedError{Msg: "index filters ([N]) are not evaluated"}

	case FilterEq:
		return evalEq(payload, filter, maxDepth)

	case FilterMatch:
		return false, &UnsupportedError{Msg: "regex filters (=~) are not evaluated"}

	case FilterList:
		return false, &UnsupportedError{Msg: "list-membership filters (in) are not evaluated"}

	default:
		return false, &UnsupportedError{Msg: "unknown filter kind"}
	}
}

func evalEq(payload Slice, filter Filter, maxDepth int) (bool, error) {
	left, ok, err := resolveLeft(payload, filter.Left, maxDepth)
	if err != nil {
		return false, err
	}
	if !ok {
		// An unresolved PATH left operand is an unconditional non-match,
		// not subject to invert: spec §4.3 and the C reference
		// (`pbquery.c`'s `if (!submsg.buf) return 0;`) both short-circuit
		// to false here without consulting the '!=' flag.
		return false, nil
	}

	matched, err := compare(left, filter.Right)
	if err != nil {
		return false, err
	}
	return matched != filter.Invert, nil
}

// resolveLeft computes the Left operand's byte slice: AT is the entire
// enclosing payload; PATH evaluates a nested query relative to it.
func resolveLeft(payload Slice, left Item, maxDepth int) (Slice, bool, error) {
	switch left.Kind {
	case ItemAt:
		return payload, true, nil
	case ItemPath:
		slice, found, err := left.Path.EvaluateFirst(payload, MaxDepth(maxDepth))
		if err != nil {
			return nil, false, err
		}
		return slice, found, nil
	default:
		return nil, false, &UnsupportedError{Msg: "EQ filter's left operand must be a path or '@'"}
	}
}

// compare dispatches on the Right item's kind, comparing it against the
// raw bytes in slice.
func compare(slice Slice, right Item) (bool, error) {
	switch right.Kind {
	case ItemStr:
		return len(slice) == len(right.Str) && string(slice) == string(right.Str), nil

	case ItemInt:
		n, ok := readUnsignedBySize(slice)
		if !ok {
			return false, nil
		}
		return int64(n) == right.Int, nil

	case ItemFloat:
		f, ok := readFloatBySize(slice)
		if !ok {
			return false, nil
		}
		return f == right.Float, nil

	case ItemPath, ItemAt:
		return false, &UnsupportedError{Msg: "EQ filter's right operand must be a literal"}

	default:
		return false, &UnsupportedError{Msg: "unknown item kind on right-hand side"}
	}
}

// readUnsignedBySize applies a sizing rule: only 4- and 8-byte slices
// (FIXED32/FIXED64 payloads) are decoded as numbers; a VARINT-wire left
// operand's raw bytes are not decoded here.
func readUnsignedBySize(slice Slice) (uint64, bool) {
	switch len(slice) {
	case 4:
		return uint64(wire.ReadFixed32(slice)), true
	case 8:
		return wire.ReadFixed64(slice), true
	default:
		return 0, false
	}
}

func readFloatBySize(slice Slice) (float64, bool) {
	switch len(slice) {
	case 4:
		return float64(math.Float32frombits(wire.ReadFixed32(slice))), true
	case 8:
		return math.Float64frombits(wire.ReadFixed64(slice)), true
	default:
		return 0, false
	}
}
