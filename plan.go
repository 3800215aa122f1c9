package pbquery

import "github.com/crzwdjk/pbquery/internal/arena"

// Step is one (tag, filter) pair of a compiled [Plan]. The step at index
// i refers to a field of the descriptor reached by descending through
// steps[0:i]; the compiler guarantees that every descriptor so reached,
// other than the last, is the MESSAGE type of the field named by the
// previous step.
type Step struct {
	Tag    uint32
	Filter Filter
}

// Plan is a compiled, schema-resolved query: the root [MessageDescriptor]
// it was compiled against, plus an ordered list of [Step]s.
//
// A Plan is immutable after [Compile] returns and is safe to share
// across goroutines for concurrent, read-only [Plan.EvaluateAll] and
// [Plan.EvaluateFirst] calls (spec §5).
type Plan struct {
	Root  MessageDescriptor
	Steps []Step

	// tree owns every nested Plan reachable from this Plan's filters
	// (i.e. every Item with Kind == ItemPath, transitively). Only the
	// root Plan of a compiled query has a non-nil tree; nested Plans
	// returned by the parser point into their root's tree but do not
	// own one themselves. This mirrors spec §9's "arena + indices over
	// pointer graphs" design note: a single owner for the whole nested
	// structure, so an abandoned partial compile has exactly one thing
	// to discard.
	tree *arena.Arena[Plan]
}

// NumNestedPlans reports how many nested plans (path filters reachable
// from this Plan, transitively, including itself) this Plan's arena
// owns. The CLI's `pbquery compile` command reports this as the
// compiled plan's size.
func (p *Plan) NumNestedPlans() int {
	if p.tree == nil {
		return 0
	}
	return p.tree.Len()
}
