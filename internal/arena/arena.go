// Package arena provides a minimal, GC-safe arena for a single compiled
// [pbquery.Plan]'s tree of nested plans, items, and filters.
//
// This is a deliberately simplified sibling of the internal/arena
// package used elsewhere in this ecosystem (buf.build/go/hyperpb),
// which uses unsafe pointer arithmetic to pack pointer-free values into
// raw memory blocks so it can allocate at the same rate as a C malloc
// arena would. We do not need that: a [Plan]'s tree is built once, at
// compile time, and is small (on the order of the number of path nodes
// in a query string), so a typed, index-addressed arena backed by
// ordinary Go slices gives the same "one owner, one free, no partial
// leaks on compile failure" property without any unsafe code.
package arena

// Arena owns every node of type T reachable from a single compiled
// [pbquery.Plan]. Nodes are referred to by index (a [Ref]) rather than
// by pointer, so the whole tree can be discarded by simply dropping the
// Arena value — there is nothing to free explicitly, and a failed build
// (the caller abandons the Arena before committing it to a Plan) leaves
// nothing reachable from anywhere else.
//
// Each node lives in its own allocation, addressed through a slice of
// pointers; only that index slice ever grows and reallocates, so a *T
// handed out by [Arena.Get] stays valid for the arena's whole lifetime,
// including while more nodes are still being added to it during a
// recursive-descent parse.
type Arena[T any] struct {
	nodes []*T
}

// Ref addresses a single node within an [Arena]. [Arena.Add] hands out
// Refs in insertion order starting at 0, so the zero Ref addresses the
// first node added.
type Ref int

// New creates an empty arena with room for at least capacity nodes.
func New[T any](capacity int) *Arena[T] {
	return &Arena[T]{nodes: make([]*T, 0, capacity)}
}

// Add allocates a new node holding value and returns a [Ref] to it.
func (a *Arena[T]) Add(value T) Ref {
	p := new(T)
	*p = value
	a.nodes = append(a.nodes, p)
	return Ref(len(a.nodes) - 1)
}

// Get dereferences ref. It panics if ref was not produced by this
// Arena.
func (a *Arena[T]) Get(ref Ref) *T {
	return a.nodes[ref]
}

// Len reports the number of nodes currently held by the arena.
func (a *Arena[T]) Len() int {
	return len(a.nodes)
}
