package arena_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crzwdjk/pbquery/internal/arena"
)

func TestArena_AddAndGet(t *testing.T) {
	a := arena.New[int](0)
	r1 := a.Add(10)
	r2 := a.Add(20)

	require.Equal(t, 10, *a.Get(r1))
	require.Equal(t, 20, *a.Get(r2))
	require.Equal(t, 2, a.Len())
}

// Pointers handed out by Get must stay valid even as more nodes are
// added afterward, the way a nested Plan built mid-parse must remain
// valid while parsing continues and adds siblings to the same arena.
func TestArena_PointerStabilityAcrossAdds(t *testing.T) {
	type node struct{ val int }

	a := arena.New[node](1)
	r1 := a.Add(node{val: 1})
	p1 := a.Get(r1)

	for i := 0; i < 64; i++ {
		a.Add(node{val: i + 2})
	}

	require.Equal(t, 1, p1.val, "pointer obtained before growth must still see the original value")
	require.Equal(t, 65, a.Len())
}

func TestArena_MutationThroughPointerIsVisible(t *testing.T) {
	type node struct{ val int }

	a := arena.New[node](0)
	r := a.Add(node{val: 1})
	a.Get(r).val = 42

	require.Equal(t, 42, a.Get(r).val)
}

func TestArena_EmptyLen(t *testing.T) {
	a := arena.New[int](4)
	require.Equal(t, 0, a.Len())
}
