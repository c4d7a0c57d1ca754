package duplex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/eventkit/pkg/duplex"
)

func TestPair_EmitAndDrain(t *testing.T) {
	t.Parallel()

	primary := duplex.New[int, int]()
	secondary := primary.Secondary()

	require.True(t, primary.Emit(1))
	assert.Equal(t, []int{1}, secondary.Drain())

	primary.Emit(2)
	primary.Emit(3)
	assert.Equal(t, []int{2, 3}, secondary.Drain())
	assert.Nil(t, secondary.Drain(), "draining consumes")
}

func TestPair_Bounce(t *testing.T) {
	t.Parallel()

	primary := duplex.New[int, int]()
	secondary := primary.Secondary()

	secondary.Emit(4)
	secondary.Emit(5)
	secondary.Emit(6)

	primary.Bounce(func(n int) (int, bool) { return n + 1, true })

	assert.Equal(t, []int{5, 6, 7}, secondary.Drain())
}

func TestPair_BounceFilters(t *testing.T) {
	t.Parallel()

	primary := duplex.New[int, int]()
	secondary := primary.Secondary()

	secondary.Emit(1)
	secondary.Emit(2)
	secondary.Emit(3)
	secondary.Emit(4)

	primary.Bounce(func(n int) (int, bool) {
		if n%2 == 0 {
			return n * 10, true
		}
		return 0, false
	})

	assert.Equal(t, []int{20, 40}, secondary.Drain())
	assert.Nil(t, primary.Drain(), "bounce consumes the inbox either way")
}

func TestPair_DistinctPayloadTypes(t *testing.T) {
	t.Parallel()

	primary := duplex.New[string, int]()
	secondary := primary.Secondary()

	require.True(t, primary.Emit("hello"))
	assert.Equal(t, []string{"hello"}, secondary.Drain())

	require.True(t, secondary.Emit(42))
	n, ok := primary.Newest()
	require.True(t, ok)
	assert.Equal(t, 42, n)
}

func TestPair_NewestDropsOlder(t *testing.T) {
	t.Parallel()

	primary := duplex.New[int, int]()
	secondary := primary.Secondary()

	secondary.Emit(1)
	secondary.Emit(2)
	secondary.Emit(3)

	v, ok := primary.Newest()
	require.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = primary.Newest()
	assert.False(t, ok, "newest drops the older events too")
}

func TestPair_IsEmpty(t *testing.T) {
	t.Parallel()

	primary := duplex.New[int, int]()
	secondary := primary.Secondary()

	assert.True(t, primary.IsEmpty())

	primary.Emit(1)
	assert.False(t, primary.IsEmpty(), "the peer has not consumed the event yet")
	assert.True(t, secondary.IsEmpty(), "the other direction is independent")

	secondary.Drain()
	assert.True(t, primary.IsEmpty())
}
