package duplex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/eventkit/pkg/duplex"
)

func TestSingle_LatestWins(t *testing.T) {
	t.Parallel()

	primary := duplex.NewSingle[int, int]()
	secondary := primary.Secondary()

	require.True(t, primary.Emit(1))
	v, ok := secondary.Newest()
	require.True(t, ok)
	assert.Equal(t, 1, v)

	primary.Emit(2)
	primary.Emit(3)
	v, ok = secondary.Newest()
	require.True(t, ok)
	assert.Equal(t, 3, v, "later emits replace earlier ones")

	_, ok = secondary.Newest()
	assert.False(t, ok)
}

func TestSingle_Bounce(t *testing.T) {
	t.Parallel()

	primary := duplex.NewSingle[int, int]()
	secondary := primary.Secondary()

	secondary.Emit(4)
	secondary.Emit(5)
	secondary.Emit(6)

	primary.Bounce(func(n int) (int, bool) { return n + 1, true })

	v, ok := secondary.Newest()
	require.True(t, ok)
	assert.Equal(t, 7, v)
}

func TestSingle_BounceWithoutReply(t *testing.T) {
	t.Parallel()

	primary := duplex.NewSingle[int, int]()
	secondary := primary.Secondary()

	secondary.Emit(9)
	primary.Bounce(func(int) (int, bool) { return 0, false })
	_, ok := secondary.Newest()
	assert.False(t, ok, "a discarded event produces no reply")

	primary.Bounce(func(int) (int, bool) {
		t.Fatal("fn must not run with no event pending")
		return 0, false
	})
}

func TestSingle_IsEmpty(t *testing.T) {
	t.Parallel()

	primary := duplex.NewSingle[int, int]()
	secondary := primary.Secondary()

	assert.True(t, primary.IsEmpty())

	primary.Emit(1)
	assert.False(t, primary.IsEmpty())

	secondary.Newest()
	assert.True(t, primary.IsEmpty())
}
