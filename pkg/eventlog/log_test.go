package eventlog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/eventkit/pkg/eventlog"
)

func TestLog_Emit(t *testing.T) {
	t.Parallel()

	t.Run("dropped with no listeners", func(t *testing.T) {
		t.Parallel()

		log := eventlog.New[int]()

		assert.False(t, log.Emit(1))
		assert.True(t, log.IsEmpty())
	})

	t.Run("retained with a listener", func(t *testing.T) {
		t.Parallel()

		log := eventlog.New[int]()
		log.Register()

		assert.True(t, log.Emit(1))
		assert.Equal(t, 1, log.Len())
	})

	t.Run("listener sees only events emitted after registration", func(t *testing.T) {
		t.Parallel()

		log := eventlog.New[int]()
		earlier := log.Register()
		log.Emit(1)

		later := log.Register()
		log.Emit(2)

		var got []int
		require.NoError(t, log.Pull(later, func(events []int) {
			got = append(got, events...)
		}))
		assert.Equal(t, []int{2}, got)

		got = nil
		require.NoError(t, log.Pull(earlier, func(events []int) {
			got = append(got, events...)
		}))
		assert.Equal(t, []int{1, 2}, got)
	})
}

func TestLog_Pull(t *testing.T) {
	t.Parallel()

	t.Run("delivers in order exactly once", func(t *testing.T) {
		t.Parallel()

		log := eventlog.New[int]()
		key := log.Register()
		log.Emit(1)
		log.Emit(2)
		log.Emit(3)

		var got []int
		require.NoError(t, log.Pull(key, func(events []int) {
			got = append(got, events...)
		}))
		assert.Equal(t, []int{1, 2, 3}, got)

		require.NoError(t, log.Pull(key, func(events []int) {
			assert.Empty(t, events)
		}))
	})

	t.Run("unknown key is rejected", func(t *testing.T) {
		t.Parallel()

		log := eventlog.New[int]()

		err := log.Pull(eventlog.ListenerKey{}, func([]int) {})
		assert.ErrorIs(t, err, eventlog.ErrUnknownListener)
	})

	t.Run("unregistered key is rejected", func(t *testing.T) {
		t.Parallel()

		log := eventlog.New[int]()
		key := log.Register()
		log.Unregister(key)

		err := log.Pull(key, func([]int) {})
		assert.ErrorIs(t, err, eventlog.ErrUnknownListener)
	})

	t.Run("cursors advance independently", func(t *testing.T) {
		t.Parallel()

		log := eventlog.New[string]()
		first := log.Register()
		second := log.Register()
		log.Emit("a")
		log.Emit("b")

		var got []string
		require.NoError(t, log.Pull(first, func(events []string) {
			got = append(got, events...)
		}))
		assert.Equal(t, []string{"a", "b"}, got)

		got = nil
		require.NoError(t, log.Pull(second, func(events []string) {
			got = append(got, events...)
		}))
		assert.Equal(t, []string{"a", "b"}, got)
	})

	t.Run("panicking callback still advances and collects", func(t *testing.T) {
		t.Parallel()

		log := eventlog.New[int]()
		key := log.Register()
		log.Emit(1)
		log.Emit(2)

		assert.Panics(t, func() {
			_ = log.Pull(key, func([]int) { panic("consumer failure") })
		})

		assert.True(t, log.IsEmpty())
		require.NoError(t, log.Pull(key, func(events []int) {
			assert.Empty(t, events)
		}))
	})
}

func TestLog_Collect(t *testing.T) {
	t.Parallel()

	t.Run("buffer held until slowest listener catches up", func(t *testing.T) {
		t.Parallel()

		log := eventlog.New[int]()
		fast := log.Register()
		slow := log.Register()
		log.Emit(1)
		log.Emit(2)
		log.Emit(3)

		require.NoError(t, log.Pull(fast, func([]int) {}))
		assert.Equal(t, 3, log.Len())

		require.NoError(t, log.Pull(slow, func(events []int) {
			assert.Len(t, events, 3)
		}))
		assert.True(t, log.IsEmpty())
	})

	t.Run("unregister releases events only that listener held", func(t *testing.T) {
		t.Parallel()

		log := eventlog.New[int]()
		fast := log.Register()
		slow := log.Register()
		log.Emit(1)
		log.Emit(2)

		require.NoError(t, log.Pull(fast, func([]int) {}))
		assert.Equal(t, 2, log.Len())

		log.Unregister(slow)
		assert.True(t, log.IsEmpty())
	})

	t.Run("unregistering the last listener drops the buffer", func(t *testing.T) {
		t.Parallel()

		log := eventlog.New[int]()
		key := log.Register()
		log.Emit(1)
		log.Emit(2)
		require.Equal(t, 2, log.Len())

		log.Unregister(key)
		assert.True(t, log.IsEmpty())
	})

	t.Run("delivery resumes after buffer was drained", func(t *testing.T) {
		t.Parallel()

		log := eventlog.New[int]()
		key := log.Register()
		log.Emit(1)
		require.NoError(t, log.Pull(key, func([]int) {}))
		require.True(t, log.IsEmpty())

		for i := range 10 {
			log.Emit(i)
		}
		assert.Equal(t, 10, log.Len())

		var got []int
		require.NoError(t, log.Pull(key, func(events []int) {
			got = append(got, events...)
		}))
		assert.Len(t, got, 10)
		assert.True(t, log.IsEmpty())
	})
}

func TestLog_PeekAdvance(t *testing.T) {
	t.Parallel()

	t.Run("peek does not consume", func(t *testing.T) {
		t.Parallel()

		log := eventlog.New[int]()
		key := log.Register()
		log.Emit(7)

		ev, ok := log.Peek(key)
		require.True(t, ok)
		assert.Equal(t, 7, ev)

		ev, ok = log.Peek(key)
		require.True(t, ok)
		assert.Equal(t, 7, ev)
		assert.Equal(t, 1, log.Len())
	})

	t.Run("advance consumes one event at a time", func(t *testing.T) {
		t.Parallel()

		log := eventlog.New[int]()
		key := log.Register()
		log.Emit(1)
		log.Emit(2)
		log.Emit(3)

		log.Advance(key)
		assert.Equal(t, 2, log.Len())

		ev, ok := log.Peek(key)
		require.True(t, ok)
		assert.Equal(t, 2, ev)

		log.Advance(key)
		log.Advance(key)
		assert.True(t, log.IsEmpty())
	})

	t.Run("peek on a caught-up listener reports nothing", func(t *testing.T) {
		t.Parallel()

		log := eventlog.New[int]()
		key := log.Register()

		_, ok := log.Peek(key)
		assert.False(t, ok)
	})

	t.Run("advance on a caught-up listener is a no-op", func(t *testing.T) {
		t.Parallel()

		log := eventlog.New[int]()
		key := log.Register()
		log.Emit(1)
		log.Advance(key)

		log.Advance(key)

		log.Emit(2)
		ev, ok := log.Peek(key)
		require.True(t, ok)
		assert.Equal(t, 2, ev)
	})

	t.Run("only the trailing listener triggers a trim", func(t *testing.T) {
		t.Parallel()

		log := eventlog.New[int]()
		ahead := log.Register()
		behind := log.Register()
		log.Emit(1)
		log.Emit(2)

		require.NoError(t, log.Pull(ahead, func([]int) {}))
		assert.Equal(t, 2, log.Len())

		log.Advance(behind)
		assert.Equal(t, 1, log.Len())

		log.Advance(behind)
		assert.True(t, log.IsEmpty())
	})
}

func TestLog_EmitBatch(t *testing.T) {
	t.Parallel()

	t.Run("appends the whole batch in order", func(t *testing.T) {
		t.Parallel()

		log := eventlog.New[int]()
		key := log.Register()

		assert.True(t, log.EmitBatch(1, 2, 3))

		var got []int
		require.NoError(t, log.Pull(key, func(events []int) {
			got = append(got, events...)
		}))
		assert.Equal(t, []int{1, 2, 3}, got)
	})

	t.Run("dropped with no listeners", func(t *testing.T) {
		t.Parallel()

		log := eventlog.New[int]()

		assert.False(t, log.EmitBatch(1, 2, 3))
		assert.True(t, log.IsEmpty())
	})

	t.Run("empty batch is still delivered", func(t *testing.T) {
		t.Parallel()

		log := eventlog.New[int]()
		log.Register()

		assert.True(t, log.EmitBatch())
		assert.True(t, log.IsEmpty())
	})
}

func TestLog_KeyReuse(t *testing.T) {
	t.Parallel()

	t.Run("stale key cannot touch the slot's new tenant", func(t *testing.T) {
		t.Parallel()

		log := eventlog.New[int]()
		stale := log.Register()
		log.Unregister(stale)

		fresh := log.Register()
		log.Emit(42)

		assert.ErrorIs(t, log.Pull(stale, func([]int) {}), eventlog.ErrUnknownListener)

		var got []int
		require.NoError(t, log.Pull(fresh, func(events []int) {
			got = append(got, events...)
		}))
		assert.Equal(t, []int{42}, got)
	})

	t.Run("double unregister is harmless", func(t *testing.T) {
		t.Parallel()

		log := eventlog.New[int]()
		stale := log.Register()
		log.Unregister(stale)

		fresh := log.Register()
		log.Emit(1)

		log.Unregister(stale)

		assert.Equal(t, 1, log.Listeners())
		assert.Equal(t, 1, log.Len())
		_ = fresh
	})
}
