package undo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogIsLIFO(t *testing.T) {
	l := NewLog(5)
	for i := 0; i < 3; i++ {
		l.Push(Entry{FloorIdx: i})
	}
	require.Equal(t, 3, l.Len())

	top, ok := l.Peek()
	require.True(t, ok)
	assert.Equal(t, 2, top.FloorIdx)

	for want := 2; want >= 0; want-- {
		e, ok := l.Pop()
		require.True(t, ok)
		assert.Equal(t, want, e.FloorIdx)
	}

	_, ok = l.Pop()
	assert.False(t, ok)
	assert.Equal(t, 0, l.Len())
}

func TestLogOverflowDropsOldest(t *testing.T) {
	l := NewLog(3)
	for i := 0; i < 7; i++ {
		l.Push(Entry{FloorIdx: i})
	}
	assert.Equal(t, 3, l.Len())

	var got []int
	for {
		e, ok := l.Pop()
		if !ok {
			break
		}
		got = append(got, e.FloorIdx)
	}
	assert.Equal(t, []int{6, 5, 4}, got)
}

func TestLogPushAfterPopWraps(t *testing.T) {
	l := NewLog(2)
	l.Push(Entry{FloorIdx: 1})
	l.Push(Entry{FloorIdx: 2})
	l.Pop()
	l.Push(Entry{FloorIdx: 3})
	l.Push(Entry{FloorIdx: 4})

	e, _ := l.Pop()
	assert.Equal(t, 4, e.FloorIdx)
	e, _ = l.Pop()
	assert.Equal(t, 3, e.FloorIdx)
	_, ok := l.Pop()
	assert.False(t, ok)
}

func TestLogClear(t *testing.T) {
	l := NewLog(0)
	assert.Equal(t, DefaultCapacity, l.Cap())

	l.Push(Entry{})
	l.Clear()
	assert.Equal(t, 0, l.Len())
	_, ok := l.Peek()
	assert.False(t, ok)
}
