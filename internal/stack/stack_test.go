package stack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStack_PushPop(t *testing.T) {
	var s Stack

	_, ok := s.Pop()
	require.False(t, ok)

	for _, b := range []byte("abc") {
		s.Push(b)
	}
	require.Equal(t, 3, s.Len())

	var got []byte
	for s.Len() > 0 {
		b, ok := s.Pop()
		require.True(t, ok)
		got = append(got, b)
	}
	require.Equal(t, []byte("cba"), got)

	_, ok = s.Pop()
	require.False(t, ok)
}

func TestStack_AppendReversed(t *testing.T) {
	s := New(4)
	for _, b := range []byte("olleh") {
		s.Push(b)
	}

	out := s.AppendReversed([]byte(">"))
	require.Equal(t, ">hello", string(out))
	require.Zero(t, s.Len())

	// storage is reused
	s.Push('x')
	require.Equal(t, "x", string(s.AppendReversed(nil)))
}

func TestStack_Reset(t *testing.T) {
	s := New(0)
	s.Push(1)
	s.Push(2)
	s.Reset()
	require.Zero(t, s.Len())
	_, ok := s.Pop()
	require.False(t, ok)
}
