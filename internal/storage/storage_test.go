package storage

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func pushAll(t *testing.T, s *Storage, index uint8, values ...int32) {
	t.Helper()
	for _, v := range values {
		assert.NoError(t, s.Push(index, v))
	}
}

func popAll(t *testing.T, s *Storage, index uint8, count int) []int32 {
	t.Helper()
	values := make([]int32, 0, count)
	for range count {
		v, err := s.Pop(index)
		assert.NoError(t, err)
		values = append(values, v)
	}
	return values
}

func TestDisciplineOf(t *testing.T) {
	for i := range uint8(Count) {
		expected := Stack
		switch i {
		case QueueIndex:
			expected = Queue
		case ReservedIndex:
			expected = Unsupported
		}
		assert.Equal(t, expected, DisciplineOf(i))
	}
}

func TestQueueOrder(t *testing.T) {
	s := New()
	pushAll(t, s, QueueIndex, 1, 2, 3)
	assert.Equal(t, []int32{1, 2}, popAll(t, s, QueueIndex, 2))

	n, err := s.Len(QueueIndex)
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStackOrder(t *testing.T) {
	for _, index := range []uint8{0, 1, 20, 22, 26} {
		s := New()
		pushAll(t, s, index, 1, 2, 3)
		assert.Equal(t, []int32{3, 2}, popAll(t, s, index, 2))
	}
}

func TestDuplicate(t *testing.T) {
	s := New()
	pushAll(t, s, 0, 1, 2)
	assert.NoError(t, s.Duplicate(0))
	assert.Equal(t, []int32{2, 2, 1}, popAll(t, s, 0, 3))

	pushAll(t, s, QueueIndex, 1, 2)
	assert.NoError(t, s.Duplicate(QueueIndex))
	assert.Equal(t, []int32{1, 1, 2}, popAll(t, s, QueueIndex, 3))
}

func TestSwap(t *testing.T) {
	s := New()
	pushAll(t, s, 5, 1, 2, 3)
	assert.NoError(t, s.Swap(5))
	assert.Equal(t, []int32{2, 3, 1}, popAll(t, s, 5, 3))

	pushAll(t, s, QueueIndex, 1, 2, 3)
	assert.NoError(t, s.Swap(QueueIndex))
	assert.Equal(t, []int32{2, 1, 3}, popAll(t, s, QueueIndex, 3))
}

func TestStoragesAreIndependent(t *testing.T) {
	s := New()
	pushAll(t, s, 0, 10)
	pushAll(t, s, 1, 20)

	v, err := s.Pop(0)
	assert.NoError(t, err)
	assert.Equal(t, int32(10), v)

	n, err := s.Len(1)
	assert.NoError(t, err)
	assert.Equal(t, 1, n)

	other := New()
	n, err = other.Len(1)
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestUnderflow(t *testing.T) {
	s := New()

	_, err := s.Pop(0)
	assert.True(t, errors.Is(err, ErrUnderflow))
	assert.True(t, errors.Is(s.Duplicate(0), ErrUnderflow))
	assert.True(t, errors.Is(s.Swap(QueueIndex), ErrUnderflow))

	pushAll(t, s, 0, 1)
	assert.True(t, errors.Is(s.Swap(0), ErrUnderflow))

	_, err = s.Pop(QueueIndex)
	assert.True(t, errors.Is(err, ErrUnderflow))
}

func TestReservedAndOutOfRange(t *testing.T) {
	s := New()

	tests := []struct {
		name  string
		index uint8
		err   error
	}{
		{"reserved", ReservedIndex, ErrUnsupported},
		{"first out of range", Count, ErrOutOfRange},
		{"far out of range", 255, ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(s.Push(tt.index, 1), tt.err))
			_, err := s.Pop(tt.index)
			assert.True(t, errors.Is(err, tt.err))
			assert.True(t, errors.Is(s.Duplicate(tt.index), tt.err))
			assert.True(t, errors.Is(s.Swap(tt.index), tt.err))
			_, err = s.Len(tt.index)
			assert.True(t, errors.Is(err, tt.err))
		})
	}
}
