// Package storage implements the 28 addressable stacks and queue that
// Aheui programs operate on.
package storage

import (
	"errors"
	"fmt"
	"slices"
)

const (
	// Count is the number of addressable storages.
	Count = 28
	// QueueIndex is the address of the only queue.
	QueueIndex = 21
	// ReservedIndex is the address reserved for extensions, it can not be accessed.
	ReservedIndex = 27
)

var (
	// ErrUnderflow is returned when a storage holds fewer values than an operation needs.
	ErrUnderflow = errors.New("storage underflow")
	// ErrUnsupported is returned for any access to the reserved storage.
	ErrUnsupported = errors.New("storage is not supported")
	// ErrOutOfRange is returned for addresses beyond the last storage.
	ErrOutOfRange = errors.New("storage index out of range")
)

// Discipline defines at which end a storage is accessed.
type Discipline uint8

const (
	Stack       Discipline = iota // push and pop at the tail
	Queue                         // push at the tail, pop at the head
	Unsupported                   // any access fails
)

var disciplineNames = [...]string{"stack", "queue", "unsupported"}

func (d Discipline) String() string {
	return disciplineNames[d]
}

// DisciplineOf returns the discipline of the storage at the given address.
func DisciplineOf(index uint8) Discipline {
	switch index {
	case QueueIndex:
		return Queue
	case ReservedIndex:
		return Unsupported
	default:
		return Stack
	}
}

type container struct {
	discipline Discipline
	items      []int32
}

// Storage is the set of all storages of one program execution.
// It is not safe for concurrent use.
type Storage struct {
	containers [Count]container
}

// New returns an empty storage set.
func New() *Storage {
	s := &Storage{}
	for i := range s.containers {
		s.containers[i].discipline = DisciplineOf(uint8(i))
	}
	return s
}

func (s *Storage) container(index uint8) (*container, error) {
	if index >= Count {
		return nil, fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	c := &s.containers[index]
	if c.discipline == Unsupported {
		return nil, fmt.Errorf("%w: %d", ErrUnsupported, index)
	}
	return c, nil
}

// Len returns the number of values in a storage.
func (s *Storage) Len(index uint8) (int, error) {
	c, err := s.container(index)
	if err != nil {
		return 0, err
	}
	return len(c.items), nil
}

// Push adds a value to a storage.
func (s *Storage) Push(index uint8, value int32) error {
	c, err := s.container(index)
	if err != nil {
		return err
	}
	c.items = append(c.items, value)
	return nil
}

// Pop removes and returns the front value of a storage, the most recently
// pushed value of a stack or the oldest value of the queue.
func (s *Storage) Pop(index uint8) (int32, error) {
	c, err := s.container(index)
	if err != nil {
		return 0, err
	}
	if len(c.items) == 0 {
		return 0, fmt.Errorf("%w: pop from empty %s %d", ErrUnderflow, c.discipline, index)
	}

	var value int32
	switch c.discipline {
	case Queue:
		value = c.items[0]
		c.items = slices.Delete(c.items, 0, 1)
	default:
		last := len(c.items) - 1
		value = c.items[last]
		c.items = c.items[:last]
	}
	return value, nil
}

// Duplicate copies the front value of a storage in place.
func (s *Storage) Duplicate(index uint8) error {
	c, err := s.container(index)
	if err != nil {
		return err
	}
	if len(c.items) == 0 {
		return fmt.Errorf("%w: duplicate in empty %s %d", ErrUnderflow, c.discipline, index)
	}

	switch c.discipline {
	case Queue:
		c.items = slices.Insert(c.items, 0, c.items[0])
	default:
		c.items = append(c.items, c.items[len(c.items)-1])
	}
	return nil
}

// Swap exchanges the two front values of a storage.
func (s *Storage) Swap(index uint8) error {
	c, err := s.container(index)
	if err != nil {
		return err
	}
	if len(c.items) < 2 {
		return fmt.Errorf("%w: swap in %s %d with %d values", ErrUnderflow, c.discipline, index, len(c.items))
	}

	switch c.discipline {
	case Queue:
		c.items[0], c.items[1] = c.items[1], c.items[0]
	default:
		n := len(c.items)
		c.items[n-2], c.items[n-1] = c.items[n-1], c.items[n-2]
	}
	return nil
}
