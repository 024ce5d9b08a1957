package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena stores nodes by value. IDs are 1-based so that 0 can mean "none".
type Arena[T any] struct {
	items []T
}

func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{items: make([]T, 0, capHint)}
}

// Allocate appends v and returns its ID.
func (a *Arena[T]) Allocate(v T) uint32 {
	a.items = append(a.items, v)
	return a.Len()
}

// Get returns nil for 0 and for IDs this arena never issued.
func (a *Arena[T]) Get(id uint32) *T {
	if id == 0 || uint64(id) > uint64(len(a.items)) {
		return nil
	}
	return &a.items[id-1]
}

// Slice отдаёт внутренний срез только для чтения.
func (a *Arena[T]) Slice() []T { return a.items }

func (a *Arena[T]) Len() uint32 {
	n, err := safecast.Conv[uint32](len(a.items))
	if err != nil {
		panic(fmt.Errorf("ast: arena overflow: %w", err))
	}
	return n
}
