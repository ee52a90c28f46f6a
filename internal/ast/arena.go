package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena хранит узлы одного вида; индексы 1-based, 0 означает "нет узла".
type Arena[T any] struct {
	data []T
}

func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Allocate appends value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	return n
}

func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || int(index) > len(a.data) {
		return nil
	}
	return &a.data[index-1]
}

// READONLY
func (a *Arena[T]) Slice() []T {
	return a.data
}

func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.data)) // #nosec G115 -- bounded by Allocate
}

// Truncate drops the nodes allocated after the first n.
func (a *Arena[T]) Truncate(n uint32) {
	if int(n) < len(a.data) {
		clear(a.data[n:])
		a.data = a.data[:n]
	}
}

// arena — общий вид всех арен для отката Builder.
type arena interface {
	Len() uint32
	Truncate(n uint32)
}
