package utils

import (
	"log/slog"
	"sync"
)

// ResultBuffer collects results produced out of order by concurrent workers and
// hands them back in input order.
type ResultBuffer[T any] struct {
	buffer     []T
	filled     []bool
	bufferLock sync.Mutex
}

func NewResultBuffer[T any](size int) *ResultBuffer[T] {
	return &ResultBuffer[T]{
		buffer: make([]T, size),
		filled: make([]bool, size),
	}
}

// Add stores the result for the given input position. Out of range positions
// are ignored.
func (b *ResultBuffer[T]) Add(index int, item T) {
	b.bufferLock.Lock()
	defer b.bufferLock.Unlock()

	if index < 0 || index >= len(b.buffer) {
		slog.Warn("[ResultBuffer] Dropping result outside buffer range",
			slog.Int("index", index),
			slog.Int("size", len(b.buffer)))
		return
	}
	b.buffer[index] = item
	b.filled[index] = true
}

func (b *ResultBuffer[T]) Size() int {
	b.bufferLock.Lock()
	defer b.bufferLock.Unlock()
	return len(b.buffer)
}

// Filled returns how many positions have received a result.
func (b *ResultBuffer[T]) Filled() int {
	b.bufferLock.Lock()
	defer b.bufferLock.Unlock()

	n := 0
	for _, ok := range b.filled {
		if ok {
			n++
		}
	}
	return n
}

// Missing lists the positions that never received a result.
func (b *ResultBuffer[T]) Missing() []int {
	b.bufferLock.Lock()
	defer b.bufferLock.Unlock()

	var missing []int
	for i, ok := range b.filled {
		if !ok {
			missing = append(missing, i)
		}
	}
	return missing
}

// Ordered returns a copy of the results in input order. Unfilled positions
// hold the zero value of T.
func (b *ResultBuffer[T]) Ordered() []T {
	b.bufferLock.Lock()
	defer b.bufferLock.Unlock()

	return append([]T(nil), b.buffer...)
}
