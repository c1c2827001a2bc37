// Package batch splits update lists into chunks that fit marketplace payload limits.
package batch

import (
	"iter"

	"github.com/agentstation/stocksync/pkg/errors"
)

// Chunks returns a lazy sequence of consecutive sub-slices of items, each at most
// size long. Every chunk but the last has exactly size elements, and ranging over
// the sequence again yields the same chunks. Chunks share items' backing array.
func Chunks[T any](items []T, size int) (iter.Seq[[]T], error) {
	if size <= 0 {
		return nil, errors.NewValidationError("size", size, "chunk size must be positive")
	}

	return func(yield func([]T) bool) {
		for start := 0; start < len(items); start += size {
			end := min(start+size, len(items))
			if !yield(items[start:end:end]) {
				return
			}
		}
	}, nil
}

// Split is Chunks collected into a slice.
func Split[T any](items []T, size int) ([][]T, error) {
	seq, err := Chunks(items, size)
	if err != nil {
		return nil, err
	}

	out := make([][]T, 0, Count(len(items), size))
	for chunk := range seq {
		out = append(out, chunk)
	}
	return out, nil
}

// Count returns the number of chunks n items produce at the given size.
// A non-positive size yields 0.
func Count(n, size int) int {
	if size <= 0 || n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}
