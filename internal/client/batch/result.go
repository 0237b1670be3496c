package batch

import (
	"errors"
	"sort"
)

// ErrNoneSucceeded is returned when every item of a batch failed.
var ErrNoneSucceeded = errors.New("no item in the batch succeeded")

// Outcome is the result for one item. Exactly one of Value and Err is
// meaningful.
type Outcome[T any] struct {
	Value T
	Err   error
}

// Result maps each raw identifier to its outcome. Failed items are kept.
type Result[T any] map[string]Outcome[T]

// Succeeded counts the items without an error.
func (r Result[T]) Succeeded() int {
	n := 0
	for _, o := range r {
		if o.Err == nil {
			n++
		}
	}
	return n
}

// Failed counts the items with an error.
func (r Result[T]) Failed() int {
	return len(r) - r.Succeeded()
}

// Keys returns the identifiers in lexical order.
func (r Result[T]) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Chunk splits items into consecutive groups of at most size elements.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = len(items)
	}
	var chunks [][]T
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end])
	}
	return chunks
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
