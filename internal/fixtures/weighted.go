package fixtures

import (
	"errors"
	"sort"
)

// WeightedChoice is one option in a categorical distribution.
// Weights are relative; they need not sum to 100.
type WeightedChoice[T any] struct {
	Value  T
	Weight int
}

// Weighted picks values with probability proportional to their weight using
// a cumulative table and one uniform draw in [0, total).
type Weighted[T any] struct {
	values     []T
	cumulative []int
	total      int
}

// NewWeighted builds the cumulative table. Zero-weight options are never
// chosen; negative weights and an all-zero table are rejected.
func NewWeighted[T any](choices []WeightedChoice[T]) (*Weighted[T], error) {
	w := &Weighted[T]{
		values:     make([]T, 0, len(choices)),
		cumulative: make([]int, 0, len(choices)),
	}
	for _, c := range choices {
		if c.Weight < 0 {
			return nil, errors.New("weighted choice: negative weight")
		}
		if c.Weight == 0 {
			continue
		}
		w.total += c.Weight
		w.values = append(w.values, c.Value)
		w.cumulative = append(w.cumulative, w.total)
	}
	if w.total == 0 {
		return nil, errors.New("weighted choice: total weight is zero")
	}
	return w, nil
}

// Pick draws one value.
func (w *Weighted[T]) Pick(r Source) T {
	return w.values[w.index(r.IntN(w.total))]
}

// index maps a draw in [0, total) to the first bucket whose cumulative
// weight exceeds it.
func (w *Weighted[T]) index(draw int) int {
	return sort.Search(len(w.cumulative), func(i int) bool {
		return w.cumulative[i] > draw
	})
}
