package sequencer

import (
	"iter"
	"slices"
)

// Stack is a LIFO of scope frames.
type Stack[T any] struct {
	Data []T
}

func (s *Stack[T]) Push(value T) {
	s.Data = append(s.Data, value)
}

func (s *Stack[T]) Pop() (value T, ok bool) {
	value, ok = s.Peek()
	if ok {
		s.Data = s.Data[:len(s.Data)-1]
	}
	return
}

func (s *Stack[T]) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack[T]) Len() int {
	return len(s.Data)
}

func (s *Stack[T]) Peek() (value T, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[len(s.Data)-1], true
}

// Any returns true if any frame, innermost first, matches.
func (s *Stack[T]) Any(match func(T) bool) bool {
	return slices.ContainsFunc(s.Data, match)
}

// Backward iterates from the innermost frame outwards.
func (s *Stack[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range slices.Backward(s.Data) {
			if !yield(value) {
				return
			}
		}
	}
}

func (s *Stack[T]) Reset() {
	if len(s.Data) > 0 {
		s.Data = s.Data[:0]
	}
}
