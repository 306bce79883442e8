package internal

import (
	"iter"
)

// IterSeqConcat concatenates multiple iterators into a single iterator sequence.
func IterSeqConcat[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for val := range seq {
				if !yield(val) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

// IterSeqMap converts each value of an iterator sequence.
func IterSeqMap[T any, U any](seq iter.Seq[T], conv func(T) U) iter.Seq[U] {
	return func(yield func(U) bool) {
		for val := range seq {
			if !yield(conv(val)) {
				return
			}
		}
	}
}

// IterCountFunc counts the values of an iterator sequence accepted by match.
func IterCountFunc[T any](seq iter.Seq[T], match func(T) bool) (count int) {
	for val := range seq {
		if match(val) {
			count++
		}
	}
	return
}
