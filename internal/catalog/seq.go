package catalog

import "iter"

// FilterMap yields convert(v) for every v in seq where convert reports true.
func FilterMap[In, Out any](seq iter.Seq[In], convert func(In) (Out, bool)) iter.Seq[Out] {
	return func(yield func(Out) bool) {
		for v := range seq {
			out, ok := convert(v)
			if !ok {
				continue
			}
			if !yield(out) {
				return
			}
		}
	}
}

// Take yields at most n values from seq and stops pulling from it afterwards.
func Take[T any](seq iter.Seq[T], n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		if n <= 0 {
			return
		}
		taken := 0
		for v := range seq {
			if !yield(v) {
				return
			}
			taken++
			if taken >= n {
				return
			}
		}
	}
}
