package elem

import (
	"cmp"
	"fmt"
	"io"

	"github.com/emirpasic/gods/utils"
	"github.com/kr/pretty"
)

// OrderedFuncs returns registry functions for an ordered type:
// natural ordering and a plain fmt formatter.
func OrderedFuncs[T cmp.Ordered]() Funcs[T] {
	return Funcs[T]{
		Compare: cmp.Compare[T],
		Print: func(w io.Writer, v T) {
			fmt.Fprintln(w, v)
		},
	}
}

// FromComparator adapts a gods comparator, such as
// utils.IntComparator, for use as a registry ordering.
// The comparator must accept values of type T.
func FromComparator[T any](c utils.Comparator) func(a, b T) int {
	return func(a, b T) int {
		return c(a, b)
	}
}

// PrettyPrint is a print function that formats values
// with Go syntax, one per line.
func PrettyPrint[T any](w io.Writer, v T) {
	pretty.Fprintf(w, "%# v\n", v)
}
