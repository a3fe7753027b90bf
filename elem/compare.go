package elem

import "cmp"

// CompareSlices compares s1 and s2 lexicographically using cmp to
// compare elements. A shorter slice sorts before a longer one
// that it prefixes.
func CompareSlices[T any](s1, s2 []T, cmp func(x, y T) int) int {
	for i := 0; i < len(s1) && i < len(s2); i++ {
		if c := cmp(s1[i], s2[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(s1) == len(s2):
		return 0
	case len(s1) < len(s2):
		return -1
	}
	return 1
}

// CompareBytes compares two byte slices lexicographically.
func CompareBytes(b1, b2 []byte) int {
	return CompareSlices(b1, b2, cmp.Compare[byte])
}
