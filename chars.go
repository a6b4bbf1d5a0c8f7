package typewriter

import "github.com/rivo/uniseg"

// graphemeBounds returns the byte offset of every user-perceived character in
// s plus a trailing len(s). Character i spans s[b[i]:b[i+1]].
func graphemeBounds(s string) []int {
	bounds := make([]int, 0, len(s)+1)
	state := -1
	offset := 0
	rest := s
	for len(rest) > 0 {
		bounds = append(bounds, offset)
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		offset += len(cluster)
	}
	return append(bounds, offset)
}

// CharCount returns the number of user-perceived characters in s.
func CharCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}
