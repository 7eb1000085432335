// Package Gen writes test trees as balanced parenthesis strings.
package Gen

import (
	"math/rand"
	"strings"
)

// Random tree of n nodes from a random walk that never closes the root before the last
// node is opened.
func Random(r *rand.Rand, n int) string {
	if n < 1 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(2 * n)
	sb.WriteByte('(')
	d := 1
	for n--; n > 0; {
		if d > 1 && r.Intn(2) == 0 {
			sb.WriteByte(')')
			d--
		} else {
			sb.WriteByte('(')
			d++
			n--
		}
	}
	sb.WriteString(strings.Repeat(")", d))
	return sb.String()
}

// Path of n nodes.
func Path(n int) string {
	if n < 1 {
		return ""
	}
	return strings.Repeat("(", n) + strings.Repeat(")", n)
}

// Star of a root and n-1 leaves.
func Star(n int) string {
	if n < 1 {
		return ""
	}
	return "(" + strings.Repeat("()", n-1) + ")"
}

// Caterpillar of n nodes: a path whose nodes each get up to k-1 leaves before the next
// path node, so no degree exceeds k.
func Caterpillar(r *rand.Rand, n, k int) string {
	if n < 1 {
		return ""
	}
	if k < 1 {
		k = 1
	}
	var sb strings.Builder
	sb.Grow(2 * n)
	spine := 0
	for n > 0 {
		sb.WriteByte('(')
		spine++
		n--
		for l := r.Intn(k); l > 0 && n > 0; l-- {
			sb.WriteString("()")
			n--
		}
	}
	sb.WriteString(strings.Repeat(")", spine))
	return sb.String()
}

// Binary complete tree of n nodes, children of i being 2i+1 and 2i+2.
func Binary(n int) string {
	if n < 1 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(2 * n)
	// st holds node+1 for an open and -(node+1) for the matching close.
	st := []int{1}
	for len(st) > 0 {
		x := st[len(st)-1]
		st = st[:len(st)-1]
		if x < 0 {
			sb.WriteByte(')')
			continue
		}
		sb.WriteByte('(')
		st = append(st, -x)
		i := x - 1
		if c := 2*i + 2; c < n {
			st = append(st, c+1)
		}
		if c := 2*i + 1; c < n {
			st = append(st, c+1)
		}
	}
	return sb.String()
}
