package Trees

import (
	Go_Centroid "github.com/g-m-twostay/go-centroid"
	"golang.org/x/exp/constraints"
)

// Build the level order layout of the tree encoded by bp, a pre-order balanced
// parenthesis string with one "(" and one ")" per node. Sizes aren't computed and the
// index isn't built; see From.
// Time: O(n); Space: the 4n-2 words of the result, used as scratch along the way.
func Build[S constraints.Unsigned](bp string) (*Tree[S], error) {
	if len(bp) == 0 || len(bp)%2 != 0 {
		return nil, Go_Centroid.Errorf(Go_Centroid.Malformed, "length %d is not a positive even number", len(bp))
	}
	n := len(bp) / 2
	N := 4*n - 2
	if uint64(N-1) > uint64(^S(0)) {
		return nil, Go_Centroid.Errorf(Go_Centroid.Overflow, "%d nodes don't fit the index type", n)
	}
	a := make([]S, N)

	// a[0:H] = number of nodes per level.
	H, d := 0, 0
	for i := 0; i < len(bp); i++ {
		switch bp[i] {
		case '(':
			if d == 0 && i != 0 {
				return nil, Go_Centroid.Errorf(Go_Centroid.Malformed, "second root at %d", i)
			}
			a[d]++
			if d++; d > H {
				H = d
			}
		case ')':
			if d--; d < 0 {
				return nil, Go_Centroid.Errorf(Go_Centroid.Malformed, "unbalanced ')' at %d", i)
			}
		default:
			return nil, Go_Centroid.Errorf(Go_Centroid.Malformed, "unexpected byte %q at %d", bp[i], i)
		}
	}
	if d != 0 {
		return nil, Go_Centroid.Errorf(Go_Centroid.Malformed, "%d nodes left open", d)
	}
	// a[l] = rank in level order of the first node of level l.
	var psum S
	for l := range H {
		a[l], psum = psum, psum+a[l]
	}
	// a[H+r] = number of children of the node of rank r. a[d] always holds the rank of
	// the node currently open on level d.
	maxDeg := MaxDegree[S]()
	for i := 1; i < len(bp); i++ {
		if bp[i] == '(' {
			j := H + int(a[d])
			if a[j] == maxDeg {
				return nil, Go_Centroid.Errorf(Go_Centroid.Overflow, "out-degree of node %d exceeds %d", a[d], maxDeg)
			}
			a[j]++
			d++
		} else {
			a[d]++
			d--
		}
	}
	copy(a[:n], a[H:H+n])
	// Place the records right to left. The record of rank r starts at or after 2r, so
	// it never overwrites a count not yet read.
	R := N
	for r := n - 1; r >= 0; r-- {
		c := a[r]
		R -= 2 + 2*int(c)
		a[R] = c
		clear(a[R+1 : R+2+2*int(c)])
	}
	// Link the levels: i walks the child slots of the parents in order, j the records
	// of the children.
	for i, j := 0, 2+2*int(a[0]); j < N; {
		x := i
		i += 2
		for c := S(0); c < a[x]; c++ {
			a[i] = S(j)
			a[j+1] = S(x)
			i += 2
			j += 2 + 2*int(a[j])
		}
	}
	return &Tree[S]{a: a, n: S(n)}, nil
}

// Index of the record starts. Build leaves it empty.
// Time: O(n).
func (u *Tree[S]) Index() {
	u.idx = Go_Centroid.NewBitArray(len(u.a))
	for i := 0; i < len(u.a); i += 2 + 2*int(u.Degree(S(i))) {
		u.idx.Up(i)
	}
}

// ComputeSizes fills every child size slot, children before parents.
// Time: O(n).
func (u *Tree[S]) ComputeSizes() {
	u.Descend(func(v S) bool {
		for k := S(0); k < u.Degree(v); k++ {
			u.a[v+3+2*k] = u.Size(u.a[v+2+2*k])
		}
		return true
	})
}

// From parses bp, indexes it and computes its sizes.
func From[S constraints.Unsigned](bp string) (*Tree[S], error) {
	t, err := Build[S](bp)
	if err != nil {
		return nil, err
	}
	t.Index()
	t.ComputeSizes()
	return t, nil
}
