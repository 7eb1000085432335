package Trees

import (
	"strings"

	Go_Centroid "github.com/g-m-twostay/go-centroid"
	"golang.org/x/exp/constraints"
)

// Tree is a rooted ordered tree stored in one flat array. The record of the
// node at offset i is
//
//	a[i]        number of children; the top bit of S marks a cover element root
//	a[i+1]      parent offset, i itself when the node is a root
//	a[i+2+2k]   offset of the k-th child
//	a[i+3+2k]   subtree size of the k-th child
//
// Offsets are the node IDs. Records are laid out level by level, so every
// descendant of a node has a greater offset, and the children of consecutive
// nodes of a level are consecutive in the next level.
//
// Removing a node detaches it in place: the array never grows or shrinks and the
// sizes of the remaining ancestors are kept exact.
type Tree[S constraints.Unsigned] struct {
	a   []S
	idx Go_Centroid.BitArray // idx.Get(i) iff a live record starts at i.
	n   S
}

// coverBit is the top bit of S.
func coverBit[S constraints.Unsigned]() S {
	return ^(^S(0) >> 1)
}

// MaxDegree a node can have in a Tree[S].
func MaxDegree[S constraints.Unsigned]() S {
	return ^S(0) >> 1
}

// Len is the number of nodes the tree was built with.
func (u *Tree[S]) Len() S {
	return u.n
}

// Words of the underlying array, 4*Len()-2.
func (u *Tree[S]) Words() int {
	return len(u.a)
}

// Root of the whole tree.
func (u *Tree[S]) Root() S {
	return 0
}

func (u *Tree[S]) Degree(i S) S {
	return u.a[i] &^ coverBit[S]()
}

func (u *Tree[S]) Parent(i S) S {
	return u.a[i+1]
}

// IsRoot of its component.
func (u *Tree[S]) IsRoot(i S) bool {
	return u.a[i+1] == i
}

// Child k of i, 0<=k<Degree(i).
func (u *Tree[S]) Child(i, k S) S {
	return u.a[i+2+2*k]
}

// ChildSize is the subtree size of Child(i, k).
func (u *Tree[S]) ChildSize(i, k S) S {
	return u.a[i+3+2*k]
}

// Size of the subtree rooted at i. O(Degree(i)).
func (u *Tree[S]) Size(i S) S {
	s := S(1)
	for k := S(0); k < u.Degree(i); k++ {
		s += u.a[i+3+2*k]
	}
	return s
}

func (u *Tree[S]) IsCover(i S) bool {
	return u.a[i]&coverBit[S]() != 0
}

// SetCover marks i as the root of a cover element.
func (u *Tree[S]) SetCover(i S) {
	u.a[i] |= coverBit[S]()
}

// Live reports whether a node that wasn't removed starts at i.
func (u *Tree[S]) Live(i S) bool {
	return int(i) < len(u.a) && u.idx.Get(int(i))
}

// Ascend calls f on every live node in increasing offset order until f returns false.
func (u *Tree[S]) Ascend(f func(S) bool) {
	for i := u.idx.Next(0); i >= 0; i = u.idx.Next(i + 1) {
		if !f(S(i)) {
			return
		}
	}
}

// Descend calls f on every live node in decreasing offset order until f returns false.
func (u *Tree[S]) Descend(f func(S) bool) {
	for i := u.idx.Prev(len(u.a) - 1); i >= 0; i = u.idx.Prev(i - 1) {
		if !f(S(i)) {
			return
		}
	}
}

// Clone returns a deep copy of u.
func (u *Tree[S]) Clone() *Tree[S] {
	return &Tree[S]{a: append([]S(nil), u.a...), idx: u.idx.Clone(), n: u.n}
}

// slotOf c among the children of p.
func (u *Tree[S]) slotOf(p, c S) S {
	for k := S(0); k < u.Degree(p); k++ {
		if u.a[p+2+2*k] == c {
			return k
		}
	}
	Go_Centroid.Violated("node %d is not a child of %d", c, p)
	return 0
}

// Remove v from its component. Its parent forgets it, the sizes of all its ancestors
// shrink by the size of v, and its children become roots. The record of v, children
// included, stays readable.
func (u *Tree[S]) Remove(v S) {
	u.idx.Down(int(v))
	if p := u.a[v+1]; p != v {
		k, last := u.slotOf(p, v), u.Degree(p)-1
		sz := u.a[p+3+2*k]
		u.a[p+2+2*k], u.a[p+2+2*last] = u.a[p+2+2*last], u.a[p+2+2*k]
		u.a[p+3+2*k], u.a[p+3+2*last] = u.a[p+3+2*last], u.a[p+3+2*k]
		u.a[p]--
		for m, q := p, u.a[p+1]; m != q; m, q = q, u.a[q+1] {
			j := q + 3 + 2*u.slotOf(q, m)
			if u.a[j] < sz {
				Go_Centroid.Violated("size of %d underflows removing %d", m, v)
			}
			u.a[j] -= sz
		}
	}
	for k := S(0); k < u.Degree(v); k++ {
		c := u.a[v+2+2*k]
		u.a[c+1] = c
	}
}

// String is the balanced parenthesis form of the live subtree rooted at i.
func (u *Tree[S]) String(i S) string {
	var sb strings.Builder
	type frame struct{ v, k S }
	st := []frame{{i, 0}}
	sb.WriteByte('(')
	for len(st) > 0 {
		top := &st[len(st)-1]
		if top.k < u.Degree(top.v) {
			c := u.Child(top.v, top.k)
			top.k++
			st = append(st, frame{c, 0})
			sb.WriteByte('(')
		} else {
			st = st[:len(st)-1]
			sb.WriteByte(')')
		}
	}
	return sb.String()
}
