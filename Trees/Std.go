package Trees

import "golang.org/x/exp/constraints"

// Emitter receives the centroids of a decomposition in depth first order. kids is the
// number of components the removal of id left behind, each decomposed right after.
type Emitter[S constraints.Unsigned] interface {
	Open(id, kids S)
}

// Centroid of the component rooted at r by descending to the child heavier than half
// of the component. Only one child can be that heavy, so there's no tie to break.
// Time: O(sum of degrees along the path).
func (u *Tree[S]) Centroid(r S) S {
	return u.Descent(r, u.Size(r)/2)
}

// Descent from v into the child whose subtree is larger than half while there's one.
func (u *Tree[S]) Descent(v, half S) S {
next:
	for {
		for k := S(0); k < u.Degree(v); k++ {
			if u.a[v+3+2*k] > half {
				v = u.a[v+2+2*k]
				continue next
			}
		}
		return v
	}
}

// Decompose the component rooted at r by repeated centroid removal, consuming it. Other
// components aren't touched. st is scratch space for the explicit stack; it's returned
// for reuse.
// Time: O(k log k) for a component of k nodes of bounded degree.
func (u *Tree[S]) Decompose(r S, e Emitter[S], st []S) []S {
	for st = append(st[:0], r); len(st) > 0; {
		x := st[len(st)-1]
		st = st[:len(st)-1]
		c := u.Centroid(x)
		u.Remove(c)
		kids := u.Degree(c)
		for k := kids; k > 0; k-- {
			st = append(st, u.Child(c, k-1))
		}
		if c != x {
			st = append(st, x)
			kids++
		}
		e.Open(c, kids)
	}
	return st
}
