package Cover

import (
	"github.com/g-m-twostay/go-centroid/Trees"
)

// ComputeDeltas of every edge in the macro component rooted at R and return its weight.
// Only this component is touched.
// Time: O(size of the component in T').
func (u *Macro[S]) ComputeDeltas(R S) S {
	u.order = u.order[:0]
	for u.st = append(u.st[:0], R); len(u.st) > 0; {
		x := u.st[len(u.st)-1]
		u.st = u.st[:len(u.st)-1]
		u.order = append(u.order, x)
		for k := S(0); k < u.a[x]; k++ {
			u.st = append(u.st, u.Child(x, k))
		}
	}
	for i := len(u.order) - 1; i >= 0; i-- {
		x := u.order[i]
		for k := S(0); k < u.a[x]; k++ {
			c := u.Child(x, k)
			d := u.a[c+2]
			for j := S(0); j < u.a[c]; j++ {
				d += u.Delta1(c, j)
			}
			u.a[x+5+3*k] = d
		}
	}
	W := u.a[R+2]
	for k := S(0); k < u.a[R]; k++ {
		W += u.Delta1(R, k)
	}
	for _, x := range u.order {
		for k := S(0); k < u.a[x]; k++ {
			u.a[x+6+3*k] = W - u.a[x+5+3*k]
		}
	}
	return W
}

// Centroid of the component rooted at R weighing W, deltas computed. The macro node M
// is the deepest one whose whole subtree weighs more than W/2; the centroid v of T is
// inside its element.
func (u *Macro[S]) Centroid(t *Trees.Tree[S], R, W S) (M, v S) {
	half := W / 2
	M = R
next:
	for {
		for k := S(0); k < u.a[M]; k++ {
			if u.Delta1(M, k) > half {
				M = u.Child(M, k)
				continue next
			}
		}
		return M, t.Descent(u.Ref(M), half)
	}
}
