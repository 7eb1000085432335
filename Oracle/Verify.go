// Package Oracle checks a decomposition against the tree it came from by replaying the
// removals on a copy of the tree's adjacency. A valid decomposition replays in
// O(n log n); it's meant for tests and the --check flag, not for production runs.
package Oracle

import (
	"github.com/emirpasic/gods/stacks/arraystack"
	Go_Centroid "github.com/g-m-twostay/go-centroid"
	"github.com/g-m-twostay/go-centroid/Trees"
	"golang.org/x/exp/constraints"
)

// piece of the tree left by a removal.
type piece struct {
	creator int // rank of the removed node, -1 for the whole tree
	size    int
	claimed bool
}

// frame of an opened centroid: the pieces its removal left.
type frame struct {
	node        int
	first, last int
}

type replay struct {
	off     []int // rank -> offset
	rankOf  map[int]int
	adjOff  []int // adjacency of rank i is adj[adjOff[i]:adjOff[i+1]]
	adj     []int
	removed []bool
	label   []int // piece of every live node
	pieces  []piece
	st      *arraystack.Stack
}

func newReplay[S constraints.Unsigned](t *Trees.Tree[S]) *replay {
	n := int(t.Len())
	u := &replay{
		off:     make([]int, 0, n),
		rankOf:  make(map[int]int, n),
		adjOff:  make([]int, n+1),
		removed: make([]bool, n),
		label:   make([]int, n),
		pieces:  []piece{{creator: -1, size: n}},
		st:      arraystack.New(),
	}
	t.Ascend(func(v S) bool {
		u.rankOf[int(v)] = len(u.off)
		u.off = append(u.off, int(v))
		return true
	})
	for i, v := range u.off {
		d := int(t.Degree(S(v)))
		if !t.IsRoot(S(v)) {
			d++
		}
		u.adjOff[i+1] = u.adjOff[i] + d
	}
	u.adj = make([]int, u.adjOff[n])
	fill := append([]int(nil), u.adjOff[:n]...)
	for i, v := range u.off {
		for k := S(0); k < t.Degree(S(v)); k++ {
			c := u.rankOf[int(t.Child(S(v), k))]
			u.adj[fill[i]] = c
			fill[i]++
			u.adj[fill[c]] = i
			fill[c]++
		}
	}
	return u
}

// remove x, claimed from piece L, and label what's left of L around it.
func (u *replay) remove(x, L int) (first, last int, err error) {
	u.removed[x] = true
	first = len(u.pieces)
	limit := u.pieces[L].size / 2
	for _, y := range u.adj[u.adjOff[x]:u.adjOff[x+1]] {
		if u.removed[y] || u.label[y] != L {
			continue
		}
		id := len(u.pieces)
		size := 0
		u.label[y] = id
		u.st.Push(y)
		for !u.st.Empty() {
			v, _ := u.st.Pop()
			z := v.(int)
			size++
			for _, w := range u.adj[u.adjOff[z]:u.adjOff[z+1]] {
				if !u.removed[w] && u.label[w] == L {
					u.label[w] = id
					u.st.Push(w)
				}
			}
		}
		if size > limit {
			return 0, 0, Go_Centroid.Errorf(Go_Centroid.Invariant,
				"removing %d from a component of %d leaves a piece of %d", u.off[x], u.pieces[L].size, size)
		}
		u.pieces = append(u.pieces, piece{creator: x, size: size})
	}
	return first, len(u.pieces), nil
}

// Verify that shape and ids decompose the pristine, sized and indexed tree t: every id
// is a centroid of a piece left by its parent's removal, and every such piece gets
// exactly one child.
func Verify[S constraints.Unsigned](t *Trees.Tree[S], shape []byte, ids []S) error {
	u := newReplay(t)
	var fs []frame
	j, roots := 0, 0
	for i, b := range shape {
		switch b {
		case 0:
			if j == len(ids) {
				return Go_Centroid.Errorf(Go_Centroid.Malformed, "open at %d without an id", i)
			}
			x, ok := u.rankOf[int(ids[j])]
			if !ok {
				return Go_Centroid.Errorf(Go_Centroid.Malformed, "id %d at %d is not a node", ids[j], j)
			}
			if u.removed[x] {
				return Go_Centroid.Errorf(Go_Centroid.Invariant, "node %d is opened twice", ids[j])
			}
			parent := -1
			if len(fs) > 0 {
				parent = fs[len(fs)-1].node
			} else if roots++; roots > 1 {
				return Go_Centroid.Errorf(Go_Centroid.Malformed, "second root at %d", i)
			}
			L := u.label[x]
			if p := &u.pieces[L]; p.creator != parent || p.claimed {
				return Go_Centroid.Errorf(Go_Centroid.Invariant, "node %d is not in an unclaimed piece of its parent", ids[j])
			}
			u.pieces[L].claimed = true
			first, last, err := u.remove(x, L)
			if err != nil {
				return err
			}
			fs = append(fs, frame{x, first, last})
			j++
		case 1:
			if len(fs) == 0 {
				return Go_Centroid.Errorf(Go_Centroid.Malformed, "close without open at %d", i)
			}
			f := fs[len(fs)-1]
			fs = fs[:len(fs)-1]
			for l := f.first; l < f.last; l++ {
				if !u.pieces[l].claimed {
					return Go_Centroid.Errorf(Go_Centroid.Invariant, "a piece of %d left by removing %d is never decomposed",
						u.pieces[l].size, u.off[f.node])
				}
			}
		default:
			return Go_Centroid.Errorf(Go_Centroid.Malformed, "shape byte %d at %d", b, i)
		}
	}
	if len(fs) != 0 {
		return Go_Centroid.Errorf(Go_Centroid.Malformed, "%d nodes left open", len(fs))
	}
	if j != len(ids) || j != len(u.off) {
		return Go_Centroid.Errorf(Go_Centroid.Invariant, "%d ids opened, %d given for %d nodes", j, len(ids), len(u.off))
	}
	return nil
}

// Check is Verify as a predicate.
func Check[S constraints.Unsigned](t *Trees.Tree[S], shape []byte, ids []S) bool {
	return Verify(t, shape, ids) == nil
}
