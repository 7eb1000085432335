package Cover

import (
	"math/bits"

	Go_Centroid "github.com/g-m-twostay/go-centroid"
	"github.com/g-m-twostay/go-centroid/Queues"
	"github.com/g-m-twostay/go-centroid/Trees"
	"github.com/google/btree"
	"golang.org/x/exp/constraints"
)

// MaxCoverSize is the largest minimum element size Cover accepts.
const MaxCoverSize = 65535

// entry is a cover element waiting to be packed into the macro tree.
type entry[S constraints.Unsigned] struct {
	ref, weight, kids S
	depth, pre        S // number of marked proper ancestors, pre-order rank in T
}

func less[S constraints.Unsigned](a, b entry[S]) bool {
	if a.depth != b.depth {
		return a.depth < b.depth
	}
	return a.pre < b.pre
}

// DefaultCoverSize is floor(log2(n)), at least 1.
func DefaultCoverSize(n uint64) int {
	if n < 2 {
		return 1
	}
	return bits.Len64(n) - 1
}

// Cover the sized, indexed and untouched tree t with elements of at least A nodes, the
// root's excepted, and return the macro tree over them with deltas computed for the root.
// The roots of the elements get the cover flag in t. A is DefaultCoverSize when 0.
// pop the front of q, which the pass at node v expects to be there.
func pop[T any, S constraints.Unsigned](q Queues.ArrayQueue[T], v S) T {
	item, err := q.Pop()
	if err != nil {
		Go_Centroid.Violated("pass ran dry at node %d: %v", v, err)
	}
	return item
}

// Time: O(n + m log m) for m elements.
func Cover[S constraints.Unsigned](t *Trees.Tree[S], A int) (*Macro[S], error) {
	if A < 0 || A > MaxCoverSize {
		return nil, Go_Centroid.Errorf(Go_Centroid.BadConfig, "cover size %d is not in [0, %d]", A, MaxCoverSize)
	}
	if A == 0 {
		A = DefaultCoverSize(uint64(t.Len()))
	}
	a := S(A)
	if int(a) != A {
		a = ^S(0)
	}

	// Pass 1, children before parents. An unmarked node hands its partial element size
	// and the count of elements hanging below it to the parent. Records are in level
	// order, so the parents consume these in the order they were produced.
	var es []entry[S]
	pq := Queues.MakeArrayQueue[[2]S](64)
	t.Descend(func(v S) bool {
		size, kids := S(1), S(0)
		for k := t.Degree(v); k > 0; k-- {
			if t.IsCover(t.Child(v, k-1)) {
				kids++
			} else {
				item := pop(pq, v)
				size += item[0]
				kids += item[1]
			}
		}
		if v == t.Root() || size >= a {
			t.SetCover(v)
			es = append(es, entry[S]{ref: v, weight: size, kids: kids})
		} else {
			pq.Push([2]S{size, kids})
		}
		return true
	})

	// Pass 2, parents before children: pre-order rank and macro depth flow down.
	// es is in decreasing offset order so the cursor walks it backwards.
	pq.Clear()
	e := len(es) - 1
	t.Ascend(func(v S) bool {
		var item [2]S
		if v != t.Root() {
			item = pop(pq, v)
		}
		lvl := item[1]
		if t.IsCover(v) {
			if es[e].ref != v {
				Go_Centroid.Violated("cover entry of %d found at %d", es[e].ref, v)
			}
			es[e].depth, es[e].pre = lvl, item[0]
			e--
			lvl++
		}
		pre := item[0] + 1
		for k := S(0); k < t.Degree(v); k++ {
			pq.Push([2]S{pre, lvl})
			pre += t.ChildSize(v, k)
		}
		return true
	})

	// Pass 3, level order of the macro tree. The children of consecutive macro nodes
	// are consecutive, so pi only moves forward.
	if uint64(7*len(es)-4) > uint64(^S(0)) {
		return nil, Go_Centroid.Errorf(Go_Centroid.Overflow, "macro tree of %d elements doesn't fit the index type", len(es))
	}
	bt := btree.NewG[entry[S]](16, less[S])
	for _, x := range es {
		bt.ReplaceOrInsert(x)
	}
	m := &Macro[S]{a: make([]S, 0, 7*len(es)-3), nodes: S(len(es))}
	var pi, pk S
	bt.Ascend(func(x entry[S]) bool {
		id := S(len(m.a))
		m.a = append(m.a, x.kids, id, x.weight, x.ref)
		for c := S(0); c < x.kids; c++ {
			m.a = append(m.a, 0, 0, 0)
		}
		if id != 0 {
			for m.a[pi] == pk {
				pi += 4 + 3*m.a[pi]
				pk = 0
			}
			m.a[pi+4+3*pk] = id
			m.a[id+1] = pi
			pk++
		}
		return true
	})
	if W := m.ComputeDeltas(0); W != t.Size(t.Root()) {
		Go_Centroid.Violated("macro tree weighs %d for %d nodes", W, t.Size(t.Root()))
	}
	return m, nil
}
