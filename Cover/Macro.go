package Cover

import (
	"unsafe"

	"github.com/cespare/xxhash/v2"
	Go_Centroid "github.com/g-m-twostay/go-centroid"
	"golang.org/x/exp/constraints"
)

// Macro is the tree T' whose nodes are the cover elements of a Trees.Tree. The record
// of the macro node at offset i is
//
//	a[i]        number of children
//	a[i+1]      parent offset, i itself for the root of a component
//	a[i+2]      weight: live nodes of T in the element, child elements excluded
//	a[i+3]      offset in T of the element root
//	a[i+4+3k]   offset of the k-th child
//	a[i+5+3k]   delta1 of the k-th child: weight of its whole macro subtree
//	a[i+6+3k]   delta2 of the k-th child: component weight minus delta1
//
// Deltas are only meaningful for the component last passed to ComputeDeltas.
type Macro[S constraints.Unsigned] struct {
	a         []S
	st, order []S // ComputeDeltas scratch
	nodes     S
}

func (u *Macro[S]) Degree(i S) S {
	return u.a[i]
}

func (u *Macro[S]) Parent(i S) S {
	return u.a[i+1]
}

func (u *Macro[S]) SetParent(i, p S) {
	u.a[i+1] = p
}

func (u *Macro[S]) Weight(i S) S {
	return u.a[i+2]
}

func (u *Macro[S]) SetWeight(i, w S) {
	u.a[i+2] = w
}

// Ref is the root in T of the element i.
func (u *Macro[S]) Ref(i S) S {
	return u.a[i+3]
}

func (u *Macro[S]) Child(i, k S) S {
	return u.a[i+4+3*k]
}

func (u *Macro[S]) Delta1(i, k S) S {
	return u.a[i+5+3*k]
}

func (u *Macro[S]) Delta2(i, k S) S {
	return u.a[i+6+3*k]
}

// Len is the number of macro nodes ever created.
func (u *Macro[S]) Len() S {
	return u.nodes
}

// Words of the underlying array.
func (u *Macro[S]) Words() int {
	return len(u.a)
}

// Add a component root for the element rooted at ref in T, with room for slots children.
func (u *Macro[S]) Add(ref, weight, slots S) S {
	id := len(u.a)
	if uint64(id)+3+3*uint64(slots) > uint64(^S(0)) {
		panic(Go_Centroid.Errorf(Go_Centroid.Overflow, "macro tree outgrows the index type at %d words", id))
	}
	u.a = append(u.a, 0, S(id), weight, ref)
	for c := S(0); c < slots; c++ {
		u.a = append(u.a, 0, 0, 0)
	}
	u.nodes++
	return S(id)
}

// Attach c, whose macro subtree weighs d, below p in the next reserved slot. The weight
// of p drops by d since the nodes of c were counted in p until now.
func (u *Macro[S]) Attach(p, c, d S) {
	j := p + 4 + 3*u.a[p]
	u.a[j], u.a[j+1], u.a[j+2] = c, d, 0
	u.a[p]++
	if u.a[p+2] < d {
		Go_Centroid.Violated("weight of macro node %d underflows attaching %d", p, c)
	}
	u.a[p+2] -= d
	u.a[c+1] = p
}

// Detach the child c from p by moving the last child into its slot.
func (u *Macro[S]) Detach(p, c S) {
	last := p + 4 + 3*(u.a[p]-1)
	for j := p + 4; j <= last; j += 3 {
		if u.a[j] == c {
			u.a[j], u.a[j+1], u.a[j+2] = u.a[last], u.a[last+1], u.a[last+2]
			u.a[p]--
			u.a[c+1] = c
			return
		}
	}
	Go_Centroid.Violated("macro node %d is not a child of %d", c, p)
}

// Keep c with delta d as the k-th child of i. Used to compact the child list in place,
// k must not be past the slot c came from. SetDegree ends the compaction.
func (u *Macro[S]) Keep(i, k, c, d S) {
	j := i + 4 + 3*k
	u.a[j], u.a[j+1] = c, d
}

func (u *Macro[S]) SetDegree(i, d S) {
	u.a[i] = d
}

// Digest of the raw array, equal for equal macro trees.
func (u *Macro[S]) Digest() uint64 {
	if len(u.a) == 0 {
		return xxhash.Sum64(nil)
	}
	return xxhash.Sum64(unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(u.a))), uintptr(len(u.a))*unsafe.Sizeof(u.a[0])))
}
