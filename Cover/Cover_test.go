package Cover

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	Go_Centroid "github.com/g-m-twostay/go-centroid"
	"github.com/g-m-twostay/go-centroid/Gen"
	"github.com/g-m-twostay/go-centroid/Queues"
	"github.com/g-m-twostay/go-centroid/Trees"
)

var rg = rand.New(rand.NewSource(0))

func cover(t *testing.T, bp string, A int) (*Trees.Tree[uint32], *Macro[uint32]) {
	t.Helper()
	tree, err := Trees.From[uint32](bp)
	if err != nil {
		t.Fatal(err)
	}
	m, err := Cover(tree, A)
	if err != nil {
		t.Fatal(err)
	}
	return tree, m
}

// element of the macro node i walked in T: its node count and the marked nodes right
// below it.
func element(tree *Trees.Tree[uint32], root uint32) (size uint32, below []uint32) {
	st := []uint32{root}
	for len(st) > 0 {
		v := st[len(st)-1]
		st = st[:len(st)-1]
		size++
		for k := uint32(0); k < tree.Degree(v); k++ {
			if c := tree.Child(v, k); tree.IsCover(c) {
				below = append(below, c)
			} else {
				st = append(st, c)
			}
		}
	}
	slices.Sort(below)
	return
}

func TestCover_Example(t *testing.T) {
	_, m := cover(t, "(()())", 1)
	want := []uint32{2, 0, 1, 0, 10, 1, 2, 14, 1, 2, 0, 0, 1, 6, 0, 0, 1, 8}
	if !slices.Equal(m.a, want) {
		t.Errorf("macro tree is %v, want %v", m.a, want)
	}
	if m.Parent(0) != 0 || m.Parent(10) != 0 || m.Parent(14) != 0 {
		t.Errorf("parents are %d %d %d, want the root", m.Parent(0), m.Parent(10), m.Parent(14))
	}
	if m.Len() != 3 || m.Words() != 18 {
		t.Errorf("%d nodes in %d words", m.Len(), m.Words())
	}
}

func TestCover_Path(t *testing.T) {
	tree, m := cover(t, Gen.Path(4), 2)
	if !tree.IsCover(0) || tree.IsCover(4) || !tree.IsCover(8) || tree.IsCover(12) {
		t.Errorf("wrong nodes marked")
	}
	if want := []uint32{1, 0, 2, 0, 7, 2, 2, 0, 0, 2, 8}; !slices.Equal(m.a, want) {
		t.Errorf("macro tree is %v, want %v", m.a, want)
	}
}

func TestCover_DryQueue(t *testing.T) {
	q := Queues.MakeArrayQueue[[2]uint32](4)
	q.Push([2]uint32{3, 1})
	if v := pop(q, uint32(0)); v != [2]uint32{3, 1} {
		t.Errorf("popped %v", v)
	}
	defer func() {
		r := recover()
		if e, ok := r.(error); !ok || !errors.Is(e, Go_Centroid.ErrInvariant) {
			t.Errorf("recovered %v, want an invariant violation", r)
		}
	}()
	pop(q, uint32(5))
	t.Errorf("pop of an empty pass queue didn't panic")
}

func TestCover_Properties(t *testing.T) {
	bps := []string{"()", Gen.Path(1000), Gen.Star(1000), Gen.Binary(1000), Gen.Caterpillar(rg, 1000, 5)}
	for range 15 {
		bps = append(bps, Gen.Random(rg, 1+rg.Intn(5000)))
	}
	for _, bp := range bps {
		for _, A := range []int{0, 1, 2, 3, 8, 40} {
			tree, m := cover(t, bp, A)
			if A == 0 {
				A = DefaultCoverSize(uint64(tree.Len()))
			}
			if m.Words() != 7*int(m.Len())-3 {
				t.Errorf("%d words for %d elements", m.Words(), m.Len())
			}
			marked := 0
			tree.Ascend(func(v uint32) bool {
				if tree.IsCover(v) {
					marked++
				}
				return true
			})
			if marked != int(m.Len()) {
				t.Errorf("%d marked nodes for %d elements", marked, m.Len())
			}
			// Macro nodes appear in level order, so one forward pass sees them all.
			seen := 0
			for i := uint32(0); int(i) < m.Words(); i += 4 + 3*m.Degree(i) {
				seen++
				ref := m.Ref(i)
				if !tree.IsCover(ref) {
					t.Errorf("element root %d isn't marked", ref)
				}
				size, below := element(tree, ref)
				if size != m.Weight(i) {
					t.Errorf("weight of %d is %d, want %d", ref, m.Weight(i), size)
				}
				if i != 0 && int(size) < A {
					t.Errorf("element of %d has %d nodes, fewer than %d", ref, size, A)
				}
				var kids []uint32
				for k := uint32(0); k < m.Degree(i); k++ {
					c := m.Child(i, k)
					if c <= i || m.Parent(c) != i {
						t.Errorf("macro child %d of %d is broken", c, i)
					}
					kids = append(kids, m.Ref(c))
					if d := tree.Size(m.Ref(c)); m.Delta1(i, k) != d || m.Delta2(i, k) != tree.Len()-d {
						t.Errorf("deltas of %d are %d, %d, want %d", m.Ref(c), m.Delta1(i, k), m.Delta2(i, k), d)
					}
				}
				slices.Sort(kids)
				if !slices.Equal(kids, below) {
					t.Errorf("macro children of %d are %v, want %v", ref, kids, below)
				}
			}
			if seen != int(m.Len()) {
				t.Errorf("walked %d of %d macro nodes", seen, m.Len())
			}
		}
	}
}

func TestCover_Deterministic(t *testing.T) {
	bp := Gen.Random(rg, 20000)
	_, m1 := cover(t, bp, 0)
	_, m2 := cover(t, bp, 0)
	if m1.Digest() != m2.Digest() {
		t.Errorf("covering the same tree twice differs")
	}
	_, m3 := cover(t, bp, 1)
	if m1.Digest() == m3.Digest() {
		t.Errorf("covers of different sizes have the same digest")
	}
}

func TestCover_Errors(t *testing.T) {
	tree, _ := Trees.From[uint32]("(())")
	for _, A := range []int{-1, MaxCoverSize + 1} {
		if _, err := Cover(tree, A); !errors.Is(err, Go_Centroid.ErrBadConfig) {
			t.Errorf("Cover with %d returned %v, want a config error", A, err)
		}
	}
	small, _ := Trees.From[uint8](Gen.Path(40))
	if _, err := Cover(small, 1); !errors.Is(err, Go_Centroid.ErrOverflow) {
		t.Errorf("40 elements in uint8 returned %v, want an overflow", err)
	}
}

func TestDefaultCoverSize(t *testing.T) {
	for n, want := range map[uint64]int{0: 1, 1: 1, 2: 1, 3: 1, 4: 2, 1023: 9, 1024: 10, 1 << 40: 40} {
		if got := DefaultCoverSize(n); got != want {
			t.Errorf("DefaultCoverSize(%d) is %d, want %d", n, got, want)
		}
	}
}
