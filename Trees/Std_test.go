package Trees

import (
	"math/rand"
	"testing"

	"github.com/g-m-twostay/go-centroid/Gen"
)

type recorder[S uint32 | uint16] struct {
	ids  []S
	kids []S
}

func (u *recorder[S]) Open(id, kids S) {
	u.ids = append(u.ids, id)
	u.kids = append(u.kids, kids)
}

func TestTree_Remove(t *testing.T) {
	for range 10 {
		tree, err := From[uint32](Gen.Random(rg, 1+rg.Intn(1500)))
		if err != nil {
			t.Fatal(err)
		}
		var live []uint32
		tree.Ascend(func(v uint32) bool {
			live = append(live, v)
			return true
		})
		rg.Shuffle(len(live), func(i, j int) { live[i], live[j] = live[j], live[i] })
		total := tree.Len()
		for i, v := range live {
			tree.Remove(v)
			total--
			if tree.Live(v) {
				t.Errorf("%d is still live", v)
			}
			for k := uint32(0); k < tree.Degree(v); k++ {
				if !tree.IsRoot(tree.Child(v, k)) {
					t.Errorf("child %d of removed %d isn't a root", tree.Child(v, k), v)
				}
			}
			if i%50 == 0 {
				tree.check(t)
				var sum uint32
				tree.Ascend(func(x uint32) bool {
					if tree.IsRoot(x) {
						sum += tree.Size(x)
					}
					return true
				})
				if sum != total {
					t.Errorf("components hold %d nodes, want %d", sum, total)
				}
			}
		}
		if c := tree.idx.Count(); c != 0 {
			t.Errorf("%d nodes left after removing all", c)
		}
	}
}

func TestTree_Centroid(t *testing.T) {
	path, _ := From[uint32](Gen.Path(5))
	if c := path.Centroid(0); c != 8 {
		t.Errorf("centroid of a path of 5 is %d, want 8", c)
	}
	star, _ := From[uint32](Gen.Star(50))
	if c := star.Centroid(0); c != 0 {
		t.Errorf("centroid of a star is %d, want the root", c)
	}
	for range 20 {
		tree, _ := From[uint32](Gen.Random(rg, 1+rg.Intn(3000)))
		c, half := tree.Centroid(0), tree.Len()/2
		if up := tree.Len() - tree.Size(c); up > half {
			t.Errorf("removing %d leaves %d nodes above", c, up)
		}
		for k := uint32(0); k < tree.Degree(c); k++ {
			if tree.ChildSize(c, k) > half {
				t.Errorf("removing %d leaves a child of %d", c, tree.ChildSize(c, k))
			}
		}
	}
}

func TestTree_Decompose(t *testing.T) {
	bps := []string{"()", "(()())", Gen.Path(300), Gen.Star(300), Gen.Binary(300)}
	for range 10 {
		bps = append(bps, Gen.Random(rg, 1+rg.Intn(2000)))
	}
	for _, bp := range bps {
		tree, _ := From[uint32](bp)
		var rec recorder[uint32]
		tree.Decompose(0, &rec, nil)
		if len(rec.ids) != int(tree.Len()) {
			t.Fatalf("%d centroids for %d nodes", len(rec.ids), tree.Len())
		}
		seen := make(map[uint32]bool, len(rec.ids))
		var kids uint32
		for i, id := range rec.ids {
			if seen[id] {
				t.Errorf("%d is a centroid twice", id)
			}
			seen[id] = true
			kids += rec.kids[i]
		}
		if kids != tree.Len()-1 {
			t.Errorf("%d children in a centroid tree of %d nodes", kids, tree.Len())
		}
		if tree.idx.Count() != 0 {
			t.Errorf("%d nodes survive the decomposition", tree.idx.Count())
		}
	}
}

func TestTree_DecomposeComponent(t *testing.T) {
	// Decomposing one component leaves the others alone.
	tree, _ := From[uint16]("((()())(()))")
	tree.Remove(0)
	before := tree.Clone()
	var rec recorder[uint16]
	tree.Decompose(tree.Child(0, 0), &rec, nil)
	other := tree.Child(0, 1)
	if !tree.Live(other) || tree.Size(other) != before.Size(other) {
		t.Errorf("the other component changed")
	}
	if len(rec.ids) != int(before.Size(before.Child(0, 0))) {
		t.Errorf("%d centroids for a component of %d", len(rec.ids), before.Size(before.Child(0, 0)))
	}
}

func BenchmarkDecompose(b *testing.B) {
	bp := Gen.Random(rand.New(rand.NewSource(1)), 200000)
	b.ResetTimer()
	for range b.N {
		b.StopTimer()
		tree, _ := From[uint32](bp)
		b.StartTimer()
		tree.Decompose(0, &recorder[uint32]{}, nil)
	}
}
