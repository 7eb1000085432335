package Decomp

import (
	"errors"
	"time"

	Go_Centroid "github.com/g-m-twostay/go-centroid"
	"github.com/g-m-twostay/go-centroid/Cover"
	"github.com/g-m-twostay/go-centroid/Trees"
	"golang.org/x/exp/constraints"
)

// Stats of a finished run.
type Stats struct {
	Searches   int // components split through the macro tree
	Fallbacks  int // components handed to the standard decomposer
	Promoted   int // macro nodes created after covering
	MacroWords int // final size of the macro tree array
}

// Decomposer owns a tree, its macro tree and the output while they're consumed.
type Decomposer[S constraints.Unsigned] struct {
	t     *Trees.Tree[S]
	m     *Cover.Macro[S]
	out   *output[S]
	cfg   Config
	b     S
	useB  bool
	stats Stats
	done  bool

	st    []S     // worklist of macro component roots
	tst   []S     // scratch of the standard decomposer
	moved [][3]S  // (route, macro child, delta1) of orphans bound to promoted nodes
	count map[S]S // promoted node: number of orphans, then its macro node
}

// New covers t, which must be sized, indexed and untouched. t is consumed by Run.
func New[S constraints.Unsigned](t *Trees.Tree[S], cfg Config) (*Decomposer[S], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.logger()
	start := time.Now()
	m, err := Cover.Cover(t, cfg.CoverSize)
	if err != nil {
		return nil, err
	}
	b, useB := threshold(cfg, t.Len())
	log.Debug().Uint64("n", uint64(t.Len())).Uint64("elements", uint64(m.Len())).
		Int("words", m.Words()).Dur("took", time.Since(start)).Msg("covered")
	return &Decomposer[S]{
		t: t, m: m, out: newOutput(t.Len()), cfg: cfg, b: b, useB: useB,
		st: make([]S, 0, 64),
	}, nil
}

// Stats so far.
func (u *Decomposer[S]) Stats() Stats {
	return u.stats
}

// Run the decomposition to the end. A second call returns the same result.
func (u *Decomposer[S]) Run() (ct *CentroidTree[S], err error) {
	if u.done {
		return &u.out.ct, nil
	}
	defer func() {
		if r := recover(); r != nil {
			var e *Go_Centroid.Error
			if re, ok := r.(error); ok && errors.As(re, &e) && e.Kind == Go_Centroid.Overflow {
				ct, err = nil, e
				return
			}
			panic(r)
		}
	}()
	start := time.Now()
	u.st = append(u.st[:0], 0)
	for len(u.st) > 0 {
		R := u.st[len(u.st)-1]
		u.st = u.st[:len(u.st)-1]
		r := u.m.Ref(R)
		w := u.t.Size(r)
		if u.useB && w <= u.b {
			u.tst = u.t.Decompose(r, u.out, u.tst)
			u.stats.Fallbacks++
			continue
		}
		if W := u.m.ComputeDeltas(R); W != w {
			Go_Centroid.Violated("component of %d weighs %d in the macro tree and %d in the tree", r, W, w)
		}
		M, tc := u.m.Centroid(u.t, R, w)
		u.out.Open(tc, u.split(R, M, tc))
		u.stats.Searches++
	}
	u.done = true
	u.stats.MacroWords = u.m.Words()
	u.cfg.logger().Debug().Int("searches", u.stats.Searches).Int("fallbacks", u.stats.Fallbacks).
		Int("promoted", u.stats.Promoted).Int("macro_words", u.stats.MacroWords).
		Dur("took", time.Since(start)).Msg("decomposed")
	return &u.out.ct, nil
}

// route climbs from the marked node x to the first component root or marked node above.
func (u *Decomposer[S]) route(x S) S {
	for {
		p := u.t.Parent(x)
		if p == x {
			return x
		}
		if u.t.IsCover(p) {
			return p
		}
		x = p
	}
}

// split the component of macro root R at tc, found inside the element M. Every new
// component is pushed on the worklist; their number is returned.
func (u *Decomposer[S]) split(R, M, tc S) (kids S) {
	t, m := u.t, u.m
	rho, r := m.Ref(M), m.Ref(R)
	t.Remove(tc)

	// Sort the macro children of M by where they hang now.
	u.moved = u.moved[:0]
	if u.count != nil {
		clear(u.count)
	}
	kept := S(0)
	for k := S(0); k < m.Degree(M); k++ {
		c, d := m.Child(M, k), m.Delta1(M, k)
		switch x := u.route(m.Ref(c)); x {
		case m.Ref(c):
			m.SetParent(c, c)
			u.st = append(u.st, c)
			kids++
		case rho:
			m.Keep(M, kept, c, d)
			kept++
		default:
			if u.count == nil {
				u.count = make(map[S]S)
			}
			u.count[x]++
			u.moved = append(u.moved, [3]S{x, c, d})
		}
	}
	m.SetDegree(M, kept)

	// Unmarked children of tc root new elements. Marked ones were pushed above.
	var moving S
	for k := S(0); k < t.Degree(tc); k++ {
		ch := t.Child(tc, k)
		if t.IsCover(ch) {
			continue
		}
		t.SetCover(ch)
		N := m.Add(ch, t.ChildSize(tc, k), u.count[ch])
		if u.count != nil {
			u.count[ch] = N
		}
		u.st = append(u.st, N)
		u.stats.Promoted++
		kids++
		moving += t.ChildSize(tc, k)
	}
	for _, mv := range u.moved {
		m.Attach(u.count[mv[0]], mv[1], mv[2])
		moving -= mv[2]
	}

	if tc == rho {
		if kept != 0 {
			Go_Centroid.Violated("%d macro children kept by the removed element root %d", kept, tc)
		}
		if M != R {
			m.Detach(m.Parent(M), M)
		}
	} else {
		if m.Weight(M) < 1+moving {
			Go_Centroid.Violated("weight of macro node %d underflows removing %d", M, tc)
		}
		m.SetWeight(M, m.Weight(M)-1-moving)
	}
	if tc != r {
		u.st = append(u.st, R)
		kids++
	}
	return
}

// Decompose bp with cfg.
func Decompose[S constraints.Unsigned](bp string, cfg Config) (*CentroidTree[S], error) {
	t, err := Trees.From[S](bp)
	if err != nil {
		return nil, err
	}
	d, err := New(t, cfg)
	if err != nil {
		return nil, err
	}
	return d.Run()
}

// Standard decomposition of the sized tree t, consuming it.
func Standard[S constraints.Unsigned](t *Trees.Tree[S]) *CentroidTree[S] {
	out := newOutput(t.Len())
	t.Decompose(t.Root(), out, nil)
	return &out.ct
}
