package Decomp

import (
	"strconv"
	"strings"
	"unsafe"

	"github.com/cespare/xxhash/v2"
	Go_Centroid "github.com/g-m-twostay/go-centroid"
	"golang.org/x/exp/constraints"
)

// CentroidTree is a decomposition read depth first: every 0 of Shape opens the node
// with the next id of IDs, every 1 closes the last open node.
type CentroidTree[S constraints.Unsigned] struct {
	Shape []byte
	IDs   []S
}

// String is the nested form, e.g. "(0(8)(6))".
func (u *CentroidTree[S]) String() string {
	var sb strings.Builder
	sb.Grow(len(u.Shape) * 4)
	j := 0
	for _, b := range u.Shape {
		if b == 0 {
			sb.WriteByte('(')
			if j < len(u.IDs) {
				sb.WriteString(strconv.FormatUint(uint64(u.IDs[j]), 10))
			}
			j++
		} else {
			sb.WriteByte(')')
		}
	}
	return sb.String()
}

// Parse the nested form written by String. It's checked with WellFormed.
func Parse[S constraints.Unsigned](s string) (*CentroidTree[S], error) {
	ct := &CentroidTree[S]{}
	for i := 0; i < len(s); {
		switch s[i] {
		case '(':
			j := i + 1
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			if j == i+1 {
				return nil, Go_Centroid.Errorf(Go_Centroid.Malformed, "missing id at %d", i+1)
			}
			id, err := strconv.ParseUint(s[i+1:j], 10, int(unsafe.Sizeof(S(0)))*8)
			if err != nil {
				return nil, Go_Centroid.Errorf(Go_Centroid.Malformed, "id at %d: %v", i+1, err)
			}
			ct.Shape = append(ct.Shape, 0)
			ct.IDs = append(ct.IDs, S(id))
			i = j
		case ')':
			ct.Shape = append(ct.Shape, 1)
			i++
		default:
			return nil, Go_Centroid.Errorf(Go_Centroid.Malformed, "unexpected byte %q at %d", s[i], i)
		}
	}
	if err := ct.WellFormed(); err != nil {
		return nil, err
	}
	return ct, nil
}

// WellFormed checks that Shape is one balanced tree with an id per open.
func (u *CentroidTree[S]) WellFormed() error {
	if len(u.Shape) == 0 {
		return Go_Centroid.Errorf(Go_Centroid.Malformed, "empty shape")
	}
	d, opens := 0, 0
	for i, b := range u.Shape {
		switch b {
		case 0:
			if d == 0 && i != 0 {
				return Go_Centroid.Errorf(Go_Centroid.Malformed, "second root at %d", i)
			}
			d++
			opens++
		case 1:
			if d--; d < 0 {
				return Go_Centroid.Errorf(Go_Centroid.Malformed, "close without open at %d", i)
			}
		default:
			return Go_Centroid.Errorf(Go_Centroid.Malformed, "shape byte %d at %d", b, i)
		}
	}
	if d != 0 {
		return Go_Centroid.Errorf(Go_Centroid.Malformed, "%d nodes left open", d)
	}
	if opens != len(u.IDs) {
		return Go_Centroid.Errorf(Go_Centroid.Malformed, "%d opens for %d ids", opens, len(u.IDs))
	}
	return nil
}

// Edges of the well formed centroid tree as (parent, child) pairs, in the order the
// children open.
func (u *CentroidTree[S]) Edges() [][2]S {
	if len(u.IDs) == 0 {
		return nil
	}
	es := make([][2]S, 0, len(u.IDs)-1)
	st := make([]S, 0, 16)
	j := 0
	for _, b := range u.Shape {
		if b == 0 {
			if len(st) > 0 {
				es = append(es, [2]S{st[len(st)-1], u.IDs[j]})
			}
			st = append(st, u.IDs[j])
			j++
		} else {
			st = st[:len(st)-1]
		}
	}
	return es
}

// Height is the number of nodes on the longest root to leaf path.
func (u *CentroidTree[S]) Height() (h int) {
	d := 0
	for _, b := range u.Shape {
		if b == 0 {
			if d++; d > h {
				h = d
			}
		} else {
			d--
		}
	}
	return
}

// Digest of Shape and IDs together.
func (u *CentroidTree[S]) Digest() uint64 {
	d := xxhash.New()
	_, _ = d.Write(u.Shape)
	if len(u.IDs) > 0 {
		_, _ = d.Write(unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(u.IDs))), uintptr(len(u.IDs))*unsafe.Sizeof(u.IDs[0])))
	}
	return d.Sum64()
}

// output writes a CentroidTree as centroids open. noc[i] counts the children the i-th open
// node still waits for; a node closes as soon as its count drops to 0.
type output[S constraints.Unsigned] struct {
	ct  CentroidTree[S]
	noc []S
}

func newOutput[S constraints.Unsigned](n S) *output[S] {
	return &output[S]{ct: CentroidTree[S]{Shape: make([]byte, 0, 2*int(n)), IDs: make([]S, 0, n)}}
}

func (u *output[S]) Open(id, kids S) {
	u.ct.IDs = append(u.ct.IDs, id)
	u.ct.Shape = append(u.ct.Shape, 0)
	if len(u.noc) > 0 {
		u.noc[len(u.noc)-1]--
	}
	u.noc = append(u.noc, kids)
	for len(u.noc) > 0 && u.noc[len(u.noc)-1] == 0 {
		u.noc = u.noc[:len(u.noc)-1]
		u.ct.Shape = append(u.ct.Shape, 1)
	}
}
