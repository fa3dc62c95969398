package nodes

import (
	"fmt"
)

// Deriv identifies which derivative of a node value a variable holds.
type Deriv int

const (
	Pos Deriv = iota
	Vel
)

// NumDerivs is the number of derivatives stored per node and dimension.
const NumDerivs = 2

func (d Deriv) String() string {
	switch d {
	case Pos:
		return "pos"
	case Vel:
		return "vel"
	default:
		return fmt.Sprintf("Deriv(%d)", int(d))
	}
}

// NodeValueInfo addresses one scalar of one node.
type NodeValueInfo struct {
	ID    int
	Dim   int
	Deriv Deriv
}

func (nvi NodeValueInfo) String() string {
	return fmt.Sprintf("node %d %s[%d]", nvi.ID, nvi.Deriv, nvi.Dim)
}

// IndexMap maps each compact variable index to every node scalar which it
// backs. Nodes held by a constant polynomial share the variables of the node
// before them, so only moving nodes cost variables.
type IndexMap struct {
	dims    int
	rows    [][]NodeValueInfo
	reverse map[NodeValueInfo]int
}

// BuildIndexMap walks the polynomials in order. The first node always gets
// fresh variables. Each non-constant polynomial advances the cursor by one
// block (position then velocity, dims scalars each) before its end node is
// recorded; a constant polynomial records its end node into the block that
// already holds its start node. Without polynomials there are no nodes, so no
// variables.
func BuildIndexMap(polys []PolyInfo, dims int) IndexMap {
	m := IndexMap{
		dims:    dims,
		reverse: map[NodeValueInfo]int{},
	}

	if dims <= 0 || len(polys) == 0 {
		return m
	}

	start := 0
	m.record(start, 0)

	for i, p := range polys {
		if !p.Constant {
			start += m.Stride()
		}

		// The end node of polynomial i.
		m.record(start, i+1)
	}

	return m
}

func (m *IndexMap) record(start, id int) {
	for len(m.rows) < start+m.Stride() {
		m.rows = append(m.rows, nil)
	}

	for dim := 0; dim < m.dims; dim++ {
		m.add(start+dim, NodeValueInfo{ID: id, Dim: dim, Deriv: Pos})
		m.add(start+m.dims+dim, NodeValueInfo{ID: id, Dim: dim, Deriv: Vel})
	}
}

func (m *IndexMap) add(idx int, nvi NodeValueInfo) {
	m.rows[idx] = append(m.rows[idx], nvi)
	m.reverse[nvi] = idx
}

// Stride is the number of variables reserved for each moving node.
func (m IndexMap) Stride() int {
	return NumDerivs * m.dims
}

// Dims is the number of spatial dimensions per node.
func (m IndexMap) Dims() int {
	return m.dims
}

// Rows returns the number of compact variables.
func (m IndexMap) Rows() int {
	return len(m.rows)
}

// NodeValues returns the node scalars backed by the variable at idx. The
// first entry is the node which the variable is bounded by.
func (m IndexMap) NodeValues(idx int) ([]NodeValueInfo, error) {
	if idx < 0 || idx >= len(m.rows) || len(m.rows[idx]) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownIndex, idx)
	}

	return append([]NodeValueInfo(nil), m.rows[idx]...), nil
}

// Index returns the variable which backs one scalar of a node.
func (m IndexMap) Index(id, dim int, deriv Deriv) (int, error) {
	nvi := NodeValueInfo{ID: id, Dim: dim, Deriv: deriv}
	idx, ok := m.reverse[nvi]
	if !ok {
		return 0, fmt.Errorf("%w: no variable for %s", ErrUnknownIndex, nvi)
	}

	return idx, nil
}
