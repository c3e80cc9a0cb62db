package fem

import (
	"fmt"

	"github.com/notargets/PlateFEM/element"
	"github.com/notargets/PlateFEM/mesh"
	"gonum.org/v1/gonum/mat"
)

const dof = element.DOFCount

// plateElements views the mesh elements through the Element interface
func plateElements(m *mesh.PlateMesh) []element.Element {
	els := make([]element.Element, len(m.Elements))
	for k, el := range m.Elements {
		els[k] = el
	}
	return els
}

// assembleStiffness scatter-adds the local matrix kl of every element into
// the global matrix through the element's DOF map. Elements of a uniform
// mesh share kl.
func assembleStiffness(els []element.Element, kl mat.Matrix, nDOF int) *mat.Dense {
	K := mat.NewDense(nDOF, nDOF, nil)
	for _, el := range els {
		dofs := el.DOFs()
		for i, gi := range dofs {
			row := K.RawRowView(gi)
			for j, gj := range dofs {
				row[gj] += kl.At(i, j)
			}
		}
	}
	return K
}

// assembleNodalForces scatter-adds the local load fl of every element.
// Fixed nodes receive no applied load.
func assembleNodalForces(m *mesh.PlateMesh, els []element.Element, fl mat.Vector) *mat.VecDense {
	F := mat.NewVecDense(m.NumDOF(), nil)
	for _, el := range els {
		dofs := el.DOFs()
		nd := el.NDOF()
		for i, ni := range el.Connectivity() {
			if m.Nodes[ni].Fixed {
				continue
			}
			for k := 0; k < nd; k++ {
				g := dofs[nd*i+k]
				F.SetVec(g, F.AtVec(g)+fl.AtVec(nd*i+k))
			}
		}
	}
	return F
}

// applyFixation zeroes the row and column of every fixed DOF and puts 1 on
// the diagonal. Together with the zero load at fixed nodes this forces the
// solved value of those DOFs to exactly 0.
func applyFixation(m *mesh.PlateMesh, K *mat.Dense) error {
	fixed := m.FixedNodes()
	if len(fixed) == 0 {
		return fmt.Errorf("%w: mesh has no fixed nodes", ErrSingularSystem)
	}
	n, _ := K.Dims()
	for _, node := range fixed {
		for k := 0; k < dof; k++ {
			t := node.DOFOffset() + k
			row := K.RawRowView(t)
			for c := range row {
				row[c] = 0
			}
			for r := 0; r < n; r++ {
				K.Set(r, t, 0)
			}
			K.Set(t, t, 1)
		}
	}
	return nil
}

// extractDeflection keeps the w component of every node's DOF triple
func extractDeflection(u *mat.VecDense) []float64 {
	w := make([]float64, u.Len()/dof)
	for i := range w {
		w[i] = u.AtVec(dof * i)
	}
	return w
}
