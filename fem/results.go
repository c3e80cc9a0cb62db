package fem

import (
	"github.com/notargets/PlateFEM/element"
	"github.com/notargets/PlateFEM/mesh"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func (a *Analysis) requireMesh() error {
	if a.state == Uninitialized {
		return ErrNotMeshed
	}
	return nil
}

func (a *Analysis) requireResults() error {
	if a.state != Calculated {
		return ErrNotCalculated
	}
	return nil
}

func (a *Analysis) Mesh() (*mesh.PlateMesh, error) {
	if err := a.requireMesh(); err != nil {
		return nil, err
	}
	return a.mesh, nil
}

func (a *Analysis) Nodes() ([]element.Node, error) {
	if err := a.requireMesh(); err != nil {
		return nil, err
	}
	return a.mesh.Nodes, nil
}

func (a *Analysis) Elements() ([]element.Rect4, error) {
	if err := a.requireMesh(); err != nil {
		return nil, err
	}
	return a.mesh.Elements, nil
}

// StiffnessBeforeBCs returns the assembled global stiffness matrix as it was
// before the fixed DOFs were eliminated
func (a *Analysis) StiffnessBeforeBCs() (mat.Matrix, error) {
	if err := a.requireResults(); err != nil {
		return nil, err
	}
	return a.stiffness, nil
}

// SystemMatrix returns the global matrix after boundary conditions
func (a *Analysis) SystemMatrix() (mat.Matrix, error) {
	if err := a.requireResults(); err != nil {
		return nil, err
	}
	return a.system, nil
}

func (a *Analysis) NodalForces() (mat.Vector, error) {
	if err := a.requireResults(); err != nil {
		return nil, err
	}
	return a.nodalForces, nil
}

// Solution returns a copy of the full DOF vector, three entries per node
func (a *Analysis) Solution() ([]float64, error) {
	if err := a.requireResults(); err != nil {
		return nil, err
	}
	u := make([]float64, a.solution.Len())
	copy(u, a.solution.RawVector().Data)
	return u, nil
}

// Deformation returns a copy of the per-node deflection in node order
func (a *Analysis) Deformation() ([]float64, error) {
	if err := a.requireResults(); err != nil {
		return nil, err
	}
	w := make([]float64, len(a.deformation))
	copy(w, a.deformation)
	return w, nil
}

// DeformationGrid returns the deflection as a VNodeCount × HNodeCount
// matrix: row j is the y sample j, column i the x sample i.
func (a *Analysis) DeformationGrid() (*mat.Dense, error) {
	w, err := a.Deformation()
	if err != nil {
		return nil, err
	}
	byColumn := mat.NewDense(a.mesh.HNodeCount, a.mesh.VNodeCount, w)
	return mat.DenseCopyOf(byColumn.T()), nil
}

func (a *Analysis) MaxDeformation() (float64, error) {
	if err := a.requireResults(); err != nil {
		return 0, err
	}
	return floats.Max(a.deformation), nil
}
