package element

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// NVertices is the number of corner nodes of a rectangular plate element
const NVertices = 4

// Rect4 is the four node, twelve DOF non-conforming rectangular plate
// bending element. Nodes are indices into the mesh node arena, ordered
// (x_i,y_j), (x_i,y_j+1), (x_i+1,y_j+1), (x_i+1,y_j).
type Rect4 struct {
	Nodes [NVertices]int
}

func NewRect4(n0, n1, n2, n3 int) Rect4 {
	return Rect4{Nodes: [NVertices]int{n0, n1, n2, n3}}
}

func (Rect4) Name() string { return "Rectangular Plate Bending Element" }
func (Rect4) ShortName() string { return "PlateRect4" }
func (Rect4) GeometryType() ElementGeometry { return Rectangle }
func (Rect4) Dimensions() Dimensionality { return D2 }
func (Rect4) NVp() int { return NVertices }
func (Rect4) NDOF() int { return DOFCount }

func (r Rect4) Connectivity() []int {
	return r.Nodes[:]
}

func (r Rect4) DOFs() []int {
	dofs := make([]int, NVertices*DOFCount)
	for i, n := range r.Nodes {
		for k := 0; k < DOFCount; k++ {
			dofs[DOFCount*i+k] = DOFCount*n + k
		}
	}
	return dofs
}

func (r Rect4) String() string {
	return fmt.Sprintf("%s %v", r.ShortName(), r.Nodes)
}

func (Rect4) LocalStiffness(p Params) *mat.Dense {
	return LocalStiffness(p)
}

func (Rect4) LocalNodalForces(p Params) *mat.VecDense {
	return LocalNodalForces(p)
}

// Sign reflection operators used to derive the remaining 3×3 blocks from
// the four base blocks.
var (
	reflectW  = mat.NewDiagDense(3, []float64{-1, 1, 1})
	reflectTx = mat.NewDiagDense(3, []float64{1, -1, 1})
	reflectTy = mat.NewDiagDense(3, []float64{1, 1, -1})
)

// baseBlocks returns the unscaled K11, K12, K13, K14 blocks
func baseBlocks(p Params) (k11, k12, k13, k14 *mat.Dense) {
	var (
		a, b  = p.Width, p.Height
		u     = p.Poisson
		alpha = a / b
		beta  = b / a
		al2   = alpha * alpha
		be2   = beta * beta
		c1    = (1. / 5.) * (1 + 4*u)
		c2    = (1. / 5.) * (1 - u)
		c3    = (2. / 5.) * (7 - 2*u)
	)

	k11 = mat.NewDense(3, 3, []float64{
		4*(be2+al2) + c3, b * (2*al2 + c1), a * (-2*be2 - c1),
		b * (2*al2 + c1), b * b * ((4./3.)*al2 + (4./15.)*(1-u)), -(u * a * b),
		a * (-2*be2 - c1), -(u * a * b), a * a * ((4./3.)*be2 + (4./15.)*(1-u)),
	})

	k12 = mat.NewDense(3, 3, []float64{
		-(2*(2*be2-al2) + c3), b * (al2 - c1), -(a * (2*be2 + c2)),
		b * (al2 - c1), b * b * ((2./3.)*al2 - (4./15.)*(1-u)), 0,
		a * (2*be2 + c2), 0, a * a * ((2./3.)*be2 - (1./15.)*(1-u)),
	})

	k13 = mat.NewDense(3, 3, []float64{
		-(2*(be2+al2) + c3), b * (al2 - c2), a * (-be2 + c2),
		b * (-al2 + c2), b * b * ((1./3.)*al2 + (1./15.)*(1-u)), 0,
		a * (be2 - c2), 0, a * a * ((1./3.)*be2 + (1./15.)*(1-u)),
	})

	k14 = mat.NewDense(3, 3, []float64{
		2*(be2-2*al2) - c3, b * (2*al2 + c2), a * (-be2 + c1),
		b * (-2*al2 - c2), b * b * ((2./3.)*al2 - (1./15.)*(1-u)), 0,
		a * (-be2 + c1), 0, a * a * ((2./3.)*be2 - (4./15.)*(1-u)),
	})
	return
}

// conjugate returns Iᵀ K I
func conjugate(I *mat.DiagDense, K mat.Matrix) *mat.Dense {
	var tmp, out mat.Dense
	tmp.Mul(I.T(), K)
	out.Mul(&tmp, I)
	return &out
}

// LocalStiffness assembles the 12×12 element stiffness matrix from its
// sixteen 3×3 blocks. Block (I,J) of the result is KIJᵀ for I <= J and KJI
// below the diagonal, which makes the matrix symmetric.
func LocalStiffness(p Params) *mat.Dense {
	k11, k12, k13, k14 := baseBlocks(p)

	k22 := conjugate(reflectTy, k11)
	k23 := conjugate(reflectTy, k14)
	k24 := conjugate(reflectTy, k23)
	k33 := conjugate(reflectW, k11)
	k34 := conjugate(reflectW, k12)
	k44 := conjugate(reflectTx, k11)

	upper := [NVertices][NVertices]*mat.Dense{
		{k11, k12, k13, k14},
		{nil, k22, k23, k24},
		{nil, nil, k33, k34},
		{nil, nil, nil, k44},
	}

	n := NVertices * DOFCount
	K := mat.NewDense(n, n, nil)
	for I := 0; I < NVertices; I++ {
		for J := 0; J < NVertices; J++ {
			var blk mat.Matrix
			if I <= J {
				blk = upper[I][J].T()
			} else {
				blk = upper[J][I]
			}
			K.Slice(DOFCount*I, DOFCount*(I+1), DOFCount*J, DOFCount*(J+1)).(*mat.Dense).Copy(blk)
		}
	}
	K.Scale(p.FlexuralCoefficient(), K)
	return K
}

// LocalNodalForces lumps the uniform pressure to the four corners. The corner
// pattern carries the ±b, ±a moment arms but only the deflection entry of
// each node survives the DOF mask, so each node gets p·a·b/12 on w.
func LocalNodalForces(p Params) *mat.VecDense {
	a, b := p.Width, p.Height
	F := mat.NewVecDense(NVertices*DOFCount, []float64{
		3, b, -a,
		3, b, a,
		3, -b, -a,
		3, -b, -a,
	})
	mask := mat.NewVecDense(NVertices*DOFCount, []float64{
		1, 0, 0,
		1, 0, 0,
		1, 0, 0,
		1, 0, 0,
	})
	F.MulElemVec(F, mask)
	F.ScaleVec(p.Pressure*a*b/36, F)
	return F
}
