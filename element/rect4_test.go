package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func squareSteel() Params {
	return NewParams(1000, 1000, 10, 1.0, 200000, 0.3)
}

func TestLocalStiffnessSymmetric(t *testing.T) {
	for _, p := range []Params{
		squareSteel(),
		NewParams(250, 100, 3, 200, 11, 0.34),
		NewParams(53.3, 160, 12, 0.5, 70000, 0),
	} {
		K := LocalStiffness(p)
		r, c := K.Dims()
		require.Equal(t, 12, r)
		require.Equal(t, 12, c)
		assert.Truef(t, mat.EqualApprox(K, K.T(), 1.e-9*mat.Norm(K, 1)),
			"stiffness not symmetric for %+v", p)
	}
}

func TestLocalStiffnessBaseBlock(t *testing.T) {
	var (
		p    = squareSteel()
		K    = LocalStiffness(p)
		coef = p.FlexuralCoefficient()
		u    = p.Poisson
		a, b = p.Width, p.Height
	)
	assert.InDelta(t, 200000*1000/(48*(1-0.09)*1.e6), coef, 1.e-12)

	// alpha = beta = 1 on a square element
	expected := [][]float64{
		{8 + 0.4*(7-2*u), b * (2 + 0.2*(1+4*u)), a * (-2 - 0.2*(1+4*u))},
		{b * (2 + 0.2*(1+4*u)), b * b * (4./3. + (4./15.)*(1-u)), -u * a * b},
		{a * (-2 - 0.2*(1+4*u)), -u * a * b, a * a * (4./3. + (4./15.)*(1-u))},
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDeltaf(t, coef*expected[i][j], K.At(i, j), 1.e-9*coef*b*b,
				"K(%d,%d)", i, j)
		}
	}
}

func TestLocalStiffnessReflectedBlocks(t *testing.T) {
	p := NewParams(300, 120, 4, 1, 2.1e5, 0.28)
	k11, k12, _, k14 := baseBlocks(p)
	K := LocalStiffness(p)
	coef := p.FlexuralCoefficient()

	block := func(I, J int) mat.Matrix {
		return K.Slice(3*I, 3*I+3, 3*J, 3*J+3)
	}
	scaled := func(m mat.Matrix) *mat.Dense {
		var d mat.Dense
		d.Scale(coef, m)
		return &d
	}

	// Diagonal blocks are sign reflections of K11
	assert.True(t, mat.EqualApprox(block(0, 0), scaled(k11.T()), 1.e-9))
	assert.True(t, mat.EqualApprox(block(1, 1), scaled(conjugate(reflectTy, k11).T()), 1.e-9))
	assert.True(t, mat.EqualApprox(block(2, 2), scaled(conjugate(reflectW, k11).T()), 1.e-9))
	assert.True(t, mat.EqualApprox(block(3, 3), scaled(conjugate(reflectTx, k11).T()), 1.e-9))

	// Upper blocks are transposes, lower blocks are the base blocks
	assert.True(t, mat.EqualApprox(block(0, 1), scaled(k12.T()), 1.e-9))
	assert.True(t, mat.EqualApprox(block(1, 0), scaled(k12), 1.e-9))
	assert.True(t, mat.EqualApprox(block(3, 0), scaled(k14), 1.e-9))

	// K24 is K14 reflected twice by the same operator
	assert.True(t, mat.EqualApprox(block(3, 1), scaled(k14), 1.e-9))
	assert.True(t, mat.EqualApprox(block(3, 2), scaled(conjugate(reflectW, k12)), 1.e-9))
}

func TestLocalStiffnessDiagonalPositive(t *testing.T) {
	K := LocalStiffness(NewParams(80, 40, 2, 1, 1000, 0.25))
	for i := 0; i < 12; i++ {
		assert.Greaterf(t, K.At(i, i), 0., "diagonal %d", i)
	}
}

func TestLocalNodalForces(t *testing.T) {
	p := NewParams(200, 50, 3, 2.5, 11, 0.34)
	F := LocalNodalForces(p)
	require.Equal(t, 12, F.Len())
	w := p.Pressure * p.Width * p.Height / 12
	for i := 0; i < NVertices; i++ {
		assert.InDelta(t, w, F.AtVec(3*i), 1.e-12)
		assert.Zero(t, F.AtVec(3*i+1))
		assert.Zero(t, F.AtVec(3*i+2))
	}
	p.Pressure = 0
	assert.Zero(t, mat.Sum(LocalNodalForces(p)))
}

func TestRect4DOFs(t *testing.T) {
	el := NewRect4(0, 1, 4, 3)
	assert.Equal(t, []int{0, 1, 4, 3}, el.Connectivity())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 12, 13, 14, 9, 10, 11}, el.DOFs())

	props := GetProperties(el)
	assert.Equal(t, Rectangle, props.Type)
	assert.Equal(t, D2, props.Dimensions)
	assert.Equal(t, 4, props.NVp)
	assert.Equal(t, 3, props.NDOF)
	assert.Equal(t, "PlateRect4 [0 1 4 3]", el.String())
	assert.Equal(t, "PlateRect4, 2D Rectangle, 4 nodes × 3 DOF", props.String())
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		ok   bool
	}{
		{"valid", squareSteel(), true},
		{"zero pressure", NewParams(1000, 1000, 10, 0, 200000, 0.3), true},
		{"zero width", NewParams(0, 10, 1, 1, 1, 0.3), false},
		{"negative height", NewParams(10, -1, 1, 1, 1, 0.3), false},
		{"zero thickness", NewParams(10, 10, 0, 1, 1, 0.3), false},
		{"negative pressure", NewParams(10, 10, 1, -1, 1, 0.3), false},
		{"zero young", NewParams(10, 10, 1, 1, 0, 0.3), false},
		{"poisson half", NewParams(10, 10, 1, 1, 1, 0.5), false},
		{"negative poisson", NewParams(10, 10, 1, 1, 1, -0.1), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.p.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidParams)
			}
		})
	}
}

func TestNodeDOFOffset(t *testing.T) {
	n := Node{Index: 7, X: 1, Y: 2, Fixed: true}
	assert.Equal(t, 21, n.DOFOffset())
	assert.Equal(t, "Node 7 (1, 2) fixed", n.String())
}
