package element

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestFormatStaticMatrix(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	expected := "const double K[2][2] = {\n" +
		"    {1.000000000000000e+00, 2.000000000000000e+00},\n" +
		"    {3.000000000000000e+00, 4.000000000000000e+00}\n" +
		"};\n"
	assert.Equal(t, expected, FormatStaticMatrix("K", m, Float64))

	f32 := FormatStaticMatrix("K", m, Float32)
	assert.True(t, strings.HasPrefix(f32, "const float K[2][2] = {\n"))
	assert.Contains(t, f32, "4.0000000e+00f}")
}

func TestFormatStaticMatrixRowVector(t *testing.T) {
	v := mat.NewVecDense(2, []float64{0.5, -1})
	assert.Equal(t, "const float F[1][2] = {\n    {5.0000000e-01f, -1.0000000e+00f}\n};\n",
		FormatStaticMatrix("F", v.T(), Float32))
}

func TestFormatElementStiffness(t *testing.T) {
	p := NewParams(100, 50, 2, 1, 1000, 0.3)
	out := FormatStaticMatrix("K_PlateRect4", LocalStiffness(p), Float64)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	// header, 12 rows, closing brace
	assert.Len(t, lines, 14)
	assert.Equal(t, "const double K_PlateRect4[12][12] = {", lines[0])
}
