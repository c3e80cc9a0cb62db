package element

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

type Precision uint8

const (
	Float64 Precision = iota
	Float32
)

// FormatStaticMatrix prints m as a C array initializer, one row per line.
// Pass v.T() to print a vector as a single row.
func FormatStaticMatrix(name string, m mat.Matrix, prec Precision) string {
	ctype, verb := "double", "%.15e"
	if prec == Float32 {
		ctype, verb = "float", "%.7ef"
	}
	rows, cols := m.Dims()
	lines := make([]string, rows)
	vals := make([]string, cols)
	for i := range lines {
		for j := range vals {
			vals[j] = fmt.Sprintf(verb, m.At(i, j))
		}
		lines[i] = "    {" + strings.Join(vals, ", ") + "}"
	}
	return fmt.Sprintf("const %s %s[%d][%d] = {\n%s\n};\n",
		ctype, name, rows, cols, strings.Join(lines, ",\n"))
}
