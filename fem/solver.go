package fem

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// MaxConditionNumber is the largest condition number accepted for the
// global system
var MaxConditionNumber = mat.ConditionTolerance

// solveDense solves K u = F with a general LU factorization. The matrix is
// not assumed positive definite.
func solveDense(K *mat.Dense, F *mat.VecDense) (*mat.VecDense, error) {
	n, _ := K.Dims()
	var lu mat.LU
	lu.Factorize(K)
	cond := lu.Cond()
	if math.IsNaN(cond) || cond >= MaxConditionNumber {
		return nil, fmt.Errorf("%w: condition number %.3g", ErrSingularSystem, cond)
	}

	u := mat.NewVecDense(n, nil)
	err := lu.SolveVecTo(u, false, F)
	if errors.Is(err, mat.ErrSingular) {
		// LU reports singularity when exp(LogDet) underflows, which happens on
		// large well conditioned systems. Scale K so that |det| = 1 and retry.
		logDet, _ := lu.LogDet()
		scale := math.Exp(-logDet / float64(n))
		var Ks mat.Dense
		Ks.Scale(scale, K)
		lu.Factorize(&Ks)
		if err = lu.SolveVecTo(u, false, F); err == nil {
			u.ScaleVec(scale, u)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularSystem, err)
	}

	data := u.RawVector().Data
	if floats.HasNaN(data) || math.IsInf(floats.Max(data), 1) || math.IsInf(floats.Min(data), -1) {
		return nil, fmt.Errorf("%w: non-finite solution", ErrSingularSystem)
	}
	return u, nil
}
