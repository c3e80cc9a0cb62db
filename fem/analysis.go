package fem

import (
	"fmt"
	"time"

	"github.com/notargets/PlateFEM/element"
	"github.com/notargets/PlateFEM/mesh"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// State tracks the two phase lifecycle of an analysis
type State uint8

const (
	Uninitialized State = iota
	Meshed
	Calculated
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Meshed:
		return "meshed"
	case Calculated:
		return "calculated"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Analysis is one plate bending run: CreateMesh, then Calculate, then the
// result queries. It is not safe for concurrent use, but separate analyses
// share no state.
type Analysis struct {
	cfg   PlateConfig
	rule  mesh.FixedNodeRule
	log   log.FieldLogger
	state State

	mesh   *mesh.PlateMesh
	params element.Params

	stiffness   *mat.Dense // global K before boundary conditions
	system      *mat.Dense // global K after boundary conditions
	nodalForces *mat.VecDense
	solution    *mat.VecDense
	deformation []float64
}

type Option func(a *Analysis)

// WithFixedNodeRule replaces the default support layout
func WithFixedNodeRule(rule mesh.FixedNodeRule) Option {
	return func(a *Analysis) {
		if rule != nil {
			a.rule = rule
		}
	}
}

func WithLogger(logger log.FieldLogger) Option {
	return func(a *Analysis) {
		if logger != nil {
			a.log = logger
		}
	}
}

// NewAnalysis validates the configuration and returns an analysis in the
// Uninitialized state
func NewAnalysis(cfg PlateConfig, opts ...Option) (*Analysis, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &Analysis{
		cfg:  cfg,
		rule: mesh.DefaultFixedNodeRule,
		log:  log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func (a *Analysis) State() State { return a.state }
func (a *Analysis) Config() PlateConfig { return a.cfg }
func (a *Analysis) Width() float64 { return a.cfg.Width }
func (a *Analysis) Height() float64 { return a.cfg.Height }
func (a *Analysis) Params() element.Params { return a.params }

// CreateMesh builds the nodes and elements and derives the element
// parameters. Calling it again discards any previous results.
func (a *Analysis) CreateMesh() error {
	start := time.Now()
	a.reset()
	a.mesh = mesh.NewPlateMesh(a.cfg.Width, a.cfg.Height, a.cfg.HElementCount, a.cfg.VElementCount, a.rule)
	a.params = a.mesh.Params(a.cfg.Thickness, a.cfg.Pressure, a.cfg.Young, a.cfg.Poisson)
	a.state = Meshed

	a.log.WithFields(log.Fields{
		"nodes":    a.mesh.NumNodes(),
		"elements": a.mesh.NumElements(),
		"dof":      a.mesh.NumDOF(),
		"rule":     a.rule.Name(),
	}).Info("plate mesh created")
	a.log.WithField("elapsed", time.Since(start)).Debug("mesh generation")
	return nil
}

func (a *Analysis) reset() {
	a.mesh = nil
	a.stiffness = nil
	a.system = nil
	a.nodalForces = nil
	a.solution = nil
	a.deformation = nil
	a.state = Uninitialized
}

// Calculate assembles and solves the global system. On failure the results
// of any earlier calculation are gone and the analysis is left Meshed.
func (a *Analysis) Calculate() error {
	if a.state == Uninitialized {
		return ErrNotMeshed
	}
	a.state = Meshed
	a.system, a.nodalForces, a.solution, a.deformation = nil, nil, nil, nil

	stage := func(name string, start time.Time) {
		a.log.WithField("elapsed", time.Since(start)).Debugf("%s done", name)
	}

	// every element of the plate mesh has the same size, so one local
	// matrix and load vector serve all of them
	els := plateElements(a.mesh)
	start := time.Now()
	kl := els[0].LocalStiffness(a.params)
	a.stiffness = assembleStiffness(els, kl, a.mesh.NumDOF())
	stage("stiffness assembly", start)

	start = time.Now()
	a.nodalForces = assembleNodalForces(a.mesh, els, els[0].LocalNodalForces(a.params))
	stage("load assembly", start)

	start = time.Now()
	a.system = mat.DenseCopyOf(a.stiffness)
	if err := applyFixation(a.mesh, a.system); err != nil {
		a.log.WithError(err).Error("boundary conditions")
		return err
	}
	stage("boundary conditions", start)

	start = time.Now()
	u, err := solveDense(a.system, a.nodalForces)
	if err != nil {
		a.log.WithError(err).Error("linear solve failed")
		return err
	}
	stage("linear solve", start)

	a.solution = u
	a.deformation = extractDeflection(u)
	a.state = Calculated

	maxW, _ := a.MaxDeformation()
	a.log.WithFields(log.Fields{
		"dof":            a.mesh.NumDOF(),
		"max_deflection": maxW,
	}).Info("plate calculated")
	return nil
}
