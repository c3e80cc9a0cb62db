package server

import (
	"encoding/json"
	"errors"

	"github.com/notargets/PlateFEM/element"
	"github.com/notargets/PlateFEM/fem"
	"github.com/notargets/PlateFEM/mesh"
	"gonum.org/v1/gonum/mat"
)

// Msg is the envelope of every websocket frame in both directions
type Msg struct {
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content,omitempty"`
}

// request types
const (
	TypeMesh      = "mesh"
	TypeCalculate = "calculate"
)

// reply types
const (
	TypeSession    = "session"
	TypeMeshed     = "meshed"
	TypeCalculated = "calculated"
	TypeError      = "error"
)

type ErrorKind string

const (
	KindConfig    ErrorKind = "config"
	KindNumerical ErrorKind = "numerical"
	KindSequence  ErrorKind = "sequence"
	KindProtocol  ErrorKind = "protocol"
)

type SessionContent struct {
	ID string `json:"id"`
}

type ErrorContent struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// ElementOutline is one element with its closed corner polygon
type ElementOutline struct {
	Index int       `json:"index"`
	Nodes [4]int    `json:"nodes"`
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
}

type MeshedContent struct {
	Width      float64          `json:"width"`
	Height     float64          `json:"height"`
	HNodeCount int              `json:"h_node_count"`
	VNodeCount int              `json:"v_node_count"`
	Rule       string           `json:"rule"`
	Nodes      []element.Node   `json:"nodes"`
	Elements   []ElementOutline `json:"elements"`
}

type CalculatedContent struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	// Grid[j][i] is the deflection at x sample i, y sample j
	Grid [][]float64 `json:"grid"`
	Max  float64     `json:"max"`
}

func newMsg(typ string, content interface{}) (Msg, error) {
	data, err := json.Marshal(content)
	if err != nil {
		return Msg{}, err
	}
	return Msg{Type: typ, Content: data}, nil
}

func errorMsg(kind ErrorKind, err error) Msg {
	data, _ := json.Marshal(ErrorContent{Kind: kind, Message: err.Error()})
	return Msg{Type: TypeError, Content: data}
}

func errorKind(err error) ErrorKind {
	switch {
	case errors.Is(err, fem.ErrInvalidConfig):
		return KindConfig
	case errors.Is(err, fem.ErrSingularSystem):
		return KindNumerical
	case errors.Is(err, fem.ErrNotMeshed), errors.Is(err, fem.ErrNotCalculated):
		return KindSequence
	}
	return KindProtocol
}

func buildMeshed(m *mesh.PlateMesh) MeshedContent {
	out := MeshedContent{
		Width:      m.Width,
		Height:     m.Height,
		HNodeCount: m.HNodeCount,
		VNodeCount: m.VNodeCount,
		Rule:       m.Rule.Name(),
		Nodes:      m.Nodes,
		Elements:   make([]ElementOutline, m.NumElements()),
	}
	for k, el := range m.Elements {
		xs, ys := m.Outline(k)
		out.Elements[k] = ElementOutline{Index: k, Nodes: el.Nodes, X: xs, Y: ys}
	}
	return out
}

func buildCalculated(a *fem.Analysis) (CalculatedContent, error) {
	grid, err := a.DeformationGrid()
	if err != nil {
		return CalculatedContent{}, err
	}
	maxW, err := a.MaxDeformation()
	if err != nil {
		return CalculatedContent{}, err
	}
	rows, _ := grid.Dims()
	out := CalculatedContent{
		Width:  a.Width(),
		Height: a.Height(),
		Grid:   make([][]float64, rows),
		Max:    maxW,
	}
	for j := range out.Grid {
		out.Grid[j] = mat.Row(nil, j, grid)
	}
	return out, nil
}
