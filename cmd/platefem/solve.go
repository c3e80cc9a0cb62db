package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/notargets/PlateFEM/fem"
	"github.com/notargets/PlateFEM/mesh"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

type solveFlags struct {
	plate    fem.PlateConfig
	rule     string
	asJSON   bool
	withGrid bool
	withMesh bool
}

// solveReport is the --json output
type solveReport struct {
	Plate          fem.PlateConfig `json:"plate"`
	Rule           string          `json:"rule"`
	Nodes          int             `json:"nodes"`
	Elements       int             `json:"elements"`
	DOF            int             `json:"dof"`
	FixedNodes     []int           `json:"fixed_nodes"`
	MaxDeformation float64         `json:"max_deformation"`
	Grid           [][]float64     `json:"grid,omitempty"`
}

func newSolveCmd(a *app) *cobra.Command {
	f := &solveFlags{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Mesh and solve one plate and print the deflection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			overrideFloat(cmd, "width", &cfg.Plate.Width, f.plate.Width)
			overrideFloat(cmd, "height", &cfg.Plate.Height, f.plate.Height)
			overrideFloat(cmd, "thickness", &cfg.Plate.Thickness, f.plate.Thickness)
			overrideFloat(cmd, "pressure", &cfg.Plate.Pressure, f.plate.Pressure)
			overrideFloat(cmd, "young", &cfg.Plate.Young, f.plate.Young)
			overrideFloat(cmd, "poisson", &cfg.Plate.Poisson, f.plate.Poisson)
			if cmd.Flags().Changed("h-elements") {
				cfg.Plate.HElementCount = f.plate.HElementCount
			}
			if cmd.Flags().Changed("v-elements") {
				cfg.Plate.VElementCount = f.plate.VElementCount
			}
			if cmd.Flags().Changed("rule") {
				cfg.FixedRule = f.rule
			}
			rule, err := mesh.RuleByName(cfg.FixedRule)
			if err != nil {
				return err
			}

			analysis, err := fem.NewAnalysis(cfg.Plate, fem.WithFixedNodeRule(rule), fem.WithLogger(log.StandardLogger()))
			if err != nil {
				return err
			}
			if err = analysis.CreateMesh(); err != nil {
				return err
			}
			if err = analysis.Calculate(); err != nil {
				return err
			}
			if f.asJSON {
				return writeJSONReport(cmd.OutOrStdout(), analysis, f.withGrid)
			}
			if f.withMesh {
				m, err := analysis.Mesh()
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), m)
			}
			return writeTextReport(cmd.OutOrStdout(), analysis, f.withGrid)
		},
	}
	fl := cmd.Flags()
	fl.Float64Var(&f.plate.Width, "width", 0, "plate width in mm")
	fl.Float64Var(&f.plate.Height, "height", 0, "plate height in mm")
	fl.Float64Var(&f.plate.Thickness, "thickness", 0, "plate thickness in mm")
	fl.Float64Var(&f.plate.Pressure, "pressure", 0, "uniform pressure")
	fl.Float64Var(&f.plate.Young, "young", 0, "Young's modulus")
	fl.Float64Var(&f.plate.Poisson, "poisson", 0, "Poisson's ratio")
	fl.IntVar(&f.plate.HElementCount, "h-elements", 0, "element count along x")
	fl.IntVar(&f.plate.VElementCount, "v-elements", 0, "element count along y")
	fl.StringVar(&f.rule, "rule", "", "fixed node rule (three-corners, all-corners)")
	fl.BoolVar(&f.asJSON, "json", false, "print the result as JSON")
	fl.BoolVar(&f.withGrid, "grid", false, "include the deflection grid")
	fl.BoolVar(&f.withMesh, "mesh", false, "print the mesh summary before the report")
	return cmd
}

func overrideFloat(cmd *cobra.Command, name string, dst *float64, v float64) {
	if cmd.Flags().Changed(name) {
		*dst = v
	}
}

func buildReport(a *fem.Analysis, withGrid bool) (solveReport, error) {
	m, err := a.Mesh()
	if err != nil {
		return solveReport{}, err
	}
	maxW, err := a.MaxDeformation()
	if err != nil {
		return solveReport{}, err
	}
	r := solveReport{
		Plate:          a.Config(),
		Rule:           m.Rule.Name(),
		Nodes:          m.NumNodes(),
		Elements:       m.NumElements(),
		DOF:            m.NumDOF(),
		MaxDeformation: maxW,
	}
	for _, n := range m.FixedNodes() {
		r.FixedNodes = append(r.FixedNodes, n.Index)
	}
	if withGrid {
		grid, err := a.DeformationGrid()
		if err != nil {
			return solveReport{}, err
		}
		rows, _ := grid.Dims()
		r.Grid = make([][]float64, rows)
		for j := range r.Grid {
			r.Grid[j] = mat.Row(nil, j, grid)
		}
	}
	return r, nil
}

func writeJSONReport(w io.Writer, a *fem.Analysis, withGrid bool) error {
	r, err := buildReport(a, withGrid)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func writeTextReport(w io.Writer, a *fem.Analysis, withGrid bool) error {
	r, err := buildReport(a, withGrid)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Plate\t%g × %g × %g mm\n", r.Plate.Width, r.Plate.Height, r.Plate.Thickness)
	fmt.Fprintf(tw, "Material\tE=%g\tν=%g\n", r.Plate.Young, r.Plate.Poisson)
	fmt.Fprintf(tw, "Pressure\t%g\n", r.Plate.Pressure)
	fmt.Fprintf(tw, "Mesh\t%d × %d elements\t%d nodes\t%d DOF\n",
		r.Plate.HElementCount, r.Plate.VElementCount, r.Nodes, r.DOF)
	p := a.Params()
	fmt.Fprintf(tw, "Element\t%.4g × %.4g mm\tD=%.4g\n", p.Width, p.Height, p.FlexuralCoefficient()*4*p.Width*p.Height)
	fmt.Fprintf(tw, "Supports\t%s\t%v\n", r.Rule, r.FixedNodes)
	fmt.Fprintf(tw, "Max deflection\t%.6g mm\n", r.MaxDeformation)
	if err = tw.Flush(); err != nil {
		return err
	}
	if !withGrid {
		return nil
	}
	// top edge first so the printout reads like the plate
	fmt.Fprintln(w)
	for j := len(r.Grid) - 1; j >= 0; j-- {
		for i, v := range r.Grid[j] {
			if i > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprintf(w, "%10.4g", v)
		}
		fmt.Fprintln(w)
	}
	return nil
}
