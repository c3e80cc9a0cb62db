package main

import (
	"fmt"

	"github.com/notargets/PlateFEM/element"
	"github.com/notargets/PlateFEM/mesh"
	"github.com/spf13/cobra"
)

func newElementCmd(a *app) *cobra.Command {
	var single bool
	cmd := &cobra.Command{
		Use:   "element",
		Short: "Print the element stiffness matrix and load vector as C arrays",
		Long: `Prints the 12×12 stiffness matrix and the 12 entry nodal load vector of
one element of the configured mesh. Every element of a plate mesh is the
same size, so one element describes them all.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plate := a.cfg.Plate
			if err := plate.Validate(); err != nil {
				return err
			}
			m := mesh.NewPlateMesh(plate.Width, plate.Height, plate.HElementCount, plate.VElementCount, a.cfg.Rule())
			p := m.Params(plate.Thickness, plate.Pressure, plate.Young, plate.Poisson)
			el := m.Elements[0]

			prec := element.Float64
			if single {
				prec = element.Float32
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "// %s (%s)\n", el.Name(), element.GetProperties(el))
			fmt.Fprintf(out, "// element 0: %s, %.6g × %.6g mm\n", el, p.Width, p.Height)
			fmt.Fprint(out, element.FormatStaticMatrix("K_"+el.ShortName(), el.LocalStiffness(p), prec))
			fmt.Fprint(out, element.FormatStaticMatrix("F_"+el.ShortName(), el.LocalNodalForces(p).T(), prec))
			return nil
		},
	}
	cmd.Flags().BoolVar(&single, "float32", false, "print single precision literals")
	return cmd
}
