package main

import (
	"github.com/notargets/PlateFEM/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app holds what the persistent flags resolve to before a subcommand runs
type app struct {
	cfgFile  string
	logLevel string
	cfg      config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "platefem",
		Short: "Bending of thin rectangular plates under uniform pressure",
		Long: `Computes the deflection of a thin rectangular plate under uniform
pressure with four node Kirchhoff plate elements.

By default the plate is held at three corners, (0,0), (0,H) and (W,H);
the corner at (W,0) is free.

Configuration is read from an ini file with the sections
[plate] [material] [mesh] [server] [log]. A missing file selects the
built in demo plate. Command line flags override the file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.cfgFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = a.logLevel
			}
			if err = cfg.Log.Apply(log.StandardLogger()); err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "platefem.ini", "ini configuration file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newSolveCmd(a))
	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newElementCmd(a))
	return rootCmd
}
