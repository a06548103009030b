package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var logger *zap.Logger

var rootCmd = &cobra.Command{
	Use:   "opensta",
	Short: "Read and write Liberty cell libraries and SDF delay files",
	Long: `opensta loads Liberty (.lib/.lib.gz) cell libraries and reads or
writes SDF back-annotation files against them.

Use:

	opensta read-liberty --lib mylib.lib
	opensta read-sdf --lib mylib.lib --instance u1=INV1 --sdf design.sdf
	opensta write-sdf --lib mylib.lib --instance u1=INV1 --out design.sdf

read-sdf and write-sdf elaborate a minimal design from --instance flags
(one leaf instance per flag, wired up straight from the named cell's own
timing arc sets) since this tool has no netlist/graph elaborator of its
own — see sta.FakeNetwork/FakeGraph.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	cobra.OnInitialize(initLogger)
}

func initLogger() {
	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		l = zap.NewNop()
	}
	logger = l
}
