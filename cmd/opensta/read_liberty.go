package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/opensta-go/opensta/liberty"
	"github.com/opensta-go/opensta/liberty/lbfile"
)

var readLibertyLibPath string

var readLibertyCmd = &cobra.Command{
	Use:   "read-liberty",
	Short: "Read a Liberty cell library and report summary statistics",
	RunE:  runReadLiberty,
}

func init() {
	readLibertyCmd.Flags().StringVar(&readLibertyLibPath, "lib", "", "path to a .lib or .lib.gz file (required)")
	_ = readLibertyCmd.MarkFlagRequired("lib")
	rootCmd.AddCommand(readLibertyCmd)
}

func runReadLiberty(cmd *cobra.Command, args []string) error {
	lib, err := loadLibrary(readLibertyLibPath)
	if err != nil {
		return err
	}
	reportLibrary(lib)
	return nil
}

func loadLibrary(path string) (*liberty.Library, error) {
	builder := liberty.NewBuilder()
	lib, err := lbfile.ReadFile(path, builder, logger)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lib, nil
}

func reportLibrary(lib *liberty.Library) {
	cells := lib.Cells()
	var arcSets, arcs int
	for _, c := range cells {
		arcSets += len(c.ArcSets())
		for _, s := range c.ArcSets() {
			arcs += s.ArcCount()
		}
	}
	fmt.Printf("library %q (%s)\n", lib.Name(), lib.Filename())
	fmt.Printf("  cells:          %s\n", humanize.Comma(int64(len(cells))))
	fmt.Printf("  timing arc sets: %s\n", humanize.Comma(int64(arcSets)))
	fmt.Printf("  timing arcs:     %s\n", humanize.Comma(int64(arcs)))
}
