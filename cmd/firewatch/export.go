package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcurry/wa-firewatch/internal/report"
)

type exportFlags struct {
	counties string
	dir      string
	prefix   string
}

func newExportCmd() *cobra.Command {
	f := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export assessed county data to a timestamped CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.counties, "counties", "./data/WA_Climate_Fire_Dashboard_Data.csv", "Path to the dashboard counties CSV")
	flags.StringVar(&f.dir, "dir", ".", "Directory to write the export into")
	flags.StringVar(&f.prefix, "prefix", "wa_fire_risk", "Export filename prefix")

	return cmd
}

func runExport(f *exportFlags) error {
	counties, _, err := loadAssessed(f.counties, "")
	if err != nil {
		return err
	}

	path, err := report.ExportCSV(f.dir, f.prefix, counties)
	if err != nil {
		return exitError(5, "failed to export: %v", err)
	}
	fmt.Println("wrote", path)
	return nil
}
