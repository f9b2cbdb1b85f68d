package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jcurry/wa-firewatch/internal/dataset"
	"github.com/jcurry/wa-firewatch/internal/models"
	"github.com/jcurry/wa-firewatch/internal/report"
	"github.com/jcurry/wa-firewatch/internal/risk"
)

type reportFlags struct {
	counties     string
	declarations string
	out          string
}

func newReportCmd() *cobra.Command {
	f := &reportFlags{}

	cmd := &cobra.Command{
		Use:   "report <definition.yaml>",
		Short: "Generate a report from a YAML definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(args[0], f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.counties, "counties", "./data/WA_Climate_Fire_Dashboard_Data.csv", "Path to the dashboard counties CSV")
	flags.StringVar(&f.declarations, "declarations", "", "Path to the FEMA declarations CSV (optional)")
	flags.StringVar(&f.out, "out", "", "Write the report to a file instead of stdout")

	return cmd
}

func runReport(defPath string, f *reportFlags) error {
	def, err := report.LoadDefinition(defPath)
	if err != nil {
		return exitError(3, "failed to load report definition: %v", err)
	}

	counties, decls, err := loadAssessed(f.counties, f.declarations)
	if err != nil {
		return err
	}

	out, err := report.Generate(def, counties, decls)
	if err != nil {
		return exitError(5, "failed to generate report: %v", err)
	}

	if f.out != "" {
		if err := os.WriteFile(f.out, []byte(out), 0o644); err != nil {
			return exitError(5, "failed to write report: %v", err)
		}
		fmt.Println("wrote", f.out)
		return nil
	}
	fmt.Print(out)
	return nil
}

// loadAssessed loads and assesses the counties CSV, plus declarations
// when a path is given.
func loadAssessed(countiesPath, declsPath string) ([]models.County, []models.Declaration, error) {
	counties, err := dataset.LoadCounties(countiesPath)
	if err != nil {
		return nil, nil, exitError(2, "failed to load counties: %v", err)
	}
	for i := range counties {
		counties[i].Assessment = risk.Assess(counties[i].Metrics)
	}

	var decls []models.Declaration
	if declsPath != "" {
		decls, err = dataset.LoadDeclarations(declsPath)
		if err != nil {
			return nil, nil, exitError(2, "failed to load declarations: %v", err)
		}
	}
	return counties, decls, nil
}
