package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jcurry/wa-firewatch/internal/dataset"
	"github.com/jcurry/wa-firewatch/internal/risk"
)

// newScoreCmd scores a dashboard CSV in one shot and prints the ranked
// assessments. A county with a missing or non-numeric component score
// fails the whole run.
func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <counties-csv>",
		Short: "Assess county risk from a dashboard CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(args[0])
		},
	}
}

func runScore(path string) error {
	counties, err := dataset.LoadCounties(path)
	if err != nil {
		var invalid *risk.InvalidMetricError
		if errors.As(err, &invalid) {
			return exitError(2, "invalid dataset: %v", invalid)
		}
		return exitError(3, "failed to load counties: %v", err)
	}

	for i := range counties {
		counties[i].Assessment = risk.Assess(counties[i].Metrics)
	}
	sort.Slice(counties, func(i, j int) bool {
		return counties[i].Assessment.Score > counties[j].Assessment.Score
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "COUNTY\tSCORE\tCATEGORY\tTREND")
	for _, c := range counties {
		fmt.Fprintf(w, "%s\t%.2f\t%s\t%s\n", c.Name, c.Assessment.Score, c.Assessment.Category, c.ClimateTrend)
	}
	return w.Flush()
}
