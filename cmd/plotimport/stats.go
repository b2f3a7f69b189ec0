package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ukaji3/plotimport-go/pkg/plotimport/models"
	"github.com/ukaji3/plotimport-go/pkg/plotimport/output"
	"github.com/ukaji3/plotimport-go/pkg/plotimport/report"
)

func newStatsCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stats RECORDS",
		Short: "Summarize a produced records file (csv or sqlite)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := readRecords(args[0])
			if err != nil {
				return err
			}

			sf, err := output.DetectSummaryFormat(format)
			if err != nil {
				return err
			}

			summary := report.Summarize(records, report.Options{
				Examples: a.cfg.Examples,
				Preview:  a.cfg.Preview,
			})
			a.logger.Debug().Int("records", summary.TotalRecords).Msg("summary computed")
			return output.WriteSummary(cmd.OutOrStdout(), summary, sf)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Summary format: table, json, yaml (default: table on a terminal)")
	cmd.Flags().Int("preview", 10, "Records shown in each preview")
	cmd.Flags().Int("examples", 5, "Multi-plot owners shown")
	return cmd
}

func readRecords(path string) ([]models.NormalizedRecord, error) {
	if output.FormatFromPath(path) == output.FormatSQLite {
		return output.ReadSQLite(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := output.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return records, nil
}
