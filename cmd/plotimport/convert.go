package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ukaji3/plotimport-go/pkg/plotimport"
	"github.com/ukaji3/plotimport-go/pkg/plotimport/output"
)

func newConvertCmd(a *app) *cobra.Command {
	var (
		outputPath  string
		printStats  bool
		statsFormat string
	)

	cmd := &cobra.Command{
		Use:   "convert INPUT",
		Short: "Convert an owner export into import records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]

			format, err := output.ParseFormat(a.cfg.OutputFormat)
			if err != nil {
				return err
			}
			if outputPath == "" {
				outputPath = defaultOutputPath(inputPath)
			}
			if format == "" {
				format = output.FormatFromPath(outputPath)
			}

			opts := a.cfg.PipelineOptions()
			opts.Logger = a.logger

			res, err := plotimport.Process(inputPath, opts)
			if err != nil {
				return fmt.Errorf("processing %s: %w", inputPath, err)
			}

			if err := writeRecords(cmd, outputPath, format, res); err != nil {
				return err
			}
			a.logger.Info().
				Str("output", outputPath).
				Str("format", string(format)).
				Int("rows_read", res.Stats.RowsRead).
				Int("rows_skipped", res.Stats.RowsSkipped).
				Int("records", res.Stats.RecordsEmitted).
				Msg("records written")

			if !printStats {
				return nil
			}
			sf, err := output.DetectSummaryFormat(statsFormat)
			if err != nil {
				return err
			}
			return output.WriteSummary(cmd.ErrOrStderr(), res.Summary, sf)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", `Output file path, or "-" for stdout (default: INPUT_processed.csv)`)
	cmd.Flags().String("format", "", "Output format: csv, json, yaml, sqlite (default: from the output extension)")
	cmd.Flags().String("strategy", "auto", "Reader: auto, xls, xlsx, csv")
	cmd.Flags().String("sheet", "", "Worksheet name (default: first sheet)")
	cmd.Flags().String("range", "", "Cell range to read, e.g. A1:E200")
	cmd.Flags().String("encoding", "utf-8", "Text encoding of csv input, e.g. windows-1251")
	cmd.Flags().String("delimiter", ",", `Field delimiter of csv input ("tab" for tabs)`)
	cmd.Flags().String("plot-prefix", "АП-", "Marker stripped from plot identifiers")
	cmd.Flags().BoolVar(&printStats, "stats", false, "Print a summary to stderr after converting")
	cmd.Flags().StringVar(&statsFormat, "stats-format", "", "Summary format: table, json, yaml (default: table on a terminal)")
	cmd.Flags().Int("examples", 5, "Multi-plot owners shown in the summary")
	return cmd
}

func writeRecords(cmd *cobra.Command, path string, format output.Format, res *plotimport.Result) error {
	if path != "-" {
		if err := output.WriteFile(path, format, res.Records); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	w := cmd.OutOrStdout()
	switch format {
	case output.FormatCSV:
		return output.WriteCSV(w, res.Records)
	case output.FormatJSON:
		data, err := output.ToJSON(res.Records, true)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case output.FormatYAML:
		data, err := output.ToYAML(res.Records)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("format %s cannot be written to stdout", format)
	}
}

// defaultOutputPath places the records next to the input as
// <name>_processed.csv.
func defaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_processed.csv"
}
