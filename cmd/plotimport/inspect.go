package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukaji3/plotimport-go/pkg/plotimport/classify"
	"github.com/ukaji3/plotimport-go/pkg/plotimport/output"
	"github.com/ukaji3/plotimport-go/pkg/plotimport/source"
)

func newInspectCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inspect INPUT",
		Short: "Show how the columns of an owner export are classified",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sf, err := output.DetectSummaryFormat(format)
			if err != nil {
				return err
			}

			opts := a.cfg.PipelineOptions()
			opts.Source.Logger = a.logger

			table, err := source.Load(args[0], opts.Source)
			if err != nil {
				return fmt.Errorf("loading %s: %w", args[0], err)
			}
			res := classify.New(opts.Classify, classify.WithLogger(a.logger)).Classify(table)

			return output.WriteInspection(cmd.OutOrStdout(), output.NewInspection(table, res), sf)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Output format: table, json, yaml (default: table on a terminal)")
	cmd.Flags().String("strategy", "auto", "Reader: auto, xls, xlsx, csv")
	cmd.Flags().String("sheet", "", "Worksheet name (default: first sheet)")
	cmd.Flags().String("range", "", "Cell range to read, e.g. A1:E200")
	cmd.Flags().String("encoding", "utf-8", "Text encoding of csv input")
	cmd.Flags().String("delimiter", ",", "Field delimiter of csv input")
	return cmd
}
