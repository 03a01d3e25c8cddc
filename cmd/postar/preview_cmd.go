package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/xlordnoro/postar/internal/config"
	"github.com/xlordnoro/postar/internal/logging"
	"github.com/xlordnoro/postar/internal/novelty"
	"github.com/xlordnoro/postar/internal/order"
	"github.com/xlordnoro/postar/internal/render"
	"github.com/xlordnoro/postar/internal/scanner"
)

func newPreviewCmd() *cobra.Command {
	var seasonal bool

	cmd := &cobra.Command{
		Use:   "preview <folder>...",
		Short: "Classify folders and print the resulting table without writing anything",
		Long: `Preview classification and ordering for one or more folders.

Nothing is persisted: the novelty column reports what the next post run
would mark as new, but the state file is left untouched.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			statePath, err := cfg.StatePath()
			if err != nil {
				return err
			}
			tracker := novelty.Open(statePath, logging.Nop())

			scan := scanner.New(logging.Nop())
			mode := order.Flat
			if seasonal {
				mode = order.Grouped
			}

			for _, folder := range args {
				result := scan.ScanFolder(folder)
				for _, err := range result.Errors {
					fmt.Fprintf(os.Stderr, "%s %v\n", warnStyle.Render("warning:"), err)
				}

				batch := result.Batch
				if !batch.Exists() {
					fmt.Printf("%s %s\n", warnStyle.Render("missing:"), folder)
					continue
				}

				records := batch.Records
				order.Sort(records, mode)

				t := table.NewWriter()
				t.SetOutputMirror(os.Stdout)
				t.SetTitle("%s  (%s, %s total)", batch.Basename,
					render.QualityLabel(batch.Basename), render.ApproxSize(batch.TotalSizeBytes))
				t.AppendHeader(table.Row{"Label", "Category", "Size", "CRC32", "New"})
				for _, rec := range records {
					newMark := ""
					if !tracker.Seen(batch.Basename, rec.Filename) {
						newMark = "yes"
					}
					t.AppendRow(table.Row{
						rec.Label, rec.Category, render.ApproxSize(rec.SizeBytes), rec.CRC32, newMark,
					})
				}
				t.Render()
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&seasonal, "seasonal", "s", false, "use series-grouped ordering")
	return cmd
}
