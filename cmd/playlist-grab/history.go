package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ytget/playlist-grab/internal/history"
	"github.com/ytget/playlist-grab/internal/model"
)

func newHistoryCommand(appCtx *AppContext) *cobra.Command {
	var (
		batchID string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently downloaded tracks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.Open(appCtx.Config.HistoryPath)
			if err != nil {
				return err
			}
			defer store.Close()

			var entries []history.Entry
			if batchID != "" {
				entries, err = store.ByBatch(cmd.Context(), batchID)
			} else {
				entries, err = store.Recent(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Fprintln(appCtx.IO.Out, "No history yet")
				return nil
			}
			renderHistory(appCtx.IO.Out, entries)
			return nil
		},
	}

	cmd.Flags().StringVar(&batchID, "batch", "", "Show every item of one batch")
	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultLimit, "Number of entries to show")
	return cmd
}

func renderHistory(out io.Writer, entries []history.Entry) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"When", "Playlist", "Track", "Status", "Took", "Attempts"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)

	for _, e := range entries {
		track := e.Reference
		if e.Title != "" {
			track = e.Author + " - " + e.Title
		}
		took := "-"
		if e.Status == history.StatusDone {
			took = model.FormatClock(e.Elapsed)
		}
		table.Append([]string{
			humanize.Time(e.CreatedAt),
			e.PlaylistTitle,
			track,
			e.Status,
			took,
			fmt.Sprint(e.Attempts),
		})
	}
	table.Render()
}
