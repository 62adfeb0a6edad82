package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ytget/playlist-grab/internal/metadata"
	"github.com/ytget/playlist-grab/internal/model"
)

// newInferCommand shows what metadata a video title would produce without
// downloading anything.
func newInferCommand(appCtx *AppContext) *cobra.Command {
	raw := model.RawItem{}

	cmd := &cobra.Command{
		Use:   "infer <video title>",
		Short: "Show the artist, title and filename derived from a video title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw.Title = strings.Join(args, " ")
			renderTrack(appCtx.IO.Out, metadata.Infer(&raw))
			return nil
		},
	}

	cmd.Flags().StringVarP(&raw.Uploader, "uploader", "u", "", "Channel name used when the title has no artist")
	cmd.Flags().StringVar(&raw.UploadDate, "date", "", "Upload date as YYYYMMDD")
	return cmd
}

func newGenreCommand(appCtx *AppContext) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "genre [text]",
		Short: "Show the genre found in a playlist or video title",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := appCtx.IO.Out
			if list {
				for _, g := range metadata.Genres {
					fmt.Fprintln(out, g)
				}
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("text is required unless --list is given")
			}

			genre := metadata.PullGenre(strings.Join(args, " "))
			if genre == "" {
				fmt.Fprintln(out, "No known genre found")
				return nil
			}
			fmt.Fprintln(out, genre)
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "List every known genre in match order")
	return cmd
}

func renderTrack(out io.Writer, track model.Track) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Field", "Value"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.AppendBulk([][]string{
		{"Artist", track.Author},
		{"Title", track.Title},
		{"Featured", track.Featured},
		{"Date", track.Date},
		{"Genre", track.Genre},
		{"File", track.Filename + ".mp3"},
	})
	table.Render()
}
