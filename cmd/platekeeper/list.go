package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/platekeeper/platekeeper/internal/models"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List plate records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			recs, err := a.Keeper.Records(ctx)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No records yet")
				return nil
			}

			// The id, date and count columns are fixed width; whatever the
			// terminal has left goes to the title.
			titleWidth := terminalWidth() - 80
			if titleWidth < 12 {
				titleWidth = 12
			}
			if titleWidth > 48 {
				titleWidth = 48
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "Title", "Plate", "Category", "Views", "Storage", "Created"})
			for _, r := range recs {
				t.AppendRow(table.Row{
					r.ID,
					runewidth.Truncate(r.Title, titleWidth, "..."),
					r.Plate,
					string(r.Category),
					r.ViewCount,
					storageLabel(&r),
					r.CreatedAt.Format("2006-01-02 15:04"),
				})
			}
			t.Render()

			if a.Keeper.Degraded() {
				fmt.Fprintln(cmd.OutOrStdout(), "note: cloud storage unreachable, showing local state")
			}
			return nil
		},
	}

	return cmd
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 120
}

// storageLabel names the tiers currently holding the record's image.
func storageLabel(r *models.PlateRecord) string {
	switch {
	case r.LocalPath != "" && r.CloudKey != "":
		return "local+cloud"
	case r.CloudKey != "":
		return "cloud"
	case r.LocalPath != "":
		return "local"
	default:
		return "none"
	}
}
