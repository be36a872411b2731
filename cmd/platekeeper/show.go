package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/platekeeper/platekeeper/internal/common"
)

func newShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one record and count the view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			rec, err := a.Keeper.MarkViewed(ctx, args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "ID:        %s\n", rec.ID)
			fmt.Fprintf(w, "Title:     %s\n", rec.Title)
			fmt.Fprintf(w, "Plate:     %s\n", rec.Plate)
			fmt.Fprintf(w, "Category:  %s\n", rec.Category)
			fmt.Fprintf(w, "Views:     %d\n", rec.ViewCount)
			fmt.Fprintf(w, "Storage:   %s\n", storageLabel(rec))
			fmt.Fprintf(w, "Created:   %s\n", rec.CreatedAt.Format(time.RFC3339))
			fmt.Fprintf(w, "Updated:   %s\n", rec.UpdatedAt.Format(time.RFC3339))

			if output == "" {
				return nil
			}

			data, err := a.Keeper.LoadImage(ctx, rec.ID)
			if err != nil {
				if errors.Is(err, common.ErrImageUnavailable) {
					return fmt.Errorf("image is currently unavailable, try again later: %w", err)
				}
				return err
			}
			if err := os.WriteFile(output, data, 0o600); err != nil {
				return err
			}
			fmt.Fprintf(w, "Image written to %s (%d bytes)\n", output, len(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "export the image to this file")

	return cmd
}
