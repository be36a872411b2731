package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/platekeeper/platekeeper/internal/keeper"
	"github.com/platekeeper/platekeeper/internal/models"
)

func newEditCmd() *cobra.Command {
	var (
		title    string
		plate    string
		category string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a record's metadata (the photo never changes)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := keeper.UpdateInput{Title: title, Plate: plate}
			if cmd.Flags().Changed("category") {
				cat, err := models.ParseCategory(category)
				if err != nil {
					return err
				}
				in.Category = cat
			}

			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			rec, err := a.Keeper.UpdateMetadata(ctx, args[0], in)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s / %s (%s)\n",
				rec.ID, rec.Title, rec.Plate, rec.Category)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&plate, "plate", "p", "", "new plate identifier")
	cmd.Flags().StringVar(&category, "category", "", "new category: car or motorcycle")

	return cmd
}
