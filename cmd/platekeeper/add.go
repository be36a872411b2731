package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/platekeeper/platekeeper/internal/keeper"
	"github.com/platekeeper/platekeeper/internal/models"
)

func newAddCmd() *cobra.Command {
	var (
		title    string
		plate    string
		category string
	)

	cmd := &cobra.Command{
		Use:   "add <image-file>",
		Short: "Add a plate record with its photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := models.ParseCategory(category)
			if err != nil {
				return err
			}

			img, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			rec, err := a.Keeper.CreateRecord(ctx, keeper.CreateInput{
				Title:    title,
				Plate:    plate,
				Category: cat,
				Filename: filepath.Base(args[0]),
				Image:    img,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", rec.ID)
			if rec.CloudKey == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "note: no cloud copy yet, the record is local-only")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "record title")
	cmd.Flags().StringVarP(&plate, "plate", "p", "", "plate identifier")
	cmd.Flags().StringVar(&category, "category", "car", "category: car or motorcycle")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("plate")

	return cmd
}
