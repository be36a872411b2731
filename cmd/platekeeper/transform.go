package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/platekeeper/platekeeper/internal/models"
)

func newTransformCmd() *cobra.Command {
	var (
		scale    float64
		offsetX  float64
		offsetY  float64
		viewport string
	)

	cmd := &cobra.Command{
		Use:   "transform <id>",
		Short: "Show or set a record's pan/zoom state",
		Long: "Without flags the stored transform is printed (the identity transform\n" +
			"if none was saved yet). Setting any of --scale/--offset-x/--offset-y\n" +
			"updates the transform, clamped against the --viewport size.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setting := cmd.Flags().Changed("scale") ||
				cmd.Flags().Changed("offset-x") ||
				cmd.Flags().Changed("offset-y")

			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			cur, err := a.Keeper.Transform(ctx, args[0])
			if err != nil {
				return err
			}

			if !setting {
				printTransform(cmd, cur)
				return nil
			}

			vp, err := parseViewport(viewport)
			if err != nil {
				return err
			}

			next := *cur
			if cmd.Flags().Changed("scale") {
				next.Scale = scale
			}
			if cmd.Flags().Changed("offset-x") {
				next.OffsetX = offsetX
			}
			if cmd.Flags().Changed("offset-y") {
				next.OffsetY = offsetY
			}

			stored, err := a.Keeper.SetTransform(ctx, args[0], next, vp)
			if err != nil {
				return err
			}
			printTransform(cmd, stored)
			return nil
		},
	}

	cmd.Flags().Float64Var(&scale, "scale", 1.0, "zoom scale (clamped to [1, 5])")
	cmd.Flags().Float64Var(&offsetX, "offset-x", 0, "horizontal pan offset")
	cmd.Flags().Float64Var(&offsetY, "offset-y", 0, "vertical pan offset")
	cmd.Flags().StringVar(&viewport, "viewport", "800x600", "viewport size as WIDTHxHEIGHT")

	return cmd
}

func printTransform(cmd *cobra.Command, t *models.ViewTransform) {
	fmt.Fprintf(cmd.OutOrStdout(), "Scale:    %.2f\nOffset X: %.1f\nOffset Y: %.1f\n",
		t.Scale, t.OffsetX, t.OffsetY)
}

func parseViewport(s string) (models.Viewport, error) {
	ws, hs, ok := strings.Cut(s, "x")
	if !ok {
		return models.Viewport{}, fmt.Errorf("invalid viewport %q, expected WIDTHxHEIGHT", s)
	}
	w, err := strconv.ParseFloat(ws, 64)
	if err != nil {
		return models.Viewport{}, fmt.Errorf("invalid viewport width %q", ws)
	}
	h, err := strconv.ParseFloat(hs, 64)
	if err != nil {
		return models.Viewport{}, fmt.Errorf("invalid viewport height %q", hs)
	}
	if w <= 0 || h <= 0 {
		return models.Viewport{}, fmt.Errorf("viewport must be positive, got %q", s)
	}
	return models.Viewport{Width: w, Height: h}, nil
}
