package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newUsageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Show catalog size and local image storage usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			u, err := a.Keeper.Usage(ctx)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Records:       %d\n", u.Records)
			fmt.Fprintf(w, "Local images:  %d files, %s\n",
				u.LocalFiles, humanize.IBytes(uint64(u.LocalBytes)))
			fmt.Fprintf(w, "Data dir:      %s\n", a.Config.DataDir)
			return nil
		},
	}

	return cmd
}
