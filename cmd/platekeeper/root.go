package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/platekeeper/platekeeper/internal/app"
	"github.com/platekeeper/platekeeper/internal/config"
)

var (
	cfgFile string
	dataDir string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "platekeeper",
	Short: "platekeeper - a catalog of plate photos with local and cloud storage",
	Long: "platekeeper keeps a catalog of license-plate records with photos.\n" +
		"Images live in a local cache and are backed up opportunistically to an\n" +
		"S3-compatible object store; an unreachable cloud never blocks local work.",
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to a JSON config file")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "override the data directory")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newEditCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newUsageCmd())
	rootCmd.AddCommand(newTransformCmd())
}

// openApp loads the config, applies the persistent flag overrides and
// starts the application. Callers must Close it.
func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	a, err := app.New(ctx, cfg, verbose)
	if err != nil {
		return nil, err
	}
	if err := a.Start(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}
