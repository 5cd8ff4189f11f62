// Command wordbank manages the stored word bank and teacher PIN from the shell.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wordmemo/internal/config"
	"wordmemo/internal/database"
	"wordmemo/internal/repository"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "wordbank",
		Short:        "Back up, restore and inspect the Word Memorizer word bank",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newExportCmd(), newImportCmd(), newListCmd(), newClearPinCmd())
	return rootCmd
}

// openStore connects to the configured database and runs migrations
func openStore() (*repository.WordStore, *config.Config, func(), error) {
	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	closeFn := func() { db.Close() }
	return repository.NewWordStore(repository.NewKVRepository(db)), cfg, closeFn, nil
}
