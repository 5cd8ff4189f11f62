package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"wordmemo/internal/service"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the word bank and teacher PIN as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputPath, _ := cmd.Flags().GetString("output")

			store, cfg, closeFn, err := openStore()
			if err != nil {
				return err
			}
			defer closeFn()

			backupService := service.NewBackupService(store, cfg.DatabaseType)

			if outputPath == "-" {
				return backupService.ExportToWriter(cmd.OutOrStdout())
			}
			if outputPath == "" {
				outputPath = fmt.Sprintf("wordbank_%s.json", time.Now().Format("20060102_150405"))
			}
			if dir := filepath.Dir(outputPath); dir != "." && dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}

			if err := backupService.Export(outputPath); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			cmd.Printf("Export complete: %s\n", outputPath)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "Output file path, - for stdout (default: wordbank_YYYYMMDD_HHMMSS.json)")
	return cmd
}
