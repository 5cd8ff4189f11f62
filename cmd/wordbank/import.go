package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"wordmemo/internal/service"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a word bank backup",
		Long: "Import a word bank backup. By default the backup's words are appended and an existing\n" +
			"teacher PIN is kept. With --clear the stored words and PIN are replaced.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]
			clearData, _ := cmd.Flags().GetBool("clear")
			yes, _ := cmd.Flags().GetBool("yes")

			if _, err := os.Stat(inputPath); err != nil {
				return fmt.Errorf("input file not readable: %w", err)
			}

			if clearData && !yes {
				cmd.Print("WARNING: This will replace all stored words and the teacher PIN. Type 'yes' to confirm: ")
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if strings.TrimSpace(answer) != "yes" {
					cmd.Println("Import cancelled")
					return nil
				}
			}

			store, cfg, closeFn, err := openStore()
			if err != nil {
				return err
			}
			defer closeFn()

			if err := service.NewBackupService(store, cfg.DatabaseType).Import(inputPath, clearData); err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			cmd.Printf("Import complete: %d words stored\n", len(store.Load()))
			return nil
		},
	}
	cmd.Flags().Bool("clear", false, "Replace existing words and PIN instead of merging (destructive)")
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
