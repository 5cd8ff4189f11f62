// Command play runs a Word Memorizer session in the terminal.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"wordmemo/internal/audio"
	"wordmemo/internal/catalog"
	"wordmemo/internal/config"
	"wordmemo/internal/database"
	"wordmemo/internal/repository"
	"wordmemo/internal/service"
	"wordmemo/internal/utils"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "play",
		Short:        "Play Word Memorizer in the terminal",
		SilenceUsage: true,
		RunE:         run,
	}
	cmd.Flags().Bool("memory", false, "Use an in-memory word bank filled with random catalog words")
	cmd.Flags().String("difficulty", "Easy", "Difficulty of the random words used with --memory")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	memory, _ := cmd.Flags().GetBool("memory")
	difficultyFlag, _ := cmd.Flags().GetString("difficulty")

	difficulty, err := utils.ValidateDifficulty(difficultyFlag)
	if err != nil {
		return err
	}

	cfg := config.Load()

	// The terminal belongs to the UI; keep log output out of it
	if cfg.Debug {
		f, err := tea.LogToFile("wordmemo-play.log", "play")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	var kv repository.KeyValueStore
	if memory {
		kv = repository.NewMemoryKV()
	} else {
		db, err := database.InitializeWithConfig(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()
		if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		kv = repository.NewKVRepository(db)
	}

	words, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("failed to load word catalog: %w", err)
	}

	store := repository.NewWordStore(kv)
	teacher := service.NewTeacherService(store, service.NewWordPicker(service.NewRecencyHistory(service.HistorySize), nil), words)
	if memory {
		teacher.AddRandom(difficulty)
	}

	cues := audio.NewCueQueue(16)
	session := service.NewPlaySession(service.PlayOptions{
		GuessTimeLimit:    cfg.GuessTimeLimit,
		WordCompleteDelay: cfg.WordCompleteDelay,
		Cues:              cues,
	})
	defer session.Close()
	session.Reset(teacher.Words())

	p := tea.NewProgram(newModel(session, cues, teacher.Words))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
