package main

import (
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the stored words",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, closeFn, err := openStore()
			if err != nil {
				return err
			}
			defer closeFn()

			bank := store.Load()
			for i, entry := range bank {
				cmd.Printf("%3d. %s: %s (%s)\n", i+1, entry.Word, entry.Meaning, entry.Difficulty)
			}
			cmd.Printf("%d words, teacher PIN set: %t\n", len(bank), store.LoadPin() != nil)
			return nil
		},
	}
}

func newClearPinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-pin",
		Short: "Remove the teacher PIN so the next switch to Play asks for a new one",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, closeFn, err := openStore()
			if err != nil {
				return err
			}
			defer closeFn()

			store.SavePin(nil)
			cmd.Println("Teacher PIN cleared")
			return nil
		},
	}
}
