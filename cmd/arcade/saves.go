package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sketch-arcade/internal/platform/tui"
	"github.com/vovakirdan/sketch-arcade/internal/storage"
)

var (
	flagSavesOwner string
	flagSavesAll   bool
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "Inspect or clear save slots",
	Long: `Show or remove saved game states.

Each game saves to one fixed slot per owner. Local sessions save under
your user name; SSH sessions save under the SSH user name.

Examples:
  arcade saves                 # Same as 'arcade saves list'
  arcade saves list --all      # Slots of every owner
  arcade saves clear           # Remove your slots
  arcade saves clear gridSketch
  arcade saves clear --owner alice`,
	Run: runSavesList,
}

var savesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List save slots",
	Args:  cobra.NoArgs,
	Run:   runSavesList,
}

var savesClearCmd = &cobra.Command{
	Use:   "clear [slot]",
	Short: "Remove one save slot or all of an owner's slots",
	Args:  cobra.MaximumNArgs(1),
	Run:   runSavesClear,
}

func init() {
	savesCmd.PersistentFlags().StringVar(&flagSavesOwner, "owner", "", "Save owner (default: current user)")
	savesListCmd.Flags().BoolVar(&flagSavesAll, "all", false, "List slots of every owner")
	savesCmd.AddCommand(savesListCmd)
	savesCmd.AddCommand(savesClearCmd)
}

func savesOwner() string {
	if flagSavesOwner != "" {
		return flagSavesOwner
	}
	return tui.LocalOwner()
}

func mustOpenStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runSavesList(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	owner := savesOwner()
	if flagSavesAll {
		owner = ""
	}

	slots, err := store.ListSaves(owner)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing saves: %v\n", err)
		return
	}

	if len(slots) == 0 {
		fmt.Println("No saves recorded yet.")
		fmt.Println()
		fmt.Println("Press F5 in a game (or tap [Save]) to save.")
		return
	}

	fmt.Printf("  %-12s  %-16s  %-20s  %6s  %s\n", "Owner", "Slot", "Game", "Bytes", "Saved")
	fmt.Printf("  %-12s  %-16s  %-20s  %6s  %s\n", "-----", "----", "----", "-----", "-----")
	for _, slot := range slots {
		fmt.Printf("  %-12s  %-16s  %-20s  %6d  %s\n",
			slot.Owner, slot.Slot, slot.GameID, len(slot.Data),
			slot.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
}

func runSavesClear(_ *cobra.Command, args []string) {
	store := mustOpenStore()
	defer store.Close()

	owner := savesOwner()

	if len(args) == 1 {
		removed, err := store.DeleteSave(owner, args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error removing save: %v\n", err)
			return
		}
		if !removed {
			fmt.Printf("No save %q for %s.\n", args[0], owner)
			return
		}
		fmt.Printf("Removed save %q for %s.\n", args[0], owner)
		return
	}

	n, err := store.DeleteSaves(owner)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error removing saves: %v\n", err)
		return
	}
	fmt.Printf("Removed %d save(s) for %s.\n", n, owner)
}
