package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sketch-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every registered game and mode, and whether it keeps a save slot.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("ID", "TITLE", "KIND", "SAVES")

	for _, g := range games {
		kind := "game"
		if g.Variant {
			kind = "mode"
		}
		saves := "-"
		if game, err := registry.Create(g.ID); err == nil {
			if p, ok := registry.AsPersistent(game); ok {
				saves = p.SaveKey()
			}
		}
		t.Row(g.ID, g.Title, kind, saves)
	}

	fmt.Println(t)
	fmt.Println("Run 'arcade play <id>' to play a game.")
}
