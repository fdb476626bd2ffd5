package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/games/grid"
	"github.com/vovakirdan/sketch-arcade/internal/games/platformer"
	"github.com/vovakirdan/sketch-arcade/internal/platform/tui"
	"github.com/vovakirdan/sketch-arcade/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevels     string
	flagLevel      int
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Platformer controls:
  Left/Right, A/D    - Run
  Up/W/Space         - Jump (again in the air for a double jump)
  +/-                - Grow/shrink the player
  F5/F9              - Save/load progress (or tap [Save]/[Load])
  R                  - Restart level
  P                  - Pause
  Tap/click          - Left third runs left, right third runs right,
                       middle jumps

Grid sketch controls:
  Arrows             - Move cursor
  Space/Enter/T      - Toggle block
  Click/tap          - Toggle block under pointer
  C                  - Clear
  F5/F9              - Save/load the sketch

Everywhere:
  Esc/B              - Back
  Ctrl+S             - Screenshot to ~/.arcade/screenshots
  Q/Ctrl+C           - Quit

Difficulty options (platformer):
  easy   - Triple jump, lighter gravity, longer par time
  normal - Double jump
  hard   - Single jump, heavier gravity, shorter par time, double door points
  fixed  - Use the config as loaded

Examples:
  arcade play platformer
  arcade play platformer --level 3
  arcade play platformer_sandbox --seed 42
  arcade play platformer --difficulty hard --levels ./my-levels.yaml
  arcade play grid --config ./my-grid.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start the platformer campaign at this level (skips the mode menu)")
}

// addGameFlags registers the per-game configuration flags on cmd.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&flagLevels, "levels", "", "Path to custom platformer levels YAML")
}

// configureGame applies the game flags to the game's package before it is
// created.
func configureGame(gameID string) {
	switch gameID {
	case "grid":
		grid.SetConfigPath(flagConfig)
	case "platformer", "platformer_sandbox":
		platformer.SetConfigPath(flagConfig)
		platformer.SetLevelsPath(flagLevels)
		platformer.SetDifficultyPreset(flagDifficulty)
	}
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	cfg := runtimeConfig()
	configureGame(gameID)

	if gameID == "platformer" {
		if flagLevel > 0 {
			platformer.SetStartLevel(flagLevel)
		} else {
			// Show platformer mode/level selector
			selection, updatedCfg, selErr := tui.RunPlatformerModeSelector(cfg)
			if selErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
				os.Exit(1)
			}
			cfg = updatedCfg

			// User pressed back or quit
			if selection == nil {
				return
			}
			selection.Apply()
			gameID = selection.GameID()
		}
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Storage is optional - the game still works without it
	store := openStore()
	logger, closeLog := sessionLogger()
	player := openSound(logger)

	runErr := tui.Run(game, store, cfg, tui.Options{
		Owner:  tui.LocalOwner(),
		Logger: logger,
		Sound:  player,
	})

	// Release resources before potential exit
	player.Close()
	closeLog()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
