// arcade is a terminal arcade with a grid sketch and a platformer.
//
// Usage:
//
//	arcade list                - List available games
//	arcade play <game>         - Play a game
//	arcade menu                - Start menu to pick games interactively
//	arcade serve               - Start SSH server for remote play
//	arcade scores <game>       - Show high scores for a game
//	arcade saves [list|clear]  - Inspect or remove save slots
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set database path (default: ~/.arcade/arcade.db)
//	--log-file <path>  - Write session logs to a file
//	--sound            - Enable synthesized sound effects
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/sketch-arcade/internal/games/grid"
	_ "github.com/vovakirdan/sketch-arcade/internal/games/platformer"
	"github.com/vovakirdan/sketch-arcade/internal/sound"
	"github.com/vovakirdan/sketch-arcade/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
	flagSound   bool
)

// stderrLog reports CLI warnings outside the alt-screen.
var stderrLog = log.NewWithOptions(os.Stderr, log.Options{Prefix: "arcade"})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Sketch Arcade - a grid sketch and a platformer in your terminal",
	Long: `Sketch Arcade is a terminal gaming platform with a grid toggle sketch
and a side-view platformer with doors, levels and a random sandbox.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  saves    - Inspect or clear save slots

Examples:
  arcade list
  arcade play platformer
  arcade play grid
  arcade menu --sound
  arcade serve --ssh :2222
  arcade scores platformer`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/arcade.db", "Path to scores and saves database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write session logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagSound, "sound", false, "Enable sound effects")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(savesCmd)
}

// sessionLogger returns the logger for a TUI session. The alt-screen owns
// the terminal, so logs go to --log-file or nowhere. The returned closer
// must be called when the session ends.
func sessionLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		stderrLog.Warn("could not open log file", "path", flagLogFile, "error", err)
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }
}

// openSound returns the speaker player when --sound is set and audio is
// available, otherwise a silent one.
func openSound(logger *log.Logger) sound.Player {
	if !flagSound {
		return sound.Nop{}
	}
	p, err := sound.NewBeep()
	if err != nil {
		stderrLog.Warn("sound disabled", "error", err)
		logger.Warn("sound disabled", "error", err)
		return sound.Nop{}
	}
	return p
}

// openStore opens the database, or returns nil with a warning so games can
// still be played without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		stderrLog.Warn("could not open database, scores and saves are disabled", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
