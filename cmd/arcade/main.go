// arcade is a casual games portal: ten small games with per-game
// leaderboards, playable in the terminal, over SSH, and backed by an HTTP
// API for web front ends.
//
// Usage:
//
//	arcade list                  - List available games
//	arcade play <game>           - Play a game
//	arcade menu                  - Pick games interactively
//	arcade scores <game>         - Show the leaderboard of a game
//	arcade serve                 - Start the SSH and HTTP servers
//	arcade profile set <name>    - Choose your leaderboard username
//	arcade admin users           - List players
//	arcade admin delete <user>   - Delete a player and their scores
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set SQLite database path
//	--config <path> - Use a specific portal.yaml
//	--user <id>     - Play as this user ID (default: $USER)
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/portal"

	// Import games to register them
	_ "github.com/vovakirdan/arcade-portal/internal/games/avoidenemy"
	_ "github.com/vovakirdan/arcade-portal/internal/games/flappybox"
	_ "github.com/vovakirdan/arcade-portal/internal/games/guesscolor"
	_ "github.com/vovakirdan/arcade-portal/internal/games/mazeescape"
	_ "github.com/vovakirdan/arcade-portal/internal/games/pingpong"
	_ "github.com/vovakirdan/arcade-portal/internal/games/quiz"
	_ "github.com/vovakirdan/arcade-portal/internal/games/rps"
	_ "github.com/vovakirdan/arcade-portal/internal/games/snake"
	_ "github.com/vovakirdan/arcade-portal/internal/games/spaceshooter"
	_ "github.com/vovakirdan/arcade-portal/internal/games/tictactoe"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
	flagUser   string

	portalCfg config.PortalConfig
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Arcade portal - casual games with leaderboards",
	Long: `Arcade is a casual games portal. Play in your terminal or over SSH,
and keep a best score per game on shared leaderboards.

Examples:
  arcade list
  arcade play pingpong
  arcade menu
  arcade profile set ann
  arcade scores snake
  arcade serve --ssh :2222 --http :8080`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the SQLite database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to portal.yaml")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", os.Getenv("USER"), "User ID to play and submit scores as")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(adminCmd)
}

// loadConfig reads .env, portal.yaml and ARCADE_* overrides, then applies
// command-line flags.
func loadConfig(_ *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.LoadPortal(flagConfig)
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		cfg.Storage.Driver = config.DriverSQLite
		cfg.Storage.Path = flagDBPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	config.SetGames(cfg.Games)
	portalCfg = cfg
	return nil
}

// newLogger writes to w at the configured level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(portalCfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// fileLogger logs to ~/.arcade/arcade.log so that interactive commands keep
// the terminal clean. It falls back to discarding output.
func fileLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return newLogger(io.Discard, "arcade"), func() {}
	}
	dir := filepath.Join(home, ".arcade")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newLogger(io.Discard, "arcade"), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "arcade.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return newLogger(io.Discard, "arcade"), func() {}
	}
	return newLogger(f, "arcade"), func() { f.Close() }
}

// openPortal initializes the process-wide portal. Interactive commands pass
// offline=true to keep playing when storage is unreachable.
func openPortal(ctx context.Context, logger *log.Logger, offline bool) (*portal.Portal, error) {
	opts := []portal.Option{portal.WithLogger(logger)}
	if offline {
		opts = append(opts, portal.WithMemoryFallback())
	}
	return portal.Init(ctx, portalCfg, opts...)
}

// runtimeConfig builds the game runtime config from global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}
