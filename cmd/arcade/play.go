package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/arcade-portal/internal/platform/tui"
	"github.com/vovakirdan/arcade-portal/internal/portal"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game. When it ends, your score is
submitted to the game's leaderboard if it beats your previous best.

Controls:
  Arrows/WASD  - Move
  Space        - Jump/Flap
  F/X          - Shoot
  1-9          - Choose an answer or cell
  Mouse        - Move the paddle (pingpong)
  P            - Pause
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Examples:
  arcade play pingpong
  arcade play quiz --user ann
  arcade play snake --seed 42`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	game, err := registry.Create(gameID)
	if errors.Is(err, registry.ErrUnknownGame) {
		return fmt.Errorf("unknown game %q; run 'arcade list' to see available games", gameID)
	}
	if err != nil {
		return fmt.Errorf("error creating game: %w", err)
	}

	logger, closeLog := fileLogger()
	defer closeLog()

	p, err := openPortal(cmd.Context(), logger, true)
	if err != nil {
		return err
	}
	defer portal.Shutdown()
	if p.Offline() {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning: scores database unavailable, scores will not be saved")
	}

	width, height := terminalSize()
	return tui.Run(game, p, flagUser, runtimeConfig(), width, height, logger)
}

// terminalSize returns the size of stdout, 80x24 when unknown.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
