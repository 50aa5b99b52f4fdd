package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-portal/internal/platform/tui"
	"github.com/vovakirdan/arcade-portal/internal/portal"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game and Tab to see
live leaderboards. After a game, Esc returns to the menu.

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --db ./portal.db`,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) error {
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

	player := ""
	if profile, ok := p.Profiles().Profile(cmd.Context(), flagUser); ok {
		player = profile.Username
	}

	width, height := terminalSize()
	return tui.RunArcade(p, flagUser, player, runtimeConfig(), width, height, logger)
}
