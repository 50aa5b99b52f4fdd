package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-portal/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every game compiled into this binary with its tick pace.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	games := registry.List()
	if len(games) == 0 {
		_, err := fmt.Fprintln(out, "No games available.")
		return err
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("ID", "TITLE", "PACE")
	for _, g := range games {
		t.Row(g.ID, g.Title, g.Cadence.Kind.String())
	}

	_, err := fmt.Fprintf(out, "%s\nRun 'arcade play <id>' to play a game.\n", t.Render())
	return err
}
