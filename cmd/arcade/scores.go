package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-portal/internal/portal"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show the leaderboard of a game",
	Long: `Display the top scores for the specified game, one best score per
player.

Examples:
  arcade scores snake
  arcade scores quiz --limit 3`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagLimit, "limit", "n", 0, "Number of entries (default from config)")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	game, ok := registry.Lookup(gameID)
	if !ok {
		return fmt.Errorf("unknown game %q; run 'arcade list' to see available games", gameID)
	}

	p, err := openPortal(cmd.Context(), newLogger(os.Stderr, "arcade"), false)
	if err != nil {
		return err
	}
	defer portal.Shutdown()

	n := flagLimit
	if n <= 0 {
		n = p.TopN()
	}
	entries, err := p.Store().TopN(cmd.Context(), gameID, n)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "High Scores - %s\n\n", game.Title)

	if len(entries) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-20s  %-8s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Fprintf(out, "  %-4s  %-20s  %-8s  %s\n", "----", "------", "-----", "----")
	for i, e := range entries {
		fmt.Fprintf(out, "  %-4d  %-20s  %-8d  %s\n", i+1, e.DisplayName, e.Score, e.SubmittedAt.Local().Format("2006-01-02 15:04"))
	}

	stats, err := p.Store().Stats(cmd.Context(), gameID)
	if err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Players: %d  Best: %d  Average: %.1f\n", stats.Players, stats.HighScore, stats.AvgScore)
	}
	return nil
}
