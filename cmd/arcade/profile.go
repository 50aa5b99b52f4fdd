package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/arcade-portal/internal/portal"
)

var (
	flagDisplayName   string
	flagAvatar        string
	flagLocation      string
	flagDescription   string
	flagFavoriteGenre string
	flagFavoriteGames []string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit your player profile",
	Long: `Your profile holds the username shown on leaderboards. Scores are
only submitted once a username is set.`,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print your profile as YAML",
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

var profileSetCmd = &cobra.Command{
	Use:   "set <username>",
	Short: "Set your username and optional profile fields",
	Example: `  arcade profile set ann
  arcade profile set ann --location Oslo --favorite-games snake,quiz`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileSet,
}

func init() {
	f := profileSetCmd.Flags()
	f.StringVar(&flagDisplayName, "display-name", "", "Display name (defaults to the username)")
	f.StringVar(&flagAvatar, "avatar", "", "Avatar identifier")
	f.StringVar(&flagLocation, "location", "", "Location")
	f.StringVar(&flagDescription, "description", "", "Short description")
	f.StringVar(&flagFavoriteGenre, "favorite-genre", "", "Favorite genre")
	f.StringSliceVar(&flagFavoriteGames, "favorite-games", nil, "Favorite game IDs")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
}

func requireUser() error {
	if strings.TrimSpace(flagUser) == "" {
		return errors.New("no user ID: pass --user or set $USER")
	}
	return nil
}

func runProfileShow(cmd *cobra.Command, _ []string) error {
	if err := requireUser(); err != nil {
		return err
	}
	p, err := openPortal(cmd.Context(), newLogger(os.Stderr, "arcade"), false)
	if err != nil {
		return err
	}
	defer portal.Shutdown()

	profile, ok := p.Profiles().Profile(cmd.Context(), flagUser)
	if !ok {
		fmt.Fprintf(cmd.OutOrStdout(), "No profile for %s. Run 'arcade profile set <username>'.\n", flagUser)
		return nil
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	defer enc.Close()
	return enc.Encode(profile)
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	if err := requireUser(); err != nil {
		return err
	}
	p, err := openPortal(cmd.Context(), newLogger(os.Stderr, "arcade"), false)
	if err != nil {
		return err
	}
	defer portal.Shutdown()

	username := strings.TrimSpace(args[0])
	if username == "" {
		return errors.New("username must not be empty")
	}
	if p.Admin().IsAdmin(username) && !p.Admin().IsAdmin(flagUser) {
		return fmt.Errorf("username %q is reserved", username)
	}

	profile, _ := p.Profiles().Profile(cmd.Context(), flagUser)
	profile.UserID = flagUser
	profile.Username = username
	f := cmd.Flags()
	if f.Changed("display-name") {
		profile.DisplayName = flagDisplayName
	}
	if f.Changed("avatar") {
		profile.Avatar = flagAvatar
	}
	if f.Changed("location") {
		profile.Location = flagLocation
	}
	if f.Changed("description") {
		profile.Description = flagDescription
	}
	if f.Changed("favorite-genre") {
		profile.FavoriteGenre = flagFavoriteGenre
	}
	if f.Changed("favorite-games") {
		profile.FavoriteGames = flagFavoriteGames
	}

	if err := p.SaveProfile(cmd.Context(), profile); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Profile saved. Scores for %s will appear as %q.\n", flagUser, username)
	return nil
}
