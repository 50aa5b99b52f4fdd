package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-portal/internal/admin"
	"github.com/vovakirdan/arcade-portal/internal/portal"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage players (administrators only)",
	Long: `User management for the administrators named in portal.yaml. Your
profile's username (--user) must be one of them.`,
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List players with a username",
	Args:  cobra.NoArgs,
	RunE:  runAdminUsers,
}

var adminDeleteCmd = &cobra.Command{
	Use:   "delete <user-id>",
	Short: "Delete a player's profile and all their scores",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminDelete,
}

func init() {
	adminCmd.AddCommand(adminUsersCmd)
	adminCmd.AddCommand(adminDeleteCmd)
}

// openAdmin opens the portal and checks that the caller is an administrator.
func openAdmin(cmd *cobra.Command) (*portal.Portal, error) {
	p, err := openPortal(cmd.Context(), newLogger(os.Stderr, "arcade"), false)
	if err != nil {
		return nil, err
	}
	profile, ok := p.Profiles().Profile(cmd.Context(), flagUser)
	if !ok || !p.Admin().IsAdmin(profile.Username) {
		return nil, errors.Join(errors.New("admin commands require an administrator profile"), portal.Shutdown())
	}
	return p, nil
}

func runAdminUsers(cmd *cobra.Command, _ []string) error {
	p, err := openAdmin(cmd)
	if err != nil {
		return err
	}
	defer portal.Shutdown()

	users, err := p.Admin().ListUsers(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(users) == 0 {
		fmt.Fprintln(out, "No players yet.")
		return nil
	}
	fmt.Fprintf(out, "  %-24s  %-20s  %s\n", "User ID", "Username", "Location")
	fmt.Fprintf(out, "  %-24s  %-20s  %s\n", "-------", "--------", "--------")
	for _, u := range users {
		fmt.Fprintf(out, "  %-24s  %-20s  %s\n", u.UserID, u.Username, u.Location)
	}
	return nil
}

func runAdminDelete(cmd *cobra.Command, args []string) error {
	p, err := openAdmin(cmd)
	if err != nil {
		return err
	}
	defer portal.Shutdown()

	userID := args[0]
	if err := p.Admin().DeleteUser(cmd.Context(), userID); err != nil {
		if errors.Is(err, admin.ErrProtectedUser) {
			return fmt.Errorf("%s is an administrator and cannot be deleted", userID)
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s and their scores.\n", userID)
	return nil
}
