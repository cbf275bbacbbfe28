package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"spawner/internal/repository"
	"spawner/internal/ui"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage GitHub credentials for private skill repositories",
	Long: `Store a GitHub Personal Access Token in the OS credential store
(macOS Keychain, Windows Credential Manager, Linux Secret Service).
Public repositories need no token; the PAT is only used when anonymous
access is rejected.`,
}

var authSetTokenCmd = &cobra.Command{
	Use:   "set-token [token]",
	Short: "Store a GitHub Personal Access Token",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token := ""
		if len(args) == 1 {
			token = args[0]
		} else {
			fmt.Print("GitHub Personal Access Token: ")
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read token: %w", err)
			}
			token = strings.TrimSpace(line)
		}

		if err := repository.NewCredentialManager().StoreGitHubToken(token); err != nil {
			return err
		}
		fmt.Println(ui.Success("Token stored in the OS credential store"))
		return nil
	},
}

var authClearTokenCmd = &cobra.Command{
	Use:   "clear-token",
	Short: "Remove the stored GitHub token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repository.NewCredentialManager().DeleteGitHubToken(); err != nil {
			return err
		}
		fmt.Println(ui.Success("Token removed"))
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a GitHub token is stored",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if repository.NewCredentialManager().HasGitHubToken() {
			fmt.Println(ui.Success("A GitHub token is stored"))
		} else {
			fmt.Println("No GitHub token stored (public repositories work without one)")
		}
		return nil
	},
}

func init() {
	authCmd.AddCommand(authSetTokenCmd)
	authCmd.AddCommand(authClearTokenCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}
