package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AlexZinkM/docuchain-wallet/internal/client"
	"github.com/AlexZinkM/docuchain-wallet/internal/config"
	"github.com/AlexZinkM/docuchain-wallet/session"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Inspect the backend accounts linked to a wallet",
}

var accountsCheckCmd = &cobra.Command{
	Use:   "check <wallet>",
	Short: "List the accounts a wallet can log into",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		backendURL, _ := flags.GetString("backend")
		username, _ := flags.GetString("username")
		timeout, _ := flags.GetDuration("timeout")

		backend, err := client.NewBackendClient(backendURL, timeout)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if username != "" {
			password, err := config.ReadPassword("Password for " + username + ": ")
			if err != nil {
				return err
			}
			if _, err := backend.Login(ctx, username, string(password)); err != nil {
				return fmt.Errorf("failed to log in: %w", err)
			}
			defer backend.Logout(ctx)
		}

		switcher := session.NewAccountSwitcher(backend, nil, nil, zap.NewNop())
		candidates, err := switcher.CheckAvailableAccounts(ctx, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(candidates) == 0 {
			fmt.Fprintln(out, "No accounts are linked to this wallet")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "USERNAME\tEMAIL\tDOCUMENTS\tPRIMARY")
		for _, c := range candidates {
			fmt.Fprintf(w, "%s\t%s\t%d\t%t\n", c.Username, c.Email, c.DocumentCount, c.IsPrimary)
		}
		return w.Flush()
	},
}

func init() {
	backendURL := os.Getenv("BACKEND_URL")
	if backendURL == "" {
		backendURL = "http://localhost:5000/api"
	}

	accountsCheckCmd.Flags().String("backend", backendURL, "backend API base URL")
	accountsCheckCmd.Flags().StringP("username", "u", "", "log in as this user before checking")
	accountsCheckCmd.Flags().Duration("timeout", 30*time.Second, "backend request timeout")

	accountsCmd.AddCommand(accountsCheckCmd)
	rootCmd.AddCommand(accountsCmd)
}
