package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AlexZinkM/docuchain-wallet/devwallet"
	"github.com/AlexZinkM/docuchain-wallet/internal/config"
	"github.com/AlexZinkM/docuchain-wallet/internal/crypto"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen <file>",
	Short: "Generate a development wallet key file",
	Long:  "Generate a secp256k1 key, encrypt it with a password and write it to a new " + crypto.KeyFileExt + " file.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chainID, err := cmd.Flags().GetUint64("chain-id")
		if err != nil {
			return err
		}

		password, err := readNewPassword("Enter new wallet password: ")
		if err != nil {
			return err
		}
		defer clear(password)

		address, err := devwallet.GenerateWallet(args[0], chainID, password)
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s already exists: refusing to overwrite a key file", args[0])
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wallet created: %s\nKey file: %s\n", address, args[0])
		return nil
	},
}

var rekeyCmd = &cobra.Command{
	Use:   "rekey <file>",
	Short: "Re-encrypt a key file with a new password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldPassword, err := config.ReadPassword("Enter current password: ")
		if err != nil {
			return err
		}
		defer clear(oldPassword)

		newPassword, err := readNewPassword("Enter new password: ")
		if err != nil {
			return err
		}
		defer clear(newPassword)

		if err := crypto.ReencryptKey(args[0], oldPassword, newPassword); err != nil {
			if errors.Is(err, crypto.ErrInvalidPassword) {
				return errors.New("current password is incorrect")
			}
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Key file re-encrypted")
		return nil
	},
}

// readNewPassword prompts twice and requires both entries to match
func readNewPassword(prompt string) ([]byte, error) {
	password, err := config.ReadPassword(prompt)
	if err != nil {
		return nil, err
	}
	if len(password) == 0 {
		return nil, errors.New("password cannot be empty")
	}

	confirm, err := config.ReadPassword("Confirm password: ")
	if err != nil {
		clear(password)
		return nil, err
	}
	defer clear(confirm)

	if !bytes.Equal(password, confirm) {
		clear(password)
		return nil, errors.New("passwords do not match")
	}
	return password, nil
}

func init() {
	keygenCmd.Flags().Uint64("chain-id", devwallet.DefaultChainID, "chain id recorded in the key file")

	rootCmd.AddCommand(keygenCmd)
	rootCmd.AddCommand(rekeyCmd)
}
