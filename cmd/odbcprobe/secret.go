package main

import (
	"errors"
	"fmt"
	"os"

	"odbcprobe/internal/config"
	"odbcprobe/internal/service"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var secretAccount string

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Protect the database password in ODBC_PWD",
}

var secretEncryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt a password with ODBCPROBE_KEY and print the ODBC_PWD value",
	Long: `Reads a password without echo and prints an enc: value for ODBC_PWD.
A new ODBCPROBE_KEY is generated and saved to the env file when none is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		key, generated, err := cfg.EnsureSecretKey()
		if err != nil {
			return err
		}
		if generated {
			pterm.Info.Printfln("New ODBCPROBE_KEY saved to %s", config.EnvFile)
		}

		password, err := readPassword()
		if err != nil {
			return err
		}

		crypto, err := service.NewEncryptionService(key)
		if err != nil {
			return fmt.Errorf("failed to init crypto service: %w", err)
		}
		value, err := service.EncryptSecret(crypto, password)
		if err != nil {
			return err
		}

		fmt.Printf("ODBC_PWD=%s\n", value)
		return nil
	},
}

var secretStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Store a password in the OS keyring and print the ODBC_PWD value",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		account := secretAccount
		if account == "" {
			account = cfg.UID
		}
		if account == "" {
			return errors.New("account is required (--account or ODBC_UID)")
		}

		password, err := readPassword()
		if err != nil {
			return err
		}

		ref, err := service.StoreInKeyring(account, password)
		if err != nil {
			return fmt.Errorf("failed to store password in keyring: %w", err)
		}

		pterm.Success.Printfln("Password for %q stored in the OS keyring", account)
		fmt.Printf("ODBC_PWD=%s\n", ref)
		return nil
	},
}

func init() {
	secretStoreCmd.Flags().StringVarP(&secretAccount, "account", "a", "", "keyring account (default ODBC_UID)")
	secretCmd.AddCommand(secretEncryptCmd, secretStoreCmd)
	rootCmd.AddCommand(secretCmd)
}

// readPassword prompts twice with hidden input
func readPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	passBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprint(os.Stderr, "Confirm password: ")
	confirmBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if string(passBytes) != string(confirmBytes) {
		return "", errors.New("passwords do not match")
	}
	if len(passBytes) == 0 {
		return "", errors.New("password cannot be empty")
	}
	return string(passBytes), nil
}
