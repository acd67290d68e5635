package main

import (
	"fmt"
	"strings"

	"github.com/oukeidos/quicktrans/internal/apperrors"
	"github.com/oukeidos/quicktrans/internal/auth"
	"github.com/oukeidos/quicktrans/internal/provider"
	"github.com/oukeidos/quicktrans/internal/session"
	"github.com/spf13/cobra"
)

var (
	saveKey   = auth.SaveKey
	deleteKey = auth.DeleteKey
)

type envOptions struct {
	provider string
}

func newEnvCmd() *cobra.Command {
	opts := envOptions{}
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Manage API keys in the OS keychain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvStatus(cmd, &opts)
		},
	}

	cmd.SetUsageTemplate(envUsageTemplate)
	cmd.PersistentFlags().StringVar(&opts.provider, "provider", session.DefaultProvider, "Provider to manage (google_genai or openai)")

	cmd.AddCommand(
		newEnvSetupCmd(&opts),
		newEnvDeleteCmd(&opts),
		newEnvStatusCmd(&opts),
	)
	return cmd
}

func newEnvSetupCmd(opts *envOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Save an API key to the keychain (prompt only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvSetup(cmd, opts)
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newEnvDeleteCmd(opts *envOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an API key from the keychain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvDelete(cmd, opts)
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newEnvStatusCmd(opts *envOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show where the API key would be read from (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvStatus(cmd, opts)
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func envProvider(opts *envOptions) (string, error) {
	name, ok := provider.Default.Canonical(opts.provider)
	if !ok {
		return "", apperrors.Config(fmt.Sprintf("invalid provider %q; must be one of: %s",
			opts.provider, strings.Join(provider.Default.Names(), ", ")))
	}
	return name, nil
}

func runEnvSetup(cmd *cobra.Command, opts *envOptions) error {
	name, err := envProvider(opts)
	if err != nil {
		return err
	}
	key, err := promptForKey(fmt.Sprintf("%s API Key: ", auth.Label(name)))
	if err != nil {
		return fmt.Errorf("error reading key: %w", err)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return apperrors.Config("API key is required for setup")
	}
	if err := saveKey(name, key); err != nil {
		return fmt.Errorf("error saving key: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s API key to keychain.\n", auth.Label(name))
	return nil
}

func runEnvDelete(cmd *cobra.Command, opts *envOptions) error {
	name, err := envProvider(opts)
	if err != nil {
		return err
	}
	if err := deleteKey(name); err != nil {
		return fmt.Errorf("error deleting key: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s API key from keychain.\n", auth.Label(name))
	return nil
}

func runEnvStatus(cmd *cobra.Command, opts *envOptions) error {
	name, err := envProvider(opts)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	label := auth.Label(name)

	if _, ok := getKey(name); ok {
		fmt.Fprintf(out, "%s API Key: Found (source=%s)\n", label, sourceKeychain)
		return nil
	}
	if _, varName, ok := getEnvKey(name); ok {
		fmt.Fprintf(out, "%s API Key: Found (source=%s %s)\n", label, sourceEnv, varName)
		return nil
	}
	fmt.Fprintf(out, "%s API Key: Not Found (keychain empty; %s not set)\n",
		label, strings.Join(auth.EnvVars(name), ", "))
	return nil
}
