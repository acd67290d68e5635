package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/oukeidos/quicktrans/internal/apperrors"
	"github.com/oukeidos/quicktrans/internal/cleanup"
	"github.com/oukeidos/quicktrans/internal/config"
	"github.com/oukeidos/quicktrans/internal/files"
	"github.com/oukeidos/quicktrans/internal/history"
	"github.com/oukeidos/quicktrans/internal/logger"
	"github.com/oukeidos/quicktrans/internal/metadata"
	"github.com/oukeidos/quicktrans/internal/provider"
	"github.com/oukeidos/quicktrans/internal/repl"
	"github.com/oukeidos/quicktrans/internal/session"
	"github.com/oukeidos/quicktrans/internal/translator"
	"github.com/oukeidos/quicktrans/internal/version"
	"github.com/spf13/cobra"
)

func execute() {
	cmd := newRootCmd()
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", apperrors.PublicMessage(err))
	}
	if cleanupErr := cleanup.RunAll(); cleanupErr != nil {
		fmt.Fprintln(os.Stderr, cleanupErr)
		if err == nil {
			err = cleanupErr
		}
	}
	if err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	text       string
	configPath string
	envOnly    bool
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := rootOptions{}

	cmd := &cobra.Command{
		Use:   "quicktrans [source_language] [target_language]",
		Short: "Translate text between languages with a hosted language model",
		Long: `quicktrans translates text with a hosted chat model.

Run it with a source and target language to start an interactive session,
or pass --text to translate once and exit. Missing languages are asked for
when stdin is a terminal.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, args, &opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Version = version.Info()
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetUsageTemplate(rootUsageTemplate)

	f := cmd.Flags()
	f.StringVarP(&opts.text, "text", "t", "", "Translate this text once and exit")
	f.String("model", session.DefaultModel, "Model identifier")
	f.String("provider", session.DefaultProvider, "Model provider (google_genai or openai)")
	f.Int("max-history", history.DefaultCapacity, "Number of translations kept in session history")
	f.StringVar(&opts.configPath, "config", "", "Path to a config file (yaml, toml or json)")
	f.Bool("allow-env", true, "Allow reading API keys from environment variables")
	f.BoolVar(&opts.envOnly, "env-only", false, "Use only environment variables for API keys")
	f.String("log-file", "", "Path to save machine-readable JSONL logs")
	f.BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(
		newEnvCmd(),
		newListCmd(),
		newVersionCmd(),
	)

	cmd.InitDefaultCompletionCmd()
	for _, sub := range cmd.Commands() {
		if sub.Name() == "completion" {
			sub.SetUsageTemplate(subcommandUsageTemplate)
			break
		}
	}

	return cmd
}

func runRoot(cmd *cobra.Command, args []string, opts *rootOptions) error {
	cfg, err := config.Load(opts.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	if err := initLogging(cfg.LogFile, opts.debug); err != nil {
		return err
	}

	providerName, ok := provider.Default.Canonical(cfg.Provider)
	if !ok {
		return apperrors.Config(fmt.Sprintf("unknown provider %q (available: %s)",
			cfg.Provider, strings.Join(provider.Default.Names(), ", ")))
	}

	model := modelFor(providerName, cfg.Model, cmd.Flags().Changed("model"))

	interactive := isTerminal(int(os.Stdin.Fd()))
	in := newLineReader(interactive)
	cleanup.Register("line reader", in.Close)

	src, tgt, err := resolveLanguages(in, args, interactive)
	if err != nil {
		return err
	}
	sess, err := session.New(session.Config{
		SourceLanguage: src,
		TargetLanguage: tgt,
		Model:          model,
		Provider:       providerName,
		MaxHistory:     cfg.MaxHistory,
	})
	if err != nil {
		return err
	}

	apiKey, keySource, err := resolveAPIKey(providerName, cfg.AllowEnv, opts.envOnly)
	if err != nil {
		return err
	}
	logger.Debug("Resolved credentials", "provider", providerName, "source", keySource)

	ctx, stop := signalContext()
	defer stop()

	client, err := newClient(ctx, provider.Options{Provider: providerName, Model: model, APIKey: apiKey})
	if err != nil {
		return err
	}
	cleanup.Register("provider client", client.Close)

	tr, err := translator.New(sess, client)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("text") {
		return runOnce(ctx, cmd, tr, opts.text)
	}

	logger.Debug("Starting interactive session", "provider", providerName, "model", model)
	return repl.New(tr, in, cmd.OutOrStdout()).Run(ctx)
}

// runOnce translates text and prints only the translation to stdout.
func runOnce(ctx context.Context, cmd *cobra.Command, tr *translator.Translator, text string) error {
	rec, err := tr.Translate(ctx, text)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(cmd.ErrOrStderr(), "[!] Interrupted.")
			return nil
		}
		if kind, ok := apperrors.KindOf(err); ok {
			logger.Debug("Single-shot translation failed", "kind", kind)
		}
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), rec.Output)
	return nil
}

// modelFor swaps the built-in default model for the provider's own default
// when another provider was selected and no model was given explicitly.
func modelFor(providerName, model string, explicit bool) string {
	if explicit || model != session.DefaultModel || providerName == session.DefaultProvider {
		return model
	}
	if m, ok := metadata.DefaultModel(providerName); ok {
		return m
	}
	return model
}

func initLogging(logFile string, debug bool) error {
	level := logger.LevelInfo
	if debug {
		level = logger.LevelDebug
	}
	opts := logger.Options{
		Level: level,
		Attrs: []any{"session_id", uuid.NewString()},
	}
	if logFile != "" {
		f, err := files.OpenLogFile(logFile)
		if err != nil {
			return apperrors.New(apperrors.KindConfig, fmt.Sprintf("cannot use log file: %v", err), err)
		}
		cleanup.Register("log file", f.Close)
		opts.File = f
	}
	logger.Init(opts)
	return nil
}
