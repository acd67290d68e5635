package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/oukeidos/quicktrans/internal/apperrors"
	"github.com/oukeidos/quicktrans/internal/auth"
	"github.com/oukeidos/quicktrans/internal/logger"
	"github.com/oukeidos/quicktrans/internal/provider"
	"github.com/oukeidos/quicktrans/internal/repl"
	"golang.org/x/term"
)

var (
	isTerminal    = term.IsTerminal
	getKey        = auth.GetKey
	getEnvKey     = auth.GetEnvKey
	promptForKey  = auth.PromptForAPIKey
	newClient     = provider.New
	newLineReader = func(interactive bool) repl.LineReader {
		if interactive {
			return repl.NewTerminalReader()
		}
		return repl.NewScannerReader(os.Stdin, nil)
	}
)

const (
	sourceKeychain = "Keychain"
	sourceEnv      = "Environment Variable"
	sourcePrompt   = "Terminal Prompt"
)

// resolveAPIKey finds the API key for providerName: keychain first, then
// the environment (when allowed), then a hidden terminal prompt.
func resolveAPIKey(providerName string, allowEnv, envOnly bool) (string, string, error) {
	envNames := strings.Join(auth.EnvVars(providerName), " or ")
	if envOnly {
		if key, _, ok := getEnvKey(providerName); ok {
			return key, sourceEnv, nil
		}
		return "", "", apperrors.Config(fmt.Sprintf("--env-only set but %s is not set", envNames))
	}

	if key, ok := getKey(providerName); ok {
		return key, sourceKeychain, nil
	}

	if allowEnv {
		if key, _, ok := getEnvKey(providerName); ok {
			return key, sourceEnv, nil
		}
	}

	if !isTerminal(int(os.Stdin.Fd())) {
		return "", "", apperrors.Config(fmt.Sprintf(
			"no API key available for %s (non-interactive shell); run \"quicktrans env setup --provider %s\" or set %s",
			providerName, providerName, envNames))
	}

	key, err := promptForKey(fmt.Sprintf("%s API Key: ", auth.Label(providerName)))
	if err != nil {
		return "", "", apperrors.New(apperrors.KindConfig, "Failed to read API key.", err)
	}
	if key = strings.TrimSpace(key); key != "" {
		return key, sourcePrompt, nil
	}
	return "", "", apperrors.Config(fmt.Sprintf("API key is required; not found in keychain or %s", envNames))
}

// resolveLanguages takes the languages from args and asks for any that
// are missing when stdin is a terminal.
func resolveLanguages(in repl.LineReader, args []string, interactive bool) (string, string, error) {
	var src, tgt string
	if len(args) > 0 {
		src = strings.TrimSpace(args[0])
	}
	if len(args) > 1 {
		tgt = strings.TrimSpace(args[1])
	}
	if src != "" && tgt != "" {
		return src, tgt, nil
	}
	if !interactive {
		return "", "", apperrors.Config("source and target languages are required when stdin is not a terminal")
	}

	var err error
	if src == "" {
		if src, err = repl.AskNonEmpty(in, "Source language: "); err != nil {
			return "", "", readAbort(err)
		}
	}
	if tgt == "" {
		if tgt, err = repl.AskNonEmpty(in, "Target language: "); err != nil {
			return "", "", readAbort(err)
		}
	}
	return src, tgt, nil
}

func readAbort(err error) error {
	return apperrors.New(apperrors.KindConfig, "Language selection aborted.", err)
}

func signalContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Debug("Cancellation requested")
			cancel()
		case <-ctx.Done():
		}
	}()
	stop := func() {
		signal.Stop(sigCh)
		cancel()
	}
	return ctx, stop
}
