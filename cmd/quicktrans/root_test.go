package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/oukeidos/quicktrans/internal/apperrors"
	"github.com/oukeidos/quicktrans/internal/cleanup"
	"github.com/oukeidos/quicktrans/internal/provider"
	"github.com/oukeidos/quicktrans/internal/repl"
)

// withTestEnv isolates config lookup and stubs the provider client and
// input reader.
func withTestEnv(t *testing.T, mock *provider.Mock, input string) *provider.Options {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	withKeyStubs(t, false, "", "keychain-key", "")

	got := &provider.Options{}
	prevClient, prevReader := newClient, newLineReader
	newClient = func(_ context.Context, opts provider.Options) (provider.Client, error) {
		*got = opts
		return mock, nil
	}
	newLineReader = func(bool) repl.LineReader {
		return repl.NewScannerReader(strings.NewReader(input), nil)
	}
	t.Cleanup(func() {
		newClient, newLineReader = prevClient, prevReader
		_ = cleanup.RunAll()
	})
	return got
}

func TestRoot_SingleShot(t *testing.T) {
	mock := &provider.Mock{Response: "  Bonjour \n"}
	opts := withTestEnv(t, mock, "")

	out, err := executeCommand(t, "en", "French", "--text", "Hello", "--provider", "gemini")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if out != "Bonjour\n" {
		t.Fatalf("expected only the translation on stdout, got %q", out)
	}
	if opts.Provider != provider.GoogleGenAI || opts.Model != "gemini-2.5-flash" || opts.APIKey != "keychain-key" {
		t.Fatalf("unexpected provider options: %+v", *opts)
	}
	if len(mock.Calls) != 1 || !strings.Contains(mock.Calls[0].String(), "English") {
		t.Fatalf("expected one request naming the resolved language, got %+v", mock.Calls)
	}
	if err := cleanup.RunAll(); err != nil || !mock.Closed {
		t.Fatalf("expected client to be closed by cleanup (err=%v)", err)
	}
}

func TestRoot_SingleShotProviderError(t *testing.T) {
	mock := &provider.Mock{Error: apperrors.New(apperrors.KindRateLimit, "", errors.New("429"))}
	withTestEnv(t, mock, "")

	_, err := executeCommand(t, "English", "French", "-t", "Hello")
	if !apperrors.Is(err, apperrors.KindRateLimit) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
}

func TestRoot_SingleShotEmptyText(t *testing.T) {
	mock := &provider.Mock{Response: "x"}
	withTestEnv(t, mock, "")

	_, err := executeCommand(t, "English", "French", "--text", "   ")
	if !apperrors.Is(err, apperrors.KindInvalidInput) || len(mock.Calls) != 0 {
		t.Fatalf("expected invalid input without provider call, got %v", err)
	}
}

func TestRoot_Interactive(t *testing.T) {
	mock := &provider.Mock{Response: "Bonjour"}
	withTestEnv(t, mock, "\\target fr\nHello\n\\history\n\\exit\n")

	out, err := executeCommand(t, "English", "German", "--model", "custom-model", "--max-history", "5")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	for _, want := range []string{"model           : custom-model", "max_history     : 5", "Changed target_language to: French", "Bonjour", "1. [English -> French] Hello => Bonjour", "Exiting"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRoot_ProviderDefaultModel(t *testing.T) {
	mock := &provider.Mock{Response: "Hallo"}
	opts := withTestEnv(t, mock, "")

	if _, err := executeCommand(t, "English", "German", "--provider", "openai", "--text", "Hello"); err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if opts.Provider != provider.OpenAI || opts.Model != "gpt-5-mini" {
		t.Fatalf("expected openai default model, got %+v", *opts)
	}
}

func TestModelFor(t *testing.T) {
	cases := []struct {
		provider, model string
		explicit        bool
		want            string
	}{
		{"google_genai", "gemini-2.5-flash", false, "gemini-2.5-flash"},
		{"openai", "gemini-2.5-flash", false, "gpt-5-mini"},
		{"openai", "gemini-2.5-flash", true, "gemini-2.5-flash"},
		{"openai", "gpt-5.2", false, "gpt-5.2"},
	}
	for _, tc := range cases {
		if got := modelFor(tc.provider, tc.model, tc.explicit); got != tc.want {
			t.Fatalf("modelFor(%q, %q, %v) = %q, want %q", tc.provider, tc.model, tc.explicit, got, tc.want)
		}
	}
}

func TestRoot_ConfigErrors(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"missing_languages_non_interactive", []string{"English"}},
		{"unknown_provider", []string{"English", "French", "--provider", "nope"}},
		{"bad_max_history", []string{"English", "French", "--max-history", "0"}},
		{"missing_config_file", []string{"English", "French", "--config", "/nonexistent/quicktrans.yaml"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := &provider.Mock{Response: "x"}
			withTestEnv(t, mock, "")
			_, err := executeCommand(t, tc.args...)
			if !apperrors.Is(err, apperrors.KindConfig) {
				t.Fatalf("expected config error, got %v", err)
			}
			if len(mock.Calls) != 0 {
				t.Fatalf("provider must not be called on config errors")
			}
		})
	}
}

func TestRoot_TooManyArgs(t *testing.T) {
	withTestEnv(t, &provider.Mock{}, "")
	if _, err := executeCommand(t, "a", "b", "c"); err == nil {
		t.Fatalf("expected argument count error")
	}
}

func TestVersionAndList(t *testing.T) {
	out, err := executeCommand(t, "version")
	if err != nil || !strings.HasPrefix(out, "quicktrans ") {
		t.Fatalf("unexpected version output %q (%v)", out, err)
	}

	out, err = executeCommand(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "English") || !strings.Contains(out, "google_genai") || !strings.Contains(out, "openai") || !strings.Contains(out, "gpt-5-mini") {
		t.Fatalf("unexpected list output:\n%s", out)
	}
}
