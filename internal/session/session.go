package session

import (
	"fmt"

	"github.com/oukeidos/quicktrans/internal/apperrors"
	"github.com/oukeidos/quicktrans/internal/history"
	"github.com/oukeidos/quicktrans/internal/language"
)

const (
	DefaultModel    = "gemini-2.5-flash"
	DefaultProvider = "google_genai"
)

// Config is the startup configuration of a translation session.
type Config struct {
	SourceLanguage string
	TargetLanguage string
	Model          string
	Provider       string
	MaxHistory     int
}

// Snapshot is a read-only copy of the session configuration.
type Snapshot struct {
	SourceLanguage string
	TargetLanguage string
	Model          string
	Provider       string
	MaxHistory     int
}

// Session holds the mutable configuration for one run. Only the source
// and target languages change after construction.
type Session struct {
	cfg Config
}

// New validates cfg, fills defaults for zero-valued model, provider and
// max history, and returns a session. Language names are normalised.
func New(cfg Config) (*Session, error) {
	src, _ := language.Resolve(cfg.SourceLanguage)
	tgt, _ := language.Resolve(cfg.TargetLanguage)
	if src == "" || tgt == "" {
		return nil, apperrors.Config("source and target languages must be specified")
	}
	cfg.SourceLanguage = src
	cfg.TargetLanguage = tgt

	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Provider == "" {
		cfg.Provider = DefaultProvider
	}
	if cfg.MaxHistory == 0 {
		cfg.MaxHistory = history.DefaultCapacity
	}
	if cfg.MaxHistory < 1 {
		return nil, apperrors.Config(fmt.Sprintf("max history must be a positive integer, got %d", cfg.MaxHistory))
	}
	return &Session{cfg: cfg}, nil
}

// SetSource changes the source language. Empty input is rejected and the
// session is left unchanged.
func (s *Session) SetSource(lang string) (string, error) {
	name, _ := language.Resolve(lang)
	if name == "" {
		return "", apperrors.InvalidInput("source language must not be empty")
	}
	s.cfg.SourceLanguage = name
	return name, nil
}

// SetTarget changes the target language. Empty input is rejected and the
// session is left unchanged.
func (s *Session) SetTarget(lang string) (string, error) {
	name, _ := language.Resolve(lang)
	if name == "" {
		return "", apperrors.InvalidInput("target language must not be empty")
	}
	s.cfg.TargetLanguage = name
	return name, nil
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot(s.cfg)
}

// Fields returns the snapshot as ordered key/value pairs for display.
func (s Snapshot) Fields() [][2]string {
	return [][2]string{
		{"source_language", s.SourceLanguage},
		{"target_language", s.TargetLanguage},
		{"model", s.Model},
		{"provider", s.Provider},
		{"max_history", fmt.Sprint(s.MaxHistory)},
	}
}
