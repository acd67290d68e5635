package provider

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/oukeidos/quicktrans/internal/apperrors"
	"github.com/oukeidos/quicktrans/internal/gemini"
	"github.com/oukeidos/quicktrans/internal/openai"
	"github.com/oukeidos/quicktrans/internal/prompt"
)

const (
	GoogleGenAI = "google_genai"
	OpenAI      = "openai"
)

// Client sends a translation prompt to a hosted model and returns the
// model's reply.
type Client interface {
	Translate(ctx context.Context, req prompt.Request) (string, error)
	Close() error
}

// Options configures a provider client.
type Options struct {
	Provider string
	Model    string
	APIKey   string
}

// Factory builds a client for one provider.
type Factory func(ctx context.Context, opts Options) (Client, error)

// Registry maps provider ids to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	aliases   map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		aliases:   make(map[string]string),
	}
}

// Register adds a factory under name and any aliases.
func (r *Registry) Register(name string, f Factory, aliases ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
	for _, a := range aliases {
		r.aliases[a] = name
	}
}

// Canonical returns the registered provider id for name or one of its aliases.
func (r *Registry) Canonical(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key := strings.ToLower(strings.TrimSpace(name))
	if _, ok := r.factories[key]; ok {
		return key, true
	}
	if target, ok := r.aliases[key]; ok {
		return target, true
	}
	return "", false
}

// Names lists registered provider ids.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds a client for opts.Provider.
func (r *Registry) New(ctx context.Context, opts Options) (Client, error) {
	name, ok := r.Canonical(opts.Provider)
	if !ok {
		return nil, apperrors.Config(fmt.Sprintf("unknown provider %q (available: %s)", opts.Provider, strings.Join(r.Names(), ", ")))
	}
	if strings.TrimSpace(opts.Model) == "" {
		return nil, apperrors.Config("model identifier must not be empty")
	}
	r.mu.RLock()
	f := r.factories[name]
	r.mu.RUnlock()
	opts.Provider = name
	return f(ctx, opts)
}

// Default is the registry of built-in providers.
var Default = NewRegistry()

func init() {
	Default.Register(GoogleGenAI, func(ctx context.Context, opts Options) (Client, error) {
		return gemini.NewClient(ctx, opts.APIKey, opts.Model)
	}, "gemini", "google", "google-genai")
	Default.Register(OpenAI, func(_ context.Context, opts Options) (Client, error) {
		return openai.NewClient(opts.APIKey, opts.Model), nil
	})
}

// New builds a client from the default registry.
func New(ctx context.Context, opts Options) (Client, error) {
	return Default.New(ctx, opts)
}
