package auth

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/zalando/go-keyring"
	"golang.org/x/term"
)

const serviceName = "quicktrans"

type credential struct {
	label   string
	account string
	envVars []string
}

var credentials = map[string]credential{
	"google_genai": {label: "Google Gemini", account: "google-api-key", envVars: []string{"GOOGLE_API_KEY", "GEMINI_API_KEY"}},
	"openai":       {label: "OpenAI", account: "openai-api-key", envVars: []string{"OPENAI_API_KEY"}},
}

func lookup(provider string) (credential, error) {
	c, ok := credentials[provider]
	if !ok {
		return credential{}, fmt.Errorf("no credentials known for provider %q", provider)
	}
	return c, nil
}

// Label returns a human-readable provider name for prompts.
func Label(provider string) string {
	if c, err := lookup(provider); err == nil {
		return c.label
	}
	return provider
}

// EnvVars returns the environment variables consulted for provider, in order.
func EnvVars(provider string) []string {
	c, err := lookup(provider)
	if err != nil {
		return nil
	}
	return append([]string(nil), c.envVars...)
}

// GetKey retrieves the API key for provider from the OS keychain.
func GetKey(provider string) (string, bool) {
	c, err := lookup(provider)
	if err != nil {
		return "", false
	}
	key, err := keyring.Get(serviceName, c.account)
	key = strings.TrimSpace(key)
	if err != nil || key == "" {
		return "", false
	}
	return key, true
}

// SaveKey saves the key for provider to the OS keychain.
func SaveKey(provider, key string) error {
	c, err := lookup(provider)
	if err != nil {
		return err
	}
	return keyring.Set(serviceName, c.account, strings.TrimSpace(key))
}

// DeleteKey removes the key for provider from the OS keychain.
func DeleteKey(provider string) error {
	c, err := lookup(provider)
	if err != nil {
		return err
	}
	return keyring.Delete(serviceName, c.account)
}

// GetEnvKey retrieves the key from the provider's environment variables.
// The second result names the variable that supplied it.
func GetEnvKey(provider string) (string, string, bool) {
	c, err := lookup(provider)
	if err != nil {
		return "", "", false
	}
	for _, name := range c.envVars {
		if key := strings.TrimSpace(os.Getenv(name)); key != "" {
			return key, name, true
		}
	}
	return "", "", false
}

// PromptForAPIKey reads an API key from the terminal without echo.
func PromptForAPIKey(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(bytePassword)), nil
}
