package provider

import (
	"context"

	"github.com/oukeidos/quicktrans/internal/prompt"
)

// Mock is a Client for tests. If Func is set it takes precedence over
// Response/Error.
type Mock struct {
	Response string
	Error    error
	Func     func(ctx context.Context, req prompt.Request) (string, error)

	Calls  []prompt.Request
	Closed bool
}

func (m *Mock) Translate(ctx context.Context, req prompt.Request) (string, error) {
	m.Calls = append(m.Calls, req)
	if m.Func != nil {
		return m.Func(ctx, req)
	}
	return m.Response, m.Error
}

func (m *Mock) Close() error {
	m.Closed = true
	return nil
}
