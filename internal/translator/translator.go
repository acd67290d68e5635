package translator

import (
	"context"
	"fmt"
	"strings"

	"github.com/oukeidos/quicktrans/internal/apperrors"
	"github.com/oukeidos/quicktrans/internal/history"
	"github.com/oukeidos/quicktrans/internal/logger"
	"github.com/oukeidos/quicktrans/internal/prompt"
	"github.com/oukeidos/quicktrans/internal/provider"
	"github.com/oukeidos/quicktrans/internal/session"
)

// Translator ties a session, a provider client and a history log together.
type Translator struct {
	session *session.Session
	client  provider.Client
	history *history.Buffer
}

// New creates a Translator whose history holds sess's max_history records.
func New(sess *session.Session, client provider.Client) (*Translator, error) {
	if sess == nil {
		return nil, fmt.Errorf("session is required")
	}
	if client == nil {
		return nil, fmt.Errorf("provider client is required")
	}
	return &Translator{
		session: sess,
		client:  client,
		history: history.New(sess.Snapshot().MaxHistory),
	}, nil
}

func (t *Translator) Session() *session.Session { return t.session }

func (t *Translator) History() *history.Buffer { return t.history }

// Translate translates text with the current session languages. The
// result is recorded in history only when the provider returns a
// non-empty translation and ctx is still live.
func (t *Translator) Translate(ctx context.Context, text string) (history.Record, error) {
	text = strings.TrimSpace(text)
	snap := t.session.Snapshot()
	req, err := prompt.Build(snap, text)
	if err != nil {
		return history.Record{}, err
	}

	logger.Debug("Sending translation request",
		"provider", snap.Provider,
		"model", snap.Model,
		"source", snap.SourceLanguage,
		"target", snap.TargetLanguage,
		"chars", len(text),
	)

	out, err := t.client.Translate(ctx, req)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return history.Record{}, ctxErr
	}
	if err != nil {
		return history.Record{}, err
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return history.Record{}, apperrors.New(apperrors.KindValidation, "Empty response from model.", fmt.Errorf("empty translation"))
	}

	rec := history.NewRecord(snap.SourceLanguage, snap.TargetLanguage, text, out)
	t.history.Append(rec)
	logger.Debug("Translation recorded", "id", rec.ID, "history_len", t.history.Len())
	return rec, nil
}
