package repl

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/oukeidos/quicktrans/internal/apperrors"
	"github.com/oukeidos/quicktrans/internal/prompt"
	"github.com/oukeidos/quicktrans/internal/provider"
	"github.com/oukeidos/quicktrans/internal/session"
	"github.com/oukeidos/quicktrans/internal/translator"
)

func newLoop(t *testing.T, client provider.Client, input string) (*Loop, *translator.Translator, *bytes.Buffer) {
	t.Helper()
	sess, err := session.New(session.Config{SourceLanguage: "German", TargetLanguage: "Spanish"})
	if err != nil {
		t.Fatalf("session.New() error: %v", err)
	}
	tr, err := translator.New(sess, client)
	if err != nil {
		t.Fatalf("translator.New() error: %v", err)
	}
	out := &bytes.Buffer{}
	return New(tr, NewScannerReader(strings.NewReader(input), nil), out), tr, out
}

func TestRun_EndToEnd(t *testing.T) {
	mock := &provider.Mock{Response: "Bonjour"}
	loop, tr, out := newLoop(t, mock, "\\source English\n\\target French\n\nHello\n\\exit\nnever read\n")

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if loop.State() != Terminated {
		t.Fatalf("expected Terminated, got %s", loop.State())
	}

	records := tr.History().All()
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records[0]
	if r.SourceLanguage != "English" || r.TargetLanguage != "French" || r.Input != "Hello" || r.Output != "Bonjour" {
		t.Fatalf("unexpected record: %+v", r)
	}
	if !strings.Contains(out.String(), "Bonjour") {
		t.Fatalf("output missing translation:\n%s", out.String())
	}
	if len(mock.Calls) != 1 {
		t.Fatalf("expected exactly one provider call, got %d", len(mock.Calls))
	}
	if !strings.Contains(out.String(), "Changed source_language to: English") {
		t.Fatalf("output missing language change notice:\n%s", out.String())
	}
}

func TestDispatch_ProviderErrorKeepsIdle(t *testing.T) {
	mock := &provider.Mock{Error: apperrors.New(apperrors.KindTransient, "Gemini request failed.", errors.New("dial tcp"))}
	loop, tr, out := newLoop(t, mock, "")

	loop.dispatch(context.Background(), ParseCommand("Hello"))

	if loop.State() != Idle {
		t.Fatalf("expected Idle after provider error, got %s", loop.State())
	}
	if tr.History().Len() != 0 {
		t.Fatalf("expected no history record, got %d", tr.History().Len())
	}
	if !strings.Contains(out.String(), "Translation failed: Gemini request failed.") {
		t.Fatalf("expected error message, got:\n%s", out.String())
	}
	if strings.Contains(out.String(), "dial tcp") {
		t.Fatalf("internal cause leaked to user output")
	}
}

func TestRun_ProviderErrorContinues(t *testing.T) {
	calls := 0
	mock := &provider.Mock{Func: func(_ context.Context, _ prompt.Request) (string, error) {
		calls++
		if calls == 1 {
			return "", apperrors.New(apperrors.KindAuth, "", errors.New("401"))
		}
		return "Hola", nil
	}}
	loop, tr, out := newLoop(t, mock, "Hello\nHello again\n\\exit\n")

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if tr.History().Len() != 1 || tr.History().All()[0].Input != "Hello again" {
		t.Fatalf("unexpected history: %+v", tr.History().All())
	}
	if !strings.Contains(out.String(), "Hola") {
		t.Fatalf("expected second translation in output:\n%s", out.String())
	}
}

func TestDispatch_ExitRegardlessOfHistory(t *testing.T) {
	for _, n := range []int{0, 1, 150} {
		loop, tr, _ := newLoop(t, &provider.Mock{Response: "x"}, "")
		for i := 0; i < n; i++ {
			if _, err := tr.Translate(context.Background(), "text"); err != nil {
				t.Fatal(err)
			}
		}
		loop.dispatch(context.Background(), ParseCommand(`\exit`))
		if loop.State() != Terminated {
			t.Fatalf("history=%d: expected Terminated, got %s", n, loop.State())
		}
	}
}

func TestDispatch_BadCommandsStayIdle(t *testing.T) {
	loop, _, out := newLoop(t, &provider.Mock{Response: "x"}, "")
	loop.dispatch(context.Background(), ParseCommand(`\source`))
	loop.dispatch(context.Background(), ParseCommand(`\bogus thing`))
	loop.dispatch(context.Background(), ParseCommand(""))

	if loop.State() != Idle {
		t.Fatalf("expected Idle, got %s", loop.State())
	}
	if !strings.Contains(out.String(), `Incomplete command: "\source"`) {
		t.Fatalf("missing incomplete notice:\n%s", out.String())
	}
	if !strings.Contains(out.String(), `Unrecognized command: "\bogus thing"`) {
		t.Fatalf("missing unrecognized notice:\n%s", out.String())
	}
}

func TestDispatch_InterruptMidRequest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mock := &provider.Mock{Func: func(ctx context.Context, _ prompt.Request) (string, error) {
		cancel()
		<-ctx.Done()
		return "", ctx.Err()
	}}
	loop, tr, out := newLoop(t, mock, "")

	loop.dispatch(ctx, ParseCommand("Hello"))

	if loop.State() != Terminated {
		t.Fatalf("expected Terminated, got %s", loop.State())
	}
	if tr.History().Len() != 0 {
		t.Fatalf("abandoned request must not be recorded")
	}
	if !strings.Contains(out.String(), "Interrupted") {
		t.Fatalf("expected interrupt message:\n%s", out.String())
	}
}

type interruptReader struct{}

func (interruptReader) ReadLine(string) (string, error) { return "", ErrInterrupted }
func (interruptReader) Close() error                    { return nil }

func TestRun_InterruptAtPrompt(t *testing.T) {
	loop, _, out := newLoop(t, &provider.Mock{}, "")
	loop.in = interruptReader{}

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if loop.State() != Terminated || !strings.Contains(out.String(), "Interrupted") {
		t.Fatalf("expected graceful interrupt, state=%s output:\n%s", loop.State(), out.String())
	}
}

func TestRun_CanceledWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	loop, _, out := newLoop(t, &provider.Mock{}, "")
	loop.in = NewScannerReader(pr, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancellation")
	}
	if loop.State() != Terminated || !strings.Contains(out.String(), "Interrupted") {
		t.Fatalf("expected graceful interrupt, output:\n%s", out.String())
	}
}

func TestRun_EOFExits(t *testing.T) {
	loop, _, out := newLoop(t, &provider.Mock{}, "")
	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if loop.State() != Terminated || !strings.Contains(out.String(), "Exiting") {
		t.Fatalf("expected exit on EOF, output:\n%s", out.String())
	}
}

func TestDispatch_HistoryAndConfig(t *testing.T) {
	loop, tr, out := newLoop(t, &provider.Mock{Response: "Hola"}, "")
	loop.dispatch(context.Background(), ParseCommand(`\history`))
	if !strings.Contains(out.String(), "No translations yet") {
		t.Fatalf("expected empty history notice:\n%s", out.String())
	}

	for _, text := range []string{"one", "two", "three"} {
		if _, err := tr.Translate(context.Background(), text); err != nil {
			t.Fatal(err)
		}
	}
	out.Reset()
	loop.dispatch(context.Background(), ParseCommand(`\history 2`))
	got := out.String()
	if strings.Contains(got, "one") || !strings.Contains(got, "1. [German -> Spanish] two => Hola") || !strings.Contains(got, "2. [German -> Spanish] three") {
		t.Fatalf("unexpected history output:\n%s", got)
	}

	out.Reset()
	loop.dispatch(context.Background(), ParseCommand(`\config`))
	if !strings.Contains(out.String(), "model") || !strings.Contains(out.String(), "gemini-2.5-flash") {
		t.Fatalf("unexpected config output:\n%s", out.String())
	}
}

func TestPreview(t *testing.T) {
	if got := preview("short\ntext", 10); got != "short text" {
		t.Fatalf("preview() = %q", got)
	}
	if got := preview("abcdefghij", 5); got != "abcd…" {
		t.Fatalf("preview() = %q", got)
	}
	// Flag emoji are two code points but one grapheme.
	if got := preview("🇫🇷🇫🇷🇫🇷", 2); got != "🇫🇷…" {
		t.Fatalf("preview() split a grapheme: %q", got)
	}
}

func TestAskNonEmpty(t *testing.T) {
	r := NewScannerReader(strings.NewReader("\n  \n French \n"), nil)
	got, err := AskNonEmpty(r, "Target language: ")
	if err != nil || got != "French" {
		t.Fatalf("AskNonEmpty() = (%q, %v)", got, err)
	}
	if _, err := AskNonEmpty(r, ""); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}
