package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/oukeidos/quicktrans/internal/apperrors"
	"github.com/oukeidos/quicktrans/internal/logger"
	"github.com/oukeidos/quicktrans/internal/translator"
	"github.com/rivo/uniseg"
)

// State is the command loop state.
type State int

const (
	Idle State = iota
	Terminated
)

func (s State) String() string {
	if s == Terminated {
		return "terminated"
	}
	return "idle"
}

const (
	inputPrompt      = "> "
	previewGraphemes = 60
)

// Loop is the interactive command loop. It processes one line at a time;
// the only blocking call besides reading input is the provider request.
type Loop struct {
	tr    *translator.Translator
	in    LineReader
	out   io.Writer
	state State
}

func New(tr *translator.Translator, in LineReader, out io.Writer) *Loop {
	return &Loop{tr: tr, in: in, out: out}
}

func (l *Loop) State() State { return l.state }

// Run prints the session banner and processes input until \exit, end of
// input, or cancellation of ctx. Interrupts end the loop gracefully and
// are not reported as errors.
func (l *Loop) Run(ctx context.Context) error {
	l.printConfig()
	l.printHelp()

	for l.state == Idle {
		line, err := l.readLine(ctx)
		switch {
		case err == nil:
		case errors.Is(err, ErrInterrupted), errors.Is(err, context.Canceled):
			l.interrupt()
			return nil
		case errors.Is(err, io.EOF):
			fmt.Fprintln(l.out, "\n[!] Exiting...")
			l.state = Terminated
			return nil
		default:
			l.state = Terminated
			return fmt.Errorf("read input: %w", err)
		}
		l.dispatch(ctx, ParseCommand(line))
	}
	return nil
}

// readLine reads in a goroutine so that cancellation is observed while
// the reader blocks.
func (l *Loop) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := l.in.ReadLine("\n" + inputPrompt)
		ch <- result{line, err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.line, r.err
	}
}

func (l *Loop) dispatch(ctx context.Context, cmd Command) {
	sess := l.tr.Session()
	switch cmd.Kind {
	case CmdEmpty:
	case CmdExit:
		fmt.Fprintln(l.out, "\n[!] Exiting...")
		l.state = Terminated
	case CmdSource:
		name, err := sess.SetSource(cmd.Arg)
		l.reportLanguageChange("source_language", name, err)
	case CmdTarget:
		name, err := sess.SetTarget(cmd.Arg)
		l.reportLanguageChange("target_language", name, err)
	case CmdHelp:
		l.printHelp()
	case CmdConfig:
		l.printConfig()
	case CmdHistory:
		l.printHistory(cmd.N)
	case CmdIncomplete:
		fmt.Fprintf(l.out, "\n[!] Incomplete command: \"%s\"\n", cmd.Arg)
	case CmdUnknown:
		fmt.Fprintf(l.out, "\n[!] Unrecognized command: \"%s\"\n", cmd.Arg)
	case CmdText:
		l.translate(ctx, cmd.Arg)
	}
}

func (l *Loop) translate(ctx context.Context, text string) {
	rec, err := l.tr.Translate(ctx, text)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			l.interrupt()
			return
		}
		if apperrors.IsProvider(err) {
			kind, _ := apperrors.KindOf(err)
			logger.Warn("Translation failed", "kind", kind, "error", err)
		}
		fmt.Fprintf(l.out, "\n[!] Translation failed: %s\n", apperrors.PublicMessage(err))
		return
	}
	fmt.Fprintf(l.out, "\n%s\n", rec.Output)
}

func (l *Loop) interrupt() {
	fmt.Fprintf(l.out, "\n[!] Interrupted. Next time, enter \"%s\" to exit.\n", Prefix+"exit")
	l.state = Terminated
}

func (l *Loop) reportLanguageChange(key, value string, err error) {
	if err != nil {
		fmt.Fprintf(l.out, "\n[!] %s\n", apperrors.PublicMessage(err))
		return
	}
	fmt.Fprintf(l.out, "\n[!] Changed %s to: %s\n", key, value)
	l.printConfig()
}

func (l *Loop) printConfig() {
	fmt.Fprintln(l.out, "\n-- CONFIGURATION --")
	fields := l.tr.Session().Snapshot().Fields()
	width := 0
	for _, f := range fields {
		if len(f[0]) > width {
			width = len(f[0])
		}
	}
	for _, f := range fields {
		fmt.Fprintf(l.out, "%-*s : %s\n", width, f[0], f[1])
	}
}

func (l *Loop) printHelp() {
	fmt.Fprintf(l.out, `
Just enter the text to translate, or one of these commands:

	%[1]sexit                (to exit)
	%[1]ssource [language]   (to change source language)
	%[1]starget [language]   (to change target language)
	%[1]shistory [n]         (to show the last n translations)
	%[1]sconfig              (to show the current configuration)
	%[1]shelp                (to show this message)
`, Prefix)
}

func (l *Loop) printHistory(n int) {
	records := l.tr.History().Recent(n)
	if len(records) == 0 {
		fmt.Fprintln(l.out, "\n[!] No translations yet.")
		return
	}
	fmt.Fprintln(l.out)
	for i, r := range records {
		fmt.Fprintf(l.out, "%d. [%s -> %s] %s => %s\n",
			i+1, r.SourceLanguage, r.TargetLanguage,
			preview(r.Input, previewGraphemes), preview(r.Output, previewGraphemes))
	}
}

// preview flattens s to one line and truncates it to max grapheme
// clusters so that combining marks and emoji are never split.
func preview(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if uniseg.GraphemeClusterCount(s) <= max {
		return s
	}
	var sb strings.Builder
	g := uniseg.NewGraphemes(s)
	for i := 0; i < max-1 && g.Next(); i++ {
		sb.WriteString(g.Str())
	}
	sb.WriteString("…")
	return sb.String()
}
