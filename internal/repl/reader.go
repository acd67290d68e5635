package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
)

// ErrInterrupted is returned by a LineReader when the user presses Ctrl+C
// at the prompt.
var ErrInterrupted = errors.New("input interrupted")

// LineReader reads one line of user input. It returns io.EOF when input
// is exhausted.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// TerminalReader is a LineReader with line editing and in-memory
// up-arrow recall, for interactive terminals.
type TerminalReader struct {
	state *liner.State
}

func NewTerminalReader() *TerminalReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &TerminalReader{state: state}
}

func (r *TerminalReader) ReadLine(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", ErrInterrupted
		}
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		r.state.AppendHistory(line)
	}
	return line, nil
}

// Close restores the terminal mode.
func (r *TerminalReader) Close() error {
	return r.state.Close()
}

// ScannerReader reads newline-delimited input from any io.Reader. Used for
// pipes and tests.
type ScannerReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewScannerReader reads lines from in and echoes prompts to out (which
// may be nil).
func NewScannerReader(in io.Reader, out io.Writer) *ScannerReader {
	return &ScannerReader{scanner: bufio.NewScanner(in), out: out}
}

func (r *ScannerReader) ReadLine(prompt string) (string, error) {
	if r.out != nil && prompt != "" {
		fmt.Fprint(r.out, prompt)
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

func (r *ScannerReader) Close() error { return nil }

// AskNonEmpty prompts until the reader yields a non-blank line.
func AskNonEmpty(r LineReader, prompt string) (string, error) {
	for {
		line, err := r.ReadLine(prompt)
		if err != nil {
			return "", err
		}
		if s := strings.TrimSpace(line); s != "" {
			return s, nil
		}
	}
}
