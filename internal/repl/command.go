package repl

import (
	"strconv"
	"strings"
)

// Prefix starts every interactive command.
const Prefix = `\`

// Kind identifies a parsed input line.
type Kind int

const (
	CmdEmpty Kind = iota
	CmdText
	CmdSource
	CmdTarget
	CmdExit
	CmdHelp
	CmdHistory
	CmdConfig
	// CmdIncomplete is a known command missing its required argument.
	CmdIncomplete
	CmdUnknown
)

func (k Kind) String() string {
	switch k {
	case CmdEmpty:
		return "empty"
	case CmdText:
		return "text"
	case CmdSource:
		return "source"
	case CmdTarget:
		return "target"
	case CmdExit:
		return "exit"
	case CmdHelp:
		return "help"
	case CmdHistory:
		return "history"
	case CmdConfig:
		return "config"
	case CmdIncomplete:
		return "incomplete"
	default:
		return "unknown"
	}
}

// Command is one parsed input line. Arg holds the language for
// CmdSource/CmdTarget, the text for CmdText and the raw line for
// CmdIncomplete/CmdUnknown. N is the record count for CmdHistory.
type Command struct {
	Kind Kind
	Arg  string
	N    int
}

const defaultHistoryCount = 10

// ParseCommand classifies a single input line. Only lines starting with
// a backslash are commands; everything else is text to translate.
func ParseCommand(line string) Command {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{Kind: CmdEmpty}
	}
	if !strings.HasPrefix(line, Prefix) {
		return Command{Kind: CmdText, Arg: line}
	}

	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case Prefix + "source", Prefix + "target":
		if arg == "" {
			return Command{Kind: CmdIncomplete, Arg: line}
		}
		kind := CmdSource
		if name == Prefix+"target" {
			kind = CmdTarget
		}
		return Command{Kind: kind, Arg: arg}
	case Prefix + "exit", Prefix + "quit":
		return Command{Kind: CmdExit}
	case Prefix + "help":
		return Command{Kind: CmdHelp}
	case Prefix + "config":
		return Command{Kind: CmdConfig}
	case Prefix + "history":
		if arg == "" {
			return Command{Kind: CmdHistory, N: defaultHistoryCount}
		}
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return Command{Kind: CmdUnknown, Arg: line}
		}
		return Command{Kind: CmdHistory, N: n}
	}
	return Command{Kind: CmdUnknown, Arg: line}
}
