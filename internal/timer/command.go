package timer

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

// Action is what a command typed at the paused prompt asks for
type Action int

const (
	ActionUnknown Action = iota
	ActionSave
	ActionDiscard
	ActionResume
	ActionQuit
)

// Command is a parsed paused prompt line
type Command struct {
	Action Action
	Title  string // save only; empty keeps the session title
}

// ParseCommand interprets a line typed while paused.
// Save accepts a positional title or --title/-t, the flag winning when both are given.
func ParseCommand(line string) (Command, error) {
	args, err := splitArgs(strings.TrimSpace(line))
	if err != nil {
		return Command{}, err
	}
	if len(args) == 0 {
		return Command{Action: ActionResume}, nil
	}

	switch strings.ToLower(args[0]) {
	case "save", "s":
		title, err := parseSaveTitle(args[1:])
		if err != nil {
			return Command{}, err
		}
		return Command{Action: ActionSave, Title: title}, nil
	case "discard", "cancel":
		return Command{Action: ActionDiscard}, nil
	case "resume", "continue":
		return Command{Action: ActionResume}, nil
	case "quit", "exit", "q":
		return Command{Action: ActionQuit}, nil
	default:
		return Command{Action: ActionUnknown}, nil
	}
}

func parseSaveTitle(args []string) (string, error) {
	fs := pflag.NewFlagSet("save", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	title := fs.StringP("title", "t", "", "session title")

	if err := fs.Parse(args); err != nil {
		return "", fmt.Errorf("save: %w", err)
	}
	if fs.Changed("title") {
		return strings.TrimSpace(*title), nil
	}
	return strings.TrimSpace(strings.Join(fs.Args(), " ")), nil
}

// splitArgs splits on whitespace, honouring single and double quotes
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quote   rune
		inArg   bool
	)

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case r == ' ' || r == '\t':
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if inArg {
		args = append(args, current.String())
	}
	return args, nil
}
