package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ParseConfirmation interprets a yes/no answer. Anything that is not a
// recognised answer, including an empty line, yields def.
func ParseConfirmation(input string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return def
	}
}

// Confirm writes the question with a (Y/n) or (y/N) hint to w and reads a
// single line from r. EOF without input counts as an empty answer.
func Confirm(r io.Reader, w io.Writer, question string, def bool) (bool, error) {
	hint := "(y/N)"
	if def {
		hint = "(Y/n)"
	}
	if _, err := fmt.Fprintf(w, "%s %s: ", question, hint); err != nil {
		return def, err
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return def, fmt.Errorf("error reading input: %w", err)
	}
	return ParseConfirmation(line, def), nil
}

// StdinConfirm prompts on stdin. The question is only styled when stdin is
// a terminal; piped input is read the same way.
func StdinConfirm(question string, def bool) (bool, error) {
	if IsInteractive(os.Stdin) {
		question = infoStyle.Render(question)
	}
	return Confirm(os.Stdin, os.Stdout, question, def)
}

func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
