package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/mydot/pkg/errors"
)

// PromptCommitMessage asks for a commit message after listing the pending
// paths. It uses an interactive input on a terminal and reads one line from
// stdin otherwise.
func PromptCommitMessage(changed []string) (string, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return ReadCommitMessage(os.Stdin, os.Stderr, changed)
	}
	pterm.Println("Changes to commit:")
	for _, p := range changed {
		pterm.Println("  " + p)
	}
	msg, err := pterm.DefaultInteractiveTextInput.Show("Commit message")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to read commit message")
	}
	return strings.TrimSpace(msg), nil
}

// ReadCommitMessage writes the pending paths to out and reads a single line
// from in. An empty line yields an empty message.
func ReadCommitMessage(in io.Reader, out io.Writer, changed []string) (string, error) {
	_, _ = fmt.Fprintln(out, "Changes to commit:")
	for _, p := range changed {
		_, _ = fmt.Fprintf(out, "  %s\n", p)
	}
	_, _ = fmt.Fprint(out, "Commit message: ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to read commit message")
	}
	return strings.TrimSpace(line), nil
}
