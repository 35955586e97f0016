package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// GetSimpleText prints a prompt to w and reads one line from sc. Prompts
// share the REPL's scanner so piped input is consumed in order.
func GetSimpleText(sc *bufio.Scanner, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(sc.Text()), nil
}

// GetSecret reads a secret without echo when stdin is a terminal, and as a
// plain line from sc otherwise.
func GetSecret(sc *bufio.Scanner, prompt string, w io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		return GetSimpleText(sc, prompt, w)
	}

	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	secret, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(secret)), nil
}
