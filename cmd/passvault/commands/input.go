package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/term"

	"passvault/internal/domain"
)

// readSecret prompts on errOut and reads one line without echo when stdin
// is a terminal.
func (c *cli) readSecret(prompt string) (string, error) {
	fmt.Fprint(c.errOut, prompt)
	if f, ok := c.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(c.errOut)
		if err != nil {
			return "", errors.Wrap(err, "read password")
		}
		return string(b), nil
	}

	if c.reader == nil {
		c.reader = bufio.NewReader(c.in)
	}
	line, err := c.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", errors.Wrap(err, "read password")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// newSecret prompts twice and requires both answers to match.
func (c *cli) newSecret(prompt string) (string, error) {
	first, err := c.readSecret(prompt)
	if err != nil {
		return "", err
	}
	second, err := c.readSecret("Repeat: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errors.Wrap(domain.ErrInvalidArgument, "passwords do not match")
	}
	return first, nil
}
