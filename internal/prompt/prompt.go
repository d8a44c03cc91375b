// Package prompt owns the interactive operator channel. One Prompter serves
// an entire setup run and asks one question at a time.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrClosed is returned by Ask and AskSecret after Close.
var ErrClosed = errors.New("prompt: channel closed")

type Prompter struct {
	in     io.Reader
	out    io.Writer
	reader *bufio.Reader
	closed bool
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:     in,
		out:    out,
		reader: bufio.NewReader(in),
	}
}

// Ask writes question and blocks until the operator answers with a line.
// End of input without any data yields an empty answer.
func (p *Prompter) Ask(question string) (string, error) {
	if p.closed {
		return "", ErrClosed
	}
	if _, err := io.WriteString(p.out, question); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// AskSecret is Ask without echo when the input is a terminal.
func (p *Prompter) AskSecret(question string) (string, error) {
	fd, ok := p.terminalFd()
	if !ok {
		return p.Ask(question)
	}
	if p.closed {
		return "", ErrClosed
	}
	if _, err := io.WriteString(p.out, question); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	return string(secret), nil
}

// IsTerminal reports whether the prompter reads from an interactive terminal.
func (p *Prompter) IsTerminal() bool {
	_, ok := p.terminalFd()
	return ok
}

func (p *Prompter) terminalFd() (int, bool) {
	f, ok := p.in.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}

// Close releases the channel. It is safe to call more than once.
func (p *Prompter) Close() error {
	p.closed = true
	return nil
}
