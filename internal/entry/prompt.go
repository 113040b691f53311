package entry

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInterrupted is returned when input ends before the dialog is complete.
var ErrInterrupted = errors.New("input closed")

// Prompter asks line-oriented questions on a terminal or any reader/writer pair.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask prints label and returns the trimmed answer.
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInterrupted
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a y/n question. Only "y" or "yes" (any case) count as yes.
func (p *Prompter) Confirm(label string) (bool, error) {
	answer, err := p.Ask(label)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Lines collects answers until an empty line.
func (p *Prompter) Lines(label string) ([]string, error) {
	var lines []string
	for {
		line, err := p.Ask(label)
		if errors.Is(err, ErrInterrupted) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
		if line == "" {
			return lines, nil
		}
		lines = append(lines, line)
	}
}

func (p *Prompter) Println(a ...any) { fmt.Fprintln(p.out, a...) }

func (p *Prompter) Printf(format string, a ...any) { fmt.Fprintf(p.out, format, a...) }
