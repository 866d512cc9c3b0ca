package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fractalqb/vibrant"
)

// prompter asks for input that was given neither as argument nor in the
// configuration.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

func (p *prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	switch {
	case errors.Is(err, io.EOF) && line != "":
	case err != nil:
		return "", fmt.Errorf("%s: %w", strings.TrimSpace(question), err)
	}
	return strings.TrimSpace(line), nil
}

func (p *prompter) book() (string, error) {
	for {
		name, err := p.ask("Name of book: ")
		if err != nil || name != "" {
			return name, err
		}
	}
}

// font asks whether to change the font and if so for name and size. It
// returns a zero replacement if the user declines.
func (p *prompter) font() (fr vibrant.FontReplacement, err error) {
	answer, err := p.ask("Change Font? (1 for Yes, 0 for No): ")
	if err != nil {
		return fr, err
	}
	switch answer {
	case "0":
		return fr, nil
	case "1":
	default:
		return fr, fmt.Errorf("change font: answer 1 or 0, not '%s'", answer)
	}
	if fr.Name, err = p.ask("Font name: "); err != nil {
		return fr, err
	}
	size, err := p.ask("Font size: ")
	if err != nil {
		return fr, err
	}
	pt, err := strconv.ParseFloat(size, 32)
	if err != nil || pt <= 0 {
		return fr, fmt.Errorf("font size '%s' is not a positive number", size)
	}
	fr.Size = vibrant.Pt(pt)
	return fr, nil
}
