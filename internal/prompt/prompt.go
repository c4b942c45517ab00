// Package prompt reads operator answers from a console, one line per question.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
)

var (
	yesTokens = []string{"s", "si", "sí", "y", "yes"}
	noTokens  = []string{"n", "no"}
)

// Prompter asks questions on out and reads trimmed answers from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Line prints label and returns the next input line with surrounding whitespace removed.
// io.EOF is returned only when the input is exhausted and nothing was read.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label) //nolint:errcheck
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// YesNo asks label until the answer is a yes or no token, printing retry after every
// other answer. There is no retry limit.
func (p *Prompter) YesNo(label, retry string) (bool, error) {
	for {
		answer, err := p.Line(label)
		if err != nil {
			return false, err
		}
		answer = strings.ToLower(answer)
		switch {
		case lo.Contains(yesTokens, answer):
			return true, nil
		case lo.Contains(noTokens, answer):
			return false, nil
		}
		fmt.Fprintln(p.out, retry) //nolint:errcheck
	}
}

// Confirm asks label once and reports whether the answer is affirmative.
// Anything else, including an empty answer, counts as no.
func (p *Prompter) Confirm(label string) (bool, error) {
	answer, err := p.Line(label)
	if err != nil {
		return false, err
	}
	return IsAffirmative(answer), nil
}

// IsAffirmative reports whether answer is one of the accepted yes tokens, ignoring case.
func IsAffirmative(answer string) bool {
	return lo.Contains(yesTokens, strings.ToLower(strings.TrimSpace(answer)))
}
