// Package prompt asks for line input until the answer passes validation.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"termcal/internal/model"
)

// Prompter reads answers from in and writes prompts and complaints to out.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Text asks for a non-blank value. A non-empty preset is returned as is.
func (p *Prompter) Text(label, preset string) (string, error) {
	if preset != "" {
		return preset, nil
	}
	for {
		fmt.Fprintf(p.out, "Input %s: ", label)
		line, err := p.line()
		if err != nil {
			return "", err
		}
		if line == "" {
			fmt.Fprintln(p.out, "Must not be blank.")
			continue
		}
		return line, nil
	}
}

// Index asks for an integer ID in [0, n).
func (p *Prompter) Index(n int) (int, error) {
	for {
		s, err := p.Text("ID", "")
		if err != nil {
			return 0, err
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			fmt.Fprintln(p.out, "Must be an integer.")
			continue
		}
		if i < 0 || i >= n {
			fmt.Fprintln(p.out, "Must be a valid ID.")
			continue
		}
		return i, nil
	}
}

// Choice asks until the answer matches one of the keys of options, and
// returns the mapped value. Matching ignores case.
func (p *Prompter) Choice(label string, options map[string]string) (string, error) {
	for {
		s, err := p.Text(label, "")
		if err != nil {
			return "", err
		}
		if v, ok := options[strings.ToLower(s)]; ok {
			return v, nil
		}
	}
}

// Date asks for an ISO date.
func (p *Prompter) Date(label string) (model.Date, error) {
	for {
		s, err := p.Text(label, "")
		if err != nil {
			return model.Date{}, err
		}
		d, err := model.ParseDate(s)
		if err != nil {
			fmt.Fprintln(p.out, "Must be in YYYY-MM-DD format.")
			continue
		}
		return d, nil
	}
}

func (p *Prompter) line() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		fmt.Fprintln(p.out)
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}
