package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

var errEmptyInput = errors.New("no input provided")

// readLine prompts for a single line of input.
func (c *cli) readLine(prompt string) (string, error) {
	fmt.Fprint(c.errOut, prompt)
	line, err := c.lineReader().ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		if err != nil {
			return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.TrimSpace(prompt), ":"), err)
		}
		return "", errEmptyInput
	}
	return line, nil
}

// readSecret prompts for a password. Input is not echoed when stdin is a
// terminal; piped input is read line by line.
func (c *cli) readSecret(prompt string) (string, error) {
	if f, ok := c.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(c.errOut, prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(c.errOut)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		if len(b) == 0 {
			return "", errEmptyInput
		}
		return string(b), nil
	}
	return c.readLine(prompt)
}

// valueOr returns v, or prompts for it when empty.
func (c *cli) valueOr(v, prompt string, secret bool) (string, error) {
	if v != "" {
		return v, nil
	}
	if secret {
		return c.readSecret(prompt)
	}
	return c.readLine(prompt)
}

// lineReader shares one buffered reader across prompts so consecutive
// reads from a pipe do not lose buffered input.
func (c *cli) lineReader() *bufio.Reader {
	if c.reader == nil {
		c.reader = bufio.NewReader(c.in)
	}
	return c.reader
}
