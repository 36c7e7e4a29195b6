package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompts shown when database credentials must be entered interactively.
const (
	userPrompt     = "Enter database username: "
	passwordPrompt = "Enter password to the database: "
)

// Prompter reads missing database credentials from an interactive terminal.
// Input is read as plain lines; nothing is masked.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter reading from in and writing prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// ask writes the prompt and returns the next line without its line ending.
// End of input yields an empty answer.
func (p *Prompter) ask(prompt string) (string, error) {
	if _, err := fmt.Fprint(p.out, prompt); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ResolveCredentials fills DBUser and DBPassword from the prompter when the
// driver needs them and they were not provided by flags, the environment or
// the config file. A nil prompter disables prompting.
func (c *Config) ResolveCredentials(p *Prompter) error {
	if !c.RequiresCredentials() {
		return nil
	}

	if c.DBUser == "" && p != nil {
		user, err := p.ask(userPrompt)
		if err != nil {
			return err
		}
		c.DBUser = strings.TrimSpace(user)
	}
	if c.DBUser == "" {
		return ErrMissingCredentials
	}

	if c.DBPassword == "" && p != nil {
		password, err := p.ask(passwordPrompt)
		if err != nil {
			return err
		}
		c.DBPassword = password
	}

	return nil
}
