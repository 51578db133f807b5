package interactive

import (
	"io"

	"github.com/manifoldco/promptui"
)

// Prompter is the line-based prompt/response channel used to back-fill
// missing fields.
type Prompter interface {
	Ask(label string) (string, error)
}

// ConsolePrompter asks on the terminal via promptui. Stdin is injectable so
// tests can script replies.
type ConsolePrompter struct {
	Stdin io.ReadCloser
}

func (p *ConsolePrompter) Ask(label string) (string, error) {
	prompt := promptui.Prompt{Label: label}
	if p.Stdin != nil {
		prompt.Stdin = p.Stdin
	}
	return prompt.Run()
}
