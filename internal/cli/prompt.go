package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

// ErrCancelled is returned when the user backs out of a prompt.
var ErrCancelled = errors.New("cancelled")

// Prompter asks the user for input.
type Prompter interface {
	Confirm(title, description string) (bool, error)
	Input(title, placeholder string) (string, error)
}

// HuhPrompter prompts on the terminal with huh forms.
type HuhPrompter struct{}

func (HuhPrompter) Confirm(title, description string) (bool, error) {
	confirmed := false
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, ErrCancelled
	}
	return confirmed, err
}

func (HuhPrompter) Input(title, placeholder string) (string, error) {
	var value string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder(placeholder).
				Value(&value).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("required")
					}
					return nil
				}),
		),
	).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return "", ErrCancelled
	}
	return strings.TrimSpace(value), err
}

// StaticPrompter answers every prompt with fixed values. It backs --yes
// flags and tests.
type StaticPrompter struct {
	Confirmed bool
	Value     string
}

func (p StaticPrompter) Confirm(string, string) (bool, error) {
	return p.Confirmed, nil
}

func (p StaticPrompter) Input(string, string) (string, error) {
	if strings.TrimSpace(p.Value) == "" {
		return "", ErrCancelled
	}
	return strings.TrimSpace(p.Value), nil
}
