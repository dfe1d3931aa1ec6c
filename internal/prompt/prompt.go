// Package prompt asks the user to confirm before a batch continues.
package prompt

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
)

// ErrDeclined is returned by callers when the user answers no.
var ErrDeclined = errors.New("aborted by user")

// Confirmer answers yes/no questions.
type Confirmer interface {
	Confirm(message string) (bool, error)
}

// Survey asks on the terminal.
type Survey struct{}

// Confirm shows message and waits for an answer. The default is no.
func (Survey) Confirm(message string) (bool, error) {
	var ok bool
	q := &survey.Confirm{Message: message, Default: false}
	if err := survey.AskOne(q, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// Auto answers every question with its value, for --yes and non-interactive runs.
type Auto bool

// Confirm returns a without asking.
func (a Auto) Confirm(string) (bool, error) { return bool(a), nil }
