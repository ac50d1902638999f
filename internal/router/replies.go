package router

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// Fixed replies.
const (
	msgGreeting        = "How can I help you?"
	msgGoodbye         = "Good bye!"
	msgInvalidCommand  = "Invalid command. Try again."
	msgInvalidFormat   = "Invalid input. Please check your command format."
	msgContactNotFound = "The contact does not exist. Try again."
	msgPhoneNotFound   = "Phone number not found."
	msgBirthdayNotSet  = "No birthday set. Use add-birthday to set one."
	msgNoContacts      = "No contacts found."
	msgContactAdded    = "Contact added."
	msgContactUpdated  = "Contact updated."
	msgBirthdayAdded   = "Birthday added."
)

// errInvalidFormat marks a command called with the wrong number of arguments.
var errInvalidFormat = errors.New("invalid input format")

// saveError carries a store failure out of the close/exit handlers. It is the
// only error Dispatch returns to its caller.
type saveError struct {
	err error
}

func (e *saveError) Error() string { return e.err.Error() }
func (e *saveError) Unwrap() error { return e.err }

// reply maps a failed command's error kind to the message shown to the user.
func reply(err error) string {
	switch {
	case errors.Is(err, errInvalidFormat):
		return msgInvalidFormat
	case errors.Is(err, types.ErrContactNotFound):
		return msgContactNotFound
	case errors.Is(err, types.ErrPhoneNotFound):
		return msgPhoneNotFound
	case errors.Is(err, types.ErrBirthdayNotSet):
		return msgBirthdayNotSet
	case types.IsValidation(err):
		return sentence(err.Error())
	default:
		return "Command failed: " + sentence(err.Error())
	}
}

// sentence capitalizes msg and terminates it with a period.
func sentence(msg string) string {
	if msg == "" {
		return msg
	}
	msg = strings.ToUpper(msg[:1]) + msg[1:]
	if !strings.HasSuffix(msg, ".") {
		msg += "."
	}
	return msg
}

// formatArgs wraps a cobra argument validator so its failures map to
// errInvalidFormat.
func formatArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", errInvalidFormat, err)
		}
		return nil
	}
}
