package router

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// handler runs one command and returns its reply text.
type handler func(args []string) (string, error)

// commandDef describes one session command.
type commandDef struct {
	use   string
	short string
	args  cobra.PositionalArgs
	run   handler
}

func (r *Router) definitions() []commandDef {
	return []commandDef{
		{"hello", "Greet the user", cobra.ArbitraryArgs, r.hello},
		{"add <name> <phone>", "Add a contact or a phone number to an existing contact", cobra.MinimumNArgs(2), r.addContact},
		{"change <name> <old_phone> <new_phone>", "Replace a contact's phone number", cobra.ExactArgs(3), r.changeContact},
		{"phone <name>", "Show a contact's phone numbers", cobra.MinimumNArgs(1), r.showPhone},
		{"all", "Show all contacts", cobra.ArbitraryArgs, r.showAll},
		{"add-birthday <name> <DD.MM.YYYY>", "Set a contact's birthday", cobra.ExactArgs(2), r.addBirthday},
		{"show-birthday <name>", "Show a contact's birthday", cobra.MinimumNArgs(1), r.showBirthday},
		{"birthdays", "Show birthdays coming up in the next week", cobra.ArbitraryArgs, r.birthdays},
		{"delete <name>", "Delete a contact", cobra.MinimumNArgs(1), r.deleteContact},
		{"remove-phone <name> <phone>", "Remove a phone number from a contact", cobra.ExactArgs(2), r.removePhone},
		{"close", "Save contacts and end the session", cobra.ArbitraryArgs, r.closeSession},
		{"exit", "Save contacts and end the session", cobra.ArbitraryArgs, r.closeSession},
	}
}

// newCommandTree builds the cobra tree used for dispatch, argument checks,
// help and suggestions.
func (r *Router) newCommandTree() *cobra.Command {
	root := &cobra.Command{
		Use:               "addressbook",
		SilenceErrors:     true,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	for _, def := range r.definitions() {
		run := def.run
		root.AddCommand(&cobra.Command{
			Use:                def.use,
			Short:              def.short,
			Args:               formatArgs(def.args),
			DisableFlagParsing: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				msg, err := run(args)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), msg)
				return nil
			},
		})
	}

	root.SetHelpCommand(&cobra.Command{
		Use:                "help",
		Short:              "List available commands",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), r.helpText(root))
			return nil
		},
	})
	root.InitDefaultHelpCmd()

	return root
}

func (r *Router) helpText(root *cobra.Command) string {
	var b strings.Builder
	b.WriteString("Available commands:")
	for _, c := range root.Commands() {
		if !listed(c) {
			continue
		}
		fmt.Fprintf(&b, "\n  %-40s %s", c.Use, c.Short)
	}
	return b.String()
}

func (r *Router) hello([]string) (string, error) {
	return msgGreeting, nil
}

func (r *Router) addContact(args []string) (string, error) {
	name, phone := args[0], args[1]

	record, err := r.book.Find(name)
	if errors.Is(err, types.ErrContactNotFound) {
		record, err = types.NewRecord(name)
		if err != nil {
			return "", err
		}
		if err := record.AddPhone(phone); err != nil {
			return "", err
		}
		r.book.AddRecord(record)
		return msgContactAdded, nil
	}

	if err := record.AddPhone(phone); err != nil {
		return "", err
	}
	return msgContactUpdated, nil
}

func (r *Router) changeContact(args []string) (string, error) {
	record, err := r.book.Find(args[0])
	if err != nil {
		return "", err
	}
	if err := record.EditPhone(args[1], args[2]); err != nil {
		return "", err
	}
	return msgContactUpdated, nil
}

func (r *Router) showPhone(args []string) (string, error) {
	name := args[0]
	record, err := r.book.Find(name)
	if err != nil {
		return "", err
	}
	phones := record.Phones()
	if len(phones) == 0 {
		return name + " has no phone numbers.", nil
	}
	values := make([]string, len(phones))
	for i, p := range phones {
		values[i] = p.String()
	}
	return fmt.Sprintf("%s's phone numbers are %s", name, strings.Join(values, ", ")), nil
}

func (r *Router) showAll([]string) (string, error) {
	if r.book.Len() == 0 {
		return msgNoContacts, nil
	}
	return joinRecords(r.book.Records()), nil
}

func (r *Router) addBirthday(args []string) (string, error) {
	record, err := r.book.Find(args[0])
	if err != nil {
		return "", err
	}
	if err := record.SetBirthday(args[1]); err != nil {
		return "", err
	}
	return msgBirthdayAdded, nil
}

func (r *Router) showBirthday(args []string) (string, error) {
	name := args[0]
	record, err := r.book.Find(name)
	if err != nil {
		return "", err
	}
	b, ok := record.Birthday()
	if !ok {
		return "", fmt.Errorf("%w: %s", types.ErrBirthdayNotSet, name)
	}
	return fmt.Sprintf("%s's birthday is %s", name, b), nil
}

func (r *Router) birthdays([]string) (string, error) {
	upcoming := r.book.UpcomingBirthdays(r.window, r.now())
	if len(upcoming) == 0 {
		if r.window == types.DefaultBirthdayWindow {
			return "No birthdays in the next week.", nil
		}
		return fmt.Sprintf("No birthdays in the next %d days.", r.window), nil
	}
	return joinRecords(upcoming), nil
}

func (r *Router) deleteContact(args []string) (string, error) {
	name := args[0]
	r.book.Delete(name)
	return fmt.Sprintf("Contact '%s' deleted.", name), nil
}

func (r *Router) removePhone(args []string) (string, error) {
	name, phone := args[0], args[1]
	record, err := r.book.Find(name)
	if err != nil {
		return "", err
	}
	record.RemovePhone(phone)
	return fmt.Sprintf("Phone number '%s' removed from contact '%s'.", phone, name), nil
}

func (r *Router) closeSession([]string) (string, error) {
	if err := r.store.Save(r.book); err != nil {
		return "", &saveError{err: fmt.Errorf("save address book: %w", err)}
	}
	r.done = true
	return msgGoodbye, nil
}

func joinRecords(records []*types.Record) string {
	lines := make([]string, len(records))
	for i, rec := range records {
		lines[i] = rec.String()
	}
	return strings.Join(lines, "\n")
}
