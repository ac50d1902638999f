// Package router turns lines of user input into address book operations.
// Each line is split into a command name and arguments, dispatched through
// a cobra command tree, and answered with a one-line (or one line per
// record) reply. Failed commands produce a reply, never a fatal error; only
// a failed save on close/exit is returned to the caller.
package router

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// Option configures a Router.
type Option func(*Router)

// WithClock sets the source of the reference date for birthday queries.
func WithClock(now func() time.Time) Option {
	return func(r *Router) { r.now = now }
}

// WithBirthdayWindow sets how many days ahead the birthdays command looks.
func WithBirthdayWindow(days int) Option {
	return func(r *Router) { r.window = days }
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Router) { r.logger = logger }
}

// Router dispatches commands against a single AddressBook. It is not safe
// for concurrent use.
type Router struct {
	book   *types.AddressBook
	store  types.Store
	root   *cobra.Command
	now    func() time.Time
	window int
	logger *zap.Logger
	done   bool
}

// New returns a Router operating on book. store receives the book when the
// session is closed.
func New(book *types.AddressBook, store types.Store, opts ...Option) *Router {
	r := &Router{
		book:   book,
		store:  store,
		now:    time.Now,
		window: types.DefaultBirthdayWindow,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.root = r.newCommandTree()
	return r
}

// Dispatch runs one line of input and returns the reply. The returned error
// is non-nil only when close/exit could not save the book.
func (r *Router) Dispatch(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return msgInvalidCommand, nil
	}
	name := strings.ToLower(fields[0])
	args := fields[1:]

	if cmd, _, err := r.root.Find([]string{name}); err != nil || cmd == r.root {
		r.logger.Debug("unknown command", zap.String("command", name))
		return r.suggest(name), nil
	}

	r.logger.Debug("dispatch", zap.String("command", name), zap.Int("args", len(args)))

	var out bytes.Buffer
	r.root.SetOut(&out)
	r.root.SetArgs(append([]string{name}, args...))
	err := r.root.Execute()

	var fatal *saveError
	switch {
	case err == nil:
		return strings.TrimRight(out.String(), "\n"), nil
	case errors.As(err, &fatal):
		r.logger.Error("save failed", zap.Error(fatal.err))
		return "", fatal.err
	default:
		r.logger.Debug("command failed", zap.String("command", name), zap.Error(err))
		return reply(err), nil
	}
}

// Done reports whether a close or exit command has ended the session.
func (r *Router) Done() bool { return r.done }

// Commands returns the names of the registered commands in sorted order.
func (r *Router) Commands() []string {
	var names []string
	for _, c := range r.root.Commands() {
		if listed(c) {
			names = append(names, c.Name())
		}
	}
	slices.Sort(names)
	return names
}

// listed reports whether c is shown in Commands and the help listing.
// cobra's IsAvailableCommand hides the help command itself, so this only
// checks the hidden and deprecated markers.
func listed(c *cobra.Command) bool {
	return !c.Hidden && c.Deprecated == ""
}

// suggest returns a "did you mean" reply for an unknown command, preferring
// commands that start with the typed name, then those within cobra's edit
// distance. Ties resolve alphabetically.
func (r *Router) suggest(name string) string {
	candidates := r.root.SuggestionsFor(name)
	if len(candidates) == 0 {
		return msgInvalidCommand
	}
	slices.SortStableFunc(candidates, func(a, b string) int {
		pa, pb := strings.HasPrefix(a, name), strings.HasPrefix(b, name)
		switch {
		case pa && !pb:
			return -1
		case pb && !pa:
			return 1
		default:
			return strings.Compare(a, b)
		}
	})
	return "Did you mean '" + candidates[0] + "'? Please try again."
}
