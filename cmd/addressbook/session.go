// Interactive session for the addressbook CLI.
package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/mesh-intelligence/addressbook/internal/router"
)

const (
	sessionWelcome = "Welcome to the assistant bot!"
	sessionPrompt  = "Enter a command: "
)

// runSession loads the book, answers commands read from a.in until close,
// exit or end of input, and saves the book. Reaching end of input saves as
// close would.
func (a *app) runSession(out io.Writer) error {
	book, err := a.loadBook()
	if err != nil {
		return err
	}
	r := router.New(book, a.store,
		router.WithBirthdayWindow(a.cfg.BirthdayWindow),
		router.WithLogger(a.logger),
	)

	fmt.Fprintln(out, sessionWelcome)
	scanner := bufio.NewScanner(a.in)
	for {
		fmt.Fprint(out, sessionPrompt)
		if !scanner.Scan() {
			break
		}
		reply, err := r.Dispatch(scanner.Text())
		if err != nil {
			return sysError(err)
		}
		fmt.Fprintln(out, reply)
		if r.Done() {
			return nil
		}
	}
	fmt.Fprintln(out)

	if err := scanner.Err(); err != nil {
		a.logger.Warn("reading input failed, saving before exit")
		if saveErr := a.saveBook(book); saveErr != nil {
			return saveErr
		}
		return sysError(fmt.Errorf("read input: %w", err))
	}
	return a.saveBook(book)
}
