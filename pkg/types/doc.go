// Package types defines the contact data model for the address book: the
// self-validating field types, the Record and AddressBook containers, the
// Snapshot used for persistence, the Store interface implemented by the
// storage backends, and the standard error values.
package types
