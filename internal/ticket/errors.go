package ticket

import (
	"errors"
	"fmt"
)

// ErrorKind classifies ticket lifecycle failures.
type ErrorKind string

const (
	KindAlreadyHasTicket     ErrorKind = "already_has_ticket"
	KindConfigurationMissing ErrorKind = "configuration_missing"
	KindProvisioningFailed   ErrorKind = "provisioning_failed"
	KindNotATicketChannel    ErrorKind = "not_a_ticket_channel"
)

// Error is returned by OpenTicket and CloseTicket. Resource and Name identify
// the missing category or role for KindConfigurationMissing.
type Error struct {
	Kind     ErrorKind
	Resource string
	Name     string
	Err      error
}

var (
	ErrAlreadyHasTicket     = &Error{Kind: KindAlreadyHasTicket}
	ErrConfigurationMissing = &Error{Kind: KindConfigurationMissing}
	ErrProvisioningFailed   = &Error{Kind: KindProvisioningFailed}
	ErrNotATicketChannel    = &Error{Kind: KindNotATicketChannel}

	// ErrUnknownChannel is returned by a Gateway when the channel no longer exists.
	ErrUnknownChannel = errors.New("unknown channel")

	errNotReserved  = errors.New("no reservation held for user")
	errChannelInUse = errors.New("channel already backs another ticket")
)

func (e *Error) Error() string {
	switch {
	case e.Kind == KindConfigurationMissing && e.Name != "":
		return fmt.Sprintf("%s: %s %q not found", e.Kind, e.Resource, e.Name)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrAlreadyHasTicket) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func configurationMissing(resource, name string) *Error {
	return &Error{Kind: KindConfigurationMissing, Resource: resource, Name: name}
}

func provisioningFailed(err error) *Error {
	return &Error{Kind: KindProvisioningFailed, Err: err}
}
