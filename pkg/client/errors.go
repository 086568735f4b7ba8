package client

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies request failures.
type Kind string

const (
	// KindTransport covers network level failures where no response arrived.
	KindTransport Kind = "transport"
	// KindServer is a non-2xx response carrying a {"message": ...} body.
	KindServer Kind = "server"
	// KindServerNoMessage is a non-2xx response without a parseable message.
	KindServerNoMessage Kind = "server_no_message"
	// KindDecode is a 2xx response whose body could not be decoded.
	KindDecode Kind = "decode"
)

// Error describes a failed operation.
type Error struct {
	Op      Operation
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "client: %s", e.Op)
	if e.Status != 0 {
		fmt.Fprintf(&b, ": status %d", e.Status)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// MessageOf returns the server supplied message carried by err, or fallback
// when there is none.
func MessageOf(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind == KindServer && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// KindOf returns the failure kind of err, or "" when err did not originate in
// this package.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}
