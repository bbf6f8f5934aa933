// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"errors"
	"fmt"
)

// Messages shown in the error panel for failures that carry no server text.
const (
	MsgInvalidFile = "Please upload a .pkg file"
	MsgTransport   = "An error occurred while processing the file"
)

var (
	// ErrNoResult is returned by Download when no completed result is held.
	ErrNoResult = errors.New("no generated file to download")

	// ErrSuperseded is returned by SubmitFile when a later submission or a
	// Reset replaced the attempt before its response arrived.
	ErrSuperseded = errors.New("upload superseded by a newer attempt")

	errUnknownOutcome = errors.New("uploader returned an untagged outcome")
)

// Kind classifies why an attempt failed.
type Kind int

const (
	// KindValidation: the file was rejected locally and never sent.
	KindValidation Kind = iota + 1
	// KindServer: the service answered with an error field.
	KindServer
	// KindTransport: the request failed or the response was not JSON.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	case KindTransport:
		return "transport"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the terminal failure of an upload attempt. Message is what the
// user sees; Err holds the underlying cause for transport failures and is
// never shown.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// UserMessage returns the text for the error panel.
func (e *Error) UserMessage() string { return e.Message }

func kindOf(err error) Kind {
	var we *Error
	if errors.As(err, &we) {
		return we.Kind
	}
	return 0
}

// IsValidation reports whether err is a local file validation failure.
func IsValidation(err error) bool { return kindOf(err) == KindValidation }

// IsServer reports whether err carries a message reported by the service.
func IsServer(err error) bool { return kindOf(err) == KindServer }

// IsTransport reports whether err is a network or decoding failure.
func IsTransport(err error) bool { return kindOf(err) == KindTransport }
