// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"context"
	"io"
)

// File is a file handed to the controller: a name and its bytes.
type File struct {
	Name string
	Body io.Reader
}

// OutcomeKind tags which variant of Outcome is populated.
type OutcomeKind int

const (
	OutcomeSucceeded OutcomeKind = iota + 1
	OutcomeRejected
	OutcomeTransportFailed
)

// Outcome is the settled result of one upload request.
type Outcome struct {
	Kind OutcomeKind

	// Set when Kind is OutcomeSucceeded.
	Content  string
	Filename string
	CaseID   string

	// Set when Kind is OutcomeRejected.
	Message string

	// Set when Kind is OutcomeTransportFailed.
	Err error
}

// Succeeded builds the outcome for a response carrying generated content.
func Succeeded(content, filename, caseID string) Outcome {
	return Outcome{Kind: OutcomeSucceeded, Content: content, Filename: filename, CaseID: caseID}
}

// Rejected builds the outcome for a response carrying an error field.
func Rejected(message string) Outcome {
	return Outcome{Kind: OutcomeRejected, Message: message}
}

// TransportFailed builds the outcome for a failed request or an
// undecodable response.
func TransportFailed(err error) Outcome {
	return Outcome{Kind: OutcomeTransportFailed, Err: err}
}

// Uploader sends a file to the conversion service.
type Uploader interface {
	Upload(ctx context.Context, f File) Outcome
}

// UploaderFunc adapts a function to Uploader.
type UploaderFunc func(ctx context.Context, f File) Outcome

func (fn UploaderFunc) Upload(ctx context.Context, f File) Outcome { return fn(ctx, f) }

// MIMEPlainText is the content type generated files are saved with.
const MIMEPlainText = "text/plain"

// Saver materializes generated content under a filename.
type Saver interface {
	Save(name, mimeType string, r io.Reader) error
}
