// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// AttemptStatus records how a settled upload attempt ended.
type AttemptStatus string

const (
	AttemptCompleted AttemptStatus = "completed"
	AttemptFailed    AttemptStatus = "failed"
)

// AttemptRecord is the persisted summary of one upload attempt. The
// generated content itself is not kept; only where it went.
type AttemptRecord struct {
	// ID is the attempt identifier (a UUID).
	ID string `json:"id" yaml:"id"`

	// FileName is the name of the submitted .pkg file.
	FileName string `json:"file_name" yaml:"file_name"`

	// ResultFilename is the filename the service returned, if any.
	ResultFilename string `json:"result_filename,omitempty" yaml:"result_filename,omitempty"`

	// CaseID is the case number the service extracted from the package.
	CaseID string `json:"case_id,omitempty" yaml:"case_id,omitempty"`

	Status AttemptStatus `json:"status" yaml:"status"`

	// Message is the user-visible error message for failed attempts.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
