// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package topology

import (
	"errors"
	"fmt"
)

// ErrInvalidStructure is wrapped by every decode failure: malformed JSON,
// a missing collection, bad arc references or unexpected geometry shapes.
// Decoding is deterministic, so retrying the same asset cannot succeed.
var ErrInvalidStructure = errors.New("topology: invalid structure")

// StructureError describes where a topology document is malformed.
type StructureError struct {
	// Where is a JSON-path-like location, e.g. "objects.land.geometries[3].arcs".
	Where string

	// Reason is a short description of the problem.
	Reason string

	// Err is the underlying error, if any.
	Err error
}

func (e *StructureError) Error() string {
	msg := fmt.Sprintf("topology: invalid structure at %s: %s", e.Where, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both ErrInvalidStructure and the underlying cause.
func (e *StructureError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidStructure}
	}
	return []error{ErrInvalidStructure, e.Err}
}

func structErr(where, reason string, err error) error {
	return &StructureError{Where: where, Reason: reason, Err: err}
}
