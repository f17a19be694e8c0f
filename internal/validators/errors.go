// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"errors"
	"strings"
)

var (
	// ErrUnsupportedType is returned for values that are not structs.
	ErrUnsupportedType = errors.New("unsupported type for validation")
	// ErrInvalidInput is wrapped by every *ValidationError.
	ErrInvalidInput = errors.New("invalid input")
)

// FieldError is one rejected field.
type FieldError struct {
	// Field is the JSON name of the field, e.g. "email".
	Field string
	// Tag is the failed rule, e.g. "required".
	Tag string
	// Message is the Indonesian description shown to the user.
	Message string
}

// ValidationError lists every rejected field of a value.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// First returns the message of the first rejected field, or "".
func (e *ValidationError) First() string {
	if len(e.Fields) == 0 {
		return ""
	}
	return e.Fields[0].Message
}
