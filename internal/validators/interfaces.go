// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks user input before it leaves the client.
//
// Rules live in `validate` struct tags on the models; [Validator] reports
// violations as *[ValidationError] with Indonesian messages keyed by JSON
// field names.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {
	// Validate validates the provided input and optionally restricts
	// validation to the named struct fields.
	Validate(context.Context, any, ...string) error
}
