// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the client's background jobs for the lifetime of
// the terminal UI.
package workers

import "context"

// Worker is a background job with an explicit lifecycle. Start must not
// block; Stop blocks until the job has exited.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
