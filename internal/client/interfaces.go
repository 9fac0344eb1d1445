// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Pollivu Authors

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes one command invocation and returns when it completes.
	Run(ctx context.Context, args []string) error
}
