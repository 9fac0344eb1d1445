// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Pollivu Authors

// Package client implements the pollctl command-line runtime.
//
// It wires the HTTP poll adapter and the local credential store into a
// single dispatcher: create polls, vote, follow live results, and manage
// polls with the locally kept creator tokens. The anonymous voter session
// is generated on first use and persisted so repeat invocations are
// recognised as the same voter.
package client
