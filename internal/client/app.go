// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Pollivu Authors

package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pollivu/pollivu/internal/adapter"
	"github.com/pollivu/pollivu/internal/logger"
	"github.com/pollivu/pollivu/internal/store"
	"github.com/pollivu/pollivu/internal/token"
	"github.com/pollivu/pollivu/models"
)

// ErrUnknownCommand is returned when the first argument does not name a
// pollctl command.
var ErrUnknownCommand = errors.New("unknown command")

// App is the pollctl application: a command dispatcher over the server
// adapter and the local credential store.
type App struct {
	api       adapter.PollAPI
	creds     store.CredentialStore
	buildInfo models.AppBuildInfo

	out    io.Writer
	logger *logger.Logger
}

// NewApp wires a pollctl application. Output is written to out so tests can
// capture it.
func NewApp(api adapter.PollAPI, creds store.CredentialStore, buildInfo models.AppBuildInfo, out io.Writer, log *logger.Logger) *App {
	return &App{
		api:       api,
		creds:     creds,
		buildInfo: buildInfo,
		out:       out,
		logger:    log,
	}
}

// Run implements [Client]. It restores (or mints) the anonymous voter
// session, then dispatches args[0] as the command name.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printUsage()
		return fmt.Errorf("%w: no command given", ErrUnknownCommand)
	}

	if err := a.ensureSession(ctx); err != nil {
		return err
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "create":
		return a.createPoll(ctx, rest)
	case "vote":
		return a.vote(ctx, rest)
	case "results":
		return a.results(ctx, rest)
	case "status":
		return a.status(ctx, rest)
	case "watch":
		return a.watch(ctx, rest)
	case "close":
		return a.closePoll(ctx, rest)
	case "reopen":
		return a.reopenPoll(ctx, rest)
	case "delete":
		return a.deletePoll(ctx, rest)
	case "list":
		return a.list(ctx)
	case "version":
		return a.version(ctx)
	case "help", "-h", "--help":
		a.printUsage()
		return nil
	default:
		a.printUsage()
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
}

// ensureSession loads the persisted voter session, minting and saving a new
// one on first run, and hands it to the adapter. Votes are tied to this
// session; losing it means the server no longer recognises prior ballots.
func (a *App) ensureSession(ctx context.Context) error {
	id, err := a.creds.SessionID(ctx)
	if errors.Is(err, store.ErrLocalSessionNotFound) {
		id, err = token.NewSessionID()
		if err != nil {
			return fmt.Errorf("generate voter session: %w", err)
		}
		if err = a.creds.SetSessionID(ctx, id); err != nil {
			return fmt.Errorf("persist voter session: %w", err)
		}
		a.logger.Debug().Msg("minted new voter session")
	} else if err != nil {
		return fmt.Errorf("restore voter session: %w", err)
	}

	a.api.SetSessionID(id)
	return nil
}

func (a *App) printUsage() {
	fmt.Fprint(a.out, `pollctl - create and manage polls from the command line

Usage:
  pollctl create -question <text> -option <label> -option <label> [flags]
  pollctl vote <poll-id> <option-id>
  pollctl results <poll-id>
  pollctl status <poll-id>
  pollctl watch <poll-id> [-interval <duration>]
  pollctl close <poll-id> [-token <creator-token>]
  pollctl reopen <poll-id> [-token <creator-token>]
  pollctl delete <poll-id> [-token <creator-token>]
  pollctl list
  pollctl version

Creator tokens are stored locally when a poll is created; close, reopen and
delete use the stored token unless -token overrides it.
`)
}
