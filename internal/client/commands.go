// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Pollivu Authors

package client

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/atotto/clipboard"

	"github.com/pollivu/pollivu/internal/store"
	"github.com/pollivu/pollivu/models"
)

const defaultWatchInterval = 2 * time.Second

// stringSliceFlag collects repeated -option flags in order.
type stringSliceFlag []string

func (s *stringSliceFlag) String() string { return strings.Join(*s, ",") }

func (s *stringSliceFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func (a *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// createPoll handles `pollctl create`. On success the creator token is saved
// locally; the server only ever shows it once.
func (a *App) createPoll(ctx context.Context, args []string) error {
	fs := a.newFlagSet("create")
	question := fs.String("question", "", "poll question")
	expires := fs.String("expires", "24h", `poll lifetime: 1h, 6h, 24h, 7d, 30d or never`)
	allowChange := fs.Bool("allow-change", false, "let voters change their ballot")
	showResults := fs.Bool("show-results", false, "show results before voting")
	public := fs.Bool("public", false, "list the poll publicly")
	encrypt := fs.Bool("encrypt", false, "store question and options encrypted at rest")
	copyURL := fs.Bool("copy", false, "copy the share URL to the clipboard")

	var options stringSliceFlag
	fs.Var(&options, "option", "poll option (repeat for each choice)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	created, err := a.api.CreatePoll(ctx, models.CreatePollInput{
		Question:                *question,
		Options:                 options,
		Expiration:              *expires,
		AllowVoteChange:         *allowChange,
		ShowResultsBeforeVoting: *showResults,
		IsPublic:                *public,
		Encrypt:                 *encrypt,
	})
	if err != nil {
		return fmt.Errorf("create poll: %w", err)
	}

	cred := models.PollCredential{
		PollID:       created.Poll.ID,
		Question:     created.Poll.Question,
		ShareURL:     created.ShareURL,
		CreatorToken: created.CreatorToken,
		CreatedAt:    time.Now().UTC(),
	}
	if err = a.creds.SaveCredential(ctx, cred); err != nil {
		// The token is already printed below, so the poll stays manageable
		// even when the local save fails.
		fmt.Fprintf(a.out, "warning: could not store creator token locally: %v\n", err)
	}

	fmt.Fprintf(a.out, "Poll created: %s\n", created.Poll.ID)
	fmt.Fprintf(a.out, "Share URL:    %s\n", created.ShareURL)
	fmt.Fprintf(a.out, "Creator token (stored locally): %s\n", created.CreatorToken)

	if *copyURL {
		if err = clipboard.WriteAll(created.ShareURL); err != nil {
			fmt.Fprintf(a.out, "warning: could not copy share URL: %v\n", err)
		} else {
			fmt.Fprintln(a.out, "Share URL copied to clipboard.")
		}
	}

	return nil
}

// vote handles `pollctl vote <poll-id> <option-id>`.
func (a *App) vote(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: pollctl vote <poll-id> <option-id>")
	}

	optionID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid option ID %q: %w", args[1], err)
	}

	outcome, err := a.api.Vote(ctx, args[0], optionID)
	if err != nil {
		return fmt.Errorf("vote: %w", err)
	}

	fmt.Fprintln(a.out, outcome.Message)
	a.printResults(outcome.Results, outcome.TotalVotes)

	return nil
}

// results handles `pollctl results <poll-id>`.
func (a *App) results(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: pollctl results <poll-id>")
	}

	results, err := a.api.Results(ctx, args[0])
	if err != nil {
		return fmt.Errorf("results: %w", err)
	}

	var total int64
	for _, r := range results {
		total += r.VoteCount
	}
	a.printResults(results, total)

	return nil
}

// status handles `pollctl status <poll-id>`.
func (a *App) status(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: pollctl status <poll-id>")
	}

	status, err := a.api.Status(ctx, args[0])
	if err != nil {
		return fmt.Errorf("status: %w", err)
	}

	state := "active"
	switch {
	case status.IsExpired:
		state = "expired"
	case status.IsClosed:
		state = "closed"
	}

	fmt.Fprintf(a.out, "Poll %s: %s, %d vote(s)\n", args[0], state, status.TotalVotes)

	return nil
}

// watch handles `pollctl watch <poll-id>`: it reprints live results on an
// interval until the poll goes inactive or the context is cancelled.
func (a *App) watch(ctx context.Context, args []string) error {
	fs := a.newFlagSet("watch")
	interval := fs.Duration("interval", defaultWatchInterval, "refresh interval")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: pollctl watch <poll-id> [-interval <duration>]")
	}
	pollID := fs.Arg(0)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		stats, err := a.api.LiveStats(ctx, pollID)
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}

		fmt.Fprintf(a.out, "--- %s ---\n", time.Now().Format(time.TimeOnly))
		a.printResults(stats.Results, stats.TotalVotes)

		if !stats.IsActive {
			fmt.Fprintln(a.out, "Poll is no longer active.")
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// closePoll handles `pollctl close <poll-id>`.
func (a *App) closePoll(ctx context.Context, args []string) error {
	pollID, creatorToken, err := a.creatorArgs(ctx, "close", args)
	if err != nil {
		return err
	}

	if err = a.api.Close(ctx, pollID, creatorToken); err != nil {
		return fmt.Errorf("close poll: %w", err)
	}

	fmt.Fprintf(a.out, "Poll %s closed.\n", pollID)
	return nil
}

// reopenPoll handles `pollctl reopen <poll-id>`.
func (a *App) reopenPoll(ctx context.Context, args []string) error {
	pollID, creatorToken, err := a.creatorArgs(ctx, "reopen", args)
	if err != nil {
		return err
	}

	if err = a.api.Reopen(ctx, pollID, creatorToken); err != nil {
		return fmt.Errorf("reopen poll: %w", err)
	}

	fmt.Fprintf(a.out, "Poll %s reopened.\n", pollID)
	return nil
}

// deletePoll handles `pollctl delete <poll-id>`. The local credential is
// dropped once the server confirms the delete.
func (a *App) deletePoll(ctx context.Context, args []string) error {
	pollID, creatorToken, err := a.creatorArgs(ctx, "delete", args)
	if err != nil {
		return err
	}

	if err = a.api.Delete(ctx, pollID, creatorToken); err != nil {
		return fmt.Errorf("delete poll: %w", err)
	}

	if err = a.creds.DeleteCredential(ctx, pollID); err != nil {
		fmt.Fprintf(a.out, "warning: could not remove stored credential: %v\n", err)
	}

	fmt.Fprintf(a.out, "Poll %s deleted.\n", pollID)
	return nil
}

// list handles `pollctl list`: the polls whose creator tokens are stored
// locally, newest first.
func (a *App) list(ctx context.Context) error {
	creds, err := a.creds.ListCredentials(ctx)
	if err != nil {
		return fmt.Errorf("list credentials: %w", err)
	}

	if len(creds) == 0 {
		fmt.Fprintln(a.out, "No polls created from this machine yet.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POLL ID\tCREATED\tQUESTION\tSHARE URL")
	for _, c := range creds {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			c.PollID,
			c.CreatedAt.Format(time.DateOnly),
			c.Question,
			c.ShareURL,
		)
	}

	return w.Flush()
}

// version handles `pollctl version`: the client build info plus, when the
// server is reachable, its build info too.
func (a *App) version(ctx context.Context) error {
	fmt.Fprintf(a.out, "pollctl %s (built %s, commit %s)\n",
		a.buildInfo.BuildVersion(),
		a.buildInfo.BuildDate(),
		a.buildInfo.BuildCommit(),
	)

	server, err := a.api.ServerVersion(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "server: unreachable (%v)\n", err)
		return nil
	}

	fmt.Fprintf(a.out, "server  %s (built %s, commit %s)\n",
		server.Version, server.BuildDate, server.BuildCommit)

	return nil
}

// creatorArgs parses the shared argument shape of the creator commands:
// the poll ID plus an optional -token override of the stored credential.
func (a *App) creatorArgs(ctx context.Context, name string, args []string) (pollID, creatorToken string, err error) {
	fs := a.newFlagSet(name)
	tokenFlag := fs.String("token", "", "creator token (defaults to the locally stored one)")

	if err = fs.Parse(args); err != nil {
		return "", "", err
	}
	if fs.NArg() != 1 {
		return "", "", fmt.Errorf("usage: pollctl %s <poll-id> [-token <creator-token>]", name)
	}
	pollID = fs.Arg(0)

	if *tokenFlag != "" {
		return pollID, *tokenFlag, nil
	}

	cred, err := a.creds.GetCredential(ctx, pollID)
	if errors.Is(err, store.ErrCredentialNotFound) {
		return "", "", fmt.Errorf("no creator token stored for poll %s; pass one with -token", pollID)
	}
	if err != nil {
		return "", "", fmt.Errorf("read stored credential: %w", err)
	}

	return pollID, cred.CreatorToken, nil
}

func (a *App) printResults(results []models.OptionResult, total int64) {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, r := range results {
		fmt.Fprintf(w, "  [%d]\t%s\t%d\t%5.1f%%\n", r.ID, r.OptionText, r.VoteCount, r.Percentage)
	}
	w.Flush() //nolint:errcheck

	fmt.Fprintf(a.out, "Total votes: %d\n", total)
}
