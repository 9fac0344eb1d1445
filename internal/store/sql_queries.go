package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/pollivu/pollivu/models"
)

// pollColumns is the canonical column order for polls. Every SELECT and the
// row scan in scanPoll must follow it.
var pollColumns = []string{
	"id",
	"question",
	"question_encrypted",
	"created_at",
	"expires_at",
	"allow_vote_change",
	"show_results_before_voting",
	"is_closed",
	"is_public",
	"is_encrypted",
	"share_results_chart",
	"share_results_list",
	"share_insights",
	"creator_token_hash",
	"total_votes",
	"owner_id",
}

const (
	createPoll = `INSERT INTO polls (
			id,
			question,
			question_encrypted,
			created_at,
			expires_at,
			allow_vote_change,
			show_results_before_voting,
			is_closed,
			is_public,
			is_encrypted,
			share_results_chart,
			share_results_list,
			share_insights,
			creator_token_hash,
			total_votes,
			owner_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);`

	createPollOption = `INSERT INTO poll_options (poll_id, option_text, option_encrypted, vote_count, display_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;`

	getPollByID = `SELECT id, question, question_encrypted, created_at, expires_at, allow_vote_change,
			show_results_before_voting, is_closed, is_public, is_encrypted,
			share_results_chart, share_results_list, share_insights,
			creator_token_hash, total_votes, owner_id
		FROM polls
		WHERE id = $1;`

	getPollOptions = `SELECT id, poll_id, option_text, option_encrypted, vote_count, display_order
		FROM poll_options
		WHERE poll_id = $1
		ORDER BY display_order, id;`

	updatePollSettings = `UPDATE polls
		SET question = $2,
			question_encrypted = $3,
			allow_vote_change = $4,
			show_results_before_voting = $5,
			is_public = $6,
			share_results_chart = $7,
			share_results_list = $8,
			share_insights = $9,
			expires_at = $10
		WHERE id = $1;`

	setPollClosed = `UPDATE polls
		SET is_closed = $2, expires_at = $3
		WHERE id = $1;`

	setPollPublic = `UPDATE polls
		SET is_public = $2
		WHERE id = $1;`

	deletePollByID = `DELETE FROM polls
		WHERE id = $1;`

	getOptionVoteCount = `SELECT vote_count
		FROM poll_options
		WHERE id = $2 AND poll_id = $1
		FOR UPDATE;`

	countPollOptions = `SELECT count(*)
		FROM poll_options
		WHERE poll_id = $1;`

	deleteOptionVotes = `DELETE FROM votes
		WHERE poll_id = $1 AND option_id = $2;`

	deletePollOption = `DELETE FROM poll_options
		WHERE id = $2 AND poll_id = $1;`

	deductPollTotal = `UPDATE polls
		SET total_votes = GREATEST(total_votes - $2, 0)
		WHERE id = $1;`

	deleteExpiredPolls = `DELETE FROM polls
		WHERE expires_at IS NOT NULL AND expires_at < $1;`

	countAllPolls = `SELECT count(*)
		FROM polls;`

	countActivePolls = `SELECT count(*)
		FROM polls
		WHERE is_closed = FALSE AND (expires_at IS NULL OR expires_at > $1);`

	insertVote = `INSERT INTO votes (poll_id, voter_token_hash, option_id, voted_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id;`

	getVoteByVoter = `SELECT id, poll_id, voter_token_hash, option_id, voted_at
		FROM votes
		WHERE poll_id = $1 AND voter_token_hash = $2;`

	reassignVote = `UPDATE votes
		SET option_id = $3, voted_at = $4
		WHERE poll_id = $1 AND voter_token_hash = $2;`

	incrementOptionCount = `UPDATE poll_options
		SET vote_count = vote_count + 1
		WHERE id = $2 AND poll_id = $1;`

	decrementOptionCount = `UPDATE poll_options
		SET vote_count = GREATEST(vote_count - 1, 0)
		WHERE id = $2 AND poll_id = $1;`

	incrementPollTotal = `UPDATE polls
		SET total_votes = total_votes + 1
		WHERE id = $1;`

	createUser = `INSERT INTO users (email, password_hash, display_name, created_at, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING user_id, email, password_hash, display_name, created_at, last_login, is_active;`

	findUserByEmail = `SELECT user_id, email, password_hash, display_name, created_at, last_login, is_active
		FROM users
		WHERE email = $1;`

	updateUserLastLogin = `UPDATE users
		SET last_login = $2
		WHERE user_id = $1;`
)

// psql builds parameterised queries with PostgreSQL-style $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListPollsQuery assembles the dynamic listing query from a filter.
// Conditions are only added for fields the caller actually set.
func buildListPollsQuery(filter models.PollFilter) (string, []any, error) {
	q := psql.Select(pollColumns...).
		From("polls").
		OrderBy("created_at DESC")

	if filter.OwnerID != nil {
		q = q.Where(sq.Eq{"owner_id": *filter.OwnerID})
	}

	if filter.PublicOnly {
		q = q.Where(sq.Eq{"is_public": true})
	}

	if filter.ActiveAt != nil {
		q = q.Where(sq.Eq{"is_closed": false})
		q = q.Where(sq.Or{
			sq.Eq{"expires_at": nil},
			sq.Gt{"expires_at": *filter.ActiveAt},
		})
	}

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	return q.ToSql()
}

// buildVoteTimelineQuery assembles the hourly ballot histogram query.
// Buckets are rendered as "YYYY-MM-DD HH:00" strings straight from the
// database so every consumer shares one format.
func buildVoteTimelineQuery(pollID string) (string, []any, error) {
	return psql.Select(
		"to_char(date_trunc('hour', voted_at), 'YYYY-MM-DD HH24:00') AS bucket",
		"count(*) AS ballots",
	).
		From("votes").
		Where(sq.Eq{"poll_id": pollID}).
		GroupBy("bucket").
		OrderBy("bucket").
		ToSql()
}
