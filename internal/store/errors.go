package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new
	// account fails because a user with the same email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrPollNotFound is returned when a query or update targets a poll ID
	// that does not exist in the database.
	ErrPollNotFound = errors.New("poll was not found")

	// ErrOptionNotFound is returned when an operation targets a poll option
	// that does not exist or belongs to a different poll.
	ErrOptionNotFound = errors.New("poll option was not found")

	// ErrVoteNotFound is returned when no ballot exists for the given poll
	// and voter token hash.
	ErrVoteNotFound = errors.New("vote was not found")

	// ErrAlreadyVoted is returned when an INSERT into the votes table hits
	// the UNIQUE (poll_id, voter_token_hash) constraint, meaning this voter
	// already holds a ballot on the poll.
	ErrAlreadyVoted = errors.New("vote already recorded for this voter")

	// ErrTooFewOptions is returned when deleting an option would leave the
	// poll with fewer than the minimum number of options. The check runs
	// inside the delete transaction, so concurrent deletes cannot race the
	// floor away.
	ErrTooFewOptions = errors.New("poll must keep at least two options")

	// ErrPollNotSaved is returned when an INSERT completes without error but
	// the number of affected rows is zero, indicating that nothing was
	// actually persisted.
	ErrPollNotSaved = errors.New("poll was not saved")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
