package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrTeamNotFound          = errors.New("team not found")
	ErrLeagueNotFound        = errors.New("league not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrRemoteCommitFailed wraps every failed lineup submission. One of
	// ErrRemoteRejected, ErrOutcomeUnknown or ErrDependencyUnavailable is
	// joined to it to say how far the request got.
	ErrRemoteCommitFailed = errors.New("remote commit failed")
	ErrRemoteRejected     = errors.New("remote rejected request")
	ErrOutcomeUnknown     = errors.New("remote outcome unknown")
)
