package session

import "errors"

var (
	// Load / lifecycle errors
	ErrNotLoaded    = errors.New("quiz state not loaded")
	ErrRunnerClosed = errors.New("quiz runner is closed")

	// Submit precondition errors
	ErrQuizNotActive      = errors.New("quiz is not in progress")
	ErrCannotAnswer       = errors.New("answering is not allowed right now")
	ErrNoActiveQuestion   = errors.New("no active question")
	ErrMissingAttempt     = errors.New("attempt id is missing")
	ErrIncompleteResponse = errors.New("response is incomplete")
	ErrSubmitInFlight     = errors.New("a submission is already in flight")

	// Continue / restart errors
	ErrNoFeedback         = errors.New("no feedback is showing")
	ErrNotRestartable     = errors.New("quiz cannot be restarted in current state")
	ErrWrongOnlyNotFailed = errors.New("wrong-only restart requires a failed quiz")
	ErrHeartsExhausted    = errors.New("no hearts remaining")
)
