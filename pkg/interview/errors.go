package interview

import "errors"

var (
	// ErrSessionNotFound means no session exists for the (candidate, job) pair.
	ErrSessionNotFound = errors.New("session not found")

	// ErrUpstreamFailure covers collaborator timeouts, transport errors and
	// non-success statuses.
	ErrUpstreamFailure = errors.New("upstream failure")

	// ErrMalformedResponse means a collaborator answered successfully but the
	// payload failed to parse or did not match its schema.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrEmptyAnswer rejects a submission whose answer is the empty string,
	// the value that marks a slot as unanswered.
	ErrEmptyAnswer = errors.New("answer must not be empty")
)
