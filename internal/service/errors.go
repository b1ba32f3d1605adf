package service

import "errors"

// Generation failures fall into three buckets with different retry
// semantics: bad input (fix the request), provider trouble (retry the whole
// generation) and unparseable provider output (also retryable, but reported
// separately because it usually means a prompt or model regression).
var (
	// ErrNoIngredients means the scan's ingredient pool is empty. The AI
	// provider is never called in this case.
	ErrNoIngredients = errors.New("scan has no ingredients")

	// ErrAIUnavailable means the AI provider could not be reached, timed
	// out, or answered with a non-success status.
	ErrAIUnavailable = errors.New("ai provider unavailable")

	// ErrBadAIResponse means the provider answered but the body was not the
	// JSON we asked for. Fatal for the whole batch; no partial recipes.
	ErrBadAIResponse = errors.New("invalid ai provider response")
)
