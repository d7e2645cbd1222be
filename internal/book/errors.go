package book

import "errors"

// Sentinel errors for book loading.
var (
	ErrSummaryNotFound = errors.New("SUMMARY.md not found")
	ErrInvalidSummary  = errors.New("invalid SUMMARY.md")
	ErrChapterRead     = errors.New("failed to read chapter")
	ErrRenderContext   = errors.New("invalid render context")
)
