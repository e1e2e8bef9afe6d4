package posts

import "errors"

var (
	ErrNotFound         = errors.New("post not found")
	ErrRateLimited      = errors.New("rate limited")
	ErrTransient        = errors.New("transient failure")
	ErrMalformed        = errors.New("malformed input")
	ErrDispatchFailed   = errors.New("dispatch failed")
	ErrResolutionFailed = errors.New("referenced post could not be resolved")
)

// IsSkippable reports whether err belongs to the classified failures that only
// cost the current item.
func IsSkippable(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrTransient) ||
		errors.Is(err, ErrMalformed)
}
