package twitter

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"tweetgram/models/posts"
)

// classifyError maps scraper failures onto the post error taxonomy. Anything not
// recognised, authentication problems included, is returned as is.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", posts.ErrTransient, err)
	}

	message := strings.ToLower(err.Error())
	switch {
	case strings.Contains(message, "429") || strings.Contains(message, "rate limit"):
		return fmt.Errorf("%w: %w", posts.ErrRateLimited, err)
	case strings.Contains(message, "not found") || strings.Contains(message, "404") ||
		strings.Contains(message, "no status found") || strings.Contains(message, "suspended") ||
		strings.Contains(message, "protected"):
		return fmt.Errorf("%w: %w", posts.ErrNotFound, err)
	case strings.Contains(message, "500") || strings.Contains(message, "502") ||
		strings.Contains(message, "503") || strings.Contains(message, "504") ||
		strings.Contains(message, "timeout") || strings.Contains(message, "connection reset") ||
		strings.Contains(message, "eof"):
		return fmt.Errorf("%w: %w", posts.ErrTransient, err)
	default:
		return err
	}
}
