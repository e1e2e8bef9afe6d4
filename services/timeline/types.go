package timeline

import (
	"context"
	"sync"
	"time"

	"tweetgram/models/posts"
	"tweetgram/pkg/observer"
	"tweetgram/repositories/account"
	"tweetgram/repositories/subscriber"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// Fetcher reads an account's timeline.
type Fetcher interface {
	FetchRecentPosts(ctx context.Context, handle string, sinceID int64, includeReplies bool) ([]posts.RawPost, error)
}

type Service interface {
	observer.Notifier
	Start(chatID int64) (bool, error)
	Stop(chatID int64) (bool, error)
	IsRunning(chatID int64) bool
	Resume() error
	RunCycle(ctx context.Context, chatID int64) error
}

type Impl struct {
	scheduler      gocron.Scheduler
	interval       time.Duration
	fetcher        Fetcher
	subscriberRepo subscriber.Repository
	accountRepo    account.Repository
	observers      map[observer.Observer]struct{}

	mu   sync.Mutex
	jobs map[int64]uuid.UUID
}
