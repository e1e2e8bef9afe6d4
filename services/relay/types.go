package relay

import (
	"context"

	"tweetgram/models/posts"
	"tweetgram/pkg/observer"
	"tweetgram/services/dispatch"
	"tweetgram/services/normalizer"
)

type Service interface {
	observer.Observer
	Publish(ctx context.Context, chatID int64, raw posts.RawPost) error
	PublishByID(ctx context.Context, chatID int64, id int64) error
}

type Impl struct {
	fetcher    normalizer.Fetcher
	normalizer normalizer.Service
	dispatcher dispatch.Service
}
