package normalizer

import (
	"context"

	"tweetgram/models/posts"
)

// Fetcher is the direct post lookup of the social client.
type Fetcher interface {
	FetchPostByID(ctx context.Context, id int64) (posts.RawPost, error)
}

type Service interface {
	Normalize(ctx context.Context, raw posts.RawPost) (posts.Post, error)
}

type Impl struct {
	fetcher Fetcher
}
