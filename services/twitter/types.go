package twitter

import (
	"context"
	"time"

	"tweetgram/models/posts"

	"github.com/patrickmn/go-cache"
	twitterscraper "github.com/n0madic/twitter-scraper"
)

const (
	pageSize       = 20
	mostRecentScan = 5
)

// tweetSource is the part of the scraper the service reads from.
type tweetSource interface {
	FetchTweets(user string, maxTweetsNbr int, cursor string) ([]*twitterscraper.Tweet, string, error)
	GetTweet(id string) (*twitterscraper.Tweet, error)
}

type Service interface {
	FetchPostByID(ctx context.Context, id int64) (posts.RawPost, error)
	FetchRecentPosts(ctx context.Context, handle string, sinceID int64, includeReplies bool) ([]posts.RawPost, error)
	FetchMostRecentPostID(ctx context.Context, handle string) (int64, error)
	LocateVideo(ctx context.Context, id int64) (string, error)
}

type Impl struct {
	tweetCount int
	cacheTTL   time.Duration
	scraper    tweetSource
	cache      *cache.Cache
}
