package twitter

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"tweetgram/models/constants"
	"tweetgram/models/posts"

	"github.com/patrickmn/go-cache"
	twitterscraper "github.com/n0madic/twitter-scraper"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New() *Impl {
	scraper := twitterscraper.New()
	authToken := viper.GetString(constants.TwitterAuthToken)
	csrfToken := viper.GetString(constants.TwitterCSRFToken)
	if authToken != "" && csrfToken != "" {
		scraper.SetCookies(authCookies(authToken, csrfToken))
	}
	if !scraper.IsLoggedIn() {
		log.Warn().Msg("Twitter scraper is not logged in, timelines may be unavailable")
	}

	cacheTTL := viper.GetDuration(constants.TwitterCache)
	return &Impl{
		tweetCount: viper.GetInt(constants.TwitterTweetCount),
		cacheTTL:   cacheTTL,
		scraper:    scraper,
		cache:      cache.New(cacheTTL, 2*cacheTTL),
	}
}

// authCookies builds the session cookies of a logged in browser: auth_token holds the
// session and ct0 the CSRF token echoed in request headers.
func authCookies(authToken, csrfToken string) []*http.Cookie {
	return []*http.Cookie{
		{Name: "auth_token", Value: authToken, Domain: ".twitter.com", Path: "/", Secure: true, HttpOnly: true},
		{Name: "ct0", Value: csrfToken, Domain: ".twitter.com", Path: "/", Secure: true},
	}
}

func (service *Impl) FetchPostByID(ctx context.Context, id int64) (posts.RawPost, error) {
	key := strconv.FormatInt(id, 10)
	if cached, found := service.cache.Get(key); found {
		return cached.(posts.RawPost), nil
	}
	if err := ctx.Err(); err != nil {
		return posts.RawPost{}, classifyError(err)
	}

	tweet, err := service.scraper.GetTweet(key)
	if err != nil {
		return posts.RawPost{}, classifyError(err)
	}
	if tweet == nil {
		return posts.RawPost{}, fmt.Errorf("%w: tweet %d", posts.ErrNotFound, id)
	}

	raw, err := MapTweetToRawPost(tweet)
	if err != nil {
		return posts.RawPost{}, err
	}

	service.cache.Set(key, raw, service.cacheTTL)
	return raw, nil
}

// FetchRecentPosts returns the posts of handle newer than sinceID, newest first, reading
// at most the configured tweet count.
func (service *Impl) FetchRecentPosts(ctx context.Context, handle string, sinceID int64, includeReplies bool) ([]posts.RawPost, error) {
	var result []posts.RawPost
	cursor := ""
	read := 0

	for read < service.tweetCount {
		if err := ctx.Err(); err != nil {
			return nil, classifyError(err)
		}

		tweets, next, err := service.scraper.FetchTweets(handle, min(pageSize, service.tweetCount-read), cursor)
		if err != nil {
			return nil, classifyError(err)
		}
		read += len(tweets)

		reachedWatermark := false
		for _, tweet := range tweets {
			raw, errMap := MapTweetToRawPost(tweet)
			if errMap != nil {
				log.Warn().Err(errMap).Str(constants.LogTwitterName, handle).Msg("Cannot read tweet, ignored")
				continue
			}
			if raw.ID <= sinceID {
				if !raw.Pinned {
					reachedWatermark = true
				}
				continue
			}
			if !includeReplies && raw.InReplyToID != 0 {
				continue
			}

			result = append(result, service.completeRetweet(ctx, tweet, raw))
		}

		if reachedWatermark || next == "" || next == cursor || len(tweets) == 0 {
			break
		}
		cursor = next
	}

	log.Debug().
		Str(constants.LogTwitterName, handle).
		Int64(constants.LogWatermark, sinceID).
		Int(constants.LogTweetNumber, len(result)).
		Msg("Timeline read")

	return result, nil
}

func (service *Impl) FetchMostRecentPostID(ctx context.Context, handle string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, classifyError(err)
	}

	tweets, _, err := service.scraper.FetchTweets(handle, mostRecentScan, "")
	if err != nil {
		return 0, classifyError(err)
	}

	var mostRecent int64
	for _, tweet := range tweets {
		id, errID := strconv.ParseInt(tweet.ID, 10, 64)
		if errID == nil && id > mostRecent {
			mostRecent = id
		}
	}

	return mostRecent, nil
}

// LocateVideo returns the direct stream url of the first video or gif of a tweet.
func (service *Impl) LocateVideo(ctx context.Context, id int64) (string, error) {
	raw, err := service.FetchPostByID(ctx, id)
	if err != nil {
		return "", err
	}

	for _, item := range raw.Media {
		if (item.Kind == posts.MediaVideo || item.Kind == posts.MediaAnimatedGif) && item.URL != "" {
			return item.URL, nil
		}
	}

	return "", fmt.Errorf("%w: no video in tweet %d", posts.ErrNotFound, id)
}

// completeRetweet fetches the original of a retweet the timeline only referenced by id.
func (service *Impl) completeRetweet(ctx context.Context, tweet *twitterscraper.Tweet, raw posts.RawPost) posts.RawPost {
	if raw.Retweeted != nil || !tweet.IsRetweet || tweet.RetweetedStatusID == "" {
		return raw
	}

	id, err := strconv.ParseInt(tweet.RetweetedStatusID, 10, 64)
	if err != nil {
		return raw
	}

	original, err := service.FetchPostByID(ctx, id)
	if err != nil {
		log.Warn().Err(err).Int64(constants.LogTweetID, raw.ID).Msg("Cannot fetch retweeted tweet, publishing the retweet as is")
		return raw
	}

	raw.Retweeted = &original
	return raw
}
