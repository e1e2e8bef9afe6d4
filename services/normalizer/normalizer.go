package normalizer

import (
	"context"
	"fmt"

	"tweetgram/models/constants"
	"tweetgram/models/posts"

	"github.com/rs/zerolog/log"
)

func New(fetcher Fetcher) *Impl {
	return &Impl{fetcher: fetcher}
}

// Normalize classifies raw (retweet > quote > reply > plain) and resolves the posts it
// references. A replied post comes with its own quote; nothing is resolved deeper.
func (service *Impl) Normalize(ctx context.Context, raw posts.RawPost) (posts.Post, error) {
	post := flatten(raw)

	if raw.Retweeted != nil {
		retweeted := flatten(*raw.Retweeted)
		post.Kind = posts.KindRetweet
		post.Retweeted = &retweeted
		return post, nil
	}

	quoted, err := service.resolveQuote(ctx, raw)
	if err != nil {
		return posts.Post{}, err
	}
	post.Quoted = quoted

	if raw.InReplyToID != 0 {
		replied, errReply := service.resolveReply(ctx, raw.InReplyToID)
		if errReply != nil {
			return posts.Post{}, errReply
		}
		post.RepliedToID = raw.InReplyToID
		post.Replied = replied
	}

	post.Kind = classify(post)
	return post, nil
}

func (service *Impl) resolveReply(ctx context.Context, id int64) (*posts.Post, error) {
	log.Debug().Int64(constants.LogTweetID, id).Msg("Resolving replied tweet")
	raw, err := service.fetcher.FetchPostByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: replied tweet %d: %w", posts.ErrResolutionFailed, id, err)
	}

	replied := flatten(raw)
	if raw.Retweeted == nil {
		quoted, errQuote := service.resolveQuote(ctx, raw)
		if errQuote != nil {
			return nil, errQuote
		}
		replied.Quoted = quoted
	}
	replied.Kind = classify(replied)
	replied.RepliedToID = raw.InReplyToID

	return &replied, nil
}

func (service *Impl) resolveQuote(ctx context.Context, raw posts.RawPost) (*posts.Post, error) {
	switch {
	case raw.Quoted != nil:
		quoted := flatten(*raw.Quoted)
		return &quoted, nil
	case raw.QuotedID != 0:
		log.Debug().Int64(constants.LogTweetID, raw.QuotedID).Msg("Resolving quoted tweet")
		fetched, err := service.fetcher.FetchPostByID(ctx, raw.QuotedID)
		if err != nil {
			return nil, fmt.Errorf("%w: quoted tweet %d: %w", posts.ErrResolutionFailed, raw.QuotedID, err)
		}
		quoted := flatten(fetched)
		return &quoted, nil
	default:
		return nil, nil
	}
}

// flatten copies the post's own content, without any reference resolved.
func flatten(raw posts.RawPost) posts.Post {
	return posts.Post{
		Kind:     posts.KindPlain,
		ID:       raw.ID,
		Author:   raw.Author,
		Text:     raw.Text,
		Entities: raw.Entities,
		Media:    raw.Media,
	}
}

func classify(post posts.Post) posts.Kind {
	switch {
	case post.Retweeted != nil:
		return posts.KindRetweet
	case post.Quoted != nil && post.Replied != nil:
		return posts.KindReplyQuote
	case post.Quoted != nil:
		return posts.KindQuote
	case post.Replied != nil:
		return posts.KindReply
	default:
		return posts.KindPlain
	}
}
