package relay

import (
	"context"
	"fmt"

	"tweetgram/models/constants"
	"tweetgram/models/posts"
	"tweetgram/pkg/observer"
	"tweetgram/services/compositor"
	"tweetgram/services/dispatch"
	"tweetgram/services/media"
	"tweetgram/services/normalizer"

	"github.com/rs/zerolog/log"
)

func New(fetcher normalizer.Fetcher, normalizerService normalizer.Service, dispatcher dispatch.Service) *Impl {
	return &Impl{
		fetcher:    fetcher,
		normalizer: normalizerService,
		dispatcher: dispatcher,
	}
}

// Publish runs raw through the whole pipeline and sends the result to chatID.
func (service *Impl) Publish(ctx context.Context, chatID int64, raw posts.RawPost) error {
	post, err := service.normalizer.Normalize(ctx, raw)
	if err != nil {
		return err
	}

	plan := dispatch.Select(media.Resolve(post), compositor.Compose(post))
	log.Debug().
		Int64(constants.LogChatID, chatID).
		Str(constants.LogTweetURL, raw.Permalink()).
		Str(constants.LogShape, plan.Shape.String()).
		Msg("Dispatching tweet")

	return service.dispatcher.Dispatch(ctx, chatID, plan)
}

func (service *Impl) PublishByID(ctx context.Context, chatID int64, id int64) error {
	raw, err := service.fetcher.FetchPostByID(ctx, id)
	if err != nil {
		return fmt.Errorf("cannot fetch tweet %d: %w", id, err)
	}

	return service.Publish(ctx, chatID, raw)
}

// OnNotify publishes a tweet found by the fetch loop. Failures stay local to the tweet.
func (service *Impl) OnNotify(e observer.Event) {
	if e.E != observer.NewPostEvent {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Int64(constants.LogChatID, e.ChatID).
				Str(constants.LogTweetURL, e.Post.Permalink()).
				Msg("Panic while publishing tweet, skipped")
		}
	}()

	if err := service.Publish(context.Background(), e.ChatID, e.Post); err != nil {
		log.Error().Err(err).
			Int64(constants.LogChatID, e.ChatID).
			Str(constants.LogTweetURL, e.Post.Permalink()).
			Msg("Cannot publish tweet, skipped")
	}
}
