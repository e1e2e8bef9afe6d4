package application

import (
	"context"

	"tweetgram/services/health"
	"tweetgram/services/relay"
	"tweetgram/services/telegram"
	"tweetgram/services/timeline"
	databases "tweetgram/utils/databases"

	"github.com/go-co-op/gocron/v2"
)

type Application interface {
	Run()
	Publish(ctx context.Context, chatID int64, link string) error
	Shutdown()
}

type Impl struct {
	scheduler       gocron.Scheduler
	healthService   health.Service
	relayService    relay.Service
	timelineService timeline.Service
	telegramService telegram.Service
	db              databases.SqlConnection
}
