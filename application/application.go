package application

import (
	"context"

	"tweetgram/models/constants"
	accountRepo "tweetgram/repositories/account"
	subscriberRepo "tweetgram/repositories/subscriber"
	"tweetgram/services/dispatch"
	"tweetgram/services/downloader"
	"tweetgram/services/health"
	"tweetgram/services/messenger"
	"tweetgram/services/normalizer"
	"tweetgram/services/relay"
	"tweetgram/services/telegram"
	"tweetgram/services/timeline"
	"tweetgram/services/twitter"
	databases "tweetgram/utils/databases"
	"tweetgram/utils/texts"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New() (*Impl, error) {
	db := databases.New()
	if errDB := db.Run(); errDB != nil {
		return nil, errDB
	}

	if errMigration := db.Migrate(); errMigration != nil {
		return nil, errMigration
	}

	scheduler, errScheduler := gocron.NewScheduler()
	if errScheduler != nil {
		return nil, errScheduler
	}

	token := viper.GetString(constants.TelegramBotToken)
	if token == "" {
		return nil, telegram.ErrTokenIsMissing
	}

	bot, errBot := gotgbot.NewBot(token, nil)
	if errBot != nil {
		log.Error().Err(errBot).Msg("Cannot reach Telegram")
		return nil, telegram.ErrBotNotInitialized
	}

	// Repositories
	subscribers := subscriberRepo.New(db)
	accounts := accountRepo.New(db)

	twitterService := twitter.New()
	downloaderService, errDownloader := downloader.New(twitterService)
	if errDownloader != nil {
		return nil, errDownloader
	}

	messengerService := messenger.New(bot, viper.GetDuration(constants.TelegramUploadTimeout))
	dispatchService := dispatch.New(messengerService, downloaderService)
	normalizerService := normalizer.New(twitterService)
	relayService := relay.New(twitterService, normalizerService, dispatchService)

	timelineService := timeline.New(scheduler, twitterService, subscribers, accounts)
	timelineService.RegisterObserver(relayService)

	telegramService, errTg := telegram.New(bot, timelineService, relayService,
		twitterService, messengerService, subscribers, accounts)
	if errTg != nil {
		return nil, errTg
	}

	healthService, errHealth := health.New(scheduler, db.IsConnected)
	if errHealth != nil {
		return nil, errHealth
	}

	return &Impl{
		scheduler:       scheduler,
		healthService:   healthService,
		relayService:    relayService,
		timelineService: timelineService,
		telegramService: telegramService,
		db:              db,
	}, nil
}

func (app *Impl) Run() {
	app.scheduler.Start()

	if err := app.timelineService.Resume(); err != nil {
		log.Error().Err(err).Msg("Cannot resume subscribers, continuing...")
	}

	go func() {
		if err := app.telegramService.ListenAndDispatch(); err != nil {
			log.Error().Err(err).Msg("Telegram bot stopped")
		}
	}()

	for _, job := range app.scheduler.Jobs() {
		scheduledTime, err := job.NextRun()
		if err == nil {
			log.Info().Msgf("%v scheduled at %v", job.Name(), scheduledTime)
		}
	}
}

// Publish relays a single post, given by its link, to a chat.
func (app *Impl) Publish(ctx context.Context, chatID int64, link string) error {
	id, err := texts.ParsePostID(link)
	if err != nil {
		return err
	}

	return app.relayService.PublishByID(ctx, chatID, id)
}

func (app *Impl) Shutdown() {
	if err := app.scheduler.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Cannot shutdown scheduler, continuing...")
	}
	if err := app.telegramService.Stop(); err != nil {
		log.Debug().Err(err).Msg("Telegram bot was not listening")
	}
	app.db.Shutdown()
	log.Info().Msgf("Application is no longer running")
}
