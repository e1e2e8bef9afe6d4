package timeline

import (
	"context"
	"fmt"
	"sort"

	"tweetgram/models/constants"
	"tweetgram/models/posts"
	"tweetgram/pkg/observer"
	"tweetgram/repositories/account"
	"tweetgram/repositories/subscriber"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New(scheduler gocron.Scheduler,
	fetcher Fetcher,
	subscriberRepo subscriber.Repository,
	accountRepo account.Repository) *Impl {
	return &Impl{
		scheduler:      scheduler,
		interval:       viper.GetDuration(constants.FetchInterval),
		fetcher:        fetcher,
		subscriberRepo: subscriberRepo,
		accountRepo:    accountRepo,
		observers:      map[observer.Observer]struct{}{},
		jobs:           map[int64]uuid.UUID{},
	}
}

func (service *Impl) RegisterObserver(o observer.Observer) {
	service.observers[o] = struct{}{}
}

// Start schedules the periodic fetch of chatID, first cycle right away. It reports false
// when the fetch was already running.
func (service *Impl) Start(chatID int64) (bool, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	if _, running := service.jobs[chatID]; running {
		return false, nil
	}

	job, err := service.scheduler.NewJob(
		gocron.DurationJob(service.interval),
		gocron.NewTask(func() { service.runScheduledCycle(chatID) }),
		gocron.WithName(fmt.Sprintf("Fetch tweets for %d", chatID)),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return false, err
	}
	service.jobs[chatID] = job.ID()

	if errActive := service.subscriberRepo.SetActive(chatID, true); errActive != nil {
		log.Error().Err(errActive).Int64(constants.LogChatID, chatID).Msg("Cannot mark subscriber active")
	}

	log.Info().Int64(constants.LogChatID, chatID).Dur("interval", service.interval).Msg("Fetching started")
	return true, nil
}

// Stop prevents any further cycle for chatID. A cycle in progress completes.
func (service *Impl) Stop(chatID int64) (bool, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	jobID, running := service.jobs[chatID]
	if !running {
		return false, nil
	}

	if err := service.scheduler.RemoveJob(jobID); err != nil {
		return false, err
	}
	delete(service.jobs, chatID)

	if errActive := service.subscriberRepo.SetActive(chatID, false); errActive != nil {
		log.Error().Err(errActive).Int64(constants.LogChatID, chatID).Msg("Cannot mark subscriber inactive")
	}

	log.Info().Int64(constants.LogChatID, chatID).Msg("Fetching stopped")
	return true, nil
}

func (service *Impl) IsRunning(chatID int64) bool {
	service.mu.Lock()
	defer service.mu.Unlock()

	_, running := service.jobs[chatID]
	return running
}

// Resume restarts the fetch of every subscriber that was running before a restart.
func (service *Impl) Resume() error {
	subscribers, err := service.subscriberRepo.FetchActive()
	if err != nil {
		return err
	}

	for _, sub := range subscribers {
		if _, errStart := service.Start(sub.ChatID); errStart != nil {
			log.Error().Err(errStart).Int64(constants.LogChatID, sub.ChatID).Msg("Cannot resume fetching, ignored")
		}
	}

	return nil
}

func (service *Impl) runScheduledCycle(chatID int64) {
	if err := service.RunCycle(context.Background(), chatID); err != nil {
		log.Error().Err(err).Int64(constants.LogChatID, chatID).Msg("Fetch cycle aborted")
	}
}

// RunCycle polls every account followed by chatID, raises their watermarks and notifies
// the new tweets of all accounts in ascending id order.
func (service *Impl) RunCycle(ctx context.Context, chatID int64) error {
	sub, err := service.subscriberRepo.Get(chatID)
	if err != nil {
		return fmt.Errorf("cannot read subscriber: %w", err)
	}

	accounts, err := service.accountRepo.FetchAll(chatID)
	if err != nil {
		return fmt.Errorf("cannot read followed accounts: %w", err)
	}

	newPosts := map[int64]posts.RawPost{}
	watermarks := map[string]int64{}
	for _, followed := range accounts {
		recent, errFetch := service.fetcher.FetchRecentPosts(ctx, followed.Handle, followed.WatermarkID, sub.IncludeReplies)
		if errFetch != nil {
			if posts.IsSkippable(errFetch) {
				log.Warn().Err(errFetch).
					Int64(constants.LogChatID, chatID).
					Str(constants.LogTwitterName, followed.Handle).
					Msg("Cannot fetch tweets of account, ignored")
				continue
			}
			return fmt.Errorf("cannot fetch tweets of @%s: %w", followed.Handle, errFetch)
		}

		mostRecent := followed.WatermarkID
		for _, post := range recent {
			if post.ID <= followed.WatermarkID {
				continue
			}
			newPosts[post.ID] = post
			if post.ID > mostRecent {
				mostRecent = post.ID
			}
		}
		if mostRecent > followed.WatermarkID {
			watermarks[followed.Handle] = mostRecent
		}
	}

	for handle, watermark := range watermarks {
		if errSave := service.accountRepo.RaiseWatermark(chatID, handle, watermark); errSave != nil {
			log.Error().Err(errSave).
				Int64(constants.LogChatID, chatID).
				Str(constants.LogTwitterName, handle).
				Int64(constants.LogWatermark, watermark).
				Msg("Cannot save watermark, tweets might be published again next time")
		}
	}

	ids := make([]int64, 0, len(newPosts))
	for id := range newPosts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		for o := range service.observers {
			o.OnNotify(observer.NewPostEventFor(chatID, newPosts[id]))
		}
	}

	log.Info().
		Int64(constants.LogChatID, chatID).
		Int(constants.LogTweetNumber, len(ids)).
		Msg("Fetch cycle done")

	return nil
}
