package health

import (
	"tweetgram/models/constants"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New(scheduler gocron.Scheduler, isDatabaseConnected func() bool) (*Impl, error) {
	service := Impl{
		isDatabaseConnected: isDatabaseConnected,
	}

	_, errJob := scheduler.NewJob(
		gocron.CronJob(viper.GetString(constants.HealthCronTab), false),
		gocron.NewTask(func() { service.echo() }),
		gocron.WithName("Check app running"),
	)
	if errJob != nil {
		return nil, errJob
	}

	return &service, nil
}

func (service *Impl) IsHealthy() bool {
	return service.isDatabaseConnected()
}

func (service *Impl) echo() {
	if !service.IsHealthy() {
		log.Error().Msgf("Application is running but database is unreachable")
		return
	}
	log.Info().Msgf("Application is running")
}
