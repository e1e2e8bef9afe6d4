package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"tweetgram/application"
	"tweetgram/models/constants"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Telegram bot and the fetch loop",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := application.New()
		if err != nil {
			log.Error().Err(err).Msgf("Shutting down after failing to instantiate application")
			return err
		}

		app.Run()

		sc := make(chan os.Signal, 1)
		signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
		log.Info().Msgf("%s v%s is now running. Press CTRL-C to exit.", constants.ExternalName, constants.Version)
		<-sc

		log.Info().Msgf("Gracefully shutting down %s...", constants.ExternalName)
		app.Shutdown()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
