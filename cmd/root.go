package cmd

import (
	"tweetgram/models/constants"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd runs the bot when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     constants.ExternalName,
	Short:   "Relay Twitter timelines to Telegram chats",
	Version: constants.Version,
	RunE:    serveCmd.RunE,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig, initLog)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", constants.ConfigFileName, "config file")
}

func initLog() {
	zerolog.SetGlobalLevel(constants.LogLevelFallback)

	logLevel, err := zerolog.ParseLevel(viper.GetString(constants.LogLevel))
	if err != nil {
		log.Warn().Err(err).Msgf("Log level not set, continue with %s...", constants.LogLevelFallback)
	} else {
		zerolog.SetGlobalLevel(logLevel)
		log.Debug().Msgf("Logger level set to '%s'", logLevel)
	}
}

func initConfig() {
	viper.SetConfigFile(cfgFile)

	for configName, defaultValue := range constants.GetDefaultConfigValues() {
		viper.SetDefault(configName, defaultValue)
	}

	err := viper.ReadInConfig()
	if err != nil {
		log.Debug().Str(constants.LogFileName, cfgFile).Msgf("Failed to read config file, continue...")
	}

	viper.AutomaticEnv()
}
