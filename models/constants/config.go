package constants

import (
	"time"

	"github.com/rs/zerolog"
)

const (
	ConfigFileName = ".env"

	// TELEGRAM BOT
	TelegramBotToken = "TELEGRAM_BOT_TOKEN"

	// Comma-separated Telegram usernames allowed to use the bot.
	TelegramAuthorizedUsers = "TELEGRAM_AUTHORIZED_USERS"

	// Request timeout used for media uploads. Duration type.
	TelegramUploadTimeout = "TELEGRAM_UPLOAD_TIMEOUT"

	//nolint:gosec // False positive.
	// Auth token used when logged in to Twitter.
	TwitterAuthToken = "TWITTER_AUTH_TOKEN"

	//nolint:gosec // False positive.
	// CSRF token used when logged in to Twitter.
	TwitterCSRFToken = "TWITTER_CSRF_TOKEN"

	// Max number of tweets read per account and per fetch.
	TwitterTweetCount = "TWEET_COUNT"

	// Fetched tweets cache. Duration type.
	TwitterCache = "TWITTER_CACHE"

	// SQLITE_URL URL.
	SqliteURL = "SQLITE_URL"

	// Zerolog values from [trace, debug, info, warn, error, fatal, panic].
	LogLevel = "LOG_LEVEL"

	// Cron tab to health.
	HealthCronTab = "HEALTH_CRON_TAB"

	// Delay between two fetches of a subscriber's accounts. Duration type.
	FetchInterval = "FETCH_INTERVAL"

	// Directory where media are downloaded before upload.
	MediaDir = "MEDIA_DIR"

	// Timeout of a single media download. Duration type.
	DownloadTimeout = "DOWNLOAD_TIMEOUT"

	defaultTelegramBotToken        = ""
	defaultTelegramAuthorizedUsers = ""
	defaultTelegramUploadTimeout   = 2 * time.Minute
	defaultTwitterAuthToken        = ""
	defaultTwitterCSRFToken        = ""
	defaultTwitterTweetCount       = 50
	defaultTwitterCache            = 10 * time.Minute
	defaultSqliteURL               = "tweetgram.db"
	defaultHealthCrontab           = "*/30 * * * *"
	defaultFetchInterval           = 5 * time.Minute
	defaultMediaDir                = "media"
	defaultDownloadTimeout         = 2 * time.Minute
	defaultLogLevel                = zerolog.InfoLevel
)

func GetDefaultConfigValues() map[string]any {
	return map[string]any{
		TelegramBotToken:        defaultTelegramBotToken,
		TelegramAuthorizedUsers: defaultTelegramAuthorizedUsers,
		TelegramUploadTimeout:   defaultTelegramUploadTimeout,
		TwitterAuthToken:        defaultTwitterAuthToken,
		TwitterCSRFToken:        defaultTwitterCSRFToken,
		TwitterTweetCount:       defaultTwitterTweetCount,
		TwitterCache:            defaultTwitterCache,
		SqliteURL:               defaultSqliteURL,
		LogLevel:                defaultLogLevel.String(),
		HealthCronTab:           defaultHealthCrontab,
		FetchInterval:           defaultFetchInterval,
		MediaDir:                defaultMediaDir,
		DownloadTimeout:         defaultDownloadTimeout,
	}
}
