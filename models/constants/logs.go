package constants

import "github.com/rs/zerolog"

const (
	LogFileName      = "fileName"
	LogChatID        = "chatID"
	LogUsername      = "username"
	LogCommand       = "cmd"
	LogTwitterName   = "twitterName"
	LogTweetID       = "tweetID"
	LogTweetURL      = "tweetURL"
	LogTweetNumber   = "tweetNumber"
	LogWatermark     = "watermark"
	LogMediaURL      = "mediaURL"
	LogMediaSize     = "mediaSize"
	LogShape         = "shape"
	LogLevelFallback = zerolog.InfoLevel
)
