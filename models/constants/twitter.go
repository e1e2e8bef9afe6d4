package constants

const (
	ExternalName = "tweetgram"
	Version      = "1.0.0"

	TwitterBaseURL = "https://twitter.com"
)
