package subscriber

import (
	"tweetgram/models/entities"
	"tweetgram/utils/databases"
)

type Repository interface {
	Get(chatID int64) (entities.Subscriber, error)
	FindOrCreate(chatID int64, name string) (entities.Subscriber, error)
	SetIncludeReplies(chatID int64, includeReplies bool) error
	SetActive(chatID int64, active bool) error
	FetchActive() ([]entities.Subscriber, error)
}

type Impl struct {
	db databases.SqlConnection
}
