package account

import (
	"tweetgram/models/entities"
	"tweetgram/utils/databases"
)

type Repository interface {
	Follow(account entities.FollowedAccount) error
	Unfollow(chatID int64, handle string) (bool, error)
	IsFollowing(chatID int64, handle string) (bool, error)
	FetchAll(chatID int64) ([]entities.FollowedAccount, error)
	RaiseWatermark(chatID int64, handle string, watermarkID int64) error
}

type Impl struct {
	db databases.SqlConnection
}
