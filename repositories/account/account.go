package account

import (
	"errors"
	"fmt"

	"tweetgram/models/entities"
	"tweetgram/utils/databases"

	"gorm.io/gorm"
)

var ErrAlreadyFollowed = errors.New("account already followed")

func New(db databases.SqlConnection) *Impl {
	return &Impl{db: db}
}

func (repo *Impl) Follow(account entities.FollowedAccount) error {
	var existing entities.FollowedAccount

	result := repo.db.GetDB().
		Where("chat_id = ?", account.ChatID).
		Where("handle = ?", account.Handle).
		First(&existing)

	if result.Error == nil {
		return ErrAlreadyFollowed
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check account existence: %w", result.Error)
	}

	if err := repo.db.GetDB().Create(&account).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

func (repo *Impl) Unfollow(chatID int64, handle string) (bool, error) {
	result := repo.db.GetDB().
		Where("chat_id = ?", chatID).
		Where("handle = ?", handle).
		Delete(&entities.FollowedAccount{})

	return result.RowsAffected > 0, result.Error
}

func (repo *Impl) IsFollowing(chatID int64, handle string) (bool, error) {
	count := new(int64)
	result := repo.db.GetDB().Model(&entities.FollowedAccount{}).
		Where("chat_id = ?", chatID).
		Where("handle = ?", handle).
		Count(count)

	return *count > 0, result.Error
}

func (repo *Impl) FetchAll(chatID int64) ([]entities.FollowedAccount, error) {
	var accounts []entities.FollowedAccount
	result := repo.db.GetDB().Where("chat_id = ?", chatID).Order("handle").Find(&accounts)

	return accounts, result.Error
}

// RaiseWatermark stores watermarkID only if it is above the current one. An account
// unfollowed in the meantime stays deleted.
func (repo *Impl) RaiseWatermark(chatID int64, handle string, watermarkID int64) error {
	result := repo.db.GetDB().Model(&entities.FollowedAccount{}).
		Where("chat_id = ?", chatID).
		Where("handle = ?", handle).
		Where("watermark_id < ?", watermarkID).
		Update("watermark_id", watermarkID)
	if result.Error != nil {
		return fmt.Errorf("failed to update watermark: %w", result.Error)
	}

	return nil
}
