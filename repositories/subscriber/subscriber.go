package subscriber

import (
	"errors"
	"fmt"

	"tweetgram/models/entities"
	"tweetgram/utils/databases"

	"gorm.io/gorm"
)

func New(db databases.SqlConnection) *Impl {
	return &Impl{db: db}
}

func (repo *Impl) Get(chatID int64) (entities.Subscriber, error) {
	var subscriber entities.Subscriber
	result := repo.db.GetDB().Where("chat_id = ?", chatID).First(&subscriber)

	return subscriber, result.Error
}

// FindOrCreate returns the subscriber, created with replies included when unknown.
func (repo *Impl) FindOrCreate(chatID int64, name string) (entities.Subscriber, error) {
	existing, err := repo.Get(chatID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return existing, fmt.Errorf("failed to check subscriber existence: %w", err)
	}

	subscriber := entities.Subscriber{ChatID: chatID, Name: name, IncludeReplies: true}
	if errCreate := repo.db.GetDB().Create(&subscriber).Error; errCreate != nil {
		return subscriber, fmt.Errorf("failed to create subscriber: %w", errCreate)
	}

	return subscriber, nil
}

func (repo *Impl) SetIncludeReplies(chatID int64, includeReplies bool) error {
	return repo.update(chatID, "include_replies", includeReplies)
}

func (repo *Impl) SetActive(chatID int64, active bool) error {
	return repo.update(chatID, "active", active)
}

func (repo *Impl) FetchActive() ([]entities.Subscriber, error) {
	var subscribers []entities.Subscriber
	result := repo.db.GetDB().Where("active = ?", true).Find(&subscribers)

	return subscribers, result.Error
}

func (repo *Impl) update(chatID int64, column string, value any) error {
	result := repo.db.GetDB().Model(&entities.Subscriber{}).Where("chat_id = ?", chatID).Update(column, value)
	if result.Error != nil {
		return fmt.Errorf("failed to update subscriber %s: %w", column, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
