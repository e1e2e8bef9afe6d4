package messenger

import (
	"time"

	"github.com/PaulSonOfLars/gotgbot/v2"
)

const parseModeHTML = "HTML"

type Service interface {
	SendText(chatID int64, text string) error
	SendPhoto(chatID int64, path string, caption string) error
	SendGallery(chatID int64, paths []string, caption string) error
	SendVideo(chatID int64, path string, caption string) error
	SendStatus(chatID int64, text string) (int64, error)
	DeleteMessage(chatID int64, messageID int64) error
	ClearCaption(chatID int64, messageID int64) error
}

type Impl struct {
	bot           *gotgbot.Bot
	uploadTimeout time.Duration
}
