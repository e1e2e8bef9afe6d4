package messenger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tweetgram/models/posts"

	"github.com/PaulSonOfLars/gotgbot/v2"
)

func New(bot *gotgbot.Bot, uploadTimeout time.Duration) *Impl {
	return &Impl{bot: bot, uploadTimeout: uploadTimeout}
}

func (service *Impl) SendText(chatID int64, text string) error {
	_, err := service.bot.SendMessage(chatID, text, &gotgbot.SendMessageOpts{
		ParseMode:          parseModeHTML,
		LinkPreviewOptions: &gotgbot.LinkPreviewOptions{IsDisabled: true},
	})
	return classifyError(err)
}

func (service *Impl) SendPhoto(chatID int64, path string, caption string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = service.bot.SendPhoto(chatID, gotgbot.InputFileByReader(filepath.Base(path), file), &gotgbot.SendPhotoOpts{
		Caption:     caption,
		ParseMode:   parseModeHTML,
		RequestOpts: service.uploadOpts(),
	})
	return classifyError(err)
}

// SendGallery sends paths as one media group. Only the first item carries the caption,
// Telegram does not render the others.
func (service *Impl) SendGallery(chatID int64, paths []string, caption string) error {
	group := make([]gotgbot.InputMedia, 0, len(paths))
	for i, path := range paths {
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		item := gotgbot.InputMediaPhoto{Media: gotgbot.InputFileByReader(filepath.Base(path), file)}
		if i == 0 {
			item.Caption = caption
			item.ParseMode = parseModeHTML
		}
		group = append(group, item)
	}

	_, err := service.bot.SendMediaGroup(chatID, group, &gotgbot.SendMediaGroupOpts{
		RequestOpts: service.uploadOpts(),
	})
	return classifyError(err)
}

func (service *Impl) SendVideo(chatID int64, path string, caption string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = service.bot.SendVideo(chatID, gotgbot.InputFileByReader(filepath.Base(path), file), &gotgbot.SendVideoOpts{
		Caption:           caption,
		ParseMode:         parseModeHTML,
		SupportsStreaming: true,
		RequestOpts:       service.uploadOpts(),
	})
	return classifyError(err)
}

func (service *Impl) SendStatus(chatID int64, text string) (int64, error) {
	msg, err := service.bot.SendMessage(chatID, text, nil)
	if err != nil {
		return 0, classifyError(err)
	}
	return msg.MessageId, nil
}

func (service *Impl) DeleteMessage(chatID int64, messageID int64) error {
	_, err := service.bot.DeleteMessage(chatID, messageID, nil)
	return classifyError(err)
}

func (service *Impl) ClearCaption(chatID int64, messageID int64) error {
	_, _, err := service.bot.EditMessageCaption(&gotgbot.EditMessageCaptionOpts{
		ChatId:    chatID,
		MessageId: messageID,
		Caption:   "",
	})
	return classifyError(err)
}

func (service *Impl) uploadOpts() *gotgbot.RequestOpts {
	return &gotgbot.RequestOpts{Timeout: service.uploadTimeout}
}

// classifyError tells rejections by Telegram apart from failures to reach it.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var tgErr *gotgbot.TelegramError
	if errors.As(err, &tgErr) {
		return fmt.Errorf("%w: %w", posts.ErrDispatchFailed, err)
	}
	return fmt.Errorf("%w: %w", posts.ErrTransient, err)
}
