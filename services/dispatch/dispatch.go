package dispatch

import (
	"context"
	"errors"
	"fmt"
	"os"

	"tweetgram/models/constants"
	"tweetgram/models/posts"

	"github.com/rs/zerolog/log"
)

func New(messenger Messenger, downloader Downloader) *Impl {
	return &Impl{messenger: messenger, downloader: downloader}
}

// Dispatch publishes plan to chatID. Downloaded files never outlive the call.
func (service *Impl) Dispatch(ctx context.Context, chatID int64, plan Plan) error {
	var err error
	switch plan.Shape {
	case ShapePhoto, ShapeGallery:
		err = service.sendImages(ctx, chatID, plan)
	case ShapeVideo:
		err = service.sendVideo(ctx, chatID, plan)
	default:
		err = service.sendText(chatID, plan.Caption)
	}

	if err != nil && !errors.Is(err, posts.ErrDispatchFailed) {
		return fmt.Errorf("%w: %s: %w", posts.ErrDispatchFailed, plan.Shape, err)
	}
	return err
}

func (service *Impl) sendImages(ctx context.Context, chatID int64, plan Plan) error {
	paths := make([]string, 0, len(plan.Images))
	defer func() {
		for _, path := range paths {
			service.remove(path)
		}
	}()

	for _, url := range plan.Images {
		path, err := service.downloader.DownloadImage(ctx, url)
		if err != nil {
			log.Warn().Err(err).Str(constants.LogMediaURL, url).Msg("Cannot download image, ignored")
			continue
		}
		paths = append(paths, path)
	}

	if len(paths) == 0 {
		log.Warn().Int64(constants.LogChatID, chatID).Msg("No image could be downloaded, sending text only")
		return service.sendText(chatID, plan.Caption)
	}

	caption, overflow := mediaCaption(plan.Caption)
	var err error
	if len(paths) == 1 {
		err = service.messenger.SendPhoto(chatID, paths[0], caption)
	} else {
		err = service.messenger.SendGallery(chatID, paths, caption)
	}
	if err != nil {
		return err
	}
	return service.sendText(chatID, overflow)
}

// sendText sends text split to the message length limit. Empty text sends nothing.
func (service *Impl) sendText(chatID int64, text string) error {
	if text == "" {
		return nil
	}
	for _, chunk := range splitText(text, maxTextLength) {
		if err := service.messenger.SendText(chatID, chunk); err != nil {
			return err
		}
	}
	return nil
}

// mediaCaption returns the caption to attach to a media message and the text to send
// after it when the caption is too long.
func mediaCaption(caption string) (string, string) {
	if fitsCaption(caption) {
		return caption, ""
	}
	return "", caption
}

func (service *Impl) sendVideo(ctx context.Context, chatID int64, plan Plan) error {
	statusID, errStatus := service.messenger.SendStatus(chatID, downloadingStatus)
	if errStatus != nil {
		log.Warn().Err(errStatus).Int64(constants.LogChatID, chatID).Msg("Cannot send download status, continuing")
	} else {
		defer func() {
			if err := service.messenger.DeleteMessage(chatID, statusID); err != nil {
				log.Warn().Err(err).Int64(constants.LogChatID, chatID).Msg("Cannot delete download status")
			}
		}()
	}

	path, err := service.downloader.DownloadVideo(ctx, plan.Video)
	if err != nil {
		return fmt.Errorf("cannot download video %s: %w", plan.Video, err)
	}
	defer service.remove(path)

	caption, overflow := mediaCaption(plan.Caption)
	err = service.messenger.SendVideo(chatID, path, caption)
	if errors.Is(err, posts.ErrTransient) {
		log.Warn().Err(err).Str(constants.LogTweetURL, plan.Video).Msg("Network error while sending video, trying again")
		err = service.messenger.SendVideo(chatID, path, caption)
	}
	if err != nil {
		return err
	}

	return service.sendText(chatID, overflow)
}

func (service *Impl) remove(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Error().Err(err).Str(constants.LogFileName, path).Msg("Cannot remove media file")
	}
}
