package downloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"time"

	"tweetgram/models/constants"
	"tweetgram/models/posts"
	"tweetgram/utils/texts"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New(locator VideoLocator) (*Impl, error) {
	return NewWithOptions(viper.GetString(constants.MediaDir), viper.GetDuration(constants.DownloadTimeout), locator)
}

func NewWithOptions(dir string, timeout time.Duration, locator VideoLocator) (*Impl, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create media directory: %w", err)
	}

	return &Impl{
		dir:     dir,
		client:  &http.Client{Timeout: timeout},
		locator: locator,
	}, nil
}

func (service *Impl) DownloadImage(ctx context.Context, imageURL string) (string, error) {
	return service.download(ctx, imageURL, "image-*"+extension(imageURL, ".jpg"))
}

// DownloadVideo retrieves the video of the tweet behind permalink.
func (service *Impl) DownloadVideo(ctx context.Context, permalink string) (string, error) {
	id, err := texts.ParsePostID(permalink)
	if err != nil {
		return "", err
	}

	streamURL, err := service.locator.LocateVideo(ctx, id)
	if err != nil {
		return "", fmt.Errorf("cannot locate video of %s: %w", permalink, err)
	}

	return service.download(ctx, streamURL, "video-*.mp4")
}

func (service *Impl) download(ctx context.Context, mediaURL string, pattern string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", posts.ErrMalformed, err)
	}

	resp, err := service.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", posts.ErrTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d for %s", ErrUnexpectedStatus, resp.StatusCode, mediaURL)
	}

	file, err := os.CreateTemp(service.dir, pattern)
	if err != nil {
		return "", err
	}

	size, errCopy := io.Copy(file, resp.Body)
	errClose := file.Close()
	if errCopy != nil || errClose != nil {
		os.Remove(file.Name())
		if errCopy != nil {
			return "", fmt.Errorf("%w: %w", posts.ErrTransient, errCopy)
		}
		return "", errClose
	}

	log.Debug().
		Str(constants.LogMediaURL, mediaURL).
		Str(constants.LogMediaSize, humanize.Bytes(uint64(size))).
		Str(constants.LogFileName, file.Name()).
		Msg("Media downloaded")

	return file.Name(), nil
}

func extension(mediaURL string, fallback string) string {
	parsed, err := url.Parse(mediaURL)
	if err != nil {
		return fallback
	}
	if ext := path.Ext(parsed.Path); ext != "" {
		return ext
	}
	return fallback
}
