package downloader

import (
	"context"
	"errors"
	"net/http"
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

// VideoLocator resolves a tweet to the direct url of its video stream.
type VideoLocator interface {
	LocateVideo(ctx context.Context, id int64) (string, error)
}

type Service interface {
	DownloadImage(ctx context.Context, url string) (string, error)
	DownloadVideo(ctx context.Context, permalink string) (string, error)
}

type Impl struct {
	dir     string
	client  *http.Client
	locator VideoLocator
}
