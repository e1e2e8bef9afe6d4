package dispatch

import "context"

type Shape int

const (
	ShapeText    Shape = 0
	ShapePhoto   Shape = 1
	ShapeGallery Shape = 2
	ShapeVideo   Shape = 3
)

func (shape Shape) String() string {
	switch shape {
	case ShapePhoto:
		return "photo"
	case ShapeGallery:
		return "gallery"
	case ShapeVideo:
		return "video"
	default:
		return "text"
	}
}

// Plan is the output shape chosen for one composed post.
type Plan struct {
	Shape   Shape
	Caption string
	Images  []string
	Video   string
}

// Messenger is the messaging platform, captions and texts use its HTML markup.
type Messenger interface {
	SendText(chatID int64, text string) error
	SendPhoto(chatID int64, path string, caption string) error
	SendGallery(chatID int64, paths []string, caption string) error
	SendVideo(chatID int64, path string, caption string) error
	SendStatus(chatID int64, text string) (int64, error)
	DeleteMessage(chatID int64, messageID int64) error
}

// Downloader retrieves media into local files owned by the caller.
type Downloader interface {
	DownloadImage(ctx context.Context, url string) (string, error)
	DownloadVideo(ctx context.Context, permalink string) (string, error)
}

type Service interface {
	Dispatch(ctx context.Context, chatID int64, plan Plan) error
}

type Impl struct {
	messenger  Messenger
	downloader Downloader
}
