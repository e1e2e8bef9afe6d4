package telegram

import (
	"context"
	"errors"

	"tweetgram/repositories/account"
	"tweetgram/repositories/subscriber"
	"tweetgram/services/relay"
	"tweetgram/services/timeline"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
)

type MessageType int

const (
	MessageTypeUnknown      MessageType = -1
	MessageTypeUnauthorized MessageType = 0
	MessageTypeWelcome      MessageType = 1
	MessageTypeHelp         MessageType = 2
	MessageTypeResuming     MessageType = 3
	MessageTypeStopped      MessageType = 4
	MessageTypeIncorrect    MessageType = 5
	MessageTypeNoAccount    MessageType = 6
)

var (
	ErrTokenIsMissing         = errors.New("telegram token is missing")
	ErrBotNotInitialized      = errors.New("telegram bot  is not ready yet")
	ErrFailedToStartListening = errors.New("telegram bot can't start to listen command")
)

// AccountLookup gives the id a newly followed account starts from.
type AccountLookup interface {
	FetchMostRecentPostID(ctx context.Context, handle string) (int64, error)
}

// CaptionEditor clears the caption of a published media message.
type CaptionEditor interface {
	ClearCaption(chatID int64, messageID int64) error
}

type Service interface {
	ListenAndDispatch() error
	Stop() error
}

// request is the part of an update a command reads.
type request struct {
	chatID    int64
	username  string
	text      string
	replyToID int64
}

type Impl struct {
	bot             *gotgbot.Bot
	send            func(chatID int64, text string) error
	updater         *ext.Updater
	authorizedUsers map[string]struct{}
	timeline        timeline.Service
	relay           relay.Service
	accountLookup   AccountLookup
	captionEditor   CaptionEditor
	subscriberRepo  subscriber.Repository
	accountRepo     account.Repository
}
