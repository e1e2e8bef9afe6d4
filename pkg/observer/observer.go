package observer

import "tweetgram/models/posts"

type EventType int

const (
	NewPostEvent EventType = 1
)

type Event struct {
	E      EventType
	ChatID int64
	Post   posts.RawPost
}

func NewPostEventFor(chatID int64, post posts.RawPost) Event {
	return Event{E: NewPostEvent, ChatID: chatID, Post: post}
}

type Observer interface {
	OnNotify(Event)
}

type Notifier interface {
	RegisterObserver(Observer)
}
