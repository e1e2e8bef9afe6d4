package posts

type Kind int

const (
	KindPlain      Kind = 0
	KindReply      Kind = 1
	KindQuote      Kind = 2
	KindReplyQuote Kind = 3
	KindRetweet    Kind = 4
)

type MediaKind string

const (
	MediaPhoto       MediaKind = "photo"
	MediaVideo       MediaKind = "video"
	MediaAnimatedGif MediaKind = "animated_gif"
)

type Author struct {
	Handle string
	Name   string
}

// Entity pairs a shortened link found in a post's text with its destination.
type Entity struct {
	ShortLink   string
	ExpandedURL string
}

type Media struct {
	Kind MediaKind
	URL  string
}

// RawPost is a post as handed over by the social client, before classification.
// Referenced posts may be inlined (Quoted, Retweeted) or only known by id.
type RawPost struct {
	ID          int64
	Author      Author
	Text        string
	Entities    []Entity
	Media       []Media
	InReplyToID int64
	QuotedID    int64
	Quoted      *RawPost
	Retweeted   *RawPost
	Pinned      bool
}

// Post is the normalized shape consumed by the compositor and the media resolver.
type Post struct {
	Kind        Kind
	ID          int64
	Author      Author
	Text        string
	Entities    []Entity
	Media       []Media
	RepliedToID int64
	Replied     *Post
	Quoted      *Post
	Retweeted   *Post
}

// MediaSet is the media chosen for one outbound message. Images and Video are never both set.
type MediaSet struct {
	Images []string
	Video  string
}
