package posts

import (
	"fmt"
	"strings"

	"tweetgram/models/constants"
)

func Permalink(handle string, id int64) string {
	return fmt.Sprintf("%s/%s/status/%d", constants.TwitterBaseURL, handle, id)
}

func (post Post) Permalink() string {
	return Permalink(post.Author.Handle, post.ID)
}

func (raw RawPost) Permalink() string {
	return Permalink(raw.Author.Handle, raw.ID)
}

func (post Post) IsReply() bool {
	return post.Kind == KindReply || post.Kind == KindReplyQuote
}

func (post Post) IsRetweet() bool {
	return post.Kind == KindRetweet && post.Retweeted != nil
}

func (post Post) IsQuote() bool {
	return post.Quoted != nil && post.Kind != KindRetweet
}

func (post Post) IsSelfReply() bool {
	return post.Replied != nil && sameHandle(post.Replied.Author.Handle, post.Author.Handle)
}

func (post Post) IsSelfRetweet() bool {
	return post.Retweeted != nil && sameHandle(post.Retweeted.Author.Handle, post.Author.Handle)
}

// Content returns the post whose text and media get published: the original for a retweet.
func (post Post) Content() Post {
	if post.IsRetweet() {
		return *post.Retweeted
	}
	return post
}

func (set MediaSet) IsEmpty() bool {
	return len(set.Images) == 0 && set.Video == ""
}

// Handles are case-insensitive on the platform.
func sameHandle(a, b string) bool {
	return strings.EqualFold(a, b)
}
