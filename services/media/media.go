package media

import "tweetgram/models/posts"

// Resolve picks the media published with post. The first post of the chain carrying any
// media wins: the content itself, its quote, the replied post, the replied post's quote.
func Resolve(post posts.Post) posts.MediaSet {
	content := post.Content()
	chain := []*posts.Post{&content, content.Quoted}
	if post.IsReply() && post.Replied != nil {
		chain = append(chain, post.Replied, post.Replied.Quoted)
	}

	for _, candidate := range chain {
		if candidate == nil {
			continue
		}
		if set := FromPost(*candidate); !set.IsEmpty() {
			return set
		}
	}

	return posts.MediaSet{}
}

// FromPost returns the media attached to post only. A video or animated gif anywhere in
// the attachments makes the whole post a video, referenced by its permalink.
func FromPost(post posts.Post) posts.MediaSet {
	var images []string
	for _, item := range post.Media {
		switch item.Kind {
		case posts.MediaVideo, posts.MediaAnimatedGif:
			return posts.MediaSet{Video: post.Permalink()}
		case posts.MediaPhoto:
			if item.URL != "" {
				images = append(images, item.URL)
			}
		}
	}

	return posts.MediaSet{Images: images}
}
