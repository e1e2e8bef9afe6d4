package twitter

import (
	"fmt"
	"html"
	"strconv"

	"tweetgram/models/posts"
	"tweetgram/utils/texts"

	twitterscraper "github.com/n0madic/twitter-scraper"
)

// MapTweetToRawPost converts a scraped tweet. Inlined quoted and retweeted tweets are
// converted one level deep.
func MapTweetToRawPost(tweet *twitterscraper.Tweet) (posts.RawPost, error) {
	return mapTweet(tweet, true)
}

func mapTweet(tweet *twitterscraper.Tweet, withReferences bool) (posts.RawPost, error) {
	id, err := strconv.ParseInt(tweet.ID, 10, 64)
	if err != nil {
		return posts.RawPost{}, fmt.Errorf("%w: tweet id %q", posts.ErrMalformed, tweet.ID)
	}

	text := html.UnescapeString(tweet.Text)
	raw := posts.RawPost{
		ID:          id,
		Author:      posts.Author{Handle: tweet.Username, Name: tweet.Name},
		Text:        text,
		Entities:    pairEntities(text, tweet.URLs),
		Media:       mapMedia(tweet),
		InReplyToID: parseOptionalID(tweet.InReplyToStatusID),
		QuotedID:    parseOptionalID(tweet.QuotedStatusID),
		Pinned:      tweet.IsPin,
	}
	if raw.Author.Name == "" {
		raw.Author.Name = raw.Author.Handle
	}

	if !withReferences {
		return raw, nil
	}

	if tweet.RetweetedStatus != nil {
		retweeted, errRetweeted := mapTweet(tweet.RetweetedStatus, false)
		if errRetweeted == nil {
			raw.Retweeted = &retweeted
		}
	}
	if tweet.QuotedStatus != nil {
		quoted, errQuoted := mapTweet(tweet.QuotedStatus, false)
		if errQuoted == nil {
			raw.Quoted = &quoted
			raw.QuotedID = quoted.ID
		}
	}

	return raw, nil
}

// pairEntities matches the short links of text, in order of appearance, with the
// expanded urls the scraper reports in the same order. Media links have no url entry
// and stay unpaired.
func pairEntities(text string, expanded []string) []posts.Entity {
	shortLinks := texts.FindShortLinks(text)
	entities := make([]posts.Entity, 0, len(shortLinks))
	for i, shortLink := range shortLinks {
		if i >= len(expanded) {
			break
		}
		entities = append(entities, posts.Entity{ShortLink: shortLink, ExpandedURL: expanded[i]})
	}
	return entities
}

func mapMedia(tweet *twitterscraper.Tweet) []posts.Media {
	var media []posts.Media
	for _, photo := range tweet.Photos {
		media = append(media, posts.Media{Kind: posts.MediaPhoto, URL: photo.URL})
	}
	for _, video := range tweet.Videos {
		media = append(media, posts.Media{Kind: posts.MediaVideo, URL: video.URL})
	}
	for _, gif := range tweet.GIFs {
		media = append(media, posts.Media{Kind: posts.MediaAnimatedGif, URL: gif.URL})
	}
	return media
}

func parseOptionalID(id string) int64 {
	if id == "" {
		return 0
	}
	parsed, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0
	}
	return parsed
}
