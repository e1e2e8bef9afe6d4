package texts

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"tweetgram/models/posts"
)

var (
	// Fixed-length redirect links generated by Twitter.
	shortLinkPattern = regexp.MustCompile(`https://t\.co/\w{10}`)

	// One or more @handle tokens at the very start, each followed by whitespace.
	leadingMentionsPattern = regexp.MustCompile(`^(@[A-Za-z0-9_-]+\s+)+`)
)

// ExpandLinks replaces every short link of text by its expansion, using entities only.
func ExpandLinks(text string, entities []posts.Entity) string {
	for _, entity := range entities {
		if entity.ShortLink == "" {
			continue
		}
		text = strings.ReplaceAll(text, entity.ShortLink, entity.ExpandedURL)
	}
	return text
}

// StripShortLinks removes short links left in text after expansion.
func StripShortLinks(text string) string {
	return shortLinkPattern.ReplaceAllString(text, "")
}

// FindShortLinks returns the distinct short links of text in order of appearance.
func FindShortLinks(text string) []string {
	var links []string
	seen := map[string]struct{}{}
	for _, link := range shortLinkPattern.FindAllString(text, -1) {
		if _, found := seen[link]; found {
			continue
		}
		seen[link] = struct{}{}
		links = append(links, link)
	}
	return links
}

// StripLeadingMentions removes the contiguous run of mentions opening a reply.
func StripLeadingMentions(text string) string {
	return strings.TrimLeft(leadingMentionsPattern.ReplaceAllString(text, ""), " \t\n")
}

// RemovePermalink removes every link to the post handle/id, on twitter.com or x.com.
func RemovePermalink(text string, handle string, id int64) string {
	if handle == "" || id == 0 {
		return text
	}
	pattern := fmt.Sprintf(`(?i)https?://(www\.|mobile\.)?(twitter|x)\.com/%s/status/%d\b(\?\S*)?`,
		regexp.QuoteMeta(handle), id)
	return regexp.MustCompile(pattern).ReplaceAllString(text, "")
}

// ParsePostID extracts the post id from a post link: the path segment following
// "status". Query string and trailing segments such as /photo/1 are ignored.
func ParsePostID(link string) (int64, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return 0, fmt.Errorf("%w: empty link", posts.ErrMalformed)
	}

	parsed, err := url.Parse(link)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", posts.ErrMalformed, err)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	for i, segment := range segments[:len(segments)-1] {
		if segment != "status" && segment != "statuses" {
			continue
		}
		id, errID := strconv.ParseInt(segments[i+1], 10, 64)
		if errID != nil || id <= 0 {
			break
		}
		return id, nil
	}

	return 0, fmt.Errorf("%w: no post id in %q", posts.ErrMalformed, link)
}
