// Package compositor turns a normalized post into the single HTML message published on
// Telegram: expanded links, attribution headers, retweet/quote/reply context.
package compositor

import (
	"fmt"
	"html"
	"strings"

	"tweetgram/models/posts"
	"tweetgram/utils/texts"
)

type Relation int

const (
	RelationNone      Relation = 0
	RelationReplied   Relation = 1
	RelationContinued Relation = 2
)

// Header links to the post with its author, suffixed according to relation.
func Header(post posts.Post, relation Relation) string {
	link := fmt.Sprintf(`<a href="%s">%s (@%s)</a>`,
		post.Permalink(), html.EscapeString(post.Author.Name), html.EscapeString(post.Author.Handle))

	switch relation {
	case RelationContinued:
		return link + " continued:"
	case RelationReplied:
		return link + " replied:"
	default:
		return link
	}
}

// Compose builds the message for post. It is a pure function of its input.
func Compose(post posts.Post) string {
	relation := RelationNone
	if post.IsReply() && post.Replied != nil {
		relation = RelationReplied
		if post.IsSelfReply() {
			relation = RelationContinued
		}
	}
	header := Header(post, relation)

	var message string
	switch {
	case post.IsRetweet():
		retweeted := *post.Retweeted
		if post.IsSelfRetweet() {
			message = header + "\n" + Body(retweeted)
		} else {
			message = header + "\nRT " + Header(retweeted, RelationNone) + "\n" + Body(retweeted)
		}

	case post.IsQuote():
		message = header + "\n" + paragraph(body(post, post.IsReply())) +
			"RT " + Header(*post.Quoted, RelationNone) + "\n" + Body(*post.Quoted)

	default:
		message = header + "\n" + body(post, post.IsReply())
	}

	if post.IsReply() && post.Replied != nil {
		message = replyContext(*post.Replied) + message
	}

	return message
}

// Body is the publishable text of post: links expanded with the post's own entities,
// short link residue and quote permalink removed, HTML escaped, trimmed.
func Body(post posts.Post) string {
	return body(post, false)
}

func body(post posts.Post, stripMentions bool) string {
	text := texts.ExpandLinks(post.Text, post.Entities)
	text = texts.StripShortLinks(text)
	if post.Quoted != nil {
		text = texts.RemovePermalink(text, post.Quoted.Author.Handle, post.Quoted.ID)
	}
	if stripMentions {
		text = texts.StripLeadingMentions(text)
	}
	return strings.TrimSpace(html.EscapeString(text))
}

// replyContext renders the replied post, and what it quoted, ahead of the reply.
func replyContext(replied posts.Post) string {
	rendered := Header(replied, RelationNone) + "\n" + paragraph(Body(replied))

	if replied.Quoted != nil {
		quotedBody := Body(*replied.Quoted)
		rendered += "RT " + Header(*replied.Quoted, RelationNone) + "\n"
		if quotedBody != "" {
			rendered += quotedBody + "\n\n"
		} else {
			rendered += "\n"
		}
	}

	return rendered
}

// paragraph suppresses blank text, otherwise separates it from what follows.
func paragraph(text string) string {
	if text == "" {
		return ""
	}
	return text + "\n\n"
}
