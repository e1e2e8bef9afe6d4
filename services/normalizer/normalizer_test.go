package normalizer

import (
	"context"
	"errors"
	"testing"

	"tweetgram/models/posts"
)

type fakeFetcher struct {
	posts map[int64]posts.RawPost
	calls []int64
}

func (f *fakeFetcher) FetchPostByID(_ context.Context, id int64) (posts.RawPost, error) {
	f.calls = append(f.calls, id)
	raw, found := f.posts[id]
	if !found {
		return posts.RawPost{}, posts.ErrNotFound
	}
	return raw, nil
}

var (
	alice = posts.Author{Handle: "alice", Name: "Alice"}
	bob   = posts.Author{Handle: "bob", Name: "Bob"}
	carol = posts.Author{Handle: "carol", Name: "Carol"}
)

func TestNormalizePlain(t *testing.T) {
	fetcher := &fakeFetcher{}
	post, err := New(fetcher).Normalize(context.Background(), posts.RawPost{ID: 1, Author: alice, Text: "hi"})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if post.Kind != posts.KindPlain || post.Text != "hi" {
		t.Fatalf("unexpected post: %+v", post)
	}
	if len(fetcher.calls) != 0 {
		t.Errorf("plain post triggered fetches: %v", fetcher.calls)
	}
}

func TestNormalizeRetweetShortCircuitsQuote(t *testing.T) {
	fetcher := &fakeFetcher{}
	raw := posts.RawPost{
		ID:     10,
		Author: alice,
		Text:   "RT @bob: original",
		Retweeted: &posts.RawPost{
			ID:       5,
			Author:   bob,
			Text:     "original",
			QuotedID: 3,
		},
	}

	post, err := New(fetcher).Normalize(context.Background(), raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if post.Kind != posts.KindRetweet || post.Retweeted == nil {
		t.Fatalf("expected retweet, got %+v", post)
	}
	if post.Quoted != nil || post.Retweeted.Quoted != nil {
		t.Errorf("retweet must not carry a quote")
	}
	if post.Author != alice || post.ID != 10 {
		t.Errorf("outer attribution lost: %+v", post)
	}
	if len(fetcher.calls) != 0 {
		t.Errorf("retweet triggered fetches: %v", fetcher.calls)
	}
}

func TestNormalizeQuoteFetchesByID(t *testing.T) {
	fetcher := &fakeFetcher{posts: map[int64]posts.RawPost{
		3: {ID: 3, Author: bob, Text: "quoted", QuotedID: 1},
	}}
	post, err := New(fetcher).Normalize(context.Background(), posts.RawPost{ID: 4, Author: alice, Text: "look", QuotedID: 3})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if post.Kind != posts.KindQuote || post.Quoted == nil || post.Quoted.Text != "quoted" {
		t.Fatalf("unexpected post: %+v", post)
	}
	if post.Quoted.Quoted != nil {
		t.Errorf("quoted post resolved deeper than one level")
	}
	if len(fetcher.calls) != 1 {
		t.Errorf("expected a single fetch, got %v", fetcher.calls)
	}
}

func TestNormalizeReplyToQuote(t *testing.T) {
	fetcher := &fakeFetcher{posts: map[int64]posts.RawPost{
		20: {ID: 20, Author: bob, Text: "replied", InReplyToID: 19, Quoted: &posts.RawPost{ID: 15, Author: carol, Text: "deep"}},
	}}
	post, err := New(fetcher).Normalize(context.Background(), posts.RawPost{ID: 21, Author: alice, Text: "@bob yes", InReplyToID: 20})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if post.Kind != posts.KindReply || post.RepliedToID != 20 {
		t.Fatalf("unexpected kind %v / replied id %d", post.Kind, post.RepliedToID)
	}
	if post.Replied == nil || post.Replied.Kind != posts.KindQuote || post.Replied.Quoted.Author != carol {
		t.Fatalf("replied quote not resolved: %+v", post.Replied)
	}
	if post.Replied.Replied != nil {
		t.Errorf("replied post resolved its own reply")
	}
	if post.IsSelfReply() {
		t.Errorf("reply to bob flagged as self reply")
	}
}

func TestNormalizeReplyAndQuote(t *testing.T) {
	fetcher := &fakeFetcher{posts: map[int64]posts.RawPost{
		30: {ID: 30, Author: alice, Text: "first"},
	}}
	raw := posts.RawPost{ID: 31, Author: alice, Text: "second", InReplyToID: 30, Quoted: &posts.RawPost{ID: 2, Author: bob}}
	post, err := New(fetcher).Normalize(context.Background(), raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if post.Kind != posts.KindReplyQuote {
		t.Fatalf("expected reply quote, got %v", post.Kind)
	}
	if !post.IsSelfReply() {
		t.Errorf("expected self reply")
	}
}

func TestNormalizeResolutionFailed(t *testing.T) {
	fetcher := &fakeFetcher{}
	_, err := New(fetcher).Normalize(context.Background(), posts.RawPost{ID: 2, Author: alice, InReplyToID: 1})
	if !errors.Is(err, posts.ErrResolutionFailed) {
		t.Fatalf("expected ErrResolutionFailed, got %v", err)
	}
	if !errors.Is(err, posts.ErrNotFound) {
		t.Errorf("cause lost: %v", err)
	}
}
