package dispatch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"tweetgram/models/posts"
)

type fakeMessenger struct {
	calls       []string
	captions    []string
	videoErrors []error
	photoErr    error
	deleted     []int64
	seenFiles   []string
}

func (m *fakeMessenger) SendText(_ int64, text string) error {
	m.calls = append(m.calls, "text")
	m.captions = append(m.captions, text)
	return nil
}

func (m *fakeMessenger) SendPhoto(_ int64, path string, caption string) error {
	m.calls = append(m.calls, "photo")
	m.captions = append(m.captions, caption)
	m.seenFiles = append(m.seenFiles, path)
	return m.photoErr
}

func (m *fakeMessenger) SendGallery(_ int64, paths []string, caption string) error {
	m.calls = append(m.calls, fmt.Sprintf("gallery:%d", len(paths)))
	m.captions = append(m.captions, caption)
	m.seenFiles = append(m.seenFiles, paths...)
	return nil
}

func (m *fakeMessenger) SendVideo(_ int64, path string, caption string) error {
	m.calls = append(m.calls, "video")
	m.captions = append(m.captions, caption)
	m.seenFiles = append(m.seenFiles, path)
	if len(m.videoErrors) == 0 {
		return nil
	}
	err := m.videoErrors[0]
	m.videoErrors = m.videoErrors[1:]
	return err
}

func (m *fakeMessenger) SendStatus(_ int64, text string) (int64, error) {
	m.calls = append(m.calls, "status:"+text)
	return 77, nil
}

func (m *fakeMessenger) DeleteMessage(_ int64, messageID int64) error {
	m.deleted = append(m.deleted, messageID)
	return nil
}

type fakeDownloader struct {
	dir     string
	failFor map[string]bool
	count   int
}

func (d *fakeDownloader) write() (string, error) {
	d.count++
	path := filepath.Join(d.dir, fmt.Sprintf("media-%d", d.count))
	return path, os.WriteFile(path, []byte("data"), 0o600)
}

func (d *fakeDownloader) DownloadImage(_ context.Context, url string) (string, error) {
	if d.failFor[url] {
		return "", posts.ErrNotFound
	}
	return d.write()
}

func (d *fakeDownloader) DownloadVideo(_ context.Context, permalink string) (string, error) {
	if d.failFor[permalink] {
		return "", posts.ErrTransient
	}
	return d.write()
}

func assertRemoved(t *testing.T, paths []string) {
	t.Helper()
	for _, path := range paths {
		if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("media file %s still exists", path)
		}
	}
}

func TestSelect(t *testing.T) {
	cases := []struct {
		set  posts.MediaSet
		want Shape
	}{
		{posts.MediaSet{}, ShapeText},
		{posts.MediaSet{Images: []string{"a"}}, ShapePhoto},
		{posts.MediaSet{Images: []string{"a", "b"}}, ShapeGallery},
		{posts.MediaSet{Video: "https://twitter.com/a/status/1"}, ShapeVideo},
	}
	for _, c := range cases {
		plan := Select(c.set, "caption")
		if plan.Shape != c.want || plan.Caption != "caption" {
			t.Errorf("Select(%+v) = %+v, want shape %s", c.set, plan, c.want)
		}
	}
}

func TestDispatchPhotoRemovesFileOnFailure(t *testing.T) {
	messenger := &fakeMessenger{photoErr: errors.New("payload rejected")}
	downloader := &fakeDownloader{dir: t.TempDir()}

	err := New(messenger, downloader).Dispatch(context.Background(), 1, Select(posts.MediaSet{Images: []string{"a"}}, "hello"))
	if !errors.Is(err, posts.ErrDispatchFailed) {
		t.Fatalf("expected ErrDispatchFailed, got %v", err)
	}
	if len(messenger.calls) != 1 || messenger.calls[0] != "photo" {
		t.Fatalf("unexpected calls %v", messenger.calls)
	}
	assertRemoved(t, messenger.seenFiles)
}

func TestDispatchGallery(t *testing.T) {
	messenger := &fakeMessenger{}
	downloader := &fakeDownloader{dir: t.TempDir()}

	err := New(messenger, downloader).Dispatch(context.Background(), 1, Select(posts.MediaSet{Images: []string{"a", "b", "c"}}, "hello"))
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(messenger.calls) != 1 || messenger.calls[0] != "gallery:3" {
		t.Fatalf("unexpected calls %v", messenger.calls)
	}
	assertRemoved(t, messenger.seenFiles)
}

func TestDispatchGalleryDegradesOnDownloadFailure(t *testing.T) {
	messenger := &fakeMessenger{}
	downloader := &fakeDownloader{dir: t.TempDir(), failFor: map[string]bool{"b": true}}

	err := New(messenger, downloader).Dispatch(context.Background(), 1, Select(posts.MediaSet{Images: []string{"a", "b"}}, "hello"))
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(messenger.calls) != 1 || messenger.calls[0] != "photo" {
		t.Fatalf("unexpected calls %v", messenger.calls)
	}
}

func TestDispatchVideoRetriesOnceOnTransientError(t *testing.T) {
	messenger := &fakeMessenger{videoErrors: []error{posts.ErrTransient}}
	downloader := &fakeDownloader{dir: t.TempDir()}

	plan := Select(posts.MediaSet{Video: "https://twitter.com/a/status/1"}, "hello")
	if err := New(messenger, downloader).Dispatch(context.Background(), 1, plan); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	want := []string{"status:" + downloadingStatus, "video", "video"}
	if fmt.Sprint(messenger.calls) != fmt.Sprint(want) {
		t.Fatalf("calls = %v, want %v", messenger.calls, want)
	}
	if len(messenger.deleted) != 1 || messenger.deleted[0] != 77 {
		t.Errorf("status message not deleted: %v", messenger.deleted)
	}
	assertRemoved(t, messenger.seenFiles)
}

func TestDispatchVideoGivesUpAfterOneRetry(t *testing.T) {
	messenger := &fakeMessenger{videoErrors: []error{posts.ErrTransient, posts.ErrTransient}}
	downloader := &fakeDownloader{dir: t.TempDir()}

	plan := Select(posts.MediaSet{Video: "https://twitter.com/a/status/1"}, "hello")
	err := New(messenger, downloader).Dispatch(context.Background(), 1, plan)
	if !errors.Is(err, posts.ErrDispatchFailed) {
		t.Fatalf("expected ErrDispatchFailed, got %v", err)
	}
	if len(messenger.deleted) != 1 {
		t.Errorf("status message not deleted after failure")
	}
	assertRemoved(t, messenger.seenFiles)
}

func TestDispatchVideoDownloadFailure(t *testing.T) {
	video := "https://twitter.com/a/status/1"
	messenger := &fakeMessenger{}
	downloader := &fakeDownloader{dir: t.TempDir(), failFor: map[string]bool{video: true}}

	err := New(messenger, downloader).Dispatch(context.Background(), 1, Select(posts.MediaSet{Video: video}, "hello"))
	if !errors.Is(err, posts.ErrDispatchFailed) {
		t.Fatalf("expected ErrDispatchFailed, got %v", err)
	}
	if len(messenger.deleted) != 1 {
		t.Errorf("status message not deleted after download failure")
	}
}

func TestDispatchText(t *testing.T) {
	messenger := &fakeMessenger{}
	if err := New(messenger, &fakeDownloader{}).Dispatch(context.Background(), 1, Select(posts.MediaSet{}, "only text")); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(messenger.calls) != 1 || messenger.calls[0] != "text" || messenger.captions[0] != "only text" {
		t.Fatalf("unexpected calls %v %v", messenger.calls, messenger.captions)
	}
}

func TestDispatchPhotoWithLongCaption(t *testing.T) {
	messenger := &fakeMessenger{}
	downloader := &fakeDownloader{dir: t.TempDir()}
	caption := strings.Repeat("é", maxCaptionLength+1)

	plan := Select(posts.MediaSet{Images: []string{"https://pbs.twimg.com/a.jpg"}}, caption)
	if err := New(messenger, downloader).Dispatch(context.Background(), 1, plan); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(messenger.calls) != 2 || messenger.calls[0] != "photo" || messenger.calls[1] != "text" {
		t.Fatalf("unexpected calls %v", messenger.calls)
	}
	if messenger.captions[0] != "" || messenger.captions[1] != caption {
		t.Errorf("caption should follow the photo as a text message")
	}
}

func TestDispatchVideoWithLongCaption(t *testing.T) {
	messenger := &fakeMessenger{}
	downloader := &fakeDownloader{dir: t.TempDir()}
	caption := strings.Repeat("a", maxCaptionLength+1)

	plan := Select(posts.MediaSet{Video: "https://twitter.com/a/status/1"}, caption)
	if err := New(messenger, downloader).Dispatch(context.Background(), 1, plan); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if got := messenger.calls[len(messenger.calls)-1]; got != "text" {
		t.Fatalf("unexpected calls %v", messenger.calls)
	}
	if messenger.captions[0] != "" {
		t.Errorf("video sent with an oversized caption")
	}
}

func TestDispatchCaptionAtLimitStaysAttached(t *testing.T) {
	messenger := &fakeMessenger{}
	downloader := &fakeDownloader{dir: t.TempDir()}
	caption := strings.Repeat("é", maxCaptionLength)

	plan := Select(posts.MediaSet{Images: []string{"a", "b"}}, caption)
	if err := New(messenger, downloader).Dispatch(context.Background(), 1, plan); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(messenger.calls) != 1 || messenger.captions[0] != caption {
		t.Fatalf("unexpected calls %v", messenger.calls)
	}
}

func TestDispatchLongTextIsSplit(t *testing.T) {
	messenger := &fakeMessenger{}
	line := strings.Repeat("x", 1000)
	text := strings.Repeat(line+"\n", 9) + strings.Repeat("y", 5000)

	if err := New(messenger, &fakeDownloader{}).Dispatch(context.Background(), 1, Select(posts.MediaSet{}, text)); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(messenger.captions) < 4 {
		t.Fatalf("got %d messages, want at least 4", len(messenger.captions))
	}
	total := 0
	for _, chunk := range messenger.captions {
		length := utf8.RuneCountInString(chunk)
		if length > maxTextLength {
			t.Errorf("chunk of %d characters exceeds the limit", length)
		}
		total += strings.Count(chunk, "x") + strings.Count(chunk, "y")
	}
	if total != 9*1000+5000 {
		t.Errorf("lost characters: got %d", total)
	}
}

func TestSplitTextKeepsEntities(t *testing.T) {
	text := strings.Repeat("a", 8) + "&amp;" + strings.Repeat("b", 8)

	chunks := splitText(text, 10)
	if strings.Join(chunks, "") != text {
		t.Fatalf("chunks %q do not rebuild the text", chunks)
	}
	for _, chunk := range chunks {
		if strings.Contains(chunk, "&") && !strings.Contains(chunk, "&amp;") {
			t.Errorf("entity cut in chunk %q", chunk)
		}
	}
}
