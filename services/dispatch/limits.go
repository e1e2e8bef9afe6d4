package dispatch

import (
	"strings"
	"unicode/utf8"
)

// Telegram limits, in characters.
const (
	maxCaptionLength = 1024
	maxTextLength    = 4096
)

func fitsCaption(caption string) bool {
	return utf8.RuneCountInString(caption) <= maxCaptionLength
}

// splitText cuts text into chunks of at most limit runes, on line boundaries when
// possible. A line longer than limit is cut at a rune boundary, never inside an HTML
// entity.
func splitText(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0
	flush := func() {
		if chunk := strings.TrimSpace(current.String()); chunk != "" {
			chunks = append(chunks, chunk)
		}
		current.Reset()
		currentLen = 0
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		lineLen := utf8.RuneCountInString(line)
		if currentLen+lineLen > limit {
			flush()
		}
		for lineLen > limit {
			head, tail := cutLine(line, limit)
			current.WriteString(head)
			flush()
			line = tail
			lineLen = utf8.RuneCountInString(line)
		}
		current.WriteString(line)
		currentLen += lineLen
	}
	flush()

	return chunks
}

func cutLine(line string, limit int) (string, string) {
	runes := []rune(line)
	cut := limit
	if amp := strings.LastIndex(string(runes[:cut]), "&"); amp >= 0 {
		if !strings.Contains(string(runes[:cut])[amp:], ";") {
			cut = utf8.RuneCountInString(string(runes[:cut])[:amp])
		}
	}
	if cut == 0 {
		cut = limit
	}
	return string(runes[:cut]), string(runes[cut:])
}
