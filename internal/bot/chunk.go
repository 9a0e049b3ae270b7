package bot

import (
	"strings"
	"unicode/utf8"
)

// SplitMessage cuts text longer than limit runes into chunks of whole lines.
// Each line keeps its trailing newline, and a chunk is closed as soon as the
// next line would not fit. A single line longer than limit becomes a chunk of
// its own.
func SplitMessage(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	size := 0
	for _, line := range strings.Split(text, "\n") {
		n := utf8.RuneCountInString(line) + 1
		if size > 0 && size+n > limit {
			chunks = append(chunks, current.String())
			current.Reset()
			size = 0
		}
		current.WriteString(line)
		current.WriteByte('\n')
		size += n
	}
	if size > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
