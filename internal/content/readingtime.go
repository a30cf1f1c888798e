package content

import (
	"fmt"
	"strings"
)

const defaultWordsPerMinute = 200

// ReadingMinutes estimates reading time in whole minutes at 200 words per
// minute, with a floor of one minute.
func ReadingMinutes(text string) int {
	if strings.TrimSpace(text) == "" {
		return 1
	}

	words := len(strings.Fields(text))
	minutes := (words + defaultWordsPerMinute - 1) / defaultWordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// FormatReadingTime renders the estimate as a human-readable label.
func FormatReadingTime(text string) string {
	minutes := ReadingMinutes(text)
	if minutes == 1 {
		return "1 minute read"
	}
	return fmt.Sprintf("%d minutes read", minutes)
}
