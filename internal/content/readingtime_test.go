package content

import (
	"strings"
	"testing"
)

func TestReadingMinutesFloorsAtOne(t *testing.T) {
	t.Parallel()

	if got := ReadingMinutes(""); got != 1 {
		t.Fatalf("expected 1 minute for empty content, got %d", got)
	}

	if got := ReadingMinutes("   \n\t "); got != 1 {
		t.Fatalf("expected 1 minute for whitespace content, got %d", got)
	}

	if got := ReadingMinutes("a few words only"); got != 1 {
		t.Fatalf("expected 1 minute for short content, got %d", got)
	}
}

func TestReadingMinutesRoundsUp(t *testing.T) {
	t.Parallel()

	exactly := strings.Repeat("word ", 200)
	if got := ReadingMinutes(exactly); got != 1 {
		t.Fatalf("expected 1 minute for 200 words, got %d", got)
	}

	justOver := strings.Repeat("word ", 201)
	if got := ReadingMinutes(justOver); got != 2 {
		t.Fatalf("expected 2 minutes for 201 words, got %d", got)
	}
}

func TestFormatReadingTimePluralizes(t *testing.T) {
	t.Parallel()

	if got := FormatReadingTime("short"); got != "1 minute read" {
		t.Fatalf("expected singular label, got %q", got)
	}

	long := strings.Repeat("word ", 450)
	if got := FormatReadingTime(long); got != "3 minutes read" {
		t.Fatalf("expected '3 minutes read', got %q", got)
	}
}
