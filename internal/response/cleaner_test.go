package response

import (
	"strings"
	"testing"
)

func TestClean_RemovesFenceMarkers(t *testing.T) {
	text := "```python\nx = 1\n```"

	got := Clean(text)
	if got != "x = 1" {
		t.Errorf("Expected %q, got %q", "x = 1", got)
	}
}

func TestClean_RemovesBareClosingFence(t *testing.T) {
	text := "x = 1\n```"

	got := Clean(text)
	if strings.Contains(got, "```") {
		t.Errorf("Expected fences removed, got %q", got)
	}
}

func TestClean_CollapsesBlankRuns(t *testing.T) {
	text := "a\n\n\n\n\nb"

	got := Clean(text)
	if got != "a\n\n\nb" {
		t.Errorf("Expected 2 blank lines max, got %q", got)
	}
}

func TestClean_TrimsTrailingWhitespace(t *testing.T) {
	text := "x = 1   \ny = 2\t"

	got := Clean(text)
	if got != "x = 1\ny = 2" {
		t.Errorf("Expected right-trimmed lines, got %q", got)
	}
}

func TestClean_StripsTrailingBlankLines(t *testing.T) {
	text := "x = 1\n\n\n"

	got := Clean(text)
	if got != "x = 1" {
		t.Errorf("Expected trailing blanks stripped, got %q", got)
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"```python\nx = 1\n```",
		"a\n\n\n\n\nb\n\n",
		"   \n\n```\ncode\n```\n\n\n",
		"",
		"plain text",
	}

	for _, input := range inputs {
		once := Clean(input)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestClean_NeverMoreThanTwoBlankLines(t *testing.T) {
	got := Clean("a\n\n\n\n\n\n\n\nb\n\n\n\nc")

	maxRun, run := 0, 0
	for _, line := range strings.Split(got, "\n") {
		if line == "" {
			run++
			if run > maxRun {
				maxRun = run
			}
		} else {
			run = 0
		}
	}
	if maxRun > 2 {
		t.Errorf("Found %d consecutive blank lines, expected at most 2", maxRun)
	}
}
