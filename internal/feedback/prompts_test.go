package feedback

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func sampleTranscript() Transcript {
	return Transcript{
		Subject:        "mathematics",
		TopicName:      "Algebra",
		SubtopicName:   "Linear equations",
		TotalQuestions: 3,
		CorrectAnswers: 2,
		Score:          67,
		TimeSpent:      180,
		Items: []TranscriptItem{
			{Prompt: "Solve 2x + 3 = 7", UserAnswer: "a", CorrectAnswer: "a", IsCorrect: true, TimeSpent: 45, Difficulty: 2},
			{Prompt: "Solve 5x - 1 = 14", UserAnswer: "c", CorrectAnswer: "b", IsCorrect: false, TimeSpent: 80, Difficulty: 3},
			{Prompt: "Solve x/4 = 6", UserAnswer: "d", CorrectAnswer: "d", IsCorrect: true, TimeSpent: 55, Difficulty: 1},
		},
	}
}

func TestFeedbackSystemPrompt(t *testing.T) {
	prompt := FeedbackSystemPrompt()

	required := []string{"tutor", "3-5 sentences", "suggestion"}
	for _, keyword := range required {
		if !strings.Contains(prompt, keyword) {
			t.Errorf("system prompt missing keyword %q", keyword)
		}
	}
}

func TestBuildFeedbackUserPrompt(t *testing.T) {
	prompt := BuildFeedbackUserPrompt(sampleTranscript())

	required := []string{"mathematics", "Algebra", "Linear equations", "2 of 3", "Solve 2x + 3 = 7", "incorrect"}
	for _, keyword := range required {
		if !strings.Contains(prompt, keyword) {
			t.Errorf("user prompt missing %q", keyword)
		}
	}

	// Wrong answers carry both the given and the correct option
	if !strings.Contains(prompt, `answered "c", correct was "b"`) {
		t.Error("user prompt should spell out the wrong answer")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short, 10) = %q", got)
	}
	long := strings.Repeat("x", 200)
	got := truncate(long, 160)
	if len(got) <= 160 {
		// 160 chars plus the ellipsis
		t.Errorf("truncated length = %d, want 160 + ellipsis", len(got))
	}
	if !strings.HasSuffix(got, "…") {
		t.Error("truncated prompt should end with an ellipsis")
	}
}

func TestTruncateRuneBoundary(t *testing.T) {
	// "é" is 2 bytes; a 5-byte cut lands mid-rune and must back off
	got := truncate(strings.Repeat("é", 100), 5)
	if !utf8.ValidString(got) {
		t.Errorf("truncate produced invalid UTF-8: %q", got)
	}
	if got != "éé…" {
		t.Errorf("truncate = %q, want %q", got, "éé…")
	}
}
