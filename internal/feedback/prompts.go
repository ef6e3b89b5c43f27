package feedback

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Transcript is everything the prompt builder needs about a finished session.
type Transcript struct {
	Subject        string
	TopicName      string
	SubtopicName   string
	TotalQuestions int
	CorrectAnswers int
	Score          int
	TimeSpent      int
	Items          []TranscriptItem
}

// TranscriptItem is one answered question in prompt order.
type TranscriptItem struct {
	Prompt        string
	UserAnswer    string
	CorrectAnswer string
	IsCorrect     bool
	TimeSpent     int
	Difficulty    int
}

func FeedbackSystemPrompt() string {
	return `You are a supportive tutor reviewing a student's practice session.
Write a short narrative review (3-5 sentences) in plain prose, addressed directly to the student.
Mention what went well, the main pattern in the mistakes if there is one, and one concrete suggestion for the next session.
Do not repeat the raw numbers back verbatim, do not use bullet points, and do not mention that you are an AI.`
}

func BuildFeedbackUserPrompt(t Transcript) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Practice session in %s — topic %q, subtopic %q.\n", t.Subject, t.TopicName, t.SubtopicName)
	fmt.Fprintf(&b, "Result: %d of %d correct (score %d), %d seconds total.\n\n", t.CorrectAnswers, t.TotalQuestions, t.Score, t.TimeSpent)
	b.WriteString("Questions:\n")

	for i, item := range t.Items {
		verdict := "correct"
		if !item.IsCorrect {
			verdict = fmt.Sprintf("incorrect (answered %q, correct was %q)", item.UserAnswer, item.CorrectAnswer)
		}
		fmt.Fprintf(&b, "%d. [difficulty %d/5, %ds] %s — %s\n", i+1, item.Difficulty, item.TimeSpent, truncate(item.Prompt, 160), verdict)
	}

	b.WriteString("\nWrite the review now.")
	return b.String()
}

// truncate cuts s to at most max bytes, backing off to a rune boundary so
// the result is always valid UTF-8.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
