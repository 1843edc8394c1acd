// Package scoring evaluates a quiz submission against the quiz definition.
// It is pure: no I/O, no clocks, identical output for identical input.
package scoring

import (
	"math"
	"strings"

	"quiz-platform/internal/domain"
)

// Summary is the outcome of scoring one submission.
type Summary struct {
	AchievedPoints int
	CorrectCount   int
	TotalPoints    int
	Percentage     float64 // unrounded; round at the reporting boundary
}

// RoundedPercentage returns the percentage rounded to two decimal places.
func (s Summary) RoundedPercentage() float64 {
	return math.Round(s.Percentage*100) / 100
}

// Score grades answers against the quiz. Scoring is all-or-nothing per
// question: the selected set must equal the correct set exactly (after
// whitespace trimming); partial overlap awards zero. Unanswered questions
// score zero but still count toward the total.
func Score(quiz domain.Quiz, answers []domain.Answer) Summary {
	byIndex := make(map[int][]string, len(answers))
	for _, answer := range answers {
		byIndex[answer.QuestionIndex] = answer.Selected
	}

	summary := Summary{}
	for i, question := range quiz.Questions {
		summary.TotalPoints += question.Points
		selected, ok := byIndex[i]
		if !ok {
			continue
		}
		if setsEqual(selected, question.CorrectAnswers) {
			summary.AchievedPoints += question.Points
			summary.CorrectCount++
		}
	}

	if summary.TotalPoints > 0 {
		summary.Percentage = float64(summary.AchievedPoints) / float64(summary.TotalPoints) * 100
	}
	return summary
}

// setsEqual compares two answer lists as sets of trimmed strings.
func setsEqual(selected, correct []string) bool {
	if len(correct) == 0 {
		return false
	}
	want := make(map[string]struct{}, len(correct))
	for _, answer := range correct {
		want[strings.TrimSpace(answer)] = struct{}{}
	}
	got := make(map[string]struct{}, len(selected))
	for _, answer := range selected {
		got[strings.TrimSpace(answer)] = struct{}{}
	}
	if len(got) != len(want) {
		return false
	}
	for answer := range got {
		if _, ok := want[answer]; !ok {
			return false
		}
	}
	return true
}
