package scoring

import (
	"testing"

	"quiz-platform/internal/domain"
)

func twoQuestionQuiz() domain.Quiz {
	return domain.Quiz{
		ID:    "quiz-1",
		Title: "Capitals",
		Questions: []domain.Question{
			{
				Text:           "Capital of France?",
				Options:        []string{"Paris", "Lyon"},
				CorrectAnswers: []string{"Paris"},
				Points:         5,
			},
			{
				Text:           "Which are primary colors?",
				Options:        []string{"Red", "Blue", "Green"},
				CorrectAnswers: []string{"Red", "Blue"},
				Points:         5,
			},
		},
	}
}

func TestScoreEndToEnd(t *testing.T) {
	quiz := twoQuestionQuiz()
	answers := []domain.Answer{
		{QuestionIndex: 0, Selected: []string{"Paris"}},
		{QuestionIndex: 1, Selected: []string{"Red", "Green"}},
	}

	got := Score(quiz, answers)
	if got.AchievedPoints != 5 || got.TotalPoints != 10 {
		t.Fatalf("expected 5/10 points, got %d/%d", got.AchievedPoints, got.TotalPoints)
	}
	if got.CorrectCount != 1 {
		t.Fatalf("expected 1 correct question, got %d", got.CorrectCount)
	}
	if got.Percentage != 50.0 {
		t.Fatalf("expected 50.0 percent, got %v", got.Percentage)
	}
}

func TestScoreAllOrNothing(t *testing.T) {
	quiz := twoQuestionQuiz()

	cases := []struct {
		name     string
		selected []string
		want     int
	}{
		{"exact set", []string{"Blue", "Red"}, 5},
		{"exact set with whitespace", []string{" Red ", "Blue "}, 5},
		{"strict subset", []string{"Red"}, 0},
		{"strict superset", []string{"Red", "Blue", "Green"}, 0},
		{"disjoint", []string{"Green"}, 0},
		{"empty selection", nil, 0},
	}
	for _, tc := range cases {
		answers := []domain.Answer{{QuestionIndex: 1, Selected: tc.selected}}
		got := Score(quiz, answers)
		if got.AchievedPoints != tc.want {
			t.Fatalf("%s: expected %d points, got %d", tc.name, tc.want, got.AchievedPoints)
		}
	}
}

func TestScoreUnansweredCountsTowardTotal(t *testing.T) {
	quiz := twoQuestionQuiz()
	got := Score(quiz, nil)
	if got.TotalPoints != 10 {
		t.Fatalf("expected total 10 with no answers, got %d", got.TotalPoints)
	}
	if got.AchievedPoints != 0 || got.Percentage != 0 {
		t.Fatalf("expected zero score, got %+v", got)
	}
}

func TestScoreZeroTotalPoints(t *testing.T) {
	got := Score(domain.Quiz{ID: "empty"}, []domain.Answer{{QuestionIndex: 0, Selected: []string{"x"}}})
	if got.Percentage != 0 {
		t.Fatalf("expected percentage 0 for empty quiz, got %v", got.Percentage)
	}
}

func TestScoreIdempotent(t *testing.T) {
	quiz := twoQuestionQuiz()
	answers := []domain.Answer{{QuestionIndex: 0, Selected: []string{"Paris"}}}

	first := Score(quiz, answers)
	second := Score(quiz, answers)
	if first != second {
		t.Fatalf("expected identical summaries, got %+v then %+v", first, second)
	}
}

func TestRoundedPercentage(t *testing.T) {
	quiz := domain.Quiz{
		Questions: []domain.Question{
			{Options: []string{"a", "b"}, CorrectAnswers: []string{"a"}, Points: 1},
			{Options: []string{"a", "b"}, CorrectAnswers: []string{"a"}, Points: 1},
			{Options: []string{"a", "b"}, CorrectAnswers: []string{"a"}, Points: 1},
		},
	}
	got := Score(quiz, []domain.Answer{{QuestionIndex: 0, Selected: []string{"a"}}})
	if got.RoundedPercentage() != 33.33 {
		t.Fatalf("expected 33.33, got %v", got.RoundedPercentage())
	}
}
