package domain

import "time"

// QuizStatus is the review lifecycle state of a quiz.
type QuizStatus string

const (
	StatusPending  QuizStatus = "PENDING"
	StatusApproved QuizStatus = "APPROVED"
	StatusRejected QuizStatus = "REJECTED"
)

// Question is a multiple-choice question; one or more options may be correct.
type Question struct {
	Text           string   `json:"text"`
	Options        []string `json:"options"`
	CorrectAnswers []string `json:"correct_answers,omitempty"`
	Points         int      `json:"points"`
}

// Quiz is a document-store entity; questions are embedded and ordered.
type Quiz struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	AuthorID        int64      `json:"author_id"`
	Duration        int        `json:"duration"` // seconds
	Status          QuizStatus `json:"status"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	Questions       []Question `json:"questions"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Clone returns a deep copy safe to hand to a background task after the
// originating request has completed.
func (q Quiz) Clone() Quiz {
	out := q
	out.Questions = make([]Question, len(q.Questions))
	for i, question := range q.Questions {
		cp := question
		cp.Options = append([]string(nil), question.Options...)
		cp.CorrectAnswers = append([]string(nil), question.CorrectAnswers...)
		out.Questions[i] = cp
	}
	return out
}

// Sanitized returns a copy with every correct-answer set stripped, for
// callers who are neither the author nor a reviewer.
func (q Quiz) Sanitized() Quiz {
	out := q.Clone()
	for i := range out.Questions {
		out.Questions[i].CorrectAnswers = nil
	}
	return out
}

// TotalPoints sums every question's point value, answered or not.
func (q Quiz) TotalPoints() int {
	total := 0
	for _, question := range q.Questions {
		total += question.Points
	}
	return total
}

// Answer pairs a question index with the options a player selected.
type Answer struct {
	QuestionIndex int      `json:"question_index"`
	Selected      []string `json:"selected"`
}

// Submission is ephemeral: it exists only for one scoring computation and
// is never persisted as an entity.
type Submission struct {
	QuizID    string
	UserEmail string
	Answers   []Answer
	TimeSpent *int // seconds, optional
}

// Result is owned by the user-records store; created exactly once per
// completed scoring run and immutable afterwards.
type Result struct {
	ID             string    `json:"id"`
	UserID         int64     `json:"user_id"`
	UserEmail      string    `json:"user_email"`
	QuizID         string    `json:"quiz_id"` // opaque external identifier
	QuizTitle      string    `json:"quiz_title"`
	Score          int       `json:"score"` // achieved points
	TotalQuestions int       `json:"total_questions"`
	Percentage     float64   `json:"percentage"`
	TimeSpent      *int      `json:"time_spent,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// LeaderboardEntry is one row of the per-quiz standings.
type LeaderboardEntry struct {
	UserEmail string `json:"user_email"`
	Score     int    `json:"score"`
	TimeSpent *int   `json:"time_spent,omitempty"`
}

// User lives in the relational store.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Roles recognised by the platform.
const (
	RoleAdmin     = "ADMIN"
	RoleModerator = "MODERATOR"
	RolePlayer    = "PLAYER"
)
