package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"

	"quiz-platform/internal/domain"
	"quiz-platform/internal/scoring"
	"quiz-platform/internal/task"
)

// ResultSender delivers the scored outcome to the player out-of-band.
type ResultSender interface {
	SendResult(to, quizTitle string, score, total int, percentage float64) error
}

// ResultPush is the field contract of the internal ingestion endpoint.
type ResultPush struct {
	UserEmail      string  `json:"user_email"`
	QuizID         string  `json:"quiz_id"`
	QuizTitle      string  `json:"quiz_title"`
	Score          int     `json:"score"`
	TotalQuestions int     `json:"total_questions"`
	Percentage     float64 `json:"percentage"`
	TimeSpent      *int    `json:"time_spent,omitempty"`
}

// ResultPusher hands a computed result to the user service.
type ResultPusher interface {
	PushResult(ctx context.Context, push ResultPush) error
}

// Coordinator accepts quiz submissions, answers immediately, and scores in
// a detached task.
type Coordinator struct {
	quizzes     QuizStore
	runner      *task.Runner
	mail        ResultSender
	bridge      ResultPusher
	pushTimeout time.Duration
	validate    *validator.Validate
}

func NewCoordinator(quizzes QuizStore, runner *task.Runner, mail ResultSender, bridge ResultPusher, pushTimeout time.Duration) *Coordinator {
	if pushTimeout <= 0 {
		pushTimeout = 5 * time.Second
	}
	return &Coordinator{
		quizzes:     quizzes,
		runner:      runner,
		mail:        mail,
		bridge:      bridge,
		pushTimeout: pushTimeout,
		validate:    validator.New(),
	}
}

// SubmitRequest is a player's answer sheet for one quiz.
type SubmitRequest struct {
	UserEmail string          `json:"user_email" validate:"required,email"`
	Answers   []domain.Answer `json:"answers" validate:"required"`
	TimeSpent *int            `json:"time_spent"`
}

// Submit validates the submission against the quiz, then detaches the
// scoring pipeline and returns. The caller only learns that the submission
// was accepted; the score arrives by email and through the result history.
// Validation and not-found failures surface here, before any task spawns.
func (c *Coordinator) Submit(ctx context.Context, quizID string, req SubmitRequest) error {
	quiz, err := c.quizzes.Get(ctx, quizID)
	if err != nil {
		return err
	}

	if err := c.validateSubmission(quiz, req); err != nil {
		return err
	}

	// Deep copies only: the task runs after this request's resources are
	// torn down.
	snapshot := quiz.Clone()
	submission := domain.Submission{
		QuizID:    quiz.ID,
		UserEmail: req.UserEmail,
		Answers:   cloneAnswers(req.Answers),
		TimeSpent: cloneIntPtr(req.TimeSpent),
	}

	return c.runner.Go("score quiz "+quiz.ID, func(ctx context.Context) {
		c.scoreAndNotify(ctx, snapshot, submission)
	})
}

func (c *Coordinator) validateSubmission(quiz domain.Quiz, req SubmitRequest) error {
	if err := c.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if req.TimeSpent != nil && *req.TimeSpent < 0 {
		return fmt.Errorf("%w: time_spent cannot be negative", domain.ErrValidation)
	}

	seen := make(map[int]struct{}, len(req.Answers))
	for i, answer := range req.Answers {
		if answer.QuestionIndex < 0 || answer.QuestionIndex >= len(quiz.Questions) {
			return fmt.Errorf("%w: answer %d: question_index %d out of range", domain.ErrValidation, i+1, answer.QuestionIndex)
		}
		if _, dup := seen[answer.QuestionIndex]; dup {
			return fmt.Errorf("%w: answer %d: duplicate question_index %d", domain.ErrValidation, i+1, answer.QuestionIndex)
		}
		seen[answer.QuestionIndex] = struct{}{}
	}
	return nil
}

// scoreAndNotify runs inside the detached task. Email and result push are
// independent best-effort steps: a failure in either is logged and must not
// stop the other or escape the task.
func (c *Coordinator) scoreAndNotify(ctx context.Context, quiz domain.Quiz, submission domain.Submission) {
	summary := scoring.Score(quiz, submission.Answers)
	percentage := summary.RoundedPercentage()

	if err := c.mail.SendResult(submission.UserEmail, quiz.Title, summary.AchievedPoints, summary.TotalPoints, percentage); err != nil {
		log.Printf("send result email for quiz %s to %s: %v", quiz.ID, submission.UserEmail, err)
	}

	pushCtx, cancel := context.WithTimeout(ctx, c.pushTimeout)
	defer cancel()
	push := ResultPush{
		UserEmail:      submission.UserEmail,
		QuizID:         quiz.ID,
		QuizTitle:      quiz.Title,
		Score:          summary.AchievedPoints,
		TotalQuestions: len(quiz.Questions),
		Percentage:     percentage,
		TimeSpent:      submission.TimeSpent,
	}
	if err := c.bridge.PushResult(pushCtx, push); err != nil {
		log.Printf("push result for quiz %s to user service: %v", quiz.ID, err)
	}
}

func cloneAnswers(answers []domain.Answer) []domain.Answer {
	out := make([]domain.Answer, len(answers))
	for i, answer := range answers {
		cp := answer
		cp.Selected = append([]string(nil), answer.Selected...)
		out[i] = cp
	}
	return out
}

func cloneIntPtr(v *int) *int {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}
