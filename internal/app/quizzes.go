package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"quiz-platform/internal/domain"
)

// QuizStore abstracts the quiz document store (in-memory, postgres JSONB,
// redis-cached, etc).
type QuizStore interface {
	Create(ctx context.Context, quiz domain.Quiz) error
	Get(ctx context.Context, id string) (domain.Quiz, error)
	List(ctx context.Context) ([]domain.Quiz, error)
	UpdateStatus(ctx context.Context, id string, status domain.QuizStatus, reason string) error
	Delete(ctx context.Context, id string) error
}

// AdminNotifier tells the user service a quiz is waiting for review.
type AdminNotifier interface {
	NotifyQuizPending(ctx context.Context, quizID, title string) error
}

// QuizService contains the quiz lifecycle use cases.
type QuizService struct {
	store    QuizStore
	notifier AdminNotifier
	validate *validator.Validate
	now      func() time.Time
}

func NewQuizService(store QuizStore, notifier AdminNotifier) *QuizService {
	return &QuizService{
		store:    store,
		notifier: notifier,
		validate: validator.New(),
		now:      time.Now,
	}
}

// QuestionInput is one question in a quiz creation request.
type QuestionInput struct {
	Text           string   `json:"text" validate:"required,min=3,max=1000"`
	Options        []string `json:"options" validate:"required,min=2,max=10,dive,required,max=500"`
	CorrectAnswers []string `json:"correct_answers" validate:"required,min=1"`
	Points         int      `json:"points" validate:"required,min=1,max=100"`
}

// CreateQuizRequest carries a new quiz submitted by a moderator.
type CreateQuizRequest struct {
	Title     string          `json:"title" validate:"required,min=3,max=200"`
	AuthorID  int64           `json:"author_id" validate:"required,gt=0"`
	Duration  int             `json:"duration" validate:"required,min=10,max=7200"`
	Questions []QuestionInput `json:"questions" validate:"required,min=1,max=100,dive"`
}

// CreateQuiz validates and persists a new quiz in PENDING status, then
// notifies the user service best-effort so admins see it for review.
func (s *QuizService) CreateQuiz(ctx context.Context, req CreateQuizRequest) (domain.Quiz, error) {
	if err := s.validate.Struct(req); err != nil {
		return domain.Quiz{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	questions := make([]domain.Question, len(req.Questions))
	for i, input := range req.Questions {
		question, err := buildQuestion(input, i)
		if err != nil {
			return domain.Quiz{}, err
		}
		questions[i] = question
	}

	quiz := domain.Quiz{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(req.Title),
		AuthorID:  req.AuthorID,
		Duration:  req.Duration,
		Status:    domain.StatusPending,
		Questions: questions,
		CreatedAt: s.now().UTC(),
	}

	if err := s.store.Create(ctx, quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("create quiz: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyQuizPending(ctx, quiz.ID, quiz.Title); err != nil {
			log.Printf("notify admin about quiz %s: %v", quiz.ID, err)
		}
	}
	return quiz, nil
}

// buildQuestion enforces the rules struct tags cannot express: options are
// unique case-insensitively after trimming, and every correct answer is one
// of the options.
func buildQuestion(input QuestionInput, index int) (domain.Question, error) {
	options := make([]string, 0, len(input.Options))
	seen := make(map[string]struct{}, len(input.Options))
	for _, option := range input.Options {
		option = strings.TrimSpace(option)
		if option == "" {
			return domain.Question{}, fmt.Errorf("%w: question %d: empty option", domain.ErrValidation, index+1)
		}
		key := strings.ToLower(option)
		if _, dup := seen[key]; dup {
			return domain.Question{}, fmt.Errorf("%w: question %d: duplicate option %q", domain.ErrValidation, index+1, option)
		}
		seen[key] = struct{}{}
		options = append(options, option)
	}

	correct := make([]string, 0, len(input.CorrectAnswers))
	for _, answer := range input.CorrectAnswers {
		answer = strings.TrimSpace(answer)
		if answer == "" {
			continue
		}
		if _, ok := seen[strings.ToLower(answer)]; !ok {
			return domain.Question{}, fmt.Errorf("%w: question %d: correct answer %q is not an option", domain.ErrValidation, index+1, answer)
		}
		correct = append(correct, answer)
	}
	if len(correct) == 0 {
		return domain.Question{}, fmt.Errorf("%w: question %d: at least one correct answer is required", domain.ErrValidation, index+1)
	}

	return domain.Question{
		Text:           strings.TrimSpace(input.Text),
		Options:        options,
		CorrectAnswers: correct,
		Points:         input.Points,
	}, nil
}

// ReviewRequest approves or rejects a pending quiz.
type ReviewRequest struct {
	Status          string `json:"status" validate:"required"`
	RejectionReason string `json:"rejection_reason"`
}

// Review transitions a quiz to APPROVED or REJECTED. Rejection requires a
// reason of 5-500 characters.
func (s *QuizService) Review(ctx context.Context, quizID string, req ReviewRequest) error {
	status := domain.QuizStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if status != domain.StatusApproved && status != domain.StatusRejected {
		return fmt.Errorf("%w: status must be APPROVED or REJECTED", domain.ErrValidation)
	}

	reason := ""
	if status == domain.StatusRejected {
		reason = strings.TrimSpace(req.RejectionReason)
		if len(reason) < 5 || len(reason) > 500 {
			return fmt.Errorf("%w: rejection reason must be 5-500 characters", domain.ErrValidation)
		}
	}
	return s.store.UpdateStatus(ctx, quizID, status, reason)
}

// Requester identifies the caller for visibility decisions.
type Requester struct {
	UserID int64
	Role   string
}

func (r Requester) canSeeAnswers(quiz domain.Quiz) bool {
	if r.Role == domain.RoleAdmin || r.Role == domain.RoleModerator {
		return true
	}
	return r.UserID != 0 && r.UserID == quiz.AuthorID
}

// GetQuiz returns a quiz, stripping correct answers unless the requester is
// the author or a reviewer.
func (s *QuizService) GetQuiz(ctx context.Context, quizID string, requester Requester) (domain.Quiz, error) {
	quiz, err := s.store.Get(ctx, quizID)
	if err != nil {
		return domain.Quiz{}, err
	}
	if !requester.canSeeAnswers(quiz) {
		return quiz.Sanitized(), nil
	}
	return quiz, nil
}

// ListQuizzes returns all quizzes with the same visibility rule applied
// per quiz.
func (s *QuizService) ListQuizzes(ctx context.Context, requester Requester) ([]domain.Quiz, error) {
	quizzes, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Quiz, len(quizzes))
	for i, quiz := range quizzes {
		if requester.canSeeAnswers(quiz) {
			out[i] = quiz
		} else {
			out[i] = quiz.Sanitized()
		}
	}
	return out, nil
}

// DeleteQuiz removes a quiz permanently.
func (s *QuizService) DeleteQuiz(ctx context.Context, quizID string) error {
	return s.store.Delete(ctx, quizID)
}
