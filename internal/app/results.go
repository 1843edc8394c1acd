package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"quiz-platform/internal/domain"
)

// ResultStore holds immutable quiz results.
type ResultStore interface {
	Create(ctx context.Context, result domain.Result) error
	HistoryByUser(ctx context.Context, userID int64) ([]domain.Result, error)
	Leaderboard(ctx context.Context, quizID string) ([]domain.LeaderboardEntry, error)
}

// UserStore holds user records.
type UserStore interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// ResultService is the user-service side of the result bridge: it ingests
// pushed results and serves history and leaderboard reads.
type ResultService struct {
	users    UserStore
	results  ResultStore
	token    string
	events   *Hub
	validate *validator.Validate
	now      func() time.Time
}

func NewResultService(users UserStore, results ResultStore, token string, events *Hub) *ResultService {
	return &ResultService{
		users:    users,
		results:  results,
		token:    token,
		events:   events,
		validate: validator.New(),
		now:      time.Now,
	}
}

// IngestRequest mirrors ResultPush on the receiving side. Numeric fields
// are pointers so a missing field is distinguishable from zero.
type IngestRequest struct {
	UserEmail      string   `json:"user_email" validate:"required,email"`
	QuizID         string   `json:"quiz_id" validate:"required"`
	QuizTitle      string   `json:"quiz_title" validate:"required"`
	Score          *int     `json:"score" validate:"required"`
	TotalQuestions *int     `json:"total_questions" validate:"required"`
	Percentage     *float64 `json:"percentage" validate:"required"`
	TimeSpent      *int     `json:"time_spent"`
}

// Ingest stores a pushed result after checking the shared internal token.
// Wrong or missing token, malformed fields, or an unknown user all reject
// with no partial write.
func (s *ResultService) Ingest(ctx context.Context, token string, req IngestRequest) (domain.Result, error) {
	if s.token == "" || token != s.token {
		return domain.Result{}, domain.ErrUnauthorized
	}
	if err := s.validate.Struct(req); err != nil {
		return domain.Result{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if *req.Score < 0 {
		return domain.Result{}, fmt.Errorf("%w: score cannot be negative", domain.ErrValidation)
	}
	if *req.TotalQuestions <= 0 {
		return domain.Result{}, fmt.Errorf("%w: total_questions must be positive", domain.ErrValidation)
	}
	if *req.Percentage < 0 || *req.Percentage > 100 {
		return domain.Result{}, fmt.Errorf("%w: percentage must be between 0 and 100", domain.ErrValidation)
	}
	if req.TimeSpent != nil && *req.TimeSpent < 0 {
		return domain.Result{}, fmt.Errorf("%w: time_spent cannot be negative", domain.ErrValidation)
	}

	user, err := s.users.GetByEmail(ctx, req.UserEmail)
	if err != nil {
		return domain.Result{}, err
	}

	result := domain.Result{
		ID:             uuid.NewString(),
		UserID:         user.ID,
		UserEmail:      user.Email,
		QuizID:         req.QuizID,
		QuizTitle:      req.QuizTitle,
		Score:          *req.Score,
		TotalQuestions: *req.TotalQuestions,
		Percentage:     *req.Percentage,
		TimeSpent:      req.TimeSpent,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.results.Create(ctx, result); err != nil {
		return domain.Result{}, fmt.Errorf("store result: %w", err)
	}

	if s.events != nil {
		s.events.Publish(Event{
			Type:      EventResultRecorded,
			QuizID:    result.QuizID,
			QuizTitle: result.QuizTitle,
			UserEmail: result.UserEmail,
			Message:   fmt.Sprintf("%s scored %d on %q", result.UserEmail, result.Score, result.QuizTitle),
		})
	}
	return result, nil
}

// History returns the user's results, newest first.
func (s *ResultService) History(ctx context.Context, email string) ([]domain.Result, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.results.HistoryByUser(ctx, user.ID)
}

// Leaderboard returns per-quiz standings: score descending, time spent
// ascending, missing time spent last.
func (s *ResultService) Leaderboard(ctx context.Context, quizID string) ([]domain.LeaderboardEntry, error) {
	if quizID == "" {
		return nil, fmt.Errorf("%w: quiz_id is required", domain.ErrValidation)
	}
	return s.results.Leaderboard(ctx, quizID)
}

// QuizPending records an internal notification from the quiz service and
// broadcasts it to admin subscribers.
func (s *ResultService) QuizPending(token, quizID, title string) error {
	if s.token == "" || token != s.token {
		return domain.ErrUnauthorized
	}
	if quizID == "" || title == "" {
		return fmt.Errorf("%w: quiz_id and title are required", domain.ErrValidation)
	}
	if s.events != nil {
		s.events.Publish(Event{
			Type:      EventQuizPending,
			QuizID:    quizID,
			QuizTitle: title,
			Message:   fmt.Sprintf("new quiz %q awaiting approval", title),
		})
	}
	return nil
}
