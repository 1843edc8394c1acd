package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"quiz-platform/internal/domain"
)

type resultRow struct {
	bun.BaseModel `bun:"table:results,alias:r"`

	ID             string    `bun:"id,pk"`
	UserID         int64     `bun:"user_id,notnull"`
	UserEmail      string    `bun:"user_email,notnull"`
	QuizID         string    `bun:"quiz_id,notnull"`
	QuizTitle      string    `bun:"quiz_title,notnull"`
	Score          int       `bun:"score,notnull"`
	TotalQuestions int       `bun:"total_questions,notnull"`
	Percentage     float64   `bun:"percentage,notnull"`
	TimeSpent      *int      `bun:"time_spent"`
	CreatedAt      time.Time `bun:"created_at,notnull"`
}

func (r resultRow) toDomain() domain.Result {
	return domain.Result{
		ID:             r.ID,
		UserID:         r.UserID,
		UserEmail:      r.UserEmail,
		QuizID:         r.QuizID,
		QuizTitle:      r.QuizTitle,
		Score:          r.Score,
		TotalQuestions: r.TotalQuestions,
		Percentage:     r.Percentage,
		TimeSpent:      r.TimeSpent,
		CreatedAt:      r.CreatedAt,
	}
}

// ResultStore is the bun-backed implementation of app.ResultStore. Results
// are insert-only; there is no update path.
type ResultStore struct {
	db *bun.DB
}

func NewResultStore(db *bun.DB) *ResultStore {
	return &ResultStore{db: db}
}

func (s *ResultStore) Create(ctx context.Context, result domain.Result) error {
	row := &resultRow{
		ID:             result.ID,
		UserID:         result.UserID,
		UserEmail:      result.UserEmail,
		QuizID:         result.QuizID,
		QuizTitle:      result.QuizTitle,
		Score:          result.Score,
		TotalQuestions: result.TotalQuestions,
		Percentage:     result.Percentage,
		TimeSpent:      result.TimeSpent,
		CreatedAt:      result.CreatedAt,
	}
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

func (s *ResultStore) HistoryByUser(ctx context.Context, userID int64) ([]domain.Result, error) {
	var rows []resultRow
	err := s.db.NewSelect().Model(&rows).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select history: %w", err)
	}
	results := make([]domain.Result, len(rows))
	for i, row := range rows {
		results[i] = row.toDomain()
	}
	return results, nil
}

func (s *ResultStore) Leaderboard(ctx context.Context, quizID string) ([]domain.LeaderboardEntry, error) {
	var rows []resultRow
	err := s.db.NewSelect().Model(&rows).
		Where("quiz_id = ?", quizID).
		OrderExpr("score DESC").
		OrderExpr("time_spent ASC NULLS LAST").
		OrderExpr("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select leaderboard: %w", err)
	}
	entries := make([]domain.LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = domain.LeaderboardEntry{
			UserEmail: row.UserEmail,
			Score:     row.Score,
			TimeSpent: row.TimeSpent,
		}
	}
	return entries, nil
}
