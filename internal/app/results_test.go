package app_test

import (
	"context"
	"errors"
	"testing"

	"quiz-platform/internal/app"
	"quiz-platform/internal/domain"
	"quiz-platform/internal/infra/memory"
)

const testToken = "internal-secret"

func newResultService(t *testing.T) (*app.ResultService, *memory.UserStore, *memory.ResultStore, *app.Hub) {
	t.Helper()
	users := memory.NewUserStore()
	results := memory.NewResultStore()
	hub := app.NewHub()
	service := app.NewResultService(users, results, testToken, hub)

	if _, err := users.Create(context.Background(), domain.User{Email: "player@example.com", Role: domain.RolePlayer}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return service, users, results, hub
}

func intPtr(v int) *int         { return &v }
func floatPtr(v float64) *float64 { return &v }

func validIngest() app.IngestRequest {
	return app.IngestRequest{
		UserEmail:      "player@example.com",
		QuizID:         "quiz-1",
		QuizTitle:      "Capitals",
		Score:          intPtr(5),
		TotalQuestions: intPtr(2),
		Percentage:     floatPtr(50.0),
		TimeSpent:      intPtr(42),
	}
}

func TestIngestStoresResult(t *testing.T) {
	ctx := context.Background()
	service, _, results, _ := newResultService(t)

	created, err := service.Ingest(ctx, testToken, validIngest())
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if created.ID == "" || created.UserID == 0 {
		t.Fatalf("expected identifiers assigned, got %+v", created)
	}
	if created.Percentage != 50.0 || created.Score != 5 {
		t.Fatalf("unexpected result %+v", created)
	}

	history, err := results.HistoryByUser(ctx, created.UserID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected one stored result, got %d", len(history))
	}
}

func TestIngestRejectsWrongToken(t *testing.T) {
	ctx := context.Background()
	service, _, results, _ := newResultService(t)

	for _, token := range []string{"", "wrong-token"} {
		if _, err := service.Ingest(ctx, token, validIngest()); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("token %q: expected ErrUnauthorized, got %v", token, err)
		}
	}

	history, _ := results.HistoryByUser(ctx, 1)
	if len(history) != 0 {
		t.Fatal("rejected ingest must not write a result")
	}
}

func TestIngestRejectsUnknownUser(t *testing.T) {
	service, _, _, _ := newResultService(t)
	req := validIngest()
	req.UserEmail = "ghost@example.com"

	if _, err := service.Ingest(context.Background(), testToken, req); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestIngestFieldValidation(t *testing.T) {
	service, _, _, _ := newResultService(t)
	ctx := context.Background()

	mutations := []struct {
		name   string
		mutate func(*app.IngestRequest)
	}{
		{"missing email", func(r *app.IngestRequest) { r.UserEmail = "" }},
		{"bad email", func(r *app.IngestRequest) { r.UserEmail = "not-an-email" }},
		{"missing quiz id", func(r *app.IngestRequest) { r.QuizID = "" }},
		{"missing title", func(r *app.IngestRequest) { r.QuizTitle = "" }},
		{"missing score", func(r *app.IngestRequest) { r.Score = nil }},
		{"negative score", func(r *app.IngestRequest) { r.Score = intPtr(-1) }},
		{"zero total", func(r *app.IngestRequest) { r.TotalQuestions = intPtr(0) }},
		{"missing percentage", func(r *app.IngestRequest) { r.Percentage = nil }},
		{"percentage over 100", func(r *app.IngestRequest) { r.Percentage = floatPtr(100.5) }},
		{"negative time", func(r *app.IngestRequest) { r.TimeSpent = intPtr(-3) }},
	}
	for _, tc := range mutations {
		req := validIngest()
		tc.mutate(&req)
		if _, err := service.Ingest(ctx, testToken, req); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", tc.name, err)
		}
	}
}

func TestIngestPublishesEvent(t *testing.T) {
	service, _, _, hub := newResultService(t)
	events, cancel := hub.Subscribe()
	defer cancel()

	if _, err := service.Ingest(context.Background(), testToken, validIngest()); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	event := <-events
	if event.Type != app.EventResultRecorded || event.UserEmail != "player@example.com" {
		t.Fatalf("unexpected event %+v", event)
	}
}

func TestHistoryUnknownUser(t *testing.T) {
	service, _, _, _ := newResultService(t)
	if _, err := service.History(context.Background(), "ghost@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestQuizPendingRequiresToken(t *testing.T) {
	service, _, _, hub := newResultService(t)
	events, cancel := hub.Subscribe()
	defer cancel()

	if err := service.QuizPending("bad", "quiz-1", "Capitals"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	if err := service.QuizPending(testToken, "quiz-1", "Capitals"); err != nil {
		t.Fatalf("quiz pending: %v", err)
	}
	event := <-events
	if event.Type != app.EventQuizPending || event.QuizID != "quiz-1" {
		t.Fatalf("unexpected event %+v", event)
	}
}
