package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"quiz-platform/internal/app"
	"quiz-platform/internal/domain"
	"quiz-platform/internal/infra/memory"
)

type recordingNotifier struct {
	mu      sync.Mutex
	pending []string
	fail    bool
}

func (n *recordingNotifier) NotifyQuizPending(_ context.Context, quizID, title string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("user service unreachable")
	}
	n.pending = append(n.pending, quizID)
	return nil
}

func validCreate() app.CreateQuizRequest {
	return app.CreateQuizRequest{
		Title:    "Geography basics",
		AuthorID: 7,
		Duration: 300,
		Questions: []app.QuestionInput{
			{
				Text:           "Capital of France?",
				Options:        []string{"Paris", "Lyon"},
				CorrectAnswers: []string{"Paris"},
				Points:         5,
			},
		},
	}
}

func TestCreateQuizStartsPendingAndNotifies(t *testing.T) {
	ctx := context.Background()
	store := memory.NewQuizStore()
	notifier := &recordingNotifier{}
	service := app.NewQuizService(store, notifier)

	quiz, err := service.CreateQuiz(ctx, validCreate())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if quiz.ID == "" {
		t.Fatal("expected generated quiz id")
	}
	if quiz.Status != domain.StatusPending {
		t.Fatalf("expected PENDING, got %s", quiz.Status)
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.pending) != 1 || notifier.pending[0] != quiz.ID {
		t.Fatalf("expected admin notification for %s, got %v", quiz.ID, notifier.pending)
	}
}

func TestCreateQuizNotifierFailureIsNonFatal(t *testing.T) {
	service := app.NewQuizService(memory.NewQuizStore(), &recordingNotifier{fail: true})
	if _, err := service.CreateQuiz(context.Background(), validCreate()); err != nil {
		t.Fatalf("notifier failure must not fail creation: %v", err)
	}
}

func TestCreateQuizValidation(t *testing.T) {
	service := app.NewQuizService(memory.NewQuizStore(), nil)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*app.CreateQuizRequest)
	}{
		{"short title", func(r *app.CreateQuizRequest) { r.Title = "ab" }},
		{"duration too short", func(r *app.CreateQuizRequest) { r.Duration = 5 }},
		{"duration too long", func(r *app.CreateQuizRequest) { r.Duration = 8000 }},
		{"no questions", func(r *app.CreateQuizRequest) { r.Questions = nil }},
		{"single option", func(r *app.CreateQuizRequest) { r.Questions[0].Options = []string{"Paris"} }},
		{"duplicate options", func(r *app.CreateQuizRequest) { r.Questions[0].Options = []string{"Paris", "paris"} }},
		{"correct answer not an option", func(r *app.CreateQuizRequest) { r.Questions[0].CorrectAnswers = []string{"Berlin"} }},
		{"no correct answers", func(r *app.CreateQuizRequest) { r.Questions[0].CorrectAnswers = []string{"  "} }},
		{"zero points", func(r *app.CreateQuizRequest) { r.Questions[0].Points = 0 }},
		{"points over limit", func(r *app.CreateQuizRequest) { r.Questions[0].Points = 150 }},
	}
	for _, tc := range cases {
		req := validCreate()
		tc.mutate(&req)
		if _, err := service.CreateQuiz(ctx, req); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", tc.name, err)
		}
	}
}

func TestReviewTransitions(t *testing.T) {
	ctx := context.Background()
	store := memory.NewQuizStore()
	service := app.NewQuizService(store, nil)

	quiz, err := service.CreateQuiz(ctx, validCreate())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := service.Review(ctx, quiz.ID, app.ReviewRequest{Status: "approved"}); err != nil {
		t.Fatalf("approve: %v", err)
	}
	got, _ := store.Get(ctx, quiz.ID)
	if got.Status != domain.StatusApproved {
		t.Fatalf("expected APPROVED, got %s", got.Status)
	}

	if err := service.Review(ctx, quiz.ID, app.ReviewRequest{Status: "REJECTED"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("reject without reason must fail validation, got %v", err)
	}
	if err := service.Review(ctx, quiz.ID, app.ReviewRequest{Status: "REJECTED", RejectionReason: "questions are ambiguous"}); err != nil {
		t.Fatalf("reject: %v", err)
	}

	if err := service.Review(ctx, "missing", app.ReviewRequest{Status: "APPROVED"}); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
	if err := service.Review(ctx, quiz.ID, app.ReviewRequest{Status: "MAYBE"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad status, got %v", err)
	}
}

func TestGetQuizStripsAnswersForPlayers(t *testing.T) {
	ctx := context.Background()
	store := memory.NewQuizStore()
	service := app.NewQuizService(store, nil)

	quiz, err := service.CreateQuiz(ctx, validCreate())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	asPlayer, err := service.GetQuiz(ctx, quiz.ID, app.Requester{UserID: 99, Role: domain.RolePlayer})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if asPlayer.Questions[0].CorrectAnswers != nil {
		t.Fatal("players must not see correct answers")
	}

	asAuthor, _ := service.GetQuiz(ctx, quiz.ID, app.Requester{UserID: 7, Role: domain.RolePlayer})
	if len(asAuthor.Questions[0].CorrectAnswers) == 0 {
		t.Fatal("the author must see correct answers")
	}

	asAdmin, _ := service.GetQuiz(ctx, quiz.ID, app.Requester{Role: domain.RoleAdmin})
	if len(asAdmin.Questions[0].CorrectAnswers) == 0 {
		t.Fatal("admins must see correct answers")
	}
}
