package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quiz-platform/internal/app"
)

func TestPushResultCarriesTokenAndFields(t *testing.T) {
	var gotToken string
	var gotBody app.ResultPush
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/internal/results" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		gotToken = r.Header.Get("X-Internal-Token")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewBridgeClient(server.URL, "secret", time.Second)
	spent := 42
	err := client.PushResult(context.Background(), app.ResultPush{
		UserEmail:      "player@example.com",
		QuizID:         "quiz-1",
		QuizTitle:      "Capitals",
		Score:          5,
		TotalQuestions: 2,
		Percentage:     50,
		TimeSpent:      &spent,
	})
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	if gotToken != "secret" {
		t.Fatalf("expected token header, got %q", gotToken)
	}
	if gotBody.QuizID != "quiz-1" || gotBody.Score != 5 || gotBody.TimeSpent == nil || *gotBody.TimeSpent != 42 {
		t.Fatalf("unexpected body %+v", gotBody)
	}
}

func TestPushResultSurfacesRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewBridgeClient(server.URL, "wrong", time.Second)
	if err := client.PushResult(context.Background(), app.ResultPush{}); err == nil {
		t.Fatal("expected error on rejected push")
	}
}

func TestNotifyQuizPending(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/internal/quizzes/pending" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
	}))
	defer server.Close()

	client := NewBridgeClient(server.URL, "secret", time.Second)
	if err := client.NotifyQuizPending(context.Background(), "quiz-1", "Capitals"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if got["quiz_id"] != "quiz-1" || got["title"] != "Capitals" {
		t.Fatalf("unexpected payload %v", got)
	}
}
