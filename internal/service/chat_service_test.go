package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"trupilot-gateway/internal/constant"
	"trupilot-gateway/internal/dto"
	"trupilot-gateway/internal/pkg/serverutils"
	"trupilot-gateway/internal/repository/memory"
	"trupilot-gateway/pkg/assistant"
	"trupilot-gateway/pkg/store"
)

// nopLogger keeps service tests quiet; nothing asserts on log output.
type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func newChatFixture(t *testing.T, handler http.Handler, flowDelay time.Duration) (IChatService, *memory.SessionRepository) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	repo := memory.NewSessionRepository(time.Hour)
	client := assistant.New(srv.URL, 5*time.Second)
	return NewChatService(client, repo, nil, nopLogger{}, flowDelay), repo
}

func answerHandler(answer string, totalTokens int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req assistant.AskRequest
		json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(assistant.AskResponse{
			Answer: answer,
			Metadata: &assistant.Metadata{
				TokenUsage: &assistant.TokenUsage{TotalTokens: totalTokens},
			},
		})
	})
}

func TestCreateSessionShape(t *testing.T) {
	svc, repo := newChatFixture(t, answerHandler("ok", 1), 0)

	res, err := svc.CreateSession(context.Background())
	assert.NoError(t, err)
	assert.Regexp(t, `^user_[0-9a-z]{8}$`, res.SessionId)
	assert.Equal(t, constant.SuggestionChips, res.SuggestionChips)
	assert.Equal(t, len(constant.GuidedQuestions), res.GuidedQuestions)

	conv, found := repo.GetConversation(context.Background(), res.SessionId)
	assert.True(t, found)
	assert.Empty(t, conv.Snapshot())
}

func TestAskHappyPath(t *testing.T) {
	svc, _ := newChatFixture(t, answerHandler("MetLife is an insurer.", 42), 0)

	session, _ := svc.CreateSession(context.Background())
	res, err := svc.Ask(context.Background(), &dto.AskRequest{
		SessionId: session.SessionId,
		Query:     "What is MetLife?",
	})

	assert.NoError(t, err)
	assert.Equal(t, store.TurnSenderUser, res.Sent.Sender)
	assert.Equal(t, "What is MetLife?", res.Sent.Text)
	assert.Equal(t, store.TurnSenderBot, res.Reply.Sender)
	assert.Equal(t, "MetLife is an insurer.", res.Reply.Text)
	assert.Equal(t, 42, res.Stats.TotalTokens)
	assert.Equal(t, 42, res.Stats.HighestTokens)
	assert.Equal(t, 1, res.Stats.MetadataCount)
}

func TestAskUnknownSession(t *testing.T) {
	svc, _ := newChatFixture(t, answerHandler("ok", 1), 0)

	_, err := svc.Ask(context.Background(), &dto.AskRequest{
		SessionId: "user_missing1",
		Query:     "hello",
	})

	var appErr *serverutils.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestAskBlankQueryIsNoOp(t *testing.T) {
	calls := 0
	svc, repo := newChatFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}), 0)

	session, _ := svc.CreateSession(context.Background())
	_, err := svc.Ask(context.Background(), &dto.AskRequest{
		SessionId: session.SessionId,
		Query:     "   \t ",
	})

	var appErr *serverutils.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Zero(t, calls, "blank input must not reach the backend")

	conv, _ := repo.GetConversation(context.Background(), session.SessionId)
	assert.Empty(t, conv.Snapshot(), "blank input must not append a turn")
}

func TestAskFailureDegradesToBotTurn(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantText string
	}{
		{
			name:     "backend detail surfaces verbatim",
			status:   500,
			body:     `{"detail": "index is rebuilding"}`,
			wantText: "index is rebuilding",
		},
		{
			name:     "opaque failure falls back to generic message",
			status:   502,
			body:     "<html>bad gateway</html>",
			wantText: assistant.GenericFailureMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newChatFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}), 0)

			session, _ := svc.CreateSession(context.Background())
			res, err := svc.Ask(context.Background(), &dto.AskRequest{
				SessionId: session.SessionId,
				Query:     "What is MetLife?",
			})

			assert.NoError(t, err, "remote failure must not fail the turn")
			assert.Equal(t, store.TurnSenderBot, res.Reply.Sender)
			assert.Equal(t, tt.wantText, res.Reply.Text)
			assert.Nil(t, res.Reply.Metadata)
		})
	}
}

func TestHistoryPreservesOrder(t *testing.T) {
	svc, _ := newChatFixture(t, answerHandler("answer", 5), 0)

	session, _ := svc.CreateSession(context.Background())
	svc.Ask(context.Background(), &dto.AskRequest{SessionId: session.SessionId, Query: "one"})
	svc.Ask(context.Background(), &dto.AskRequest{SessionId: session.SessionId, Query: "two"})

	history, err := svc.GetHistory(context.Background(), session.SessionId)
	assert.NoError(t, err)
	assert.Len(t, history.Turns, 4)
	assert.Equal(t, "one", history.Turns[0].Text)
	assert.Equal(t, "answer", history.Turns[1].Text)
	assert.Equal(t, "two", history.Turns[2].Text)
	assert.Equal(t, store.StateIdle, history.State)
}

func TestGuidedFlowRunsQuestionsInOrder(t *testing.T) {
	var mu sync.Mutex
	var received []string
	done := make(chan struct{})

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req assistant.AskRequest
		json.NewDecoder(r.Body).Decode(&req)
		mu.Lock()
		received = append(received, req.Query)
		if len(received) == len(constant.GuidedQuestions) {
			close(done)
		}
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(assistant.AskResponse{Answer: "ok"})
	})

	svc, repo := newChatFixture(t, handler, time.Millisecond)
	session, _ := svc.CreateSession(context.Background())

	res, err := svc.StartGuidedFlow(context.Background(), &dto.StartFlowRequest{SessionId: session.SessionId})
	assert.NoError(t, err)
	assert.Equal(t, len(constant.GuidedQuestions), res.Questions)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("guided flow did not finish in time")
	}

	mu.Lock()
	assert.Equal(t, constant.GuidedQuestions, received)
	mu.Unlock()

	// The flag clears once the chain completes.
	assert.Eventually(t, func() bool {
		conv, _ := repo.GetConversation(context.Background(), session.SessionId)
		return !conv.IsFlowActive()
	}, 5*time.Second, 10*time.Millisecond)

	conv, _ := repo.GetConversation(context.Background(), session.SessionId)
	assert.Len(t, conv.Snapshot(), 2*len(constant.GuidedQuestions))
}

func TestManualAskRejectedDuringFlow(t *testing.T) {
	block := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(assistant.AskResponse{Answer: "ok"})
	})
	defer close(block)

	svc, _ := newChatFixture(t, handler, time.Millisecond)
	session, _ := svc.CreateSession(context.Background())

	_, err := svc.StartGuidedFlow(context.Background(), &dto.StartFlowRequest{SessionId: session.SessionId})
	assert.NoError(t, err)

	_, err = svc.Ask(context.Background(), &dto.AskRequest{
		SessionId: session.SessionId,
		Query:     "manual question",
	})
	var appErr *serverutils.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.Code)

	// A second flow on the same session is refused too.
	_, err = svc.StartGuidedFlow(context.Background(), &dto.StartFlowRequest{SessionId: session.SessionId})
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.Code)
}

func TestGetStatsMatchesTurnLog(t *testing.T) {
	svc, _ := newChatFixture(t, answerHandler("ok", 10), 0)

	session, _ := svc.CreateSession(context.Background())
	svc.Ask(context.Background(), &dto.AskRequest{SessionId: session.SessionId, Query: "q1"})
	svc.Ask(context.Background(), &dto.AskRequest{SessionId: session.SessionId, Query: "q2"})

	stats, err := svc.GetStats(context.Background(), session.SessionId)
	assert.NoError(t, err)
	assert.Equal(t, 20, stats.TotalTokens)
	assert.Equal(t, 10, stats.HighestTokens)
	assert.Equal(t, 2, stats.MetadataCount)
}
