package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"trupilot-gateway/internal/constant"
	"trupilot-gateway/internal/dto"
	"trupilot-gateway/internal/mapper"
	"trupilot-gateway/internal/pkg/logger"
	"trupilot-gateway/internal/pkg/serverutils"
	"trupilot-gateway/internal/repository/contract"
	"trupilot-gateway/pkg/assistant"
	"trupilot-gateway/pkg/events"
	"trupilot-gateway/pkg/store"
)

// IChatService owns the conversation protocol: session identity, the
// append-only turn log, and the guided smoke-test flow.
type IChatService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	Ask(ctx context.Context, request *dto.AskRequest) (*dto.AskResponse, error)
	GetHistory(ctx context.Context, sessionID string) (*dto.HistoryResponse, error)
	GetStats(ctx context.Context, sessionID string) (*dto.StatsDTO, error)
	StartGuidedFlow(ctx context.Context, request *dto.StartFlowRequest) (*dto.StartFlowResponse, error)
}

type chatService struct {
	client      *assistant.Client
	sessionRepo contract.ISessionRepository
	publisher   IPublisherService
	logger      logger.ILogger
	flowDelay   time.Duration
}

func NewChatService(
	client *assistant.Client,
	sessionRepo contract.ISessionRepository,
	publisher IPublisherService,
	log logger.ILogger,
	flowDelay time.Duration,
) IChatService {
	if flowDelay <= 0 {
		flowDelay = 500 * time.Millisecond
	}
	return &chatService{
		client:      client,
		sessionRepo: sessionRepo,
		publisher:   publisher,
		logger:      log,
		flowDelay:   flowDelay,
	}
}

// CreateSession mints the per-view conversation token and an empty
// turn log. Lifetime is one page view; there is no renewal.
func (cs *chatService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	conv := store.NewConversation(store.NewSessionToken())
	if err := cs.sessionRepo.SaveConversation(ctx, conv); err != nil {
		return nil, err
	}

	cs.publishActivity(ctx, events.TypeSessionCreated, map[string]interface{}{"session_id": conv.ID})
	cs.logger.Info("Chat", "Session created", map[string]interface{}{"session_id": conv.ID})

	return &dto.CreateSessionResponse{
		SessionId:       conv.ID,
		SuggestionChips: constant.SuggestionChips,
		GuidedQuestions: len(constant.GuidedQuestions),
	}, nil
}

// Ask runs one interactive turn. Manual sends are rejected while a
// guided flow owns the session so the two cannot interleave on the
// same log.
func (cs *chatService) Ask(ctx context.Context, request *dto.AskRequest) (*dto.AskResponse, error) {
	conv, found := cs.sessionRepo.GetConversation(ctx, request.SessionId)
	if !found {
		return nil, serverutils.NotFound("unknown session")
	}
	if conv.IsFlowActive() {
		return nil, serverutils.Conflict("a guided flow is running on this session")
	}
	return cs.ask(ctx, conv, request.Query)
}

// ask is the shared turn pipeline used by manual sends and the guided
// flow. A failed round-trip never escapes: it degrades into a visible
// bot turn carrying the error message.
func (cs *chatService) ask(ctx context.Context, conv *store.Conversation, text string) (*dto.AskResponse, error) {
	sent, ok := conv.BeginAsk(text)
	if !ok {
		// Empty or whitespace-only input: no turn, no network call.
		return nil, serverutils.BadRequest("message text is empty")
	}
	_ = cs.sessionRepo.SaveConversation(ctx, conv)

	var reply store.Turn
	res, err := cs.client.Ask(ctx, text, conv.ID)
	if err != nil {
		reply = conv.CompleteAsk(failureText(err), nil, nil)
		cs.logger.Warn("Chat", "Ask failed, degraded to error turn", map[string]interface{}{
			"session_id": conv.ID,
			"error":      err.Error(),
		})
	} else {
		reply = conv.CompleteAsk(res.Answer, res.Metadata, res.Sources)
	}

	if err := cs.sessionRepo.SaveConversation(ctx, conv); err != nil {
		return nil, err
	}

	cs.publishActivity(ctx, events.TypeTurnCompleted, map[string]interface{}{
		"session_id": conv.ID,
		"succeeded":  err == nil,
	})

	return &dto.AskResponse{
		SessionId: conv.ID,
		Sent:      mapper.ToTurnDTO(sent),
		Reply:     mapper.ToTurnDTO(reply),
		Stats:     mapper.ToStatsDTO(conv.ID, conv.ComputeStats()),
	}, nil
}

func (cs *chatService) GetHistory(ctx context.Context, sessionID string) (*dto.HistoryResponse, error) {
	conv, found := cs.sessionRepo.GetConversation(ctx, sessionID)
	if !found {
		return nil, serverutils.NotFound("unknown session")
	}

	turns := conv.Snapshot()
	out := &dto.HistoryResponse{
		SessionId:  conv.ID,
		State:      conv.CurrentState(),
		FlowActive: conv.IsFlowActive(),
		Turns:      make([]dto.TurnDTO, 0, len(turns)),
	}
	for _, turn := range turns {
		out.Turns = append(out.Turns, *mapper.ToTurnDTO(turn))
	}
	return out, nil
}

func (cs *chatService) GetStats(ctx context.Context, sessionID string) (*dto.StatsDTO, error) {
	conv, found := cs.sessionRepo.GetConversation(ctx, sessionID)
	if !found {
		return nil, serverutils.NotFound("unknown session")
	}
	stats := mapper.ToStatsDTO(conv.ID, conv.ComputeStats())
	return &stats, nil
}

// StartGuidedFlow launches the preset question chain in the
// background and returns immediately. The chain runs to completion;
// there is no cancellation beyond session expiry.
func (cs *chatService) StartGuidedFlow(ctx context.Context, request *dto.StartFlowRequest) (*dto.StartFlowResponse, error) {
	conv, found := cs.sessionRepo.GetConversation(ctx, request.SessionId)
	if !found {
		return nil, serverutils.NotFound("unknown session")
	}
	if !conv.StartFlow() {
		return nil, serverutils.Conflict("a guided flow is already running on this session")
	}
	if err := cs.sessionRepo.SaveConversation(ctx, conv); err != nil {
		conv.FinishFlow()
		return nil, err
	}

	cs.publishActivity(ctx, events.TypeFlowStarted, map[string]interface{}{
		"session_id": conv.ID,
		"questions":  len(constant.GuidedQuestions),
	})

	sequencer := newFlowSequencer(cs.flowDelay, func(flowCtx context.Context, question string) {
		if _, err := cs.ask(flowCtx, conv, question); err != nil {
			// Only empty presets or a dead store land here; the turn
			// pipeline already absorbed remote failures.
			cs.logger.Error("Chat", "Guided flow ask aborted", map[string]interface{}{
				"session_id": conv.ID,
				"error":      err.Error(),
			})
		}
	})

	go func() {
		// The request context dies with the HTTP response; the chain
		// keeps its own lifetime.
		flowCtx := context.Background()
		sequencer.Run(flowCtx, constant.GuidedQuestions)

		conv.FinishFlow()
		_ = cs.sessionRepo.SaveConversation(flowCtx, conv)
		cs.publishActivity(flowCtx, events.TypeFlowFinished, map[string]interface{}{"session_id": conv.ID})
	}()

	return &dto.StartFlowResponse{
		SessionId: conv.ID,
		Questions: len(constant.GuidedQuestions),
	}, nil
}

func (cs *chatService) publishActivity(ctx context.Context, eventType string, payload map[string]interface{}) {
	if cs.publisher == nil {
		return
	}
	if err := cs.publisher.Publish(ctx, events.NewActivity(eventType, payload)); err != nil {
		cs.logger.Warn("Chat", "Failed to publish activity event", map[string]interface{}{"error": err.Error()})
	}
}

// failureText converts an ask error into the text shown as a bot
// turn. RequestError already carries the extracted detail or the
// generic fallback.
func failureText(err error) string {
	var reqErr *assistant.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Error()
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return assistant.GenericFailureMessage
}
