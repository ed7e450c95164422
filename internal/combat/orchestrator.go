package combat

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/salesguard/internal/catalog"
	"github.com/salesguard/internal/extract"
	"github.com/salesguard/internal/llm"
	"github.com/salesguard/internal/session"
)

// Request is one combat turn as received from the client. Conversation
// state is client-owned: ConversationID is whatever the client persisted
// from the previous turn, or empty on the first one.
type Request struct {
	Setup          llm.Setup
	Stage          string
	ProblemType    string
	TriggerValue   string
	Query          string
	ConversationID string
	UserID         string
}

// Result is the terminal state of a turn. Every turn produces a card; the
// degraded paths synthesize one rather than surfacing an error.
type Result struct {
	Card           TacticalCard
	ConversationID string
}

// ChatCaller is the single provider operation a combat turn needs.
type ChatCaller interface {
	ChatMessage(ctx context.Context, req llm.ChatRequest) (*llm.ChatReply, error)
}

// Orchestrator composes the request adapter, the provider call, the
// extractor and the session tracker. It holds no per-conversation state.
type Orchestrator struct {
	client     ChatCaller
	catalog    *catalog.Catalog
	strategies []extract.Strategy
}

// NewOrchestrator creates a combat orchestrator.
func NewOrchestrator(client ChatCaller, cat *catalog.Catalog, strategies []extract.Strategy) *Orchestrator {
	return &Orchestrator{client: client, catalog: cat, strategies: strategies}
}

// Engage runs one combat turn. No retry is attempted here; retries are a
// caller concern.
func (o *Orchestrator) Engage(ctx context.Context, req Request) Result {
	turn := llm.BuildChatTurn(req.Setup, req.Stage, req.ProblemType, req.Query, req.TriggerValue, req.ConversationID, req.UserID)

	reply, err := o.client.ChatMessage(ctx, turn)
	if err != nil {
		log.Warn().Err(err).Str("stage", req.Stage).Msg("provider unreachable, serving offline card")
		rec := session.Reconcile(req.ConversationID, "")
		return Result{Card: o.offlineCard(req), ConversationID: rec.Effective}
	}

	var card TacticalCard
	if err := extract.Into(reply.Answer, o.strategies, &card); err != nil {
		log.Warn().Str("stage", req.Stage).Msg("unparseable answer, serving fallback card")
		card = parseFallbackCard(reply.Answer)
	}

	rec := session.Reconcile(req.ConversationID, reply.ConversationID)
	if rec.Changed {
		log.Debug().Str("conversation_id", rec.Effective).Msg("adopted provider conversation id")
	}

	return Result{Card: card, ConversationID: rec.Effective}
}
