// Package engine implements the chat pipeline: classify the message, fetch
// role-scoped campus data, render a response and attach follow-up
// suggestions.
package engine

import (
	"context"
	"time"

	"github.com/smartcampus/campusai-go/internal/campus"
	"github.com/smartcampus/campusai-go/internal/errors"
	"github.com/smartcampus/campusai-go/internal/intent"
	"github.com/smartcampus/campusai-go/internal/knowledge"
	"github.com/smartcampus/campusai-go/internal/logger"
	"github.com/smartcampus/campusai-go/internal/metrics"
	"github.com/smartcampus/campusai-go/internal/suggest"
)

// Request is a single chat turn from a user.
type Request struct {
	Message string
	UserID  string
	Role    string
	Context campus.Context
}

// Reply is the rendered outcome of a chat turn.
type Reply struct {
	Response    string    `json:"response"`
	Intent      string    `json:"intent"`
	Suggestions []string  `json:"suggestions"`
	Timestamp   time.Time `json:"timestamp"`
}

// Engine ties the classifier, gateway, knowledge base and suggestion tables
// into one pipeline. Safe for concurrent use.
type Engine struct {
	gateway *campus.Gateway
	kb      *knowledge.Base
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// New creates a chat engine.
func New(gateway *campus.Gateway, kb *knowledge.Base, m *metrics.Metrics, log *logger.Logger) *Engine {
	return &Engine{
		gateway: gateway,
		kb:      kb,
		metrics: m,
		logger:  log.WithModule("engine"),
	}
}

// Gateway exposes the underlying campus gateway for advisor endpoints.
func (e *Engine) Gateway() *campus.Gateway {
	return e.gateway
}

// Chat processes one user message. Data unavailability never fails a turn;
// only an empty message is an error. Whitespace-only messages are not
// rejected; they classify to the general fallback.
func (e *Engine) Chat(ctx context.Context, req Request) (*Reply, error) {
	if req.Message == "" {
		return nil, errors.NewValidationError("message", "Message is required")
	}

	userID := req.UserID
	if userID == "" {
		userID = "anonymous"
	}
	role := campus.NormalizeRole(req.Role)

	start := time.Now()
	in := intent.Classify(req.Message)
	data := e.gateway.Fetch(ctx, in, userID, role, req.Context)
	response := e.respond(req.Message, in, role, data)
	e.metrics.RecordChat(in.String(), role.String(), time.Since(start).Seconds())

	e.logger.WithFields(map[string]any{
		"intent": in.String(),
		"role":   role.String(),
		"userId": userID,
	}).Debug("Chat turn processed")

	return &Reply{
		Response:    response,
		Intent:      in.String(),
		Suggestions: suggest.ForIntent(in),
		Timestamp:   time.Now(),
	}, nil
}

// snippet looks up the knowledge base section for an intent and records the
// lookup outcome.
func (e *Engine) snippet(in intent.Intent) string {
	s := e.kb.Snippet(in)
	if s == "" {
		e.metrics.RecordKnowledgeSnippet(in.String(), "miss")
	} else {
		e.metrics.RecordKnowledgeSnippet(in.String(), "hit")
	}
	return s
}
