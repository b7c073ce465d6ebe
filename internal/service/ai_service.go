package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"vivaha-be/internal/cache"
	"vivaha-be/internal/llm"
	"vivaha-be/internal/models"
)

const (
	chatTemperature   = 0.6
	chatMaxTokens     = 800
	budgetTemperature = 0.7
	budgetMaxTokens   = 500

	suggestionCacheTTL = time.Hour
)

const defaultChatPersona = "You are Vivaha, a friendly and knowledgeable wedding planning assistant. " +
	"Give practical, concise advice about budgets, guests, vendors, ceremonies and timelines."

// ChatCompleter is the provider client used by AIService.
type ChatCompleter interface {
	Configured() bool
	Complete(ctx context.Context, req llm.ChatRequest) ([]byte, error)
}

// AIService proxies chat and budget-suggestion requests to the LLM provider.
type AIService interface {
	Chat(ctx context.Context, message, systemPrompt string) ([]byte, error)
	BudgetSuggestions(ctx context.Context, req *models.BudgetSuggestionsRequest) ([]string, error)
}

type aiService struct {
	client ChatCompleter
	cache  cache.Cache
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewAIService creates a new AI service. cacheClient may be nil.
func NewAIService(client ChatCompleter, cacheClient cache.Cache, logger zerolog.Logger) AIService {
	svc := &aiService{
		client: client,
		tracer: otel.Tracer("vivaha-be/internal/service"),
		logger: logger,
	}
	if cacheClient != nil {
		svc.cache = cacheClient
	}
	return svc
}

// Chat forwards one exchange to the provider and returns its raw body.
// An empty system prompt is replaced by the default assistant persona.
func (s *aiService) Chat(ctx context.Context, message, systemPrompt string) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "ai.Chat")
	defer span.End()

	if !s.client.Configured() {
		span.SetStatus(codes.Error, "not configured")
		return nil, llm.ConfigurationError{}
	}
	if systemPrompt == "" {
		systemPrompt = defaultChatPersona
	}

	raw, err := s.client.Complete(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: message},
		},
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		return nil, err
	}
	return raw, nil
}

// BudgetSuggestions returns up to four suggestions. Only a missing credential
// is reported as an error; every other failure degrades to an empty list.
func (s *aiService) BudgetSuggestions(ctx context.Context, req *models.BudgetSuggestionsRequest) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "ai.BudgetSuggestions", trace.WithAttributes(
		attribute.Int("guest_count", req.GuestCount),
		attribute.String("city", req.City),
	))
	defer span.End()

	if !s.client.Configured() {
		span.SetStatus(codes.Error, "not configured")
		return nil, llm.ConfigurationError{}
	}

	prompt := BuildBudgetPrompt(req.Budget, req.GuestCount, req.City, req.Priorities)
	cacheKey := suggestionCacheKey(prompt)

	if s.cache != nil {
		var cached []string
		if err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil && len(cached) > 0 {
			span.SetAttributes(attribute.Bool("cache_hit", true))
			return cached, nil
		}
	}

	raw, err := s.client.Complete(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: "system", Content: budgetPersona},
			{Role: "user", Content: prompt},
		},
		Temperature: budgetTemperature,
		MaxTokens:   budgetMaxTokens,
	})
	if err != nil {
		span.RecordError(err)
		s.logger.Error().Err(err).Str("failure", failureKind(err)).Msg("budget suggestions degraded to empty list")
		return []string{}, nil
	}

	content, err := llm.ContentOf(raw)
	if err != nil {
		span.RecordError(err)
		s.logger.Error().Err(err).Str("failure", "malformed").Msg("budget suggestions degraded to empty list")
		return []string{}, nil
	}

	suggestions := ExtractSuggestions(content)
	span.SetAttributes(attribute.Int("suggestions", len(suggestions)))
	if len(suggestions) < maxSuggestions {
		s.logger.Warn().Int("suggestions", len(suggestions)).Msg("provider returned fewer suggestions than requested")
	}

	if s.cache != nil && len(suggestions) > 0 {
		if err := s.cache.SetJSON(ctx, cacheKey, suggestions, suggestionCacheTTL); err != nil {
			s.logger.Warn().Err(err).Msg("failed to cache budget suggestions")
		}
	}
	return suggestions, nil
}

func suggestionCacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "ai:budget:" + hex.EncodeToString(sum[:])
}

func failureKind(err error) string {
	var upstream *llm.UpstreamError
	var netErr net.Error
	switch {
	case errors.As(err, &upstream):
		return "upstream"
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	default:
		return "transport"
	}
}
