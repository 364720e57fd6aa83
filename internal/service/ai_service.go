package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"quantum_edu_backend/internal/config"

	openai "github.com/sashabaranov/go-openai"
)

// ChatMessage is one turn of a tutor conversation, oldest first.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Usage reports token consumption for a single provider round trip.
type Usage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

type Completion struct {
	Text  string
	Usage Usage
}

type CompletionRequest struct {
	System      string
	Messages    []ChatMessage
	Temperature float32
	MaxTokens   int
}

// CompletionProvider abstracts the external chat-completion API so services
// can be exercised with a stub.
type CompletionProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
}

var ErrNoChoices = errors.New("completion provider returned no choices")

// AIService talks to an OpenAI-compatible chat-completion endpoint. Every
// call is a single blocking round trip; no retries, no streaming.
type AIService struct {
	mu          sync.RWMutex
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

func NewAIService(cfg config.AIConfig) *AIService {
	s := &AIService{}
	s.apply(cfg)
	return s
}

// UpdateConfig swaps the provider client and model, used by the config
// hot-reload callback.
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(cfg)
}

func (s *AIService) apply(cfg config.AIConfig) {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.TimeoutSeconds > 0 {
		clientCfg.HTTPClient = &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		}
	}

	s.client = openai.NewClientWithConfig(clientCfg)
	s.model = cfg.Model
	s.temperature = cfg.Temperature
	s.maxTokens = cfg.MaxTokens
}

func (s *AIService) Complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	s.mu.RLock()
	client := s.client
	model := s.model
	// Per-call parameters win; config supplies the defaults when unset.
	temperature := req.Temperature
	if temperature == 0 {
		temperature = s.temperature
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = s.maxTokens
	}
	s.mu.RUnlock()

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == openai.ChatMessageRoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("completion provider: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, ErrNoChoices
	}

	return &Completion{
		Text: resp.Choices[0].Message.Content,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}
