package service

import (
	"context"
	"fmt"
	"strings"

	"quantum_edu_backend/internal/model"
	"quantum_edu_backend/internal/repository"
	"quantum_edu_backend/internal/util"
	"quantum_edu_backend/pkg/logger"
	"quantum_edu_backend/pkg/monitoring"

	"go.uber.org/zap"
)

const historyLimit = 50

const tutorSystemPrompt = `You are an expert AI tutor for the Quantum Edu educational platform.
You help students learn across 5 core disciplines: Mathematics, Physics, Computer Science, Engineering, and Electronics.

Your responsibilities:
1. Explain complex concepts in simple, understandable language
2. Provide step-by-step solutions to problems
3. Give real-world examples and applications
4. Encourage critical thinking and exploration
5. Adapt explanations based on student level (Beginner, Intermediate, Advanced)
6. Be patient and supportive

Always:
- Use clear, structured explanations
- Break down complex topics into smaller parts
- Ask clarifying questions if needed
- Suggest follow-up topics for deeper learning
- Provide practice problems when appropriate`

// TutorService composes prompts, invokes the completion provider, and
// persists transcripts. All provider calls are stateless single shots.
type TutorService struct {
	provider  CompletionProvider
	tutorRepo *repository.TutorRepository
	cache     *SessionCache
}

// NewTutorService builds the tutor service. cache may be nil, in which case
// the per-user session cache is disabled.
func NewTutorService(provider CompletionProvider, tutorRepo *repository.TutorRepository, cache *SessionCache) *TutorService {
	return &TutorService{
		provider:  provider,
		tutorRepo: tutorRepo,
		cache:     cache,
	}
}

type AskResult struct {
	Answer string `json:"answer"`
	Usage  Usage  `json:"usage"`
}

// AskQuestion sends the system persona, the conversation history oldest
// first, and the new question to the provider. When lessonID is set the
// exchange is persisted, but only after a successful provider response.
func (s *TutorService) AskQuestion(ctx context.Context, userID uint, lessonID *uint, question string, history []ChatMessage) (*AskResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, util.ErrQuestionRequired
	}

	// Fall back to the cached session when the caller sends no history.
	// Cache trouble never fails the request.
	if len(history) == 0 && s.cache != nil {
		cached, err := s.cache.Recent(ctx, userID)
		if err != nil {
			logger.Log.Warn("session cache read failed", zap.Uint("userID", userID), zap.Error(err))
		} else {
			history = cached
		}
	}

	messages := make([]ChatMessage, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, ChatMessage{Role: "user", Content: question})

	completion, err := s.provider.Complete(ctx, CompletionRequest{
		System:      tutorSystemPrompt,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   1500,
	})
	s.observe("ask", completion, err)
	if err != nil {
		return nil, fmt.Errorf("ask question: %w", err)
	}

	if lessonID != nil {
		conv := &model.TutorConversation{
			UserID:   userID,
			LessonID: lessonID,
			Question: question,
			Answer:   completion.Text,
		}
		if err := s.tutorRepo.Create(conv); err != nil {
			return nil, fmt.Errorf("save conversation: %w", err)
		}
	}

	if s.cache != nil {
		err := s.cache.Append(ctx, userID,
			ChatMessage{Role: "user", Content: question},
			ChatMessage{Role: "assistant", Content: completion.Text},
		)
		if err != nil {
			logger.Log.Warn("session cache write failed", zap.Uint("userID", userID), zap.Error(err))
		}
	}

	return &AskResult{Answer: completion.Text, Usage: completion.Usage}, nil
}

// GetHistory returns the most recent exchanges for the pair, oldest first.
func (s *TutorService) GetHistory(userID, lessonID uint) ([]model.TutorConversation, error) {
	return s.tutorRepo.History(userID, lessonID, historyLimit)
}

// GenerateExercises asks the provider for three practice items with
// difficulty labels. The result is raw text, not parsed into structure.
func (s *TutorService) GenerateExercises(ctx context.Context, topic, level string) (string, error) {
	prompt := fmt.Sprintf(`Generate 3 practice exercises for the topic %q at %s level.
Format as:
Exercise 1: [question]
Expected Difficulty: [easy/medium/hard]

Exercise 2: [question]
Expected Difficulty: [easy/medium/hard]

Exercise 3: [question]
Expected Difficulty: [easy/medium/hard]`, topic, level)

	completion, err := s.provider.Complete(ctx, CompletionRequest{
		System:      "You are an expert educator creating practice problems.",
		Messages:    []ChatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.8,
		MaxTokens:   1000,
	})
	s.observe("exercises", completion, err)
	if err != nil {
		return "", fmt.Errorf("generate exercises: %w", err)
	}
	return completion.Text, nil
}

// ExplainConcept produces a structured explanation as free text.
func (s *TutorService) ExplainConcept(ctx context.Context, concept, discipline, level string) (string, error) {
	prompt := fmt.Sprintf(`Explain the concept of %q in %s at %s level.
Include:
1. Definition
2. Key components
3. Real-world example
4. Why it matters
5. Common misconceptions to avoid`, concept, discipline, level)

	completion, err := s.provider.Complete(ctx, CompletionRequest{
		System:      tutorSystemPrompt,
		Messages:    []ChatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.7,
		MaxTokens:   1500,
	})
	s.observe("explain", completion, err)
	if err != nil {
		return "", fmt.Errorf("explain concept: %w", err)
	}
	return completion.Text, nil
}

// EvaluateAnswer produces a structured evaluation of a student answer as
// free text.
func (s *TutorService) EvaluateAnswer(ctx context.Context, question, studentAnswer, expectedAnswer, discipline string) (string, error) {
	prompt := fmt.Sprintf(`Evaluate this student answer:

Question: %s
Student's Answer: %s
Expected Answer: %s
Discipline: %s

Provide:
1. Correctness score (0-100)
2. What they got right
3. What needs improvement
4. Helpful tips
5. Suggested next steps`, question, studentAnswer, expectedAnswer, discipline)

	completion, err := s.provider.Complete(ctx, CompletionRequest{
		System:      "You are an expert evaluator providing constructive feedback.",
		Messages:    []ChatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.5,
		MaxTokens:   800,
	})
	s.observe("evaluate", completion, err)
	if err != nil {
		return "", fmt.Errorf("evaluate answer: %w", err)
	}
	return completion.Text, nil
}

func (s *TutorService) observe(operation string, completion *Completion, err error) {
	if err != nil {
		monitoring.ObserveTutorCall(operation, err, 0, 0)
		return
	}
	monitoring.ObserveTutorCall(operation, nil, completion.Usage.PromptTokens, completion.Usage.CompletionTokens)
}
