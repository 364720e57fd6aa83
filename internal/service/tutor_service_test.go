package service

import (
	"context"
	"errors"
	"testing"

	"quantum_edu_backend/internal/model"
	"quantum_edu_backend/internal/repository"
	"quantum_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.User{},
		&model.Lesson{},
		&model.UserProgress{},
		&model.Badge{},
		&model.UserBadge{},
		&model.TutorConversation{},
	)
	require.NoError(t, err)
	return db
}

// stubProvider records every request and plays back a canned completion.
type stubProvider struct {
	requests []CompletionRequest
	reply    *Completion
	err      error
}

func (p *stubProvider) Complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	p.requests = append(p.requests, req)
	if p.err != nil {
		return nil, p.err
	}
	return p.reply, nil
}

func newTutorFixture(t *testing.T, provider *stubProvider) (*TutorService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewTutorService(provider, repository.NewTutorRepository(db), nil), db
}

func TestAskQuestionRejectsBlankQuestion(t *testing.T) {
	provider := &stubProvider{reply: &Completion{Text: "unused"}}
	svc, db := newTutorFixture(t, provider)

	for _, question := range []string{"", "   ", "\n\t"} {
		_, err := svc.AskQuestion(context.Background(), 1, nil, question, nil)
		assert.ErrorIs(t, err, util.ErrQuestionRequired)
	}

	assert.Empty(t, provider.requests)

	var count int64
	require.NoError(t, db.Model(&model.TutorConversation{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestAskQuestionPersistsWhenLessonGiven(t *testing.T) {
	provider := &stubProvider{reply: &Completion{
		Text:  "Newton's second law relates force to acceleration.",
		Usage: Usage{PromptTokens: 12, CompletionTokens: 34, TotalTokens: 46},
	}}
	svc, db := newTutorFixture(t, provider)

	id := uint(5)
	result, err := svc.AskQuestion(context.Background(), 1, &id, "What is F=ma?", nil)
	require.NoError(t, err)
	assert.Equal(t, provider.reply.Text, result.Answer)
	assert.Equal(t, 46, result.Usage.TotalTokens)

	var convs []model.TutorConversation
	require.NoError(t, db.Find(&convs).Error)
	require.Len(t, convs, 1)
	assert.Equal(t, uint(1), convs[0].UserID)
	require.NotNil(t, convs[0].LessonID)
	assert.Equal(t, uint(5), *convs[0].LessonID)
	assert.Equal(t, "What is F=ma?", convs[0].Question)
	assert.Equal(t, provider.reply.Text, convs[0].Answer)
}

func TestAskQuestionSkipsPersistenceWithoutLesson(t *testing.T) {
	provider := &stubProvider{reply: &Completion{Text: "answer"}}
	svc, db := newTutorFixture(t, provider)

	_, err := svc.AskQuestion(context.Background(), 1, nil, "free-standing question", nil)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.TutorConversation{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestAskQuestionNoPersistenceOnProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.New("provider down")}
	svc, db := newTutorFixture(t, provider)

	id := uint(5)
	_, err := svc.AskQuestion(context.Background(), 1, &id, "anything", nil)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&model.TutorConversation{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestAskQuestionSendsHistoryThenQuestion(t *testing.T) {
	provider := &stubProvider{reply: &Completion{Text: "answer"}}
	svc, _ := newTutorFixture(t, provider)

	history := []ChatMessage{
		{Role: "user", Content: "earlier question"},
		{Role: "assistant", Content: "earlier answer"},
	}
	_, err := svc.AskQuestion(context.Background(), 1, nil, "follow-up", history)
	require.NoError(t, err)

	require.Len(t, provider.requests, 1)
	req := provider.requests[0]
	assert.Equal(t, tutorSystemPrompt, req.System)
	assert.Equal(t, float32(0.7), req.Temperature)
	assert.Equal(t, 1500, req.MaxTokens)
	require.Len(t, req.Messages, 3)
	assert.Equal(t, "earlier question", req.Messages[0].Content)
	assert.Equal(t, "earlier answer", req.Messages[1].Content)
	assert.Equal(t, ChatMessage{Role: "user", Content: "follow-up"}, req.Messages[2])
}

func TestGenerateExercisesUsesCreativeParameters(t *testing.T) {
	provider := &stubProvider{reply: &Completion{Text: "Exercise 1: ..."}}
	svc, _ := newTutorFixture(t, provider)

	text, err := svc.GenerateExercises(context.Background(), "Ohm's law", "Beginner")
	require.NoError(t, err)
	assert.Equal(t, "Exercise 1: ...", text)

	require.Len(t, provider.requests, 1)
	req := provider.requests[0]
	assert.Equal(t, float32(0.8), req.Temperature)
	assert.Equal(t, 1000, req.MaxTokens)
	require.Len(t, req.Messages, 1)
	assert.Contains(t, req.Messages[0].Content, "Ohm's law")
	assert.Contains(t, req.Messages[0].Content, "Beginner")
}

func TestEvaluateAnswerUsesConservativeParameters(t *testing.T) {
	provider := &stubProvider{reply: &Completion{Text: "Score: 80"}}
	svc, _ := newTutorFixture(t, provider)

	_, err := svc.EvaluateAnswer(context.Background(), "q", "student", "expected", "Physics")
	require.NoError(t, err)

	require.Len(t, provider.requests, 1)
	assert.Equal(t, float32(0.5), provider.requests[0].Temperature)
	assert.Equal(t, 800, provider.requests[0].MaxTokens)
}

func TestGetHistoryOldestFirst(t *testing.T) {
	provider := &stubProvider{reply: &Completion{Text: "a"}}
	svc, db := newTutorFixture(t, provider)

	id := uint(2)
	require.NoError(t, db.Create(&model.TutorConversation{
		UserID: 1, LessonID: &id, Question: "first", Answer: "a",
	}).Error)
	require.NoError(t, db.Create(&model.TutorConversation{
		UserID: 1, LessonID: &id, Question: "second", Answer: "a",
	}).Error)

	history, err := svc.GetHistory(1, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "first", history[0].Question)
	assert.Equal(t, "second", history[1].Question)
}
