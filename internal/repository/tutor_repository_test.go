package repository

import (
	"fmt"
	"testing"
	"time"

	"quantum_edu_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lessonID(id uint) *uint {
	return &id
}

func TestHistoryReturnsOldestFirst(t *testing.T) {
	repo := NewTutorRepository(newTestDB(t))

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		err := repo.Create(&model.TutorConversation{
			UserID:    1,
			LessonID:  lessonID(2),
			Question:  fmt.Sprintf("question %d", i),
			Answer:    fmt.Sprintf("answer %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	history, err := repo.History(1, 2, 50)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "question 0", history[0].Question)
	assert.Equal(t, "question 2", history[2].Question)
}

func TestHistoryLimitKeepsMostRecent(t *testing.T) {
	repo := NewTutorRepository(newTestDB(t))

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 60; i++ {
		err := repo.Create(&model.TutorConversation{
			UserID:    1,
			LessonID:  lessonID(2),
			Question:  fmt.Sprintf("question %d", i),
			Answer:    "answer",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	history, err := repo.History(1, 2, 50)
	require.NoError(t, err)
	require.Len(t, history, 50)

	// The 10 oldest exchanges fall off; what remains is chronological.
	assert.Equal(t, "question 10", history[0].Question)
	assert.Equal(t, "question 59", history[49].Question)
}

func TestHistoryScopedToUserAndLesson(t *testing.T) {
	repo := NewTutorRepository(newTestDB(t))

	require.NoError(t, repo.Create(&model.TutorConversation{
		UserID: 1, LessonID: lessonID(2), Question: "mine", Answer: "a",
	}))
	require.NoError(t, repo.Create(&model.TutorConversation{
		UserID: 1, LessonID: lessonID(3), Question: "other lesson", Answer: "a",
	}))
	require.NoError(t, repo.Create(&model.TutorConversation{
		UserID: 9, LessonID: lessonID(2), Question: "other user", Answer: "a",
	}))

	history, err := repo.History(1, 2, 50)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "mine", history[0].Question)

	count, err := repo.CountByUser(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
