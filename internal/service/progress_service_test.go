package service

import (
	"testing"

	"quantum_edu_backend/internal/model"
	"quantum_edu_backend/internal/repository"
	"quantum_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProgressFixture(t *testing.T) (*ProgressService, *gorm.DB, *model.Lesson) {
	t.Helper()
	db := newTestDB(t)

	lesson := &model.Lesson{
		Title: "Intro to Circuits", Discipline: "Electronics", Level: "Beginner", XPReward: 150,
	}
	require.NoError(t, db.Create(lesson).Error)
	require.NoError(t, db.Create(&model.Badge{Name: "First Steps"}).Error)

	progressRepo := repository.NewProgressRepository(db)
	badgeSvc := NewBadgeService(repository.NewBadgeRepository(db), progressRepo)
	svc := NewProgressService(progressRepo, repository.NewLessonRepository(db), badgeSvc)
	return svc, db, lesson
}

func TestSubmitProgressClampsPercent(t *testing.T) {
	svc, _, lesson := newProgressFixture(t)

	stored, err := svc.SubmitProgress(1, lesson.ID, 150, false)
	require.NoError(t, err)
	assert.Equal(t, 100, stored.Progress)

	stored, err = svc.SubmitProgress(1, lesson.ID, -20, false)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Progress)
}

func TestSubmitProgressCreditsXPOnCompletion(t *testing.T) {
	svc, _, lesson := newProgressFixture(t)

	stored, err := svc.SubmitProgress(1, lesson.ID, 100, true)
	require.NoError(t, err)
	assert.True(t, stored.Completed)
	assert.Equal(t, 150, stored.XPEarned)

	// Marking the lesson incomplete again withdraws the reward.
	stored, err = svc.SubmitProgress(1, lesson.ID, 50, false)
	require.NoError(t, err)
	assert.False(t, stored.Completed)
	assert.Equal(t, 0, stored.XPEarned)
}

func TestSubmitProgressAwardsFirstLessonBadge(t *testing.T) {
	svc, db, lesson := newProgressFixture(t)

	_, err := svc.SubmitProgress(1, lesson.ID, 60, false)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.UserBadge{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	_, err = svc.SubmitProgress(1, lesson.ID, 100, true)
	require.NoError(t, err)

	require.NoError(t, db.Model(&model.UserBadge{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Completing again never duplicates the badge.
	_, err = svc.SubmitProgress(1, lesson.ID, 100, true)
	require.NoError(t, err)
	require.NoError(t, db.Model(&model.UserBadge{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSubmitProgressUnknownLesson(t *testing.T) {
	svc, _, _ := newProgressFixture(t)

	_, err := svc.SubmitProgress(1, 9999, 50, false)
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}

func TestGetProgressDefaultsToZero(t *testing.T) {
	svc, _, lesson := newProgressFixture(t)

	progress, err := svc.GetProgress(1, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.Progress)
	assert.False(t, progress.Completed)
}
