package repository

import (
	"testing"

	"quantum_edu_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwardIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewBadgeRepository(db)

	badge := &model.Badge{Name: "First Steps", Description: "Complete your first lesson"}
	require.NoError(t, db.Create(badge).Error)

	require.NoError(t, repo.Award(1, badge.ID))
	require.NoError(t, repo.Award(1, badge.ID))
	require.NoError(t, repo.Award(1, badge.ID))

	var count int64
	require.NoError(t, db.Model(&model.UserBadge{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFindByUserJoinsEarnedAt(t *testing.T) {
	db := newTestDB(t)
	repo := NewBadgeRepository(db)

	first := &model.Badge{Name: "First Steps"}
	second := &model.Badge{Name: "Curious Mind"}
	require.NoError(t, db.Create(first).Error)
	require.NoError(t, db.Create(second).Error)

	require.NoError(t, repo.Award(1, first.ID))
	require.NoError(t, repo.Award(2, second.ID))

	earned, err := repo.FindByUser(1)
	require.NoError(t, err)
	require.Len(t, earned, 1)
	assert.Equal(t, "First Steps", earned[0].Name)
	assert.False(t, earned[0].EarnedAt.IsZero())

	none, err := repo.FindByUser(3)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFindByNameMissingBadge(t *testing.T) {
	repo := NewBadgeRepository(newTestDB(t))

	_, err := repo.FindByName("does-not-exist")
	assert.Error(t, err)
}
