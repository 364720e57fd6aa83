package repository

import (
	"errors"
	"time"

	"quantum_edu_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// Get returns the stored record for the pair, or a zero-value record when
// none exists. A missing row is valid state, not an error.
func (r *ProgressRepository) Get(userID, lessonID uint) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := r.DB.
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.UserProgress{
			UserID:    userID,
			LessonID:  lessonID,
			Progress:  0,
			Completed: false,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// Upsert inserts or overwrites the record for the (user, lesson) pair.
// Conflict resolution happens in the store, so concurrent submissions for
// the same pair never race in the application.
func (r *ProgressRepository) Upsert(progress *model.UserProgress) (*model.UserProgress, error) {
	progress.UpdatedAt = time.Now()
	err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"progress", "completed", "xp_earned", "updated_at"}),
	}).Create(progress).Error
	if err != nil {
		return nil, err
	}

	var stored model.UserProgress
	err = r.DB.
		Where("user_id = ? AND lesson_id = ?", progress.UserID, progress.LessonID).
		First(&stored).Error
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// UserStats aggregates a user's progress rows. Aggregates over zero rows
// are normalized to 0, never null.
type UserStats struct {
	TotalXP          int   `json:"totalXP"`
	LessonsCompleted int64 `json:"lessonsCompleted"`
}

func (r *ProgressRepository) GetUserStats(userID uint) (*UserStats, error) {
	var stats UserStats
	err := r.DB.Model(&model.UserProgress{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(xp_earned), 0) AS total_xp, COUNT(*) AS lessons_completed").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// CountCompleted returns how many lessons the user has completed.
func (r *ProgressRepository) CountCompleted(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	return count, err
}

// AverageProgress returns the mean progress percent across all rows,
// 0 when there are none.
func (r *ProgressRepository) AverageProgress() (float64, error) {
	var avg float64
	err := r.DB.Model(&model.UserProgress{}).
		Select("COALESCE(AVG(progress), 0)").
		Scan(&avg).Error
	return avg, err
}
