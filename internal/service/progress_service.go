package service

import (
	"errors"

	"quantum_edu_backend/internal/model"
	"quantum_edu_backend/internal/repository"
	"quantum_edu_backend/internal/util"
	"quantum_edu_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	LessonRepo   *repository.LessonRepository
	BadgeService *BadgeService
}

func NewProgressService(progressRepo *repository.ProgressRepository, lessonRepo *repository.LessonRepository, badgeService *BadgeService) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		LessonRepo:   lessonRepo,
		BadgeService: badgeService,
	}
}

// GetProgress returns the stored record or the zero-value default when the
// user never submitted for this lesson.
func (s *ProgressService) GetProgress(userID, lessonID uint) (*model.UserProgress, error) {
	return s.ProgressRepo.Get(userID, lessonID)
}

// SubmitProgress upserts the record for the pair. Percent is clamped to
// [0,100]. The lesson's XP reward is credited while completed, withdrawn
// again when a later submission marks the lesson incomplete.
func (s *ProgressService) SubmitProgress(userID, lessonID uint, percent int, completed bool) (*model.UserProgress, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	if percent < 0 {
		percent = 0
	} else if percent > 100 {
		percent = 100
	}

	xpEarned := 0
	if completed {
		xpEarned = lesson.XPReward
	}

	stored, err := s.ProgressRepo.Upsert(&model.UserProgress{
		UserID:    userID,
		LessonID:  lessonID,
		Progress:  percent,
		Completed: completed,
		XPEarned:  xpEarned,
	})
	if err != nil {
		return nil, err
	}

	if completed {
		if err := s.BadgeService.AwardOnCompletion(userID); err != nil {
			// Badge bookkeeping must not fail a progress submission.
			logger.Log.Warn("badge award failed", zap.Uint("userID", userID), zap.Error(err))
		}
	}

	return stored, nil
}

func (s *ProgressService) GetUserStats(userID uint) (*repository.UserStats, error) {
	return s.ProgressRepo.GetUserStats(userID)
}
