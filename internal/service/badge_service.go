package service

import (
	"errors"

	"quantum_edu_backend/internal/repository"

	"gorm.io/gorm"
)

const firstLessonBadge = "First Steps"

type BadgeService struct {
	BadgeRepo    *repository.BadgeRepository
	ProgressRepo *repository.ProgressRepository
}

func NewBadgeService(badgeRepo *repository.BadgeRepository, progressRepo *repository.ProgressRepository) *BadgeService {
	return &BadgeService{
		BadgeRepo:    badgeRepo,
		ProgressRepo: progressRepo,
	}
}

// AwardOnCompletion grants the first-lesson badge once the user has any
// completed lesson. The award is idempotent, so calling this on every
// completion is fine.
func (s *BadgeService) AwardOnCompletion(userID uint) error {
	completed, err := s.ProgressRepo.CountCompleted(userID)
	if err != nil {
		return err
	}
	if completed == 0 {
		return nil
	}

	badge, err := s.BadgeRepo.FindByName(firstLessonBadge)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Badge catalog not seeded; nothing to award.
			return nil
		}
		return err
	}

	return s.BadgeRepo.Award(userID, badge.ID)
}
