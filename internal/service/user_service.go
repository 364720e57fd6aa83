package service

import (
	"errors"

	"quantum_edu_backend/internal/model"
	"quantum_edu_backend/internal/repository"
	"quantum_edu_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo     *repository.UserRepository
	ProgressRepo *repository.ProgressRepository
	BadgeRepo    *repository.BadgeRepository
}

func NewUserService(userRepo *repository.UserRepository, progressRepo *repository.ProgressRepository, badgeRepo *repository.BadgeRepository) *UserService {
	return &UserService{
		UserRepo:     userRepo,
		ProgressRepo: progressRepo,
		BadgeRepo:    badgeRepo,
	}
}

// Profile is the current user plus their aggregate progress stats.
type Profile struct {
	ID               uint           `json:"id"`
	Name             string         `json:"name"`
	Email            string         `json:"email"`
	Role             model.UserRole `json:"role"`
	CreatedAt        string         `json:"createdAt"`
	TotalXP          int            `json:"totalXP"`
	LessonsCompleted int64          `json:"lessonsCompleted"`
}

func (s *UserService) GetProfile(userID uint) (*Profile, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	stats, err := s.ProgressRepo.GetUserStats(userID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		ID:               user.ID,
		Name:             user.Name,
		Email:            user.Email,
		Role:             user.Role,
		CreatedAt:        user.CreatedAt.Format("2006-01-02"),
		TotalXP:          stats.TotalXP,
		LessonsCompleted: stats.LessonsCompleted,
	}, nil
}

func (s *UserService) UpdateName(userID uint, name string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	user.Name = name
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetBadges(userID uint) ([]repository.EarnedBadge, error) {
	return s.BadgeRepo.FindByUser(userID)
}
