package service

import (
	"quantum_edu_backend/internal/repository"
)

type AnalyticsService struct {
	UserRepo     *repository.UserRepository
	LessonRepo   *repository.LessonRepository
	ProgressRepo *repository.ProgressRepository
}

func NewAnalyticsService(userRepo *repository.UserRepository, lessonRepo *repository.LessonRepository, progressRepo *repository.ProgressRepository) *AnalyticsService {
	return &AnalyticsService{
		UserRepo:     userRepo,
		LessonRepo:   lessonRepo,
		ProgressRepo: progressRepo,
	}
}

type PlatformAnalytics struct {
	TotalUsers      int64   `json:"totalUsers"`
	TotalLessons    int64   `json:"totalLessons"`
	AverageProgress float64 `json:"averageProgress"`
}

func (s *AnalyticsService) GetPlatformAnalytics() (*PlatformAnalytics, error) {
	totalUsers, err := s.UserRepo.Count()
	if err != nil {
		return nil, err
	}

	totalLessons, err := s.LessonRepo.Count()
	if err != nil {
		return nil, err
	}

	avgProgress, err := s.ProgressRepo.AverageProgress()
	if err != nil {
		return nil, err
	}

	return &PlatformAnalytics{
		TotalUsers:      totalUsers,
		TotalLessons:    totalLessons,
		AverageProgress: avgProgress,
	}, nil
}
