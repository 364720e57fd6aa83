package service

import (
	"errors"

	"quantum_edu_backend/internal/model"
	"quantum_edu_backend/internal/repository"
	"quantum_edu_backend/internal/util"

	"gorm.io/gorm"
)

type LessonService struct {
	LessonRepo *repository.LessonRepository
}

func NewLessonService(lessonRepo *repository.LessonRepository) *LessonService {
	return &LessonService{LessonRepo: lessonRepo}
}

func (s *LessonService) ListLessons() ([]model.Lesson, error) {
	return s.LessonRepo.FindAll()
}

func (s *LessonService) GetLesson(id uint) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) CreateLesson(lesson *model.Lesson) error {
	return s.LessonRepo.Create(lesson)
}
