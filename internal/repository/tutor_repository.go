package repository

import (
	"quantum_edu_backend/internal/model"

	"gorm.io/gorm"
)

type TutorRepository struct {
	DB *gorm.DB
}

func NewTutorRepository(db *gorm.DB) *TutorRepository {
	return &TutorRepository{DB: db}
}

func (r *TutorRepository) Create(conv *model.TutorConversation) error {
	return r.DB.Create(conv).Error
}

// History returns up to limit exchanges for the (user, lesson) pair in
// chronological order. The store is queried newest-first so the limit keeps
// the most recent exchanges, then the slice is reversed.
func (r *TutorRepository) History(userID, lessonID uint, limit int) ([]model.TutorConversation, error) {
	var convs []model.TutorConversation
	err := r.DB.
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&convs).Error
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(convs)-1; i < j; i, j = i+1, j-1 {
		convs[i], convs[j] = convs[j], convs[i]
	}
	return convs, nil
}

func (r *TutorRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.TutorConversation{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
