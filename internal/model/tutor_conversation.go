package model

import "time"

// TutorConversation stores one question/answer exchange with the AI tutor.
// Rows are append-only; LessonID is nil for free-standing questions, which
// are answered but not persisted.
type TutorConversation struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_user_lesson_created" json:"userId"`
	LessonID  *uint     `gorm:"index:idx_user_lesson_created" json:"lessonId"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	CreatedAt time.Time `gorm:"index:idx_user_lesson_created" json:"createdAt"`
}

func (TutorConversation) TableName() string {
	return "tutor_conversations"
}
