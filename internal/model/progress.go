package model

// UserProgress holds the current completion state per (user, lesson) pair.
// One row per pair; re-submission overwrites in place, no history is kept.
type UserProgress struct {
	BaseModel
	UserID    uint `gorm:"not null;uniqueIndex:idx_user_lesson" json:"userId"`
	LessonID  uint `gorm:"not null;uniqueIndex:idx_user_lesson" json:"lessonId"`
	Progress  int  `gorm:"default:0" json:"progress"`
	Completed bool `gorm:"default:false" json:"completed"`
	XPEarned  int  `gorm:"default:0" json:"xpEarned"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
