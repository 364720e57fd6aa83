package model

// Lesson levels follow the catalog convention: Beginner, Intermediate, Advanced.
type Lesson struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Discipline  string `gorm:"size:100;index" json:"discipline"`
	Level       string `gorm:"size:50" json:"level"`
	Content     string `gorm:"type:text" json:"content,omitempty"`
	XPReward    int    `gorm:"default:100" json:"xpReward"`
}

func (Lesson) TableName() string {
	return "lessons"
}
