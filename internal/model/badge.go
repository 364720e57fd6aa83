package model

import "time"

type Badge struct {
	BaseModel
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"size:255" json:"icon"`
	Criteria    string `gorm:"type:text" json:"criteria"`
}

func (Badge) TableName() string {
	return "badges"
}

// UserBadge links a user to an earned badge. The unique index makes awards
// idempotent: a second award for the same pair is a no-op.
type UserBadge struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_user_badge" json:"userId"`
	BadgeID  uint      `gorm:"not null;uniqueIndex:idx_user_badge" json:"badgeId"`
	EarnedAt time.Time `gorm:"autoCreateTime" json:"earnedAt"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}
