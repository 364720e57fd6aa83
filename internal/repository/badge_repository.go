package repository

import (
	"time"

	"quantum_edu_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BadgeRepository struct {
	DB *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{DB: db}
}

func (r *BadgeRepository) FindByName(name string) (*model.Badge, error) {
	var badge model.Badge
	err := r.DB.Where("name = ?", name).First(&badge).Error
	if err != nil {
		return nil, err
	}
	return &badge, nil
}

// Award grants a badge to a user. The insert resolves conflicts on
// (user_id, badge_id) by doing nothing, so repeated awards are no-ops.
func (r *BadgeRepository) Award(userID, badgeID uint) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_id"}},
		DoNothing: true,
	}).Create(&model.UserBadge{UserID: userID, BadgeID: badgeID}).Error
}

// EarnedBadge is a badge joined with the time the user earned it.
type EarnedBadge struct {
	model.Badge
	EarnedAt time.Time `json:"earnedAt"`
}

func (r *BadgeRepository) FindByUser(userID uint) ([]EarnedBadge, error) {
	var badges []EarnedBadge
	err := r.DB.Model(&model.Badge{}).
		Select("badges.*, user_badges.earned_at").
		Joins("JOIN user_badges ON user_badges.badge_id = badges.id").
		Where("user_badges.user_id = ?", userID).
		Order("user_badges.earned_at").
		Scan(&badges).Error
	return badges, err
}
