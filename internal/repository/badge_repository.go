package repository

import (
	"cosmic_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type BadgeRepository struct {
	DB *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{DB: db}
}

func (r *BadgeRepository) FindAll() ([]model.Badge, error) {
	var badges []model.Badge
	err := r.DB.Order("required_points").Find(&badges).Error
	return badges, err
}

func (r *BadgeRepository) FindByID(id string) (*model.Badge, error) {
	var badge model.Badge
	err := r.DB.Where("id = ?", id).First(&badge).Error
	return &badge, err
}

func (r *BadgeRepository) Create(badge *model.Badge) error {
	return r.DB.Create(badge).Error
}

func (r *BadgeRepository) Update(badge *model.Badge) error {
	return r.DB.Save(badge).Error
}

// FindQualifying returns every badge whose threshold is within totalPoints,
// highest threshold first.
func (r *BadgeRepository) FindQualifying(totalPoints int) ([]model.Badge, error) {
	var badges []model.Badge
	err := r.DB.Where("required_points <= ?", totalPoints).
		Order("required_points DESC").
		Find(&badges).Error
	return badges, err
}

// GrantedBadgeIDs returns the ids of badges the user already holds.
func (r *BadgeRepository) GrantedBadgeIDs(userID string) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.UserBadge{}).
		Where("user_id = ?", userID).
		Pluck("badge_id", &ids).Error
	return ids, err
}

func (r *BadgeRepository) CreateGrant(grant *model.UserBadge) error {
	return r.DB.Create(grant).Error
}

func (r *BadgeRepository) FindUserBadges(userID string) ([]model.UserBadge, error) {
	var grants []model.UserBadge
	err := r.DB.Preload("Badge").
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&grants).Error
	return grants, err
}
