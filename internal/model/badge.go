package model

import "time"

// Badge is unlocked once a user's total points reach RequiredPoints.
// Thresholds need not be unique.
// swagger:model Badge
type Badge struct {
	UUIDBase
	Name           string `gorm:"size:100;not null" json:"name"`
	Description    string `gorm:"type:text" json:"description"`
	Icon           string `gorm:"size:255" json:"icon"`
	RequiredPoints int    `gorm:"index;not null" json:"requiredPoints"`
	Color          string `gorm:"size:20" json:"color"`
}

func (Badge) TableName() string {
	return "badges"
}

// UserBadge records a grant. Grants are never revoked.
// swagger:model UserBadge
type UserBadge struct {
	UUIDBase
	UserID   string    `gorm:"index;type:varchar(36);not null" json:"userId"`
	BadgeID  string    `gorm:"index;type:varchar(36);not null" json:"badgeId"`
	Badge    *Badge    `gorm:"foreignKey:BadgeID" json:"badge,omitempty"`
	EarnedAt time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"earnedAt"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}
