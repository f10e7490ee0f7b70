package model

import "time"

// Achievement is a catalog entry, seeded at migration time.
type Achievement struct {
	BaseModel
	Name        string `gorm:"size:100;unique;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	Icon        string `gorm:"size:50" json:"icon"`
	XPReward    int    `gorm:"default:0" json:"xpReward"`
}

func (Achievement) TableName() string {
	return "achievements"
}

// AchievementUnlock records that a user earned an achievement. At most one
// unlock per (user, achievement).
type AchievementUnlock struct {
	BaseModel
	UserID        uint      `gorm:"not null;index:idx_user_achievement,unique" json:"userId"`
	AchievementID uint      `gorm:"not null;index:idx_user_achievement,unique" json:"achievementId"`
	EarnedAt      time.Time `gorm:"not null" json:"earnedAt"`
}

func (AchievementUnlock) TableName() string {
	return "achievement_unlocks"
}
