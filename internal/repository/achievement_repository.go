package repository

import (
	"especialidades_backend/internal/model"

	"gorm.io/gorm"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

func (r *AchievementRepository) FindByName(name string) (*model.Achievement, error) {
	var achievement model.Achievement
	err := r.DB.Where("name = ?", name).First(&achievement).Error
	return &achievement, err
}

func (r *AchievementRepository) FindAll() ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.DB.Order("id").Find(&achievements).Error
	return achievements, err
}

// FindEarnedByUser joins unlocks to catalog entries, newest first.
func (r *AchievementRepository) FindEarnedByUser(userID uint) ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.DB.Joins("JOIN achievement_unlocks ON achievement_unlocks.achievement_id = achievements.id").
		Where("achievement_unlocks.user_id = ?", userID).
		Order("achievement_unlocks.earned_at DESC").
		Find(&achievements).Error
	return achievements, err
}

func (r *AchievementRepository) HasUnlock(userID, achievementID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.AchievementUnlock{}).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		Count(&count).Error
	return count > 0, err
}
