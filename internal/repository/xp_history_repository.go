package repository

import (
	"especialidades_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type XPHistoryRepository struct {
	DB *gorm.DB
}

func NewXPHistoryRepository(db *gorm.DB) *XPHistoryRepository {
	return &XPHistoryRepository{DB: db}
}

func (r *XPHistoryRepository) FindByUser(userID uint, limit int) ([]model.XPHistory, error) {
	var history []model.XPHistory
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&history).Error
	return history, err
}

// DailyXP is one day of summed XP gains.
type DailyXP struct {
	Day     string `json:"day"`
	DailyXP int64  `json:"dailyXp"`
}

// DailyTotals sums XP per day since the cutoff.
func (r *XPHistoryRepository) DailyTotals(userID uint, since time.Time) ([]DailyXP, error) {
	var rows []DailyXP
	err := r.DB.Model(&model.XPHistory{}).
		Select("DATE(created_at) AS day, SUM(amount) AS daily_xp").
		Where("user_id = ? AND created_at >= ?", userID, since).
		Group("DATE(created_at)").
		Order("day").
		Scan(&rows).Error
	return rows, err
}
