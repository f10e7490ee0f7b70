package repository

import (
	"especialidades_backend/internal/model"

	"gorm.io/gorm"
)

type ActionLogRepository struct {
	DB *gorm.DB
}

func NewActionLogRepository(db *gorm.DB) *ActionLogRepository {
	return &ActionLogRepository{DB: db}
}

func (r *ActionLogRepository) Create(entry *model.ActionLog) error {
	return r.DB.Create(entry).Error
}

func (r *ActionLogRepository) FindRecent(limit int) ([]model.ActionLog, error) {
	var entries []model.ActionLog
	err := r.DB.Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
