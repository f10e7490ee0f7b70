package repository

import (
	"especialidades_backend/internal/model"

	"gorm.io/gorm"
)

type DocRepository struct {
	DB *gorm.DB
}

func NewDocRepository(db *gorm.DB) *DocRepository {
	return &DocRepository{DB: db}
}

func (r *DocRepository) Create(snippet *model.DocSnippet) error {
	return r.DB.Create(snippet).Error
}

func (r *DocRepository) FindBySpecialization(specialization string) ([]model.DocSnippet, error) {
	var snippets []model.DocSnippet
	q := r.DB
	if specialization != "" {
		q = q.Where("specialization = ?", specialization)
	}
	err := q.Find(&snippets).Error
	return snippets, err
}

func (r *DocRepository) DeleteByID(id uint) error {
	return r.DB.Delete(&model.DocSnippet{}, id).Error
}
