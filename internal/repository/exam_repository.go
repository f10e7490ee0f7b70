package repository

import (
	"especialidades_backend/internal/model"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

func (r *ExamRepository) Create(session *model.ExamSession) error {
	return r.DB.Create(session).Error
}

func (r *ExamRepository) FindByID(id uint) (*model.ExamSession, error) {
	var session model.ExamSession
	err := r.DB.First(&session, id).Error
	return &session, err
}

func (r *ExamRepository) FindByIDAndUser(id, userID uint) (*model.ExamSession, error) {
	var session model.ExamSession
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&session).Error
	return &session, err
}

func (r *ExamRepository) FindByUser(userID uint, specialization string) ([]model.ExamSession, error) {
	var sessions []model.ExamSession
	err := r.DB.Where("user_id = ? AND specialization = ?", userID, specialization).
		Order("created_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *ExamRepository) CountPassedByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ExamSession{}).
		Where("user_id = ? AND passed = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *ExamRepository) CreateSubmission(sub *model.ExamSubmission) error {
	return r.DB.Create(sub).Error
}

func (r *ExamRepository) FindSubmissions(examID uint) ([]model.ExamSubmission, error) {
	var subs []model.ExamSubmission
	err := r.DB.Where("exam_id = ?", examID).
		Order("submitted_at").
		Find(&subs).Error
	return subs, err
}
