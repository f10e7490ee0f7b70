package repository

import (
	"especialidades_backend/internal/model"
	"especialidades_backend/internal/util"

	"gorm.io/gorm"
)

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

func (r *AnswerRepository) Create(record *model.AnswerRecord) error {
	return r.DB.Create(record).Error
}

func (r *AnswerRepository) FindByUser(userID uint, specialization string) ([]model.AnswerRecord, error) {
	var records []model.AnswerRecord
	err := r.DB.Where("user_id = ? AND specialization = ?", userID, specialization).
		Order("answered_at").
		Find(&records).Error
	return records, err
}

func (r *AnswerRepository) CountCorrectByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.AnswerRecord{}).
		Where("user_id = ? AND is_correct = ?", userID, true).
		Count(&count).Error
	return count, err
}

// SeenQuestionNumbers returns the distinct question numbers the user has an
// answered record for, used by the unseen-only exam filter.
func (r *AnswerRepository) SeenQuestionNumbers(userID uint, specialization string) (map[int]bool, error) {
	var numbers []int
	err := r.DB.Model(&model.AnswerRecord{}).
		Where("user_id = ? AND specialization = ? AND is_answered = ?", userID, specialization, true).
		Distinct("question_number").
		Pluck("question_number", &numbers).Error
	if err != nil {
		return nil, err
	}
	seen := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		seen[n] = true
	}
	return seen, nil
}

// FailedQuestionNumbers returns the distinct question numbers the user has at
// least one incorrect answered record for.
func (r *AnswerRepository) FailedQuestionNumbers(userID uint, specialization string) (map[int]bool, error) {
	var numbers []int
	err := r.DB.Model(&model.AnswerRecord{}).
		Where("user_id = ? AND specialization = ? AND is_answered = ? AND is_correct = ?",
			userID, specialization, true, false).
		Distinct("question_number").
		Pluck("question_number", &numbers).Error
	if err != nil {
		return nil, err
	}
	failed := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		failed[n] = true
	}
	return failed, nil
}

// DailyVolume is one day of the answer-volume time series.
type DailyVolume struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

func (r *AnswerRepository) DailyVolumes(userID uint, specialization string) ([]DailyVolume, error) {
	var rows []DailyVolume
	err := r.DB.Model(&model.AnswerRecord{}).
		Select("DATE(answered_at) AS day, COUNT(*) AS count").
		Where("user_id = ? AND specialization = ?", userID, specialization).
		Group("DATE(answered_at)").
		Order("day").
		Scan(&rows).Error
	return rows, err
}

// DistinctAnswerDates lists the days the user answered at least once,
// formatted with util.DateFormat, newest first.
func (r *AnswerRepository) DistinctAnswerDates(userID uint) ([]string, error) {
	var dates []string
	err := r.DB.Model(&model.AnswerRecord{}).
		Select("DATE(answered_at)").
		Where("user_id = ?", userID).
		Distinct().
		Order("DATE(answered_at) DESC").
		Pluck("DATE(answered_at)", &dates).Error
	if err != nil {
		return nil, err
	}
	// Some drivers return full timestamps for DATE(); normalize.
	for i, d := range dates {
		if len(d) > len(util.DateFormat) {
			dates[i] = d[:len(util.DateFormat)]
		}
	}
	return dates, nil
}
