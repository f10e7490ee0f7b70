package service

import (
	"encoding/json"
	"especialidades_backend/internal/model"
	"especialidades_backend/internal/repository"
	"especialidades_backend/internal/util"
	"fmt"
	"os"
)

// AdminService mutates the flat-file question banks. Every mutation rewrites
// the bank file, drops the in-memory cache and appends an audit entry.
type AdminService struct {
	Bank          *QuestionBankService
	ActionLogRepo *repository.ActionLogRepository
}

func NewAdminService(bank *QuestionBankService, actionLogRepo *repository.ActionLogRepository) *AdminService {
	return &AdminService{
		Bank:          bank,
		ActionLogRepo: actionLogRepo,
	}
}

// ImportBank replaces a specialization's bank with the uploaded JSON array.
// The payload must already satisfy the bank contract.
func (s *AdminService) ImportBank(userID uint, specialization string, data []byte) (int, error) {
	if _, ok := model.LookupSpecialization(specialization); !ok {
		return 0, util.ErrUnknownSpecialization
	}

	var questions []model.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return 0, fmt.Errorf("malformed bank JSON: %w", err)
	}
	if err := validateBank(specialization, questions); err != nil {
		return 0, err
	}

	if err := s.writeBank(specialization, questions); err != nil {
		return 0, err
	}

	s.logAction(userID, "import_bank", specialization, fmt.Sprintf("%d questions", len(questions)))
	return len(questions), nil
}

// AppendQuestion adds a question at the end of the bank, assigning the next
// number regardless of what the payload carried.
func (s *AdminService) AppendQuestion(userID uint, specialization string, question model.Question) (int, error) {
	questions, err := s.Bank.Questions(specialization)
	if err != nil && err != util.ErrBankNotFound {
		return 0, err
	}

	question.QuestionNumber = len(questions) + 1
	if err := question.Validate(); err != nil {
		return 0, err
	}

	updated := append(append([]model.Question{}, questions...), question)
	if err := s.writeBank(specialization, updated); err != nil {
		return 0, err
	}

	s.logAction(userID, "append_question", specialization, fmt.Sprintf("question %d", question.QuestionNumber))
	return question.QuestionNumber, nil
}

// DeleteQuestion removes a question and renumbers the rest so the bank stays
// contiguous. Answer history keeps its original numbers; this is an
// authoring operation, not a migration.
func (s *AdminService) DeleteQuestion(userID uint, specialization string, number int) error {
	questions, err := s.Bank.Questions(specialization)
	if err != nil {
		return err
	}
	if number < 1 || number > len(questions) {
		return util.ErrQuestionNotFound
	}

	updated := make([]model.Question, 0, len(questions)-1)
	updated = append(updated, questions[:number-1]...)
	updated = append(updated, questions[number:]...)
	for i := range updated {
		updated[i].QuestionNumber = i + 1
	}

	if err := s.writeBank(specialization, updated); err != nil {
		return err
	}

	s.logAction(userID, "delete_question", specialization, fmt.Sprintf("question %d", number))
	return nil
}

// DeleteAll empties a specialization's bank.
func (s *AdminService) DeleteAll(userID uint, specialization string) error {
	if _, ok := model.LookupSpecialization(specialization); !ok {
		return util.ErrUnknownSpecialization
	}

	if err := s.writeBank(specialization, []model.Question{}); err != nil {
		return err
	}

	s.logAction(userID, "delete_all", specialization, "")
	return nil
}

// ExportBank returns the bank as pretty-printed JSON for download.
func (s *AdminService) ExportBank(specialization string) ([]byte, error) {
	questions, err := s.Bank.Questions(specialization)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(questions, "", "  ")
}

func (s *AdminService) GetActionLog(limit int) ([]model.ActionLog, error) {
	return s.ActionLogRepo.FindRecent(limit)
}

// writeBank persists via a temp file and rename so a crash mid-write never
// leaves a truncated bank behind.
func (s *AdminService) writeBank(specialization string, questions []model.Question) error {
	data, err := json.MarshalIndent(questions, "", "  ")
	if err != nil {
		return err
	}

	target := s.Bank.BankFile(specialization)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		return err
	}

	s.Bank.Invalidate(specialization)
	return nil
}

func (s *AdminService) logAction(userID uint, action, specialization, detail string) {
	entry := model.ActionLog{
		UserID:         userID,
		Action:         action,
		Specialization: specialization,
		Detail:         detail,
	}
	// Audit failures must not fail the mutation itself.
	_ = s.ActionLogRepo.Create(&entry)
}
