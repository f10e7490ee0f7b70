package service

import (
	"encoding/json"
	"especialidades_backend/internal/config"
	"especialidades_backend/internal/model"
	"especialidades_backend/internal/util"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// QuestionBankService loads the flat-file question banks, one JSON array per
// specialization, and caches them until an admin mutation invalidates.
type QuestionBankService struct {
	path  string
	mu    sync.RWMutex
	cache map[string][]model.Question
}

func NewQuestionBankService(cfg config.BankConfig) *QuestionBankService {
	return &QuestionBankService{
		path:  cfg.Path,
		cache: make(map[string][]model.Question),
	}
}

// BankFile returns the on-disk path of a specialization's bank.
func (s *QuestionBankService) BankFile(specialization string) string {
	return filepath.Join(s.path, fmt.Sprintf("%s_examtopics.json", specialization))
}

// Questions returns the full ordered bank for a specialization. The returned
// slice is shared; callers must not mutate it.
func (s *QuestionBankService) Questions(specialization string) ([]model.Question, error) {
	if _, ok := model.LookupSpecialization(specialization); !ok {
		return nil, util.ErrUnknownSpecialization
	}

	s.mu.RLock()
	cached, ok := s.cache[specialization]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	questions, err := s.load(specialization)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[specialization] = questions
	s.mu.Unlock()
	return questions, nil
}

// Question looks up a single question by its 1-based number.
func (s *QuestionBankService) Question(specialization string, number int) (*model.Question, error) {
	questions, err := s.Questions(specialization)
	if err != nil {
		return nil, err
	}
	if number < 1 || number > len(questions) {
		return nil, util.ErrQuestionNotFound
	}
	// Numbering is validated contiguous at load, so index directly.
	return &questions[number-1], nil
}

// Sections returns the sorted distinct section tags of a bank.
func (s *QuestionBankService) Sections(specialization string) ([]string, error) {
	questions, err := s.Questions(specialization)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool)
	for _, q := range questions {
		for _, area := range q.QuestionArea {
			set[area] = true
		}
	}
	sections := make([]string, 0, len(set))
	for area := range set {
		sections = append(sections, area)
	}
	sort.Strings(sections)
	return sections, nil
}

// Invalidate drops the cached bank; the next read reloads from disk.
func (s *QuestionBankService) Invalidate(specialization string) {
	s.mu.Lock()
	delete(s.cache, specialization)
	s.mu.Unlock()
}

func (s *QuestionBankService) load(specialization string) ([]model.Question, error) {
	data, err := os.ReadFile(s.BankFile(specialization))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, util.ErrBankNotFound
		}
		return nil, err
	}

	var questions []model.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("bank %s: malformed JSON: %w", specialization, err)
	}

	if err := validateBank(specialization, questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// validateBank enforces the bank contract: valid entries numbered
// contiguously from 1.
func validateBank(specialization string, questions []model.Question) error {
	for i := range questions {
		if err := questions[i].Validate(); err != nil {
			return fmt.Errorf("bank %s: %w", specialization, err)
		}
		if questions[i].QuestionNumber != i+1 {
			return fmt.Errorf("bank %s: question at position %d is numbered %d, numbering must be contiguous from 1",
				specialization, i+1, questions[i].QuestionNumber)
		}
	}
	return nil
}
