package service

import (
	"especialidades_backend/internal/model"
	"especialidades_backend/internal/repository"
	"especialidades_backend/internal/util"
	"especialidades_backend/pkg/monitoring"
	"time"

	"gorm.io/gorm"
)

// PracticeService records standalone (non-exam) answers and feeds the
// gamification engine: a correct answer earns XP immediately.
type PracticeService struct {
	db           *gorm.DB
	AnswerRepo   *repository.AnswerRepository
	Bank         *QuestionBankService
	Gamification *GamificationService

	now func() time.Time
}

func NewPracticeService(
	db *gorm.DB,
	answerRepo *repository.AnswerRepository,
	bank *QuestionBankService,
	gamification *GamificationService,
) *PracticeService {
	return &PracticeService{
		db:           db,
		AnswerRepo:   answerRepo,
		Bank:         bank,
		Gamification: gamification,
		now:          time.Now,
	}
}

// PracticeOutcome is the immediate feedback for a practice answer.
type PracticeOutcome struct {
	QuestionNumber int             `json:"questionNumber"`
	Result         string          `json:"result"`
	CorrectAnswer  []string        `json:"correctAnswer"`
	Explanation    string          `json:"explanation"`
	Reference      []string        `json:"reference"`
	Progress       *ProgressUpdate `json:"progress,omitempty"`
}

// SubmitPractice evaluates one practice answer, appends it to the answer log
// and grants XP for a correct one, all in a single transaction.
func (s *PracticeService) SubmitPractice(userID uint, specialization string, questionNumber int, answer []string) (*PracticeOutcome, error) {
	question, err := s.Bank.Question(specialization, questionNumber)
	if err != nil {
		return nil, err
	}

	result := Evaluate(answer, question.CorrectAnswer)

	outcome := &PracticeOutcome{
		QuestionNumber: questionNumber,
		Result:         result.String(),
		CorrectAnswer:  question.CorrectAnswer,
		Explanation:    question.Explanation,
		Reference:      question.Reference,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		record := model.AnswerRecord{
			UserID:         userID,
			Specialization: specialization,
			QuestionNumber: questionNumber,
			Mode:           model.ModePractice,
			IsCorrect:      result == Correct,
			IsAnswered:     result != Unanswered,
			AnsweredAt:     s.now(),
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		if result == Correct {
			update, err := s.Gamification.addExperienceTx(tx, userID, util.XPCorrectPractice, util.ReasonCorrectPractice)
			if err != nil {
				return err
			}
			outcome.Progress = update

			if _, err := s.Gamification.awardAchievementTx(tx, userID, util.AchievementFirstCorrect); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.AnswersEvaluated.WithLabelValues(string(model.ModePractice), result.String()).Inc()
	return outcome, nil
}
