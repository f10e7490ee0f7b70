package service

import (
	"especialidades_backend/internal/model"
	"especialidades_backend/internal/repository"
	"especialidades_backend/internal/util"
	"especialidades_backend/pkg/logger"
	"especialidades_backend/pkg/monitoring"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ExamService drives the exam lifecycle: setup (filtering), in_progress
// (answer log + advisory timer) and the terminal scored state.
type ExamService struct {
	db           *gorm.DB
	ExamRepo     *repository.ExamRepository
	AnswerRepo   *repository.AnswerRepository
	Bank         *QuestionBankService
	Gamification *GamificationService

	now func() time.Time
}

func NewExamService(
	db *gorm.DB,
	examRepo *repository.ExamRepository,
	answerRepo *repository.AnswerRepository,
	bank *QuestionBankService,
	gamification *GamificationService,
) *ExamService {
	return &ExamService{
		db:           db,
		ExamRepo:     examRepo,
		AnswerRepo:   answerRepo,
		Bank:         bank,
		Gamification: gamification,
		now:          time.Now,
	}
}

// ExamFilters narrows the bank during exam setup. A zero range means the
// whole bank; sections match any tag; unseen/failed use the answer log.
type ExamFilters struct {
	RangeStart int      `json:"rangeStart"`
	RangeEnd   int      `json:"rangeEnd"`
	Sections   []string `json:"sections"`
	UnseenOnly bool     `json:"unseenOnly"`
	FailedOnly bool     `json:"failedOnly"`
}

// filterQuestions applies the setup filters and returns matching question
// numbers in bank order.
func (s *ExamService) filterQuestions(userID uint, specialization string, filters ExamFilters) ([]int, error) {
	questions, err := s.Bank.Questions(specialization)
	if err != nil {
		return nil, err
	}

	start := filters.RangeStart
	if start < 1 {
		start = 1
	}
	end := filters.RangeEnd
	if end < 1 || end > len(questions) {
		end = len(questions)
	}

	var seen, failed map[int]bool
	if filters.UnseenOnly {
		if seen, err = s.AnswerRepo.SeenQuestionNumbers(userID, specialization); err != nil {
			return nil, err
		}
	}
	if filters.FailedOnly {
		if failed, err = s.AnswerRepo.FailedQuestionNumbers(userID, specialization); err != nil {
			return nil, err
		}
	}

	var numbers []int
	for _, q := range questions {
		if q.QuestionNumber < start || q.QuestionNumber > end {
			continue
		}
		if len(filters.Sections) > 0 && !matchesAnySection(&q, filters.Sections) {
			continue
		}
		if filters.UnseenOnly && seen[q.QuestionNumber] {
			continue
		}
		if filters.FailedOnly && !failed[q.QuestionNumber] {
			continue
		}
		numbers = append(numbers, q.QuestionNumber)
	}
	return numbers, nil
}

func matchesAnySection(q *model.Question, sections []string) bool {
	for _, section := range sections {
		if q.HasArea(section) {
			return true
		}
	}
	return false
}

// PreviewExam reports how many questions the filters would select, so the
// caller learns about an empty set before a session exists.
func (s *ExamService) PreviewExam(userID uint, specialization string, filters ExamFilters) (int, error) {
	numbers, err := s.filterQuestions(userID, specialization, filters)
	if err != nil {
		return 0, err
	}
	return len(numbers), nil
}

// StartExam performs the setup -> in_progress transition: it fixes the
// shuffled question set and the duration, and records the start time. An
// empty filter result is rejected and no session is created.
func (s *ExamService) StartExam(userID uint, specialization string, filters ExamFilters, minutesPerQuestion float64) (*model.ExamSession, error) {
	if _, ok := model.LookupSpecialization(specialization); !ok {
		return nil, util.ErrUnknownSpecialization
	}

	numbers, err := s.filterQuestions(userID, specialization, filters)
	if err != nil {
		return nil, err
	}
	if len(numbers) == 0 {
		return nil, util.ErrNoQuestionsMatched
	}

	shuffled := make([]int, len(numbers))
	copy(shuffled, numbers)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if minutesPerQuestion <= 0 {
		minutesPerQuestion = 1.2
	}

	session := &model.ExamSession{
		UserID:          userID,
		Specialization:  specialization,
		Status:          model.ExamInProgress,
		QuestionSet:     shuffled,
		DurationSeconds: int(minutesPerQuestion * 60 * float64(len(shuffled))),
		StartTime:       s.now(),
	}
	if err := s.ExamRepo.Create(session); err != nil {
		return nil, err
	}

	logger.Log.Info("exam started",
		zap.Uint("userId", userID),
		zap.String("specialization", specialization),
		zap.Int("questions", len(shuffled)),
		zap.Int("durationSeconds", session.DurationSeconds))
	return session, nil
}

// SubmitResult reports what happened to an in-exam submission.
type SubmitResult struct {
	Accepted         bool  `json:"accepted"`
	TimedOut         bool  `json:"timedOut"`
	RemainingSeconds int   `json:"remainingSeconds"`
	ExamID           uint  `json:"examId"`
}

// SubmitAnswer appends one answer to the session log. Resubmitting a
// question is allowed; only the latest entry counts at scoring. When the
// advisory timer has expired the submission is not stored and the session is
// force-scored instead.
func (s *ExamService) SubmitAnswer(userID, examID uint, questionNumber int, answer []string) (*SubmitResult, error) {
	session, err := s.ExamRepo.FindByIDAndUser(examID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	if session.Status == model.ExamScored {
		return nil, util.ErrExamAlreadyScored
	}
	if session.Status != model.ExamInProgress {
		return nil, util.ErrExamNotInProgress
	}

	now := s.now()
	if session.TimedOut(now) {
		if _, err := s.ScoreExam(userID, examID); err != nil {
			return nil, err
		}
		return &SubmitResult{Accepted: false, TimedOut: true, ExamID: examID}, nil
	}

	if !containsNumber(session.QuestionSet, questionNumber) {
		return nil, util.ErrQuestionNotFound
	}

	sub := &model.ExamSubmission{
		ExamID:         examID,
		QuestionNumber: questionNumber,
		Answer:         answer,
		SubmittedAt:    now,
	}
	if err := s.ExamRepo.CreateSubmission(sub); err != nil {
		return nil, err
	}

	return &SubmitResult{
		Accepted:         true,
		RemainingSeconds: int(session.Remaining(now).Seconds()),
		ExamID:           examID,
	}, nil
}

func containsNumber(set []int, n int) bool {
	for _, v := range set {
		if v == n {
			return true
		}
	}
	return false
}

// QuestionOutcome is the scored result of one question in the set.
type QuestionOutcome struct {
	QuestionNumber int      `json:"questionNumber"`
	Result         string   `json:"result"`
	Submitted      []string `json:"submitted,omitempty"`
	CorrectAnswer  []string `json:"correctAnswer"`
}

// ExamResult is the terminal summary of a session.
type ExamResult struct {
	ExamID          uint              `json:"examId"`
	Specialization  string            `json:"specialization"`
	QuestionCount   int               `json:"questionCount"`
	CorrectCount    int               `json:"correctCount"`
	IncorrectCount  int               `json:"incorrectCount"`
	UnansweredCount int               `json:"unansweredCount"`
	PercentCorrect  float64           `json:"percentCorrect"`
	Threshold       float64           `json:"threshold"`
	Passed          bool              `json:"passed"`
	DurationSeconds int               `json:"durationSeconds"`
	TimeTakenSecs   int               `json:"timeTakenSeconds"`
	Outcomes        []QuestionOutcome `json:"outcomes,omitempty"`
}

// ScoreExam runs the terminal transition. For each question in the fixed set
// the latest submission wins (none means unanswered); outcome rows and the
// summary are persisted in one transaction, exactly once. Scoring an already
// scored session returns the stored summary without touching the log.
func (s *ExamService) ScoreExam(userID, examID uint) (*ExamResult, error) {
	session, err := s.ExamRepo.FindByIDAndUser(examID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	spec, ok := model.LookupSpecialization(session.Specialization)
	if !ok {
		return nil, util.ErrUnknownSpecialization
	}

	if session.Status == model.ExamScored {
		return s.storedResult(session, spec), nil
	}
	if session.Status != model.ExamInProgress {
		return nil, util.ErrExamNotInProgress
	}

	subs, err := s.ExamRepo.FindSubmissions(examID)
	if err != nil {
		return nil, err
	}

	// Latest submission per question, by timestamp.
	latest := make(map[int]*model.ExamSubmission, len(subs))
	for i := range subs {
		sub := &subs[i]
		prev, ok := latest[sub.QuestionNumber]
		if !ok || sub.SubmittedAt.After(prev.SubmittedAt) {
			latest[sub.QuestionNumber] = sub
		}
	}

	now := s.now()
	endTime := now
	if deadline := session.StartTime.Add(time.Duration(session.DurationSeconds) * time.Second); now.After(deadline) {
		endTime = deadline
	}

	var outcomes []QuestionOutcome
	correct, incorrect := 0, 0

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, number := range session.QuestionSet {
			question, err := s.Bank.Question(session.Specialization, number)
			if err != nil {
				return err
			}

			var submitted []string
			if sub, ok := latest[number]; ok {
				submitted = sub.Answer
			}
			result := Evaluate(submitted, question.CorrectAnswer)
			switch result {
			case Correct:
				correct++
			case Incorrect:
				incorrect++
			}

			record := model.AnswerRecord{
				UserID:         userID,
				Specialization: session.Specialization,
				QuestionNumber: number,
				Mode:           model.ModeExam,
				ExamID:         &session.ID,
				IsCorrect:      result == Correct,
				IsAnswered:     result != Unanswered,
				AnsweredAt:     endTime,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}

			outcomes = append(outcomes, QuestionOutcome{
				QuestionNumber: number,
				Result:         result.String(),
				Submitted:      submitted,
				CorrectAnswer:  question.CorrectAnswer,
			})
			monitoring.AnswersEvaluated.WithLabelValues(string(model.ModeExam), result.String()).Inc()
		}

		total := len(session.QuestionSet)
		session.Status = model.ExamScored
		session.EndTime = &endTime
		session.CorrectCount = correct
		session.IncorrectCount = incorrect
		session.UnansweredCount = total - correct - incorrect
		session.Passed = float64(correct)/float64(total) >= spec.PassThreshold

		if err := tx.Save(session).Error; err != nil {
			return err
		}

		if session.Passed {
			if _, err := s.Gamification.awardAchievementTx(tx, userID, util.AchievementFirstExamPassed); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	outcome := "failed"
	if session.Passed {
		outcome = "passed"
	}
	monitoring.ExamsScored.WithLabelValues(session.Specialization, outcome).Inc()
	logger.Log.Info("exam scored",
		zap.Uint("examId", examID),
		zap.Int("correct", correct),
		zap.Int("incorrect", incorrect),
		zap.Int("unanswered", session.UnansweredCount),
		zap.Bool("passed", session.Passed))

	result := s.storedResult(session, spec)
	result.Outcomes = outcomes
	return result, nil
}

func (s *ExamService) storedResult(session *model.ExamSession, spec model.Specialization) *ExamResult {
	total := len(session.QuestionSet)
	percent := 0.0
	if total > 0 {
		percent = float64(session.CorrectCount) / float64(total)
	}
	taken := 0
	if session.EndTime != nil {
		taken = int(session.EndTime.Sub(session.StartTime).Seconds())
	}
	return &ExamResult{
		ExamID:          session.ID,
		Specialization:  session.Specialization,
		QuestionCount:   total,
		CorrectCount:    session.CorrectCount,
		IncorrectCount:  session.IncorrectCount,
		UnansweredCount: session.UnansweredCount,
		PercentCorrect:  percent,
		Threshold:       spec.PassThreshold,
		Passed:          session.Passed,
		DurationSeconds: session.DurationSeconds,
		TimeTakenSecs:   taken,
	}
}

// GetSession returns a session owned by the user.
func (s *ExamService) GetSession(userID, examID uint) (*model.ExamSession, error) {
	session, err := s.ExamRepo.FindByIDAndUser(examID, userID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrExamNotFound
	}
	return session, err
}
