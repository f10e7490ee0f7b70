package service

import (
	"especialidades_backend/internal/model"
	"especialidades_backend/internal/repository"
	"especialidades_backend/internal/util"
	"time"
)

// ProgressService derives read-only statistics from the append-only answer
// log and the question bank. It holds no state of its own.
type ProgressService struct {
	AnswerRepo *repository.AnswerRepository
	ExamRepo   *repository.ExamRepository
	Bank       *QuestionBankService

	now func() time.Time
}

func NewProgressService(
	answerRepo *repository.AnswerRepository,
	examRepo *repository.ExamRepository,
	bank *QuestionBankService,
) *ProgressService {
	return &ProgressService{
		AnswerRepo: answerRepo,
		ExamRepo:   examRepo,
		Bank:       bank,
		now:        time.Now,
	}
}

// SectionStats counts outcomes per section tag. A question belongs to every
// tag it carries, so multi-section questions count in each.
type SectionStats struct {
	Section   string `json:"section"`
	Correct   int    `json:"correct"`
	Incorrect int    `json:"incorrect"`
	Unseen    int    `json:"unseen"`
	Total     int    `json:"total"`
}

// GetSectionStats classifies every bank question per section from the user's
// latest outcome: ever answered correctly beats failed beats unseen.
func (s *ProgressService) GetSectionStats(userID uint, specialization string) ([]SectionStats, error) {
	questions, err := s.Bank.Questions(specialization)
	if err != nil {
		return nil, err
	}
	records, err := s.AnswerRepo.FindByUser(userID, specialization)
	if err != nil {
		return nil, err
	}

	// Latest answered outcome per question (records arrive chronologically).
	latest := make(map[int]bool, len(records))
	answered := make(map[int]bool, len(records))
	for _, r := range records {
		if !r.IsAnswered {
			continue
		}
		answered[r.QuestionNumber] = true
		latest[r.QuestionNumber] = r.IsCorrect
	}

	bySection := make(map[string]*SectionStats)
	order := []string{}
	for _, q := range questions {
		for _, area := range q.QuestionArea {
			stats, ok := bySection[area]
			if !ok {
				stats = &SectionStats{Section: area}
				bySection[area] = stats
				order = append(order, area)
			}
			stats.Total++
			switch {
			case !answered[q.QuestionNumber]:
				stats.Unseen++
			case latest[q.QuestionNumber]:
				stats.Correct++
			default:
				stats.Incorrect++
			}
		}
	}

	out := make([]SectionStats, 0, len(order))
	for _, area := range order {
		out = append(out, *bySection[area])
	}
	return out, nil
}

// GetDailyVolumes returns the per-day answer counts for a specialization.
func (s *ProgressService) GetDailyVolumes(userID uint, specialization string) ([]repository.DailyVolume, error) {
	return s.AnswerRepo.DailyVolumes(userID, specialization)
}

// CurrentStreak derives the consecutive-day streak from the distinct dates
// in the answer log, counting back from today (or yesterday, when the user
// has not answered yet today).
func (s *ProgressService) CurrentStreak(userID uint) (int, error) {
	dates, err := s.AnswerRepo.DistinctAnswerDates(userID)
	if err != nil {
		return 0, err
	}
	if len(dates) == 0 {
		return 0, nil
	}

	set := make(map[string]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}

	day := dateOf(s.now())
	if !set[day.Format(util.DateFormat)] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for set[day.Format(util.DateFormat)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak, nil
}

// ExamSummary is one row of the exam history.
type ExamSummary struct {
	ExamID          uint       `json:"examId"`
	Specialization  string     `json:"specialization"`
	QuestionCount   int        `json:"questionCount"`
	CorrectCount    int        `json:"correctCount"`
	IncorrectCount  int        `json:"incorrectCount"`
	UnansweredCount int        `json:"unansweredCount"`
	Passed          bool       `json:"passed"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         *time.Time `json:"endTime,omitempty"`
}

// GetExamHistory lists the user's scored sessions, newest first.
func (s *ProgressService) GetExamHistory(userID uint, specialization string) ([]ExamSummary, error) {
	sessions, err := s.ExamRepo.FindByUser(userID, specialization)
	if err != nil {
		return nil, err
	}

	out := make([]ExamSummary, 0, len(sessions))
	for _, session := range sessions {
		if session.Status != model.ExamScored {
			continue
		}
		out = append(out, ExamSummary{
			ExamID:          session.ID,
			Specialization:  session.Specialization,
			QuestionCount:   len(session.QuestionSet),
			CorrectCount:    session.CorrectCount,
			IncorrectCount:  session.IncorrectCount,
			UnansweredCount: session.UnansweredCount,
			Passed:          session.Passed,
			StartTime:       session.StartTime,
			EndTime:         session.EndTime,
		})
	}
	return out, nil
}
