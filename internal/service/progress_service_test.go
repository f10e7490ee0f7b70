package service

import (
	"especialidades_backend/internal/model"
	"especialidades_backend/internal/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProgressForTest(t *testing.T, db *gorm.DB, bank *QuestionBankService) *ProgressService {
	t.Helper()
	return NewProgressService(
		repository.NewAnswerRepository(db),
		repository.NewExamRepository(db),
		bank,
	)
}

func answerOn(t *testing.T, db *gorm.DB, userID uint, number int, correct bool, at time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&model.AnswerRecord{
		UserID:         userID,
		Specialization: "sql",
		QuestionNumber: number,
		Mode:           model.ModePractice,
		IsCorrect:      correct,
		IsAnswered:     true,
		AnsweredAt:     at,
		BaseModel:      model.BaseModel{CreatedAt: at},
	}).Error)
}

func TestSectionStatsClassifiesLatestOutcome(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	bank := writeTestBank(t, "sql", fourQuestionBank())
	progress := newProgressForTest(t, db, bank)

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	answerOn(t, db, user.ID, 1, false, base)                  // Storage: failed first...
	answerOn(t, db, user.ID, 1, true, base.Add(time.Minute))  // ...then corrected
	answerOn(t, db, user.ID, 2, false, base.Add(2*time.Minute)) // Storage+Compute: failed

	stats, err := progress.GetSectionStats(user.ID, "sql")
	require.NoError(t, err)

	byName := map[string]SectionStats{}
	for _, s := range stats {
		byName[s.Section] = s
	}

	storage := byName["Storage"]
	assert.Equal(t, 1, storage.Correct)
	assert.Equal(t, 1, storage.Incorrect)
	assert.Equal(t, 0, storage.Unseen)
	assert.Equal(t, 2, storage.Total)

	compute := byName["Compute"]
	assert.Equal(t, 0, compute.Correct)
	assert.Equal(t, 1, compute.Incorrect)
	assert.Equal(t, 1, compute.Unseen)

	security := byName["Security"]
	assert.Equal(t, 1, security.Unseen)
	assert.Equal(t, 1, security.Total)
}

func TestCurrentStreakCountsBackFromToday(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	bank := writeTestBank(t, "sql", fourQuestionBank())
	progress := newProgressForTest(t, db, bank)

	today := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	now, _ := fixedClock(today)
	progress.now = now

	answerOn(t, db, user.ID, 1, true, today.AddDate(0, 0, -2))
	answerOn(t, db, user.ID, 2, true, today.AddDate(0, 0, -1))
	answerOn(t, db, user.ID, 3, true, today)

	streak, err := progress.CurrentStreak(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, streak)
}

func TestCurrentStreakToleratesNoAnswerYetToday(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	bank := writeTestBank(t, "sql", fourQuestionBank())
	progress := newProgressForTest(t, db, bank)

	today := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	now, _ := fixedClock(today)
	progress.now = now

	answerOn(t, db, user.ID, 1, true, today.AddDate(0, 0, -2))
	answerOn(t, db, user.ID, 2, true, today.AddDate(0, 0, -1))

	streak, err := progress.CurrentStreak(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, streak)
}

func TestCurrentStreakBrokenByGap(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	bank := writeTestBank(t, "sql", fourQuestionBank())
	progress := newProgressForTest(t, db, bank)

	today := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	now, _ := fixedClock(today)
	progress.now = now

	answerOn(t, db, user.ID, 1, true, today.AddDate(0, 0, -5))

	streak, err := progress.CurrentStreak(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}

func TestExamHistoryListsOnlyScoredSessions(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	bank := writeTestBank(t, "sql", fourQuestionBank())
	progress := newProgressForTest(t, db, bank)

	end := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	scored := model.ExamSession{
		UserID:          user.ID,
		Specialization:  "sql",
		Status:          model.ExamScored,
		QuestionSet:     model.IntList{1, 2, 3, 4},
		DurationSeconds: 240,
		StartTime:       end.Add(-4 * time.Minute),
		EndTime:         &end,
		CorrectCount:    3,
		IncorrectCount:  0,
		UnansweredCount: 1,
		Passed:          true,
	}
	require.NoError(t, db.Create(&scored).Error)

	open := model.ExamSession{
		UserID:         user.ID,
		Specialization: "sql",
		Status:         model.ExamInProgress,
		QuestionSet:    model.IntList{1, 2},
		StartTime:      end,
	}
	require.NoError(t, db.Create(&open).Error)

	history, err := progress.GetExamHistory(user.ID, "sql")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, scored.ID, history[0].ExamID)
	assert.Equal(t, 4, history[0].QuestionCount)
	assert.True(t, history[0].Passed)
}
