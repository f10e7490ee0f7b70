package service

import (
	"especialidades_backend/internal/model"
	"especialidades_backend/internal/repository"
	"especialidades_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPracticeForTest(t *testing.T, db *gorm.DB, bank *QuestionBankService) *PracticeService {
	t.Helper()
	g := newGamificationForTest(t, db)
	return NewPracticeService(db, repository.NewAnswerRepository(db), bank, g)
}

func TestSubmitPracticeCorrectGrantsXP(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	bank := writeTestBank(t, "sql", fourQuestionBank())
	practice := newPracticeForTest(t, db, bank)

	outcome, err := practice.SubmitPractice(user.ID, "sql", 1, []string{"A"})
	require.NoError(t, err)
	assert.Equal(t, "correct", outcome.Result)
	assert.Equal(t, []string{"A"}, outcome.CorrectAnswer)
	assert.Equal(t, "because A", outcome.Explanation)
	require.NotNil(t, outcome.Progress)
	assert.Equal(t, util.XPCorrectPractice, outcome.Progress.XPGained)
	assert.Equal(t, util.ReasonCorrectPractice, outcome.Progress.Reason)

	// First correct answer unlocks its achievement, whose reward lands in
	// xp_history alongside the practice XP.
	var unlocks int64
	require.NoError(t, db.Model(&model.AchievementUnlock{}).Where("user_id = ?", user.ID).Count(&unlocks).Error)
	assert.Equal(t, int64(1), unlocks)

	var history int64
	require.NoError(t, db.Model(&model.XPHistory{}).Where("user_id = ?", user.ID).Count(&history).Error)
	assert.Equal(t, int64(2), history)
}

func TestSubmitPracticeIncorrectGrantsNothing(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	bank := writeTestBank(t, "sql", fourQuestionBank())
	practice := newPracticeForTest(t, db, bank)

	outcome, err := practice.SubmitPractice(user.ID, "sql", 1, []string{"C"})
	require.NoError(t, err)
	assert.Equal(t, "incorrect", outcome.Result)
	assert.Nil(t, outcome.Progress)

	var history int64
	require.NoError(t, db.Model(&model.XPHistory{}).Where("user_id = ?", user.ID).Count(&history).Error)
	assert.Equal(t, int64(0), history)

	// The wrong attempt is still logged for failed-question filtering.
	var record model.AnswerRecord
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&record).Error)
	assert.False(t, record.IsCorrect)
	assert.True(t, record.IsAnswered)
	assert.Equal(t, model.ModePractice, record.Mode)
}

func TestSubmitPracticeRepeatsAllowed(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	bank := writeTestBank(t, "sql", fourQuestionBank())
	practice := newPracticeForTest(t, db, bank)

	_, err := practice.SubmitPractice(user.ID, "sql", 2, []string{"A"})
	require.NoError(t, err)
	_, err = practice.SubmitPractice(user.ID, "sql", 2, []string{"B"})
	require.NoError(t, err)

	var records int64
	require.NoError(t, db.Model(&model.AnswerRecord{}).Where("user_id = ?", user.ID).Count(&records).Error)
	assert.Equal(t, int64(2), records)
}

func TestSubmitPracticeThenStreakAdvancesDaily(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	bank := writeTestBank(t, "sql", fourQuestionBank())
	practice := newPracticeForTest(t, db, bank)

	day1 := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	now, setNow := fixedClock(day1)
	practice.now = now
	practice.Gamification.now = now

	// Same ordering as the handler: the XP-granting submit runs first, then
	// the streak check. Granting XP alone is not daily activity.
	_, err := practice.SubmitPractice(user.ID, "sql", 1, []string{"A"})
	require.NoError(t, err)
	update, err := practice.Gamification.UpdateStreak(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, update.StreakDays)
	assert.True(t, update.Incremented)

	setNow(day1.AddDate(0, 0, 1))
	_, err = practice.SubmitPractice(user.ID, "sql", 2, []string{"B"})
	require.NoError(t, err)
	update, err = practice.Gamification.UpdateStreak(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, update.StreakDays)
	assert.True(t, update.Incremented)
}

func TestSubmitPracticeUnknownQuestion(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	bank := writeTestBank(t, "sql", fourQuestionBank())
	practice := newPracticeForTest(t, db, bank)

	_, err := practice.SubmitPractice(user.ID, "sql", 99, []string{"A"})
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}
