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

func newExamForTest(t *testing.T, db *gorm.DB, bank *QuestionBankService) (*ExamService, *GamificationService) {
	t.Helper()
	g := newGamificationForTest(t, db)
	e := NewExamService(
		db,
		repository.NewExamRepository(db),
		repository.NewAnswerRepository(db),
		bank,
		g,
	)
	return e, g
}

func TestStartExamRejectsEmptySelection(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	bank := writeTestBank(t, "sql", fourQuestionBank())
	exam, _ := newExamForTest(t, db, bank)

	// No failed questions exist yet, so the filter matches nothing.
	_, err := exam.StartExam(user.ID, "sql", ExamFilters{FailedOnly: true}, 0)
	assert.ErrorIs(t, err, util.ErrNoQuestionsMatched)

	var count int64
	require.NoError(t, db.Model(&model.ExamSession{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestStartExamFixesSetAndDuration(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	bank := writeTestBank(t, "sql", fourQuestionBank())
	exam, _ := newExamForTest(t, db, bank)

	session, err := exam.StartExam(user.ID, "sql", ExamFilters{}, 2.0)
	require.NoError(t, err)
	assert.Equal(t, model.ExamInProgress, session.Status)
	assert.Len(t, session.QuestionSet, 4)
	assert.ElementsMatch(t, []int{1, 2, 3, 4}, []int(session.QuestionSet))
	assert.Equal(t, 2*60*4, session.DurationSeconds)
}

func TestPreviewExamFilters(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	bank := writeTestBank(t, "sql", fourQuestionBank())
	exam, _ := newExamForTest(t, db, bank)

	count, err := exam.PreviewExam(user.ID, "sql", ExamFilters{Sections: []string{"Storage"}})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = exam.PreviewExam(user.ID, "sql", ExamFilters{RangeStart: 2, RangeEnd: 3})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Questions 1 and 2 already seen.
	for _, n := range []int{1, 2} {
		require.NoError(t, db.Create(&model.AnswerRecord{
			UserID:         user.ID,
			Specialization: "sql",
			QuestionNumber: n,
			Mode:           model.ModePractice,
			IsAnswered:     true,
			IsCorrect:      n == 1,
			AnsweredAt:     time.Now(),
		}).Error)
	}

	count, err = exam.PreviewExam(user.ID, "sql", ExamFilters{UnseenOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = exam.PreviewExam(user.ID, "sql", ExamFilters{FailedOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestExamLifecycleScoresLatestSubmission(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	bank := writeTestBank(t, "sql", fourQuestionBank())
	exam, _ := newExamForTest(t, db, bank)

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	now, setNow := fixedClock(start)
	exam.now = now

	session, err := exam.StartExam(user.ID, "sql", ExamFilters{}, 1.0)
	require.NoError(t, err)

	submit := func(number int, answer []string) *SubmitResult {
		setNow(now().Add(10 * time.Second))
		res, err := exam.SubmitAnswer(user.ID, session.ID, number, answer)
		require.NoError(t, err)
		require.True(t, res.Accepted)
		return res
	}

	submit(1, []string{"B"})        // wrong first
	submit(1, []string{"A"})        // corrected; latest wins
	submit(2, []string{"B"})        // correct
	submit(4, []string{"D", "A"})   // multi-select, order-free
	// Question 3 left unanswered.

	result, err := exam.ScoreExam(user.ID, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, result.CorrectCount)
	assert.Equal(t, 0, result.IncorrectCount)
	assert.Equal(t, 1, result.UnansweredCount)
	assert.InDelta(t, 0.75, result.PercentCorrect, 1e-9)
	assert.True(t, result.Passed)
	require.Len(t, result.Outcomes, 4)

	// Passing the first exam unlocks its achievement.
	var unlocks int64
	require.NoError(t, db.Model(&model.AchievementUnlock{}).Where("user_id = ?", user.ID).Count(&unlocks).Error)
	assert.Equal(t, int64(1), unlocks)

	// One evaluated outcome row per question in the set.
	var records int64
	require.NoError(t, db.Model(&model.AnswerRecord{}).
		Where("exam_id = ?", session.ID).Count(&records).Error)
	assert.Equal(t, int64(4), records)
}

func TestScoreExamIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	bank := writeTestBank(t, "sql", fourQuestionBank())
	exam, _ := newExamForTest(t, db, bank)

	session, err := exam.StartExam(user.ID, "sql", ExamFilters{}, 1.0)
	require.NoError(t, err)

	_, err = exam.SubmitAnswer(user.ID, session.ID, 1, []string{"A"})
	require.NoError(t, err)

	first, err := exam.ScoreExam(user.ID, session.ID)
	require.NoError(t, err)

	second, err := exam.ScoreExam(user.ID, session.ID)
	require.NoError(t, err)
	assert.Equal(t, first.CorrectCount, second.CorrectCount)
	assert.Equal(t, first.UnansweredCount, second.UnansweredCount)

	var records int64
	require.NoError(t, db.Model(&model.AnswerRecord{}).
		Where("exam_id = ?", session.ID).Count(&records).Error)
	assert.Equal(t, int64(4), records)
}

func TestSubmitAfterScoringIsRejected(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	bank := writeTestBank(t, "sql", fourQuestionBank())
	exam, _ := newExamForTest(t, db, bank)

	session, err := exam.StartExam(user.ID, "sql", ExamFilters{}, 1.0)
	require.NoError(t, err)

	_, err = exam.ScoreExam(user.ID, session.ID)
	require.NoError(t, err)

	_, err = exam.SubmitAnswer(user.ID, session.ID, 1, []string{"A"})
	assert.ErrorIs(t, err, util.ErrExamAlreadyScored)
}

func TestTimeoutForcesScoringOnNextSubmission(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	bank := writeTestBank(t, "sql", fourQuestionBank())
	exam, _ := newExamForTest(t, db, bank)

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	now, setNow := fixedClock(start)
	exam.now = now

	session, err := exam.StartExam(user.ID, "sql", ExamFilters{}, 1.0)
	require.NoError(t, err)

	setNow(start.Add(10 * time.Second))
	_, err = exam.SubmitAnswer(user.ID, session.ID, 1, []string{"A"})
	require.NoError(t, err)

	// Past the 4-minute deadline: the late answer is dropped, the session is
	// scored, and the end time is clamped to the deadline.
	setNow(start.Add(10 * time.Minute))
	res, err := exam.SubmitAnswer(user.ID, session.ID, 2, []string{"B"})
	require.NoError(t, err)
	assert.False(t, res.Accepted)
	assert.True(t, res.TimedOut)

	scored, err := exam.GetSession(user.ID, session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ExamScored, scored.Status)
	assert.Equal(t, 1, scored.CorrectCount)
	require.NotNil(t, scored.EndTime)
	assert.WithinDuration(t, start.Add(4*time.Minute), *scored.EndTime, time.Second)
}

func TestSubmitRejectsQuestionOutsideSet(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	bank := writeTestBank(t, "sql", fourQuestionBank())
	exam, _ := newExamForTest(t, db, bank)

	session, err := exam.StartExam(user.ID, "sql", ExamFilters{RangeStart: 1, RangeEnd: 2}, 1.0)
	require.NoError(t, err)

	_, err = exam.SubmitAnswer(user.ID, session.ID, 4, []string{"A"})
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}

func TestExamOwnershipIsEnforced(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	bank := writeTestBank(t, "sql", fourQuestionBank())
	exam, _ := newExamForTest(t, db, bank)

	session, err := exam.StartExam(user.ID, "sql", ExamFilters{}, 1.0)
	require.NoError(t, err)

	_, err = exam.GetSession(user.ID+1, session.ID)
	assert.ErrorIs(t, err, util.ErrExamNotFound)
}
