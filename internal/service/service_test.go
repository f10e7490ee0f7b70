package service

import (
	"encoding/json"
	"especialidades_backend/internal/config"
	"especialidades_backend/internal/model"
	"especialidades_backend/internal/repository"
	"especialidades_backend/pkg/database"
	"especialidades_backend/pkg/logger"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	logger.Log = zap.NewNop()
}

// newTestDB opens an in-memory SQLite database with the full schema and the
// seeded achievement catalog.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()
	user := &model.User{
		Nickname: "tester",
		Email:    "tester@example.com",
		Password: "irrelevant",
		Role:     model.Student,
		Level:    1,
		Rank:     "Iniciado",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// writeTestBank writes a bank file for the given specialization and returns a
// bank service rooted at its directory.
func writeTestBank(t *testing.T, specialization string, questions []model.Question) *QuestionBankService {
	t.Helper()
	dir := t.TempDir()

	data, err := json.Marshal(questions)
	require.NoError(t, err)
	path := filepath.Join(dir, specialization+"_examtopics.json")
	require.NoError(t, os.WriteFile(path, data, 0644))

	return NewQuestionBankService(config.BankConfig{Path: dir})
}

// fourQuestionBank is a small contiguous bank: questions 1-3 single-select,
// question 4 multi-select.
func fourQuestionBank() []model.Question {
	return []model.Question{
		{
			QuestionNumber: 1,
			QuestionArea:   []string{"Storage"},
			QuestionText:   "Q1",
			Answers:        []string{"A", "B", "C"},
			CorrectAnswer:  []string{"A"},
			Explanation:    "because A",
			Reference:      []string{"https://docs.example.com/1"},
		},
		{
			QuestionNumber: 2,
			QuestionArea:   []string{"Storage", "Compute"},
			QuestionText:   "Q2",
			Answers:        []string{"A", "B", "C"},
			CorrectAnswer:  []string{"B"},
			Explanation:    "because B",
			Reference:      []string{"https://docs.example.com/2"},
		},
		{
			QuestionNumber: 3,
			QuestionArea:   []string{"Compute"},
			QuestionText:   "Q3",
			Answers:        []string{"A", "B", "C"},
			CorrectAnswer:  []string{"C"},
			Explanation:    "because C",
			Reference:      []string{"https://docs.example.com/3"},
		},
		{
			QuestionNumber: 4,
			QuestionArea:   []string{"Security"},
			QuestionText:   "Q4",
			Answers:        []string{"A", "B", "C", "D"},
			CorrectAnswer:  []string{"A", "D"},
			Explanation:    "A and D together",
			Reference:      []string{"https://docs.example.com/4"},
		},
	}
}

// fixedClock returns a now func pinned to the given time, plus a setter to
// move it.
func fixedClock(start time.Time) (func() time.Time, func(time.Time)) {
	current := start
	return func() time.Time { return current }, func(t time.Time) { current = t }
}

func newGamificationForTest(t *testing.T, db *gorm.DB) *GamificationService {
	t.Helper()
	return NewGamificationService(
		db,
		nil,
		repository.NewUserRepository(db),
		repository.NewAchievementRepository(db),
		repository.NewXPHistoryRepository(db),
	)
}
