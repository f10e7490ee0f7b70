package service

import (
	"encoding/json"
	"especialidades_backend/internal/model"
	"especialidades_backend/internal/repository"
	"especialidades_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminForTest(t *testing.T, bank *QuestionBankService) (*AdminService, *repository.ActionLogRepository) {
	t.Helper()
	db := newTestDB(t)
	logRepo := repository.NewActionLogRepository(db)
	return NewAdminService(bank, logRepo), logRepo
}

func TestImportBankReplacesAndLogs(t *testing.T) {
	bank := writeTestBank(t, "sql", fourQuestionBank())
	admin, logRepo := newAdminForTest(t, bank)

	payload, err := json.Marshal(fourQuestionBank()[:2])
	require.NoError(t, err)

	count, err := admin.ImportBank(7, "sql", payload)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	questions, err := bank.Questions("sql")
	require.NoError(t, err)
	assert.Len(t, questions, 2)

	entries, err := logRepo.FindRecent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "import_bank", entries[0].Action)
	assert.Equal(t, uint(7), entries[0].UserID)
}

func TestImportBankRejectsBrokenPayload(t *testing.T) {
	bank := writeTestBank(t, "sql", fourQuestionBank())
	admin, _ := newAdminForTest(t, bank)

	_, err := admin.ImportBank(7, "sql", []byte("not json"))
	assert.ErrorContains(t, err, "malformed")

	// The bank on disk is untouched.
	bank.Invalidate("sql")
	questions, err := bank.Questions("sql")
	require.NoError(t, err)
	assert.Len(t, questions, 4)
}

func TestAppendQuestionAssignsNextNumber(t *testing.T) {
	bank := writeTestBank(t, "sql", fourQuestionBank())
	admin, _ := newAdminForTest(t, bank)

	number, err := admin.AppendQuestion(7, "sql", model.Question{
		QuestionText:  "Q5",
		Answers:       []string{"A", "B"},
		CorrectAnswer: []string{"B"},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, number)

	q, err := bank.Question("sql", 5)
	require.NoError(t, err)
	assert.Equal(t, "Q5", q.QuestionText)
}

func TestDeleteQuestionRenumbers(t *testing.T) {
	bank := writeTestBank(t, "sql", fourQuestionBank())
	admin, _ := newAdminForTest(t, bank)

	require.NoError(t, admin.DeleteQuestion(7, "sql", 2))

	questions, err := bank.Questions("sql")
	require.NoError(t, err)
	require.Len(t, questions, 3)
	assert.Equal(t, "Q3", questions[1].QuestionText)
	assert.Equal(t, 2, questions[1].QuestionNumber)

	err = admin.DeleteQuestion(7, "sql", 9)
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}

func TestDeleteAllEmptiesBank(t *testing.T) {
	bank := writeTestBank(t, "sql", fourQuestionBank())
	admin, _ := newAdminForTest(t, bank)

	require.NoError(t, admin.DeleteAll(7, "sql"))

	questions, err := bank.Questions("sql")
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestExportBankRoundTrips(t *testing.T) {
	bank := writeTestBank(t, "sql", fourQuestionBank())
	admin, _ := newAdminForTest(t, bank)

	data, err := admin.ExportBank("sql")
	require.NoError(t, err)

	var exported []model.Question
	require.NoError(t, json.Unmarshal(data, &exported))
	assert.Len(t, exported, 4)
}
