package service

import (
	"encoding/json"
	"especialidades_backend/internal/config"
	"especialidades_backend/internal/model"
	"especialidades_backend/internal/util"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionBankLoadsAndCaches(t *testing.T) {
	bank := writeTestBank(t, "sql", fourQuestionBank())

	questions, err := bank.Questions("sql")
	require.NoError(t, err)
	require.Len(t, questions, 4)
	assert.Equal(t, "Q1", questions[0].QuestionText)

	// Overwrite the file; the cache must still serve the old content until
	// invalidated.
	data, err := json.Marshal(fourQuestionBank()[:1])
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(bank.BankFile("sql"), data, 0644))

	questions, err = bank.Questions("sql")
	require.NoError(t, err)
	assert.Len(t, questions, 4)

	bank.Invalidate("sql")
	questions, err = bank.Questions("sql")
	require.NoError(t, err)
	assert.Len(t, questions, 1)
}

func TestQuestionBankLookup(t *testing.T) {
	bank := writeTestBank(t, "sql", fourQuestionBank())

	q, err := bank.Question("sql", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, q.QuestionNumber)
	assert.Equal(t, []string{"B"}, q.CorrectAnswer)

	_, err = bank.Question("sql", 0)
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
	_, err = bank.Question("sql", 5)
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}

func TestQuestionBankSections(t *testing.T) {
	bank := writeTestBank(t, "sql", fourQuestionBank())

	sections, err := bank.Sections("sql")
	require.NoError(t, err)
	assert.Equal(t, []string{"Compute", "Security", "Storage"}, sections)
}

func TestQuestionBankUnknownSpecialization(t *testing.T) {
	bank := writeTestBank(t, "sql", fourQuestionBank())

	_, err := bank.Questions("cobol")
	assert.ErrorIs(t, err, util.ErrUnknownSpecialization)
}

func TestQuestionBankMissingFile(t *testing.T) {
	bank := NewQuestionBankService(config.BankConfig{Path: t.TempDir()})

	_, err := bank.Questions("sql")
	assert.ErrorIs(t, err, util.ErrBankNotFound)
}

func TestQuestionBankRejectsGaps(t *testing.T) {
	questions := fourQuestionBank()
	questions[2].QuestionNumber = 7

	dir := t.TempDir()
	data, err := json.Marshal(questions)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sql_examtopics.json"), data, 0644))

	bank := NewQuestionBankService(config.BankConfig{Path: dir})
	_, err = bank.Questions("sql")
	assert.ErrorContains(t, err, "contiguous")
}

func TestQuestionBankRejectsUnofferedCorrectAnswer(t *testing.T) {
	questions := []model.Question{{
		QuestionNumber: 1,
		QuestionText:   "Q1",
		Answers:        []string{"A", "B"},
		CorrectAnswer:  []string{"Z"},
	}}

	dir := t.TempDir()
	data, err := json.Marshal(questions)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sql_examtopics.json"), data, 0644))

	bank := NewQuestionBankService(config.BankConfig{Path: dir})
	_, err = bank.Questions("sql")
	assert.ErrorContains(t, err, "not among the offered answers")
}
