package controller

import (
	"especialidades_backend/internal/model"
	"especialidades_backend/internal/service"
	"especialidades_backend/internal/util"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
)

type BankController struct {
	Bank *service.QuestionBankService
}

func NewBankController(bank *service.QuestionBankService) *BankController {
	return &BankController{Bank: bank}
}

// QuestionView is the student-facing shape of a question: the answer key and
// explanation stay server-side until an answer is submitted.
// swagger:model QuestionView
type QuestionView struct {
	QuestionNumber int      `json:"question_number"`
	QuestionArea   []string `json:"question_area"`
	QuestionText   string   `json:"question"`
	ExtraInfo      string   `json:"question_extra_info,omitempty"`
	Answers        []string `json:"answers"`
	MultiSelect    bool     `json:"multi_select"`
}

func toQuestionView(q *model.Question) QuestionView {
	return QuestionView{
		QuestionNumber: q.QuestionNumber,
		QuestionArea:   q.QuestionArea,
		QuestionText:   q.QuestionText,
		ExtraInfo:      q.ExtraInfo,
		Answers:        q.Answers,
		MultiSelect:    len(q.CorrectAnswer) > 1,
	}
}

// ListSpecializations godoc
// @Summary List certification tracks
// @Tags bank
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Specialization} "Success"
// @Router /api/specializations [get]
func (c *BankController) ListSpecializations(ctx *gin.Context) {
	specs := model.Specializations()
	sort.Slice(specs, func(i, j int) bool { return specs[i].Code < specs[j].Code })
	util.Success(ctx, specs)
}

// GetQuestions godoc
// @Summary List a bank's questions
// @Description Returns the student view of every question in the bank
// @Tags bank
// @Produce  json
// @Security ApiKeyAuth
// @Param   specialization path string true "Specialization code"
// @Success 200 {object} util.Response{data=[]QuestionView} "Success"
// @Failure 404 {object} util.Response "Unknown specialization or missing bank"
// @Router /api/banks/{specialization}/questions [get]
func (c *BankController) GetQuestions(ctx *gin.Context) {
	questions, err := c.Bank.Questions(ctx.Param("specialization"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	views := make([]QuestionView, len(questions))
	for i := range questions {
		views[i] = toQuestionView(&questions[i])
	}
	util.Success(ctx, views)
}

// GetQuestion godoc
// @Summary Fetch one question
// @Tags bank
// @Produce  json
// @Security ApiKeyAuth
// @Param   specialization path string true "Specialization code"
// @Param   number path int true "Question number"
// @Success 200 {object} util.Response{data=QuestionView} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/banks/{specialization}/questions/{number} [get]
func (c *BankController) GetQuestion(ctx *gin.Context) {
	number, err := strconv.Atoi(ctx.Param("number"))
	if err != nil {
		util.BadRequest(ctx, "invalid question number")
		return
	}

	question, err := c.Bank.Question(ctx.Param("specialization"), number)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, toQuestionView(question))
}

// GetSections godoc
// @Summary List a bank's section tags
// @Tags bank
// @Produce  json
// @Security ApiKeyAuth
// @Param   specialization path string true "Specialization code"
// @Success 200 {object} util.Response{data=[]string} "Success"
// @Failure 404 {object} util.Response "Unknown specialization or missing bank"
// @Router /api/banks/{specialization}/sections [get]
func (c *BankController) GetSections(ctx *gin.Context) {
	sections, err := c.Bank.Sections(ctx.Param("specialization"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, sections)
}
