package controller

import (
	"especialidades_backend/internal/service"
	"especialidades_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	ExamService  *service.ExamService
	Gamification *service.GamificationService
}

func NewExamController(examService *service.ExamService, gamification *service.GamificationService) *ExamController {
	return &ExamController{
		ExamService:  examService,
		Gamification: gamification,
	}
}

// swagger:model ExamSetupRequest
type ExamSetupRequest struct {
	Specialization     string              `json:"specialization" binding:"required"`
	Filters            service.ExamFilters `json:"filters"`
	MinutesPerQuestion float64             `json:"minutesPerQuestion"`
}

// Preview godoc
// @Summary Preview an exam's question count
// @Description Reports how many questions the filters select without creating a session
// @Tags exam
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ExamSetupRequest true "Setup filters"
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 404 {object} util.Response "Unknown specialization"
// @Router /api/exams/preview [post]
func (c *ExamController) Preview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ExamSetupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	count, err := c.ExamService.PreviewExam(claims.UserID, req.Specialization, req.Filters)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"questionCount": count})
}

// Start godoc
// @Summary Start an exam session
// @Description Fixes the shuffled question set and the timer, and moves the session to in_progress
// @Tags exam
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ExamSetupRequest true "Setup filters"
// @Success 201 {object} util.Response{data=model.ExamSession} "Created"
// @Failure 400 {object} util.Response "Filters matched zero questions"
// @Failure 404 {object} util.Response "Unknown specialization"
// @Router /api/exams [post]
func (c *ExamController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ExamSetupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.ExamService.StartExam(claims.UserID, req.Specialization, req.Filters, req.MinutesPerQuestion)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, session)
}

// swagger:model ExamAnswerRequest
type ExamAnswerRequest struct {
	QuestionNumber int      `json:"questionNumber" binding:"required,min=1"`
	Answer         []string `json:"answer"`
}

// SubmitAnswer godoc
// @Summary Submit an answer during an exam
// @Description Appends to the session's answer log; the latest entry per question wins at scoring
// @Tags exam
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Exam session ID"
// @Param   body body ExamAnswerRequest true "Answer payload"
// @Success 200 {object} util.Response{data=service.SubmitResult} "Success"
// @Failure 404 {object} util.Response "Session or question not found"
// @Failure 409 {object} util.Response "Session already scored"
// @Router /api/exams/{id}/answers [post]
func (c *ExamController) SubmitAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	examID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid exam id")
		return
	}

	var req ExamAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ExamService.SubmitAnswer(claims.UserID, uint(examID), req.QuestionNumber, req.Answer)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Score godoc
// @Summary Score an exam session
// @Description Evaluates the fixed question set and persists the terminal summary; idempotent
// @Tags exam
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Exam session ID"
// @Success 200 {object} util.Response{data=service.ExamResult} "Success"
// @Failure 404 {object} util.Response "Session not found"
// @Router /api/exams/{id}/score [post]
func (c *ExamController) Score(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	examID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid exam id")
		return
	}

	result, err := c.ExamService.ScoreExam(claims.UserID, uint(examID))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	// Finishing an exam counts as daily activity.
	if _, err := c.Gamification.UpdateStreak(claims.UserID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// GetSession godoc
// @Summary Fetch an exam session
// @Tags exam
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Exam session ID"
// @Success 200 {object} util.Response{data=model.ExamSession} "Success"
// @Failure 404 {object} util.Response "Session not found"
// @Router /api/exams/{id} [get]
func (c *ExamController) GetSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	examID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid exam id")
		return
	}

	session, err := c.ExamService.GetSession(claims.UserID, uint(examID))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, session)
}
