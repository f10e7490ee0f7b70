package controller

import (
	"especialidades_backend/internal/service"
	"especialidades_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PracticeController struct {
	PracticeService *service.PracticeService
	Gamification    *service.GamificationService
}

func NewPracticeController(practiceService *service.PracticeService, gamification *service.GamificationService) *PracticeController {
	return &PracticeController{
		PracticeService: practiceService,
		Gamification:    gamification,
	}
}

// swagger:model PracticeSubmitRequest
type PracticeSubmitRequest struct {
	Specialization string   `json:"specialization" binding:"required"`
	QuestionNumber int      `json:"questionNumber" binding:"required,min=1"`
	Answer         []string `json:"answer"`
}

// Submit godoc
// @Summary Submit a practice answer
// @Description Evaluates the answer, records it and grants XP when correct
// @Tags practice
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body PracticeSubmitRequest true "Answer payload"
// @Success 200 {object} util.Response{data=service.PracticeOutcome} "Success"
// @Failure 400 {object} util.Response "Invalid payload"
// @Failure 404 {object} util.Response "Unknown specialization or question"
// @Router /api/practice/submit [post]
func (c *PracticeController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req PracticeSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	outcome, err := c.PracticeService.SubmitPractice(claims.UserID, req.Specialization, req.QuestionNumber, req.Answer)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	// Answering counts as daily activity for the streak.
	if _, err := c.Gamification.UpdateStreak(claims.UserID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, outcome)
}
