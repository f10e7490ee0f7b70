package controller

import (
	"especialidades_backend/internal/service"
	"especialidades_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// GetSectionStats godoc
// @Summary Per-section progress
// @Description Correct, incorrect and unseen counts per section of a bank
// @Tags progress
// @Produce  json
// @Security ApiKeyAuth
// @Param   specialization path string true "Specialization code"
// @Success 200 {object} util.Response{data=[]service.SectionStats} "Success"
// @Failure 404 {object} util.Response "Unknown specialization or missing bank"
// @Router /api/progress/{specialization}/sections [get]
func (c *ProgressController) GetSectionStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.ProgressService.GetSectionStats(claims.UserID, ctx.Param("specialization"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// GetDailyVolumes godoc
// @Summary Daily answer volume
// @Tags progress
// @Produce  json
// @Security ApiKeyAuth
// @Param   specialization path string true "Specialization code"
// @Success 200 {object} util.Response{data=[]repository.DailyVolume} "Success"
// @Router /api/progress/{specialization}/daily [get]
func (c *ProgressController) GetDailyVolumes(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	volumes, err := c.ProgressService.GetDailyVolumes(claims.UserID, ctx.Param("specialization"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, volumes)
}

// GetStreak godoc
// @Summary Current answer-log streak
// @Description Consecutive-day streak derived from distinct answer dates
// @Tags progress
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "Success"
// @Router /api/progress/streak [get]
func (c *ProgressController) GetStreak(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	streak, err := c.ProgressService.CurrentStreak(claims.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"streakDays": streak})
}

// GetExamHistory godoc
// @Summary Scored exam history
// @Tags progress
// @Produce  json
// @Security ApiKeyAuth
// @Param   specialization path string true "Specialization code"
// @Success 200 {object} util.Response{data=[]service.ExamSummary} "Success"
// @Router /api/progress/{specialization}/exams [get]
func (c *ProgressController) GetExamHistory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	history, err := c.ProgressService.GetExamHistory(claims.UserID, ctx.Param("specialization"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, history)
}
