package controller

import (
	"especialidades_backend/internal/service"
	"especialidades_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type GamificationController struct {
	Gamification *service.GamificationService
}

func NewGamificationController(gamification *service.GamificationService) *GamificationController {
	return &GamificationController{Gamification: gamification}
}

// GetProfile godoc
// @Summary Gamification profile
// @Description XP, level, rank, next-level requirement and current streak
// @Tags gamification
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.Profile} "Success"
// @Router /api/gamification/profile [get]
func (c *GamificationController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	profile, err := c.Gamification.GetProfile(claims.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// CheckIn godoc
// @Summary Daily check-in
// @Description Advances the day streak; a second call on the same day is a no-op
// @Tags gamification
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.StreakUpdate} "Success"
// @Router /api/gamification/checkin [post]
func (c *GamificationController) CheckIn(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	update, err := c.Gamification.UpdateStreak(claims.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, update)
}

// GetAchievements godoc
// @Summary Earned achievements
// @Tags gamification
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Achievement} "Success"
// @Router /api/gamification/achievements [get]
func (c *GamificationController) GetAchievements(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	achievements, err := c.Gamification.GetEarnedAchievements(claims.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, achievements)
}

// GetCatalog godoc
// @Summary Achievement catalog
// @Tags gamification
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Achievement} "Success"
// @Router /api/gamification/catalog [get]
func (c *GamificationController) GetCatalog(ctx *gin.Context) {
	achievements, err := c.Gamification.GetCatalog()
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, achievements)
}

// GetXPHistory godoc
// @Summary Daily XP totals
// @Tags gamification
// @Produce  json
// @Security ApiKeyAuth
// @Param   days query int false "Window in days" default(30)
// @Success 200 {object} util.Response{data=[]repository.DailyXP} "Success"
// @Router /api/gamification/xp-history [get]
func (c *GamificationController) GetXPHistory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	days, err := strconv.Atoi(ctx.DefaultQuery("days", "30"))
	if err != nil || days < 1 {
		days = 30
	}

	history, err := c.Gamification.GetXPHistory(claims.UserID, days)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, history)
}

// GetLeaderboard godoc
// @Summary XP leaderboard
// @Tags gamification
// @Produce  json
// @Param   limit query int false "Rows to return" default(10)
// @Success 200 {object} util.Response{data=[]service.LeaderboardEntry} "Success"
// @Router /api/gamification/leaderboard [get]
func (c *GamificationController) GetLeaderboard(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}

	entries, err := c.Gamification.GetLeaderboard(limit)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
