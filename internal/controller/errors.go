package controller

import (
	"errors"
	"especialidades_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service sentinels onto HTTP statuses; anything
// unrecognized is logged and answered as a 500.
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrUnknownSpecialization),
		errors.Is(err, util.ErrBankNotFound),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrExamNotFound),
		errors.Is(err, util.ErrAchievementNotFound),
		errors.Is(err, util.ErrUserNotFound):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrNoQuestionsMatched),
		errors.Is(err, util.ErrExamNotInProgress):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrExamAlreadyScored):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
