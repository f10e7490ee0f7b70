package controller

import (
	"especialidades_backend/internal/model"
	"especialidades_backend/internal/service"
	"especialidades_backend/internal/util"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminController struct {
	AdminService   *service.AdminService
	ChatService    *service.ChatService
	StorageService *service.StorageService
}

func NewAdminController(
	adminService *service.AdminService,
	chatService *service.ChatService,
	storageService *service.StorageService,
) *AdminController {
	return &AdminController{
		AdminService:   adminService,
		ChatService:    chatService,
		StorageService: storageService,
	}
}

// ImportBank godoc
// @Summary Replace a question bank
// @Description Uploads a JSON array that becomes the specialization's bank
// @Tags admin
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   specialization path string true "Specialization code"
// @Param   file formData file true "Bank JSON"
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 400 {object} util.Response "Malformed bank"
// @Router /api/admin/banks/{specialization} [put]
func (c *AdminController) ImportBank(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing bank file")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	count, err := c.AdminService.ImportBank(claims.UserID, ctx.Param("specialization"), data)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"questionCount": count})
}

// AppendQuestion godoc
// @Summary Append a question to a bank
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   specialization path string true "Specialization code"
// @Param   body body model.Question true "Question (number is assigned server-side)"
// @Success 201 {object} util.Response{data=object} "Created"
// @Failure 400 {object} util.Response "Invalid question"
// @Router /api/admin/banks/{specialization}/questions [post]
func (c *AdminController) AppendQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var question model.Question
	if err := ctx.ShouldBindJSON(&question); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	number, err := c.AdminService.AppendQuestion(claims.UserID, ctx.Param("specialization"), question)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, gin.H{"questionNumber": number})
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Description Removes a question and renumbers the remainder
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Param   specialization path string true "Specialization code"
// @Param   number path int true "Question number"
// @Success 200 {object} util.Response "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/admin/banks/{specialization}/questions/{number} [delete]
func (c *AdminController) DeleteQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	number, err := strconv.Atoi(ctx.Param("number"))
	if err != nil {
		util.BadRequest(ctx, "invalid question number")
		return
	}

	if err := c.AdminService.DeleteQuestion(claims.UserID, ctx.Param("specialization"), number); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// DeleteAll godoc
// @Summary Empty a bank
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Param   specialization path string true "Specialization code"
// @Success 200 {object} util.Response "Success"
// @Router /api/admin/banks/{specialization} [delete]
func (c *AdminController) DeleteAll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.AdminService.DeleteAll(claims.UserID, ctx.Param("specialization")); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ExportBank godoc
// @Summary Download a bank as JSON
// @Tags admin
// @Produce  application/json
// @Security ApiKeyAuth
// @Param   specialization path string true "Specialization code"
// @Success 200 {file} file "Bank JSON"
// @Failure 404 {object} util.Response "Unknown specialization or missing bank"
// @Router /api/admin/banks/{specialization}/export [get]
func (c *AdminController) ExportBank(ctx *gin.Context) {
	specialization := ctx.Param("specialization")
	data, err := c.AdminService.ExportBank(specialization)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_examtopics.json", specialization))
	ctx.Data(200, "application/json", data)
}

// GetActionLog godoc
// @Summary Recent admin actions
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Param   limit query int false "Rows to return" default(50)
// @Success 200 {object} util.Response{data=[]model.ActionLog} "Success"
// @Router /api/admin/actions [get]
func (c *AdminController) GetActionLog(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 500 {
		limit = 50
	}

	entries, err := c.AdminService.GetActionLog(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// swagger:model IndexSnippetRequest
type IndexSnippetRequest struct {
	Specialization string `json:"specialization"`
	Title          string `json:"title" binding:"required"`
	Content        string `json:"content" binding:"required"`
	URL            string `json:"url"`
}

// IndexSnippet godoc
// @Summary Index a documentation snippet
// @Description Embeds the snippet and adds it to the chat assistant's retrieval index
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body IndexSnippetRequest true "Snippet"
// @Success 201 {object} util.Response{data=object} "Created"
// @Router /api/admin/snippets [post]
func (c *AdminController) IndexSnippet(ctx *gin.Context) {
	var req IndexSnippetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	snippet, err := c.ChatService.IndexSnippet(req.Specialization, req.Title, req.Content, req.URL)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"id": snippet.ID})
}

// DeleteSnippet godoc
// @Summary Remove an indexed snippet
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Snippet ID"
// @Success 200 {object} util.Response "Success"
// @Router /api/admin/snippets/{id} [delete]
func (c *AdminController) DeleteSnippet(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid snippet id")
		return
	}

	if err := c.ChatService.DeleteSnippet(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadAsset godoc
// @Summary Upload a bank asset
// @Description Stores an image or attachment referenced by question extra info
// @Tags admin
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "Asset"
// @Success 201 {object} util.Response{data=object} "Created"
// @Router /api/admin/assets [post]
func (c *AdminController) UploadAsset(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	filename := uuid.New().String() + filepath.Ext(file.Filename)
	contentType := file.Header.Get("Content-Type")

	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, src, file.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"url": url, "filename": filename})
}
