package controller

import (
	"especialidades_backend/internal/service"
	"especialidades_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	ChatService *service.ChatService
}

func NewChatController(chatService *service.ChatService) *ChatController {
	return &ChatController{ChatService: chatService}
}

// swagger:model ChatRequest
type ChatRequest struct {
	Question       string                  `json:"question" binding:"required"`
	Specialization string                  `json:"specialization"`
	History        []service.AIChatMessage `json:"history"`
}

// Ask godoc
// @Summary Ask the study assistant
// @Description Retrieval-augmented answer with source URLs
// @Tags chat
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ChatRequest true "Question"
// @Success 200 {object} util.Response{data=service.ChatResponse} "Success"
// @Failure 400 {object} util.Response "Invalid payload"
// @Router /api/chat/ask [post]
func (c *ChatController) Ask(ctx *gin.Context) {
	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	response, err := c.ChatService.Ask(req.Question, req.Specialization)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, response)
}

// AskStream godoc
// @Summary Ask the study assistant (streaming)
// @Description SSE stream of answer chunks; sources are sent first, "end" closes the stream
// @Tags chat
// @Accept  json
// @Produce  text/event-stream
// @Security ApiKeyAuth
// @Param   body body ChatRequest true "Question"
// @Router /api/chat/stream [post]
func (c *ChatController) AskStream(ctx *gin.Context) {
	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	stream, sources, errChan := c.ChatService.AskStream(req.Question, req.Specialization, req.History)

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Header("Transfer-Encoding", "chunked")

	ctx.SSEvent("sources", sources)
	ctx.Writer.Flush()

	for content := range stream {
		ctx.SSEvent("message", content)
		ctx.Writer.Flush()
	}

	if err := <-errChan; err != nil {
		ctx.SSEvent("error", err.Error())
		ctx.Writer.Flush()
	}

	ctx.SSEvent("end", "done")
	ctx.Writer.Flush()
}
