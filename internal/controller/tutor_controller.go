package controller

import (
	"medexam_backend/internal/service"
	"medexam_backend/internal/util"
	"medexam_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TutorController struct {
	TutorService *service.TutorService
}

func NewTutorController(tutorService *service.TutorService) *TutorController {
	return &TutorController{TutorService: tutorService}
}

type TutorRequest struct {
	Action      string                 `json:"action" binding:"required,oneof=analyze chat"`
	ContextData map[string]interface{} `json:"contextData"`
	UserMessage string                 `json:"userMessage"`
}

type TutorResponse struct {
	Content string `json:"content"`
}

// Ask godoc
// @Summary Ask the AI performance coach
// @Description action "analyze" reviews the supplied performance context,
// @Description action "chat" answers a free-form question grounded in it.
// @Tags tutor
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body TutorRequest true "request"
// @Success 200 {object} util.Response{data=TutorResponse}
// @Failure 502 {object} util.Response
// @Router /api/tutor [post]
func (c *TutorController) Ask(ctx *gin.Context) {
	var req TutorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var content string
	var err error
	switch req.Action {
	case service.TutorActionChat:
		if req.UserMessage == "" {
			util.BadRequest(ctx, "userMessage is required for chat")
			return
		}
		content, err = c.TutorService.Chat(ctx.Request.Context(), req.ContextData, req.UserMessage)
	default:
		content, err = c.TutorService.Analyze(ctx.Request.Context(), req.ContextData)
	}

	if err != nil {
		logger.Log.Error("tutor request failed", zap.String("action", req.Action), zap.Error(err))
		util.BadGateway(ctx, "the coach is unavailable right now, try again shortly")
		return
	}

	util.Success(ctx, TutorResponse{Content: content})
}
