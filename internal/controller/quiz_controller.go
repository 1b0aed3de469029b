package controller

import (
	"errors"

	"medexam_backend/internal/service"
	"medexam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

type QuizAnswerRequest struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Selected   string `json:"selected" binding:"required"`
}

type QuizFlagRequest struct {
	QuestionID uint `json:"questionId" binding:"required"`
	Flagged    bool `json:"flagged"`
}

// Topics godoc
// @Summary Topic dashboard with per-topic progress
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.TopicProgress}
// @Router /api/topics [get]
func (c *QuizController) Topics(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	topics, err := c.QuizService.Topics(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, topics)
}

// Questions godoc
// @Summary Practice questions of a topic, filtered by attempt history
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param topic query string true "topic label"
// @Param filter query string false "all|unanswered|answered|correct|incorrect|flagged" default(all)
// @Success 200 {object} util.Response{data=[]service.PracticeQuestion}
// @Router /api/quiz/questions [get]
func (c *QuizController) Questions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	topic := ctx.Query("topic")
	if topic == "" {
		util.BadRequest(ctx, "topic is required")
		return
	}
	filter := service.PracticeFilter(ctx.DefaultQuery("filter", string(service.FilterAll)))

	questions, err := c.QuizService.Questions(claims.UserID, topic, filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// Answer godoc
// @Summary Record a practice answer and get immediate feedback
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body QuizAnswerRequest true "answer"
// @Success 200 {object} util.Response{data=service.AnswerFeedback}
// @Router /api/quiz/answers [post]
func (c *QuizController) Answer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req QuizAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	feedback, err := c.QuizService.Answer(claims.UserID, req.QuestionID, req.Selected)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidOption):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, feedback)
}

// Flag godoc
// @Summary Flag a question in practice mode
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body QuizFlagRequest true "flag"
// @Success 200 {object} util.Response
// @Router /api/quiz/flags [post]
func (c *QuizController) Flag(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req QuizFlagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.QuizService.Flag(claims.UserID, req.QuestionID, req.Flagged); err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
