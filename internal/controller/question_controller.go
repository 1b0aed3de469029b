package controller

import (
	"errors"
	"strconv"

	"medexam_backend/internal/model"
	"medexam_backend/internal/repository"
	"medexam_backend/internal/service"
	"medexam_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// QuestionController is the admin surface of the question bank.
type QuestionController struct {
	Questions *repository.QuestionRepository
}

func NewQuestionController(questions *repository.QuestionRepository) *QuestionController {
	return &QuestionController{Questions: questions}
}

type QuestionOptionInput struct {
	Text        string `json:"text" binding:"required"`
	Explanation string `json:"explanation"`
}

type QuestionRequest struct {
	Prompt            string              `json:"prompt" binding:"required"`
	ImageURL          string              `json:"imageUrl"`
	OptionA           QuestionOptionInput `json:"optionA" binding:"required"`
	OptionB           QuestionOptionInput `json:"optionB" binding:"required"`
	OptionC           QuestionOptionInput `json:"optionC" binding:"required"`
	OptionD           QuestionOptionInput `json:"optionD" binding:"required"`
	CorrectOption     string              `json:"correctOption" binding:"required"`
	ExpandedKnowledge string              `json:"expandedKnowledge"`
	Topic             string              `json:"topic" binding:"required"`
}

func (r *QuestionRequest) apply(q *model.Question) error {
	letter, err := service.NormalizeOption(r.CorrectOption)
	if err != nil {
		return err
	}
	q.Prompt = r.Prompt
	q.ImageURL = r.ImageURL
	q.OptionA, q.ExplanationA = r.OptionA.Text, r.OptionA.Explanation
	q.OptionB, q.ExplanationB = r.OptionB.Text, r.OptionB.Explanation
	q.OptionC, q.ExplanationC = r.OptionC.Text, r.OptionC.Explanation
	q.OptionD, q.ExplanationD = r.OptionD.Text, r.OptionD.Explanation
	q.CorrectOption = letter
	q.ExpandedKnowledge = r.ExpandedKnowledge
	q.Topic = r.Topic
	return nil
}

// List godoc
// @Summary Browse the question bank (admin)
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page" default(1)
// @Param pageSize query int false "page size" default(20)
// @Param topic query string false "topic label"
// @Success 200 {object} util.Response
// @Router /api/admin/questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "20"))
	topic := ctx.Query("topic")

	questions, total, err := c.Questions.List(page, pageSize, topic)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"items": questions, "total": total, "page": page})
}

// Create godoc
// @Summary Add a question (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body QuestionRequest true "question"
// @Success 201 {object} util.Response{data=model.Question}
// @Router /api/admin/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	var req QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var q model.Question
	if err := req.apply(&q); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.Questions.Create(&q); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, &q)
}

// Update godoc
// @Summary Edit a question (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Param body body QuestionRequest true "question"
// @Success 200 {object} util.Response{data=model.Question}
// @Router /api/admin/questions/{id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	var req QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Questions.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	if err := req.apply(q); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.Questions.Update(q); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, q)
}

// Delete godoc
// @Summary Remove a question (admin)
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	if err := c.Questions.Delete(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
