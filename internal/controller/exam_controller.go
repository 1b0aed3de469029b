package controller

import (
	"errors"
	"strconv"

	"medexam_backend/internal/service"
	"medexam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	ExamService   *service.ExamService
	ResultService *service.ResultService
}

func NewExamController(examService *service.ExamService, resultService *service.ResultService) *ExamController {
	return &ExamController{ExamService: examService, ResultService: resultService}
}

type StartExamRequest struct {
	QuestionCount   int `json:"questionCount"`
	DurationMinutes int `json:"durationMinutes"`
}

type SyncExamRequest struct {
	CurrentIndex  int `json:"currentIndex"`
	TimeRemaining int `json:"timeRemaining"`
}

type FinishExamRequest struct {
	TimeRemaining int `json:"timeRemaining"`
}

type SubmitAnswerRequest struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Selected   string `json:"selected" binding:"required"`
}

type FlagRequest struct {
	QuestionID uint `json:"questionId" binding:"required"`
	Flagged    bool `json:"flagged"`
}

type NoteRequest struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Note       string `json:"note"`
}

func (c *ExamController) sessionID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		util.BadRequest(ctx, "invalid session id")
		return 0, false
	}
	return uint(id), true
}

// replyExamError maps the session state machine's sentinels onto HTTP codes.
func replyExamError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSessionNotFound), errors.Is(err, util.ErrQuestionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrSessionNotOwned):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrSessionFinished),
		errors.Is(err, util.ErrSessionNotActive),
		errors.Is(err, util.ErrInvalidOption),
		errors.Is(err, util.ErrQuestionBankEmpty):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// Start godoc
// @Summary Start a timed exam (resumes the active one if any)
// @Tags exams
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body StartExamRequest true "exam parameters"
// @Success 201 {object} util.Response{data=service.ActiveExam}
// @Failure 400 {object} util.Response
// @Router /api/exams/start [post]
func (c *ExamController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StartExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam, err := c.ExamService.Start(claims.UserID, req.QuestionCount, req.DurationMinutes)
	if err != nil {
		replyExamError(ctx, err)
		return
	}

	if exam.Resumed {
		util.Success(ctx, exam)
		return
	}
	util.Created(ctx, exam)
}

// Active godoc
// @Summary Restore the in-progress exam, if one exists
// @Tags exams
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.ActiveExam}
// @Router /api/exams/active [get]
func (c *ExamController) Active(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	exam, err := c.ExamService.Resume(claims.UserID)
	if err != nil {
		replyExamError(ctx, err)
		return
	}

	// No active session is a normal empty state for the home screen.
	util.Success(ctx, exam)
}

// Sync godoc
// @Summary Persist the timer/index snapshot
// @Tags exams
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Param body body SyncExamRequest true "snapshot"
// @Success 200 {object} util.Response
// @Router /api/exams/{id}/sync [put]
func (c *ExamController) Sync(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	var req SyncExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	syncedAt, err := c.ExamService.Sync(claims.UserID, id, req.CurrentIndex, req.TimeRemaining)
	if err != nil {
		replyExamError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"lastSyncedAt": syncedAt})
}

// Pause godoc
// @Summary Soft-pause: persist the snapshot, session stays in progress
// @Tags exams
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Param body body SyncExamRequest true "snapshot"
// @Success 200 {object} util.Response
// @Router /api/exams/{id}/pause [post]
func (c *ExamController) Pause(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	var req SyncExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	syncedAt, err := c.ExamService.Pause(claims.UserID, id, req.CurrentIndex, req.TimeRemaining)
	if err != nil {
		replyExamError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"lastSyncedAt": syncedAt})
}

// SubmitAnswer godoc
// @Summary Answer one question of the running exam
// @Tags exams
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Param body body SubmitAnswerRequest true "answer"
// @Success 200 {object} util.Response{data=model.ExamAnswer}
// @Router /api/exams/{id}/answers [post]
func (c *ExamController) SubmitAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.ExamService.SubmitAnswer(claims.UserID, id, req.QuestionID, req.Selected)
	if err != nil {
		replyExamError(ctx, err)
		return
	}
	util.Success(ctx, answer)
}

// Flag godoc
// @Summary Mark or unmark a question for review
// @Tags exams
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Param body body FlagRequest true "flag"
// @Success 200 {object} util.Response
// @Router /api/exams/{id}/flag [post]
func (c *ExamController) Flag(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	var req FlagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ExamService.ToggleFlag(claims.UserID, id, req.QuestionID, req.Flagged); err != nil {
		replyExamError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Note godoc
// @Summary Save a free-text note on a question
// @Tags exams
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Param body body NoteRequest true "note"
// @Success 200 {object} util.Response
// @Router /api/exams/{id}/note [post]
func (c *ExamController) Note(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	var req NoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ExamService.SaveNote(claims.UserID, id, req.QuestionID, req.Note); err != nil {
		replyExamError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Finish godoc
// @Summary Finish the exam (terminal) and get the scored report
// @Tags exams
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Param body body FinishExamRequest true "final timer value"
// @Success 200 {object} util.Response{data=service.ExamResult}
// @Router /api/exams/{id}/finish [post]
func (c *ExamController) Finish(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	var req FinishExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ExamService.Finish(claims.UserID, id, req.TimeRemaining)
	if err != nil {
		replyExamError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Result godoc
// @Summary Scored report of a completed exam
// @Tags exams
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Success 200 {object} util.Response{data=service.ExamResult}
// @Router /api/exams/{id}/result [get]
func (c *ExamController) Result(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	result, err := c.ResultService.GetExamResult(claims.UserID, id)
	if err != nil {
		replyExamError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// History godoc
// @Summary Completed exams for the analytics screen
// @Tags exams
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.ExamSession}
// @Router /api/exams/history [get]
func (c *ExamController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessions, err := c.ExamService.History(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}
