package controller

import (
	"errors"
	"strconv"

	"medexam_backend/internal/model"
	"medexam_backend/internal/service"
	"medexam_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NotificationController struct {
	NotificationService *service.NotificationService
}

func NewNotificationController(notificationService *service.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: notificationService}
}

type NotificationRequest struct {
	Title     string `json:"title" binding:"required"`
	Body      string `json:"body" binding:"required"`
	Icon      string `json:"icon"`
	IconColor string `json:"iconColor"`
}

// List godoc
// @Summary Notices with the caller's read flags and unread count
// @Tags notifications
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	views, err := c.NotificationService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	unread, err := c.NotificationService.UnreadCount(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"items": views, "unread": unread})
}

// MarkRead godoc
// @Summary Mark one notice as read (idempotent)
// @Tags notifications
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "notification id"
// @Success 200 {object} util.Response
// @Router /api/notifications/{id}/read [post]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		util.BadRequest(ctx, "invalid notification id")
		return
	}

	if err := c.NotificationService.MarkRead(ctx.Request.Context(), uint(id), claims.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Create godoc
// @Summary Publish a notice (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body NotificationRequest true "notice"
// @Success 201 {object} util.Response{data=model.Notification}
// @Router /api/admin/notifications [post]
func (c *NotificationController) Create(ctx *gin.Context) {
	var req NotificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	notice := &model.Notification{
		Title:     req.Title,
		Body:      req.Body,
		Icon:      req.Icon,
		IconColor: req.IconColor,
	}
	if err := c.NotificationService.Create(notice); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, notice)
}

// Update godoc
// @Summary Edit a notice (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "notification id"
// @Param body body NotificationRequest true "notice"
// @Success 200 {object} util.Response{data=model.Notification}
// @Router /api/admin/notifications/{id} [put]
func (c *NotificationController) Update(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		util.BadRequest(ctx, "invalid notification id")
		return
	}

	var req NotificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	notice, err := c.NotificationService.Update(uint(id), req.Title, req.Body, req.Icon, req.IconColor)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, notice)
}

// Delete godoc
// @Summary Remove a notice and its read markers (admin)
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "notification id"
// @Success 200 {object} util.Response
// @Router /api/admin/notifications/{id} [delete]
func (c *NotificationController) Delete(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		util.BadRequest(ctx, "invalid notification id")
		return
	}

	if err := c.NotificationService.Delete(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
