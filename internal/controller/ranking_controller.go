package controller

import (
	"strconv"

	"medexam_backend/internal/service"
	"medexam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RankingController struct {
	RankingService *service.RankingService
}

func NewRankingController(rankingService *service.RankingService) *RankingController {
	return &RankingController{RankingService: rankingService}
}

// Leaderboard godoc
// @Summary Top students by accumulated exam score
// @Tags ranking
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "entries" default(50)
// @Success 200 {object} util.Response{data=[]service.RankingEntry}
// @Router /api/ranking [get]
func (c *RankingController) Leaderboard(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	entries, err := c.RankingService.Leaderboard(ctx.Request.Context(), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
