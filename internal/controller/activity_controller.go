package controller

import (
	"strconv"

	"icsq_backend/internal/service"
	"icsq_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	ActivityService *service.ActivityService
}

func NewActivityController(activityService *service.ActivityService) *ActivityController {
	return &ActivityController{ActivityService: activityService}
}

// ListActivity godoc
// @Summary 操作日志（管理员）
// @Description 分页列出平台操作日志，可按用户过滤
// @Tags 系统
// @Produce json
// @Security ApiKeyAuth
// @Param userId query int false "用户ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(50)
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/activity [get]
func (c *ActivityController) ListActivity(ctx *gin.Context) {
	userID, _ := strconv.Atoi(ctx.DefaultQuery("userId", "0"))
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	logs, total, err := c.ActivityService.List(uint(userID), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"logs":  logs,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}
