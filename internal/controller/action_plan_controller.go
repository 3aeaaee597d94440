package controller

import (
	"errors"
	"strconv"

	"icsq_backend/internal/model"
	"icsq_backend/internal/service"
	"icsq_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ActionPlanController struct {
	ActionPlanService *service.ActionPlanService
}

func NewActionPlanController(actionPlanService *service.ActionPlanService) *ActionPlanController {
	return &ActionPlanController{ActionPlanService: actionPlanService}
}

// CreateActionPlan godoc
// @Summary 创建行动计划
// @Description 为一条或多条期望反馈创建整改计划，所有执行人初始状态为 pending
// @Tags 行动计划
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ActionPlanInput true "计划内容"
// @Success 201 {object} util.Response{data=service.ActionPlanView} "创建成功"
// @Failure 400 {object} util.Response "执行人列表为空或含不存在的用户"
// @Router /api/action-plans [post]
func (c *ActionPlanController) CreateActionPlan(ctx *gin.Context) {
	var input service.ActionPlanInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	view, err := c.ActionPlanService.Create(claims.UserID, &input)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNotAssignee), errors.Is(err, util.ErrUserNotFound):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, view)
}

// ListActionPlans godoc
// @Summary 行动计划列表
// @Description 可按执行人、部门或派生的最终状态过滤
// @Tags 行动计划
// @Produce json
// @Security ApiKeyAuth
// @Param assigneeUserId query int false "执行人用户ID"
// @Param departmentId query int false "部门ID"
// @Param status query string false "最终状态" Enums(pending, in-progress, completed)
// @Success 200 {object} util.Response{data=[]service.ActionPlanView} "成功"
// @Router /api/action-plans [get]
func (c *ActionPlanController) ListActionPlans(ctx *gin.Context) {
	assigneeUserID, _ := strconv.Atoi(ctx.DefaultQuery("assigneeUserId", "0"))
	departmentID, _ := strconv.Atoi(ctx.DefaultQuery("departmentId", "0"))
	status := model.ActionPlanStatus(ctx.Query("status"))
	if status != "" && !model.IsValidPlanStatus(status) {
		util.BadRequest(ctx, util.ErrInvalidPlanStatus.Error())
		return
	}

	views, err := c.ActionPlanService.List(uint(assigneeUserID), uint(departmentID), status)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// GetActionPlan godoc
// @Summary 行动计划详情
// @Tags 行动计划
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "计划ID"
// @Success 200 {object} util.Response{data=service.ActionPlanView} "成功"
// @Failure 404 {object} util.Response "计划不存在"
// @Router /api/action-plans/{id} [get]
func (c *ActionPlanController) GetActionPlan(ctx *gin.Context) {
	view, err := c.ActionPlanService.Get(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrActionPlanNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

// UpdateActionPlan godoc
// @Summary 更新行动计划
// @Description 更新计划文本、目标日期或执行人列表。保留仍在列表中的执行人状态
// @Tags 行动计划
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "计划ID"
// @Param body body service.ActionPlanUpdate true "更新内容"
// @Success 200 {object} util.Response{data=service.ActionPlanView} "成功"
// @Failure 404 {object} util.Response "计划不存在"
// @Router /api/action-plans/{id} [put]
func (c *ActionPlanController) UpdateActionPlan(ctx *gin.Context) {
	var update service.ActionPlanUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	update.ID = ctx.Param("id")

	claims := util.GetUserFromContext(ctx)
	view, err := c.ActionPlanService.Update(claims.UserID, &update)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrActionPlanNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrUserNotFound):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

// swagger:model BulkUpdateRequest
type BulkUpdateRequest struct {
	Updates []service.ActionPlanUpdate `json:"updates" binding:"required"`
}

// BulkUpdateActionPlans godoc
// @Summary 批量更新行动计划
// @Description 逐条更新并返回每条的结果，单条失败不会中断其余更新
// @Tags 行动计划
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body BulkUpdateRequest true "更新列表"
// @Success 200 {object} util.Response{data=[]service.BulkUpdateResult} "成功"
// @Router /api/action-plans/bulk [put]
func (c *ActionPlanController) BulkUpdateActionPlans(ctx *gin.Context) {
	var req BulkUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	results := c.ActionPlanService.BulkUpdate(claims.UserID, req.Updates)
	util.Success(ctx, results)
}

// swagger:model StatusUpdateRequest
type StatusUpdateRequest struct {
	Status model.ActionPlanStatus `json:"status" binding:"required"`
}

// UpdateAssigneeStatus godoc
// @Summary 更新本人执行状态
// @Description 执行人更新自己在计划中的状态条目，最终状态由全部条目归约得出
// @Tags 行动计划
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "计划ID"
// @Param body body StatusUpdateRequest true "新状态"
// @Success 200 {object} util.Response{data=service.ActionPlanView} "成功"
// @Failure 400 {object} util.Response "状态不合法"
// @Failure 403 {object} util.Response "当前用户不是该计划的执行人"
// @Router /api/action-plans/{id}/status [patch]
func (c *ActionPlanController) UpdateAssigneeStatus(ctx *gin.Context) {
	var req StatusUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	view, err := c.ActionPlanService.UpdateAssigneeStatus(claims.UserID, ctx.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidPlanStatus):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrNotAssignee):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrActionPlanNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

// DeleteActionPlan godoc
// @Summary 删除行动计划（管理员）
// @Description 硬删除计划及其全部执行人和反馈来源条目
// @Tags 行动计划
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "计划ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "计划不存在"
// @Router /api/action-plans/{id} [delete]
func (c *ActionPlanController) DeleteActionPlan(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.ActionPlanService.Delete(claims.UserID, ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrActionPlanNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
