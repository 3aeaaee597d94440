package controller

import (
	"errors"
	"strconv"

	"icsq_backend/internal/model"
	"icsq_backend/internal/service"
	"icsq_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SurveyController struct {
	SurveyService *service.SurveyService
}

func NewSurveyController(surveyService *service.SurveyService) *SurveyController {
	return &SurveyController{SurveyService: surveyService}
}

// SubmitSurvey godoc
// @Summary 提交问卷
// @Description 当前用户以所属部门名义对目标部门提交一份调查问卷
// @Tags 问卷
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.SurveySubmission true "问卷内容"
// @Success 201 {object} util.Response{data=service.SurveyView} "创建成功"
// @Failure 400 {object} util.Response "评分不合法或不允许调查该部门"
// @Failure 404 {object} util.Response "目标部门不存在"
// @Router /api/surveys [post]
func (c *SurveyController) SubmitSurvey(ctx *gin.Context) {
	var submission service.SurveySubmission
	if err := ctx.ShouldBindJSON(&submission); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	view, err := c.SurveyService.Submit(ctx.Request.Context(), claims.UserID, claims.DepartmentID, &submission)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrDepartmentNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrSelfReview),
			errors.Is(err, util.ErrReviewerNotMapped),
			errors.Is(err, util.ErrInvalidRating):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, view)
}

// GetSurvey godoc
// @Summary 问卷详情
// @Tags 问卷
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "问卷ID"
// @Success 200 {object} util.Response{data=service.SurveyView} "成功"
// @Failure 404 {object} util.Response "问卷不存在"
// @Router /api/surveys/{id} [get]
func (c *SurveyController) GetSurvey(ctx *gin.Context) {
	view, err := c.SurveyService.Get(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrSurveyNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

// ListSurveys godoc
// @Summary 问卷列表
// @Description 分页列出问卷，可按目标部门或提交部门过滤
// @Tags 问卷
// @Produce  json
// @Security ApiKeyAuth
// @Param   toDepartmentId query int false "目标部门ID"
// @Param   fromDepartmentId query int false "提交部门ID"
// @Param   page query int false "页码" default(1)
// @Param   limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/surveys [get]
func (c *SurveyController) ListSurveys(ctx *gin.Context) {
	toDepartmentID, _ := strconv.Atoi(ctx.DefaultQuery("toDepartmentId", "0"))
	fromDepartmentID, _ := strconv.Atoi(ctx.DefaultQuery("fromDepartmentId", "0"))
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	views, total, err := c.SurveyService.List(uint(toDepartmentID), uint(fromDepartmentID), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"surveys": views,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// swagger:model SurveyUpdateRequest
type SurveyUpdateRequest struct {
	Responses map[string]model.ResponseBody `json:"responses" binding:"required"`
}

// UpdateSurvey godoc
// @Summary 修正问卷（管理员）
// @Description 整体替换一份问卷的回答，用于管理员修正错误提交
// @Tags 问卷
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "问卷ID"
// @Param   body body SurveyUpdateRequest true "新的回答"
// @Success 200 {object} util.Response{data=service.SurveyView} "成功"
// @Failure 400 {object} util.Response "评分不合法"
// @Failure 404 {object} util.Response "问卷不存在"
// @Router /api/surveys/{id} [put]
func (c *SurveyController) UpdateSurvey(ctx *gin.Context) {
	var req SurveyUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	view, err := c.SurveyService.AdminUpdate(ctx.Request.Context(), claims.UserID, ctx.Param("id"), req.Responses)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSurveyNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidRating):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

// DeleteSurvey godoc
// @Summary 删除问卷（管理员）
// @Tags 问卷
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "问卷ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "问卷不存在"
// @Router /api/surveys/{id} [delete]
func (c *SurveyController) DeleteSurvey(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.SurveyService.AdminDelete(ctx.Request.Context(), claims.UserID, ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrSurveyNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
