package controller

import (
	"errors"
	"strconv"

	"icsq_backend/internal/model"
	"icsq_backend/internal/service"
	"icsq_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DepartmentController struct {
	DepartmentService *service.DepartmentService
}

func NewDepartmentController(departmentService *service.DepartmentService) *DepartmentController {
	return &DepartmentController{DepartmentService: departmentService}
}

// swagger:model DepartmentRequest
type DepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateDepartment godoc
// @Summary 创建部门
// @Tags 部门
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body DepartmentRequest true "部门信息"
// @Success 201 {object} util.Response{data=model.Department} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "部门名称已存在"
// @Router /api/departments [post]
func (c *DepartmentController) CreateDepartment(ctx *gin.Context) {
	var req DepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	dept := &model.Department{Name: req.Name, Description: req.Description}
	if err := c.DepartmentService.Create(claims.UserID, dept); err != nil {
		if errors.Is(err, util.ErrDepartmentNameTaken) {
			util.Error(ctx, 409, "部门名称已存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, dept)
}

// ListDepartments godoc
// @Summary 部门列表
// @Tags 部门
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Department} "成功"
// @Router /api/departments [get]
func (c *DepartmentController) ListDepartments(ctx *gin.Context) {
	departments, err := c.DepartmentService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, departments)
}

// GetDepartment godoc
// @Summary 部门详情
// @Tags 部门
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "部门ID"
// @Success 200 {object} util.Response{data=model.Department} "成功"
// @Failure 404 {object} util.Response "部门不存在"
// @Router /api/departments/{id} [get]
func (c *DepartmentController) GetDepartment(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid department id")
		return
	}

	dept, err := c.DepartmentService.Get(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrDepartmentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, dept)
}

// UpdateDepartment godoc
// @Summary 更新部门
// @Tags 部门
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "部门ID"
// @Param   body body DepartmentRequest true "部门信息"
// @Success 200 {object} util.Response{data=model.Department} "成功"
// @Failure 404 {object} util.Response "部门不存在"
// @Router /api/departments/{id} [put]
func (c *DepartmentController) UpdateDepartment(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid department id")
		return
	}

	var req DepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	dept := &model.Department{Name: req.Name, Description: req.Description}
	dept.ID = uint(id)
	if err := c.DepartmentService.Update(claims.UserID, dept); err != nil {
		if errors.Is(err, util.ErrDepartmentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, dept)
}

// DeleteDepartment godoc
// @Summary 删除部门
// @Description 软删除部门并移除其全部调查方映射，历史问卷保留
// @Tags 部门
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "部门ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "部门不存在"
// @Failure 409 {object} util.Response "部门仍存在调查方映射"
// @Router /api/departments/{id} [delete]
func (c *DepartmentController) DeleteDepartment(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid department id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	if err := c.DepartmentService.Delete(claims.UserID, uint(id)); err != nil {
		if errors.Is(err, util.ErrDepartmentNotFound) {
			util.NotFound(ctx)
		} else if errors.Is(err, util.ErrDepartmentInUse) {
			util.Error(ctx, 409, "部门仍存在调查方映射")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// GetReviewers godoc
// @Summary 查询调查方映射
// @Description 返回允许对该部门发起问卷的部门ID列表
// @Tags 部门
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "目标部门ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "部门不存在"
// @Router /api/departments/{id}/reviewers [get]
func (c *DepartmentController) GetReviewers(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid department id")
		return
	}

	ids, err := c.DepartmentService.Reviewers(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrDepartmentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"reviewerDepartmentIds": ids})
}

// swagger:model SetReviewersRequest
type SetReviewersRequest struct {
	ReviewerDepartmentIDs []uint `json:"reviewerDepartmentIds" binding:"required"`
}

// SetReviewers godoc
// @Summary 替换调查方映射
// @Description 整体替换允许对该部门发起问卷的部门列表
// @Tags 部门
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "目标部门ID"
// @Param   body body SetReviewersRequest true "调查方部门ID列表"
// @Success 200 {object} util.Response "成功"
// @Failure 400 {object} util.Response "部门不能出现在自己的调查方列表中"
// @Failure 404 {object} util.Response "部门不存在"
// @Router /api/departments/{id}/reviewers [put]
func (c *DepartmentController) SetReviewers(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid department id")
		return
	}

	var req SetReviewersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if err := c.DepartmentService.SetReviewers(claims.UserID, uint(id), req.ReviewerDepartmentIDs); err != nil {
		switch {
		case errors.Is(err, util.ErrDepartmentNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrSelfInReviewerList):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"updated": true})
}
