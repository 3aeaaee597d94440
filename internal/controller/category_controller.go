package controller

import (
	"errors"
	"strconv"

	"icsq_backend/internal/model"
	"icsq_backend/internal/service"
	"icsq_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	CategoryService *service.CategoryService
}

func NewCategoryController(categoryService *service.CategoryService) *CategoryController {
	return &CategoryController{CategoryService: categoryService}
}

// swagger:model CategoryRequest
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateCategory godoc
// @Summary 创建调查类别
// @Description 类别名称入库前统一规范化（小写、去掉注释后缀）
// @Tags 类别
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CategoryRequest true "类别信息"
// @Success 201 {object} util.Response{data=model.Category} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "类别名称已存在"
// @Router /api/categories [post]
func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	var req CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	category := &model.Category{Name: req.Name, Description: req.Description}
	if err := c.CategoryService.Create(claims.UserID, category); err != nil {
		switch {
		case errors.Is(err, util.ErrCategoryNameTaken):
			util.Error(ctx, 409, "类别名称已存在")
		case errors.Is(err, util.ErrEmptyCategoryName):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, category)
}

// ListCategories godoc
// @Summary 类别列表
// @Tags 类别
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Category} "成功"
// @Router /api/categories [get]
func (c *CategoryController) ListCategories(ctx *gin.Context) {
	categories, err := c.CategoryService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, categories)
}

// UpdateCategory godoc
// @Summary 更新类别
// @Tags 类别
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "类别ID"
// @Param   body body CategoryRequest true "类别信息"
// @Success 200 {object} util.Response{data=model.Category} "成功"
// @Failure 404 {object} util.Response "类别不存在"
// @Router /api/categories/{id} [put]
func (c *CategoryController) UpdateCategory(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid category id")
		return
	}

	var req CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	category := &model.Category{Name: req.Name, Description: req.Description}
	category.ID = uint(id)
	if err := c.CategoryService.Update(claims.UserID, category); err != nil {
		if errors.Is(err, util.ErrCategoryNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, category)
}

// DeleteCategory godoc
// @Summary 删除类别
// @Description 软删除类别，历史问卷中的类别文本保留
// @Tags 类别
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "类别ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "类别不存在"
// @Router /api/categories/{id} [delete]
func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid category id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	if err := c.CategoryService.Delete(claims.UserID, uint(id)); err != nil {
		if errors.Is(err, util.ErrCategoryNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
