package controller

import (
	"errors"
	"strconv"

	"icsq_backend/internal/model"
	"icsq_backend/internal/service"
	"icsq_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SipocController struct {
	SipocService *service.SipocService
}

func NewSipocController(sipocService *service.SipocService) *SipocController {
	return &SipocController{SipocService: sipocService}
}

// swagger:model SipocRequest
type SipocRequest struct {
	DepartmentID uint     `json:"departmentId" binding:"required"`
	Suppliers    []string `json:"suppliers"`
	Inputs       []string `json:"inputs"`
	Process      []string `json:"process"`
	Outputs      []string `json:"outputs"`
	Customers    []string `json:"customers"`
}

// CreateSipoc godoc
// @Summary 创建SIPOC文档
// @Tags SIPOC
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SipocRequest true "SIPOC内容"
// @Success 201 {object} util.Response{data=model.SipocDocument} "创建成功"
// @Failure 404 {object} util.Response "部门不存在"
// @Router /api/sipoc [post]
func (c *SipocController) CreateSipoc(ctx *gin.Context) {
	var req SipocRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	doc := &model.SipocDocument{
		DepartmentID: req.DepartmentID,
		Suppliers:    req.Suppliers,
		Inputs:       req.Inputs,
		Process:      req.Process,
		Outputs:      req.Outputs,
		Customers:    req.Customers,
	}
	if err := c.SipocService.Create(claims.UserID, doc); err != nil {
		if errors.Is(err, util.ErrDepartmentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, doc)
}

// ListSipoc godoc
// @Summary SIPOC文档列表
// @Tags SIPOC
// @Produce json
// @Security ApiKeyAuth
// @Param departmentId query int false "部门ID"
// @Success 200 {object} util.Response{data=[]model.SipocDocument} "成功"
// @Router /api/sipoc [get]
func (c *SipocController) ListSipoc(ctx *gin.Context) {
	departmentID, _ := strconv.Atoi(ctx.DefaultQuery("departmentId", "0"))
	docs, err := c.SipocService.List(uint(departmentID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, docs)
}

// GetSipoc godoc
// @Summary SIPOC文档详情
// @Tags SIPOC
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "文档ID"
// @Success 200 {object} util.Response{data=model.SipocDocument} "成功"
// @Failure 404 {object} util.Response "文档不存在"
// @Router /api/sipoc/{id} [get]
func (c *SipocController) GetSipoc(ctx *gin.Context) {
	doc, err := c.SipocService.Get(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrSipocNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, doc)
}

// UpdateSipoc godoc
// @Summary 更新SIPOC文档
// @Description 更新SIPOC条目内容，已上传的流程图URL保持不变
// @Tags SIPOC
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "文档ID"
// @Param body body SipocRequest true "SIPOC内容"
// @Success 200 {object} util.Response{data=model.SipocDocument} "成功"
// @Failure 404 {object} util.Response "文档不存在"
// @Router /api/sipoc/{id} [put]
func (c *SipocController) UpdateSipoc(ctx *gin.Context) {
	var req SipocRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	doc := &model.SipocDocument{
		DepartmentID: req.DepartmentID,
		Suppliers:    req.Suppliers,
		Inputs:       req.Inputs,
		Process:      req.Process,
		Outputs:      req.Outputs,
		Customers:    req.Customers,
	}
	doc.ID = ctx.Param("id")
	if err := c.SipocService.Update(claims.UserID, doc); err != nil {
		if errors.Is(err, util.ErrSipocNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, doc)
}

// DeleteSipoc godoc
// @Summary 删除SIPOC文档
// @Tags SIPOC
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "文档ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "文档不存在"
// @Router /api/sipoc/{id} [delete]
func (c *SipocController) DeleteSipoc(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.SipocService.Delete(claims.UserID, ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrSipocNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// UploadDiagram godoc
// @Summary 上传流程图
// @Description 上传SIPOC流程图（png/jpg/jpeg/svg/pdf）并挂到文档上
// @Tags SIPOC
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "文档ID"
// @Param file formData file true "流程图文件"
// @Success 200 {object} util.Response{data=model.SipocDocument} "成功"
// @Failure 400 {object} util.Response "文件类型不支持"
// @Failure 404 {object} util.Response "文档不存在"
// @Router /api/sipoc/{id}/diagram [post]
func (c *SipocController) UploadDiagram(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	claims := util.GetUserFromContext(ctx)
	doc, err := c.SipocService.AttachDiagram(
		ctx.Request.Context(),
		claims.UserID,
		ctx.Param("id"),
		fileHeader.Filename,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		if errors.Is(err, util.ErrSipocNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, doc)
}
