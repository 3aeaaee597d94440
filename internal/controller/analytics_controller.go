package controller

import (
	"errors"
	"strconv"

	"icsq_backend/internal/model"
	"icsq_backend/internal/service"
	"icsq_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	ScoreService       *service.ScoreService
	ExpectationService *service.ExpectationService
	ClusterService     *service.ClusterService
	AIService          *service.AIService
}

func NewAnalyticsController(scoreService *service.ScoreService, expectationService *service.ExpectationService, clusterService *service.ClusterService, aiService *service.AIService) *AnalyticsController {
	return &AnalyticsController{
		ScoreService:       scoreService,
		ExpectationService: expectationService,
		ClusterService:     clusterService,
		AIService:          aiService,
	}
}

// GetDepartmentScores godoc
// @Summary 全部门得分
// @Description 每个部门先按问卷求均分，再对问卷均分求平均。没有有效评分时 score 为 "N/A"
// @Tags 分析
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.DepartmentScore}
// @Router /api/analytics/department-scores [get]
func (c *AnalyticsController) GetDepartmentScores(ctx *gin.Context) {
	scores, err := c.ScoreService.GetDepartmentScores(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, scores)
}

// GetSourceScores godoc
// @Summary 单部门分来源得分
// @Description 目标部门从各调查方部门收到的得分拆解
// @Tags 分析
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "目标部门ID"
// @Success 200 {object} util.Response{data=[]model.SourceDepartmentScore}
// @Router /api/analytics/department-scores/{id} [get]
func (c *AnalyticsController) GetSourceScores(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid department id")
		return
	}

	scores, err := c.ScoreService.GetSourceScores(uint(id))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, scores)
}

// GetOverview godoc
// @Summary 平台总览
// @Description 全平台加权平均分与问卷量
// @Tags 分析
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.PlatformOverview}
// @Router /api/analytics/overview [get]
func (c *AnalyticsController) GetOverview(ctx *gin.Context) {
	overview, err := c.ScoreService.GetOverview(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// GetExpectationData godoc
// @Summary 期望反馈汇总
// @Description 目标部门的期望文本按 类别→部门→用户 三层嵌套返回
// @Tags 分析
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "目标部门ID"
// @Param category query string false "类别过滤"
// @Success 200 {object} util.Response{data=[]model.ExpectationCategory}
// @Router /api/analytics/expectation-data/{id} [get]
func (c *AnalyticsController) GetExpectationData(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid department id")
		return
	}

	data, err := c.ExpectationService.GetExpectationData(uint(id), ctx.Query("category"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, data)
}

// targetDepartmentID 主参数名 departmentId，兼容旧的 toDepartmentId。
func targetDepartmentID(ctx *gin.Context) (uint, bool) {
	raw := ctx.Query("departmentId")
	if raw == "" {
		raw = ctx.Query("toDepartmentId")
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// SummarizeByRule godoc
// @Summary 规则摘要
// @Description 不依赖外部服务的期望摘要：去重计数，按首次出现顺序输出要点
// @Tags 分析
// @Produce json
// @Security ApiKeyAuth
// @Param departmentId query int true "目标部门ID"
// @Param category query string false "类别过滤"
// @Success 200 {object} util.Response{data=object}
// @Router /api/analytics/summarize-expectations/rule [get]
func (c *AnalyticsController) SummarizeByRule(ctx *gin.Context) {
	toDepartmentID, ok := targetDepartmentID(ctx)
	if !ok {
		util.BadRequest(ctx, "departmentId is required")
		return
	}

	expectations, err := c.ExpectationService.CollectExpectations(toDepartmentID, ctx.Query("category"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"bullets": service.SummarizeByRule(expectations),
		"count":   len(expectations),
		"source":  "rule",
	})
}

// SummarizeByAI godoc
// @Summary AI摘要
// @Description 把期望文本转发给AI网关生成要点。上游失败或无要点时回退到原始期望列表
// @Tags 分析
// @Produce json
// @Security ApiKeyAuth
// @Param departmentId query int true "目标部门ID"
// @Param category query string false "类别过滤"
// @Success 200 {object} util.Response{data=object}
// @Router /api/analytics/summarize-expectations/ai [get]
func (c *AnalyticsController) SummarizeByAI(ctx *gin.Context) {
	toDepartmentID, ok := targetDepartmentID(ctx)
	if !ok {
		util.BadRequest(ctx, "departmentId is required")
		return
	}

	expectations, err := c.ExpectationService.CollectExpectations(toDepartmentID, ctx.Query("category"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	bullets, err := c.AIService.SummarizeExpectations(ctx.Request.Context(), expectations)
	source := "ai"
	if err != nil || len(bullets) == 0 {
		// 上游不可用或没有可解析要点，直接回退原始期望
		bullets = expectations
		source = "raw"
	}

	util.Success(ctx, gin.H{
		"bullets": bullets,
		"count":   len(expectations),
		"source":  source,
	})
}

// AnalyzeTrends godoc
// @Summary 期望趋势聚类
// @Description 按情感档位（promoter/passive/detractor）对期望文本做相似度聚类
// @Tags 分析
// @Produce json
// @Security ApiKeyAuth
// @Param sentiment query string true "情感档位" Enums(promoter, passive, detractor)
// @Param category query string false "类别过滤"
// @Success 200 {object} util.Response{data=[]model.ExpectationCluster}
// @Failure 400 {object} util.Response "情感档位不合法"
// @Router /api/analytics/analyze-trends [get]
func (c *AnalyticsController) AnalyzeTrends(ctx *gin.Context) {
	sentiment := model.Sentiment(ctx.Query("sentiment"))

	clusters, err := c.ClusterService.AnalyzeTrends(sentiment, ctx.Query("category"))
	if err != nil {
		if errors.Is(err, util.ErrInvalidSentiment) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, clusters)
}

// swagger:model GeneratePlansRequest
type GeneratePlansRequest struct {
	Sentiment model.Sentiment `json:"sentiment" binding:"required"`
	Category  string          `json:"category"`
}

// GenerateActionPlans godoc
// @Summary 生成行动计划草稿
// @Description 对聚类结果逐簇生成一条整改建议。草稿不落库，由前端确认后另行创建
// @Tags 分析
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body GeneratePlansRequest true "生成范围"
// @Success 200 {object} util.Response{data=[]model.ActionPlanDraft}
// @Failure 400 {object} util.Response "情感档位不合法"
// @Router /api/analytics/generate-action-plans [post]
func (c *AnalyticsController) GenerateActionPlans(ctx *gin.Context) {
	var req GeneratePlansRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	drafts, err := c.ClusterService.GenerateActionPlanDrafts(ctx.Request.Context(), req.Sentiment, req.Category)
	if err != nil {
		if errors.Is(err, util.ErrInvalidSentiment) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, drafts)
}
