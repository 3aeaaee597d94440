package model

import (
	"encoding/json"
	"math"
)

// ScoreValue 平均分。没有任何有效评分时序列化为字符串 "N/A"，
// 而不是 0 或 null，前端依赖这一约定。
type ScoreValue struct {
	Value float64
	Valid bool
}

func NewScore(value float64) ScoreValue {
	return ScoreValue{Value: value, Valid: true}
}

func (s ScoreValue) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return json.Marshal("N/A")
	}
	return json.Marshal(math.Round(s.Value*100) / 100)
}

func (s *ScoreValue) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		// "N/A"
		s.Valid = false
		return nil
	}
	s.Value = v
	s.Valid = true
	return nil
}

// ScoreRow 评分查询的展开行：一行对应一份问卷里的一个类别。
type ScoreRow struct {
	SurveyID         string `json:"surveyId"`
	ToDepartmentID   uint   `json:"toDepartmentId"`
	FromDepartmentID uint   `json:"fromDepartmentId"`
	Category         string `json:"category"`
	Rating           int    `json:"rating"`
}

// ExpectationRow 期望文本查询的展开行。
type ExpectationRow struct {
	SurveyID         string `json:"surveyId"`
	Category         string `json:"category"`
	Expectation      string `json:"expectation"`
	Rating           int    `json:"rating"`
	FromDepartmentID uint   `json:"fromDepartmentId"`
	FromDepartment   string `json:"fromDepartment"`
	UserID           uint   `json:"userId"`
	UserName         string `json:"userName"`
}

// DepartmentScore 按目标部门汇总的得分报表条目。
type DepartmentScore struct {
	DepartmentID   uint               `json:"id"`
	Department     string             `json:"name"`
	Score          ScoreValue         `json:"score"`
	SurveyCount    int                `json:"surveyCount"`
	DetailedScores map[string]float64 `json:"detailedScores"`
}

// SourceDepartmentScore 单个目标部门按来源部门拆分的得分。
type SourceDepartmentScore struct {
	FromDepartmentID uint               `json:"fromDepartmentId"`
	FromDepartment   string             `json:"fromDepartment"`
	Score            ScoreValue         `json:"score"`
	SurveyCount      int                `json:"surveyCount"`
	DetailedScores   map[string]float64 `json:"detailedScores"`
}

// PlatformOverview 全平台概览。
type PlatformOverview struct {
	AverageScore     ScoreValue        `json:"averageScore"`
	SurveyCount      int               `json:"surveyCount"`
	DepartmentCount  int               `json:"departmentCount"`
	DepartmentScores []DepartmentScore `json:"departmentScores"`
}

// 期望文本按 类别 → 来源部门 → 提交人 三层嵌套，各层冒泡计数。
type ExpectationUser struct {
	UserID           uint     `json:"userId"`
	Name             string   `json:"name"`
	Expectations     []string `json:"expectations"`
	ExpectationCount int      `json:"expectationCount"`
}

type ExpectationDepartment struct {
	DepartmentID     uint              `json:"departmentId"`
	Department       string            `json:"department"`
	ExpectationCount int               `json:"expectationCount"`
	Users            []ExpectationUser `json:"users"`
}

type ExpectationCategory struct {
	Category         string                  `json:"category"`
	ExpectationCount int                     `json:"expectationCount"`
	Departments      []ExpectationDepartment `json:"departments"`
}

// Sentiment 离散评分档位到情感桶的映射（聚类路径专用）。
type Sentiment string

const (
	SentimentPromoter  Sentiment = "promoter"
	SentimentPassive   Sentiment = "passive"
	SentimentDetractor Sentiment = "detractor"
)

// SentimentRatings 聚类路径直接使用六档离散评分域：
// {0,20} detractor、{40,60} passive、{80,100} promoter。
var SentimentRatings = map[Sentiment][]int{
	SentimentDetractor: {0, 20},
	SentimentPassive:   {40, 60},
	SentimentPromoter:  {80, 100},
}

// BucketForAverage 连续平均分的桶边界：恰好 40 是 detractor，
// 恰好 80 是 promoter。两套口径并存，各自用在各自的路径上。
func BucketForAverage(score float64) Sentiment {
	if score <= 40 {
		return SentimentDetractor
	}
	if score >= 80 {
		return SentimentPromoter
	}
	return SentimentPassive
}

type ClusterResponse struct {
	Text     string `json:"text"`
	User     string `json:"user"`
	Category string `json:"category"`
}

// ExpectationCluster 近重复期望文本的贪心聚类结果。
type ExpectationCluster struct {
	ID             int               `json:"id"`
	Representative string            `json:"representative"`
	Category       string            `json:"category"`
	Sentiment      Sentiment         `json:"sentiment"`
	Responses      []ClusterResponse `json:"responses"`
}

// ActionPlanDraft 由聚类结果生成的行动计划草稿，不落库。
type ActionPlanDraft struct {
	ClusterID       int       `json:"clusterId"`
	Category        string    `json:"category"`
	Sentiment       Sentiment `json:"sentiment"`
	ExpectationText string    `json:"expectationText"`
	SuggestedAction string    `json:"suggestedAction"`
	ResponseCount   int       `json:"responseCount"`
}
