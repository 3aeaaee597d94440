package service

import (
	"context"
	"strings"

	"icsq_backend/internal/model"
	"icsq_backend/internal/repository"
	"icsq_backend/internal/util"
	"icsq_backend/pkg/logger"

	"go.uber.org/zap"
)

// 相似度判定：完全相等 1.0，包含关系 0.8，其余用编辑距离比值。
// 0.6 是历史阈值，改动会影响聚类口径。
const (
	similarityEqual       = 1.0
	similarityContainment = 0.8
	similarityThreshold   = 0.6
)

type ClusterService struct {
	SurveyRepo *repository.SurveyRepository
	AI         *AIService
}

func NewClusterService(surveyRepo *repository.SurveyRepository, ai *AIService) *ClusterService {
	return &ClusterService{SurveyRepo: surveyRepo, AI: ai}
}

// similarity 规范化文本的相似度。
func similarity(a, b string) float64 {
	if a == b {
		return similarityEqual
	}
	if a == "" || b == "" {
		return 0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return similarityContainment
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	return 1 - float64(util.Levenshtein(a, b))/float64(maxLen)
}

// ClusterExpectations 贪心单链聚类，O(n²) 次字符串比较。
// 按原始顺序扫描：每个未归类条目开新簇，向后吸收所有相似的未归类条目，
// 已归类条目不再重分配。因此结果对输入顺序敏感——A~B、B~C、A≁C 时
// A 和 B 成一簇，C 独立成簇，不会经 B 传递合并。数据量小，接受平方开销。
func ClusterExpectations(rows []model.ExpectationRow, sentiment model.Sentiment) []model.ExpectationCluster {
	normalized := make([]string, len(rows))
	for i, row := range rows {
		normalized[i] = util.NormalizeText(row.Expectation)
	}

	used := make([]bool, len(rows))
	var clusters []model.ExpectationCluster

	for i := range rows {
		if used[i] {
			continue
		}
		used[i] = true

		members := []int{i}
		for j := i + 1; j < len(rows); j++ {
			if used[j] {
				continue
			}
			if similarity(normalized[i], normalized[j]) >= similarityThreshold {
				used[j] = true
				members = append(members, j)
			}
		}

		cluster := model.ExpectationCluster{
			ID:             len(clusters) + 1,
			Representative: rows[i].Expectation,
			Category:       modeCategory(rows, members),
			Sentiment:      sentiment,
		}
		for _, m := range members {
			cluster.Responses = append(cluster.Responses, model.ClusterResponse{
				Text:     rows[m].Expectation,
				User:     rows[m].UserName,
				Category: rows[m].Category,
			})
		}
		clusters = append(clusters, cluster)
	}
	return clusters
}

// modeCategory 成员中出现最多的类别，并列时取累计过程中先出现的。
func modeCategory(rows []model.ExpectationRow, members []int) string {
	counts := make(map[string]int)
	var seen []string
	for _, m := range members {
		cat := rows[m].Category
		if _, ok := counts[cat]; !ok {
			seen = append(seen, cat)
		}
		counts[cat]++
	}

	best := ""
	bestCount := 0
	for _, cat := range seen {
		if counts[cat] > bestCount {
			best = cat
			bestCount = counts[cat]
		}
	}
	return best
}

// AnalyzeTrends 按情感档位取期望文本并聚类。可选类别过滤只作用于
// 取数阶段，聚类本身是跨类别的。
func (s *ClusterService) AnalyzeTrends(sentiment model.Sentiment, category string) ([]model.ExpectationCluster, error) {
	ratings, ok := model.SentimentRatings[sentiment]
	if !ok {
		return nil, util.ErrInvalidSentiment
	}

	rows, err := s.SurveyRepo.SentimentRows(ratings)
	if err != nil {
		return nil, err
	}

	if category != "" {
		normalized := util.NormalizeCategory(category)
		filtered := rows[:0]
		for _, row := range rows {
			if row.Category == normalized {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	if len(rows) == 0 {
		return demoFallbackClusters(sentiment), nil
	}
	return ClusterExpectations(rows, sentiment), nil
}

// GenerateActionPlanDrafts 对聚类结果逐簇请求一条整改建议，产出草稿。
// AI 不可用时退回用簇代表文本充当建议，草稿不落库。
func (s *ClusterService) GenerateActionPlanDrafts(ctx context.Context, sentiment model.Sentiment, category string) ([]model.ActionPlanDraft, error) {
	clusters, err := s.AnalyzeTrends(sentiment, category)
	if err != nil {
		return nil, err
	}

	drafts := make([]model.ActionPlanDraft, 0, len(clusters))
	for _, cluster := range clusters {
		draft := model.ActionPlanDraft{
			ClusterID:       cluster.ID,
			Category:        cluster.Category,
			Sentiment:       cluster.Sentiment,
			ExpectationText: cluster.Representative,
			SuggestedAction: cluster.Representative,
			ResponseCount:   len(cluster.Responses),
		}
		if s.AI != nil {
			texts := make([]string, 0, len(cluster.Responses))
			for _, r := range cluster.Responses {
				texts = append(texts, r.Text)
			}
			if action, err := s.AI.SuggestAction(ctx, cluster.Representative, texts); err == nil && action != "" {
				draft.SuggestedAction = action
			} else if err != nil {
				logger.Log.Warn("action suggestion failed, using representative",
					zap.Int("cluster", cluster.ID), zap.Error(err))
			}
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

// demoFallbackClusters 空数据集的占位聚类。这是沿袭下来的演示行为，
// 不是真实反馈，监控侧不要把它当成线上数据。
func demoFallbackClusters(sentiment model.Sentiment) []model.ExpectationCluster {
	demo := []struct {
		text     string
		category string
	}{
		{"Faster response to interdepartmental requests", "responsiveness"},
		{"Clearer communication on ticket status and ownership", "communication"},
		{"More advance notice before process changes", "process"},
	}

	clusters := make([]model.ExpectationCluster, 0, len(demo))
	for i, d := range demo {
		clusters = append(clusters, model.ExpectationCluster{
			ID:             i + 1,
			Representative: d.text,
			Category:       d.category,
			Sentiment:      sentiment,
			Responses: []model.ClusterResponse{
				{Text: d.text, User: "Demo", Category: d.category},
			},
		})
	}
	return clusters
}
