package service

import (
	"testing"

	"icsq_backend/internal/model"
	"icsq_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "need faster turnaround", "need faster turnaround", 1.0},
		{"containment", "faster response", "faster response to requests", 0.8},
		{"empty side", "", "anything", 0},
		{"both empty", "", "", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, similarity(tt.a, tt.b), 0.001)
		})
	}
}

func TestSimilarityLevenshteinRatio(t *testing.T) {
	// "abcdefghij" vs "abcdefghxx": 距离2，长度10 → 0.8
	assert.InDelta(t, 0.8, similarity("abcdefghij", "abcdefghxx"), 0.001)
	// 完全不同的短串远低于阈值
	assert.Less(t, similarity("abc", "xyz"), 0.6)
}

func TestClusterExpectationsNormalizedEquality(t *testing.T) {
	// 规范化后相同的文本（标点、大小写差异）以 1.0 相似度聚到一簇
	a := util.NormalizeText("Need faster turnaround")
	b := util.NormalizeText("need faster turnaround!!")
	assert.InDelta(t, 1.0, similarity(a, b), 0.001)

	rows := []model.ExpectationRow{
		{Expectation: "Need faster turnaround", Category: "timeliness", UserName: "Alice"},
		{Expectation: "need faster turnaround!!", Category: "timeliness", UserName: "Bob"},
	}
	clusters := ClusterExpectations(rows, model.SentimentDetractor)
	require.Len(t, clusters, 1)
	assert.Len(t, clusters[0].Responses, 2)
	assert.Equal(t, "Need faster turnaround", clusters[0].Representative)
}

func TestClusterExpectationsGreedyNonTransitive(t *testing.T) {
	// A~B 且 B~C 但 A≁C：贪心扫描把 B 并入 A 的簇，
	// C 不会经 B 传递合并，自己开新簇
	a := "aaaaaaaaaa" // 与 B 距离 3 → 0.7
	b := "aaaaaaabbb" // 与 C 距离 3 → 0.7
	c := "aaaabbbbbb" // 与 A 距离 6 → 0.4
	require.GreaterOrEqual(t, similarity(a, b), 0.6)
	require.GreaterOrEqual(t, similarity(b, c), 0.6)
	require.Less(t, similarity(a, c), 0.6)

	rows := []model.ExpectationRow{
		{Expectation: a, Category: "responsiveness", UserName: "Alice"},
		{Expectation: b, Category: "responsiveness", UserName: "Bob"},
		{Expectation: c, Category: "responsiveness", UserName: "Carol"},
	}

	clusters := ClusterExpectations(rows, model.SentimentDetractor)
	require.Len(t, clusters, 2)
	assert.Len(t, clusters[0].Responses, 2)
	assert.Equal(t, a, clusters[0].Representative)
	assert.Len(t, clusters[1].Responses, 1)
	assert.Equal(t, c, clusters[1].Representative)
}

func TestClusterExpectationsNoReassignment(t *testing.T) {
	// B 先被 A 吸收后，即使与 C 更相似也不再重分配
	rows := []model.ExpectationRow{
		{Expectation: "better communication", Category: "communication", UserName: "Alice"},
		{Expectation: "better communication on tickets", Category: "communication", UserName: "Bob"},
		{Expectation: "clearer handover notes", Category: "process", UserName: "Carol"},
	}

	clusters := ClusterExpectations(rows, model.SentimentPassive)
	require.Len(t, clusters, 2)
	assert.Len(t, clusters[0].Responses, 2)
	assert.Len(t, clusters[1].Responses, 1)
	assert.Equal(t, "clearer handover notes", clusters[1].Representative)
	// 簇ID从1起连续编号
	assert.Equal(t, 1, clusters[0].ID)
	assert.Equal(t, 2, clusters[1].ID)
}

func TestModeCategoryTieBreak(t *testing.T) {
	rows := []model.ExpectationRow{
		{Category: "quality"},
		{Category: "support"},
		{Category: "support"},
		{Category: "quality"},
	}
	// 平局时取累计过程中先出现的类别
	assert.Equal(t, "quality", modeCategory(rows, []int{0, 1, 2, 3}))
	assert.Equal(t, "support", modeCategory(rows, []int{1, 2}))
}

func TestDemoFallbackClusters(t *testing.T) {
	clusters := demoFallbackClusters(model.SentimentDetractor)
	require.Len(t, clusters, 3)

	assert.Equal(t, "Faster response to interdepartmental requests", clusters[0].Representative)
	assert.Equal(t, "responsiveness", clusters[0].Category)
	assert.Equal(t, "Clearer communication on ticket status and ownership", clusters[1].Representative)
	assert.Equal(t, "communication", clusters[1].Category)
	assert.Equal(t, "More advance notice before process changes", clusters[2].Representative)
	assert.Equal(t, "process", clusters[2].Category)

	for i, c := range clusters {
		assert.Equal(t, i+1, c.ID)
		assert.Equal(t, model.SentimentDetractor, c.Sentiment)
		require.Len(t, c.Responses, 1)
		assert.Equal(t, "Demo", c.Responses[0].User)
	}
}
