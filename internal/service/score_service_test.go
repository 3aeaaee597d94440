package service

import (
	"encoding/json"
	"testing"

	"icsq_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dept(id uint, name string) model.Department {
	d := model.Department{Name: name}
	d.ID = id
	return d
}

func TestBuildDepartmentScoresPerSurveyAveraging(t *testing.T) {
	departments := []model.Department{dept(1, "IT")}
	// 问卷A两个类别 {100, 0}，问卷B单类别 {100}。
	// 先按问卷求均分 (50 和 100)，再求部门均分 → 75，而不是扁平的 66.67。
	rows := []model.ScoreRow{
		{SurveyID: "a", ToDepartmentID: 1, Category: "quality", Rating: 100},
		{SurveyID: "a", ToDepartmentID: 1, Category: "support", Rating: 0},
		{SurveyID: "b", ToDepartmentID: 1, Category: "quality", Rating: 100},
	}

	scores := BuildDepartmentScores(departments, rows)
	require.Len(t, scores, 1)
	require.True(t, scores[0].Score.Valid)
	assert.InDelta(t, 75, scores[0].Score.Value, 0.001)
	assert.Equal(t, 2, scores[0].SurveyCount)
	assert.InDelta(t, 100, scores[0].DetailedScores["quality"], 0.001)
	assert.InDelta(t, 0, scores[0].DetailedScores["support"], 0.001)
}

func TestBuildDepartmentScoresNoValidRatings(t *testing.T) {
	departments := []model.Department{dept(1, "IT"), dept(2, "HR")}
	// 部门1只有非法评分，部门2完全没有问卷。两者都输出 "N/A"。
	rows := []model.ScoreRow{
		{SurveyID: "a", ToDepartmentID: 1, Category: "quality", Rating: 55},
	}

	scores := BuildDepartmentScores(departments, rows)
	require.Len(t, scores, 2)
	for _, s := range scores {
		assert.False(t, s.Score.Valid)
		assert.Equal(t, 0, s.SurveyCount)

		data, err := json.Marshal(s.Score)
		require.NoError(t, err)
		assert.Equal(t, `"N/A"`, string(data))
	}
}

func TestBuildDepartmentScoresListsEveryDepartment(t *testing.T) {
	departments := []model.Department{dept(1, "IT"), dept(2, "HR"), dept(3, "Finance")}
	rows := []model.ScoreRow{
		{SurveyID: "a", ToDepartmentID: 2, Category: "quality", Rating: 80},
	}

	scores := BuildDepartmentScores(departments, rows)
	require.Len(t, scores, 3)
	assert.False(t, scores[0].Score.Valid)
	assert.True(t, scores[1].Score.Valid)
	assert.InDelta(t, 80, scores[1].Score.Value, 0.001)
	assert.False(t, scores[2].Score.Valid)
}

func TestBuildSourceScores(t *testing.T) {
	departments := []model.Department{dept(1, "IT"), dept(2, "HR"), dept(3, "Finance")}
	rows := []model.ScoreRow{
		{SurveyID: "a", ToDepartmentID: 1, FromDepartmentID: 2, Category: "quality", Rating: 100},
		{SurveyID: "b", ToDepartmentID: 1, FromDepartmentID: 2, Category: "quality", Rating: 60},
		{SurveyID: "c", ToDepartmentID: 1, FromDepartmentID: 3, Category: "quality", Rating: 20},
	}

	scores := BuildSourceScores(1, departments, rows)
	require.Len(t, scores, 2)

	byFrom := make(map[uint]model.SourceDepartmentScore)
	for _, s := range scores {
		byFrom[s.FromDepartmentID] = s
	}

	hr := byFrom[2]
	require.True(t, hr.Score.Valid)
	assert.InDelta(t, 80, hr.Score.Value, 0.001)
	assert.Equal(t, 2, hr.SurveyCount)
	assert.Equal(t, "HR", hr.FromDepartment)

	fin := byFrom[3]
	require.True(t, fin.Score.Valid)
	assert.InDelta(t, 20, fin.Score.Value, 0.001)
	assert.Equal(t, 1, fin.SurveyCount)
}

func TestBuildOverview(t *testing.T) {
	departments := []model.Department{dept(1, "IT"), dept(2, "HR")}
	rows := []model.ScoreRow{
		{SurveyID: "a", ToDepartmentID: 1, Category: "quality", Rating: 100},
		{SurveyID: "b", ToDepartmentID: 2, Category: "quality", Rating: 60},
		{SurveyID: "c", ToDepartmentID: 2, Category: "quality", Rating: 80},
	}

	overview := BuildOverview(departments, rows)
	require.True(t, overview.AverageScore.Valid)
	// 按问卷数加权：(100 + 60 + 80) / 3 = 80
	assert.InDelta(t, 80, overview.AverageScore.Value, 0.001)
	assert.Equal(t, 3, overview.SurveyCount)
	assert.Equal(t, 2, overview.DepartmentCount)
	assert.Len(t, overview.DepartmentScores, 2)
}

func TestBuildOverviewEmpty(t *testing.T) {
	overview := BuildOverview([]model.Department{dept(1, "IT")}, nil)
	assert.False(t, overview.AverageScore.Valid)
	assert.Equal(t, 0, overview.SurveyCount)
	assert.Equal(t, 1, overview.DepartmentCount)
}
