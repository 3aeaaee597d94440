package service

import (
	"testing"

	"icsq_backend/internal/model"
	"icsq_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildResponsesNormalizesCategories(t *testing.T) {
	responses := map[string]model.ResponseBody{
		"Quality Of Service - Comments": {Rating: 80, Expectation: "keep it up"},
		"  Timeliness ":                 {Rating: 60, Expectation: ""},
	}

	rows, err := buildResponses(responses)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byCat := make(map[string]model.SurveyResponse)
	for _, r := range rows {
		byCat[r.Category] = r
	}
	assert.Contains(t, byCat, "quality of service")
	assert.Contains(t, byCat, "timeliness")
	assert.Equal(t, 80, byCat["quality of service"].Rating)
	assert.Equal(t, "keep it up", byCat["quality of service"].Expectation)
}

func TestBuildResponsesRejectsInvalidRating(t *testing.T) {
	responses := map[string]model.ResponseBody{
		"quality": {Rating: 50},
	}

	_, err := buildResponses(responses)
	assert.ErrorIs(t, err, util.ErrInvalidRating)
}

func TestBuildResponsesDeduplicatesNormalizedKeys(t *testing.T) {
	// 两个键规范化后落到同一类别，保留字典序靠后的覆盖
	responses := map[string]model.ResponseBody{
		"Quality": {Rating: 20, Expectation: "first"},
		"quality": {Rating: 80, Expectation: "second"},
	}

	rows, err := buildResponses(responses)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "quality", rows[0].Category)
	assert.Equal(t, 80, rows[0].Rating)
	assert.Equal(t, "second", rows[0].Expectation)
}

func TestBuildResponsesSkipsEmptyCategory(t *testing.T) {
	responses := map[string]model.ResponseBody{
		"   ":     {Rating: 60},
		"quality": {Rating: 80},
	}

	rows, err := buildResponses(responses)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "quality", rows[0].Category)
}
