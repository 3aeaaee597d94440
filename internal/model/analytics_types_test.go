package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreValueMarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		score ScoreValue
		want  string
	}{
		{"invalid serializes as N/A string", ScoreValue{}, `"N/A"`},
		{"valid serializes rounded", NewScore(66.666666), "66.67"},
		{"zero is a real score", NewScore(0), "0"},
		{"integer stays integer", NewScore(75), "75"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.score)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestIsValidRating(t *testing.T) {
	for _, r := range []int{0, 20, 40, 60, 80, 100} {
		assert.True(t, IsValidRating(r), "rating %d", r)
	}
	for _, r := range []int{-20, 10, 50, 70, 99, 120} {
		assert.False(t, IsValidRating(r), "rating %d", r)
	}
}

func TestSentimentRatings(t *testing.T) {
	assert.Equal(t, []int{0, 20}, SentimentRatings[SentimentDetractor])
	assert.Equal(t, []int{40, 60}, SentimentRatings[SentimentPassive])
	assert.Equal(t, []int{80, 100}, SentimentRatings[SentimentPromoter])
}

func TestBucketForAverage(t *testing.T) {
	tests := []struct {
		score float64
		want  Sentiment
	}{
		{0, SentimentDetractor},
		{40, SentimentDetractor},
		{40.1, SentimentPassive},
		{60, SentimentPassive},
		{79.9, SentimentPassive},
		{80, SentimentPromoter},
		{100, SentimentPromoter},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BucketForAverage(tt.score), "score %.1f", tt.score)
	}
}
