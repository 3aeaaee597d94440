package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"icsq_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterBulletLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			"keeps bullet markers only",
			"Here is the summary:\n• Faster responses\n- Clearer ownership\nThanks!",
			[]string{"• Faster responses", "- Clearer ownership"},
		},
		{
			"trims indentation",
			"  • Indented bullet\n\t- Tabbed bullet",
			[]string{"• Indented bullet", "- Tabbed bullet"},
		},
		{"no bullets", "The feedback is generally positive.", nil},
		{"empty content", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterBulletLines(tt.content))
		})
	}
}

func newAITestServer(t *testing.T, reply string, gotReq *ChatCompletionRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(gotReq))

		resp := ChatCompletionResponse{}
		resp.Choices = []struct {
			Message AIChatMessage `json:"message"`
		}{
			{Message: AIChatMessage{Role: "assistant", Content: reply}},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func testAIConfig(baseURL string) config.AIConfig {
	return config.AIConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		Model:          "test-model",
		Temperature:    0.3,
		TimeoutSeconds: 5,
	}
}

func TestSummarizeExpectations(t *testing.T) {
	var gotReq ChatCompletionRequest
	srv := newAITestServer(t, "• Faster responses\nignored prose\n- Clearer ownership", &gotReq)
	defer srv.Close()

	ai := NewAIService(testAIConfig(srv.URL))
	bullets, err := ai.SummarizeExpectations(context.Background(), []string{"respond faster", "who owns my ticket"})
	require.NoError(t, err)

	assert.Equal(t, []string{"• Faster responses", "- Clearer ownership"}, bullets)
	assert.Equal(t, "test-model", gotReq.Model)
	assert.InDelta(t, 0.3, gotReq.Temperature, 0.001)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[1].Content, "respond faster")
}

func TestSuggestAction(t *testing.T) {
	var gotReq ChatCompletionRequest
	srv := newAITestServer(t, "• Introduce a shared ticket queue\nSecond line ignored", &gotReq)
	defer srv.Close()

	ai := NewAIService(testAIConfig(srv.URL))
	action, err := ai.SuggestAction(context.Background(), "fallback text", []string{"who owns my ticket"})
	require.NoError(t, err)

	// 只取第一行并去掉列表标记
	assert.Equal(t, "Introduce a shared ticket queue", action)
}

func TestSuggestActionEmptyReplyFallsBack(t *testing.T) {
	var gotReq ChatCompletionRequest
	srv := newAITestServer(t, "   ", &gotReq)
	defer srv.Close()

	ai := NewAIService(testAIConfig(srv.URL))
	action, err := ai.SuggestAction(context.Background(), "fallback text", []string{"anything"})
	require.NoError(t, err)
	assert.Equal(t, "fallback text", action)
}

func TestAIServiceUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	ai := NewAIService(testAIConfig(srv.URL))
	_, err := ai.SummarizeExpectations(context.Background(), []string{"anything"})
	assert.Error(t, err)
}

func TestAIServiceUpdateConfig(t *testing.T) {
	var gotReq ChatCompletionRequest
	srv := newAITestServer(t, "• ok", &gotReq)
	defer srv.Close()

	ai := NewAIService(testAIConfig("http://127.0.0.1:1"))
	ai.UpdateConfig(testAIConfig(srv.URL))

	_, err := ai.SummarizeExpectations(context.Background(), []string{"anything"})
	require.NoError(t, err)
	assert.Equal(t, "test-model", gotReq.Model)
}
