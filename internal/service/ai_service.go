package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"icsq_backend/internal/config"
	"icsq_backend/pkg/monitoring"
)

// AIService 把已聚合的期望文本转发给 OpenAI 兼容接口做摘要，
// 纯透传，不在本地做生成逻辑。
type AIService struct {
	mu     sync.RWMutex
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// UpdateConfig 配置热更新回调用，替换密钥或模型无需重启。
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
	s.client = &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model       string          `json:"model"`
	Messages    []AIChatMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (s *AIService) chat(ctx context.Context, operation, system, prompt string) (content string, err error) {
	s.mu.RLock()
	cfg := s.config
	client := s.client
	s.mu.RUnlock()

	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		monitoring.AIRequestDuration.WithLabelValues(operation, outcome).Observe(time.Since(start).Seconds())
	}()

	reqBody := ChatCompletionRequest{
		Model: cfg.Model,
		Messages: []AIChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature: cfg.Temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var completion ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", err
	}
	if completion.Error != nil {
		return "", fmt.Errorf("AI API error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return "", nil
	}
	return completion.Choices[0].Message.Content, nil
}

const summarizeSystemPrompt = "You are an assistant that condenses internal customer feedback for department heads."

// SummarizeExpectations 请求要点式摘要并只保留以 • 或 - 开头的行。
// 上游没有可用内容时返回空切片，由调用方回退到原始期望列表。
func (s *AIService) SummarizeExpectations(ctx context.Context, expectations []string) ([]string, error) {
	prompt := fmt.Sprintf(
		"Summarize the following expectations into up to 20 bullet points, each under 15 words. Use \"•\" as the bullet marker.\n\nExpectations:\n%s",
		strings.Join(expectations, "\n"),
	)

	content, err := s.chat(ctx, "summarize", summarizeSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}
	return FilterBulletLines(content), nil
}

// SuggestAction 为一个聚类生成一条行动计划建议。
func (s *AIService) SuggestAction(ctx context.Context, representative string, texts []string) (string, error) {
	prompt := fmt.Sprintf(
		"The following feedback items describe one recurring expectation:\n%s\n\nSuggest one concrete action plan line (under 25 words) a department head could assign to address it.",
		strings.Join(texts, "\n"),
	)

	content, err := s.chat(ctx, "suggest_action", summarizeSystemPrompt, prompt)
	if err != nil {
		return "", err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return representative, nil
	}
	// 只取第一行，去掉模型可能带上的列表标记
	line := strings.SplitN(content, "\n", 2)[0]
	line = strings.TrimLeft(line, "•- ")
	return strings.TrimSpace(line), nil
}

// FilterBulletLines 过滤模型响应，仅保留以 • 或 - 开头的行。
func FilterBulletLines(content string) []string {
	var bullets []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "•") || strings.HasPrefix(trimmed, "-") {
			bullets = append(bullets, trimmed)
		}
	}
	return bullets
}
