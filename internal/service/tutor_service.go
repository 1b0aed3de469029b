package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"medexam_backend/internal/config"

	openai "github.com/sashabaranov/go-openai"
)

const (
	TutorActionAnalyze = "analyze"
	TutorActionChat    = "chat"

	tutorRequestTimeout = 30 * time.Second
)

// TutorService is the AI performance coach: it proxies to an OpenAI-compatible
// API with a fixed system prompt that embeds the caller's performance context.
type TutorService struct {
	api   *openai.Client
	model string
}

func NewTutorService(cfg config.TutorConfig) *TutorService {
	apiConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiConfig.BaseURL = cfg.BaseURL
	}
	return &TutorService{
		api:   openai.NewClientWithConfig(apiConfig),
		model: cfg.Model,
	}
}

// BuildTutorSystemPrompt renders the coach persona with the student's
// performance context serialized as JSON. Unserializable context degrades to
// an empty object rather than failing the request.
func BuildTutorSystemPrompt(contextData map[string]interface{}) string {
	raw, err := json.Marshal(contextData)
	if err != nil || contextData == nil {
		raw = []byte("{}")
	}
	return fmt.Sprintf(`Você é um coach de desempenho para estudantes de medicina que se preparam para provas de residência e revalidação.
Responda sempre em português, de forma encorajadora e objetiva.
Baseie toda análise exclusivamente nos dados de desempenho abaixo; não invente números.

Dados de desempenho do estudante (JSON):
%s`, string(raw))
}

const analyzeInstruction = `Analise o desempenho do estudante: aponte os temas mais fracos, os mais fortes e sugira um plano de estudos prático para a próxima semana.`

// Analyze produces an unprompted performance review from the context data.
func (s *TutorService) Analyze(ctx context.Context, contextData map[string]interface{}) (string, error) {
	return s.complete(ctx, contextData, analyzeInstruction)
}

// Chat answers a free-form student question grounded in the context data.
func (s *TutorService) Chat(ctx context.Context, contextData map[string]interface{}, userMessage string) (string, error) {
	return s.complete(ctx, contextData, userMessage)
}

func (s *TutorService) complete(ctx context.Context, contextData map[string]interface{}, userMessage string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, tutorRequestTimeout)
	defer cancel()

	resp, err := s.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: BuildTutorSystemPrompt(contextData)},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
		Temperature: 0.4,
	})
	if err != nil {
		return "", fmt.Errorf("tutor API call: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("tutor API returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
