package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// FallbackResponse is returned when the generation backend answers
// successfully but without the expected response field. The chat
// operation degrades to this literal instead of failing.
const FallbackResponse = "Erro na resposta"

// OllamaService proxies prompts to an Ollama-compatible generation
// endpoint as single non-streaming requests.
type OllamaService struct {
	baseURL string
	model   string
	client  *http.Client
}

func NewOllamaService(baseURL, model string, timeout time.Duration) *OllamaService {
	return &OllamaService{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response *string `json:"response"`
}

// Generate sends the prompt and extracts the generated text. Transport
// failures, timeouts and non-2xx statuses surface as *GenerationError;
// a success response with an unexpected shape degrades to
// FallbackResponse.
func (s *OllamaService) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  s.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &GenerationError{Message: fmt.Sprintf("generation endpoint unreachable: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &GenerationError{Message: fmt.Sprintf("generation endpoint returned status %d", resp.StatusCode)}
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return FallbackResponse, nil
	}
	if out.Response == nil {
		return FallbackResponse, nil
	}

	return *out.Response, nil
}
