// Package llm provides completion providers for the assistant. Gemini
// is the primary remote provider; Ollama serves as a local fallback.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// Provider is the interface for LLM providers.
type Provider interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
	IsConfigured() bool
}

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiProvider is a Google Gemini API provider.
type GeminiProvider struct {
	Model        string
	APIKey       string
	BaseURL      string
	SystemPrompt string
	client       *http.Client
}

// NewGeminiProvider creates a Gemini provider. The API key is read from
// apiKeyEnv, falling back to GOOGLE_API_KEY.
func NewGeminiProvider(model, apiKeyEnv, systemPrompt string) *GeminiProvider {
	key := os.Getenv(apiKeyEnv)
	if key == "" {
		key = os.Getenv("GOOGLE_API_KEY")
	}
	return &GeminiProvider{
		Model:        model,
		APIKey:       key,
		BaseURL:      defaultGeminiBaseURL,
		SystemPrompt: systemPrompt,
		client:       &http.Client{Timeout: 120 * time.Second},
	}
}

// IsConfigured checks if the API key is set.
func (g *GeminiProvider) IsConfigured() bool {
	return g.APIKey != ""
}

// Generate sends a prompt to Gemini and returns the response text.
func (g *GeminiProvider) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if g.APIKey == "" {
		return "", fmt.Errorf("gemini API key not configured")
	}

	type part struct {
		Text string `json:"text"`
	}
	type content struct {
		Role  string `json:"role,omitempty"`
		Parts []part `json:"parts"`
	}

	body := map[string]any{
		"contents": []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
		"generationConfig": map[string]any{
			"maxOutputTokens": maxTokens,
			"temperature":     0.3,
		},
	}
	if g.SystemPrompt != "" {
		body["system_instruction"] = content{Parts: []part{{Text: g.SystemPrompt}}}
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.BaseURL, g.Model, g.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini API returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates in gemini response")
	}

	var sb strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

// OllamaProvider is a local Ollama LLM provider.
type OllamaProvider struct {
	Model        string
	BaseURL      string
	SystemPrompt string
	client       *http.Client
}

// NewOllamaProvider creates a new Ollama provider.
func NewOllamaProvider(model, baseURL, systemPrompt string) *OllamaProvider {
	return &OllamaProvider{
		Model:        model,
		BaseURL:      baseURL,
		SystemPrompt: systemPrompt,
		client:       &http.Client{Timeout: 120 * time.Second},
	}
}

// IsConfigured checks if Ollama is running and the model is available.
func (o *OllamaProvider) IsConfigured() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", o.BaseURL+"/api/tags", nil)
	if err != nil {
		return false
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	var result struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false
	}

	modelBase := strings.SplitN(o.Model, ":", 2)[0]
	for _, m := range result.Models {
		if strings.Contains(m.Name, modelBase) {
			return true
		}
	}
	log.Printf("Ollama model %q not found", o.Model)
	return false
}

// Generate sends a prompt to Ollama and returns the response.
func (o *OllamaProvider) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	messages := []map[string]string{}
	if o.SystemPrompt != "" {
		messages = append(messages, map[string]string{"role": "system", "content": o.SystemPrompt})
	}
	messages = append(messages, map[string]string{"role": "user", "content": prompt})

	body := map[string]any{
		"model":    o.Model,
		"messages": messages,
		"stream":   false,
		"options": map[string]any{
			"num_predict": maxTokens,
			"temperature": 0.3,
		},
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.BaseURL+"/api/chat", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama API returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	return result.Message.Content, nil
}

// CreateProvider creates an LLM provider based on configuration.
// Returns nil when no provider is reachable; callers treat nil as
// offline mode rather than an error.
func CreateProvider(provider, geminiModel, apiKeyEnv, ollamaModel, ollamaURL, systemPrompt string) Provider {
	if strings.ToLower(provider) == "gemini" {
		p := NewGeminiProvider(geminiModel, apiKeyEnv, systemPrompt)
		if p.IsConfigured() {
			log.Printf("Using Gemini with model: %s", geminiModel)
			return p
		}
		log.Println("Gemini API key not set, trying Ollama fallback...")
	}

	p := NewOllamaProvider(ollamaModel, ollamaURL, systemPrompt)
	if p.IsConfigured() {
		log.Printf("Using Ollama with model: %s", ollamaModel)
		return p
	}

	log.Println("No LLM provider available, running in offline mode.")
	return nil
}
