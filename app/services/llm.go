package services

import (
	"fmt"
	"math"
	"time"

	"github.com/buildmaster/storefront/config"
	"github.com/buildmaster/storefront/pkg/http"
)

// Clients for the two model APIs the assistant depends on. Both are
// OpenAI-compatible: a chat-completions endpoint for replies and a
// feature-extraction endpoint for embeddings. When the endpoints are not
// configured the assistant degrades to canned replies and skips semantic
// search; nothing else in the storefront depends on them.

// LLMMessage is one turn of a chat-completion conversation.
type LLMMessage struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string       `json:"model"`
	Messages    []LLMMessage `json:"messages"`
	Temperature float64      `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ChatCompletion sends the conversation to the configured model and
// returns the assistant's reply.
func ChatCompletion(messages []LLMMessage) (string, error) {
	url := config.ChatAPIURL()
	if url == "" {
		return "", fmt.Errorf("chat API not configured")
	}

	resp, err := http.Post(url).
		Bearer(config.ChatAPIKey()).
		Body(completionRequest{
			Model:       config.ChatModel(),
			Messages:    messages,
			Temperature: 0.5,
		}).
		Timeout(20 * time.Second).
		Retry(2, time.Second).
		Send()
	if err != nil {
		return "", err
	}
	if err := resp.Throw(); err != nil {
		return "", err
	}

	var out completionResponse
	if err := resp.JSON(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("chat API returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}

type embedRequest struct {
	Inputs []string `json:"inputs"`
}

// EmbedText returns the embedding vector for a single piece of text.
func EmbedText(text string) ([]float32, error) {
	url := config.EmbedAPIURL()
	if url == "" {
		return nil, fmt.Errorf("embedding API not configured")
	}

	resp, err := http.Post(url).
		Bearer(config.EmbedAPIKey()).
		Body(embedRequest{Inputs: []string{text}}).
		Timeout(20 * time.Second).
		Retry(2, time.Second).
		Send()
	if err != nil {
		return nil, err
	}
	if err := resp.Throw(); err != nil {
		return nil, err
	}

	var vectors [][]float32
	if err := resp.JSON(&vectors); err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedding API returned no vectors")
	}
	return vectors[0], nil
}

// CosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched lengths or zero vectors score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
