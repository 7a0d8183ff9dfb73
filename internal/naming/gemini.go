package naming

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jonathan/skill-taxonomy/internal/types"
)

// defaultModel is used when no model name is configured.
const defaultModel = "gemini-1.5-flash"

// GeminiNamer names clusters with the Gemini API. Responses are cached by
// prompt hash so re-running a pipeline does not re-bill identical clusters.
type GeminiNamer struct {
	client *genai.Client
	model  string
	cache  *Cache
}

// NewGeminiNamer creates a Gemini-backed naming delegate.
func NewGeminiNamer(ctx context.Context, apiKey, model string) (*GeminiNamer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if model == "" {
		model = defaultModel
	}
	return &GeminiNamer{client: client, model: model, cache: NewCache()}, nil
}

// NameCluster generates a short display name from the representative skills.
func (n *GeminiNamer) NameCluster(ctx context.Context, clusterID int, representatives []types.Skill) (string, error) {
	prompt := buildPrompt(representatives)
	key := Key(prompt)
	if name, ok := n.cache.Get(key); ok {
		return name, nil
	}

	model := n.client.GenerativeModel(n.model)
	model.SetTemperature(0.1) // Low temperature for consistent output

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate cluster name: %w", err)
	}

	name, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}
	name = cleanName(name)
	if name == "" {
		return "", fmt.Errorf("empty name in response")
	}

	return n.cache.Put(key, name), nil
}

// Close releases resources held by the underlying client.
func (n *GeminiNamer) Close() error {
	if n.client != nil {
		return n.client.Close()
	}
	return nil
}

func buildPrompt(representatives []types.Skill) string {
	var sb strings.Builder
	sb.WriteString("Name this group of related skills with a concise title (2-5 words).\n")
	sb.WriteString("Respond with the title only, no punctuation or explanation.\n\nSkills:\n")
	for _, skill := range representatives {
		sb.WriteString(fmt.Sprintf("- %s (level %d, %s)\n", skill.Name, skill.Level, skill.Context))
	}
	return sb.String()
}

func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}

// cleanName strips quotes, trailing punctuation, and surrounding whitespace.
func cleanName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Trim(name, "\"'`")
	name = strings.TrimSuffix(name, ".")
	if idx := strings.IndexByte(name, '\n'); idx >= 0 {
		name = name[:idx]
	}
	return strings.TrimSpace(name)
}
