package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger *zap.Logger
}

func NewGeminiClient(apiKey string, logger *zap.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-pro")
	model.SetTemperature(0.7)

	return &GeminiClient{
		client: client,
		model:  model,
		logger: logger.Named("gemini"),
	}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// MatchTraits is the subset of a profile shared with the model.
type MatchTraits struct {
	Name         string   `json:"name"`
	FaithJourney string   `json:"faith_journey"`
	Denomination string   `json:"denomination,omitempty"`
	Interests    []string `json:"interests"`
	Values       []string `json:"values,omitempty"`
	Bio          string   `json:"bio,omitempty"`
}

func (c *GeminiClient) generateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

func (c *GeminiClient) GenerateMatchExplanation(ctx context.Context, user1, user2 MatchTraits) (string, error) {
	prompt := fmt.Sprintf(`
		Two members of a Christian dating community just matched.
		Member 1: %s
		Member 2: %s

		Task: Write a short, warm explanation (1-2 sentences) of why they could be a good match.
		Mention shared faith or values where they exist. Do not preach.
		Output: Just the explanation text.
	`, mustJSON(user1), mustJSON(user2))

	text, err := c.generateText(ctx, prompt)
	if err != nil || text == "" {
		c.logger.Warn("match explanation unavailable, using fallback", zap.Error(err))
		return fallbackExplanation(user1, user2), nil
	}
	return text, nil
}

func fallbackExplanation(user1, user2 MatchTraits) string {
	if user1.FaithJourney != "" && user1.FaithJourney == user2.FaithJourney {
		return fmt.Sprintf("%s and %s are at a similar place in their faith journey, a good start for a meaningful conversation.", user1.Name, user2.Name)
	}
	return "You share interests and values worth talking about. This could be the start of something special."
}

func (c *GeminiClient) GenerateIcebreakers(ctx context.Context, user1Interests, user2Interests []string) ([]string, error) {
	prompt := fmt.Sprintf(`
		Generate 3 friendly icebreaker messages for a Christian dating app match.
		User 1 Interests: %v
		User 2 Interests: %v

		Task: Create 3 distinct opening lines that User 1 could send to User 2.
		Focus on shared interests or interesting contrasts.
		Output: JSON array of strings. Example: ["Hi...", "Hello..."]
	`, user1Interests, user2Interests)

	text, err := c.generateText(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseStringList(text)
}

// GenerateBio returns three bio drafts keyed by tone.
func (c *GeminiClient) GenerateBio(ctx context.Context, name string, interests []string, faithJourney, favoriteVerse string) (map[string]string, error) {
	prompt := fmt.Sprintf(`
		Write three short dating-profile bios (max 300 characters each) for %s.
		Interests: %v
		Faith journey: %s
		Favorite verse: %s

		Output: a JSON object with keys "warm", "playful" and "thoughtful".
	`, name, interests, faithJourney, favoriteVerse)

	text, err := c.generateText(ctx, prompt)
	if err != nil {
		return nil, err
	}
	var bios map[string]string
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &bios); err != nil {
		return nil, fmt.Errorf("failed to parse bios: %w", err)
	}
	return bios, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// parseStringList accepts a JSON array and falls back to one entry per
// non-empty line.
func parseStringList(text string) ([]string, error) {
	text = stripCodeFence(text)
	var items []string
	err := json.Unmarshal([]byte(text), &items)
	if err == nil {
		return items, nil
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "[") && !strings.HasSuffix(line, "]") {
			items = append(items, line)
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("failed to parse icebreakers: %w", err)
	}
	return items, nil
}

func mustJSON(v interface{}) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(raw)
}
