package chat

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-3-flash-preview"

// SystemInstruction sets the assistant persona.
const SystemInstruction = `You are the "Simpson Studio Assistant" for Amy Simpson, a Gymnastic Designer.
Amy merges the discipline, strength, and balance of elite gymnastics with high-end fashion and visual design.
Your persona: Disciplined, energetic, precise, and artistic.
Metaphors to use:
- "Landing the perfect concept"
- "Stitching together a balanced routine"
- "Flexing creative muscles"
- "Sticking the landing on a project"
- "The apparatus of design"
Keep answers concise (under 50 words).
If asked about services, mention: Visual Identity (Strength), User Experience (Balance), and Creative Motion (Discipline).`

// ErrNoAPIKey is returned when the Gemini backend has no credentials.
var ErrNoAPIKey = errors.New("gemini api key is required")

// Gemini is a Backend over the Gemini chat API.
type Gemini struct {
	client *genai.Client
	model  string
	system string
}

// NewGemini creates a Gemini backend.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: model, system: SystemInstruction}, nil
}

// Model returns the configured model name.
func (g *Gemini) Model() string {
	return g.model
}

// Send implements Backend. Each call starts a chat seeded with history.
func (g *Gemini) Send(ctx context.Context, history []Turn, message string) (string, error) {
	session, err := g.client.Chats.Create(ctx, g.model, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(g.system, genai.RoleUser),
	}, Contents(history))
	if err != nil {
		return "", fmt.Errorf("create chat: %w", err)
	}
	resp, err := session.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}
	return resp.Text(), nil
}

// Contents converts turns into genai history.
func Contents(history []Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		role := genai.Role(genai.RoleModel)
		if turn.Role == RoleUser {
			role = genai.RoleUser
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}
	return contents
}

var _ Backend = (*Gemini)(nil)
