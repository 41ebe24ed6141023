package roadmap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/Peyu5h/edusynck-sub000/internal/config"
)

var ErrGeneration = errors.New("roadmap generation failed")

type Provider interface {
	SendPrompt(ctx context.Context, system, user string) ([]Milestone, error)
}

type geminiProvider struct {
	client *genai.Client
}

func NewGeminiProvider(ctx context.Context) (Provider, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiProvider{client: client}, nil
}

func (p *geminiProvider) SendPrompt(ctx context.Context, system, user string) ([]Milestone, error) {
	log := config.WithContext(ctx)
	prompt := system + "\n\n" + user

	result, err := p.client.Models.GenerateContent(
		ctx,
		"gemini-2.0-flash",
		genai.Text(prompt),
		nil,
	)
	if err != nil {
		log.WithError(err).Error("Gemini content generation failed")
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	raw := result.Text()
	if raw == "" {
		return nil, fmt.Errorf("%w: empty model response", ErrGeneration)
	}

	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.Trim(clean, "`")

	var milestones []Milestone
	if err := json.Unmarshal([]byte(clean), &milestones); err != nil {
		log.WithError(err).Errorf("failed to decode roadmap JSON:\n%s", clean)
		return nil, fmt.Errorf("%w: invalid JSON from model", ErrGeneration)
	}

	for i, m := range milestones {
		if m.Title == "" || len(m.Topics) == 0 {
			return nil, fmt.Errorf("%w: milestone %d is incomplete", ErrGeneration, i)
		}
		if milestones[i].Week <= 0 {
			milestones[i].Week = i + 1
		}
	}

	log.Infof("generated roadmap with %d milestones", len(milestones))
	return milestones, nil
}
