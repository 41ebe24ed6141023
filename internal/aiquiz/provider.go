package aiquiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/Peyu5h/edusynck-sub000/internal/config"
)

var ErrGeneration = errors.New("question generation failed")

type Provider interface {
	SendPrompt(ctx context.Context, system, user string) ([]GeneratedQuestion, error)
}

type geminiProvider struct {
	client *genai.Client
}

func NewGeminiProvider(ctx context.Context) (Provider, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar cliente Gemini: %w", err)
	}
	return &geminiProvider{client: client}, nil
}

func (p *geminiProvider) SendPrompt(ctx context.Context, system, user string) ([]GeneratedQuestion, error) {
	log := config.WithContext(ctx)
	prompt := system + "\n\n" + user

	result, err := p.client.Models.GenerateContent(
		ctx,
		"gemini-2.0-flash",
		genai.Text(prompt),
		nil,
	)
	if err != nil {
		log.WithError(err).Error("falha ao gerar conteúdo do Gemini")
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	raw := result.Text()
	log.Debugf("[AIQUIZ] Resposta bruta do Gemini:\n%s", raw)

	if raw == "" {
		return nil, fmt.Errorf("%w: resposta vazia do modelo", ErrGeneration)
	}

	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.Trim(clean, "`")

	var questions []GeneratedQuestion
	if err := json.Unmarshal([]byte(clean), &questions); err != nil {
		log.WithError(err).Errorf("[AIQUIZ] Falha ao decodificar JSON. Conteúdo limpo:\n%s", clean)
		return nil, fmt.Errorf("%w: falha ao decodificar JSON", ErrGeneration)
	}

	for i, q := range questions {
		if len(q.Options) != 4 || q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return nil, fmt.Errorf("%w: pergunta %d fora do formato esperado", ErrGeneration, i)
		}
		if questions[i].Points <= 0 {
			questions[i].Points = 1
		}
	}

	log.Infof("[AIQUIZ] Geradas %d perguntas com sucesso", len(questions))
	return questions, nil
}
