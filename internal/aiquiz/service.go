package aiquiz

import (
	"context"
	"fmt"
)

type Service interface {
	GenerateQuestions(ctx context.Context, req GenerateRequest) ([]GeneratedQuestion, error)
}

type service struct {
	provider Provider
}

func NewService(provider Provider) Service {
	return &service{provider: provider}
}

func (s *service) GenerateQuestions(ctx context.Context, req GenerateRequest) ([]GeneratedQuestion, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("%w: provider is not configured", ErrGeneration)
	}
	if req.Topic == "" && req.Material == "" {
		return nil, fmt.Errorf("%w: topic or material is required", ErrGeneration)
	}

	system := systemPrompt
	user := BuildUserPrompt(req)

	return s.provider.SendPrompt(ctx, system, user)
}
