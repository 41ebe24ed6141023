package aiquiz

import (
	"context"

	"github.com/sirupsen/logrus"
)

type AIQuizContainer struct {
	Handler *Handler
	Service Service
}

func NewAIQuizContainer() *AIQuizContainer {
	ctx := context.Background()
	provider, err := NewGeminiProvider(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Gemini indisponível, geração de perguntas desativada")
	}
	service := NewService(provider)
	handler := NewHandler(service)

	return &AIQuizContainer{
		Handler: handler,
		Service: service,
	}
}
