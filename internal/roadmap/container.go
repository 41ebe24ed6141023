package roadmap

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type RoadmapContainer struct {
	Handler *Handler
	Service RoadmapService
	Repo    RoadmapRepository
}

func NewRoadmapContainer(db *gorm.DB) *RoadmapContainer {
	ctx := context.Background()
	provider, err := NewGeminiProvider(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Gemini unavailable, roadmap generation disabled")
	}

	repo := NewRepository(db)
	service := NewService(repo, provider)
	handler := NewHandler(service)

	return &RoadmapContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
